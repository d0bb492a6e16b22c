package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortalidad/internal/dataset"
)

func death(dept, muni, cause, age string) dataset.DeathRecord {
	return dataset.DeathRecord{
		DepartmentCode:   dept,
		MunicipalityCode: muni,
		Month:            1,
		Sex:              "1",
		AgeGroupCode:     age,
		CauseCode:        cause,
	}
}

func TestRecordsJoinsLookups(t *testing.T) {
	deaths := []dataset.DeathRecord{
		death("05", "05001", "X95", "12"),
		death("05", "05999", "J11", "20"), // municipality not in lookup
		death("99", "99001", "ZZZ", "xx"), // nothing matches
	}
	locations := []dataset.Location{
		{DepartmentCode: "05", DepartmentName: "Antioquia", MunicipalityCode: "05001", MunicipalityName: "Medellín"},
	}
	causes := []dataset.Cause{
		{Code: "X95", Description: "Agresión con disparo"},
	}

	records := Records(deaths, locations, causes)

	// cardinality preserved: one output per input, in input order
	require.Len(t, records, len(deaths))

	assert.Equal(t, "Antioquia", records[0].DepartmentName)
	assert.Equal(t, "Medellín", records[0].MunicipalityName)
	assert.Equal(t, "Agresión con disparo", records[0].CauseDescription)
	assert.Equal(t, "Juventud 20-29", records[0].AgeBucket)

	// unmatched municipality keeps an empty name but the department is still
	// resolvable from other DIVIPOLA rows of the same department
	assert.Empty(t, records[1].MunicipalityName)
	assert.Equal(t, "Antioquia", records[1].DepartmentName)
	assert.Empty(t, records[1].CauseDescription)

	// fully unmatched rows keep empty descriptive fields, nothing dropped
	assert.Empty(t, records[2].DepartmentName)
	assert.Empty(t, records[2].MunicipalityName)
	assert.Empty(t, records[2].CauseDescription)
	assert.Equal(t, "Edad desconocida / Sin información", records[2].AgeBucket)
}

func TestRecordsEmptyInput(t *testing.T) {
	assert.Empty(t, Records(nil, nil, nil))
}

func TestRecordsDeterministic(t *testing.T) {
	deaths := []dataset.DeathRecord{
		death("05", "05001", "X95", "12"),
		death("08", "08001", "J11", "5"),
	}
	a := Records(deaths, nil, nil)
	b := Records(deaths, nil, nil)
	assert.Equal(t, a, b)
}

func TestAgeBucketLabel(t *testing.T) {
	cases := map[string]string{
		"0":   "Mortalidad neonatal 0-4",
		"5":   "Mortalidad infantil 1-11 meses",
		"7":   "Primera infancia 1-4",
		"9":   "Niñez 5-14",
		"11":  "Adolescencia 15-19",
		"13":  "Juventud 20-29",
		"16":  "Adultez temprana 30-44",
		"19":  "Adultez intermedia 45-59",
		"24":  "Vejez 60-84",
		"28":  "Longevidad 85+",
		"29":  "Edad desconocida / Sin información",
		"":    "Edad desconocida / Sin información",
		"abc": "Edad desconocida / Sin información",
		"99":  "Edad desconocida / Sin información",
	}
	for code, want := range cases {
		assert.Equal(t, want, AgeBucketLabel(code), "code %q", code)
	}
}

func TestBucketRankFollowsLifeStages(t *testing.T) {
	buckets := AgeBuckets()
	for i, b := range buckets {
		assert.Equal(t, i, BucketRank(b))
	}
	assert.Equal(t, len(buckets), BucketRank("no such bucket"))
}
