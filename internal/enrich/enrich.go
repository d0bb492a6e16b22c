// Package enrich denormalizes the raw death records: each record gains the
// department, municipality, and cause names from the lookup tables plus its
// life-stage bucket. Cardinality is preserved exactly; a record that matches
// no lookup row keeps empty descriptive fields.
package enrich

import "mortalidad/internal/dataset"

// Record is one enriched death record.
type Record struct {
	dataset.DeathRecord
	DepartmentName   string
	MunicipalityName string
	CauseDescription string
	AgeBucket        string
}

// Records left-joins deaths to the two lookups. Deterministic: output order
// follows input order, one output per input.
func Records(deaths []dataset.DeathRecord, locations []dataset.Location, causes []dataset.Cause) []Record {
	locByMunicipality := make(map[string]dataset.Location, len(locations))
	deptNameByCode := make(map[string]string, 64)
	for _, loc := range locations {
		if loc.MunicipalityCode != "" {
			if _, dup := locByMunicipality[loc.MunicipalityCode]; !dup {
				locByMunicipality[loc.MunicipalityCode] = loc
			}
		}
		if _, dup := deptNameByCode[loc.DepartmentCode]; !dup && loc.DepartmentName != "" {
			deptNameByCode[loc.DepartmentCode] = loc.DepartmentName
		}
	}

	descByCause := make(map[string]string, len(causes))
	for _, c := range causes {
		if _, dup := descByCause[c.Code]; !dup {
			descByCause[c.Code] = c.Description
		}
	}

	out := make([]Record, 0, len(deaths))
	for _, d := range deaths {
		r := Record{
			DeathRecord: d,
			AgeBucket:   AgeBucketLabel(d.AgeGroupCode),
		}
		if loc, ok := locByMunicipality[d.MunicipalityCode]; ok {
			r.DepartmentName = loc.DepartmentName
			r.MunicipalityName = loc.MunicipalityName
		} else {
			// municipality unmatched; the department may still be known
			r.DepartmentName = deptNameByCode[d.DepartmentCode]
		}
		r.CauseDescription = descByCause[d.CauseCode]
		out = append(out, r)
	}
	return out
}
