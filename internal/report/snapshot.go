package report

import (
	"mortalidad/internal/dataset"
	"mortalidad/internal/enrich"
)

// Views bundles the seven aggregated views in their stable presentation
// order. The Presenter binds each field to one chart without re-sorting.
type Views struct {
	Departments           []Entry      `json:"departments"`
	Months                []Entry      `json:"months"`
	ViolentMunicipalities []Entry      `json:"violent_municipalities"`
	LowestMortality       []Entry      `json:"lowest_mortality"`
	Causes                []Entry      `json:"causes"`
	SexByDepartment       []CrossEntry `json:"sex_by_department"`
	AgeGroups             []Entry      `json:"age_groups"`
}

// Summary carries the headline numbers for the dashboard side panel.
type Summary struct {
	TotalRecords   int `json:"total_records"`
	Departments    int `json:"departments"`
	Municipalities int `json:"municipalities"`
}

// Snapshot is the immutable analysis context built once at startup: the
// enriched record set, the boundary set, and the precomputed unfiltered
// views. It is shared read-only across requests; nothing writes to it after
// Build returns.
type Snapshot struct {
	records          []enrich.Record
	boundaries       *dataset.BoundarySet
	homicidePrefixes []string
	views            Views
	summary          Summary
}

// Build computes every view over the full record set.
func Build(records []enrich.Record, boundaries *dataset.BoundarySet, homicidePrefixes []string) *Snapshot {
	s := &Snapshot{
		records:          records,
		boundaries:       boundaries,
		homicidePrefixes: homicidePrefixes,
	}
	s.views = computeViews(records, boundaries, homicidePrefixes)
	s.summary = summarize(records)
	return s
}

// Views returns the precomputed unfiltered views.
func (s *Snapshot) Views() Views { return s.views }

// Summary returns the headline counts over the full record set.
func (s *Snapshot) Summary() Summary { return s.summary }

// Filter recomputes all views over the records of one department. The
// boundary set stays complete so the choropleth keeps rendering every
// department, with zeros outside the selection. An unknown code yields
// empty (or zero-filled) views, never an error.
func (s *Snapshot) Filter(departmentCode string) Views {
	subset := make([]enrich.Record, 0, len(s.records))
	for _, r := range s.records {
		if r.DepartmentCode == departmentCode {
			subset = append(subset, r)
		}
	}
	return computeViews(subset, s.boundaries, s.homicidePrefixes)
}

func computeViews(records []enrich.Record, boundaries *dataset.BoundarySet, homicidePrefixes []string) Views {
	return Views{
		Departments:           ByDepartment(records, boundaries),
		Months:                ByMonth(records),
		ViolentMunicipalities: TopViolentMunicipalities(records, homicidePrefixes),
		LowestMortality:       LowestMortalityMunicipalities(records),
		Causes:                TopCauses(records),
		SexByDepartment:       SexByDepartment(records),
		AgeGroups:             AgeGroups(records),
	}
}

func summarize(records []enrich.Record) Summary {
	depts := make(map[string]struct{})
	munis := make(map[string]struct{})
	for _, r := range records {
		depts[r.DepartmentCode] = struct{}{}
		munis[r.MunicipalityCode] = struct{}{}
	}
	return Summary{
		TotalRecords:   len(records),
		Departments:    len(depts),
		Municipalities: len(munis),
	}
}
