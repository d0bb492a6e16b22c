// Package report computes the aggregated views behind the dashboard charts.
// Every view is a pure function of the enriched record set: total over any
// well-formed input, empty over empty input, and never mutated after being
// built.
package report

import (
	"sort"
	"strconv"
	"strings"

	"mortalidad/internal/dataset"
	"mortalidad/internal/enrich"
)

// Entry is one (key, value) tuple of a view, already in presentation order.
type Entry struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Count int    `json:"count"`
}

// CrossEntry is one (key, subkey, value) tuple of the sex-by-department
// cross tab.
type CrossEntry struct {
	Key   string `json:"key"`
	Label string `json:"label,omitempty"`
	Sub   string `json:"sub"`
	Count int    `json:"count"`
}

// ByDepartment counts deaths per department, keyed by DANE code for the
// choropleth join. Every department in the boundary set appears, zero when
// it has no records. Ordered by department code ascending.
func ByDepartment(records []enrich.Record, boundaries *dataset.BoundarySet) []Entry {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, r := range records {
		counts[r.DepartmentCode]++
		if labels[r.DepartmentCode] == "" && r.DepartmentName != "" {
			labels[r.DepartmentCode] = r.DepartmentName
		}
	}

	if boundaries != nil {
		for _, b := range boundaries.Departments() {
			if _, ok := counts[b.DepartmentCode]; !ok {
				counts[b.DepartmentCode] = 0
			}
			if labels[b.DepartmentCode] == "" {
				labels[b.DepartmentCode] = b.Name
			}
		}
	}

	out := make([]Entry, 0, len(counts))
	for code, n := range counts {
		out = append(out, Entry{Key: code, Label: labels[code], Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ByMonth counts deaths per calendar month, zero-filled for months without
// records and ordered chronologically. Records whose month could not be
// parsed (month 0) do not appear here.
func ByMonth(records []enrich.Record) []Entry {
	if len(records) == 0 {
		return []Entry{}
	}
	var counts [13]int
	for _, r := range records {
		if r.Month >= 1 && r.Month <= 12 {
			counts[r.Month]++
		}
	}
	out := make([]Entry, 0, 12)
	for m := 1; m <= 12; m++ {
		out = append(out, Entry{Key: strconv.Itoa(m), Count: counts[m]})
	}
	return out
}

// TopViolentMunicipalities ranks municipalities by homicide count and keeps
// the first 5. A record counts as a homicide when its cause code starts with
// one of the configured prefixes. Order: count descending, municipality code
// ascending on ties.
func TopViolentMunicipalities(records []enrich.Record, homicidePrefixes []string) []Entry {
	filtered := make([]enrich.Record, 0, len(records))
	for _, r := range records {
		if isHomicide(r.CauseCode, homicidePrefixes) {
			filtered = append(filtered, r)
		}
	}
	return topN(byMunicipality(filtered), 5, descending)
}

// LowestMortalityMunicipalities ranks municipalities present in the record
// set by total count ascending and keeps the first 10. Municipalities with
// no recorded deaths cannot appear. Ties break by municipality code
// ascending.
func LowestMortalityMunicipalities(records []enrich.Record) []Entry {
	return topN(byMunicipality(records), 10, ascending)
}

// TopCauses ranks cause codes by count descending with descriptions
// attached, keeping the first 10. Ties break by cause code ascending.
func TopCauses(records []enrich.Record) []Entry {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, r := range records {
		counts[r.CauseCode]++
		if labels[r.CauseCode] == "" && r.CauseDescription != "" {
			labels[r.CauseCode] = r.CauseDescription
		}
	}
	out := make([]Entry, 0, len(counts))
	for code, n := range counts {
		out = append(out, Entry{Key: code, Label: labels[code], Count: n})
	}
	return topN(out, 10, descending)
}

// SexByDepartment counts deaths per (department, sex) pair for the stacked
// bar chart. Ordered by department code, then sex label.
func SexByDepartment(records []enrich.Record) []CrossEntry {
	type pair struct{ dept, sex string }
	counts := make(map[pair]int)
	labels := make(map[string]string)
	for _, r := range records {
		counts[pair{r.DepartmentCode, r.Sex}]++
		if labels[r.DepartmentCode] == "" && r.DepartmentName != "" {
			labels[r.DepartmentCode] = r.DepartmentName
		}
	}
	out := make([]CrossEntry, 0, len(counts))
	for p, n := range counts {
		out = append(out, CrossEntry{Key: p.dept, Label: labels[p.dept], Sub: p.sex, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Sub < out[j].Sub
	})
	return out
}

// AgeGroups counts deaths per life-stage bucket in natural bucket order,
// zero-filled. Empty input yields an empty view, not eleven zeros.
func AgeGroups(records []enrich.Record) []Entry {
	if len(records) == 0 {
		return []Entry{}
	}
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.AgeBucket]++
	}
	buckets := enrich.AgeBuckets()
	out := make([]Entry, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, Entry{Key: b, Count: counts[b]})
	}
	return out
}

func isHomicide(causeCode string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(causeCode, strings.ToUpper(p)) {
			return true
		}
	}
	return false
}

func byMunicipality(records []enrich.Record) []Entry {
	counts := make(map[string]int)
	labels := make(map[string]string)
	for _, r := range records {
		counts[r.MunicipalityCode]++
		if labels[r.MunicipalityCode] == "" && r.MunicipalityName != "" {
			labels[r.MunicipalityCode] = r.MunicipalityName
		}
	}
	out := make([]Entry, 0, len(counts))
	for code, n := range counts {
		out = append(out, Entry{Key: code, Label: labels[code], Count: n})
	}
	return out
}

type direction bool

const (
	descending direction = true
	ascending  direction = false
)

// topN fixes the ranking policy for every top/bottom view: primary order by
// count in the given direction, ties always broken by key ascending so runs
// over the same input are byte-identical.
func topN(entries []Entry, n int, dir direction) []Entry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			if dir == descending {
				return entries[i].Count > entries[j].Count
			}
			return entries[i].Count < entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}
