package enrich

import (
	"strconv"
	"strings"
)

// Life-stage buckets for the DANE GRUPO_EDAD1 coding, in natural order.
// These labels deliberately do not sort lexically; views must use BucketRank.
var ageBuckets = []string{
	"Mortalidad neonatal 0-4",
	"Mortalidad infantil 1-11 meses",
	"Primera infancia 1-4",
	"Niñez 5-14",
	"Adolescencia 15-19",
	"Juventud 20-29",
	"Adultez temprana 30-44",
	"Adultez intermedia 45-59",
	"Vejez 60-84",
	"Longevidad 85+",
	"Edad desconocida / Sin información",
}

// ageBucketByCode maps a GRUPO_EDAD1 code to an index into ageBuckets.
var ageBucketByCode = map[int]int{
	0: 0, 1: 0, 2: 0, 3: 0, 4: 0,
	5: 1, 6: 1,
	7: 2, 8: 2,
	9: 3, 10: 3,
	11: 4,
	12: 5, 13: 5,
	14: 6, 15: 6, 16: 6,
	17: 7, 18: 7, 19: 7,
	20: 8, 21: 8, 22: 8, 23: 8, 24: 8,
	25: 9, 26: 9, 27: 9, 28: 9,
}

// AgeBuckets returns the bucket labels in life-stage order.
func AgeBuckets() []string {
	out := make([]string, len(ageBuckets))
	copy(out, ageBuckets)
	return out
}

// AgeBucketLabel maps a raw GRUPO_EDAD1 code to its life-stage label.
// Unparseable or unknown codes fall into the last (unknown) bucket.
func AgeBucketLabel(code string) string {
	n, err := strconv.Atoi(strings.TrimSpace(code))
	if err != nil {
		return ageBuckets[len(ageBuckets)-1]
	}
	idx, ok := ageBucketByCode[n]
	if !ok {
		return ageBuckets[len(ageBuckets)-1]
	}
	return ageBuckets[idx]
}

// BucketRank is the position of a label in the natural order; unknown labels
// rank last so derived views stay totally ordered.
func BucketRank(label string) int {
	for i, b := range ageBuckets {
		if b == label {
			return i
		}
	}
	return len(ageBuckets)
}
