package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/twpayne/go-geom/encoding/geojson"

	dErrors "mortalidad/pkg/domain-errors"
)

// Boundary files in the wild disagree on which property names the
// department; these are the spellings we accept, codes first.
var (
	boundaryCodeProps = []string{"DPTO", "DPTO_CCDGO", "COD_DEPARTAMENTO", "COD_DPTO"}
	boundaryNameProps = []string{"NOMBRE_DPT", "NOMBRE_DPTO", "NOMBRE_DEPART", "DEPARTAMEN", "DEPARTAMENTO", "NOMBRE", "NAME"}
)

// Boundary is one department feature from the boundary file.
type Boundary struct {
	DepartmentCode string // DANE code; empty until resolved when keyed by name
	Name           string // raw property value, shown for zero-count departments
	nameKey        string // normalized name, used to resolve against DIVIPOLA
}

// BoundarySet holds the departmental polygons. The raw document is kept
// verbatim so the choropleth renders exactly the file on disk; the parsed
// features only drive the department join.
type BoundarySet struct {
	raw      []byte
	features []Boundary
}

// LoadBoundaries reads and validates the GeoJSON boundary file.
func LoadBoundaries(path string) (*BoundarySet, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeLoadFailed, "read boundary file "+path, err)
	}

	var fc geojson.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return nil, dErrors.Wrap(dErrors.CodeLoadFailed, "decode boundary file "+path, err)
	}

	features := make([]Boundary, 0, len(fc.Features))
	for _, f := range fc.Features {
		b, ok := boundaryFromProps(f.Properties)
		if !ok {
			continue
		}
		features = append(features, b)
	}
	if len(features) == 0 {
		return nil, dErrors.New(dErrors.CodeLoadFailed,
			path+": no feature carries a recognizable department property")
	}
	return &BoundarySet{raw: raw, features: features}, nil
}

func boundaryFromProps(props map[string]any) (Boundary, bool) {
	var b Boundary
	for _, p := range boundaryCodeProps {
		if v, ok := propString(props, p); ok {
			b.DepartmentCode = padCode(v, 2)
			break
		}
	}
	for _, p := range boundaryNameProps {
		if v, ok := propString(props, p); ok {
			b.Name = v
			b.nameKey = NormalizeName(v)
			break
		}
	}
	return b, b.DepartmentCode != "" || b.nameKey != ""
}

// propString stringifies a property value; GeoJSON numbers decode as float64.
func propString(props map[string]any, key string) (string, bool) {
	v, ok := props[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		t = strings.TrimSpace(t)
		return t, t != ""
	case float64:
		return fmt.Sprintf("%.0f", t), true
	default:
		return "", false
	}
}

// Resolve assigns DANE codes to name-keyed features using the DIVIPOLA
// lookup. Returns how many features stayed unresolved; those cannot join the
// choropleth and are reported, not fatal.
func (bs *BoundarySet) Resolve(locations []Location) int {
	codeByName := make(map[string]string, len(locations))
	for _, loc := range locations {
		if key := NormalizeName(loc.DepartmentName); key != "" {
			codeByName[key] = loc.DepartmentCode
		}
	}

	unresolved := 0
	for i := range bs.features {
		if bs.features[i].DepartmentCode != "" {
			continue
		}
		if code, ok := codeByName[bs.features[i].nameKey]; ok {
			bs.features[i].DepartmentCode = code
		} else {
			unresolved++
		}
	}
	return unresolved
}

// Raw returns the boundary document exactly as read from disk.
func (bs *BoundarySet) Raw() []byte { return bs.raw }

// Len is the number of usable features.
func (bs *BoundarySet) Len() int { return len(bs.features) }

// Departments lists the resolved department codes with their boundary-file
// names, sorted by code, one entry per department. Views use it to render
// departments with no recorded deaths as zero.
func (bs *BoundarySet) Departments() []Boundary {
	seen := make(map[string]bool, len(bs.features))
	out := make([]Boundary, 0, len(bs.features))
	for _, f := range bs.features {
		if f.DepartmentCode == "" || seen[f.DepartmentCode] {
			continue
		}
		seen[f.DepartmentCode] = true
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DepartmentCode < out[j].DepartmentCode })
	return out
}
