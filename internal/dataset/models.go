// Package dataset loads the four static input sources into typed in-memory
// tables. Schemas are validated once here; a missing or malformed source is a
// load_failed error and fatal to startup.
package dataset

// DeathRecord is one registered non-fetal death from the 2019 vital
// statistics file. Immutable once loaded.
type DeathRecord struct {
	DepartmentCode   string // 2-digit DANE department code
	MunicipalityCode string // 5-digit DANE code (department + municipality)
	Month            int    // 1-12; 0 when the source value was not a month
	Sex              string
	AgeGroupCode     string // raw GRUPO_EDAD1 code
	CauseCode        string // ICD-10 underlying cause code
}

// Location is one DIVIPOLA lookup row mapping a municipality to its names.
type Location struct {
	DepartmentCode   string
	DepartmentName   string
	MunicipalityCode string // 5-digit, same keying as DeathRecord
	MunicipalityName string
}

// Cause maps a cause-of-death code to its description.
type Cause struct {
	Code        string
	Description string
}

// Tables bundles everything the pipeline needs. It is built once at startup
// and never mutated afterwards.
type Tables struct {
	Deaths     []DeathRecord
	Locations  []Location
	Causes     []Cause
	Boundaries *BoundarySet
}

// Sources holds the file paths the loader reads from.
type Sources struct {
	Deaths   string
	Divipola string
	Causes   string
	Boundary string
}
