package dataset

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	dErrors "mortalidad/pkg/domain-errors"
)

// Load reads all four sources. Any failure aborts the whole load; there is
// nothing to retry, the files are static.
func Load(logger *slog.Logger, src Sources) (*Tables, error) {
	deaths, err := loadDeaths(src.Deaths)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded death records", "path", src.Deaths, "rows", len(deaths))

	locations, err := loadLocations(src.Divipola)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded municipality lookup", "path", src.Divipola, "rows", len(locations))

	causes, err := loadCauses(src.Causes)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded cause lookup", "path", src.Causes, "rows", len(causes))

	boundaries, err := LoadBoundaries(src.Boundary)
	if err != nil {
		return nil, err
	}
	if unresolved := boundaries.Resolve(locations); unresolved > 0 {
		logger.Warn("boundary features without a matching department",
			"unresolved", unresolved, "path", src.Boundary)
	}
	logger.Info("loaded boundaries", "path", src.Boundary, "features", boundaries.Len())

	return &Tables{
		Deaths:     deaths,
		Locations:  locations,
		Causes:     causes,
		Boundaries: boundaries,
	}, nil
}

// sheet is the header-indexed contents of the first worksheet of a workbook.
type sheet struct {
	path    string
	columns map[string]int
	rows    [][]string // data rows, header excluded
}

func readSheet(path string) (*sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeLoadFailed, "open workbook "+path, err)
	}
	defer f.Close()

	name := f.GetSheetName(0)
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, dErrors.Wrap(dErrors.CodeLoadFailed, "read sheet "+name+" of "+path, err)
	}
	if len(rows) == 0 {
		return nil, dErrors.New(dErrors.CodeLoadFailed, "empty sheet in "+path)
	}

	columns := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		key := NormalizeName(h)
		if key == "" {
			continue
		}
		if _, dup := columns[key]; !dup {
			columns[key] = i
		}
	}
	return &sheet{path: path, columns: columns, rows: rows[1:]}, nil
}

// column returns the index of the first candidate header present. The source
// files spell some headers differently between DANE exports, so each logical
// column accepts a small candidate list.
func (s *sheet) column(candidates ...string) (int, bool) {
	for _, c := range candidates {
		if idx, ok := s.columns[NormalizeName(c)]; ok {
			return idx, true
		}
	}
	return 0, false
}

func (s *sheet) require(logical string, candidates ...string) (int, error) {
	idx, ok := s.column(candidates...)
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeLoadFailed,
			"%s: missing expected column %s (accepted: %s)",
			s.path, logical, strings.Join(candidates, ", "))
	}
	return idx, nil
}

// cell reads a trimmed cell value; excelize drops trailing empty cells, so
// short rows read as empty strings.
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// padCode normalizes a numeric code cell: strips a spreadsheet float suffix
// and left-pads with zeros ("5" becomes "05").
func padCode(v string, width int) string {
	v = strings.TrimSuffix(strings.TrimSpace(v), ".0")
	if v == "" {
		return ""
	}
	for len(v) < width {
		v = "0" + v
	}
	return v
}

// municipalityKey builds the 5-digit DANE municipality key. Some exports
// carry the full 5-digit code, others only the 3-digit suffix within the
// department.
func municipalityKey(dept, muni string) string {
	muni = strings.TrimSuffix(strings.TrimSpace(muni), ".0")
	if muni == "" {
		return ""
	}
	if len(muni) > 3 {
		return padCode(muni, 5)
	}
	return padCode(dept, 2) + padCode(muni, 3)
}

func loadDeaths(path string) ([]DeathRecord, error) {
	s, err := readSheet(path)
	if err != nil {
		return nil, err
	}

	deptIdx, err := s.require("department code", "COD_DEPARTAMENTO", "COD_DPTO", "COD_DEPTO")
	if err != nil {
		return nil, err
	}
	muniIdx, err := s.require("municipality code", "COD_MUNICIPIO", "COD_MPIO", "COD_MUN")
	if err != nil {
		return nil, err
	}
	monthIdx, err := s.require("month", "MES")
	if err != nil {
		return nil, err
	}
	sexIdx, err := s.require("sex", "SEXO")
	if err != nil {
		return nil, err
	}
	ageIdx, err := s.require("age group", "GRUPO_EDAD1", "GRUPO_EDAD")
	if err != nil {
		return nil, err
	}
	causeIdx, err := s.require("cause code", "COD_MUERTE")
	if err != nil {
		return nil, err
	}

	deaths := make([]DeathRecord, 0, len(s.rows))
	for _, row := range s.rows {
		dept := padCode(cell(row, deptIdx), 2)
		cause := strings.ToUpper(cell(row, causeIdx))
		if dept == "" && cause == "" {
			// blank trailing row
			continue
		}
		deaths = append(deaths, DeathRecord{
			DepartmentCode:   dept,
			MunicipalityCode: municipalityKey(dept, cell(row, muniIdx)),
			Month:            parseMonth(cell(row, monthIdx)),
			Sex:              cell(row, sexIdx),
			AgeGroupCode:     strings.TrimSuffix(cell(row, ageIdx), ".0"),
			CauseCode:        cause,
		})
	}
	return deaths, nil
}

// parseMonth coerces to 1-12; anything else counts as 0, which the monthly
// view ignores. Mirrors the source data convention of 0 for unknown.
func parseMonth(v string) int {
	m, err := strconv.Atoi(strings.TrimSuffix(v, ".0"))
	if err != nil || m < 1 || m > 12 {
		return 0
	}
	return m
}

func loadLocations(path string) ([]Location, error) {
	s, err := readSheet(path)
	if err != nil {
		return nil, err
	}

	deptIdx, err := s.require("department code", "COD_DEPARTAMENTO", "COD_DPTO", "COD_DEPTO")
	if err != nil {
		return nil, err
	}
	deptNameIdx, err := s.require("department name", "DEPARTAMENTO", "NOMBRE_DEPARTAMENTO", "NOMBRE_DPT")
	if err != nil {
		return nil, err
	}
	muniIdx, err := s.require("municipality code", "COD_MUNICIPIO", "COD_MPIO")
	if err != nil {
		return nil, err
	}
	muniNameIdx, err := s.require("municipality name", "MUNICIPIO", "NOMBRE_MUNICIPIO")
	if err != nil {
		return nil, err
	}

	locations := make([]Location, 0, len(s.rows))
	for _, row := range s.rows {
		dept := padCode(cell(row, deptIdx), 2)
		if dept == "" {
			continue
		}
		locations = append(locations, Location{
			DepartmentCode:   dept,
			DepartmentName:   cell(row, deptNameIdx),
			MunicipalityCode: municipalityKey(dept, cell(row, muniIdx)),
			MunicipalityName: cell(row, muniNameIdx),
		})
	}
	return locations, nil
}

func loadCauses(path string) ([]Cause, error) {
	s, err := readSheet(path)
	if err != nil {
		return nil, err
	}

	codeIdx, err := s.require("cause code", "CODIGO", "CÓDIGO", "CODIGO_CIE", "CODIGO_CIE10")
	if err != nil {
		return nil, err
	}
	nameIdx, err := s.require("cause description", "NOMBRE", "NOMBRE_CAUSA", "DESCRIPCION", "NOMBRE_CIE")
	if err != nil {
		return nil, err
	}

	causes := make([]Cause, 0, len(s.rows))
	for _, row := range s.rows {
		code := strings.ToUpper(cell(row, codeIdx))
		if code == "" {
			continue
		}
		causes = append(causes, Cause{Code: code, Description: cell(row, nameIdx)})
	}
	return causes, nil
}
