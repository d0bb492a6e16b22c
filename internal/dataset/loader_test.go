package dataset

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
	"github.com/xuri/excelize/v2"

	dErrors "mortalidad/pkg/domain-errors"
)

type LoaderSuite struct {
	suite.Suite
	dir string
}

func TestLoaderSuite(t *testing.T) {
	suite.Run(t, new(LoaderSuite))
}

func (s *LoaderSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

// writeWorkbook writes rows into the first sheet of a new xlsx file and
// returns its path.
func (s *LoaderSuite) writeWorkbook(name string, rows [][]any) string {
	s.T().Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		s.Require().NoError(err)
		s.Require().NoError(f.SetSheetRow(sheet, cellRef, &row))
	}
	path := filepath.Join(s.dir, name)
	s.Require().NoError(f.SaveAs(path))
	s.Require().NoError(f.Close())
	return path
}

func (s *LoaderSuite) deathsFixture() string {
	return s.writeWorkbook("NoFetal2019.xlsx", [][]any{
		{"COD_DEPARTAMENTO", "COD_MUNICIPIO", "MES", "SEXO", "GRUPO_EDAD1", "COD_MUERTE"},
		{"5", "1", "1", "1", "12", "X95"},
		{"5", "1", "1", "2", "20", "J11"},
		{"8", "8001", "2", "1", "14", "X95"},
	})
}

func (s *LoaderSuite) divipolaFixture() string {
	return s.writeWorkbook("Divipola.xlsx", [][]any{
		{"COD_DEPARTAMENTO", "DEPARTAMENTO", "COD_MUNICIPIO", "MUNICIPIO"},
		{"5", "Antioquia", "1", "Medellín"},
		{"8", "Atlántico", "8001", "Barranquilla"},
	})
}

func (s *LoaderSuite) causesFixture() string {
	return s.writeWorkbook("CodigosDeMuerte.xlsx", [][]any{
		{"CODIGO", "NOMBRE"},
		{"X95", "Agresión con disparo de otras armas de fuego"},
		{"J11", "Influenza con neumonía"},
	})
}

func (s *LoaderSuite) boundaryFixture() string {
	path := filepath.Join(s.dir, "boundaries.geojson")
	doc := `{"type":"FeatureCollection","features":[
	  {"type":"Feature","properties":{"NOMBRE_DPT":"ANTIOQUIA"},
	   "geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}]}`
	s.Require().NoError(os.WriteFile(path, []byte(doc), 0o600))
	return path
}

func (s *LoaderSuite) TestLoadDeaths() {
	s.Run("reads and normalizes all rows", func() {
		deaths, err := loadDeaths(s.deathsFixture())
		s.Require().NoError(err)
		s.Require().Len(deaths, 3)

		s.Equal("05", deaths[0].DepartmentCode)
		s.Equal("05001", deaths[0].MunicipalityCode)
		s.Equal(1, deaths[0].Month)
		s.Equal("X95", deaths[0].CauseCode)
		s.Equal("12", deaths[0].AgeGroupCode)

		// 4+ digit municipality cells already carry the department prefix
		s.Equal("08001", deaths[2].MunicipalityCode)
	})

	s.Run("missing column is a load error", func() {
		path := s.writeWorkbook("bad.xlsx", [][]any{
			{"COD_DEPARTAMENTO", "COD_MUNICIPIO", "MES", "SEXO", "GRUPO_EDAD1"},
			{"5", "1", "1", "1", "12"},
		})
		_, err := loadDeaths(path)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeLoadFailed))
		s.Contains(err.Error(), "COD_MUERTE")
	})

	s.Run("missing file is a load error", func() {
		_, err := loadDeaths(filepath.Join(s.dir, "nope.xlsx"))
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeLoadFailed))
	})

	s.Run("empty workbook is a load error", func() {
		path := s.writeWorkbook("empty.xlsx", nil)
		_, err := loadDeaths(path)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeLoadFailed))
	})
}

func (s *LoaderSuite) TestLoadLocations() {
	s.Run("keys municipalities the same way as death records", func() {
		locations, err := loadLocations(s.divipolaFixture())
		s.Require().NoError(err)
		s.Require().Len(locations, 2)
		s.Equal("05001", locations[0].MunicipalityCode)
		s.Equal("Medellín", locations[0].MunicipalityName)
		s.Equal("08001", locations[1].MunicipalityCode)
	})
}

func (s *LoaderSuite) TestLoadCauses() {
	s.Run("accepts accented header spellings", func() {
		path := s.writeWorkbook("codes.xlsx", [][]any{
			{"Código", "Descripcion"},
			{"x95", "Agresión"},
		})
		causes, err := loadCauses(path)
		s.Require().NoError(err)
		s.Require().Len(causes, 1)
		s.Equal("X95", causes[0].Code)
	})

	s.Run("missing description column is a load error", func() {
		path := s.writeWorkbook("codes.xlsx", [][]any{
			{"Unnamed: 0"},
			{"X95"},
		})
		_, err := loadCauses(path)
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeLoadFailed))
	})
}

func (s *LoaderSuite) TestLoad() {
	s.Run("loads all four sources", func() {
		tables, err := Load(slog.New(slog.NewTextHandler(io.Discard, nil)), Sources{
			Deaths:   s.deathsFixture(),
			Divipola: s.divipolaFixture(),
			Causes:   s.causesFixture(),
			Boundary: s.boundaryFixture(),
		})
		s.Require().NoError(err)
		s.Len(tables.Deaths, 3)
		s.Len(tables.Locations, 2)
		s.Len(tables.Causes, 2)
		s.Equal(1, tables.Boundaries.Len())

		// the name-keyed boundary resolves against DIVIPOLA
		depts := tables.Boundaries.Departments()
		s.Require().Len(depts, 1)
		s.Equal("05", depts[0].DepartmentCode)
	})

	s.Run("any missing source fails the whole load", func() {
		_, err := Load(slog.New(slog.NewTextHandler(io.Discard, nil)), Sources{
			Deaths:   s.deathsFixture(),
			Divipola: filepath.Join(s.dir, "missing.xlsx"),
			Causes:   s.causesFixture(),
			Boundary: s.boundaryFixture(),
		})
		s.Require().Error(err)
		s.True(dErrors.Is(err, dErrors.CodeLoadFailed))
	})
}

func (s *LoaderSuite) TestPadCode() {
	s.Equal("05", padCode("5", 2))
	s.Equal("05", padCode("5.0", 2))
	s.Equal("11", padCode("11", 2))
	s.Equal("", padCode("  ", 2))
	s.Equal("05001", municipalityKey("5", "1"))
	s.Equal("05001", municipalityKey("05", "5001"))
	s.Equal("", municipalityKey("05", ""))
}
