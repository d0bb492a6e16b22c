package config

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"
)

// Server captures process-level configuration so main stays lean. All values
// come from environment variables; there are no CLI flags.
type Server struct {
	Port    int    `env:"PORT" envDefault:"8050"`
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	DeathsFile   string `env:"DEATHS_FILE" envDefault:"NoFetal2019.xlsx"`
	DivipolaFile string `env:"DIVIPOLA_FILE" envDefault:"Divipola.xlsx"`
	CausesFile   string `env:"CAUSES_FILE" envDefault:"CodigosDeMuerte.xlsx"`
	BoundaryFile string `env:"BOUNDARY_FILE" envDefault:"colombia_departamentos.geojson"`

	// HomicidePrefixes selects the cause codes counted as homicides for the
	// violent-municipality ranking. "X9" covers ICD-10 assault codes X90-X99.
	HomicidePrefixes []string `env:"HOMICIDE_CODE_PREFIXES" envDefault:"X9"`
}

// FromEnv builds a Server config from environment variables.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr is the listen address derived from Port.
func (s Server) Addr() string { return ":" + strconv.Itoa(s.Port) }

func (s Server) DeathsPath() string   { return filepath.Join(s.DataDir, s.DeathsFile) }
func (s Server) DivipolaPath() string { return filepath.Join(s.DataDir, s.DivipolaFile) }
func (s Server) CausesPath() string   { return filepath.Join(s.DataDir, s.CausesFile) }
func (s Server) BoundaryPath() string { return filepath.Join(s.DataDir, s.BoundaryFile) }
