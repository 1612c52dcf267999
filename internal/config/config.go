// Package config loads gosteel settings from a TOML file, a .env file and the
// environment.
//
// Precedence, lowest first:
//  1. Built-in defaults
//  2. gosteel.toml (or the file named by GOSTEEL_CONFIG / --config)
//  3. GOSTEEL_* environment variables, including those set by .env
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/section"
	"github.com/alexiusacademia/gosteel/internal/units"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "gosteel.toml"

// Environment variables that override the file.
const (
	EnvConfig   = "GOSTEEL_CONFIG"
	EnvShapesDB = "GOSTEEL_SHAPES_DB"
	EnvAddr     = "GOSTEEL_ADDR"
)

// ErrNotFound is returned when an explicitly named config file is missing.
var ErrNotFound = errors.New("config file not found")

// Config is the merged configuration.
type Config struct {
	// ShapesDB is a .json or .xlsx shape database. Empty selects the
	// embedded database.
	ShapesDB string               `toml:"shapes_db"`
	Defaults Defaults             `toml:"defaults"`
	Server   Server               `toml:"server"`
	Steel    []material.SteelSpec `toml:"steel"`
	Bolts    []material.BoltSpec  `toml:"bolt"`
	Concrete []ConcreteSpec       `toml:"concrete"`

	// Source is the file the config was read from, if any.
	Source string `toml:"-"`
}

// Defaults are used by commands when a flag is not given.
type Defaults struct {
	Steel    string  `toml:"steel"`
	Bolt     string  `toml:"bolt"`
	Concrete string  `toml:"concrete"` // class name or strength, e.g. "25MPa"
	Cb       float64 `toml:"cb"`
}

// Server configures `gosteel serve`.
type Server struct {
	Addr  string  `toml:"addr"`
	Rate  float64 `toml:"rate"` // requests per second per client
	Burst int     `toml:"burst"`
}

// ConcreteSpec names a concrete class.
type ConcreteSpec struct {
	Name string  `toml:"name"`
	Fc   float64 `toml:"fc"` // MPa
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Defaults: Defaults{
			Steel:    "ASTM A992",
			Bolt:     "8.8",
			Concrete: "25MPa",
			Cb:       1.0,
		},
		Server: Server{
			Addr:  ":8080",
			Rate:  5,
			Burst: 10,
		},
	}
}

// LoadEnv loads KEY=value pairs from the given files (".env" when none) into
// the process environment. Missing files are ignored and variables already
// set are kept.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return nil
}

// Load builds the configuration. An empty path falls back to GOSTEEL_CONFIG
// and then to DefaultFile; only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if path == "" {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultFile
		}
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := cfg.merge(data); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		cfg.Source = path
	case errors.Is(err, fs.ErrNotExist):
		if explicit {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// merge decodes data over the current values. Keys absent from data keep
// their defaults.
func (c *Config) merge(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return err
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvShapesDB); v != "" {
		c.ShapesDB = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
}

// Validate checks values that cannot be caught by decoding.
func (c *Config) Validate() error {
	if c.Server.Rate <= 0 {
		return fmt.Errorf("invalid server.rate: %g (must be positive)", c.Server.Rate)
	}
	if c.Server.Burst < 1 {
		return fmt.Errorf("invalid server.burst: %d (must be at least 1)", c.Server.Burst)
	}
	if c.Defaults.Cb <= 0 {
		return fmt.Errorf("invalid defaults.cb: %g (must be positive)", c.Defaults.Cb)
	}
	for _, s := range c.Concrete {
		if s.Name == "" || s.Fc <= 0 {
			return fmt.Errorf("invalid concrete class %q: fc must be positive", s.Name)
		}
	}
	return nil
}

// Registry returns the built-in material registry extended with the
// configured grades.
func (c *Config) Registry() (*material.Registry, error) {
	return material.DefaultRegistry().With(c.Steel, c.Bolts)
}

// Shapes opens the configured shape database.
func (c *Config) Shapes() (*section.Database, error) {
	if c.ShapesDB == "" {
		return section.Default()
	}
	return section.LoadFile(c.ShapesDB)
}

// ConcreteClass resolves a configured class name or a strength such as "30MPa"
// or "4ksi". An empty name selects the default class.
func (c *Config) ConcreteClass(reg *material.Registry, name string) (material.Concrete, error) {
	if name == "" {
		name = c.Defaults.Concrete
	}
	for _, s := range c.Concrete {
		if strings.EqualFold(s.Name, name) {
			m, err := reg.Concrete(units.New(s.Fc, units.MPa))
			if err != nil {
				return material.Concrete{}, err
			}
			m.Name = s.Name
			return m, nil
		}
	}
	fc, err := units.Parse(name, units.MPa)
	if err != nil {
		return material.Concrete{}, fmt.Errorf("%w: concrete %q", material.ErrMaterialNotFound, name)
	}
	return reg.Concrete(fc)
}
