package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexiusacademia/gosteel/internal/material"
	"github.com/alexiusacademia/gosteel/internal/units"
)

const sample = `
shapes_db = "shapes.json"

[defaults]
steel = "ASTM A36"
cb = 1.14

[server]
addr = ":9090"
rate = 2.5

[[steel]]
name = "S355"
fy = 355
fu = 510
e = 210

[[bolt]]
name = "Grade 5.6"
proof = 280
fy = 300
fu = 500

[[concrete]]
name = "C30"
fc = 30
`

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvShapesDB, "")
	t.Setenv(EnvAddr, "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != "" {
		t.Errorf("Source = %q, want empty", cfg.Source)
	}
	if cfg.Defaults.Steel != "ASTM A992" || cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "gosteel.toml", sample)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q", cfg.Source)
	}
	if cfg.ShapesDB != "shapes.json" {
		t.Errorf("ShapesDB = %q", cfg.ShapesDB)
	}
	if cfg.Defaults.Steel != "ASTM A36" || cfg.Defaults.Cb != 1.14 {
		t.Errorf("Defaults = %+v", cfg.Defaults)
	}
	// keys absent from the file keep their defaults
	if cfg.Defaults.Bolt != "8.8" {
		t.Errorf("Defaults.Bolt = %q, want 8.8", cfg.Defaults.Bolt)
	}
	if cfg.Server.Addr != ":9090" || cfg.Server.Rate != 2.5 || cfg.Server.Burst != 10 {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if len(cfg.Steel) != 1 || len(cfg.Bolts) != 1 || len(cfg.Concrete) != 1 {
		t.Fatalf("grades: steel=%d bolt=%d concrete=%d", len(cfg.Steel), len(cfg.Bolts), len(cfg.Concrete))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "gosteel.toml", sample)
	t.Setenv(EnvConfig, path)
	t.Setenv(EnvShapesDB, "aisc.xlsx")
	t.Setenv(EnvAddr, "127.0.0.1:7000")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, want %q", cfg.Source, path)
	}
	if cfg.ShapesDB != "aisc.xlsx" {
		t.Errorf("ShapesDB = %q", cfg.ShapesDB)
	}
	if cfg.Server.Addr != "127.0.0.1:7000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "shapes_db = "},
		{"unknown key", "colour = \"red\""},
		{"bad rate", "[server]\nrate = 0.0"},
		{"bad burst", "[server]\nburst = 0"},
		{"bad cb", "[defaults]\ncb = -1.0"},
		{"bad concrete", "[[concrete]]\nname = \"C0\"\nfc = 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "gosteel.toml", tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	t.Run("missing explicit file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("err = %v, want ErrNotFound", err)
		}
	})
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAddr, ":1")
	t.Cleanup(func() { os.Unsetenv("GOSTEEL_DOTENV_MARKER") })

	path := writeFile(t, ".env", "GOSTEEL_DOTENV_MARKER=yes\nGOSTEEL_ADDR=:6060\n")
	if err := LoadEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := os.Getenv("GOSTEEL_DOTENV_MARKER"); got != "yes" {
		t.Errorf("marker = %q, want yes", got)
	}
	if got := os.Getenv(EnvAddr); got != ":1" {
		t.Errorf("GOSTEEL_ADDR = %q, existing value should win", got)
	}
}

func TestRegistry(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, "gosteel.toml", sample))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	s, err := reg.Steel("S355")
	if err != nil {
		t.Fatalf("Steel(S355): %v", err)
	}
	if got := s.Fy.MustIn(units.MPa); got != 355 {
		t.Errorf("Fy = %v", got)
	}
	b, err := reg.Bolt("5.6")
	if err != nil {
		t.Fatalf("Bolt(5.6): %v", err)
	}
	if got := b.Fu.MustIn(units.MPa); got != 500 {
		t.Errorf("Fu = %v", got)
	}
	if _, err := reg.Steel("A992"); err != nil {
		t.Errorf("built-in grades should remain: %v", err)
	}
}

func TestConcreteClass(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeFile(t, "gosteel.toml", sample))
	if err != nil {
		t.Fatal(err)
	}
	reg := material.DefaultRegistry()

	tests := []struct {
		in       string
		wantName string
		wantFc   float64
	}{
		{"C30", "C30", 30},
		{"c30", "C30", 30},
		{"", "Concrete 25MPa", 25},
		{"35", "Concrete 35MPa", 35},
	}
	for _, tt := range tests {
		c, err := cfg.ConcreteClass(reg, tt.in)
		if err != nil {
			t.Errorf("ConcreteClass(%q): %v", tt.in, err)
			continue
		}
		if c.Name != tt.wantName {
			t.Errorf("ConcreteClass(%q).Name = %q, want %q", tt.in, c.Name, tt.wantName)
		}
		if got := c.Fc.MustIn(units.MPa); got != tt.wantFc {
			t.Errorf("ConcreteClass(%q).Fc = %v, want %v", tt.in, got, tt.wantFc)
		}
	}

	if _, err := cfg.ConcreteClass(reg, "C99"); !errors.Is(err, material.ErrMaterialNotFound) {
		t.Errorf("err = %v, want ErrMaterialNotFound", err)
	}
}
