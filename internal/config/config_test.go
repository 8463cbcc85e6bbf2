package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	want := DefaultConfig()
	if *cfg != *want {
		t.Errorf("Load = %+v, want defaults %+v", cfg, want)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadFromFile(t *testing.T) {
	dir := writeConfig(t, `
[market]
spot = 105.0
vol = 0.3

[simulation]
paths = 5000
steps = 12
antithetic = true

[output]
precision = 6
format = "json"

[logging]
level = "debug"
`)

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if cfg.Market.Spot != 105 || cfg.Market.Vol != 0.3 {
		t.Errorf("market = %+v", cfg.Market)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Market.Rate != 0.05 {
		t.Errorf("Rate = %v, want the 0.05 default", cfg.Market.Rate)
	}
	if cfg.Simulation.Paths != 5000 || cfg.Simulation.Steps != 12 || !cfg.Simulation.Antithetic {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Simulation.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want the 0.95 default", cfg.Simulation.Confidence)
	}
	if cfg.Output.Precision != 6 || cfg.Output.Format != "json" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	testCases := []struct {
		name string
		body string
		want string
	}{
		{"bad confidence", "[simulation]\nconfidence = 1.5\n", "simulation"},
		{"bad format", "[output]\nformat = \"yaml\"\n", "output format"},
		{"bad level", "[logging]\nlevel = \"trace\"\n", "log level"},
		{"negative vol", "[market]\nvol = -0.2\n", "vol"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load error = %v, want mention of %q", err, tc.want)
			}
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PRICER_PATHS", "777")
	t.Setenv("PRICER_SEED", "42")
	t.Setenv("PRICER_WORKERS", "3")
	t.Setenv("PRICER_LOG_LEVEL", "warn")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load returned %v", err)
	}
	if cfg.Simulation.Paths != 777 || cfg.Simulation.Seed != 42 || cfg.Simulation.Workers != 3 {
		t.Errorf("simulation = %+v", cfg.Simulation)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Level = %v, want warn", cfg.Logging.Level)
	}
}

func TestEnvOverrideRejectsGarbage(t *testing.T) {
	t.Setenv("PRICER_PATHS", "many")
	if _, err := Load(t.TempDir()); err == nil {
		t.Error("Load accepted a non-numeric PRICER_PATHS")
	}
}

func TestWriteTemplate(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteTemplate(dir)
	if err != nil {
		t.Fatalf("WriteTemplate returned %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("template written to %s, want inside %s", path, dir)
	}

	// The generated template must load and validate as-is.
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("template did not load: %v", err)
	}
	if cfg.Simulation.Paths != 100_000 {
		t.Errorf("template paths = %d, want 100000", cfg.Simulation.Paths)
	}

	if _, err := WriteTemplate(dir); err == nil {
		t.Error("WriteTemplate overwrote an existing config")
	}
}

func TestSimulationToModel(t *testing.T) {
	section := SimulationConfig{Paths: 10, Steps: 2, Seed: 5, Antithetic: true, Confidence: 0.9, Workers: 4}
	got := section.ToModel()
	if got.Paths != 10 || got.Steps != 2 || got.Seed != 5 || !got.Antithetic || got.Confidence != 0.9 || got.Workers != 4 {
		t.Errorf("ToModel = %+v", got)
	}
}
