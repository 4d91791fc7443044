package pipelinecfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should validate cleanly, got: %v", err)
	}
}

func TestValidateRejectsNonPositiveFields(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WallThickness = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for zero wall_thickness")
	}
}

func TestValidateRejectsUnknownSolver(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Solver = "BOGUS"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unrecognized solver")
	}
}

func TestHashIsStableAndSensitiveToChanges(t *testing.T) {
	a := DefaultConfig()
	b := DefaultConfig()
	if string(a.Hash()) != string(b.Hash()) {
		t.Error("expected two default configs to hash identically")
	}

	b.Seed = a.Seed + 1
	if string(a.Hash()) == string(b.Hash()) {
		t.Error("expected a changed field to change the hash")
	}
}

func TestLoadReadsYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	yaml := "seed: 99\nsolver: CP\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Seed != 99 {
		t.Errorf("expected seed 99, got %d", cfg.Seed)
	}
	if cfg.Solver != SolverCP {
		t.Errorf("expected solver CP, got %v", cfg.Solver)
	}
	// unspecified fields keep their documented defaults
	if cfg.CeilingHeight != DefaultConfig().CeilingHeight {
		t.Errorf("expected ceiling_height to keep its default, got %v", cfg.CeilingHeight)
	}
}

func TestLoadRejectsInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("seed: [this is not a uint\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed YAML")
	}
}

func TestLoadRejectsMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}
