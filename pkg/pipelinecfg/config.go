// Package pipelinecfg defines the configuration record recognized by the
// RDF-to-IFC pipeline, with YAML parsing and validation.
package pipelinecfg

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SolverKind selects which layout solver the pipeline runs.
type SolverKind string

const (
	SolverHeuristic SolverKind = "HEURISTIC"
	SolverCP        SolverKind = "CP"
)

// Config is the complete set of options recognized by the pipeline, with
// their documented defaults (see DefaultConfig).
type Config struct {
	CeilingHeight float64 `yaml:"ceiling_height" json:"ceiling_height"`
	WallThickness float64 `yaml:"wall_thickness" json:"wall_thickness"`
	SlabThickness float64 `yaml:"slab_thickness" json:"slab_thickness"`

	DoorWidth  float64 `yaml:"door_width" json:"door_width"`
	DoorHeight float64 `yaml:"door_height" json:"door_height"`

	DefaultTargetArea float64 `yaml:"default_target_area" json:"default_target_area"`
	MinSideLength     float64 `yaml:"min_side_length" json:"min_side_length"`

	GridUnit         float64 `yaml:"grid_unit" json:"grid_unit"`
	SingleStoreyMode bool    `yaml:"single_storey_mode" json:"single_storey_mode"`

	Solver             SolverKind `yaml:"solver" json:"solver"`
	SolverTimeLimitSec int        `yaml:"solver_time_limit_sec" json:"solver_time_limit_sec"`
	Seed               uint64     `yaml:"seed" json:"seed"`

	AreaSlackFactor          float64 `yaml:"area_slack_factor" json:"area_slack_factor"`
	ObjectiveAreaWeight      float64 `yaml:"objective_area_weight" json:"objective_area_weight"`
	ObjectiveCompactWeight   float64 `yaml:"objective_compactness_weight" json:"objective_compactness_weight"`
	HeuristicMaxIterPerSpace int     `yaml:"-" json:"-"` // internal tuning knob, not user-configurable

	DebugOutputDir string `yaml:"debug_output_dir,omitempty" json:"debug_output_dir,omitempty"`
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() *Config {
	return &Config{
		CeilingHeight: 2.8,
		WallThickness: 0.15,
		SlabThickness: 0.20,

		DoorWidth:  0.90,
		DoorHeight: 2.00,

		DefaultTargetArea: 15.0,
		MinSideLength:     1.5,

		GridUnit:         0.05,
		SingleStoreyMode: false,

		Solver:             SolverHeuristic,
		SolverTimeLimitSec: 30,
		Seed:               42,

		AreaSlackFactor:        1.15,
		ObjectiveAreaWeight:    10,
		ObjectiveCompactWeight: 1,

		HeuristicMaxIterPerSpace: 200,
	}
}

// Load reads and parses a YAML configuration file, starting from
// DefaultConfig so unspecified fields keep their documented defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pipelinecfg: reading %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("pipelinecfg: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipelinecfg: %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that every field carries a sane, usable value.
func (c *Config) Validate() error {
	switch {
	case c.CeilingHeight <= 0:
		return fmt.Errorf("ceiling_height must be > 0, got %v", c.CeilingHeight)
	case c.WallThickness <= 0:
		return fmt.Errorf("wall_thickness must be > 0, got %v", c.WallThickness)
	case c.SlabThickness <= 0:
		return fmt.Errorf("slab_thickness must be > 0, got %v", c.SlabThickness)
	case c.DoorWidth <= 0:
		return fmt.Errorf("door_width must be > 0, got %v", c.DoorWidth)
	case c.DoorHeight <= 0:
		return fmt.Errorf("door_height must be > 0, got %v", c.DoorHeight)
	case c.DefaultTargetArea <= 0:
		return fmt.Errorf("default_target_area must be > 0, got %v", c.DefaultTargetArea)
	case c.MinSideLength <= 0:
		return fmt.Errorf("min_side_length must be > 0, got %v", c.MinSideLength)
	case c.GridUnit <= 0:
		return fmt.Errorf("grid_unit must be > 0, got %v", c.GridUnit)
	case c.Solver != SolverHeuristic && c.Solver != SolverCP:
		return fmt.Errorf("solver must be HEURISTIC or CP, got %q", c.Solver)
	case c.SolverTimeLimitSec <= 0:
		return fmt.Errorf("solver_time_limit_sec must be > 0, got %v", c.SolverTimeLimitSec)
	case c.AreaSlackFactor < 1:
		return fmt.Errorf("area_slack_factor must be >= 1, got %v", c.AreaSlackFactor)
	}
	if c.HeuristicMaxIterPerSpace <= 0 {
		c.HeuristicMaxIterPerSpace = 200
	}
	return nil
}

// Hash returns a stable digest of the configuration, used to derive
// per-stage random seeds (see pkg/detrand). Two configs that are
// field-for-field equal always hash identically.
func (c *Config) Hash() []byte {
	// json.Marshal on a struct with stable field order gives a
	// reproducible byte stream; struct field order is fixed at compile time.
	data, err := json.Marshal(c)
	if err != nil {
		// Config is always marshalable; this would indicate a programming
		// error (e.g. an unexported field holding a channel), not bad input.
		panic(fmt.Sprintf("pipelinecfg: config not marshalable: %v", err))
	}
	sum := sha256.Sum256(data)
	return sum[:]
}
