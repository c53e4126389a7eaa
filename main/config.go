package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/TheFellow/fluidsim/pkg/fluid"
)

// appConfig collects the solver parameters and the knobs the front ends
// need. Loaded from JSON when -config is given, otherwise the defaults
// below apply.
type appConfig struct {
	// Grid
	GridWidth  int     `json:"gridWidth"`
	GridHeight int     `json:"gridHeight"`
	Dx         float64 `json:"dx"`

	// Solver
	Viscosity  float64 `json:"viscosity"`
	Diffusion  float64 `json:"diffusion"`
	Boundary   string  `json:"boundary"` // solid, open or periodic
	RelaxIters int     `json:"relaxIters"`
	Dt         float64 `json:"dt"`

	// Interaction and rendering
	WindowScale int     `json:"windowScale"`
	ForceScale  float64 `json:"forceScale"`
	DyePerTick  float64 `json:"dyePerTick"`
	BrushRadius int     `json:"brushRadius"`
	GifDelay    int     `json:"gifDelay"` // hundredths of a second per frame
}

var defaultConfig = appConfig{
	GridWidth:   258,
	GridHeight:  130,
	Dx:          1,
	Viscosity:   0.0001,
	Diffusion:   0.00005,
	Boundary:    "solid",
	RelaxIters:  40,
	Dt:          0.1,
	WindowScale: 4,
	ForceScale:  40,
	DyePerTick:  6,
	BrushRadius: 3,
	GifDelay:    3,
}

func loadConfig(path string) (appConfig, error) {
	cfg := defaultConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// fluidConfig maps the JSON-friendly form onto the solver's configuration.
func (c appConfig) fluidConfig() (fluid.Config, error) {
	var b fluid.Boundary
	switch c.Boundary {
	case "", "solid":
		b = fluid.BoundarySolid
	case "open":
		b = fluid.BoundaryOpen
	case "periodic":
		b = fluid.BoundaryPeriodic
	default:
		return fluid.Config{}, fmt.Errorf("unknown boundary policy %q", c.Boundary)
	}
	return fluid.Config{
		Width:      c.GridWidth,
		Height:     c.GridHeight,
		Dx:         c.Dx,
		Viscosity:  c.Viscosity,
		Diffusion:  c.Diffusion,
		Boundary:   b,
		RelaxIters: c.RelaxIters,
		Dt:         c.Dt,
	}, nil
}
