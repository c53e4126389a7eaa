package main

import "flag"

// Command-line flags controlling runtime behavior. Simulation parameters
// live in the JSON config; flags only select the mode and output targets.
var (
	// configFlag points at a JSON file overriding the default parameters.
	configFlag = flag.String("config", "", "path to a JSON configuration file")

	// gifFlag switches to headless mode and writes an animated GIF of the
	// density field to the given path.
	gifFlag = flag.String("gif", "", "render headlessly and write an animated GIF to this path")

	// framesFlag bounds the headless run length in ticks.
	framesFlag = flag.Int("frames", 240, "number of ticks to render in headless mode")

	// heatmapFlag writes a density heat map PNG after the headless run.
	heatmapFlag = flag.String("heatmap", "", "write a density heat map PNG after the headless run")

	// residualsFlag writes a plot of the per-tick projection residual,
	// useful when tuning the relaxation iteration budget.
	residualsFlag = flag.String("residuals", "", "write a divergence residual plot PNG after the headless run")

	// obstacleFlag drops a circular obstacle in the middle of the stream.
	obstacleFlag = flag.Bool("obstacle", false, "start with a circular obstacle in the center of the grid")

	// adaptiveDtFlag lets the viewer shrink or stretch the tick with a
	// CFL bound on the peak speed instead of using the configured dt.
	adaptiveDtFlag = flag.Bool("adaptive-dt", false, "scale the tick length by the peak flow speed")

	// debugFlag enables the FPS and solver overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and solver state overlay")
)
