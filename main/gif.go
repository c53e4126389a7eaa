package main

import (
	"fmt"
	"image"
	"image/gif"
	"log"
	"os"

	"github.com/mazznoer/colorgrad"

	"github.com/TheFellow/fluidsim/pkg/fluid"
)

// runHeadless drives the simulation with a steady emitter on the left
// edge and writes the artifacts selected by the flags: an animated GIF of
// the density field, a final heat map, and a residual plot.
func runHeadless(sim *fluid.Sim, cfg appConfig, frames int) error {
	pal := newPalette(colorgrad.Inferno())
	var anim gif.GIF
	residuals := make([]float64, 0, frames)

	emitJ := cfg.GridHeight / 2
	peak := 1.0
	for n := 0; n < frames; n++ {
		sim.InjectForceRadius(3, emitJ, cfg.ForceScale*cfg.Dt, 0, cfg.BrushRadius)
		sim.InjectDensity(3, emitJ, cfg.DyePerTick)

		snap, err := sim.Step(cfg.Dt)
		if err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}
		residuals = append(residuals, snap.MaxDivergence)

		if *gifFlag != "" {
			// Normalize against the running peak so early frames do not
			// flicker as dye accumulates.
			if snap.Density.MaxValue > peak {
				peak = snap.Density.MaxValue
			}
			anim.Image = append(anim.Image, renderFrame(sim, snap, pal, peak))
			anim.Delay = append(anim.Delay, cfg.GifDelay)
		}
		if (n+1)&n == 0 {
			log.Printf("frame %d: t=%.2f residual=%.3g", n+1, snap.Time, snap.MaxDivergence)
		}
	}

	if *gifFlag != "" {
		if err := writeGIF(*gifFlag, &anim); err != nil {
			return err
		}
		log.Printf("wrote %d frames to %s", len(anim.Image), *gifFlag)
	}
	if *heatmapFlag != "" {
		if err := saveHeatmap(sim.Snapshot().Density, "Density", *heatmapFlag); err != nil {
			return err
		}
		log.Printf("wrote density heat map to %s", *heatmapFlag)
	}
	if *residualsFlag != "" {
		if err := saveResiduals(residuals, cfg.Dt, *residualsFlag); err != nil {
			return err
		}
		log.Printf("wrote residual plot to %s", *residualsFlag)
	}
	return nil
}

// renderFrame rasterizes the interior density onto a paletted frame.
// Obstacle cells get the top palette entry so they read as hot spots in
// the stream.
func renderFrame(sim *fluid.Sim, snap fluid.FrameSnapshot, pal *palette, peak float64) *image.Paletted {
	w := snap.Density.NumX - 2
	h := snap.Density.NumY - 2
	img := image.NewPaletted(image.Rect(0, 0, w, h), pal.colors)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if sim.IsSolid(x+1, y+1) {
				img.SetColorIndex(x, y, 255)
				continue
			}
			d, _ := snap.Density.Value(x+1, y+1)
			img.SetColorIndex(x, y, uint8(pal.index(d, 0, peak)))
		}
	}
	return img
}

func writeGIF(path string, anim *gif.GIF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, anim)
}
