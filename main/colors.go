package main

import (
	"image/color"

	"github.com/mazznoer/colorgrad"
)

// palette is a gradient sampled into 256 entries up front, so coloring a
// cell is a table lookup. The color.Color slice feeds paletted GIF frames
// and the raw RGBA table feeds WritePixels.
type palette struct {
	colors []color.Color
	rgba   [256][4]byte
}

func newPalette(grad colorgrad.Gradient) *palette {
	p := &palette{}
	for i, c := range grad.Colors(256) {
		p.colors = append(p.colors, c)
		r, g, b, a := c.RGBA()
		p.rgba[i] = [4]byte{byte(r >> 8), byte(g >> 8), byte(b >> 8), byte(a >> 8)}
	}
	return p
}

// index maps val in [lo,hi] onto a palette entry, clamping off-scale
// values to the ends.
func (p *palette) index(val, lo, hi float64) int {
	if hi <= lo {
		return 0
	}
	t := (val - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return int(t * 255)
}
