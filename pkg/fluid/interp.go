package fluid

import "math"

// sample returns the bilinearly interpolated value of x at the continuous
// coordinate (px, py), in cell units. This is the single point where
// continuous coordinates resolve to discrete grid values.
//
// Coordinates are clamped into [0, NumX-1]x[0, NumY-1] so off-grid
// positions extrapolate the edge value. Under the periodic policy they
// wrap first; the period is the interior cell count since the ring is
// ghost storage kept in sync with the opposite edge.
func (s *Sim) sample(x []float64, px, py float64) float64 {
	if s.cfg.Boundary == BoundaryPeriodic {
		px = wrapCoord(px, s.nx)
		py = wrapCoord(py, s.ny)
	} else {
		px = clampCoord(px, 0, float64(s.nx-1))
		py = clampCoord(py, 0, float64(s.ny-1))
	}

	// The index clamps also keep a NaN coordinate (possible when the
	// velocity field is already corrupt) from indexing out of range; the
	// sampled value stays NaN and the stage's finite check reports it.
	i0 := int(math.Floor(px))
	j0 := int(math.Floor(py))
	if i0 < 0 {
		i0 = 0
	}
	if i0 > s.nx-2 {
		i0 = s.nx - 2
	}
	if j0 < 0 {
		j0 = 0
	}
	if j0 > s.ny-2 {
		j0 = s.ny - 2
	}
	tx := px - float64(i0)
	ty := py - float64(j0)
	i1 := i0 + 1
	j1 := j0 + 1

	n := s.ny
	return (1-tx)*(1-ty)*x[i0*n+j0] +
		tx*(1-ty)*x[i1*n+j0] +
		tx*ty*x[i1*n+j1] +
		(1-tx)*ty*x[i0*n+j1]
}

func clampCoord(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// wrapCoord maps v onto [1, dim-1) with period dim-2, so traced positions
// that leave the domain re-enter from the opposite side.
func wrapCoord(v float64, dim int) float64 {
	period := float64(dim - 2)
	v = math.Mod(v-1, period)
	if v < 0 {
		v += period
	}
	return v + 1
}
