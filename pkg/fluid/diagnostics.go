package fluid

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Diagnostics over the settled fields. The relaxation solvers never fail
// on non-convergence; these accessors expose the residuals instead.

// MaxDivergence returns the maximum absolute discrete divergence over the
// interior fluid cells. After projection this is the residual left by the
// fixed iteration budget.
func (s *Sim) MaxDivergence() float64 {
	inv2dx := 1 / (2 * s.cfg.Dx)
	u, v := s.u.cur, s.v.cur
	n := s.ny
	maxDiv := 0.0
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			if s.solid[c] {
				continue
			}
			du := s.neighbor(kindU, u, c, c+n) - s.neighbor(kindU, u, c, c-n)
			dv := s.neighbor(kindV, v, c, c+1) - s.neighbor(kindV, v, c, c-1)
			if d := math.Abs((du + dv) * inv2dx); d > maxDiv {
				maxDiv = d
			}
		}
	}
	return maxDiv
}

// TotalDensity sums density over the interior. The ghost ring is excluded:
// it stores boundary copies, not fluid.
func (s *Sim) TotalDensity() float64 {
	total := 0.0
	for i := 1; i < s.nx-1; i++ {
		row := s.dens.cur[i*s.ny+1 : i*s.ny+s.ny-1]
		total += floats.Sum(row)
	}
	return total
}

// MaxVelocity returns the largest interior speed.
func (s *Sim) MaxVelocity() float64 {
	n := s.ny
	maxVel := 0.0
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			sp := math.Hypot(s.u.cur[c], s.v.cur[c])
			if sp > maxVel {
				maxVel = sp
			}
		}
	}
	return maxVel
}

// AdaptiveDt suggests a tick length from a CFL-style bound on the peak
// cell crossing speed, clamped to [base/10, 2*base]. The solver is stable
// for any dt; the hint trades accuracy against wall-clock for front ends
// that want it.
func (s *Sim) AdaptiveDt(base float64) float64 {
	n := s.ny
	maxVel := 0.0
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			if s.solid[c] {
				continue
			}
			if vel := math.Abs(s.u.cur[c]) + math.Abs(s.v.cur[c]); vel > maxVel {
				maxVel = vel
			}
		}
	}
	if maxVel == 0 {
		return base
	}
	dt := 0.8 * s.cfg.Dx / maxVel
	return math.Max(math.Min(dt, base*2), base*0.1)
}

// Reynolds estimates the Reynolds number from the peak speed and the
// domain extent, Re = v*L/nu with unit density. Returns +Inf for an
// inviscid simulation.
func (s *Sim) Reynolds() float64 {
	if s.cfg.Viscosity == 0 {
		return math.Inf(1)
	}
	extent := float64(s.nx-2) * s.cfg.Dx
	return s.MaxVelocity() * extent / s.cfg.Viscosity
}

// Pressure returns a view of the pressure field from the last projection.
func (s *Sim) Pressure() ScalarField {
	return s.scalarView(s.p)
}

// Vorticity computes the curl of the velocity field.
func (s *Sim) Vorticity() ScalarField {
	vals := make([]float64, s.cells)
	inv2dx := 1 / (2 * s.cfg.Dx)
	u, v := s.u.cur, s.v.cur
	n := s.ny
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			if s.solid[c] {
				continue
			}
			dvdx := (s.neighbor(kindV, v, c, c+n) - s.neighbor(kindV, v, c, c-n)) * inv2dx
			dudy := (s.neighbor(kindU, u, c, c+1) - s.neighbor(kindU, u, c, c-1)) * inv2dx
			vals[c] = dvdx - dudy
		}
	}
	return s.fieldFromValues(vals)
}

// VelocityMagnitude computes |v| per cell.
func (s *Sim) VelocityMagnitude() ScalarField {
	vals := make([]float64, s.cells)
	n := s.ny
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			vals[c] = math.Hypot(s.u.cur[c], s.v.cur[c])
		}
	}
	return s.fieldFromValues(vals)
}

func (s *Sim) fieldFromValues(vals []float64) ScalarField {
	minVal := floats.Min(vals)
	maxVal := floats.Max(vals)
	return ScalarField{
		NumX:     s.nx,
		NumY:     s.ny,
		MinValue: minVal,
		MaxValue: maxVal,
		dx:       s.cfg.Dx,
		values:   vals,
	}
}

// finite reports whether every value in x is a real number.
func finite(x []float64) bool {
	if floats.HasNaN(x) {
		return false
	}
	return !math.IsInf(floats.Norm(x, math.Inf(1)), 1)
}
