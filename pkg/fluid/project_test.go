package fluid

import (
	"math"
	"testing"
)

// A single smooth divergent mode on a periodic grid: projection must
// remove all but a small residual. The central 2*dx stencil cannot cancel
// the divergence exactly, so the assertion is a reduction factor and the
// measured residual is logged.
func TestProjectionRemovesSmoothDivergence(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 32, 32
	cfg.Boundary = BoundaryPeriodic
	cfg.RelaxIters = 800
	s := mustNew(t, cfg)

	n := float64(s.nx - 2)
	for i := 1; i < s.nx-1; i++ {
		val := math.Sin(2 * math.Pi * float64(i-1) / n)
		for j := 1; j < s.ny-1; j++ {
			s.u.cur[s.ix(i, j)] = val
		}
	}
	s.enforceBoundary(kindU, s.u.cur)

	before := s.MaxDivergence()
	s.project()
	if err := s.commitVelocity(); err != nil {
		t.Fatal(err)
	}
	after := s.MaxDivergence()

	t.Logf("divergence %g -> %g (factor %g)", before, after, after/before)
	if before == 0 {
		t.Fatal("setup produced no divergence")
	}
	if after > 0.05*before {
		t.Errorf("residual divergence %g, want below %g (5%% of %g)", after, 0.05*before, before)
	}
}

// A radial outward push in a closed box: broader spectrum, so only a
// coarser reduction is guaranteed.
func TestProjectionReducesRadialDivergence(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 24, 24
	cfg.RelaxIters = 600
	s := mustNew(t, cfg)

	cx := float64(s.nx-1) / 2
	cy := float64(s.ny-1) / 2
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			dx, dy := float64(i)-cx, float64(j)-cy
			dist := math.Hypot(dx, dy)
			if dist == 0 {
				continue
			}
			c := s.ix(i, j)
			s.u.cur[c] = dx / dist
			s.v.cur[c] = dy / dist
		}
	}
	s.enforceBoundary(kindU, s.u.cur)
	s.enforceBoundary(kindV, s.v.cur)

	before := s.MaxDivergence()
	s.project()
	if err := s.commitVelocity(); err != nil {
		t.Fatal(err)
	}
	after := s.MaxDivergence()

	t.Logf("divergence %g -> %g (factor %g)", before, after, after/before)
	if after >= 0.7*before {
		t.Errorf("residual divergence %g, want below %g", after, 0.7*before)
	}
}

// Projecting a divergence-free field is a no-op: the pressure solve never
// leaves zero and the velocity is untouched.
func TestProjectionOfDivergenceFreeField(t *testing.T) {
	cfg := testConfig()
	cfg.Boundary = BoundaryPeriodic
	s := mustNew(t, cfg)
	fill(s.u.cur, 1)
	fill(s.v.cur, -2)

	s.project()
	if err := s.commitVelocity(); err != nil {
		t.Fatal(err)
	}

	p := s.Pressure()
	if p.MinValue != 0 || p.MaxValue != 0 {
		t.Errorf("pressure range [%g,%g], want exactly zero", p.MinValue, p.MaxValue)
	}
	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := s.ix(i, j)
			if s.u.cur[c] != 1 || s.v.cur[c] != -2 {
				t.Fatalf("velocity at (%d,%d) changed to (%g,%g)", i, j, s.u.cur[c], s.v.cur[c])
			}
		}
	}
}

// The pressure field is rebuilt from zero each projection, so two ticks
// from the same state produce identical results regardless of history.
func TestProjectionIsDeterministic(t *testing.T) {
	run := func() []float64 {
		cfg := testConfig()
		cfg.RelaxIters = 120
		s := mustNew(t, cfg)
		s.InjectForceRadius(8, 8, 1, 0.5, 3)
		if _, err := s.Step(0.1); err != nil {
			t.Fatal(err)
		}
		out := make([]float64, s.cells)
		copy(out, s.u.cur)
		return out
	}

	a, b := run(), run()
	for c := range a {
		if a[c] != b[c] {
			t.Fatalf("runs diverge at flat index %d: %g vs %g", c, a[c], b[c])
		}
	}
}

// An odd relaxation budget flips which scratch slice the Jacobi ping-pong
// starts from; the read and write sides must never alias, so full ticks
// stay race-free and repeated runs stay bit-identical for every budget
// parity. Run with -race to check the sweep workers directly.
func TestOddRelaxationBudget(t *testing.T) {
	run := func(iters int) ([]float64, float64) {
		cfg := testConfig()
		cfg.RelaxIters = iters
		s := mustNew(t, cfg)
		s.InjectForceRadius(8, 8, 1, 0.5, 3)
		var residual float64
		for n := 0; n < 3; n++ {
			snap, err := s.Step(cfg.Dt)
			if err != nil {
				t.Fatalf("iters=%d tick %d: %v", iters, n, err)
			}
			residual = snap.MaxDivergence
		}
		out := make([]float64, s.cells)
		copy(out, s.u.cur)
		return out, residual
	}

	for _, iters := range []int{1, 5, 121} {
		a, ra := run(iters)
		b, rb := run(iters)
		if ra != rb {
			t.Errorf("iters=%d: residuals differ across runs: %g vs %g", iters, ra, rb)
		}
		for c := range a {
			if a[c] != b[c] {
				t.Fatalf("iters=%d: runs diverge at flat index %d: %g vs %g", iters, c, a[c], b[c])
			}
		}
	}

	// Enough odd iterations must still resolve the pressure solve: the
	// final iterate lands in the pressure slice, not the scratch.
	cfg := testConfig()
	cfg.RelaxIters = 121
	s := mustNew(t, cfg)
	s.u.cur[s.ix(8, 8)] = 1
	before := s.MaxDivergence()
	s.project()
	if err := s.commitVelocity(); err != nil {
		t.Fatal(err)
	}
	after := s.MaxDivergence()
	t.Logf("odd-budget divergence %g -> %g", before, after)
	if after >= before {
		t.Errorf("divergence %g did not drop from %g with an odd budget", after, before)
	}
	p := s.Pressure()
	if p.MinValue == 0 && p.MaxValue == 0 {
		t.Error("pressure slice is all zero; the final iterate landed in scratch")
	}
}

// Divergence and gradient stencils skip solid cells, so the corrected
// velocity inside an obstacle stays exactly zero.
func TestProjectionKeepsObstaclesStill(t *testing.T) {
	cfg := testConfig()
	cfg.RelaxIters = 120
	s := mustNew(t, cfg)
	s.SetCircularObstacle(8, 8, 2)
	s.InjectForce(4, 8, 2, 0)
	if _, err := s.Step(0.1); err != nil {
		t.Fatal(err)
	}

	for i := 1; i < s.nx-1; i++ {
		for j := 1; j < s.ny-1; j++ {
			c := s.ix(i, j)
			if s.solid[c] && (s.u.cur[c] != 0 || s.v.cur[c] != 0) {
				t.Fatalf("solid cell (%d,%d) has velocity (%g,%g)", i, j, s.u.cur[c], s.v.cur[c])
			}
		}
	}
}
