package fluid

// Pressure projection: remove the divergent component of the velocity
// field so mass is conserved. Divergence and pressure gradient use central
// differences over 2*dx; the Poisson solve reuses the same bounded Jacobi
// relaxation as diffusion. Residual divergence left by the fixed iteration
// budget is an accepted, bounded error exposed through MaxDivergence.

// project computes the pressure field from the divergence of the current
// velocity and writes the corrected velocity into the next buffers.
func (s *Sim) project() {
	s.computeDivergence(s.div)
	s.solvePressure()
	s.subtractGradient()
}

// computeDivergence fills dst with the discrete divergence of the current
// velocity over the interior.
func (s *Sim) computeDivergence(dst []float64) {
	inv2dx := 1 / (2 * s.cfg.Dx)
	u, v := s.u.cur, s.v.cur
	n := s.ny

	parallelRange(1, s.nx-1, func(i int) {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			if s.solid[c] {
				dst[c] = 0
				continue
			}
			du := s.neighbor(kindU, u, c, c+n) - s.neighbor(kindU, u, c, c-n)
			dv := s.neighbor(kindV, v, c, c+1) - s.neighbor(kindV, v, c, c-1)
			dst[c] = (du + dv) * inv2dx
		}
	})
	s.enforceBoundary(kindScalar, dst)
}

// solvePressure relaxes Laplacian(p) = div with the configured iteration
// budget. Pressure starts from zero every step so ticks are deterministic;
// the previous step's field never seeds the solve.
func (s *Sim) solvePressure() {
	iters := s.cfg.RelaxIters
	dx2 := s.cfg.Dx * s.cfg.Dx
	n := s.ny

	fill(s.p, 0)
	fill(s.work, 0)

	// The ping-pong parity is chosen so the final iterate lands in s.p.
	// Both slices start zeroed, so the initial read side is picked by the
	// same parity; src and dst must never alias or the row workers would
	// read cells another worker is writing.
	src := s.p
	if iters%2 == 1 {
		src = s.work
	}
	for k := 0; k < iters; k++ {
		dst := s.work
		if (iters-1-k)%2 == 0 {
			dst = s.p
		}

		parallelRange(1, s.nx-1, func(i int) {
			for j := 1; j < s.ny-1; j++ {
				c := i*n + j
				if s.solid[c] {
					dst[c] = src[c]
					continue
				}
				sum := s.neighbor(kindScalar, src, c, c-n) +
					s.neighbor(kindScalar, src, c, c+n) +
					s.neighbor(kindScalar, src, c, c-1) +
					s.neighbor(kindScalar, src, c, c+1)
				dst[c] = 0.25 * (sum - dx2*s.div[c])
			}
		})

		s.enforceBoundary(kindScalar, dst)
		src = dst
	}
}

// subtractGradient removes the pressure gradient from the current velocity,
// writing the corrected field into the next buffers.
func (s *Sim) subtractGradient() {
	inv2dx := 1 / (2 * s.cfg.Dx)
	u, v := s.u.cur, s.v.cur
	nu, nv := s.u.next, s.v.next
	p := s.p
	n := s.ny

	parallelRange(1, s.nx-1, func(i int) {
		for j := 1; j < s.ny-1; j++ {
			c := i*n + j
			if s.solid[c] {
				nu[c] = 0
				nv[c] = 0
				continue
			}
			gx := (s.neighbor(kindScalar, p, c, c+n) - s.neighbor(kindScalar, p, c, c-n)) * inv2dx
			gy := (s.neighbor(kindScalar, p, c, c+1) - s.neighbor(kindScalar, p, c, c-1)) * inv2dx
			nu[c] = u[c] - gx
			nv[c] = v[c] - gy
		}
	})

	s.enforceBoundary(kindU, nu)
	s.enforceBoundary(kindV, nv)
}
