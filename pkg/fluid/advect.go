package fluid

// Semi-Lagrangian advection: every interior cell traces backward through
// the velocity field to its source position and samples the previous
// buffer there. Unconditionally stable for any dt at the cost of some
// numerical diffusion (the stable-fluids trade-off).

// advectVelocity transports the velocity field through itself, writing
// into the next buffers. Reads come exclusively from the current buffers,
// so rows can be processed in parallel.
func (s *Sim) advectVelocity(dt float64) {
	scale := dt / s.cfg.Dx
	u, v := s.u.cur, s.v.cur
	nu, nv := s.u.next, s.v.next

	parallelRange(1, s.nx-1, func(i int) {
		for j := 1; j < s.ny-1; j++ {
			c := s.ix(i, j)
			if s.solid[c] {
				nu[c] = 0
				nv[c] = 0
				continue
			}
			px := float64(i) - scale*u[c]
			py := float64(j) - scale*v[c]
			nu[c] = s.sample(u, px, py)
			nv[c] = s.sample(v, px, py)
		}
	})

	s.enforceBoundary(kindU, nu)
	s.enforceBoundary(kindV, nv)
}

// advectScalar transports a scalar field through the current velocity
// field. For density this runs after projection, so transport follows the
// divergence-free velocity.
func (s *Sim) advectScalar(b *buffer, dt float64) {
	scale := dt / s.cfg.Dx
	u, v := s.u.cur, s.v.cur
	src, dst := b.cur, b.next

	parallelRange(1, s.nx-1, func(i int) {
		for j := 1; j < s.ny-1; j++ {
			c := s.ix(i, j)
			if s.solid[c] {
				dst[c] = src[c]
				continue
			}
			px := float64(i) - scale*u[c]
			py := float64(j) - scale*v[c]
			dst[c] = s.sample(src, px, py)
		}
	})

	s.enforceBoundary(kindScalar, dst)
}
