package fluid

// Implicit diffusion: solve x - k*dt*Laplacian(x) = x0 with a fixed number
// of Jacobi iterations. Each iteration reads only the previous estimate,
// so cell updates within an iteration are independent. The iteration count
// is a configuration parameter, a deliberate bounded-cost choice; the
// result is good-enough smoothing, not an exact solve.

// diffuse relaxes the field in b, leaving the result in b.next for the
// orchestrator to validate and swap in. b.cur doubles as the right-hand
// side x0 and the initial estimate; intermediate iterates ping-pong
// between b.next and the scratch slice so the final one lands in b.next.
func (s *Sim) diffuse(kind fieldKind, b *buffer, coeff, dt float64) {
	iters := s.cfg.RelaxIters
	a := coeff * dt / (s.cfg.Dx * s.cfg.Dx)
	inv := 1 / (1 + 4*a)
	x0 := b.cur
	n := s.ny

	src := b.cur
	for k := 0; k < iters; k++ {
		dst := b.next
		if (iters-1-k)%2 == 1 {
			dst = s.work
		}

		parallelRange(1, s.nx-1, func(i int) {
			for j := 1; j < s.ny-1; j++ {
				c := i*n + j
				if s.solid[c] {
					dst[c] = src[c]
					continue
				}
				sum := s.neighbor(kind, src, c, c-n) +
					s.neighbor(kind, src, c, c+n) +
					s.neighbor(kind, src, c, c-1) +
					s.neighbor(kind, src, c, c+1)
				dst[c] = (x0[c] + a*sum) * inv
			}
		})

		// Re-clamp the ring every iteration, not only after the last
		// one, so wall values cannot leak inward across iterations.
		s.enforceBoundary(kind, dst)
		src = dst
	}
}
