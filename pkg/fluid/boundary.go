package fluid

// Boundary selects how out-of-range neighbor accesses resolve at the grid
// edges. The policy is uniform per simulation instance.
type Boundary int

const (
	// BoundarySolid is a no-slip wall: velocity on the ring is zero,
	// scalars mirror the adjacent interior cell.
	BoundarySolid Boundary = iota
	// BoundaryOpen is a zero-gradient outflow: the ring copies the
	// adjacent interior cell for every field kind.
	BoundaryOpen
	// BoundaryPeriodic wraps: the ring copies the opposite interior edge.
	BoundaryPeriodic
)

func (b Boundary) String() string {
	switch b {
	case BoundarySolid:
		return "solid"
	case BoundaryOpen:
		return "open"
	case BoundaryPeriodic:
		return "periodic"
	}
	return "unknown"
}

// fieldKind distinguishes scalar fields from the two velocity components
// when enforcing boundary values.
type fieldKind int

const (
	kindScalar fieldKind = iota
	kindU
	kindV
)

// enforceBoundary writes the ghost ring of x according to the active
// policy and zeroes velocity components inside solid cells. It is applied
// after every sweep and after every relaxation iteration so boundary
// leakage cannot propagate inward.
func (s *Sim) enforceBoundary(kind fieldKind, x []float64) {
	nx, ny := s.nx, s.ny

	switch s.cfg.Boundary {
	case BoundaryPeriodic:
		for j := 1; j < ny-1; j++ {
			x[s.ix(0, j)] = x[s.ix(nx-2, j)]
			x[s.ix(nx-1, j)] = x[s.ix(1, j)]
		}
		for i := 1; i < nx-1; i++ {
			x[s.ix(i, 0)] = x[s.ix(i, ny-2)]
			x[s.ix(i, ny-1)] = x[s.ix(i, 1)]
		}
		x[s.ix(0, 0)] = x[s.ix(nx-2, ny-2)]
		x[s.ix(0, ny-1)] = x[s.ix(nx-2, 1)]
		x[s.ix(nx-1, 0)] = x[s.ix(1, ny-2)]
		x[s.ix(nx-1, ny-1)] = x[s.ix(1, 1)]

	case BoundarySolid:
		if kind == kindScalar {
			s.mirrorRing(x)
			break
		}
		// No-slip: both velocity components vanish at the walls.
		for j := 0; j < ny; j++ {
			x[s.ix(0, j)] = 0
			x[s.ix(nx-1, j)] = 0
		}
		for i := 0; i < nx; i++ {
			x[s.ix(i, 0)] = 0
			x[s.ix(i, ny-1)] = 0
		}

	case BoundaryOpen:
		s.mirrorRing(x)
	}

	if kind != kindScalar {
		for c, sol := range s.solid {
			if sol {
				x[c] = 0
			}
		}
	}
}

// mirrorRing copies each adjacent interior cell onto the ring (zero normal
// gradient) and averages the two neighbors at the corners.
func (s *Sim) mirrorRing(x []float64) {
	nx, ny := s.nx, s.ny
	for j := 1; j < ny-1; j++ {
		x[s.ix(0, j)] = x[s.ix(1, j)]
		x[s.ix(nx-1, j)] = x[s.ix(nx-2, j)]
	}
	for i := 1; i < nx-1; i++ {
		x[s.ix(i, 0)] = x[s.ix(i, 1)]
		x[s.ix(i, ny-1)] = x[s.ix(i, ny-2)]
	}
	x[s.ix(0, 0)] = 0.5 * (x[s.ix(1, 0)] + x[s.ix(0, 1)])
	x[s.ix(0, ny-1)] = 0.5 * (x[s.ix(1, ny-1)] + x[s.ix(0, ny-2)])
	x[s.ix(nx-1, 0)] = 0.5 * (x[s.ix(nx-2, 0)] + x[s.ix(nx-1, 1)])
	x[s.ix(nx-1, ny-1)] = 0.5 * (x[s.ix(nx-2, ny-1)] + x[s.ix(nx-1, ny-2)])
}

// neighbor resolves the value of the cell at flat index n when relaxing
// around cell c. Solid cells mirror the center for scalars and act as
// stationary walls for velocity. Ring cells are read directly; their
// values were written by enforceBoundary.
func (s *Sim) neighbor(kind fieldKind, x []float64, c, n int) float64 {
	if s.solid[n] {
		if kind == kindScalar {
			return x[c]
		}
		return 0
	}
	return x[n]
}
