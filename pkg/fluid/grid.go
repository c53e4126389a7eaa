package fluid

// Fields are stored as flat slices indexed i*NumY+j. The outermost cells
// form a one-cell ghost ring: interior cells live in [1,NumX-1)x[1,NumY-1)
// and the ring holds whatever values the active boundary policy dictates.
// Dimensions are fixed for the lifetime of a Sim.

// buffer is a double-buffered field. Stages read cur and write next; the
// swap exchanges the slice headers, never the contents.
type buffer struct {
	cur, next []float64
}

func newBuffer(cells int) *buffer {
	return &buffer{
		cur:  make([]float64, cells),
		next: make([]float64, cells),
	}
}

func (b *buffer) swap() {
	b.cur, b.next = b.next, b.cur
}

// ix maps a 2D cell coordinate to its flat index.
func (s *Sim) ix(i, j int) int { return i*s.ny + j }

func fill[T any](slice []T, val T) {
	for i := range slice {
		slice[i] = val
	}
}
