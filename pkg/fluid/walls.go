package fluid

import "fmt"

// Obstacle support. Solid cells hold zero velocity, are skipped by every
// sweep, and mirror their neighbors during scalar and pressure relaxation.

// SetSolid marks or clears an interior cell as an obstacle. The boundary
// ring cannot be changed; its behavior belongs to the Boundary policy.
// Marking a cell solid clears its velocity in both buffers so a freshly
// drawn wall does not reintroduce flow on the next advection.
func (s *Sim) SetSolid(i, j int, solid bool) {
	if i < 1 || i >= s.nx-1 || j < 1 || j >= s.ny-1 {
		panic(fmt.Sprintf("fluid: SetSolid index (%d,%d) outside interior", i, j))
	}
	c := s.ix(i, j)
	s.solid[c] = solid
	if solid {
		s.u.cur[c] = 0
		s.u.next[c] = 0
		s.v.cur[c] = 0
		s.v.next[c] = 0
	}
}

// IsSolid reports whether cell (i,j) is an obstacle.
func (s *Sim) IsSolid(i, j int) bool {
	if i < 0 || i >= s.nx || j < 0 || j >= s.ny {
		panic(fmt.Sprintf("fluid: IsSolid index (%d,%d) out of range", i, j))
	}
	return s.solid[s.ix(i, j)]
}

// SetCircularObstacle marks all interior cells within radius of (cx,cy) as
// solid.
func (s *Sim) SetCircularObstacle(cx, cy, radius int) {
	r2 := radius * radius
	for i := cx - radius; i <= cx+radius; i++ {
		for j := cy - radius; j <= cy+radius; j++ {
			if i < 1 || i >= s.nx-1 || j < 1 || j >= s.ny-1 {
				continue
			}
			di, dj := i-cx, j-cy
			if di*di+dj*dj <= r2 {
				s.SetSolid(i, j, true)
			}
		}
	}
}

// ClearObstacles returns every cell to fluid.
func (s *Sim) ClearObstacles() {
	fill(s.solid, false)
}
