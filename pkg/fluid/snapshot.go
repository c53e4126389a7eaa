package fluid

import (
	"encoding/json"
	"fmt"
	"math"
)

// ScalarField is a read-only copy of a scalar field taken at snapshot
// time. It also satisfies gonum/plot's GridXYZ shape (Dims/Z/X/Y) so front
// ends can heat-map it directly.
type ScalarField struct {
	NumX, NumY         int
	MinValue, MaxValue float64

	dx     float64
	values []float64
}

// Value returns the field value at cell (i,j).
func (s ScalarField) Value(i, j int) (float64, error) {
	if i < 0 || i >= s.NumX {
		return 0, fmt.Errorf("x index %d out of range, must be between 0 and %d", i, s.NumX-1)
	}
	if j < 0 || j >= s.NumY {
		return 0, fmt.Errorf("y index %d out of range, must be between 0 and %d", j, s.NumY-1)
	}
	return s.values[i*s.NumY+j], nil
}

// Dims, Z, X and Y implement the plotter.GridXYZ contract.
func (s ScalarField) Dims() (c, r int)   { return s.NumX, s.NumY }
func (s ScalarField) Z(c, r int) float64 { return s.values[c*s.NumY+r] }
func (s ScalarField) X(c int) float64    { return float64(c) * s.dx }
func (s ScalarField) Y(r int) float64    { return float64(r) * s.dx }

// VectorField is a read-only copy of the velocity field.
type VectorField struct {
	NumX, NumY       int
	valuesU, valuesV []float64
}

// Value returns the velocity components at cell (i,j).
func (v VectorField) Value(i, j int) (float64, float64, error) {
	if i < 0 || i >= v.NumX {
		return 0, 0, fmt.Errorf("x index %d out of range, must be between 0 and %d", i, v.NumX-1)
	}
	if j < 0 || j >= v.NumY {
		return 0, 0, fmt.Errorf("y index %d out of range, must be between 0 and %d", j, v.NumY-1)
	}
	return v.valuesU[i*v.NumY+j], v.valuesV[i*v.NumY+j], nil
}

// FrameSnapshot is the per-tick view handed to rendering collaborators.
// All slices are copies; mutating the snapshot never touches the
// simulation.
type FrameSnapshot struct {
	Time          float64
	Velocity      VectorField
	Density       ScalarField
	MaxDivergence float64
}

// Snapshot captures read-only views of the current velocity and density
// fields.
func (s *Sim) Snapshot() FrameSnapshot {
	return FrameSnapshot{
		Time:          s.time,
		Velocity:      s.velocityView(),
		Density:       s.scalarView(s.dens.cur),
		MaxDivergence: s.MaxDivergence(),
	}
}

func (s *Sim) velocityView() VectorField {
	u := make([]float64, s.cells)
	v := make([]float64, s.cells)
	copy(u, s.u.cur)
	copy(v, s.v.cur)
	return VectorField{NumX: s.nx, NumY: s.ny, valuesU: u, valuesV: v}
}

func (s *Sim) scalarView(src []float64) ScalarField {
	vals := make([]float64, s.cells)
	copy(vals, src)
	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	for _, v := range vals {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return ScalarField{
		NumX:     s.nx,
		NumY:     s.ny,
		MinValue: minVal,
		MaxValue: maxVal,
		dx:       s.cfg.Dx,
		values:   vals,
	}
}

// dumpState is the wire form of a buffer dump: dimensions plus flat value
// arrays, enough to replay or inspect a simulation offline.
type dumpState struct {
	Config   Config    `json:"config"`
	Time     float64   `json:"time"`
	U        []float64 `json:"u"`
	V        []float64 `json:"v"`
	Density  []float64 `json:"density"`
	Pressure []float64 `json:"pressure"`
	Solid    []bool    `json:"solid"`
}

// Dump serializes the current buffers for debugging or replay.
func (s *Sim) Dump() ([]byte, error) {
	return json.Marshal(dumpState{
		Config:   s.cfg,
		Time:     s.time,
		U:        s.u.cur,
		V:        s.v.cur,
		Density:  s.dens.cur,
		Pressure: s.p,
		Solid:    s.solid,
	})
}

// LoadDump reconstructs a simulation from a Dump payload.
func LoadDump(data []byte) (*Sim, error) {
	var st dumpState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("fluid: malformed dump: %w", err)
	}
	sim, err := New(st.Config)
	if err != nil {
		return nil, err
	}
	if len(st.U) != sim.cells || len(st.V) != sim.cells ||
		len(st.Density) != sim.cells || len(st.Solid) != sim.cells {
		return nil, fmt.Errorf("%w: dump field lengths do not match %dx%d grid",
			ErrConfiguration, st.Config.Width, st.Config.Height)
	}
	copy(sim.u.cur, st.U)
	copy(sim.v.cur, st.V)
	copy(sim.dens.cur, st.Density)
	if len(st.Pressure) == sim.cells {
		copy(sim.p, st.Pressure)
	}
	copy(sim.solid, st.Solid)
	sim.time = st.Time
	return sim, nil
}
