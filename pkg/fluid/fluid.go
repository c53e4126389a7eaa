package fluid

import (
	"fmt"
	"math"
	"sync"
)

// Config holds the fixed parameters of a simulation instance.
type Config struct {
	// Width and Height are the grid dimensions in cells, including the
	// one-cell boundary ring on each edge.
	Width, Height int
	// Dx is the cell spacing.
	Dx float64
	// Viscosity is the velocity diffusion coefficient. Zero disables the
	// velocity diffusion stage.
	Viscosity float64
	// Diffusion is the density diffusion coefficient. Zero disables the
	// density diffusion stage.
	Diffusion float64
	// Boundary selects the edge policy for the whole grid.
	Boundary Boundary
	// RelaxIters is the fixed iteration budget shared by the diffusion
	// and pressure relaxation solvers.
	RelaxIters int
	// Dt is the default tick length used by front ends. Step takes an
	// explicit dt; this is the configured value callers fall back to.
	Dt float64
}

// Validate reports the first invalid parameter, wrapped in
// ErrConfiguration.
func (c Config) Validate() error {
	if c.Width < 3 || c.Height < 3 {
		return fmt.Errorf("%w: grid must be at least 3x3 (one interior cell plus the boundary ring), got %dx%d",
			ErrConfiguration, c.Width, c.Height)
	}
	if c.Dx <= 0 {
		return fmt.Errorf("%w: cell spacing must be positive, got %g", ErrConfiguration, c.Dx)
	}
	if c.Viscosity < 0 {
		return fmt.Errorf("%w: viscosity must be non-negative, got %g", ErrConfiguration, c.Viscosity)
	}
	if c.Diffusion < 0 {
		return fmt.Errorf("%w: diffusion rate must be non-negative, got %g", ErrConfiguration, c.Diffusion)
	}
	if c.Boundary < BoundarySolid || c.Boundary > BoundaryPeriodic {
		return fmt.Errorf("%w: unknown boundary policy %d", ErrConfiguration, c.Boundary)
	}
	if c.RelaxIters < 1 {
		return fmt.Errorf("%w: relaxation iterations must be at least 1, got %d", ErrConfiguration, c.RelaxIters)
	}
	if c.Dt <= 0 {
		return fmt.Errorf("%w: time step must be positive, got %g", ErrConfiguration, c.Dt)
	}
	return nil
}

// Stage identifies the phase a tick is executing. A tick always runs the
// full sequence and returns to StageIdle; there is no partial-step
// resumption.
type Stage int

const (
	StageIdle Stage = iota
	StageInjecting
	StageAdvectingVelocity
	StageDiffusingVelocity
	StageProjecting
	StageAdvectingDensity
	StageDiffusingDensity
	StageSettled
)

func (st Stage) String() string {
	switch st {
	case StageIdle:
		return "idle"
	case StageInjecting:
		return "injecting"
	case StageAdvectingVelocity:
		return "advecting velocity"
	case StageDiffusingVelocity:
		return "diffusing velocity"
	case StageProjecting:
		return "projecting"
	case StageAdvectingDensity:
		return "advecting density"
	case StageDiffusingDensity:
		return "diffusing density"
	case StageSettled:
		return "settled"
	}
	return "unknown"
}

type injectKind int

const (
	injectForce injectKind = iota
	injectDensity
)

type injection struct {
	kind   injectKind
	i, j   int
	fx, fy float64
	amount float64
	radius int
}

// Sim owns one grid and all fields of a running simulation. A Sim is not
// safe for concurrent Step calls; injections may be queued from other
// goroutines at any time.
type Sim struct {
	cfg    Config
	nx, ny int
	cells  int

	u, v *buffer // velocity components
	dens *buffer // density / dye

	p    []float64 // pressure scratch, recomputed every step
	div  []float64 // divergence scratch
	work []float64 // relaxation ping-pong scratch

	solid []bool

	time  float64
	stage Stage

	mu    sync.Mutex
	queue []injection
}

// New constructs a simulation from cfg. All cells start as fluid with zero
// velocity and density.
func New(cfg Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cells := cfg.Width * cfg.Height
	return &Sim{
		cfg:   cfg,
		nx:    cfg.Width,
		ny:    cfg.Height,
		cells: cells,
		u:     newBuffer(cells),
		v:     newBuffer(cells),
		dens:  newBuffer(cells),
		p:     make([]float64, cells),
		div:   make([]float64, cells),
		work:  make([]float64, cells),
		solid: make([]bool, cells),
	}, nil
}

// Config returns the parameters the simulation was built with.
func (s *Sim) Config() Config { return s.cfg }

// Time returns the elapsed simulation time. It advances only when a tick
// completes every stage.
func (s *Sim) Time() float64 { return s.time }

// InjectForce queues a velocity impulse at cell (i,j), applied at the
// start of the next tick. Out-of-range or solid targets are dropped
// silently when drained.
func (s *Sim) InjectForce(i, j int, fx, fy float64) {
	s.push(injection{kind: injectForce, i: i, j: j, fx: fx, fy: fy})
}

// InjectForceRadius queues a force impulse with Gaussian falloff over the
// given cell radius.
func (s *Sim) InjectForceRadius(i, j int, fx, fy float64, radius int) {
	s.push(injection{kind: injectForce, i: i, j: j, fx: fx, fy: fy, radius: radius})
}

// InjectDensity queues a density deposit at cell (i,j), applied at the
// start of the next tick.
func (s *Sim) InjectDensity(i, j int, amount float64) {
	s.push(injection{kind: injectDensity, i: i, j: j, amount: amount})
}

func (s *Sim) push(inj injection) {
	s.mu.Lock()
	s.queue = append(s.queue, inj)
	s.mu.Unlock()
}

// Step advances the simulation by one tick of length dt and returns a
// snapshot of the settled fields. Either every stage completes and elapsed
// time advances, or a *StepError is returned and the failing stage's
// buffer is discarded without being swapped in. Stages that completed
// before the failure keep their swapped results: the abort is not a
// rollback to the previous tick, it stops the corruption from spreading
// while time stands still.
func (s *Sim) Step(dt float64) (FrameSnapshot, error) {
	if dt <= 0 {
		return FrameSnapshot{}, fmt.Errorf("%w: time step must be positive, got %g", ErrConfiguration, dt)
	}

	s.stage = StageInjecting
	s.drainInjections()

	s.stage = StageAdvectingVelocity
	s.advectVelocity(dt)
	if err := s.commitVelocity(); err != nil {
		return FrameSnapshot{}, err
	}

	if s.cfg.Viscosity > 0 {
		s.stage = StageDiffusingVelocity
		s.diffuse(kindU, s.u, s.cfg.Viscosity, dt)
		s.diffuse(kindV, s.v, s.cfg.Viscosity, dt)
		if err := s.commitVelocity(); err != nil {
			return FrameSnapshot{}, err
		}
	}

	s.stage = StageProjecting
	s.project()
	if err := s.commitVelocity(); err != nil {
		return FrameSnapshot{}, err
	}

	s.stage = StageAdvectingDensity
	s.advectScalar(s.dens, dt)
	if err := s.commitScalar(s.dens); err != nil {
		return FrameSnapshot{}, err
	}

	if s.cfg.Diffusion > 0 {
		s.stage = StageDiffusingDensity
		s.diffuse(kindScalar, s.dens, s.cfg.Diffusion, dt)
		if err := s.commitScalar(s.dens); err != nil {
			return FrameSnapshot{}, err
		}
	}

	s.stage = StageSettled
	s.time += dt
	snap := s.Snapshot()
	s.stage = StageIdle
	return snap, nil
}

// drainInjections applies all queued impulses to the current buffers.
func (s *Sim) drainInjections() {
	s.mu.Lock()
	pending := s.queue
	s.queue = nil
	s.mu.Unlock()

	for _, inj := range pending {
		switch inj.kind {
		case injectForce:
			if inj.radius > 0 {
				s.applyForceRadius(inj)
			} else {
				s.applyForce(inj.i, inj.j, inj.fx, inj.fy)
			}
		case injectDensity:
			if !s.interiorFluid(inj.i, inj.j) {
				continue
			}
			s.dens.cur[s.ix(inj.i, inj.j)] += inj.amount
		}
	}
}

func (s *Sim) applyForce(i, j int, fx, fy float64) {
	if !s.interiorFluid(i, j) {
		return
	}
	c := s.ix(i, j)
	s.u.cur[c] += fx
	s.v.cur[c] += fy
}

// applyForceRadius spreads an impulse with Gaussian falloff so the edge of
// the radius receives roughly 5% of the center strength.
func (s *Sim) applyForceRadius(inj injection) {
	r2 := float64(inj.radius * inj.radius)
	for i := inj.i - inj.radius; i <= inj.i+inj.radius; i++ {
		for j := inj.j - inj.radius; j <= inj.j+inj.radius; j++ {
			dx := float64(i - inj.i)
			dy := float64(j - inj.j)
			dist2 := dx*dx + dy*dy
			if dist2 > r2 {
				continue
			}
			weight := math.Exp(-3 * dist2 / r2)
			s.applyForce(i, j, inj.fx*weight, inj.fy*weight)
		}
	}
}

// interiorFluid reports whether (i,j) is an interior, non-solid cell.
func (s *Sim) interiorFluid(i, j int) bool {
	if i < 1 || i >= s.nx-1 || j < 1 || j >= s.ny-1 {
		return false
	}
	return !s.solid[s.ix(i, j)]
}

// commitVelocity validates the next velocity buffers and swaps them in.
func (s *Sim) commitVelocity() error {
	if !finite(s.u.next) || !finite(s.v.next) {
		return &StepError{Stage: s.stage, Time: s.time, Err: ErrUnstable}
	}
	s.u.swap()
	s.v.swap()
	return nil
}

// commitScalar validates a scalar next buffer and swaps it in.
func (s *Sim) commitScalar(b *buffer) error {
	if !finite(b.next) {
		return &StepError{Stage: s.stage, Time: s.time, Err: ErrUnstable}
	}
	b.swap()
	return nil
}
