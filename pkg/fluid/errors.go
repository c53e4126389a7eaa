package fluid

import (
	"errors"
	"fmt"
)

// Sentinel errors for the two failure classes the solver can report.
var (
	// ErrConfiguration indicates invalid dimensions or coefficients at
	// construction time.
	ErrConfiguration = errors.New("fluid: invalid configuration")

	// ErrUnstable indicates a field value became NaN or infinite during a
	// tick. The tick is aborted; continuing would propagate corruption.
	ErrUnstable = errors.New("fluid: non-finite field value")
)

// StepError reports a tick that aborted partway through. The buffer
// produced by the failing stage is discarded without being swapped in.
type StepError struct {
	Stage Stage
	Time  float64
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("fluid: tick aborted in %s stage at t=%g: %v", e.Stage, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
