package reactive

import (
	"errors"
	"fmt"
)

// ErrNilRecord is returned by MakeObservable when the raw record is nil.
var ErrNilRecord = errors.New("tinyvue: record is nil")

// ErrCycle is wrapped by every CycleError.
// Use errors.Is(err, ErrCycle) to detect a cyclic update.
var ErrCycle = errors.New("tinyvue: cyclic update detected")

// ErrDisposed is returned by TryInvoke on a disposed computation.
var ErrDisposed = errors.New("tinyvue: computation disposed")

// CycleError reports a write that re-entered replay of a cell which was
// already replaying, or a replay chain deeper than the configured limit.
type CycleError struct {
	// Cell is the name of the cell being written. Empty for depth violations.
	Cell string

	// Computation is the computation that was about to run. Empty for
	// cell re-entry.
	Computation string

	// Depth is the active stack depth when the cycle was detected.
	Depth int
}

// Error implements the error interface.
func (e *CycleError) Error() string {
	if e.Cell != "" {
		return fmt.Sprintf("%s: write to %q while its dependents replay (depth %d)", ErrCycle, e.Cell, e.Depth)
	}
	return fmt.Sprintf("%s: computation %q exceeded depth %d", ErrCycle, e.Computation, e.Depth)
}

// Unwrap returns ErrCycle.
func (e *CycleError) Unwrap() error {
	return ErrCycle
}

// ComputationError wraps a panic raised by a computation's function.
// It is produced by TryInvoke, TryWrite and TrySet.
type ComputationError struct {
	Computation string
	Value       any
}

// Error implements the error interface.
func (e *ComputationError) Error() string {
	return fmt.Sprintf("tinyvue: computation %q panicked: %v", e.Computation, e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *ComputationError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// asError converts a recovered panic value into an error.
// CycleErrors pass through unchanged so errors.As finds them directly.
func asError(name string, r any) error {
	var cycle *CycleError
	if err, ok := r.(error); ok && errors.As(err, &cycle) {
		return cycle
	}
	if ce, ok := r.(*ComputationError); ok {
		return ce
	}
	return &ComputationError{Computation: name, Value: r}
}
