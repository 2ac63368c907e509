package reactive

import "time"

// Observer receives instrumentation callbacks from a Runtime.
// Callbacks run synchronously on the reactive path and must not read or
// write cells.
type Observer interface {
	// CellAllocated is called when a cell is added to the arena.
	CellAllocated(cell string)

	// CellTriggered is called when a write replays dependents.
	// It is not called for writes to cells without dependents.
	CellTriggered(cell string, dependents int)

	// ComputationRan is called after every computation run.
	// failed is true when the run panicked.
	ComputationRan(computation string, d time.Duration, failed bool)

	// CycleDetected is called right before a *CycleError is raised.
	CycleDetected(err *CycleError)
}

// nopObserver discards every callback.
type nopObserver struct{}

func (nopObserver) CellAllocated(string)                        {}
func (nopObserver) CellTriggered(string, int)                   {}
func (nopObserver) ComputationRan(string, time.Duration, bool) {}
func (nopObserver) CycleDetected(*CycleError)                   {}
