package reactive

import (
	"strconv"
	"time"
)

// Computation is a re-runnable function whose cell reads are tracked.
// It is created and run once by Runtime.RunTracked, and re-run by every
// write to a cell it read, or explicitly through Invoke.
type Computation struct {
	id   uint64
	name string
	rt   *Runtime
	fn   func()

	// sources are the cells this computation is registered against.
	sources []*cell

	// parent is the computation that was running when this one was created.
	parent *Computation

	// children are computations created during this computation's runs.
	children []*Computation

	runs     int
	disposed bool
}

// ComputationOption configures a Computation.
type ComputationOption func(*Computation)

// Named sets the computation name used in logs, metrics and errors.
func Named(name string) ComputationOption {
	return func(c *Computation) {
		c.name = name
	}
}

// RunTracked creates a computation from fn, runs it once immediately and
// returns it. Every later write to a cell fn read replays it.
//
// A panic from the first run propagates to the caller; the computation stays
// registered and can be invoked again.
//
// Example:
//
//	view := rt.RunTracked(func() {
//	    out = "<h3>" + state.Get("title").(string) + "</h3>"
//	})
//	state.Set("title", "y") // view re-runs here
func (rt *Runtime) RunTracked(fn func(), opts ...ComputationOption) *Computation {
	c := &Computation{
		id: rt.nextID(),
		rt: rt,
		fn: fn,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.name == "" {
		c.name = "c" + strconv.FormatUint(c.id, 10)
	}

	if parent := rt.Active(); parent != nil {
		c.parent = parent
		parent.children = append(parent.children, c)
	}

	c.Invoke()
	return c
}

// ID returns the computation's identifier.
func (c *Computation) ID() uint64 {
	return c.id
}

// Name returns the computation's name.
func (c *Computation) Name() string {
	return c.name
}

// Runs returns how many times the computation has started running.
func (c *Computation) Runs() int {
	return c.runs
}

// Disposed reports whether Dispose has been called.
func (c *Computation) Disposed() bool {
	return c.disposed
}

// Sources returns the handles of the cells the computation depends on.
func (c *Computation) Sources() []CellID {
	ids := make([]CellID, len(c.sources))
	for i, s := range c.sources {
		ids[i] = s.id
	}
	return ids
}

// Invoker returns Invoke as a plain function value.
func (c *Computation) Invoker() func() {
	return c.Invoke
}

// Invoke runs the computation under tracking. The computation is pushed on
// the active stack before its function runs and popped afterwards, also when
// the function panics; the panic then continues to the caller.
//
// Invoke on a disposed computation does nothing.
func (c *Computation) Invoke() {
	if c.disposed {
		return
	}
	rt := c.rt

	if rt.cfg.Guard == GuardDepth && len(rt.stack) >= rt.cfg.MaxDepth {
		rt.raiseCycle(&CycleError{Computation: c.name, Depth: len(rt.stack)})
	}

	if rt.cfg.Mode == Recollect {
		c.release()
	}

	rt.push(c)
	c.runs++
	start := time.Now()
	failed := true
	defer func() {
		rt.pop()
		if failed {
			if rt.failed == nil {
				rt.failed = c
			}
		} else {
			rt.failed = nil
		}
		rt.observer.ComputationRan(c.name, time.Since(start), failed)
	}()

	c.fn()
	failed = false
}

// TryInvoke is Invoke with a panic returned as an error instead.
// A *CycleError is returned as is; any other panic value is wrapped in a
// *ComputationError.
func (c *Computation) TryInvoke() (err error) {
	if c.disposed {
		return ErrDisposed
	}
	defer func() {
		if r := recover(); r != nil {
			err = asError(c.rt.failedName(c.name), r)
		}
	}()
	c.Invoke()
	return nil
}

// Dispose unsubscribes the computation from every cell, disposes the
// computations it created and turns later invocations into no-ops.
func (c *Computation) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true
	c.release()

	if p := c.parent; p != nil {
		for i, child := range p.children {
			if child == c {
				p.children = append(p.children[:i], p.children[i+1:]...)
				break
			}
		}
		c.parent = nil
	}
}

// addSource records a cell this computation now depends on.
// The cell has already deduplicated, so no check is needed here.
func (c *Computation) addSource(s *cell) {
	c.sources = append(c.sources, s)
}

// release drops every dependency and disposes the children created by
// earlier runs.
func (c *Computation) release() {
	for _, s := range c.sources {
		s.unsubscribe(c)
	}
	c.sources = c.sources[:0]

	children := c.children
	c.children = nil
	for _, child := range children {
		child.parent = nil
		child.Dispose()
	}
}
