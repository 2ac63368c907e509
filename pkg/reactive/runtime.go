package reactive

import (
	"fmt"
	"log/slog"
)

// Runtime holds the reactive state of one application instance: the cell
// arena, the observed records and the stack of running computations.
//
// A Runtime is not safe for concurrent use. Callers that touch it from
// several goroutines must serialize every call (reads included), since a read
// mutates the dependency graph when a computation is active.
type Runtime struct {
	cfg      Config
	logger   *slog.Logger
	observer Observer

	// cells is the arena. A CellID is an index into it.
	cells []*cell

	// records maps the identity of an observed raw map to its Record.
	records map[uintptr]*Record

	// stack holds the running computations, innermost last.
	// A nil entry suspends tracking (see Untracked).
	stack []*Computation

	// failed is the innermost computation of the panic currently unwinding.
	failed *Computation

	lastID uint64
}

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	observer := cfg.Observer
	if observer == nil {
		observer = nopObserver{}
	}

	return &Runtime{
		cfg:      cfg,
		logger:   logger,
		observer: observer,
		records:  make(map[uintptr]*Record),
	}
}

// Config returns the runtime configuration after defaults were applied.
func (rt *Runtime) Config() Config {
	return rt.cfg
}

// Logger returns the runtime's logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger
}

// nextID returns the next identifier for a computation or record.
// IDs are never reused within a runtime.
func (rt *Runtime) nextID() uint64 {
	rt.lastID++
	return rt.lastID
}

// =============================================================================
// Active stack
// =============================================================================

// Depth returns the number of frames on the active stack.
func (rt *Runtime) Depth() int {
	return len(rt.stack)
}

// Active returns the computation reads are currently attributed to,
// or nil when nothing is tracking.
func (rt *Runtime) Active() *Computation {
	if len(rt.stack) == 0 {
		return nil
	}
	return rt.stack[len(rt.stack)-1]
}

func (rt *Runtime) push(c *Computation) {
	rt.stack = append(rt.stack, c)
}

func (rt *Runtime) pop() {
	n := len(rt.stack) - 1
	rt.stack[n] = nil
	rt.stack = rt.stack[:n]
}

// Untracked runs fn with tracking suspended. Reads inside fn record nothing,
// even when a computation is running.
func (rt *Runtime) Untracked(fn func()) {
	rt.push(nil)
	defer rt.pop()
	fn()
}

// =============================================================================
// Arena
// =============================================================================

// alloc adds a cell to the arena.
func (rt *Runtime) alloc(name string) *cell {
	c := &cell{id: CellID(len(rt.cells)), name: name}
	rt.cells = append(rt.cells, c)
	rt.observer.CellAllocated(name)
	return c
}

// Cells returns the number of cells in the arena.
func (rt *Runtime) Cells() int {
	return len(rt.cells)
}

// CellName returns the name of the cell with the given handle.
func (rt *Runtime) CellName(id CellID) string {
	if int(id) >= len(rt.cells) {
		return ""
	}
	return rt.cells[id].name
}

// Dependents returns the number of computations registered against a cell.
func (rt *Runtime) Dependents(id CellID) int {
	if int(id) >= len(rt.cells) {
		return 0
	}
	return len(rt.cells[id].subs)
}

// =============================================================================
// Track / trigger
// =============================================================================

// track registers the active computation as a dependent of c.
// No-op when nothing is tracking.
func (rt *Runtime) track(c *cell) {
	active := rt.Active()
	if active == nil {
		return
	}
	if c.subscribe(active) {
		active.addSource(c)
	}
}

// trigger replays every computation registered against c, one at a time,
// in registration order.
func (rt *Runtime) trigger(c *cell) {
	if len(c.subs) == 0 {
		return
	}

	if rt.cfg.Guard == GuardCell {
		if c.replaying {
			rt.raiseCycle(&CycleError{Cell: c.name, Depth: len(rt.stack)})
		}
		c.replaying = true
		defer func() { c.replaying = false }()
	}

	// Replays may subscribe and unsubscribe while we iterate.
	subs := make([]*Computation, len(c.subs))
	copy(subs, c.subs)

	rt.observer.CellTriggered(c.name, len(subs))
	rt.logger.Debug("tinyvue: trigger", "cell", c.name, "dependents", len(subs))

	for _, sub := range subs {
		sub.Invoke()
	}
}

// failedName returns the name of the computation that raised the panic
// being recovered, or fallback when the panic did not come from one.
func (rt *Runtime) failedName(fallback string) string {
	c := rt.failed
	rt.failed = nil
	if c == nil {
		return fallback
	}
	return c.name
}

func (rt *Runtime) raiseCycle(err *CycleError) {
	rt.observer.CycleDetected(err)
	rt.logger.Warn("tinyvue: cyclic update", "cell", err.Cell, "computation", err.Computation, "depth", err.Depth)
	panic(err)
}

// recordLabel names the cells of the n-th observed record.
func recordLabel(id uint64, field string) string {
	return fmt.Sprintf("r%d.%s", id, field)
}
