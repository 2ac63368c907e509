// Package reactive implements the fine-grained reactivity engine behind tinyvue.
//
// The engine records which cells a computation reads while it runs and replays
// that computation synchronously whenever one of those cells is written.
//
// # Runtime
//
// All state lives in a Runtime. There are no package-level registries: two
// runtimes never observe each other's writes, and a runtime can be created per
// test or per application instance.
//
//	rt := reactive.New()
//
// # Cells and Records
//
// A Cell is a single named reactive slot. Cells are allocated in the runtime's
// arena and addressed by a stable CellID; each cell owns its own set of
// dependent computations.
//
//	count := reactive.NewCell(rt, "count", 0)
//	count.Write(count.Read() + 1)
//
// A Record wraps a plain map[string]any and gives every field its own cell,
// allocated on first use:
//
//	state, _ := rt.MakeObservable(map[string]any{"title": "x"})
//	state.Set("title", "y")
//
// Writes always replay dependents, even when the new value equals the old one.
// Reactivity is shallow: a nested map is only tracked if it is observed itself.
//
// # Computations
//
// RunTracked runs a function immediately and again every time a cell it read
// is written:
//
//	render := rt.RunTracked(func() {
//	    fmt.Println(state.Get("title"))
//	})
//	render.Invoke() // force a re-run
//
// Computations nest: reads made while an inner computation runs are attributed
// to the inner computation only. A panicking computation still pops itself off
// the active stack before the panic reaches the caller.
//
// # Dependency Modes
//
// By default (Recollect) a computation drops all of its dependencies and
// disposes the computations it created before each re-run, then collects them
// again. KeepStale never removes a dependency once recorded.
//
// # Cycles
//
// A write that feeds back into a cell whose dependents are currently being
// replayed panics with a *CycleError under the default GuardCell mode. See
// GuardMode for the alternatives.
package reactive
