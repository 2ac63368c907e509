// Package tinyvue is a fine-grained reactivity engine with a small
// component layer on top.
//
// This is the recommended import for most applications:
//
//	import "github.com/vango-dev/tinyvue"
//
// Usage:
//
//	rt := tinyvue.New()
//	state := rt.MustObservable(map[string]any{"title": "x"})
//
//	var html string
//	rt.RunTracked(func() {
//	    html = "<h3>" + state.Get("title").(string) + "</h3>"
//	})
//	state.Set("title", "y") // html == "<h3>y</h3>"
//
// Components mount onto a host through CreateRenderer; see package app.
package tinyvue

import (
	"github.com/vango-dev/tinyvue/pkg/app"
	"github.com/vango-dev/tinyvue/pkg/host"
	"github.com/vango-dev/tinyvue/pkg/reactive"
	"github.com/vango-dev/tinyvue/pkg/vdom"
)

// =============================================================================
// Reactive core
// =============================================================================

type (
	// Runtime is the reactive context: cell arena, records and active stack.
	Runtime = reactive.Runtime

	// Record is an observed map[string]any.
	Record = reactive.Record

	// Computation is a tracked, re-runnable function.
	Computation = reactive.Computation

	// Option configures a Runtime.
	Option = reactive.Option

	// CycleError reports a cyclic update.
	CycleError = reactive.CycleError

	// ComputationError wraps a panic raised by a computation.
	ComputationError = reactive.ComputationError
)

var (
	ErrNilRecord = reactive.ErrNilRecord
	ErrCycle     = reactive.ErrCycle
	ErrDisposed  = reactive.ErrDisposed
)

// New creates a Runtime.
func New(opts ...Option) *Runtime {
	return reactive.New(opts...)
}

// NewCell allocates a single typed reactive value in rt.
func NewCell[T any](rt *Runtime, name string, initial T) *reactive.Cell[T] {
	return reactive.NewCell(rt, name, initial)
}

// =============================================================================
// Components
// =============================================================================

type (
	// App is a component instance.
	App = app.App

	// AppOptions describes a component.
	AppOptions = app.Options

	// Proxy is the render-time view of an app's state.
	Proxy = app.Proxy

	// Renderer creates apps bound to a host.
	Renderer = app.Renderer

	// Host resolves mount selectors.
	Host = host.Host

	// VNode is a virtual DOM node.
	VNode = vdom.VNode
)

// CreateRenderer binds a renderer to a host.
func CreateRenderer(h Host, opts ...app.RendererOption) *Renderer {
	return app.CreateRenderer(h, opts...)
}
