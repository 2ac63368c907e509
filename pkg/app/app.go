package app

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tinyvue/pkg/host"
	"github.com/vango-dev/tinyvue/pkg/reactive"
	"github.com/vango-dev/tinyvue/pkg/vdom"
)

// App is a component instance.
type App struct {
	id       string
	options  Options
	renderer *Renderer
	rt       *reactive.Runtime
	logger   *slog.Logger

	// Set by Mount.
	selector  string
	container host.Container
	render    func(*Proxy) *vdom.VNode
	proxy     *Proxy
	view      *reactive.Computation
	invoke    func()
	mounted   bool

	renders int
	html    string
	err     error
}

// ID returns the app's instance identifier.
func (a *App) ID() string {
	return a.id
}

// Name returns the app's name.
func (a *App) Name() string {
	return a.options.Name
}

// Runtime returns the app's reactive runtime.
func (a *App) Runtime() *reactive.Runtime {
	return a.rt
}

// Proxy returns the state proxy. Nil before Mount.
func (a *App) Proxy() *Proxy {
	return a.proxy
}

// Mounted reports whether the app is mounted.
func (a *App) Mounted() bool {
	return a.mounted
}

// Selector returns the selector the app was mounted on.
func (a *App) Selector() string {
	return a.selector
}

// Renders returns the number of render passes so far.
func (a *App) Renders() int {
	return a.renders
}

// HTML returns the markup produced by the last successful render.
func (a *App) HTML() string {
	return a.html
}

// Err returns the error of the last render pass, if any.
func (a *App) Err() error {
	return a.err
}

// Mount resolves selector on the host, builds the component state and runs
// the first render. Later writes through the proxy re-render automatically.
//
// A panic raised by the first render (a cyclic update, for instance) is
// returned as an error; the app stays mounted.
func (a *App) Mount(selector string) (err error) {
	if a.mounted {
		return ErrAlreadyMounted
	}

	container, ok := a.renderer.host.QuerySelector(selector)
	if !ok {
		return fmt.Errorf("%w: %q", ErrContainerNotFound, selector)
	}

	render := a.options.Render
	if render == nil {
		tmpl, err := Compile(container.InnerHTML())
		if err != nil {
			return err
		}
		render = tmpl.Render
	}

	proxy, err := a.buildProxy()
	if err != nil {
		return err
	}

	a.selector = selector
	a.container = container
	a.render = render
	a.proxy = proxy
	a.mounted = true

	a.logger.Debug("tinyvue: mount", "id", a.id, "selector", selector)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tinyvue: mount %s: %w", selector, panicError(r))
			a.logger.Error("tinyvue: mount failed", "selector", selector, "error", err)
		}
	}()

	a.rt.RunTracked(a.renderPass, reactive.Named(a.options.Name+".render"))
	return a.err
}

func (a *App) buildProxy() (*Proxy, error) {
	setupRaw := map[string]any{}
	if a.options.Setup != nil {
		if m := a.options.Setup(); m != nil {
			setupRaw = m
		}
	}
	dataRaw := map[string]any{}
	if a.options.Data != nil {
		if m := a.options.Data(); m != nil {
			dataRaw = m
		}
	}

	setup, err := a.rt.MakeObservable(setupRaw)
	if err != nil {
		return nil, err
	}
	data, err := a.rt.MakeObservable(dataRaw)
	if err != nil {
		return nil, err
	}
	return &Proxy{rt: a.rt, setup: setup, data: data}, nil
}

// renderPass is the body of the render computation.
func (a *App) renderPass() {
	if a.view == nil {
		a.view = a.rt.Active()
		a.invoke = a.view.Invoker()
	}
	a.renders++

	_, span := a.renderer.config.Tracer.Start(
		context.Background(),
		"tinyvue.render",
		trace.WithAttributes(
			attribute.String("tinyvue.app_id", a.id),
			attribute.String("tinyvue.selector", a.selector),
			attribute.Int("tinyvue.render_count", a.renders),
		),
	)
	completed := false
	defer func() {
		if !completed {
			span.SetStatus(codes.Error, "render panicked")
		}
		span.End()
	}()

	html, err := a.renderer.html.RenderToString(a.render(a.proxy))
	completed = true
	if err != nil {
		a.err = err
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		a.logger.Error("tinyvue: render failed", "id", a.id, "render", a.renders, "error", err)
		return
	}
	span.SetStatus(codes.Ok, "")

	a.err = nil
	a.html = html
	a.container.Replace(html)

	a.logger.Debug("tinyvue: render", "id", a.id, "render", a.renders, "bytes", len(html))
}

// Update forces a re-render.
func (a *App) Update() {
	if a.invoke == nil {
		return
	}
	a.invoke()
}

// TryUpdate is Update with a render panic returned as an error.
func (a *App) TryUpdate() error {
	if a.view == nil {
		return ErrNotMounted
	}
	return a.view.TryInvoke()
}
