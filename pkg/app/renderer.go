package app

import (
	"github.com/google/uuid"

	"github.com/vango-dev/tinyvue/pkg/host"
	"github.com/vango-dev/tinyvue/pkg/reactive"
	"github.com/vango-dev/tinyvue/pkg/render"
	"github.com/vango-dev/tinyvue/pkg/vdom"
)

// Renderer creates apps bound to one host.
type Renderer struct {
	host   host.Host
	config Config
	html   *render.Renderer
}

// CreateRenderer binds a renderer to a host.
func CreateRenderer(h host.Host, opts ...RendererOption) *Renderer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.resolve()

	return &Renderer{
		host:   h,
		config: cfg,
		html:   render.NewRenderer(cfg.HTML),
	}
}

// Options describes a component.
type Options struct {
	// Name identifies the app in logs, spans and metrics.
	// Defaults to "app".
	Name string

	// Data returns the component's data map.
	Data func() map[string]any

	// Setup returns the setup state. Keys present here shadow Data.
	Setup func() map[string]any

	// Render builds the view. When nil, the container's markup is
	// compiled as a template at mount time.
	Render func(p *Proxy) *vdom.VNode
}

// CreateApp creates an unmounted app. Each app owns its reactive runtime.
func (r *Renderer) CreateApp(options Options) *App {
	if options.Name == "" {
		options.Name = "app"
	}

	rtOpts := append([]reactive.Option{reactive.WithLogger(r.config.Logger)}, r.config.Runtime...)

	return &App{
		id:       uuid.Must(uuid.NewV7()).String(),
		options:  options,
		renderer: r,
		rt:       reactive.New(rtOpts...),
		logger:   r.config.Logger.With("app", options.Name),
	}
}
