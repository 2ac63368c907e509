package app

import (
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tinyvue/pkg/reactive"
	"github.com/vango-dev/tinyvue/pkg/render"
)

// Default tracer name for tinyvue render spans.
const defaultTracerName = "tinyvue"

// Config holds renderer-wide settings shared by every app it creates.
type Config struct {
	// Logger receives one debug record per render pass.
	// Defaults to slog.Default().
	Logger *slog.Logger

	// TracerName is used to resolve a tracer from the global provider
	// when Tracer is nil.
	TracerName string

	// Tracer creates the render spans.
	Tracer trace.Tracer

	// HTML configures the VNode serializer.
	HTML render.RendererConfig

	// Runtime options are applied to the runtime of every app.
	Runtime []reactive.Option
}

// RendererOption configures a Renderer.
type RendererOption func(*Config)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RendererOption {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithTracerName sets the tracer name used with the global provider.
func WithTracerName(name string) RendererOption {
	return func(c *Config) {
		c.TracerName = name
	}
}

// WithTracer sets the tracer directly.
func WithTracer(tracer trace.Tracer) RendererOption {
	return func(c *Config) {
		c.Tracer = tracer
	}
}

// WithHTML configures the HTML serializer.
func WithHTML(cfg render.RendererConfig) RendererOption {
	return func(c *Config) {
		c.HTML = cfg
	}
}

// WithRuntimeOptions appends options for each app's reactive runtime.
//
// Example:
//
//	app.CreateRenderer(doc,
//	    app.WithRuntimeOptions(
//	        reactive.WithObserver(metrics.NewObserver()),
//	        reactive.WithDependencyMode(reactive.KeepStale),
//	    ),
//	)
func WithRuntimeOptions(opts ...reactive.Option) RendererOption {
	return func(c *Config) {
		c.Runtime = append(c.Runtime, opts...)
	}
}

func defaultConfig() Config {
	return Config{TracerName: defaultTracerName}
}

func (c *Config) resolve() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.TracerName == "" {
		c.TracerName = defaultTracerName
	}
	if c.Tracer == nil {
		c.Tracer = otel.Tracer(c.TracerName)
	}
}
