package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/tinyvue/internal/config"
	"github.com/vango-dev/tinyvue/pkg/app"
	"github.com/vango-dev/tinyvue/pkg/host"
	"github.com/vango-dev/tinyvue/pkg/metrics"
	"github.com/vango-dev/tinyvue/pkg/reactive"
	"github.com/vango-dev/tinyvue/pkg/render"
)

// maxBodyBytes bounds PUT /state bodies.
const maxBodyBytes = 1 << 20

// Options configures the preview server.
type Options struct {
	// Component is the component to serve.
	Component *config.Component

	// Addr is the listen address (default: ":3000").
	Addr string

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Registry receives the metrics. A fresh registry with Go and process
	// collectors is created when nil.
	Registry *prometheus.Registry

	// Runtime options are passed to the component's reactive runtime.
	Runtime []reactive.Option
}

// Server is the preview server.
type Server struct {
	options  Options
	logger   *slog.Logger
	registry *prometheus.Registry
	live     *Live
	element  *host.Element

	// mu guards app and every call into it.
	mu  sync.Mutex
	app *app.App

	httpServer *http.Server
}

// New mounts the component and returns a server for it.
func New(options Options) (*Server, error) {
	if options.Component == nil {
		return nil, errors.New("preview: no component")
	}
	if options.Addr == "" {
		options.Addr = config.DefaultAddr
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	registry := options.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	c := options.Component
	collector := metrics.New(metrics.WithRegistry(registry))

	s := &Server{
		options:  options,
		logger:   logger,
		registry: registry,
		live:     NewLive(collector, logger),
	}

	doc := host.NewDocument()
	s.element = doc.AppendFor(c.Selector, c.Template)
	s.element.OnReplace(s.live.BroadcastRender)

	rtOpts := append([]reactive.Option{reactive.WithObserver(collector)}, options.Runtime...)
	renderer := app.CreateRenderer(doc,
		app.WithLogger(logger),
		app.WithRuntimeOptions(rtOpts...),
	)
	s.app = renderer.CreateApp(app.Options{
		Name:  c.Name,
		Data:  c.DataFunc(),
		Setup: c.SetupFunc(),
	})

	if err := s.app.Mount(c.Selector); err != nil {
		return nil, err
	}
	return s, nil
}

// App returns the served app. Callers must not use it concurrently with
// the server's handlers.
func (s *Server) App() *app.App {
	return s.app
}

// Live returns the live connection manager.
func (s *Server) Live() *Live {
	return s.live
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.handlePage)
	r.Get("/_tinyvue/live", s.handleLive)
	r.Get("/state", s.handleState)
	r.Put("/state/{path}", s.handleSet)
	r.Post("/update", s.handleUpdate)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("preview: request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	name := s.app.Name()
	s.mu.Unlock()

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	b.WriteString(render.EscapeHTML(name))
	b.WriteString("</title>\n</head>\n<body>\n")
	b.WriteString(s.element.OuterHTML())
	b.WriteString("\n")
	b.WriteString(clientScript(s.options.Component.Selector))
	b.WriteString("</body>\n</html>\n")

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, b.String())
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	s.live.Handle(w, r, func() Message {
		s.mu.Lock()
		defer s.mu.Unlock()
		return Message{Type: MessageRender, HTML: s.element.InnerHTML()}
	})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot, err := json.Marshal(s.app.Proxy().Snapshot())
	s.mu.Unlock()

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(snapshot)
}

func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	path := chi.URLParam(r, "path")

	var value any
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&value); err != nil {
		http.Error(w, "invalid JSON body: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	err := s.app.Proxy().SetPath(path, value)
	renderErr := s.app.Err()
	s.mu.Unlock()

	if err == nil && renderErr != nil {
		s.live.BroadcastError(renderErr.Error())
	}
	s.writeError(w, err)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	err := s.app.TryUpdate()
	if err == nil {
		err = s.app.Err()
	}
	s.mu.Unlock()

	s.writeError(w, err)
}

// writeError maps app errors to status codes; nil is 204.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, app.ErrPath):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, reactive.ErrCycle):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.logger.Error("preview: update failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// Start serves until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.options.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("preview: serving", "addr", s.options.Addr, "component", s.options.Component.Name)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.Stop()
		return nil
	case err := <-errCh:
		s.Stop()
		if err != nil {
			return fmt.Errorf("preview: %w", err)
		}
		return nil
	}
}

// Stop closes live connections and shuts the HTTP server down.
func (s *Server) Stop() {
	s.live.Close()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpServer.Shutdown(ctx)
	}
}
