package reactive

import "log/slog"

// DependencyMode controls what happens to a computation's dependencies when
// it re-runs.
type DependencyMode int

const (
	// Recollect drops every dependency (and disposes child computations)
	// before a computation re-runs, so its dependency set always matches
	// what its latest run read.
	Recollect DependencyMode = iota

	// KeepStale never removes a dependency. A computation that stops reading
	// a cell stays registered against it for the life of the runtime.
	KeepStale
)

// String returns the mode name.
func (m DependencyMode) String() string {
	switch m {
	case Recollect:
		return "recollect"
	case KeepStale:
		return "keep-stale"
	default:
		return "unknown"
	}
}

// GuardMode controls cyclic update detection.
type GuardMode int

const (
	// GuardCell marks a cell while its dependents replay. Writing the same
	// cell again before the replay finishes panics with a *CycleError.
	GuardCell GuardMode = iota

	// GuardDepth allows re-entrant writes but panics with a *CycleError once
	// the active stack grows past the configured depth.
	GuardDepth

	// GuardOff disables detection. A self-feeding computation recurses until
	// the goroutine stack overflows, which is fatal in Go.
	GuardOff
)

// String returns the mode name.
func (m GuardMode) String() string {
	switch m {
	case GuardCell:
		return "cell"
	case GuardDepth:
		return "depth"
	case GuardOff:
		return "off"
	default:
		return "unknown"
	}
}

// DefaultMaxDepth is the stack limit used by GuardDepth when none is given.
const DefaultMaxDepth = 256

// Config holds Runtime settings.
type Config struct {
	// Mode is the dependency mode. Default: Recollect.
	Mode DependencyMode

	// Guard is the cycle detection mode. Default: GuardCell.
	Guard GuardMode

	// MaxDepth is the active stack limit for GuardDepth.
	// Default: DefaultMaxDepth.
	MaxDepth int

	// Logger receives debug and warning records.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Observer receives instrumentation callbacks.
	// If nil, callbacks are discarded.
	Observer Observer
}

// Option configures a Runtime.
type Option func(*Config)

// WithDependencyMode sets the dependency mode.
func WithDependencyMode(mode DependencyMode) Option {
	return func(c *Config) {
		c.Mode = mode
	}
}

// WithGuard sets the cycle detection mode.
func WithGuard(mode GuardMode) Option {
	return func(c *Config) {
		c.Guard = mode
	}
}

// WithMaxDepth switches to GuardDepth with the given stack limit.
func WithMaxDepth(depth int) Option {
	return func(c *Config) {
		c.Guard = GuardDepth
		c.MaxDepth = depth
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithObserver sets the instrumentation observer.
func WithObserver(o Observer) Option {
	return func(c *Config) {
		c.Observer = o
	}
}

// defaultConfig returns the default runtime configuration.
func defaultConfig() Config {
	return Config{
		Mode:     Recollect,
		Guard:    GuardCell,
		MaxDepth: DefaultMaxDepth,
	}
}
