package internal

import (
	"log/slog"
	"sync"
)

// DefaultMaxFlushRounds bounds how many rounds of tasks a single flush drains
// before giving up on a runaway update loop.
const DefaultMaxFlushRounds = 1000

type Config struct {
	// Logger receives flush summaries (debug) and recovered panics (error).
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Observer is notified of writes, recomputes, callbacks, flushes and panics.
	Observer Observer

	// PanicHandler receives panics recovered from tasks run during a flush.
	// The runtime always logs them; the handler is called in addition.
	PanicHandler func(*PanicError)

	// MaxFlushRounds bounds the number of drain rounds of a single flush.
	MaxFlushRounds int
}

type Option func(*Config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

func WithObserver(observer Observer) Option {
	return func(c *Config) {
		c.Observer = observer
	}
}

func WithPanicHandler(fn func(*PanicError)) Option {
	return func(c *Config) {
		c.PanicHandler = fn
	}
}

func WithMaxFlushRounds(n int) Option {
	return func(c *Config) {
		c.MaxFlushRounds = n
	}
}

var (
	defaultsMu sync.Mutex
	defaults   []Option
)

// Configure sets the options applied to every runtime created afterwards,
// before the options given to NewRuntime.
func Configure(opts ...Option) {
	defaultsMu.Lock()
	defaults = append([]Option(nil), opts...)
	defaultsMu.Unlock()
}

func buildConfig(opts []Option) Config {
	defaultsMu.Lock()
	base := append([]Option(nil), defaults...)
	defaultsMu.Unlock()

	var cfg Config
	for _, opt := range append(base, opts...) {
		if opt != nil {
			opt(&cfg)
		}
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if cfg.MaxFlushRounds <= 0 {
		cfg.MaxFlushRounds = DefaultMaxFlushRounds
	}

	return cfg
}
