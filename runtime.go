package sigcore

import (
	"log/slog"

	"github.com/AnatoleLucet/sigcore/internal"
)

type (
	// Stats are cumulative counters of a runtime.
	Stats = internal.Stats

	// Observer receives runtime events, see the metrics package.
	Observer = internal.Observer

	// NopObserver ignores every event. Embed it to implement part of Observer.
	NopObserver = internal.NopObserver

	// PanicError wraps a panic recovered from a callback during a flush.
	PanicError = internal.PanicError

	// Kind is the kind of node or callback an event is about.
	Kind = internal.Kind

	RuntimeOption = internal.Option
)

const (
	KindSignal       = internal.KindSignal
	KindComputed     = internal.KindComputed
	KindEffect       = internal.KindEffect
	KindSubscription = internal.KindSubscription
	KindTask         = internal.KindTask
	KindSettled      = internal.KindSettled
)

var (
	ErrCycle      = internal.ErrCycle
	ErrFlushLimit = internal.ErrFlushLimit
)

// WithLogger sets the logger used for flush summaries and recovered panics.
func WithLogger(logger *slog.Logger) RuntimeOption { return internal.WithLogger(logger) }

// WithObserver sets the observer notified of runtime events.
func WithObserver(o Observer) RuntimeOption { return internal.WithObserver(o) }

// WithPanicHandler sets a function called with every panic recovered during a flush.
func WithPanicHandler(fn func(*PanicError)) RuntimeOption { return internal.WithPanicHandler(fn) }

// WithMaxFlushRounds bounds how many rounds a flush may run before it panics with ErrFlushLimit.
func WithMaxFlushRounds(n int) RuntimeOption { return internal.WithMaxFlushRounds(n) }

// Configure sets the options of every runtime created afterwards, including the
// ones created implicitly for new goroutines.
func Configure(opts ...RuntimeOption) {
	internal.Configure(opts...)
}

// Runtime is an independent reactive graph.
type Runtime struct {
	rt *internal.Runtime
}

func NewRuntime(opts ...RuntimeOption) *Runtime {
	return &Runtime{internal.NewRuntime(opts...)}
}

// CurrentRuntime returns the runtime of the calling goroutine.
func CurrentRuntime() *Runtime {
	return &Runtime{internal.GetRuntime()}
}

// ReleaseRuntime forgets the calling goroutine's runtime, typically before the
// goroutine exits. Signals created with it keep working.
func ReleaseRuntime() {
	internal.Release()
}

// Run fn with r as the calling goroutine's runtime. Reads, writes and batches
// in fn track and flush on r.
func (r *Runtime) Run(fn func()) {
	restore := internal.Bind(r.rt)
	defer restore()

	fn()
}

func (r *Runtime) ID() string {
	return r.rt.ID().String()
}

func (r *Runtime) Stats() Stats {
	return r.rt.Stats()
}

func (r *Runtime) Flush() {
	r.rt.Flush()
}
