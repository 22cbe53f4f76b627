package internal

import (
	"runtime/debug"

	"github.com/oklog/ulid/v2"
)

// Stats are cumulative counters of a runtime.
type Stats struct {
	Writes     uint64
	Recomputes uint64
	EffectRuns uint64
	Callbacks  uint64
	Flushes    uint64
	Panics     uint64
}

// Runtime holds the ambient state of one reactive graph. It is confined to a
// single logical thread: nothing in it is synchronized.
type Runtime struct {
	id     ulid.ULID
	config Config

	tracker   *Tracker
	batcher   *Batcher
	scheduler *Scheduler
	settled   *SettledQueue

	stats Stats
}

func NewRuntime(opts ...Option) *Runtime {
	r := &Runtime{
		id:     ulid.Make(),
		config: buildConfig(opts),

		tracker:   NewTracker(),
		batcher:   NewBatcher(),
		scheduler: NewScheduler(),
		settled:   NewSettledQueue(),
	}
	r.batcher.dropped = r.reportDropped

	return r
}

func (r *Runtime) ID() ulid.ULID {
	return r.id
}

func (r *Runtime) Config() Config {
	return r.config
}

func (r *Runtime) Stats() Stats {
	return r.stats
}

func (r *Runtime) CurrentOwner() *Owner {
	return r.tracker.CurrentOwner()
}

func (r *Runtime) CurrentConsumer() Consumer {
	return r.tracker.CurrentConsumer()
}

// OnSettled registers fn to run once, after the current or next flush drained.
func (r *Runtime) OnSettled(fn func()) {
	r.settled.Enqueue(fn)
}

// invoke runs t, recovering and reporting a panic so the remaining tasks of a
// flush still run.
func (r *Runtime) invoke(t *Task) (ran bool) {
	if t.canceled {
		return false
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.reportPanic(t, rec)
		}
	}()

	ran = true
	r.stats.Callbacks++
	r.config.Observer.CallbackRan(t.kind)

	t.fn()

	return ran
}

func (r *Runtime) reportPanic(t *Task, rec any) {
	err := &PanicError{
		Kind:  t.kind,
		Label: t.label,
		Value: rec,
		Stack: debug.Stack(),
	}

	r.stats.Panics++
	r.config.Logger.Error("reactive callback panicked",
		"runtime", r.id.String(),
		"kind", t.kind.String(),
		"label", t.label,
		"panic", rec,
	)
	r.config.Observer.Panicked(t.kind, err)

	if r.config.PanicHandler != nil {
		r.config.PanicHandler(err)
	}
}

// reportDropped logs a flush panic that was discarded because the batch body
// was already panicking.
func (r *Runtime) reportDropped(rec any) {
	r.stats.Panics++
	r.config.Logger.Error("flush panicked while unwinding a batch",
		"runtime", r.id.String(),
		"panic", rec,
	)
}
