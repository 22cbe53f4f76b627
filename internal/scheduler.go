package internal

import (
	"fmt"
	"time"
)

type Scheduler struct {
	running bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		running: false,
	}
}

// Run executes fn unless a run is already in progress.
func (s *Scheduler) Run(fn func()) bool {
	if s.running {
		return false
	}

	s.running = true
	defer func() { s.running = false }()

	fn()

	return true
}

// Flush drains pending tasks round by round until none are left, then runs the
// settled callbacks. A Flush called from a task returns right away; the outer
// flush picks up whatever it scheduled.
func (r *Runtime) Flush() {
	if r.batcher.Len() == 0 && r.settled.Len() == 0 {
		return
	}

	r.scheduler.Run(r.drain)
}

func (r *Runtime) drain() {
	start := time.Now()
	callbacks, rounds := 0, 0

	for r.batcher.Len() > 0 || r.settled.Len() > 0 {
		for r.batcher.Len() > 0 {
			if rounds >= r.config.MaxFlushRounds {
				dropped := r.batcher.Drain()
				panic(fmt.Errorf("%w: %d rounds, %d callbacks dropped", ErrFlushLimit, rounds, len(dropped)))
			}
			rounds++

			for _, t := range r.batcher.Drain() {
				if r.invoke(t) {
					callbacks++
				}
			}
		}

		for _, fn := range r.settled.Drain() {
			if r.invoke(NewTask(KindSettled, "", fn)) {
				callbacks++
			}
		}
	}

	elapsed := time.Since(start)

	r.stats.Flushes++
	r.config.Observer.Flushed(callbacks, elapsed)
	r.config.Logger.Debug("flushed",
		"runtime", r.id.String(),
		"callbacks", callbacks,
		"rounds", rounds,
		"elapsed", elapsed,
	)
}
