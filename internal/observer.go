package internal

import "time"

// Observer receives runtime events. Implementations must not write signals.
type Observer interface {
	SignalWritten(label string)
	Recomputed(label string)
	CallbackRan(kind Kind)
	Flushed(callbacks int, elapsed time.Duration)
	Panicked(kind Kind, err *PanicError)
}

// NopObserver ignores every event. Embed it to implement part of Observer.
type NopObserver struct{}

func (NopObserver) SignalWritten(string)       {}
func (NopObserver) Recomputed(string)          {}
func (NopObserver) CallbackRan(Kind)           {}
func (NopObserver) Flushed(int, time.Duration) {}
func (NopObserver) Panicked(Kind, *PanicError) {}
