package sigcore

import "github.com/AnatoleLucet/sigcore/internal"

type Effect struct {
	effect *internal.Effect
}

// NewEffect creates a reactive effect that runs the given function
// whenever its dependencies change.
//
// The effect runs once right away. Effects and cleanups registered while it runs
// are disposed before each re-run.
func NewEffect(fn func()) *Effect {
	return &Effect{
		internal.GetRuntime().NewEffect(fn, ""),
	}
}

// NewNamedEffect is NewEffect with a label used in logs and panics.
func NewNamedEffect(label string, fn func()) *Effect {
	return &Effect{
		internal.GetRuntime().NewEffect(fn, label),
	}
}

// Dispose stops the effect and runs its cleanups.
func (e *Effect) Dispose() {
	e.effect.Dispose()
}

// OnCleanup registers a function to be called when the current owner is disposed,
// or before the current effect re-runs.
func OnCleanup(fn func()) {
	internal.GetRuntime().OnCleanup(fn)
}

// OnSettled registers a function to be called once, when the current
// (or next) flush has run every pending callback.
func OnSettled(fn func()) {
	internal.GetRuntime().OnSettled(fn)
}
