package sigcore

import "github.com/AnatoleLucet/sigcore/internal"

// Batch batches multiple signal writes into a single update cycle,
// instead of triggering updates after each write.
//
// Batches nest; pending callbacks run once, when the outermost batch returns
// (or panics).
func Batch(fn func()) {
	internal.GetRuntime().Batch(fn)
}

// BatchValue is Batch for a function returning a value.
func BatchValue[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Batch(func() { result = fn() })
	return result
}

// IsBatching reports whether a batch is in progress on this goroutine's runtime.
func IsBatching() bool {
	return internal.GetRuntime().IsBatching()
}

// Flush runs every pending callback now.
func Flush() {
	internal.GetRuntime().Flush()
}

// Untrack runs the given function without tracking any reactive dependencies.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().Untrack(func() { result = fn() })
	return result
}

// Untracked is Untrack for a function without result.
func Untracked(fn func()) {
	internal.GetRuntime().Untrack(fn)
}

// Task is a callback handle for Schedule.
type Task struct {
	task *internal.Task
}

func NewTask(label string, fn func()) *Task {
	return &Task{internal.NewTask(internal.KindTask, label, fn)}
}

// Cancel prevents any pending or future run of the task.
func (t *Task) Cancel() {
	t.task.Cancel()
}

// Schedule runs t when the current batch completes, or right away outside a batch.
// A task scheduled several times within one batch runs once.
func Schedule(t *Task) {
	internal.GetRuntime().Schedule(t.task)
}
