// Package sigcore is a push-based reactive signal graph: signals, lazily cached
// computeds, effects, batching and untracked reads.
//
// Each goroutine gets its own runtime on first use. Reads, writes and batches
// go through the runtime of the calling goroutine, so a graph may be handed to
// another goroutine, but it must not be used by several goroutines at once.
package sigcore

import "github.com/AnatoleLucet/sigcore/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Options configures a signal or a computed.
type Options[T any] struct {
	// Label names the node in logs, panics and metrics.
	Label string

	// Equals reports whether two values are the same. A write of an equal value
	// is ignored. Defaults to == for comparable values and reference identity
	// for slices and maps.
	Equals func(a, b T) bool
}

func resolveOptions[T any](opts []Options[T]) (string, internal.EqualFunc) {
	if len(opts) == 0 {
		return "", nil
	}

	o := opts[0]
	if o.Equals == nil {
		return o.Label, nil
	}

	eq := o.Equals
	return o.Label, func(a, b any) bool {
		return eq(as[T](a), as[T](b))
	}
}

// Equal compares comparable values with ==.
func Equal[T comparable](a, b T) bool {
	return a == b
}

// Reader is the read side shared by signals, read-only views and computeds.
type Reader[T any] interface {
	Read() T
	Peek() T
	Subscribe(fn func()) (unsubscribe func())
}

type Signal[T any] struct {
	signal *internal.Signal
}

// NewSignal creates your tipical read/write signal.
func NewSignal[T any](initial T, opts ...Options[T]) *Signal[T] {
	label, equals := resolveOptions(opts)

	return &Signal[T]{
		internal.GetRuntime().NewSignal(initial, label, equals),
	}
}

// Read the current value of the signal, tracking the dependency if within a reactive context.
func (s *Signal[T]) Read() T {
	return as[T](s.signal.Read())
}

// Peek reads the current value without tracking it.
func (s *Signal[T]) Peek() T {
	return as[T](s.signal.Peek())
}

// Write a new value to the signal, triggering updates to any dependents.
// Writing a value equal to the current one does nothing.
func (s *Signal[T]) Write(v T) {
	s.signal.Write(v)
}

// Update writes fn applied to the current (untracked) value.
func (s *Signal[T]) Update(fn func(T) T) {
	s.Write(fn(s.Peek()))
}

// Subscribe calls fn after every future change of the signal.
// The returned function removes the subscription, and may be called any number of times.
func (s *Signal[T]) Subscribe(fn func()) (unsubscribe func()) {
	return subscribe(s.signal.Node, fn)
}

// AsReadonly returns a view of the signal without its write methods.
func (s *Signal[T]) AsReadonly() *Readonly[T] {
	return &Readonly[T]{s}
}

func (s *Signal[T]) Node() *Node {
	return s.signal.Node
}

func subscribe(n *Node, fn func()) func() {
	if fn == nil {
		return func() {}
	}

	return n.Subscribe(fn).Unsubscribe
}

// Readonly exposes a signal without its write methods. Writes made through the
// signal are visible through the view.
type Readonly[T any] struct {
	signal *Signal[T]
}

func (r *Readonly[T]) Read() T                    { return r.signal.Read() }
func (r *Readonly[T]) Peek() T                    { return r.signal.Peek() }
func (r *Readonly[T]) Subscribe(fn func()) func() { return r.signal.Subscribe(fn) }
func (r *Readonly[T]) Node() *Node                { return r.signal.Node() }

type Computed[T any] struct {
	computed *internal.Computed
}

// NewComputed creates a computed signal that derives its value from other signals (its a memo).
// The value is computed on first read and cached until a dependency changes.
func NewComputed[T any](compute func() T, opts ...Options[T]) *Computed[T] {
	label, equals := resolveOptions(opts)

	return &Computed[T]{
		internal.GetRuntime().NewComputed(func() any {
			return compute()
		}, label, equals),
	}
}

// Read the current value of the computed signal, tracking the dependency if within a reactive context.
func (c *Computed[T]) Read() T {
	return as[T](c.computed.Read())
}

// Peek the current value without tracking it. It still recomputes a stale value.
func (c *Computed[T]) Peek() T {
	return as[T](c.computed.Peek())
}

// Subscribe calls fn after every future change of the computed value.
// A computed with subscribers recomputes once at the end of every batch that
// touched its dependencies.
func (c *Computed[T]) Subscribe(fn func()) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	return c.computed.Subscribe(fn).Unsubscribe
}

// Dispose detaches the computed from its dependencies. It keeps its last value.
func (c *Computed[T]) Dispose() {
	c.computed.Dispose()
}

func (c *Computed[T]) Node() *Node {
	return c.computed.Node
}
