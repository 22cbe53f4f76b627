package internal

import (
	"fmt"
	"slices"
)

type Computed struct {
	*Node

	compute func() any
	equals  EqualFunc
	value   any

	deps dependencies

	// refreshes the value once per change cycle when someone subscribed
	refreshTask *Task

	initialized bool
	stale       bool
	computing   bool
	disposed    bool
}

func (r *Runtime) NewComputed(compute func() any, label string, equals EqualFunc) *Computed {
	if equals == nil {
		equals = DefaultEquals
	}

	c := &Computed{
		Node:    newNode(KindComputed, label),
		compute: compute,
		equals:  equals,
		stale:   true,
	}
	c.refresh = c.update
	c.refreshTask = NewTask(KindComputed, label, c.update)

	if owner := r.tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(c.Dispose)
	}

	return c
}

// Read brings the value up to date, tracks the dependency and returns the value.
func (c *Computed) Read() any {
	c.update()
	GetRuntime().tracker.Track(c.Node)

	return c.value
}

func (c *Computed) Peek() any {
	c.update()

	return c.value
}

// Subscribe evaluates the computed, so it tracks its dependencies, and registers fn.
func (c *Computed) Subscribe(fn func()) *Subscription {
	c.update()

	return c.Node.Subscribe(fn)
}

// AddDependency implements Consumer.
func (c *Computed) AddDependency(dep *Node) {
	c.deps.link(c, dep)
}

// Dispose unlinks the computed from its dependencies. It keeps its last value
// and no longer recomputes.
func (c *Computed) Dispose() {
	if c.disposed {
		return
	}
	c.disposed = true

	c.deps.clear(c)
	c.refreshTask.Cancel()
	c.stale = false
}

func (c *Computed) Stale() bool {
	return c.stale
}

func (c *Computed) markStale(rt *Runtime) {
	if c.disposed {
		return
	}

	if !c.stale {
		c.stale = true

		for _, o := range slices.Clone(c.observers) {
			o.markStale(rt)
		}
	}

	// also when already stale: a refresh that panicked leaves the computed stale
	if c.HasSubscribers() {
		rt.batcher.Schedule(c.refreshTask)
	}
}

func (c *Computed) update() {
	if !c.stale {
		return
	}

	if c.computing {
		panic(fmt.Errorf("%w: %q", ErrCycle, c.label))
	}

	if c.initialized && !c.deps.changed() {
		c.stale = false
		return
	}

	c.recompute()
}

func (c *Computed) recompute() {
	rt := GetRuntime()
	c.deps.clear(c)

	var value any
	func() {
		c.computing = true
		defer func() { c.computing = false }()

		rt.tracker.RunWithConsumer(c, func() {
			value = c.compute()
		})
	}()

	c.stale = false
	rt.stats.Recomputes++
	rt.config.Observer.Recomputed(c.label)

	if c.initialized && c.equals(c.value, value) {
		return
	}

	first := !c.initialized
	c.initialized = true
	c.value = value
	c.version++

	if !first {
		c.notifySubscribers()
	}
}
