package internal

import (
	"slices"
)

type Owner struct {
	// run once, on the next Clean or Dispose
	cleanups []func()

	// run on every Dispose
	disposers []func()

	// panic handlers
	catchers []func(any)

	// the context values of this owner
	context map[*Context]any

	parent   *Owner
	children []*Owner // most recent first
}

// NewOwner creates an owner, attached as a child of the current owner if any.
func (r *Runtime) NewOwner() *Owner {
	o := &Owner{
		context: make(map[*Context]any),
	}

	if parent := r.tracker.CurrentOwner(); parent != nil {
		parent.AddChild(o)
	}

	return o
}

// Run fn with this owner as the current owner. Panics are handed to the
// nearest owner with error handlers, or propagate if there is none.
func (o *Owner) Run(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if !o.handle(r) {
				panic(r)
			}
		}
	}()

	GetRuntime().tracker.RunWithOwner(o, func() {
		err = fn()
	})

	return err
}

func (o *Owner) Parent() *Owner {
	return o.parent
}

func (parent *Owner) AddChild(child *Owner) {
	child.parent = parent
	parent.children = slices.Insert(parent.children, 0, child)
}

func (o *Owner) removeChild(child *Owner) {
	if i := slices.Index(o.children, child); i >= 0 {
		o.children = slices.Delete(o.children, i, i+1)
	}
}

// Clean disposes the children and runs the pending cleanups, leaving the owner usable.
func (o *Owner) Clean() {
	o.DisposeChildren()

	cleanups := o.cleanups
	o.cleanups = nil

	for _, fn := range cleanups {
		fn()
	}
}

// Dispose cleans the owner, runs its dispose hooks and detaches it from its parent.
func (o *Owner) Dispose() {
	o.Clean()

	for _, fn := range slices.Clone(o.disposers) {
		fn()
	}

	if o.parent != nil {
		o.parent.removeChild(o)
		o.parent = nil
	}
}

func (o *Owner) DisposeChildren() {
	children := o.children
	o.children = nil

	for _, child := range children {
		child.Dispose()
	}
}

func (o *Owner) OnCleanup(fn func()) {
	o.cleanups = append(o.cleanups, fn)
}

func (o *Owner) OnDispose(fn func()) {
	o.disposers = append(o.disposers, fn)
}

func (o *Owner) OnError(fn func(any)) {
	o.catchers = append(o.catchers, fn)
}

// handle hands r to the closest owner, starting from o, that has error handlers.
func (o *Owner) handle(r any) bool {
	for owner := o; owner != nil; owner = owner.parent {
		if len(owner.catchers) == 0 {
			continue
		}

		for _, catcher := range slices.Clone(owner.catchers) {
			catcher(r)
		}
		return true
	}

	return false
}

// Context is a value scoped to an owner subtree.
type Context struct {
	initial any
}

func NewContext(initial any) *Context {
	return &Context{initial: initial}
}

// Value returns the value set by the closest owner, or the initial value.
func (c *Context) Value() any {
	for o := GetRuntime().tracker.CurrentOwner(); o != nil; o = o.parent {
		if v, ok := o.context[c]; ok {
			return v
		}
	}

	return c.initial
}

// Set stores v on the current owner. Without an owner it is a no-op.
func (c *Context) Set(v any) {
	if o := GetRuntime().tracker.CurrentOwner(); o != nil {
		o.context[c] = v
	}
}

func (r *Runtime) OnCleanup(fn func()) {
	if owner := r.tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}
