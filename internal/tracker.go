package internal

// Consumer is a tracked evaluation: while it is the current consumer, every
// node read reports itself through AddDependency.
type Consumer interface {
	AddDependency(dep *Node)
}

type Tracker struct {
	currentOwner    *Owner   // for lifecycle/cleanup tracking
	currentConsumer Consumer // for reactive dependency tracking
}

func NewTracker() *Tracker {
	return &Tracker{}
}

func (t *Tracker) CurrentOwner() *Owner {
	return t.currentOwner
}

func (t *Tracker) CurrentConsumer() Consumer {
	return t.currentConsumer
}

// SetConsumer replaces the current consumer and returns the previous one.
// Callers must restore it; prefer RunWithConsumer.
func (t *Tracker) SetConsumer(c Consumer) Consumer {
	prev := t.currentConsumer
	t.currentConsumer = c
	return prev
}

func (t *Tracker) RunWithConsumer(c Consumer, fn func()) {
	prev := t.currentConsumer
	t.currentConsumer = c
	defer func() { t.currentConsumer = prev }()

	fn()
}

func (t *Tracker) RunWithOwner(owner *Owner, fn func()) {
	prev := t.currentOwner
	t.currentOwner = owner
	defer func() { t.currentOwner = prev }()

	fn()
}

// Run installs both a consumer and an owner for the duration of fn.
func (t *Tracker) Run(c Consumer, owner *Owner, fn func()) {
	prevOwner := t.currentOwner
	prevConsumer := t.currentConsumer

	t.currentOwner = owner
	t.currentConsumer = c

	defer func() {
		t.currentOwner = prevOwner
		t.currentConsumer = prevConsumer
	}()

	fn()
}

func (t *Tracker) RunUntracked(fn func()) {
	t.RunWithConsumer(nil, fn)
}

// Track reports dep to the current consumer, if any.
func (t *Tracker) Track(dep *Node) {
	if t.currentConsumer != nil {
		t.currentConsumer.AddDependency(dep)
	}
}

func (r *Runtime) Untrack(fn func()) {
	r.tracker.RunUntracked(fn)
}

func (r *Runtime) Tracker() *Tracker {
	return r.tracker
}
