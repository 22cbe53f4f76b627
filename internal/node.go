package internal

import "slices"

type Kind uint8

const (
	KindSignal Kind = iota
	KindComputed
	KindEffect
	KindSubscription
	KindTask
	KindSettled
)

var kindNames = [...]string{
	KindSignal:       "signal",
	KindComputed:     "computed",
	KindEffect:       "effect",
	KindSubscription: "subscription",
	KindTask:         "task",
	KindSettled:      "settled",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// observer is a derived node (computed or effect) linked to the nodes it read.
// markStale is called synchronously when one of them changes, with the
// runtime that is delivering the change.
type observer interface {
	markStale(rt *Runtime)
}

// Node is the type-erased part of a signal or computed: its version, its
// subscribers and the derived nodes depending on it.
//
// A node is not bound to a runtime. Reads, writes and notifications go through
// the runtime of the calling goroutine, so a graph handed to another goroutine
// tracks and batches there.
type Node struct {
	kind  Kind
	label string

	// incremented every time the value changes
	version uint64

	subs      []*Subscription
	observers []observer

	// brings a derived node up to date, nil for plain signals
	refresh func()
}

func newNode(kind Kind, label string) *Node {
	return &Node{
		kind:  kind,
		label: label,
	}
}

func (n *Node) Kind() Kind    { return n.kind }
func (n *Node) Label() string { return n.label }

// Version returns the node's change counter, recomputing a stale derived node first.
func (n *Node) Version() uint64 {
	if n.refresh != nil {
		n.refresh()
	}

	return n.version
}

// Subscribe registers fn to run after every future change of the node.
// A subscription made while an owner is current is released with that owner.
func (n *Node) Subscribe(fn func()) *Subscription {
	sub := &Subscription{
		node: n,
		task: NewTask(KindSubscription, n.label, fn),
	}
	n.subs = append(n.subs, sub)

	if owner := GetRuntime().tracker.CurrentOwner(); owner != nil {
		owner.OnCleanup(sub.Unsubscribe)
	}

	return sub
}

func (n *Node) HasSubscribers() bool {
	return len(n.subs) > 0
}

// notify marks every observer stale and schedules every subscriber, deferring
// the delivery until the enclosing batch (or this one) completes.
func (n *Node) notify() {
	rt := GetRuntime()
	rt.Batch(func() {
		for _, o := range slices.Clone(n.observers) {
			o.markStale(rt)
		}

		n.scheduleSubscribers(rt)
	})
}

func (n *Node) notifySubscribers() {
	if len(n.subs) == 0 {
		return
	}

	rt := GetRuntime()
	rt.Batch(func() {
		n.scheduleSubscribers(rt)
	})
}

func (n *Node) scheduleSubscribers(rt *Runtime) {
	// iterate over a snapshot, subscribers may (un)subscribe while being notified
	for _, sub := range slices.Clone(n.subs) {
		rt.batcher.Schedule(sub.task)
	}
}

func (n *Node) addObserver(o observer) {
	if !slices.Contains(n.observers, o) {
		n.observers = append(n.observers, o)
	}
}

func (n *Node) removeObserver(o observer) {
	if i := slices.Index(n.observers, o); i >= 0 {
		n.observers = slices.Delete(n.observers, i, i+1)
	}
}

type Subscription struct {
	node *Node
	task *Task
}

// Unsubscribe removes the subscription. It is idempotent and safe to call
// while the node is notifying.
func (s *Subscription) Unsubscribe() {
	if s.task.canceled {
		return
	}
	s.task.Cancel()

	if i := slices.Index(s.node.subs, s); i >= 0 {
		s.node.subs = slices.Delete(s.node.subs, i, i+1)
	}
}

func (s *Subscription) Active() bool {
	return !s.task.canceled
}
