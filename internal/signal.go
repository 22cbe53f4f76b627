package internal

type Signal struct {
	*Node

	value  any
	equals EqualFunc
}

func (r *Runtime) NewSignal(initial any, label string, equals EqualFunc) *Signal {
	if equals == nil {
		equals = DefaultEquals
	}

	return &Signal{
		Node:   newNode(KindSignal, label),
		value:  initial,
		equals: equals,
	}
}

// Read returns the current value, tracking the dependency if within a reactive context.
func (s *Signal) Read() any {
	GetRuntime().tracker.Track(s.Node)

	return s.value
}

// Peek returns the current value without tracking.
func (s *Signal) Peek() any {
	return s.value
}

// Write stores v and notifies dependents, unless v equals the current value.
func (s *Signal) Write(v any) {
	if s.equals(s.value, v) {
		return
	}

	s.value = v
	s.version++

	rt := GetRuntime()
	rt.stats.Writes++
	rt.config.Observer.SignalWritten(s.label)

	s.notify()
}
