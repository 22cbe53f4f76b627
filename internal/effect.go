package internal

type Effect struct {
	*Owner

	fn   func()
	deps dependencies
	task *Task

	disposed bool
}

// NewEffect runs fn right away and again, at most once per flush, whenever
// something it read has changed.
func (r *Runtime) NewEffect(fn func(), label string) *Effect {
	e := &Effect{
		Owner: r.NewOwner(),
		fn:    fn,
	}
	e.task = NewTask(KindEffect, label, e.run)
	e.OnDispose(e.stop)

	e.execute()

	return e
}

// AddDependency implements Consumer.
func (e *Effect) AddDependency(dep *Node) {
	e.deps.link(e, dep)
}

func (e *Effect) Disposed() bool {
	return e.disposed
}

func (e *Effect) markStale(rt *Runtime) {
	if e.disposed {
		return
	}

	rt.batcher.Schedule(e.task)
}

func (e *Effect) run() {
	if e.disposed || !e.deps.changed() {
		return
	}

	e.execute()
}

func (e *Effect) execute() {
	e.Clean()
	e.deps.clear(e)

	defer func() {
		if r := recover(); r != nil {
			if !e.handle(r) {
				panic(r)
			}
		}
	}()

	rt := GetRuntime()
	rt.stats.EffectRuns++
	rt.tracker.Run(e, e.Owner, e.fn)
}

func (e *Effect) stop() {
	e.disposed = true
	e.deps.clear(e)
	e.task.Cancel()
}
