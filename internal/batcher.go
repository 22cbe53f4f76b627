package internal

type Batcher struct {
	// each nested batch increases the depth by 1
	// if depth > 0, notifications are queued until the outermost batch is complete
	depth int

	pending *TaskQueue

	// receives a panic raised by onComplete while fn is already panicking
	dropped func(rec any)
}

func NewBatcher() *Batcher {
	return &Batcher{
		depth:   0,
		pending: NewTaskQueue(),
	}
}

func (b *Batcher) IsBatching() bool {
	return b.depth > 0
}

func (b *Batcher) Depth() int {
	return b.depth
}

// Batch runs fn with notifications deferred. onComplete runs when the outermost
// batch exits, even if fn panics. In that case fn's panic is the one that
// propagates; a panic from onComplete goes to the dropped handler.
func (b *Batcher) Batch(fn, onComplete func()) {
	b.depth++
	defer func() {
		b.depth--
		if b.depth > 0 || onComplete == nil {
			return
		}

		if r := recover(); r != nil {
			b.completeUnwinding(onComplete)
			panic(r)
		}

		onComplete()
	}()

	fn()
}

func (b *Batcher) completeUnwinding(onComplete func()) {
	defer func() {
		if r := recover(); r != nil && b.dropped != nil {
			b.dropped(r)
		}
	}()

	onComplete()
}

func (b *Batcher) Schedule(t *Task) {
	b.pending.Enqueue(t)
}

func (b *Batcher) Drain() []*Task {
	return b.pending.Drain()
}

func (b *Batcher) Len() int {
	return b.pending.Len()
}

func (r *Runtime) Batch(fn func()) {
	r.batcher.Batch(fn, r.Flush)
}

func (r *Runtime) IsBatching() bool {
	return r.batcher.IsBatching()
}

// Schedule queues t when a batch is active and runs it immediately otherwise.
func (r *Runtime) Schedule(t *Task) {
	if t == nil || t.canceled {
		return
	}

	if r.batcher.IsBatching() {
		r.batcher.Schedule(t)
		return
	}

	r.invoke(t)
}
