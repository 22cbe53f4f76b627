package internal

// Task is a schedulable callback. The pending set of a batch is deduplicated by
// task identity: scheduling the same task several times before it runs results
// in a single run.
type Task struct {
	fn    func()
	kind  Kind
	label string

	queued   bool
	canceled bool
}

func NewTask(kind Kind, label string, fn func()) *Task {
	return &Task{fn: fn, kind: kind, label: label}
}

func (t *Task) Kind() Kind     { return t.kind }
func (t *Task) Label() string  { return t.label }
func (t *Task) Queued() bool   { return t.queued }
func (t *Task) Canceled() bool { return t.canceled }

// Cancel turns any pending and future run of the task into a no-op.
func (t *Task) Cancel() {
	t.canceled = true
}

// TaskQueue is an insertion-ordered, duplicate-free list of tasks.
type TaskQueue struct {
	tasks []*Task
}

func NewTaskQueue() *TaskQueue {
	return &TaskQueue{
		tasks: make([]*Task, 0),
	}
}

func (q *TaskQueue) Enqueue(t *Task) {
	if t == nil || t.queued || t.canceled {
		return
	}
	t.queued = true

	q.tasks = append(q.tasks, t)
}

// Drain returns the queued tasks and leaves the queue empty.
// Tasks enqueued while the returned ones run land in the next drain.
func (q *TaskQueue) Drain() []*Task {
	tasks := q.tasks
	q.tasks = make([]*Task, 0, len(tasks))

	for _, t := range tasks {
		t.queued = false
	}

	return tasks
}

func (q *TaskQueue) Len() int {
	return len(q.tasks)
}

type SettledQueue struct {
	callbacks []func()
}

func NewSettledQueue() *SettledQueue {
	return &SettledQueue{
		callbacks: make([]func(), 0),
	}
}

func (q *SettledQueue) Enqueue(fn func()) {
	q.callbacks = append(q.callbacks, fn)
}

func (q *SettledQueue) Drain() []func() {
	callbacks := q.callbacks
	q.callbacks = make([]func(), 0)

	return callbacks
}

func (q *SettledQueue) Len() int {
	return len(q.callbacks)
}
