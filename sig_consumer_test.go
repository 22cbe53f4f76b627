package sigcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// memo is a minimal computed built on the consumer hooks.
type memo struct {
	fn    func() int
	value int
	deps  []*Node
	unsub []func()
	dirty bool
}

func newMemo(fn func() int) *memo {
	m := &memo{fn: fn}
	m.evaluate()
	return m
}

func (m *memo) AddDependency(dep *Node) {
	m.deps = append(m.deps, dep)
	m.unsub = append(m.unsub, dep.Subscribe(func() { m.dirty = true }).Unsubscribe)
}

func (m *memo) evaluate() {
	for _, unsubscribe := range m.unsub {
		unsubscribe()
	}
	m.deps, m.unsub = nil, nil

	RunTracked(m, func() {
		m.value = m.fn()
	})
	m.dirty = false
}

func (m *memo) Read() int {
	if m.dirty {
		m.evaluate()
	}
	return m.value
}

func TestConsumer(t *testing.T) {
	t.Run("external consumer tracks reads", func(t *testing.T) {
		a := NewSignal(1)
		b := NewSignal(2)
		double := NewComputed(func() int { return b.Read() * 2 })

		m := newMemo(func() int { return a.Read() + double.Read() })
		assert.Len(t, m.deps, 2)
		assert.Equal(t, 5, m.Read())

		b.Write(3)
		assert.True(t, m.dirty)
		assert.Equal(t, 7, m.Read())
	})

	t.Run("untracked reads are not reported", func(t *testing.T) {
		a := NewSignal(1)
		b := NewSignal(2)

		m := newMemo(func() int { return a.Read() + b.Peek() + Untrack(b.Read) })

		assert.Len(t, m.deps, 1)
		assert.Same(t, a.Node(), m.deps[0])
	})

	t.Run("run tracked restores the previous consumer", func(t *testing.T) {
		outer := &memo{}
		inner := &memo{}

		RunTracked(outer, func() {
			r := recovered(func() {
				RunTracked(inner, func() {
					assert.True(t, CurrentConsumer() == Consumer(inner))
					panic("boom")
				})
			})

			assert.Equal(t, "boom", r)
			assert.True(t, CurrentConsumer() == Consumer(outer))
		})

		assert.Nil(t, CurrentConsumer())
	})

	t.Run("set current consumer", func(t *testing.T) {
		s := NewSignal(0)
		m := &memo{}

		prev := SetCurrentConsumer(m)
		s.Read()
		TrackDependency(s.Node())
		SetCurrentConsumer(prev)

		assert.Nil(t, prev)
		assert.Len(t, m.deps, 2)
	})
}
