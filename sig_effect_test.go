package sigcore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffect(t *testing.T) {
	t.Run("runs on signal change with cleanup", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		log = append(log, fmt.Sprintf("%d", count.Read()))

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)
		log = append(log, fmt.Sprintf("%d", count.Read()))
		count.Write(20)

		assert.Equal(t, []string{
			"0",
			"changed 0",
			"cleanup",
			"changed 10",
			"10",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("writes to another signal", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewSignal(0)

		NewEffect(func() {
			double.Write(count.Read() * 2)
		})

		NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", double.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
			"changed 20",
		}, log)
	})

	t.Run("nested effects", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		NewEffect(func() {
			count.Read()
			log = append(log, "running")

			NewEffect(func() {
				log = append(log, "running nested")

				OnCleanup(func() {
					log = append(log, "cleanup nested")
				})
			})

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running",
			"running nested",
			"cleanup nested",
			"cleanup",
			"running",
			"running nested",
		}, log)
	})

	t.Run("diamond dependency", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewComputed(func() int { return count.Read() * 2 })
		quad := NewComputed(func() int { return count.Read() * 4 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))

			OnCleanup(func() {
				log = append(log, fmt.Sprintf("cleanup %d %d", double.Read(), quad.Read()))
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"cleanup 20 40",
			"running 20 40",
		}, log)
	})

	t.Run("diamond dependency nested", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		double := NewComputed(func() int { return count.Read() * 2 })
		quad := NewComputed(func() int { return count.Read() * 4 })

		NewEffect(func() {
			log = append(log, fmt.Sprintf("running %d %d", double.Read(), quad.Read()))

			NewEffect(func() {
				log = append(log, fmt.Sprintf("running nested %d %d", double.Read(), quad.Read()))
				OnCleanup(func() {
					log = append(log, fmt.Sprintf("cleanup nested %d %d", double.Read(), quad.Read()))
				})
			})

			OnCleanup(func() {
				log = append(log, fmt.Sprintf("cleanup %d %d", double.Read(), quad.Read()))
			})
		})

		count.Write(10)

		assert.Equal(t, []string{
			"running 0 0",
			"running nested 0 0",
			"cleanup nested 20 40",
			"cleanup 20 40",
			"running 20 40",
			"running nested 20 40",
		}, log)
	})

	t.Run("deps change between runs", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)

		initialized := false
		NewEffect(func() {
			log = append(log, "running")
			if !initialized {
				count.Read()
			}
			initialized = true
		})

		count.Write(1)
		count.Write(2) // should not trigger since effect no longer depends on count

		assert.Equal(t, []string{
			"running",
			"running",
		}, log)
	})

	t.Run("writes from another goroutine", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		log := []int{}

		count := NewSignal(0)

		NewEffect(func() {
			mu.Lock()
			log = append(log, count.Read())
			mu.Unlock()
		})

		wg.Go(func() {
			for count.Read() < 5 {
				count.Write(count.Read() + 1)
			}
		})

		wg.Wait()

		assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, log)
	})

	t.Run("runs once per flush", func(t *testing.T) {
		runs := 0

		a := NewSignal(1)
		b := NewSignal(2)
		NewEffect(func() {
			runs++
			a.Read()
			b.Read()
		})

		Batch(func() {
			a.Write(10)
			b.Write(20)
		})

		assert.Equal(t, 2, runs)
	})

	t.Run("skips when a computed dependency settles on the same value", func(t *testing.T) {
		runs := 0

		count := NewSignal(1)
		positive := NewComputed(func() bool { return count.Read() > 0 })
		NewEffect(func() {
			runs++
			positive.Read()
		})

		count.Write(2)
		count.Write(3)

		assert.Equal(t, 1, runs)
	})

	t.Run("dispose stops re-runs", func(t *testing.T) {
		log := []string{}

		count := NewSignal(0)
		e := NewEffect(func() {
			log = append(log, fmt.Sprintf("changed %d", count.Read()))

			OnCleanup(func() {
				log = append(log, "cleanup")
			})
		})

		e.Dispose()
		count.Write(10)

		assert.Equal(t, []string{
			"changed 0",
			"cleanup",
		}, log)
	})

	t.Run("panic on first run reaches the creator", func(t *testing.T) {
		r := recovered(func() {
			NewNamedEffect("failing", func() { panic("boom") })
		})

		assert.Equal(t, "boom", r)
		assert.Nil(t, CurrentConsumer())
	})

	t.Run("panic in a re-run is isolated", func(t *testing.T) {
		log := []string{}
		var panics []*PanicError

		NewRuntime(
			WithLogger(discardLogger()),
			WithPanicHandler(func(err *PanicError) { panics = append(panics, err) }),
		).Run(func() {
			count := NewSignal(0)

			NewNamedEffect("failing", func() {
				if count.Read() > 0 {
					panic("boom")
				}
			})
			NewEffect(func() {
				log = append(log, fmt.Sprintf("changed %d", count.Read()))
			})

			count.Write(1)
		})

		assert.Equal(t, []string{"changed 0", "changed 1"}, log)
		if assert.Len(t, panics, 1) {
			assert.Equal(t, KindEffect, panics[0].Kind)
			assert.Equal(t, "failing", panics[0].Label)
			assert.Equal(t, "boom", panics[0].Value)
		}
	})

	t.Run("built on another goroutine", func(t *testing.T) {
		var wg sync.WaitGroup
		runs := 0

		count := NewSignal(0)
		wg.Go(func() {
			defer ReleaseRuntime()

			NewEffect(func() {
				runs++
				count.Read()
			})
		})
		wg.Wait()

		count.Write(1)
		count.Write(2)

		assert.Equal(t, 3, runs)
	})
}
