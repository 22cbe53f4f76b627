//go:build !wasm

package internal

import (
	"sync"

	"github.com/petermattis/goid"
)

var runtimes sync.Map

// GetRuntime returns the runtime bound to the calling goroutine, creating one
// on first use.
func GetRuntime() *Runtime {
	gid := getGID()

	if r, ok := runtimes.Load(gid); ok {
		return r.(*Runtime)
	}

	r := NewRuntime()
	runtimes.Store(gid, r)
	return r
}

// Bind makes r the calling goroutine's runtime until restore is called.
func Bind(r *Runtime) (restore func()) {
	gid := getGID()
	prev, ok := runtimes.Load(gid)
	runtimes.Store(gid, r)

	return func() {
		if ok {
			runtimes.Store(gid, prev)
		} else {
			runtimes.Delete(gid)
		}
	}
}

// Release forgets the calling goroutine's runtime. Nodes created with it keep working.
func Release() {
	runtimes.Delete(getGID())
}

func getGID() int64 {
	return goid.Get()
}
