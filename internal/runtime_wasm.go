//go:build wasm

package internal

import "sync"

var once sync.Once
var globalRuntime *Runtime

func GetRuntime() *Runtime {
	once.Do(func() {
		if globalRuntime == nil {
			globalRuntime = NewRuntime()
		}
	})

	return globalRuntime
}

func Bind(r *Runtime) (restore func()) {
	GetRuntime()
	prev := globalRuntime
	globalRuntime = r

	return func() { globalRuntime = prev }
}

func Release() {}
