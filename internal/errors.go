package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrCycle is raised when a computed reads itself while evaluating.
	ErrCycle = errors.New("sigcore: computed depends on itself")

	// ErrFlushLimit is raised when a flush keeps producing work past MaxFlushRounds.
	ErrFlushLimit = errors.New("sigcore: flush did not settle")
)

// PanicError wraps a value recovered from a reactive callback.
type PanicError struct {
	Kind  Kind
	Label string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	if e.Label != "" {
		return fmt.Sprintf("sigcore: %s %q panicked: %v", e.Kind, e.Label, e.Value)
	}
	return fmt.Sprintf("sigcore: %s panicked: %v", e.Kind, e.Value)
}

func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
