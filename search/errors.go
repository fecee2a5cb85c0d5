package search

import (
	"errors"
	"fmt"
)

// ErrWorkerPanicked is matched by the error Cancel returns when the
// background worker did not terminate cleanly.
var ErrWorkerPanicked = errors.New("search: worker did not terminate cleanly")

// PanicError carries the value recovered from a panicking worker.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("search: worker panicked: %v", e.Value)
}

func (e *PanicError) Unwrap() error { return ErrWorkerPanicked }
