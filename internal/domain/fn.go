package domain

import "context"

// FnControl gives a work unit read access to its execution context and a place to store runtime data.
type FnControl interface {
	// Context is cancelled when the worker is stopped or its parent context is cancelled.
	// Long work units may watch it to return early; the worker itself only checks control flags between units.
	Context() context.Context

	// Iteration returns the 1-based number of the work unit being executed.
	Iteration() int64

	// SaveData stores arbitrary key-value pairs in the worker state.
	SaveData(data map[string]interface{})

	// GetData returns a copy of the data saved so far.
	GetData() map[string]interface{}
}

// Fn is one unit of work.
//
// Returning a non-nil error aborts the worker: the loop exits and the error is kept as the termination cause.
type Fn func(ctrl FnControl) error
