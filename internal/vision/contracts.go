package vision

import (
	"context"
	"fmt"
)

// Invoker sends one (prompt, encoded image) pair to a vision model and
// returns the raw response text. One synchronous call per page; no retry,
// no streaming, no batching.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, image []byte) (string, error)
}

// InvocationError reports a transport or availability failure of the model
// call. Recovered per-page: the unit is counted as processed and its result
// carries the error text.
type InvocationError struct {
	Cause error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("model invocation failed: %v", e.Cause)
}

func (e *InvocationError) Unwrap() error {
	return e.Cause
}
