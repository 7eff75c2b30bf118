package middlewares

import "fmt"

// PanicError wraps a recovered panic value so the error handler can
// distinguish panics from ordinary handler errors.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
