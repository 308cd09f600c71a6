package runtime

import "fmt"

// RuntimeError is a fatal evaluation failure - a divide by zero, a call to
// an undefined method, a lookup of an unbound name. It is always raised by
// panic and recovered at the top of a program run.
type RuntimeError struct {
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %s", e.Message)
}

// Raise is a convenience wrapper for panicking with a formatted RuntimeError.
func Raise(format string, args ...any) {
	panic(&RuntimeError{Message: fmt.Sprintf(format, args...)})
}
