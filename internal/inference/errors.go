package inference

import "fmt"

// TransportError wraps a failure of the generation capability itself: the
// provider was unreachable, timed out or answered with an error status.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation backend: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
