package weather

import "fmt"

// ErrorKind classifies a fetch failure.
type ErrorKind string

const (
	KindTransport   ErrorKind = "transport"
	KindStatus      ErrorKind = "status"
	KindDecode      ErrorKind = "decode"
	KindEmpty       ErrorKind = "empty"
	KindCircuitOpen ErrorKind = "circuit-open"
)

// FetchError is returned by every Source failure.
type FetchError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
