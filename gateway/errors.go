package gateway

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by read operations. Match them with errors.Is.
var (
	ErrRemoteRequestFailed   = errors.New("remote request failed")
	ErrDeserializationFailed = errors.New("deserialization failed")
	ErrTransport             = errors.New("transport error")
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Status     string
	Body       string // leading bytes of the response body, if any
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: %s", e.Method, e.URL, e.Status)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool { return target == ErrRemoteRequestFailed }

// DecodeError reports a 2xx body that is not valid JSON for the expected shape.
type DecodeError struct {
	URL string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.URL, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrDeserializationFailed }

// TransportError reports a failure below HTTP: DNS, refused connection,
// timeout, or a body that could not be read.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }
