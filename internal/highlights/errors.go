package highlights

import (
	"errors"
	"fmt"
)

// ErrEmptyQuestion is returned when the question is blank after trimming.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// RequestError is a non-2xx response from the backend.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("API error: %d %s", e.StatusCode, e.Body)
}

// NetworkError is a transport-level failure (DNS, refused connection, reset).
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError means a 2xx response carried a body that is not an answer.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode answer: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsRequestFailed reports whether err is (or wraps) a non-2xx response.
func IsRequestFailed(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// IsNetworkFailure reports whether err is (or wraps) a transport failure.
func IsNetworkFailure(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}
