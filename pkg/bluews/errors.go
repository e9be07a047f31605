package bluews

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnsupportedMethod is returned when a WebService is configured with a method other than GET or POST.
	ErrUnsupportedMethod = errors.New("unsupported http method")
	// ErrEmptyAddress is returned when a WebService is configured without a server address.
	ErrEmptyAddress = errors.New("empty server address")
	// ErrNullResponse is returned by the JSON codec when the response body is empty or a literal null.
	ErrNullResponse = errors.New("null or empty response")
	// ErrResponseTooLarge is returned by HTTPTransport when a response body exceeds its size limit.
	ErrResponseTooLarge = errors.New("response body too large")
)

// ConfigError is a fatal configuration error raised while constructing a WebService.
type ConfigError struct {
	Cause error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("bluews configuration error: %v", e.Cause)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// NetworkError means the transport could not reach or complete against the server.
type NetworkError struct {
	Action  string
	Address string
	Cause   error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("calling action %q on %s: %v", e.Action, e.Address, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// StatusError is returned by HTTPTransport when the server answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected http status: %s", e.Status)
}

// DecodeError means the raw response could not be decoded into the response type.
type DecodeError struct {
	Action string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding response of action %q: %v", e.Action, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// IsNetworkError reports whether err is, or wraps, a *NetworkError.
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsDecodeError reports whether err is, or wraps, a *DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}
