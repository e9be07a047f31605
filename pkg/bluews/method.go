package bluews

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// HTTPMethod is the HTTP method used to send data to the server.
type HTTPMethod int

const (
	// MethodUnknown is the zero value and is never accepted by NewWebService.
	MethodUnknown HTTPMethod = iota
	// MethodGet sends the payload as query parameters.
	MethodGet
	// MethodPost sends the payload as form-encoded body fields.
	MethodPost
)

// String returns the canonical HTTP verb.
func (m HTTPMethod) String() string {
	switch m {
	case MethodGet:
		return http.MethodGet
	case MethodPost:
		return http.MethodPost
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether m is one of the supported methods.
func (m HTTPMethod) Valid() bool {
	return m == MethodGet || m == MethodPost
}

// ParseHTTPMethod parses "GET" or "POST" (case-insensitive).
func ParseHTTPMethod(s string) (HTTPMethod, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case http.MethodGet:
		return MethodGet, nil
	case http.MethodPost:
		return MethodPost, nil
	default:
		return MethodUnknown, &ConfigError{Cause: errors.Wrapf(ErrUnsupportedMethod, "method %q", s)}
	}
}
