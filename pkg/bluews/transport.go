package bluews

//
// transport.go - upload a name/value collection to the server.
//

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/isometry/bluews/internal/helpers"
	"github.com/pkg/errors"
)

const (
	// DefaultTimeout is the timeout used by HTTPTransport when no client is supplied.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxResponseBytes bounds the response bodies read by HTTPTransport.
	DefaultMaxResponseBytes int64 = 10 << 20
)

// Transport uploads the payload to the server and returns the raw response text.
//
// Any returned error is treated as a connectivity-class failure.
type Transport interface {
	Upload(ctx context.Context, address string, data url.Values, method HTTPMethod) (string, error)
}

// TransportFunc adapts a function to the Transport interface.
type TransportFunc func(ctx context.Context, address string, data url.Values, method HTTPMethod) (string, error)

// Upload implements Transport.
func (f TransportFunc) Upload(ctx context.Context, address string, data url.Values, method HTTPMethod) (string, error) {
	return f(ctx, address, data, method)
}

// HTTPTransport is the net/http backed Transport.
type HTTPTransport struct {
	client           *http.Client
	logger           *slog.Logger
	maxResponseBytes int64
}

// HTTPTransportOption configures an HTTPTransport.
type HTTPTransportOption func(*HTTPTransport)

// WithHTTPClient sets the *http.Client used for every upload.
func WithHTTPClient(client *http.Client) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.client = client
	}
}

// WithTransportLogger sets the logger of the transport.
func WithTransportLogger(logger *slog.Logger) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.logger = logger
	}
}

// WithMaxResponseBytes bounds the size of the response bodies. A non-positive
// limit selects DefaultMaxResponseBytes.
func WithMaxResponseBytes(n int64) HTTPTransportOption {
	return func(t *HTTPTransport) {
		t.maxResponseBytes = n
	}
}

// NewHTTPTransport creates an HTTPTransport. Without WithHTTPClient a client
// with DefaultTimeout is used.
func NewHTTPTransport(opts ...HTTPTransportOption) *HTTPTransport {
	_inst := &HTTPTransport{}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.client == nil {
		_inst.client = &http.Client{Timeout: DefaultTimeout}
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.maxResponseBytes <= 0 {
		_inst.maxResponseBytes = DefaultMaxResponseBytes
	}
	return _inst
}

// Upload implements Transport. A response body larger than the configured
// limit fails with ErrResponseTooLarge.
func (t *HTTPTransport) Upload(ctx context.Context, address string, data url.Values, method HTTPMethod) (string, error) {
	req, err := newUploadRequest(ctx, address, data, method)
	if err != nil {
		return "", err
	}

	t.logger.Debug("sending http request", slog.String("method", req.Method), slog.String("url", req.URL.Redacted()))
	resp, err := t.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "http do")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.maxResponseBytes+1))
	if err != nil {
		return "", errors.Wrap(err, "read body")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if int64(len(body)) > t.maxResponseBytes {
		return "", errors.Wrapf(ErrResponseTooLarge, "limit %d bytes", t.maxResponseBytes)
	}
	return string(body), nil
}

func newUploadRequest(ctx context.Context, address string, data url.Values, method HTTPMethod) (*http.Request, error) {
	switch method {
	case MethodGet:
		u, err := url.Parse(address)
		if err != nil {
			return nil, errors.Wrapf(err, "parse address %q", address)
		}
		if len(data) > 0 {
			query := u.Query()
			for name, values := range data {
				for _, v := range values {
					query.Add(name, v)
				}
			}
			u.RawQuery = query.Encode()
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, errors.Wrap(err, "create request")
		}
		return req, nil
	case MethodPost:
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, address, strings.NewReader(data.Encode()))
		if err != nil {
			return nil, errors.Wrap(err, "create request")
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedMethod, "method %s", method)
	}
}
