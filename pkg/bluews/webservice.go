package bluews

import (
	"log/slog"
	"strings"

	"github.com/isometry/bluews/internal/helpers"
	"github.com/pkg/errors"
)

// WebService is the immutable configuration of a remote action-dispatch endpoint.
//
// A WebService is safe to share between any number of concurrently running requests.
type WebService struct {
	serverAddress string
	httpMethod    HTTPMethod
	isThrowable   bool

	transport Transport
	codec     Codec
	logger    *slog.Logger
}

// WebServiceOption configures a WebService at construction time.
type WebServiceOption func(*WebService)

// WithThrowable makes transport and decode failures surface as errors from Request.Call.
func WithThrowable(throwable bool) WebServiceOption {
	return func(ws *WebService) {
		ws.isThrowable = throwable
	}
}

// WithTransport replaces the default HTTPTransport.
func WithTransport(transport Transport) WebServiceOption {
	return func(ws *WebService) {
		ws.transport = transport
	}
}

// WithCodec replaces the default JSONCodec.
func WithCodec(codec Codec) WebServiceOption {
	return func(ws *WebService) {
		ws.codec = codec
	}
}

// WithLogger sets the logger inherited by every request of the web service.
func WithLogger(logger *slog.Logger) WebServiceOption {
	return func(ws *WebService) {
		ws.logger = logger
	}
}

// NewWebService validates the configuration and returns a WebService.
// Methods other than MethodGet and MethodPost are rejected with a *ConfigError.
func NewWebService(serverAddress string, method HTTPMethod, opts ...WebServiceOption) (*WebService, error) {
	if !method.Valid() {
		return nil, &ConfigError{Cause: errors.Wrapf(ErrUnsupportedMethod, "method %s", method)}
	}
	serverAddress = strings.TrimSpace(serverAddress)
	if serverAddress == "" {
		return nil, &ConfigError{Cause: ErrEmptyAddress}
	}

	_inst := &WebService{
		serverAddress: serverAddress,
		httpMethod:    method,
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.codec == nil {
		_inst.codec = JSONCodec{}
	}
	if _inst.transport == nil {
		_inst.transport = NewHTTPTransport(WithTransportLogger(_inst.logger.With("component", "transport")))
	}
	return _inst, nil
}

// ServerAddress returns the endpoint URL.
func (ws *WebService) ServerAddress() string {
	return ws.serverAddress
}

// HTTPMethod returns the configured method.
func (ws *WebService) HTTPMethod() HTTPMethod {
	return ws.httpMethod
}

// IsThrowable reports whether failures are returned to the caller of Request.Call.
func (ws *WebService) IsThrowable() bool {
	return ws.isThrowable
}
