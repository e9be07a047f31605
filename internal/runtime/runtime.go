// Package runtime exposes the action dispatcher over plain HTTP and AWS Lambda.
package runtime

import (
	"context"
	"encoding/base64"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/isometry/bluews/internal/actionserver"
	"github.com/isometry/bluews/internal/helpers"
	"github.com/pkg/errors"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithLogger sets the logger of the runtime.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		r.logger = logger
	}
}

// Runtime serves a Dispatcher.
type Runtime struct {
	dispatcher *actionserver.Dispatcher
	logger     *slog.Logger
}

// NewRuntime creates a new runtime instance
func NewRuntime(dispatcher *actionserver.Dispatcher, opts ...Option) *Runtime {
	_inst := &Runtime{dispatcher: dispatcher}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	return _inst
}

// ServeHTTP is the HTTP handler for the runtime
func (r *Runtime) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.logger.Debug("received HTTP request...", slog.Any("requestor", req.RemoteAddr), slog.Any("method", req.Method), slog.Any("path", req.URL.Path))
	r.dispatcher.Handler().ServeHTTP(resp, req)
}

// HandleEvent is the Lambda handler for API Gateway v2 and Lambda function URL events.
func (r *Runtime) HandleEvent(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	method := strings.ToUpper(event.RequestContext.HTTP.Method)
	r.logger.Info("received API Gateway request", slog.String("method", method), slog.String("path", event.RawPath))

	values, err := eventValues(method, event)
	if err != nil {
		r.logger.Warn("rejecting event...", slog.Any("error", err))
		return events.APIGatewayV2HTTPResponse{
			StatusCode: http.StatusBadRequest,
			Body:       `{"Error":"Invalid request"}`,
			Headers:    map[string]string{"Content-Type": "application/json"},
		}, nil
	}

	reply := r.dispatcher.Dispatch(ctx, values.Get("action"), values.Get("data"))
	return events.APIGatewayV2HTTPResponse{
		StatusCode: reply.StatusCode,
		Body:       reply.Body,
		Headers:    map[string]string{"Content-Type": reply.ContentType},
	}, nil
}

func eventValues(method string, event events.APIGatewayV2HTTPRequest) (url.Values, error) {
	switch method {
	case http.MethodGet:
		values := url.Values{}
		if event.RawQueryString != "" {
			parsed, err := url.ParseQuery(event.RawQueryString)
			if err != nil {
				return nil, errors.Wrap(err, "parse query string")
			}
			return parsed, nil
		}
		for k, v := range event.QueryStringParameters {
			values.Set(k, v)
		}
		return values, nil
	case http.MethodPost:
		body := event.Body
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(body)
			if err != nil {
				return nil, errors.Wrap(err, "decode body")
			}
			body = string(decoded)
		}
		values, err := url.ParseQuery(body)
		if err != nil {
			return nil, errors.Wrap(err, "parse form body")
		}
		return values, nil
	default:
		return nil, errors.Errorf("method not allowed: %s", method)
	}
}
