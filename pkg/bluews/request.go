package bluews

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/google/uuid"
	"github.com/isometry/bluews/internal/helpers"
	"github.com/pkg/errors"
)

const (
	fieldAction = "action"
	fieldData   = "data"

	// rawLogLimit bounds the raw response length written to debug logs.
	rawLogLimit = 256
)

// Outcome is the state of a request after its last call.
type Outcome[T any] struct {
	// Action is the name of the remote operation that was called.
	Action string
	// RawResponse is the text received from the transport, nil if the transport failed or was never reached.
	RawResponse *string
	// Response is the decoded response, the zero value unless Success is true.
	Response T
	// Success is true when the response was decoded and no hook reclassified it.
	Success bool
	// NoNetwork is true when the transport itself failed.
	NoNetwork bool
}

// Result is delivered by Request.CallAsync.
type Result[T any] struct {
	Value T
	Err   error
}

// Request owns the lifecycle of a call to the web service.
//
// A Request may be called several times in sequence; every call starts by
// resetting the outcome of the previous one. It must not be used concurrently.
type Request[T any] struct {
	// Parameters are the positional values sent in the "data" field.
	Parameters []any

	webService *WebService
	hooks      ParseHooks[T]
	logger     *slog.Logger

	callID  string
	outcome Outcome[T]
}

// RequestOption configures a Request.
type RequestOption[T any] func(*Request[T])

// WithHooks sets the parse hooks of the request.
func WithHooks[T any](hooks ParseHooks[T]) RequestOption[T] {
	return func(r *Request[T]) {
		r.hooks = hooks
	}
}

// WithParameters sets the initial positional parameters.
func WithParameters[T any](values ...any) RequestOption[T] {
	return func(r *Request[T]) {
		r.Parameters = append(r.Parameters, values...)
	}
}

// NewRequest creates a request bound to ws.
func NewRequest[T any](ws *WebService, opts ...RequestOption[T]) *Request[T] {
	_inst := &Request[T]{
		webService: ws,
		Parameters: []any{},
	}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.hooks == nil {
		_inst.hooks = NoopHooks[T]{}
	}
	_inst.logger = ws.logger.With("component", "request")
	return _inst
}

// Add appends positional parameters and returns the request.
func (r *Request[T]) Add(values ...any) *Request[T] {
	r.Parameters = append(r.Parameters, values...)
	return r
}

// WebService returns the web service of the request.
func (r *Request[T]) WebService() *WebService {
	return r.webService
}

// Call calls action and blocks until the response is decoded. An empty action
// is replaced by the name of the calling function.
//
// Connectivity and decode failures are returned only if the web service is
// throwable; otherwise they are reflected by NoNetwork and Success and the zero
// value is returned with a nil error.
func (r *Request[T]) Call(ctx context.Context, action string) (T, error) {
	if action == "" {
		action = CallerAction(1)
	}
	outcome, err := r.Do(ctx, action)
	return outcome.Response, r.surface(err)
}

// CallAsync runs Call in a new goroutine. The returned channel receives exactly
// one Result and is then closed. ctx is only honoured while waiting for the
// transport. An empty action is replaced by the name of the calling function.
func (r *Request[T]) CallAsync(ctx context.Context, action string) <-chan Result[T] {
	if action == "" {
		action = CallerAction(1)
	}
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		value, err := r.Call(ctx, action)
		ch <- Result[T]{Value: value, Err: err}
	}()
	return ch
}

// Do calls action and returns the outcome together with the classified error,
// regardless of the throwable policy of the web service. An empty action is
// replaced by the name of the calling function.
func (r *Request[T]) Do(ctx context.Context, action string) (Outcome[T], error) {
	if action == "" {
		action = CallerAction(1)
	}
	data, err := r.beforeCalling(action)
	logger := r.logger.With(slog.String("action", action), slog.String("call_id", r.callID))
	if err != nil {
		logger.Error("failed to encode parameters", slog.Any("error", err))
		return r.outcome, err
	}

	address := r.webService.serverAddress
	method := r.webService.httpMethod
	logger.Debug("calling action...", slog.String("address", address), slog.String("method", method.String()), slog.Int("parameters", len(r.Parameters)))
	raw, err := r.webService.transport.Upload(ctx, address, data, method)
	if err != nil {
		r.outcome.NoNetwork = true
		logger.Warn("transport failed", slog.Any("error", err))
		return r.outcome, &NetworkError{Action: action, Address: address, Cause: err}
	}
	r.outcome.RawResponse = &raw
	logger.Debug("received raw response", slog.String("raw", helpers.Truncate(raw, rawLogLimit)))

	if err = r.afterCalling(); err != nil {
		logger.Warn("failed to decode response", slog.Any("error", err))
		return r.outcome, err
	}
	logger.Debug("call complete", slog.Bool("success", r.outcome.Success))
	return r.outcome, nil
}

// beforeCalling resets the outcome and builds the outbound payload.
func (r *Request[T]) beforeCalling(action string) (url.Values, error) {
	r.outcome = Outcome[T]{Action: action}
	r.callID = uuid.NewString()
	if resetter, ok := r.hooks.(Resetter); ok {
		resetter.Reset()
	}

	data := url.Values{}
	data.Set(fieldAction, action)
	if len(r.Parameters) == 0 {
		return data, nil
	}

	var value any = r.Parameters
	if len(r.Parameters) == 1 {
		value = r.Parameters[0]
	}
	encoded, err := r.webService.codec.Marshal(value)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding parameters of action %q", action)
	}
	data.Set(fieldData, string(encoded))
	return data, nil
}

// afterCalling decodes the raw response and runs the parse hooks.
func (r *Request[T]) afterCalling() error {
	var response T
	if err := r.webService.codec.Unmarshal([]byte(*r.outcome.RawResponse), &response); err != nil {
		switch r.hooks.OnParseFailure(&r.outcome, err) {
		case ParseReparsed:
			r.outcome.Success = true
		case ParseHandled:
			return nil
		default:
			var zero T
			r.outcome.Response = zero
			r.outcome.Success = false
			return &DecodeError{Action: r.outcome.Action, Cause: err}
		}
	} else {
		r.outcome.Response = response
		r.outcome.Success = true
	}

	r.hooks.OnParseSuccess(&r.outcome)
	return nil
}

// surface drops absorbed failures when the web service is not throwable.
func (r *Request[T]) surface(err error) error {
	if err == nil || r.webService.isThrowable {
		return err
	}
	if IsNetworkError(err) || IsDecodeError(err) {
		return nil
	}
	return err
}

// Outcome returns a copy of the outcome of the last call.
func (r *Request[T]) Outcome() Outcome[T] {
	return r.outcome
}

// Action returns the action of the last call.
func (r *Request[T]) Action() string {
	return r.outcome.Action
}

// RawResponse returns the raw text of the last response and whether one was received.
func (r *Request[T]) RawResponse() (string, bool) {
	return helpers.Deref(r.outcome.RawResponse), r.outcome.RawResponse != nil
}

// Response returns the decoded response of the last call.
func (r *Request[T]) Response() T {
	return r.outcome.Response
}

// Success reports whether the last call produced a valid response.
func (r *Request[T]) Success() bool {
	return r.outcome.Success
}

// NoNetwork reports whether the last call failed at the transport.
func (r *Request[T]) NoNetwork() bool {
	return r.outcome.NoNetwork
}

// CallID returns the identifier generated for the last call.
func (r *Request[T]) CallID() string {
	return r.callID
}
