// Package actionserver provides a reference action-dispatch server.
//
// Requests carry an "action" field and an optional JSON "data" field, either in
// the query string (GET) or as form fields (POST).
package actionserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/isometry/bluews/internal/helpers"
)

// Action handles one named operation. data is nil when the request carried no data field.
type Action func(ctx context.Context, data json.RawMessage) (any, error)

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain; charset=utf-8"
)

// Raw is an action result written verbatim instead of being JSON encoded.
type Raw string

// Reply is the transport-independent result of a dispatch.
type Reply struct {
	StatusCode  int
	Body        string
	ContentType string
}

type errorBody struct {
	Error string `json:"Error"`
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger of the dispatcher.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithPath sets the path the HTTP handler serves actions on. Defaults to "/".
func WithPath(path string) Option {
	return func(d *Dispatcher) {
		d.path = path
	}
}

// Dispatcher routes actions to their handlers.
type Dispatcher struct {
	mu      sync.RWMutex
	actions map[string]Action

	logger *slog.Logger
	path   string
	router chi.Router
}

// NewDispatcher creates a Dispatcher without any registered action.
func NewDispatcher(opts ...Option) *Dispatcher {
	_inst := &Dispatcher{actions: map[string]Action{}}
	for _, opt := range opts {
		opt(_inst)
	}
	if _inst.logger == nil {
		_inst.logger = helpers.NewNoopLogger()
	}
	if _inst.path == "" {
		_inst.path = "/"
	}

	r := chi.NewRouter()
	r.Get(_inst.path, _inst.serveHTTP)
	r.Post(_inst.path, _inst.serveHTTP)
	r.MethodNotAllowed(func(rw http.ResponseWriter, req *http.Request) {
		helpers.RespondJSON(rw, http.StatusMethodNotAllowed, errorBody{Error: fmt.Sprintf("Method not allowed: %s", req.Method)})
	})
	_inst.router = r
	return _inst
}

// Register adds or replaces the action called name.
func (d *Dispatcher) Register(name string, action Action) {
	if name == "" || action == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions[name] = action
}

// Actions returns the sorted names of the registered actions.
func (d *Dispatcher) Actions() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]string, 0, len(d.actions))
	for name := range d.actions {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Handler returns the HTTP handler of the dispatcher.
func (d *Dispatcher) Handler() http.Handler {
	return d.router
}

// Dispatch runs the named action with the raw data field.
func (d *Dispatcher) Dispatch(ctx context.Context, name, data string) Reply {
	logger := d.logger.With(slog.String("action", name))
	if name == "" {
		logger.Debug("rejecting request...", "reason", "missing action")
		return jsonReply(http.StatusBadRequest, errorBody{Error: "Missing action"})
	}

	d.mu.RLock()
	action, found := d.actions[name]
	d.mu.RUnlock()
	if !found {
		logger.Debug("rejecting request...", "reason", "unknown action")
		return jsonReply(http.StatusNotFound, errorBody{Error: "Unknown action: " + name})
	}

	var raw json.RawMessage
	if data != "" {
		if !json.Valid([]byte(data)) {
			logger.Debug("rejecting request...", "reason", "invalid data")
			return jsonReply(http.StatusBadRequest, errorBody{Error: "Invalid data"})
		}
		raw = json.RawMessage(data)
	}

	result, err := action(ctx, raw)
	if err != nil {
		logger.Info("action failed", slog.Any("error", err))
		return jsonReply(http.StatusOK, errorBody{Error: err.Error()})
	}
	if text, ok := result.(Raw); ok {
		return Reply{StatusCode: http.StatusOK, Body: string(text), ContentType: contentTypeText}
	}
	logger.Debug("action complete")
	return jsonReply(http.StatusOK, result)
}

func (d *Dispatcher) serveHTTP(rw http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		helpers.RespondJSON(rw, http.StatusBadRequest, errorBody{Error: "Invalid form"})
		return
	}
	d.logger.Debug("received request...", slog.Any("requestor", req.RemoteAddr), slog.String("method", req.Method))
	reply := d.Dispatch(req.Context(), req.Form.Get("action"), req.Form.Get("data"))
	if reply.ContentType == contentTypeJSON {
		helpers.RespondJSON(rw, reply.StatusCode, json.RawMessage(reply.Body))
		return
	}
	helpers.RespondRaw(rw, reply.StatusCode, reply.Body)
}

func jsonReply(statusCode int, body any) Reply {
	encoded, err := json.Marshal(body)
	if err != nil {
		encoded, _ = json.Marshal(errorBody{Error: err.Error()})
		statusCode = http.StatusInternalServerError
	}
	return Reply{StatusCode: statusCode, Body: string(encoded), ContentType: contentTypeJSON}
}
