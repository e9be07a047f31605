package bluews

import "strings"

// UserDeniedPrefix marks an application-level denial in the "Error" field of a response.
const UserDeniedPrefix = "User denied: "

type denialEnvelope struct {
	Error *string `json:"Error"`
}

// DenialHooks reclassify a response carrying a user denial as a failed call.
//
// The denial is looked for both after a successful decode and after a failed
// one, so a denial sent in an envelope that does not match T is still detected.
type DenialHooks[T any] struct {
	codec  Codec
	reason *string
}

// NewDenialHooks returns hooks reading the denial envelope with codec.
func NewDenialHooks[T any](codec Codec) *DenialHooks[T] {
	if codec == nil {
		codec = JSONCodec{}
	}
	return &DenialHooks[T]{codec: codec}
}

// OnParseSuccess implements ParseHooks.
func (h *DenialHooks[T]) OnParseSuccess(outcome *Outcome[T]) {
	envelope, ok := h.readEnvelope(outcome)
	if !ok {
		return
	}
	h.checkDenied(outcome, envelope)
}

// OnParseFailure implements ParseHooks. It returns ParseThrow when the raw
// response is not even a readable envelope.
func (h *DenialHooks[T]) OnParseFailure(outcome *Outcome[T], _ error) ParseAction {
	envelope, ok := h.readEnvelope(outcome)
	if !ok {
		return ParseThrow
	}
	h.checkDenied(outcome, envelope)
	return ParseHandled
}

// Denied reports whether the last response was a denial.
func (h *DenialHooks[T]) Denied() bool {
	return h.reason != nil
}

// Reason returns the denial reason of the last response, or "".
func (h *DenialHooks[T]) Reason() string {
	if h.reason == nil {
		return ""
	}
	return *h.reason
}

// Reset implements Resetter.
func (h *DenialHooks[T]) Reset() {
	h.reason = nil
}

func (h *DenialHooks[T]) readEnvelope(outcome *Outcome[T]) (denialEnvelope, bool) {
	var envelope denialEnvelope
	if outcome.RawResponse == nil {
		return envelope, false
	}
	if err := h.codec.Unmarshal([]byte(*outcome.RawResponse), &envelope); err != nil {
		return envelope, false
	}
	return envelope, true
}

func (h *DenialHooks[T]) checkDenied(outcome *Outcome[T], envelope denialEnvelope) {
	if envelope.Error == nil || !strings.HasPrefix(*envelope.Error, UserDeniedPrefix) {
		return
	}
	reason := strings.TrimPrefix(*envelope.Error, UserDeniedPrefix)
	h.reason = &reason

	var zero T
	outcome.Success = false
	outcome.Response = zero
}

// PostLoginRequest is a Request for actions that require a logged in user.
type PostLoginRequest[T any] struct {
	*Request[T]
	denial *DenialHooks[T]
}

// NewPostLoginRequest creates a PostLoginRequest bound to ws. Any hooks given
// in opts are replaced by the denial hooks.
func NewPostLoginRequest[T any](ws *WebService, opts ...RequestOption[T]) *PostLoginRequest[T] {
	denial := NewDenialHooks[T](ws.codec)
	opts = append(opts, WithHooks[T](denial))
	return &PostLoginRequest[T]{
		Request: NewRequest[T](ws, opts...),
		denial:  denial,
	}
}

// Add appends positional parameters and returns the request.
func (r *PostLoginRequest[T]) Add(values ...any) *PostLoginRequest[T] {
	r.Request.Add(values...)
	return r
}

// UserDenied reports whether the user was denied by the last call.
func (r *PostLoginRequest[T]) UserDenied() bool {
	return r.denial.Denied()
}

// UserDeniedReason returns why the user was denied, or "".
func (r *PostLoginRequest[T]) UserDeniedReason() string {
	return r.denial.Reason()
}
