package bluews

// ParseAction tells the request what to do after a failed decode.
type ParseAction int

const (
	// ParseThrow leaves the request failed and surfaces the decode error.
	ParseThrow ParseAction = iota
	// ParseHandled means the hook consumed the error; OnParseSuccess is not invoked.
	ParseHandled
	// ParseReparsed means the hook decoded the raw response itself and set
	// Outcome.Response; the request is marked successful and OnParseSuccess runs.
	ParseReparsed
)

func (a ParseAction) String() string {
	switch a {
	case ParseThrow:
		return "throw"
	case ParseHandled:
		return "handled"
	case ParseReparsed:
		return "reparsed"
	default:
		return "unknown"
	}
}

// ParseHooks intercept the outcome of the decode step.
//
// Hooks may change Outcome.Success and Outcome.Response. A hook that clears
// Success must also reset Response to the zero value. Hooks keeping per-call
// state implement Resetter and are reset before every call.
type ParseHooks[T any] interface {
	OnParseSuccess(outcome *Outcome[T])
	OnParseFailure(outcome *Outcome[T], err error) ParseAction
}

// Resetter is implemented by parse hooks that keep per-call state.
type Resetter interface {
	Reset()
}

// NoopHooks is the default ParseHooks implementation.
type NoopHooks[T any] struct{}

// OnParseSuccess does nothing.
func (NoopHooks[T]) OnParseSuccess(*Outcome[T]) {}

// OnParseFailure always returns ParseThrow.
func (NoopHooks[T]) OnParseFailure(*Outcome[T], error) ParseAction {
	return ParseThrow
}
