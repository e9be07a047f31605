package bluews_test

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/isometry/bluews/pkg/bluews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHooks returns a fixed ParseAction and records its invocations.
type recordingHooks struct {
	action         bluews.ParseAction
	reparsed       string
	successCalls   int
	failureCalls   int
	lastFailureErr error
}

func (h *recordingHooks) OnParseSuccess(*bluews.Outcome[string]) {
	h.successCalls++
}

func (h *recordingHooks) OnParseFailure(outcome *bluews.Outcome[string], err error) bluews.ParseAction {
	h.failureCalls++
	h.lastFailureErr = err
	if h.action == bluews.ParseReparsed {
		outcome.Response = h.reparsed
	}
	return h.action
}

func rawTransport(raw string) bluews.Transport {
	return bluews.TransportFunc(func(context.Context, string, url.Values, bluews.HTTPMethod) (string, error) {
		return raw, nil
	})
}

func TestParseHooks(t *testing.T) {
	testCases := []struct {
		Name                  string
		Raw                   string
		Action                bluews.ParseAction
		ExpectSuccess         bool
		ExpectResponse        string
		ExpectSuccessCalls    int
		ExpectFailureCalls    int
		ExpectDecodeErrorDo   bool
		ExpectDecodeErrorCall bool
	}{
		{
			Name:               "decoded",
			Raw:                `"hello"`,
			ExpectSuccess:      true,
			ExpectResponse:     "hello",
			ExpectSuccessCalls: 1,
		},
		{
			Name:                  "throw",
			Raw:                   "hello",
			Action:                bluews.ParseThrow,
			ExpectFailureCalls:    1,
			ExpectDecodeErrorDo:   true,
			ExpectDecodeErrorCall: true,
		},
		{
			Name:               "handled",
			Raw:                "hello",
			Action:             bluews.ParseHandled,
			ExpectFailureCalls: 1,
		},
		{
			Name:               "reparsed",
			Raw:                "hello",
			Action:             bluews.ParseReparsed,
			ExpectSuccess:      true,
			ExpectResponse:     "HELLO",
			ExpectSuccessCalls: 1,
			ExpectFailureCalls: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			hooks := &recordingHooks{action: tc.Action, reparsed: strings.ToUpper(tc.Raw)}
			ws := newWebService(t, "stub://server", bluews.MethodGet,
				bluews.WithTransport(rawTransport(tc.Raw)),
				bluews.WithThrowable(true))
			req := bluews.NewRequest[string](ws, bluews.WithHooks[string](hooks))

			outcome, doErr := req.Do(context.Background(), "Hooked")
			response, callErr := req.Call(context.Background(), "Hooked")

			assert.Equal(t, tc.ExpectDecodeErrorDo, bluews.IsDecodeError(doErr))
			assert.Equal(t, tc.ExpectDecodeErrorCall, bluews.IsDecodeError(callErr))
			if !tc.ExpectDecodeErrorCall {
				require.NoError(t, callErr)
			}
			assert.Equal(t, tc.ExpectSuccess, outcome.Success)
			assert.Equal(t, tc.ExpectResponse, outcome.Response)
			assert.Equal(t, tc.ExpectResponse, response)
			assert.Equal(t, 2*tc.ExpectSuccessCalls, hooks.successCalls)
			assert.Equal(t, 2*tc.ExpectFailureCalls, hooks.failureCalls)
			if tc.ExpectFailureCalls > 0 {
				assert.Error(t, hooks.lastFailureErr)
			}
		})
	}
}

func TestParseAction_String(t *testing.T) {
	assert.Equal(t, "throw", bluews.ParseThrow.String())
	assert.Equal(t, "handled", bluews.ParseHandled.String())
	assert.Equal(t, "reparsed", bluews.ParseReparsed.String())
	assert.Equal(t, "unknown", bluews.ParseAction(9).String())
}

// countingHooks keep a per-call counter cleared by Reset.
type countingHooks struct {
	bluews.NoopHooks[string]
	resets    int
	successes int
}

func (h *countingHooks) OnParseSuccess(*bluews.Outcome[string]) {
	h.successes++
}

func (h *countingHooks) Reset() {
	h.resets++
	h.successes = 0
}

func TestParseHooks_Reset(t *testing.T) {
	hooks := &countingHooks{}
	var _ bluews.Resetter = hooks
	ws := newWebService(t, "stub://server", bluews.MethodPost, bluews.WithTransport(rawTransport(`"hello"`)))
	req := bluews.NewRequest[string](ws, bluews.WithHooks[string](hooks))

	for i := 0; i < 3; i++ {
		_, err := req.Call(context.Background(), "Hooked")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, hooks.resets)
	assert.Equal(t, 1, hooks.successes)
}
