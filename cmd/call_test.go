package cmd_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/isometry/bluews/cmd"
	"github.com/isometry/bluews/internal/actionserver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	CallID           string  `json:"callId"`
	Action           string  `json:"action"`
	Method           string  `json:"method"`
	Success          bool    `json:"success"`
	NoNetwork        bool    `json:"noNetwork"`
	RawResponse      *string `json:"rawResponse"`
	Response         any     `json:"response"`
	UserDenied       bool    `json:"userDenied"`
	UserDeniedReason string  `json:"userDeniedReason"`
	Error            string  `json:"error"`
}

func newServer(t *testing.T, authorization *string) *httptest.Server {
	t.Helper()
	d := actionserver.NewDispatcher()
	actionserver.RegisterDefaults(d)
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if authorization != nil {
			*authorization = req.Header.Get("Authorization")
		}
		d.Handler().ServeHTTP(rw, req)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func closedServerURL(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL + "/"
	srv.Close()
	return addr
}

// runCall executes the call command. Every flag is given explicitly because the
// configuration is shared by all the commands of the process.
func runCall(t *testing.T, address, method string, extra []string, args ...string) (report, error) {
	t.Helper()
	flags := []string{
		"--address", address,
		"--address-ssm-key=",
		"--method", method,
		"--throwable=false",
		"--post-login=false",
		"--async=false",
		"--archive=false",
		"--token=",
		"--timeout=5s",
	}
	var out bytes.Buffer
	root := cmd.New()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(append(append([]string{"call"}, args...), flags...), extra...))
	err := root.Execute()

	var r report
	if out.Len() > 0 {
		require.NoError(t, json.Unmarshal(out.Bytes(), &r))
	}
	return r, err
}

func TestCall(t *testing.T) {
	srv := newServer(t, nil)
	address := srv.URL + "/"

	testCases := []struct {
		Name             string
		Method           string
		Extra            []string
		Args             []string
		ExpectSuccess    bool
		ExpectNoNetwork  bool
		ExpectDenied     bool
		ExpectResponse   any
		ExpectRawPresent bool
	}{
		{
			Name:             "echo over POST",
			Method:           "POST",
			Args:             []string{"Echo"},
			ExpectSuccess:    true,
			ExpectResponse:   map[string]any{"Message": "Hello world!"},
			ExpectRawPresent: true,
		},
		{
			Name:             "positional parameters over GET",
			Method:           "get",
			Args:             []string{"TestAction8", "27", "42", "67"},
			ExpectSuccess:    true,
			ExpectResponse:   map[string]any{"data": []any{27.0, 42.0, 67.0}},
			ExpectRawPresent: true,
		},
		{
			Name:             "single string parameter",
			Method:           "POST",
			Args:             []string{"TestAction8", "hello"},
			ExpectSuccess:    true,
			ExpectResponse:   map[string]any{"data": "hello"},
			ExpectRawPresent: true,
		},
		{
			Name:             "async call",
			Method:           "POST",
			Extra:            []string{"--async"},
			Args:             []string{"TestAction7"},
			ExpectSuccess:    true,
			ExpectResponse:   map[string]any{"ActionParameter": 42.0},
			ExpectRawPresent: true,
		},
		{
			Name:             "non JSON response",
			Method:           "POST",
			Args:             []string{"TestAction0"},
			ExpectRawPresent: true,
		},
		{
			Name:             "post login denial",
			Method:           "POST",
			Extra:            []string{"--post-login"},
			Args:             []string{"TestAction5"},
			ExpectDenied:     true,
			ExpectRawPresent: true,
		},
		{
			Name:             "post login success",
			Method:           "POST",
			Extra:            []string{"--post-login"},
			Args:             []string{"TestAction4"},
			ExpectSuccess:    true,
			ExpectResponse:   map[string]any{"Message": "Success"},
			ExpectRawPresent: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			r, err := runCall(t, address, tc.Method, tc.Extra, tc.Args...)
			require.NoError(t, err)

			assert.NotEmpty(t, r.CallID)
			assert.Equal(t, tc.Args[0], r.Action)
			assert.Equal(t, tc.ExpectSuccess, r.Success)
			assert.Equal(t, tc.ExpectNoNetwork, r.NoNetwork)
			assert.Equal(t, tc.ExpectDenied, r.UserDenied)
			assert.Equal(t, tc.ExpectRawPresent, r.RawResponse != nil)
			assert.Equal(t, tc.ExpectResponse, r.Response)
			assert.Empty(t, r.Error)
			if tc.ExpectDenied {
				assert.Equal(t, actionserver.DeniedReason, r.UserDeniedReason)
			}
		})
	}
}

func TestCallNoNetwork(t *testing.T) {
	address := closedServerURL(t)

	r, err := runCall(t, address, "POST", nil, "Echo")
	require.NoError(t, err)
	assert.True(t, r.NoNetwork)
	assert.False(t, r.Success)
	assert.Nil(t, r.RawResponse)

	r, err = runCall(t, address, "POST", []string{"--throwable"}, "Echo")
	require.Error(t, err)
	assert.True(t, r.NoNetwork)
	assert.NotEmpty(t, r.Error)
}

func TestCallThrowableDecodeFailure(t *testing.T) {
	srv := newServer(t, nil)

	r, err := runCall(t, srv.URL+"/", "POST", []string{"--throwable"}, "TestAction2")
	require.Error(t, err)
	assert.False(t, r.Success)
	assert.False(t, r.NoNetwork)
	require.NotNil(t, r.RawResponse)
	assert.Equal(t, "This response is not JSON.", *r.RawResponse)
}

func TestCallToken(t *testing.T) {
	var authorization string
	srv := newServer(t, &authorization)

	_, err := runCall(t, srv.URL+"/", "POST", []string{"--token", "abc"}, "Echo")
	require.NoError(t, err)
	assert.Equal(t, "Bearer abc", authorization)
}

func TestCallRejects(t *testing.T) {
	testCases := []struct {
		Name    string
		Address string
		Method  string
		Args    []string
	}{
		{Name: "unsupported method", Address: "http://localhost/", Method: "PUT", Args: []string{"Echo"}},
		{Name: "empty address", Address: "", Method: "POST", Args: []string{"Echo"}},
		{Name: "missing action", Address: "http://localhost/", Method: "POST"},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			r, err := runCall(t, tc.Address, tc.Method, nil, tc.Args...)
			require.Error(t, err)
			assert.Empty(t, r.CallID)
		})
	}
}

func TestCallWithoutTimeout(t *testing.T) {
	srv := newServer(t, nil)

	r, err := runCall(t, srv.URL+"/", "POST", []string{"--timeout=0"}, "Echo")
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.False(t, r.NoNetwork)
	assert.Equal(t, map[string]any{"Message": "Hello world!"}, r.Response)
}

func TestTimeoutFlags(t *testing.T) {
	root := cmd.New()

	call, _, err := root.Find([]string{"call"})
	require.NoError(t, err)
	assert.NotNil(t, call.PersistentFlags().Lookup("timeout"))

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.NotNil(t, serve.PersistentFlags().Lookup("server-timeout"))
	assert.Nil(t, serve.PersistentFlags().Lookup("timeout"))
}
