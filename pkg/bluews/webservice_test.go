package bluews_test

import (
	"errors"
	"testing"

	"github.com/isometry/bluews/pkg/bluews"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWebService(t *testing.T) {
	testCases := []struct {
		Name        string
		Address     string
		Method      bluews.HTTPMethod
		ExpectedErr error
	}{
		{
			Name:    "get",
			Address: "http://localhost/api/",
			Method:  bluews.MethodGet,
		},
		{
			Name:    "post",
			Address: "http://localhost/api/",
			Method:  bluews.MethodPost,
		},
		{
			Name:        "unknown_method",
			Address:     "http://localhost/api/",
			Method:      bluews.MethodUnknown,
			ExpectedErr: bluews.ErrUnsupportedMethod,
		},
		{
			Name:        "out_of_range_method",
			Address:     "http://localhost/api/",
			Method:      bluews.HTTPMethod(42),
			ExpectedErr: bluews.ErrUnsupportedMethod,
		},
		{
			Name:        "empty_address",
			Address:     "  ",
			Method:      bluews.MethodGet,
			ExpectedErr: bluews.ErrEmptyAddress,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			ws, err := bluews.NewWebService(tc.Address, tc.Method, bluews.WithThrowable(true))
			if tc.ExpectedErr != nil {
				require.Error(t, err)
				assert.Nil(t, ws)
				assert.True(t, errors.Is(err, tc.ExpectedErr))
				var cfgErr *bluews.ConfigError
				assert.True(t, errors.As(err, &cfgErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.Address, ws.ServerAddress())
			assert.Equal(t, tc.Method, ws.HTTPMethod())
			assert.True(t, ws.IsThrowable())
		})
	}
}

func TestParseHTTPMethod(t *testing.T) {
	testCases := []struct {
		Name        string
		Input       string
		Expected    bluews.HTTPMethod
		ExpectError bool
	}{
		{Name: "get", Input: "GET", Expected: bluews.MethodGet},
		{Name: "lower_post", Input: "post", Expected: bluews.MethodPost},
		{Name: "padded", Input: " Get ", Expected: bluews.MethodGet},
		{Name: "put", Input: "PUT", Expected: bluews.MethodUnknown, ExpectError: true},
		{Name: "empty", Input: "", Expected: bluews.MethodUnknown, ExpectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			method, err := bluews.ParseHTTPMethod(tc.Input)
			assert.Equal(t, tc.Expected, method)
			if tc.ExpectError {
				assert.ErrorIs(t, err, bluews.ErrUnsupportedMethod)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHTTPMethod_String(t *testing.T) {
	assert.Equal(t, "GET", bluews.MethodGet.String())
	assert.Equal(t, "POST", bluews.MethodPost.String())
	assert.Equal(t, "UNKNOWN", bluews.MethodUnknown.String())
}
