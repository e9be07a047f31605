package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/isometry/bluews/internal/config"
	awsctl "github.com/isometry/bluews/internal/controllers/aws"
	"github.com/isometry/bluews/internal/helpers"
	"github.com/isometry/bluews/pkg/bluews"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
)

var (
	callPostLogin bool
	callAsync     bool
)

// callReport is the document printed, and optionally archived, for every call.
type callReport struct {
	CallID           string  `json:"callId"`
	Action           string  `json:"action"`
	Address          string  `json:"address"`
	Method           string  `json:"method"`
	Success          bool    `json:"success"`
	NoNetwork        bool    `json:"noNetwork"`
	RawResponse      *string `json:"rawResponse,omitempty"`
	Response         any     `json:"response,omitempty"`
	UserDenied       bool    `json:"userDenied,omitempty"`
	UserDeniedReason string  `json:"userDeniedReason,omitempty"`
	Error            string  `json:"error,omitempty"`
}

func cmdCall() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "call ACTION [PARAM...]",
		Aliases: []string{"c"},
		Short:   "Call an action and print the outcome as JSON",
		Long: `Call an action and print the outcome as JSON.

Every PARAM is decoded as JSON, falling back to a plain string. A single PARAM
is sent as is, several are sent as a JSON array.`,
		Args: cobra.MinimumNArgs(1),
		RunE: runCall,
	}

	bindEnvMap(cmd, callEnvMapString)
	bindEnvMap(cmd, callEnvMapBool)
	bindEnvMap(cmd, callEnvMapDuration)

	return cmd
}

func runCall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	action := args[0]
	params := make([]any, 0, len(args)-1)
	for _, arg := range args[1:] {
		params = append(params, helpers.ParseValue(arg))
	}

	var ctl *awsctl.Controller
	if config.Client.AddressSSMKey != "" || config.Archive.Enabled {
		var err error
		ctl, err = awsctl.NewController(
			awsctl.WithContext(ctx),
			awsctl.WithLogger(logger))
		if err != nil {
			return err
		}
	}

	address := config.Client.Address
	if config.Client.AddressSSMKey != "" {
		var err error
		if address, err = ctl.GetParameter(config.Client.AddressSSMKey, true); err != nil {
			return errors.Wrap(err, "failed to resolve the web service address")
		}
	}

	ws, err := newWebService(ctx, address)
	if err != nil {
		return err
	}

	if config.Client.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Client.Timeout)
		defer cancel()
	}

	report := callReport{
		Action:  action,
		Address: ws.ServerAddress(),
		Method:  ws.HTTPMethod().String(),
	}
	var callErr error
	if callPostLogin {
		req := bluews.NewPostLoginRequest(ws, bluews.WithParameters[any](params...))
		callErr = invoke(ctx, req.Request, action)
		report.fill(req.Request)
		report.UserDenied = req.UserDenied()
		report.UserDeniedReason = req.UserDeniedReason()
	} else {
		req := bluews.NewRequest(ws, bluews.WithParameters[any](params...))
		callErr = invoke(ctx, req, action)
		report.fill(req)
	}
	if callErr != nil {
		report.Error = callErr.Error()
	}

	body, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode the call report")
	}
	if _, err = cmd.OutOrStdout().Write(append(body, '\n')); err != nil {
		return errors.Wrap(err, "failed to write the call report")
	}

	if config.Archive.Enabled {
		key, err := ctl.PutObject(config.Archive.BucketName, report.CallID, body)
		if err != nil {
			return errors.Wrap(err, "failed to archive the call report")
		}
		logger.Info("call report archived", slog.String("bucket", config.Archive.BucketName), slog.String("key", key))
	}

	return callErr
}

// newWebService builds the web service described by config.Client.
func newWebService(ctx context.Context, address string) (*bluews.WebService, error) {
	method, err := bluews.ParseHTTPMethod(config.Client.Method)
	if err != nil {
		return nil, err
	}

	client := &http.Client{}
	if config.Client.Token != "" {
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Client.Token}))
	}
	client.Timeout = config.Client.Timeout

	return bluews.NewWebService(address, method,
		bluews.WithThrowable(config.Client.Throwable),
		bluews.WithLogger(logger.With("component", "bluews")),
		bluews.WithTransport(bluews.NewHTTPTransport(
			bluews.WithHTTPClient(client),
			bluews.WithTransportLogger(logger.With("component", "transport")))))
}

func invoke(ctx context.Context, req *bluews.Request[any], action string) error {
	if !callAsync {
		_, err := req.Call(ctx, action)
		return err
	}
	result := <-req.CallAsync(ctx, action)
	return result.Err
}

func (r *callReport) fill(req *bluews.Request[any]) {
	outcome := req.Outcome()
	r.CallID = req.CallID()
	r.Success = outcome.Success
	r.NoNetwork = outcome.NoNetwork
	r.RawResponse = outcome.RawResponse
	r.Response = outcome.Response
}
