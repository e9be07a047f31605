package cmd

import (
	"context"
	"net"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/bluews/internal/actionserver"
	"github.com/isometry/bluews/internal/config"
	"github.com/isometry/bluews/internal/runtime"
	"github.com/spf13/cobra"
)

func cmdServe() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s", "server", "service"},
		Short:   "Serve the reference actions over HTTP",
		PreRun: func(cmd *cobra.Command, _ []string) {
			logger = logger.With("mode", "service")
			logger.Info("Spawning...")
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt := newRuntime()

			s := &http.Server{
				Handler:      rt,
				Addr:         net.JoinHostPort(config.Server.Addr, config.Server.Port),
				WriteTimeout: config.Server.Timeout,
				ReadTimeout:  config.Server.Timeout,
				IdleTimeout:  config.Server.Timeout,
			}

			logger.Info("Serving...", "address", s.Addr, "path", config.Server.Path, "timeout", config.Server.Timeout.String())
			return s.ListenAndServe()
		},
	}

	bindEnvMap(cmd, serveEnvMapString)
	bindEnvMap(cmd, serveEnvMapDuration)

	cmd.AddCommand(cmdServeLambda())

	return cmd
}

func cmdServeLambda() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Serve the reference actions as an API Gateway Lambda",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger = logger.With("mode", "lambda")
			logger.Info("lambda starting...")
			lambda.StartWithOptions(newRuntime().HandleEvent, lambda.WithContext(ctx))
			return nil
		},
	}
}

// newRuntime creates the runtime serving the default actions.
func newRuntime() *runtime.Runtime {
	logger.Debug("creating dispatcher...")
	dispatcher := actionserver.NewDispatcher(
		actionserver.WithPath(config.Server.Path),
		actionserver.WithLogger(logger.With("component", "dispatcher")))
	actionserver.RegisterDefaults(dispatcher)

	logger.Debug("creating runtime...", "actions", dispatcher.Actions())
	return runtime.NewRuntime(dispatcher,
		runtime.WithLogger(logger.With("component", "runtime")))
}
