// Package cmd provides the entrypoint for the bluews cli.
package cmd

import (
	"errors"
	"log/slog"
	"os"

	"github.com/isometry/bluews/internal/config"
	"github.com/isometry/bluews/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// configEnv names the environment variable holding the configuration file path.
const configEnv = "BLUEWS_CONFIG"

var (
	configFilePath = "bluews.yaml"
	logger         = helpers.NewNoopLogger()
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
}

// New returns the root command for bluews.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "bluews",
		Short:         "Call actions on an action-dispatch web service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger = helpers.NewJSONLogger(cmd.ErrOrStderr(),
				config.Global.Logging.Verbosity,
				config.Global.Logging.CallerTrace).With(slog.String("command", cmd.Name()))
		},
	}

	// The configuration file provides the flag defaults, so it is read before the flags are declared.
	if path, found := os.LookupEnv(configEnv); found {
		configFilePath = path
	}
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", configFilePath, "["+configEnv+"] path to the configuration file")
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	setupDynamicFlags(cmd)

	cmd.AddCommand(
		cmdCall(),
		cmdServe(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapCount)
}
