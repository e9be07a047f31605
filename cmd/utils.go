package cmd

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var replacer = strings.NewReplacer(".", "_", "-", "_")

type argType interface {
	string | bool | int | time.Duration
}

// envName returns the environment variable bound to the flag.
func envName[T argType](cfg boundEnvVar[T]) string {
	if cfg.Env != nil {
		return *cfg.Env
	}
	return "BLUEWS_" + strings.ToUpper(replacer.Replace(cfg.Name))
}

// bindEnvMap declares a persistent flag for every entry of m. The current value
// of the bound variable is the flag default unless the environment overrides it.
func bindEnvMap[T argType](cmd *cobra.Command, m map[*T]boundEnvVar[T]) {
	flags := cmd.PersistentFlags()
	for v, cfg := range m {
		env := envName(cfg)
		desc := fmt.Sprintf("[%s] %s", env, cfg.Description)
		_, fromEnv := os.LookupEnv(env)
		short := ""
		if cfg.Short != nil {
			short = *cfg.Short
		}

		switch vt := any(v).(type) {
		case *string:
			def := *vt
			if fromEnv {
				def = os.Getenv(env)
			}
			flags.StringVarP(vt, cfg.Name, short, def, desc)
		case *bool:
			def := *vt
			if fromEnv {
				def = viper.GetBool(env)
			}
			flags.BoolVarP(vt, cfg.Name, short, def, desc)
		case *int:
			def := *vt
			if fromEnv {
				def = viper.GetInt(env)
			}
			flags.CountVarP(vt, cfg.Name, short, desc)
			_ = flags.Lookup(cfg.Name).Value.Set(strconv.Itoa(def))
		case *time.Duration:
			def := *vt
			if fromEnv {
				def = viper.GetDuration(env)
			}
			flags.DurationVarP(vt, cfg.Name, short, def, desc)
		default:
			log.Panicf("command-args parsing error: unhandled default case for type %T", vt)
		}

		bindViper(flags.Lookup(cfg.Name), env)
		if cfg.Hidden {
			_ = flags.MarkHidden(cfg.Name)
		}
	}
}

func bindViper(flag *pflag.Flag, env string) {
	_ = viper.BindPFlag(flag.Name, flag)
	_ = viper.BindEnv(flag.Name, env)
}
