package cmd

import (
	"time"

	"github.com/isometry/bluews/internal/config"
	"github.com/isometry/bluews/internal/helpers"
)

var serveEnvMapString = map[*string]boundEnvVar[string]{
	&config.Server.Path: {
		Name:        "path",
		Env:         helpers.Ptr("BLUEWS_SERVER_PATH"),
		Description: "Path on which the actions are served",
	},
	&config.Server.Addr: {
		Name:        "addr",
		Env:         helpers.Ptr("BLUEWS_SERVER_ADDR"),
		Description: "Address on which the server listens",
	},
	&config.Server.Port: {
		Name:        "port",
		Env:         helpers.Ptr("BLUEWS_SERVER_PORT"),
		Description: "Port on which the server listens",
	},
}

var serveEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Server.Timeout: {
		Name:        "server-timeout",
		Description: "Read, write and idle timeout of the server",
	},
}
