// Package main provides a standalone Lambda binary serving the reference actions.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/isometry/bluews/internal/actionserver"
	"github.com/isometry/bluews/internal/runtime"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})).With("mode", "lambda")
	logger.Info("spawned...")

	dispatcher := actionserver.NewDispatcher(actionserver.WithLogger(logger.With("component", "dispatcher")))
	actionserver.RegisterDefaults(dispatcher)
	rt := runtime.NewRuntime(dispatcher, runtime.WithLogger(logger.With("component", "runtime")))

	lambda.StartWithOptions(rt.HandleEvent, lambda.WithContext(context.Background()))
}
