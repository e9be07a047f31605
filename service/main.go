// Package main provides a standalone HTTP binary serving the reference actions.
package main

import (
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/isometry/bluews/internal/actionserver"
	"github.com/isometry/bluews/internal/runtime"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	})).With("mode", "service")
	logger.Info("spawning...")

	dispatcher := actionserver.NewDispatcher(actionserver.WithLogger(logger.With("component", "dispatcher")))
	actionserver.RegisterDefaults(dispatcher)

	s := &http.Server{
		Handler:      runtime.NewRuntime(dispatcher, runtime.WithLogger(logger.With("component", "runtime"))),
		Addr:         net.JoinHostPort("127.0.0.1", "8080"),
		WriteTimeout: 5 * time.Second,
		ReadTimeout:  5 * time.Second,
		IdleTimeout:  5 * time.Second,
	}

	if err := s.ListenAndServe(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
