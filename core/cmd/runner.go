// Package cmd provides the shared process lifecycle for bot binaries.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tutorbot/core/logger"
)

// App is a runnable application: it blocks until ctx is cancelled or a
// fatal error occurs.
type App func(ctx context.Context) error

// ConfigPath resolves the configuration file location.
// CONFIG_PATH overrides the default config/config.yaml.
func ConfigPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config/config.yaml"
}

// Run executes the app under a signal-aware context and flushes logs on exit.
// It returns the process exit code.
func Run(app App) int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := app(ctx)
	if shErr := logger.Shutdown(); shErr != nil {
		fmt.Fprintln(os.Stderr, "logger shutdown:", shErr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
