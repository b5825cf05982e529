// Package cli provides the bootstrap shared by cmd/kharcha, cmd/kharcha-worker
// and cmd/kharchactl, plus the lipgloss styles of the terminal frontends.
package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kharcha/internal/config"
	"kharcha/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// SetupLogger builds the process logger from LOG_LEVEL and LOG_FORMAT and
// installs it as the slog default.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	return setupLogger(cfg, component, os.Stdout)
}

func setupLogger(cfg *config.Config, component string, out io.Writer) *log.Logger {
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: component,
		Output:    out,
	})
	log.SetDefault(logger)
	return logger
}

// ValidateConfig runs cfg.Validate and any extra checks, joining every
// failure into one error.
func ValidateConfig(cfg *config.Config, extra ...func() error) error {
	errs := []error{cfg.Validate()}
	for _, check := range extra {
		errs = append(errs, check())
	}
	return errors.Join(errs...)
}

// MustValidateConfig is ValidateConfig that exits the process on failure.
func MustValidateConfig(logger *log.Logger, cfg *config.Config, extra ...func() error) {
	if err := ValidateConfig(cfg, extra...); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
}

// ShutdownContext returns a context cancelled on SIGINT or SIGTERM. The
// signal is logged once.
func ShutdownContext(parent context.Context, logger *log.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
