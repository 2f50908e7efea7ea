package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"

	"github.com/baditaflorin/go_shebang/internal/ports"
)

// Default configuration
const (
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 10 * 1024 * 1024 // 10MB
	DefaultConcurrency    = 0                // 0 means fasthttp's default
)

// Config holds the HTTP server settings.
type Config struct {
	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int
	Concurrency    int
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Port:           DefaultPort,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxRequestSize: DefaultMaxRequestSize,
		Concurrency:    DefaultConcurrency,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxRequestSize <= 0 {
		return errors.New("max request size must be greater than 0")
	}
	if c.Concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Run serves handler until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, config Config, handler *Handler, logger ports.Logger) error {
	if err := config.Validate(); err != nil {
		return err
	}

	srv := &fasthttp.Server{
		Handler:               handler.HandleRequest,
		Name:                  "ShebangServer",
		ReadTimeout:           config.ReadTimeout,
		WriteTimeout:          config.WriteTimeout,
		MaxRequestBodySize:    config.MaxRequestSize,
		Concurrency:           config.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "address", config.Addr())
		errCh <- srv.ListenAndServe(config.Addr())
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	timeout := config.WriteTimeout
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown", "error", err)
		return err
	}
	logger.Info("Server stopped")
	return nil
}
