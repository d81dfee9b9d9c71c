package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Manu343726/nesview/pkg/client"
	"github.com/Manu343726/nesview/pkg/config"
	"github.com/Manu343726/nesview/pkg/logging"
	"github.com/spf13/viper"
)

// session bundles what every debugger command needs: settings, logger and
// backend client
type session struct {
	config config.Config
	logger *slog.Logger
	client *client.Client
	closer io.Closer
}

func loadConfig() config.Config {
	cfg, err := config.Load(viper.GetViper())
	exitOnError(err, "loading configuration")
	return cfg
}

// newSession connects the backend client. Logs go to console (if not nil),
// the configured log file and the extra handlers.
func newSession(cfg config.Config, console io.Writer, extra ...slog.Handler) (*session, error) {
	logger, closer, err := logging.New(logging.Options{
		Level:   cfg.LogLevel(),
		File:    cfg.Log.File,
		Console: console,
	}, extra...)
	if err != nil {
		return nil, err
	}

	c, err := client.New(cfg.Backend, client.Options{
		Timeout: cfg.Timeout,
		Logger:  logger,
	})
	if err != nil {
		closer.Close()
		return nil, err
	}

	logger.Debug("session started", "backend", c.BaseURL(), "mode", cfg.ViewMode(), "timeout", cfg.Timeout)

	return &session{
		config: cfg,
		logger: logger,
		client: c,
		closer: closer,
	}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func exitOnError(err error, format string, args ...interface{}) {
	if err == nil {
		return
	}

	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", fmt.Sprintf(format, args...), err)
	os.Exit(1)
}
