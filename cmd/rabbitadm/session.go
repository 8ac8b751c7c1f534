package main

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/rabbitadm/internal/config"
	"github.com/alexisbeaulieu97/rabbitadm/internal/logger"
	"github.com/alexisbeaulieu97/rabbitadm/internal/transport"
	"github.com/alexisbeaulieu97/rabbitadm/pkg/admin"
)

// session bundles the services one command invocation needs.
type session struct {
	ctx       context.Context
	client    *admin.Client
	log       admin.Logger
	transport *transport.HTTP
	registry  *prometheus.Registry
	flags     *rootFlags
}

func openSession(cmd *cobra.Command, flags *rootFlags, name string) (*session, error) {
	settings, err := config.ParseSettingsWithEnv(flags.configPath, flags.lookupEnv)
	if err != nil {
		return nil, newCommandError(name, "loading settings", err, "Check the settings file and the RABBITADM_* environment variables.")
	}

	var log, transportLog admin.Logger = logger.NoOp{}, logger.NoOp{}
	if settings.Logging.Enabled {
		level := settings.Logging.Level
		if flags.verbose {
			level = "debug"
		}
		zl, err := logger.New(logger.Options{
			Level:         level,
			HumanReadable: settings.Logging.Human,
			Writer:        cmd.ErrOrStderr(),
			Name:          settings.Logging.Name,
		})
		if err != nil {
			return nil, newCommandError(name, "creating logger", err, "Use one of debug, info, warn or error as the logging level.")
		}
		scoped := zl.WithFields(map[string]any{"command": name, "broker": settings.Host})
		log = scoped
		transportLog = scoped.With("component", "transport")
	}

	registry := prometheus.NewRegistry()
	metrics, err := transport.NewMetrics(registry)
	if err != nil {
		return nil, newCommandError(name, "registering metrics", err, "This is a bug; please report it.")
	}

	retry := settings.TransientRetry
	httpTransport, err := transport.New(transport.Options{
		BaseURL:  settings.Host,
		Username: settings.Credentials.Username,
		Password: settings.Credentials.Password,
		Timeout:  settings.Timeout,
		Retry: transport.RetryPolicy{
			Enabled: retry.Enabled,
			Limit:   retry.Attempts() - 1,
			Delay:   retry.Delay,
		},
		Metrics: metrics,
		Logger:  transportLog,
	})
	if err != nil {
		return nil, newCommandError(name, "creating transport", err, "Check the host setting.")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithCorrelationID(ctx, logger.NewCorrelationID())

	return &session{
		ctx:       ctx,
		client:    admin.New(httpTransport, admin.WithLogger(log)),
		log:       log,
		transport: httpTransport,
		registry:  registry,
		flags:     flags,
	}, nil
}

// close releases connections and writes the metrics file when requested.
func (s *session) close() error {
	s.transport.Close()
	path := strings.TrimSpace(s.flags.metricsFile)
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, s.registry); err != nil {
		return newCommandError("write metrics", path, err, "Check that the metrics file directory exists and is writable.")
	}
	return nil
}

// run opens a session, executes fn and closes the session. The first error
// wins.
func run(cmd *cobra.Command, flags *rootFlags, name string, fn func(*session) error) error {
	s, err := openSession(cmd, flags, name)
	if err != nil {
		return err
	}
	runErr := fn(s)
	if runErr != nil {
		s.log.Error(s.ctx, "command failed", "error", runErr)
	}
	if closeErr := s.close(); runErr == nil {
		runErr = closeErr
	}
	return runErr
}
