package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/pagelink/client"
	"github.com/ncobase/pagelink/config"
	"github.com/ncobase/pagelink/logging/logger"
	"github.com/ncobase/pagelink/logging/observes"
	"github.com/ncobase/pagelink/version"
	"github.com/spf13/cobra"
)

// runtime holds what every API command needs once flags are parsed
type runtime struct {
	configFile string
	baseURL    string
	token      string
	verbose    bool

	cfg     *config.Config
	client  *client.Client
	cleanup []func()
}

func (rt *runtime) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(rt.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rt.baseURL != "" {
		cfg.Client.BaseURL = rt.baseURL
	}
	if rt.token != "" {
		cfg.Client.Token = rt.token
	}
	if rt.verbose {
		cfg.Logger.Level = 5
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	closeLog, err := logger.New(cfg.Logger)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	logger.SetVersion(version.Version)
	if out := cfg.Logger.Output; out == "" || out == "stderr" {
		logger.SetOutput(cmd.ErrOrStderr())
	}
	rt.cleanup = append(rt.cleanup, closeLog)

	shutdown, err := observes.NewTracer(cmd.Context(), &observes.TracerOption{
		URL:                cfg.Observes.Tracer.Endpoint,
		Name:               cfg.AppName,
		Version:            version.Version,
		Environment:        cfg.RunMode,
		SamplingRate:       cfg.Observes.Tracer.SamplingRate,
		BatchTimeout:       cfg.Observes.Tracer.BatchTimeout,
		ExportTimeout:      cfg.Observes.Tracer.ExportTimeout,
		MaxExportBatchSize: cfg.Observes.Tracer.MaxExportBatchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to init tracer: %w", err)
	}
	rt.cleanup = append(rt.cleanup, func() { _ = shutdown(context.Background()) })

	flush, err := observes.NewSentry(&observes.SentryOptions{
		Dsn:         cfg.Observes.Sentry.Endpoint,
		Name:        cfg.AppName,
		Release:     cfg.Observes.Sentry.Release,
		Environment: cfg.Observes.Sentry.Environment,
	})
	if err != nil {
		return fmt.Errorf("failed to init sentry: %w", err)
	}
	rt.cleanup = append(rt.cleanup, flush)

	c, err := client.New(cfg.Client)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	rt.client = c
	return nil
}

func (rt *runtime) close() {
	for i := len(rt.cleanup) - 1; i >= 0; i-- {
		rt.cleanup[i]()
	}
	rt.cleanup = nil
}

// report forwards command failures to sentry
func (rt *runtime) report(err error) error {
	if err != nil && !errors.Is(err, context.Canceled) {
		observes.CaptureError(err)
	}
	return err
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "pagewalk",
		Short:         "Walk collections of APIs paginated with Link headers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rt.configFile, "conf", "c", "", "config file path, e.g. ./config.yaml")
	flags.StringVar(&rt.baseURL, "base-url", "", "API base URL, overrides client.base_url")
	flags.StringVar(&rt.token, "token", "", "bearer token, overrides client.token")
	flags.BoolVarP(&rt.verbose, "verbose", "v", false, "log every page fetch")

	rootCmd.AddCommand(
		newWalkCommand(rt),
		newLinksCommand(rt),
		newVersionCommand(),
	)

	return rootCmd
}
