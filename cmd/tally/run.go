package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/tally/tally/internal/config"
	"github.com/tally/tally/internal/logging"
	"github.com/tally/tally/internal/observability"
	"github.com/tally/tally/internal/runner"
	"go.uber.org/zap"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var configPath string
	var jobName string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every job in a config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return errors.New("config path is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			applyOverrides(cmd, flags, cfg)
			if jobName != "" {
				if err := selectJob(cfg, jobName); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runJobs(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	cmd.Flags().StringVar(&jobName, "job", "", "Run only the named job")

	return cmd
}

func runJobs(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	opts := []runner.Option{runner.WithLogger(logger)}

	if cfg.Logging.RunLog != "" {
		runLog, closer, err := logging.OpenRunLog(cfg.ResolvePath(cfg.Logging.RunLog))
		if err != nil {
			return err
		}
		defer func() { _ = closer() }()
		opts = append(opts, runner.WithRunLog(runLog))
	}

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(prometheus.NewRegistry())
		opts = append(opts, runner.WithMetrics(metrics))
	}

	r, err := runner.New(cfg, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	outcomes, runErr := r.RunAll(ctx)

	if metrics != nil {
		if err := metrics.WriteTextfile(cfg.ResolvePath(cfg.Metrics.Textfile)); err != nil {
			logger.Warn("write metrics textfile", zap.Error(err))
		}
	}

	if errors.Is(runErr, context.Canceled) {
		return errors.New("interrupted")
	}
	if runErr != nil {
		return runErr
	}

	for _, o := range outcomes {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %d\n", o.Job, o.Result); err != nil {
			return err
		}
	}
	return nil
}

// applyOverrides lets explicitly set global log flags win over the config.
func applyOverrides(cmd *cobra.Command, flags *globalFlags, cfg *config.Config) {
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = flags.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Logging.Format = flags.logFormat
	}
}

func selectJob(cfg *config.Config, name string) error {
	for _, job := range cfg.Jobs {
		if job.Name == name {
			cfg.Jobs = []config.Job{job}
			return nil
		}
	}
	return fmt.Errorf("job %q not found", name)
}
