package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/tally/tally/internal/config"
	"github.com/tally/tally/internal/runner"
)

func newPasswordsCmd(flags *globalFlags) *cobra.Command {
	var job config.Job

	cmd := &cobra.Command{
		Use:   "passwords",
		Short: "Count passwords that satisfy their policy",
		Long: "Each input line has the form \"<low>-<high> <char>: <password>\".\n" +
			"With --policy count the char must occur between low and high times;\n" +
			"with --policy position it must sit at exactly one of the two 1-indexed positions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Name = "passwords"
			job.Kind = config.KindPasswords
			return runSingle(cmd, flags, &config.Config{}, job)
		},
	}

	cmd.Flags().StringVar(&job.Input, "in", "", "Path to input file")
	cmd.Flags().StringVar(&job.Policy, "policy", "count", "Policy: count|position")
	cmd.Flags().BoolVar(&job.SkipMalformed, "skip-malformed", false, "Skip malformed lines instead of failing")

	return cmd
}

func newExpensesCmd(flags *globalFlags) *cobra.Command {
	var job config.Job

	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Multiply the entries that sum to a target",
		RunE: func(cmd *cobra.Command, args []string) error {
			job.Name = "expenses"
			job.Kind = config.KindExpenses
			return runSingle(cmd, flags, &config.Config{}, job)
		},
	}

	cmd.Flags().StringVar(&job.Input, "in", "", "Path to input file")
	cmd.Flags().IntVar(&job.Target, "target", config.DefaultTarget, "Sum the entries must reach")
	cmd.Flags().IntVar(&job.Size, "size", config.DefaultSize, "Number of entries to combine")
	cmd.Flags().BoolVar(&job.SkipMalformed, "skip-malformed", false, "Skip malformed lines instead of failing")

	return cmd
}

func newPassportsCmd(flags *globalFlags) *cobra.Command {
	var job config.Job
	var configPath string

	cmd := &cobra.Command{
		Use:   "passports",
		Short: "Count passports with every required field",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &config.Config{}
			if configPath != "" {
				loaded, err := config.Load(configPath)
				if err != nil {
					return err
				}
				if err := loaded.ValidateRules(); err != nil {
					return err
				}
				cfg.Rules = loaded.Rules
			}
			job.Name = "passports"
			job.Kind = config.KindPassports
			return runSingle(cmd, flags, cfg, job)
		},
	}

	cmd.Flags().StringVar(&job.Input, "in", "", "Path to input file")
	cmd.Flags().BoolVar(&job.Strict, "strict", false, "Also validate field values")
	cmd.Flags().BoolVar(&job.SkipMalformed, "skip-malformed", false, "Skip malformed groups instead of failing")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Config file providing field rules")

	return cmd
}

// runSingle runs one ad-hoc job and prints its result.
func runSingle(cmd *cobra.Command, flags *globalFlags, cfg *config.Config, job config.Job) error {
	if job.Input == "" {
		return errors.New("input path is required")
	}
	abs, err := filepath.Abs(job.Input)
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	job.Input = abs
	cfg.ConfigVersion = 1
	cfg.Jobs = []config.Job{job}
	cfg.ApplyDefaults()

	logger, err := flags.logger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	r, err := runner.New(cfg, runner.WithLogger(logger))
	if err != nil {
		return err
	}
	outcome, err := r.Run(cmd.Context(), cfg.Jobs[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), outcome.Result)
	return err
}
