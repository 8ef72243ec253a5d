package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/attendsync/internal/adapters/csvio"
	service "github.com/okian/attendsync/internal/app"
	"github.com/okian/attendsync/internal/config"
	"github.com/okian/attendsync/pkg/logger"
)

// commandContext carries the persistent flags and the loaded configuration
// to every subcommand.
type commandContext struct {
	configFlag    string
	logLevelFlag  string
	logFormatFlag string

	cfg *config.Config
	log logger.Logger
}

// ensureConfig loads configuration (defaults -> file -> env -> flags) and
// initializes logging on stderr. It is idempotent.
func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.Load(cmd.Context(), c.configFlag)
	if err != nil {
		return nil, err
	}
	if c.logLevelFlag != "" {
		cfg.LogLevel = c.logLevelFlag
	}
	if c.logFormatFlag != "" {
		cfg.LogFormat = c.logFormatFlag
	}

	if err := logger.InitWithWriter(cmd.ErrOrStderr(), cfg.LogFormat); err != nil {
		return nil, err
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(cmd.Context(), "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	c.cfg = cfg
	c.log = log
	return cfg, nil
}

func newRootCommand() *cobra.Command {
	cc := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "attendsync",
		Short:         "Reconcile meeting attendance with a training roster",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "attendsync" {
				return nil
			}
			_, err := cc.ensureConfig(cmd)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cc.configFlag, "config", "c", "", "Configuration file path (YAML); defaults to $ATTENDSYNC_CONFIG")
	rootCmd.PersistentFlags().StringVar(&cc.logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&cc.logFormatFlag, "log-format", "", "Log format: text or json")

	rootCmd.AddCommand(newReconcileCommand(cc))
	rootCmd.AddCommand(newServeCommand(cc))

	return rootCmd
}

// buildService maps configuration onto service options.
func buildService(cfg *config.Config, log logger.Logger) (*service.Service, error) {
	return service.New(
		service.WithLogger(log),
		service.WithThresholds(cfg.MatchThreshold, cfg.DurationThreshold),
		service.WithScorer(cfg.Scorer),
		service.WithWorkerCount(cfg.WorkerCount),
		service.WithHistoryCapacity(cfg.RunHistory),
		service.WithSourceOptions(csvio.SourceOptions{
			SkipRows:       cfg.SkipRows,
			NameColumn:     cfg.SourceNameColumn,
			DurationColumn: cfg.SourceDurationColumn,
		}),
		service.WithRosterOptions(csvio.RosterOptions{
			FirstNameColumn:    cfg.RosterFirstNameColumn,
			LastNameColumn:     cfg.RosterLastNameColumn,
			LegacyStatusColumn: cfg.RosterStatusColumn,
			StatusColumn:       cfg.StatusColumn,
			FullNameColumn:     cfg.FullNameColumn,
		}),
	)
}
