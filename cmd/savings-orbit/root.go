package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/iwvelando/savings-orbit/internal/config"
	"github.com/iwvelando/savings-orbit/internal/store"
	"github.com/iwvelando/savings-orbit/internal/tracker"
	"github.com/iwvelando/savings-orbit/pkg/constants"
	"github.com/iwvelando/savings-orbit/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries what every command needs once the root command has loaded
// configuration and logging.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string

	conf   *config.Configuration
	logger *zap.Logger
	store  store.Store
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "savings-orbit",
		Short:         "Daily savings plans that grow a little every day",
		Long:          "Plan a savings goal as a gently increasing daily amount, track each day's saving, and get weekly advice.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().StringVarP(&a.outputFormat, "output-format", "o", "", "type of output override: pretty, csv, json")

	root.AddCommand(
		newPlanCmd(a),
		newGoalCmd(a),
		newStatusCmd(a),
		newProgressCmd(a, "save", "Record today's saving", tracker.EventSaveToday),
		newProgressCmd(a, "next-day", "Move on to the next day after saving", tracker.EventNextDay),
		newProgressCmd(a, "miss-day", "Record that today was missed", tracker.EventMissDay),
		newProgressCmd(a, "unban", "Lift the ban after too many missed days", tracker.EventUnban),
		newResetCmd(a),
		newImportCmd(a),
		newRecommendCmd(a),
		newServeCmd(a),
	)

	return root
}

// setup loads configuration and logging. A missing default config file is
// not an error; defaults and environment overrides apply.
func (a *app) setup() error {
	path := a.configPath
	if path == constants.DefaultConfigFile {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	a.conf = conf

	logger, err := initializeLogger(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger

	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Debug("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return nil
}

// controller opens the configured store and returns a tracker on it.
func (a *app) controller(ctx context.Context) (*tracker.Controller, error) {
	if a.store == nil {
		st, err := store.Open(ctx, a.conf.StoreOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open %s storage: %w", a.conf.Storage.Driver, err)
		}
		a.store = st
	}
	return tracker.NewController(a.logger, a.store, a.conf.Storage.Key), nil
}

// execute runs root and then releases the store and flushes the logger.
// Cobra skips post-run hooks when a command fails, so cleanup happens here.
func execute(a *app, root *cobra.Command) error {
	defer a.close()
	return root.Execute()
}

func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("failed to close storage",
				zap.String("op", "main"),
				zap.Error(err),
			)
		}
		a.store = nil
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func (a *app) symbol() string {
	if a.conf.Currency.Symbol == "" {
		return constants.DefaultCurrencySymbol
	}
	return a.conf.Currency.Symbol
}
