// Package cli implements the txmon command line interface.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Raswanth-RM/Transaction-Monitoring/internal/config"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/alerts"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/monitor"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/rules"
	"github.com/Raswanth-RM/Transaction-Monitoring/pkg/storage"
)

// Version is set at build time via ldflags.
var Version = "dev"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "txmon",
	Short: "Transaction Monitoring - threshold rules and alerting over customer transactions",
	Long: `Transaction Monitoring ingests customer transaction files, evaluates them
against configurable threshold rules, and maintains per-customer alerts.
It provides an HTTP API for uploads and alert review, plus CLI commands
for ingestion, rule scans, and alert management.`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.txmon/config.yaml)")
}

// loadConfig loads the configuration.
func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// newLogger creates a structured logger from config.
func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	var handler slog.Handler
	if cfg.Logging.Format == "text" {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}

	return slog.New(handler)
}

// initStorage creates a storage backend from config.
func initStorage(cfg *config.Config) (storage.Storage, error) {
	return storage.NewSQLite(cfg.Storage.Path)
}

// initRules creates the rule engine, loading thresholds from the
// configured file when one is set.
func initRules(cfg *config.Config) (*rules.Engine, error) {
	if cfg.Rules.Path == "" {
		return rules.NewEngine(rules.DefaultThresholds()), nil
	}

	thresholds, err := rules.LoadThresholds(cfg.Rules.Path)
	if err != nil {
		return nil, err
	}
	return rules.NewEngine(thresholds), nil
}

// initNotifiers creates notifiers from config.
func initNotifiers(cfg *config.Config) []alerts.Notifier {
	var notifiers []alerts.Notifier

	if cfg.Alerts.Slack.Enabled && cfg.Alerts.Slack.WebhookURL != "" {
		notifiers = append(notifiers, alerts.NewSlackNotifier(
			cfg.Alerts.Slack.WebhookURL,
			cfg.Alerts.Slack.Channel,
		))
	}

	if cfg.Alerts.Webhook.Enabled && cfg.Alerts.Webhook.URL != "" {
		notifiers = append(notifiers, alerts.NewWebhookNotifier(
			cfg.Alerts.Webhook.URL,
			cfg.Alerts.Webhook.Secret,
		))
	}

	return notifiers
}

// initMonitor creates a fully wired monitor.
func initMonitor(cfg *config.Config) (*monitor.Monitor, storage.Storage, error) {
	logger := newLogger(cfg)

	engine, err := initRules(cfg)
	if err != nil {
		return nil, nil, err
	}

	store, err := initStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	notifiers := initNotifiers(cfg)
	m := monitor.New(store, engine, notifiers, logger)
	return m, store, nil
}
