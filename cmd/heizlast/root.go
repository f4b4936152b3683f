package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Agrid-Dev/heizlast/cmd/app"
	"github.com/Agrid-Dev/heizlast/internal/logging"
)

// options is shared by all subcommands; it is filled in by the root pre-run.
type options struct {
	configPath string
	logLevel   string

	cfg app.Config
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "heizlast",
		Short: "Heizlast estimates the heating load of a building",
		Long: `Heizlast computes a building's heating load from its envelope (walls, roof,
floor, windows) and air infiltration, or from a volumetric rule of thumb.
It runs as a CLI or serves a building model over HTTP, MQTT and Modbus TCP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load()
		},
	}

	// Persistent flags (available to all commands)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "config.yaml", "path to config file (.yaml/.yml/.json)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug|info|warn|error); overrides config")

	root.AddCommand(
		newServeCmd(opts),
		newSimpleCmd(opts),
		newDetailedCmd(opts),
		newPresetsCmd(opts),
		newBatchCmd(opts),
		newSampleConfigCmd(),
	)
	return root
}

func (o *options) load() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	o.cfg = cfg
	o.log = log
	return nil
}
