package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"shareit/config"

	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "shareit",
	Short: "shareit - item sharing service",
	Long: `shareit lets users list things they own, book things other users own,
and post requests for things nobody lists yet.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file read before the environment")
}

// setup loads the config and builds the process logger.
func setup() (config.App, *slog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.App{}, nil, err
	}
	opts := &slog.HandlerOptions{}
	if cfg.Env == "dev" {
		opts.Level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, opts)).With("env", cfg.Env)
	slog.SetDefault(log)
	return cfg, log, nil
}
