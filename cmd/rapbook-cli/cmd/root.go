package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"rapbook/internal/application"
	"rapbook/internal/bootstrap"
	"rapbook/internal/config"
	"rapbook/internal/logging"
)

var (
	dataDir  string
	backend  string
	logLevel string
	runtime  *bootstrap.Runtime
	logger   zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rapbook-cli",
	Short: "CLI for managing a rap lyrics notebook",
	Long: `rapbook-cli is a command-line interface for a notebook of rap lyrics
organized in nested folders.

It provides commands to list, create, edit, move, rename, delete, search
and export raps and folders.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := cfg.Override(dataDir, backend); err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger = logging.Console(cfg.LogLevel)

		runtime, err = bootstrap.Open(context.Background(), *cfg, logger)
		return err
	},
}

// Execute runs the root command
func Execute() {
	err := rootCmd.Execute()
	closeRuntime()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "directory holding the library (default from config)")
	rootCmd.PersistentFlags().StringVarP(&backend, "backend", "b", "", "storage backend: sqlite, badger, file or memory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (default from config)")
}

func closeRuntime() {
	if runtime == nil {
		return
	}
	if err := runtime.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to close store")
	}
	runtime = nil
}

// GetClient returns the initialized client
func GetClient() *application.Client {
	return runtime.Client
}

// GetConfig returns the resolved configuration
func GetConfig() config.Config {
	return runtime.Config
}
