package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"rapbook/internal/adapters/editor"
	"rapbook/internal/adapters/tui"
	"rapbook/internal/bootstrap"
	"rapbook/internal/config"
	"rapbook/internal/logging"
)

func main() {
	dataDir := flag.String("data-dir", "", "directory holding the rap library")
	backend := flag.String("backend", "", "storage backend (sqlite, badger, file, memory)")
	flag.Parse()

	if err := run(*dataDir, *backend); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(dataDir, backend string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Override(dataDir, backend); err != nil {
		return err
	}

	// The terminal belongs to the TUI, so logs go to a file
	logger, closeLog := fileLogger(cfg.LogDir(), cfg.LogKeep, cfg.LogLevel, os.Stderr)
	defer closeLog()

	store, err := bootstrap.OpenStore(*cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}

	// The browser loads the library behind a spinner
	rt := bootstrap.New(store, *cfg, logger)
	defer rt.Close()

	app := tui.NewApp(rt.Client, editor.NewOpener(), logger)
	logger.Info().Str("backend", cfg.Backend).Str("data_dir", cfg.DataDir).Msg("starting rapbook")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

// fileLogger logs to a fresh file in dir. When the file can't be created
// it says so on stderr and returns a logger that discards everything.
func fileLogger(dir string, keep int, level string, stderr io.Writer) (zerolog.Logger, func()) {
	logFile, err := logging.SetupLogFile(dir, keep)
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		return zerolog.Nop(), func() {}
	}
	return logging.New(logFile, level), func() { logFile.Close() }
}
