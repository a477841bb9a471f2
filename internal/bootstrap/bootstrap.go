// Package bootstrap wires configuration, storage and the library into a
// ready-to-use application.Client for the rapbook binaries.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"rapbook/internal/adapters/badger"
	"rapbook/internal/adapters/filesystem"
	"rapbook/internal/adapters/memory"
	"rapbook/internal/adapters/sqlite"
	"rapbook/internal/adapters/storage"
	"rapbook/internal/application"
	"rapbook/internal/config"
	"rapbook/internal/ports"
)

// Runtime holds an open store and the client built on it
type Runtime struct {
	Client  *application.Client
	Config  config.Config
	adapter *storage.Adapter
}

// OpenStore opens the key-value store selected by cfg.Backend
func OpenStore(cfg config.Config, logger zerolog.Logger) (ports.KeyValueStore, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		return sqlite.Open(sqlite.DatabasePath(cfg.DataDir))
	case config.BackendBadger:
		bcfg := badger.DefaultConfig(badger.DatabaseDir(cfg.DataDir))
		bcfg.Logger = &logger
		return badger.Open(bcfg)
	case config.BackendFile:
		return filesystem.NewStore(filesystem.StoreDir(cfg.DataDir))
	case config.BackendMemory:
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// Open opens storage, builds the client and loads the library
func Open(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*Runtime, error) {
	store, err := OpenStore(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Backend, err)
	}

	rt := New(store, cfg, logger)
	if err := rt.Client.LoadInitialData(ctx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to load library: %w", err)
	}

	logger.Debug().Str("backend", cfg.Backend).Str("data_dir", cfg.DataDir).Msg("runtime ready")
	return rt, nil
}

// New builds a runtime over an already open store without loading it
func New(store ports.KeyValueStore, cfg config.Config, logger zerolog.Logger) *Runtime {
	adapter := storage.NewAdapter(store, logger)
	lib := application.NewLibrary(
		storage.NewRapRepository(adapter),
		storage.NewFolderRepository(adapter),
		logger,
	)

	return &Runtime{
		Client:  application.NewClient(lib),
		Config:  cfg,
		adapter: adapter,
	}
}

// Close releases the underlying store
func (r *Runtime) Close() error {
	return r.adapter.Close()
}
