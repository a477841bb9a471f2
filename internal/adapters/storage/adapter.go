// Package storage maps the rap and folder collections onto a key-value store.
// Each collection lives under one key as a JSON array and is always
// written as a whole.
package storage

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"rapbook/internal/application"
	"rapbook/internal/ports"
)

// Storage keys, shared with collections written by the mobile app
const (
	RapsKey    = "@rapapp:raps"
	FoldersKey = "@rapapp:folders"
)

// Adapter encodes values as JSON on top of a ports.KeyValueStore
type Adapter struct {
	store  ports.KeyValueStore
	logger zerolog.Logger
}

// NewAdapter creates a new persistence adapter
func NewAdapter(store ports.KeyValueStore, logger zerolog.Logger) *Adapter {
	return &Adapter{
		store:  store,
		logger: logger.With().Str("component", "storage").Logger(),
	}
}

// Write encodes value and stores it under key, replacing whatever was there
func (a *Adapter) Write(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return &application.StorageError{Op: "encode", Key: key, Err: err}
	}
	if err := a.store.Set(ctx, key, data); err != nil {
		return &application.StorageError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// Remove deletes key. Missing keys are not an error.
func (a *Adapter) Remove(ctx context.Context, key string) error {
	if err := a.store.Remove(ctx, key); err != nil {
		return &application.StorageError{Op: "remove", Key: key, Err: err}
	}
	return nil
}

// Close closes the underlying store
func (a *Adapter) Close() error {
	return a.store.Close()
}

// Read decodes the value stored under key. An absent key, an empty value or a
// payload that can't be decoded all yield fallback; only a failing store
// returns an error.
func Read[T any](ctx context.Context, a *Adapter, key string, fallback T) (T, error) {
	data, found, err := a.store.Get(ctx, key)
	if err != nil {
		return fallback, &application.StorageError{Op: "get", Key: key, Err: err}
	}
	if !found || len(data) == 0 {
		return fallback, nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		a.logger.Warn().Err(err).Str("key", key).Int("bytes", len(data)).Msg("discarding unreadable value")
		return fallback, nil
	}
	return v, nil
}

// ReadList is Read for collections: it never returns a nil slice
func ReadList[T any](ctx context.Context, a *Adapter, key string) ([]T, error) {
	items, err := Read(ctx, a, key, []T{})
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []T{}, nil
	}
	return items, nil
}
