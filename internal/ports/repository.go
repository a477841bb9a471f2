package ports

import (
	"context"

	"rapbook/internal/domain"
)

// RapRepository persists the whole collection of raps
type RapRepository interface {
	// LoadAll returns every stored rap in stored order.
	// A missing or unreadable collection yields an empty slice.
	LoadAll(ctx context.Context) ([]domain.Rap, error)

	// Save inserts the rap, or replaces the existing entry with the same ID in place
	Save(ctx context.Context, rap domain.Rap) error

	// Delete removes the rap with the given ID; absent IDs are a no-op
	Delete(ctx context.Context, id string) error

	// GetOne returns the rap with the given ID, or nil if absent
	GetOne(ctx context.Context, id string) (*domain.Rap, error)
}

// FolderRepository persists the whole collection of folders
type FolderRepository interface {
	LoadAll(ctx context.Context) ([]domain.Folder, error)
	Save(ctx context.Context, folder domain.Folder) error
	Delete(ctx context.Context, id string) error
	GetOne(ctx context.Context, id string) (*domain.Folder, error)
}
