package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"

	"rapbook/internal/application"
	"rapbook/internal/domain"
	"rapbook/internal/ports"
)

// collection performs whole-collection read-modify-write under one key.
// The mutex serializes writers sharing this instance so concurrent saves
// don't lose each other's updates.
type collection[R any] struct {
	adapter *Adapter
	key     string
	idOf    func(R) string
	mu      sync.Mutex
}

// entry is one stored element. rec is nil when the element couldn't be
// decoded; its raw bytes are then written back untouched.
type entry[R any] struct {
	id  string
	rec *R
	raw json.RawMessage
}

// readEntries decodes the collection element by element. Only an unreadable
// array yields an empty collection; a bad element is skipped and kept.
func (c *collection[R]) readEntries(ctx context.Context) ([]entry[R], error) {
	raws, err := ReadList[json.RawMessage](ctx, c.adapter, c.key)
	if err != nil {
		return nil, err
	}

	entries := make([]entry[R], 0, len(raws))
	for i, raw := range raws {
		var rec R
		err := json.Unmarshal(raw, &rec)
		if err == nil && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			entries = append(entries, entry[R]{id: c.idOf(rec), rec: &rec, raw: raw})
			continue
		}

		var head struct {
			ID string `json:"id"`
		}
		_ = json.Unmarshal(raw, &head)
		c.adapter.logger.Warn().Err(err).
			Str("key", c.key).
			Int("index", i).
			Str("id", head.ID).
			Msg("keeping unreadable element as-is")
		entries = append(entries, entry[R]{id: head.ID, raw: raw})
	}
	return entries, nil
}

func (c *collection[R]) writeEntries(ctx context.Context, entries []entry[R]) error {
	raws := make([]json.RawMessage, len(entries))
	for i, e := range entries {
		raws[i] = e.raw
	}
	return c.adapter.Write(ctx, c.key, raws)
}

func (c *collection[R]) loadAll(ctx context.Context) ([]R, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.readEntries(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]R, 0, len(entries))
	for _, e := range entries {
		if e.rec != nil {
			items = append(items, *e.rec)
		}
	}
	return items, nil
}

func (c *collection[R]) save(ctx context.Context, rec R) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return &application.StorageError{Op: "encode", Key: c.key, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.readEntries(ctx)
	if err != nil {
		return err
	}

	saved := entry[R]{id: c.idOf(rec), rec: &rec, raw: raw}
	replaced := false
	for i := range entries {
		if entries[i].id == saved.id {
			entries[i] = saved
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, saved)
	}

	return c.writeEntries(ctx, entries)
}

func (c *collection[R]) delete(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.readEntries(ctx)
	if err != nil {
		return err
	}

	kept := entries[:0]
	for _, e := range entries {
		if e.id != id {
			kept = append(kept, e)
		}
	}

	return c.writeEntries(ctx, kept)
}

func (c *collection[R]) getOne(ctx context.Context, id string) (*R, error) {
	items, err := c.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if c.idOf(items[i]) == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// RapRepository implements ports.RapRepository
type RapRepository struct {
	coll *collection[rapRecord]
}

// Ensure RapRepository implements the port
var _ ports.RapRepository = (*RapRepository)(nil)

// NewRapRepository creates a rap repository stored under RapsKey
func NewRapRepository(adapter *Adapter) *RapRepository {
	return &RapRepository{coll: &collection[rapRecord]{
		adapter: adapter,
		key:     RapsKey,
		idOf:    func(r rapRecord) string { return r.ID },
	}}
}

// LoadAll returns every stored rap in stored order
func (r *RapRepository) LoadAll(ctx context.Context) ([]domain.Rap, error) {
	recs, err := r.coll.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	raps := make([]domain.Rap, len(recs))
	for i, rec := range recs {
		raps[i] = rec.toDomain()
	}
	return raps, nil
}

// Save inserts or replaces the rap
func (r *RapRepository) Save(ctx context.Context, rap domain.Rap) error {
	return r.coll.save(ctx, toRapRecord(rap))
}

// Delete removes the rap with the given ID
func (r *RapRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}

// GetOne returns the rap with the given ID, or nil if absent
func (r *RapRepository) GetOne(ctx context.Context, id string) (*domain.Rap, error) {
	rec, err := r.coll.getOne(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	rap := rec.toDomain()
	return &rap, nil
}

// FolderRepository implements ports.FolderRepository
type FolderRepository struct {
	coll *collection[folderRecord]
}

// Ensure FolderRepository implements the port
var _ ports.FolderRepository = (*FolderRepository)(nil)

// NewFolderRepository creates a folder repository stored under FoldersKey
func NewFolderRepository(adapter *Adapter) *FolderRepository {
	return &FolderRepository{coll: &collection[folderRecord]{
		adapter: adapter,
		key:     FoldersKey,
		idOf:    func(f folderRecord) string { return f.ID },
	}}
}

func (r *FolderRepository) LoadAll(ctx context.Context) ([]domain.Folder, error) {
	recs, err := r.coll.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	folders := make([]domain.Folder, len(recs))
	for i, rec := range recs {
		folders[i] = rec.toDomain()
	}
	return folders, nil
}

func (r *FolderRepository) Save(ctx context.Context, folder domain.Folder) error {
	return r.coll.save(ctx, toFolderRecord(folder))
}

func (r *FolderRepository) Delete(ctx context.Context, id string) error {
	return r.coll.delete(ctx, id)
}

func (r *FolderRepository) GetOne(ctx context.Context, id string) (*domain.Folder, error) {
	rec, err := r.coll.getOne(ctx, id)
	if err != nil || rec == nil {
		return nil, err
	}
	folder := rec.toDomain()
	return &folder, nil
}
