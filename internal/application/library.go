package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"rapbook/internal/domain"
	"rapbook/internal/ports"
)

// FolderChange moves a rap as part of an update when Set is true.
// A nil Value means the root.
type FolderChange struct {
	Set   bool
	Value *string
}

// MoveTo returns a FolderChange targeting folderID
func MoveTo(folderID *string) FolderChange {
	return FolderChange{Set: true, Value: domain.CloneID(folderID)}
}

// RapUpdate lists the fields to change on a rap. nil fields are left alone.
type RapUpdate struct {
	Title     *string
	Content   *string
	Folder    FolderChange
	AudioURL  *string
	AudioFile *string
	Tags      *[]string
	Metadata  *domain.Metadata
}

// Library owns the in-memory raps and folders and keeps them in step with
// the repositories. Construct one per process with NewLibrary and share it.
//
// Mutating operations are serialized. Each one validates against memory,
// persists, and only then applies the change in memory, so a failed write
// leaves the in-memory state untouched.
type Library struct {
	raps    ports.RapRepository
	folders ports.FolderRepository
	logger  zerolog.Logger
	now     func() time.Time

	// opMu serializes operations; mu guards the fields below it.
	// Code holding opMu may read the collections without mu since every
	// writer holds opMu too.
	opMu       sync.Mutex
	mu         sync.RWMutex
	rapList    []domain.Rap
	folderList []domain.Folder
	loading    bool
	loaded     bool
	lastErr    error
}

// NewLibrary creates an empty, unloaded library
func NewLibrary(raps ports.RapRepository, folders ports.FolderRepository, logger zerolog.Logger) *Library {
	return &Library{
		raps:    raps,
		folders: folders,
		logger:  logger.With().Str("component", "library").Logger(),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// LoadInitialData replaces the in-memory collections with the stored ones.
// Raps and folders load concurrently; if either fails nothing is replaced.
func (l *Library) LoadInitialData(ctx context.Context) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	l.mu.Lock()
	l.loading = true
	l.lastErr = nil
	l.mu.Unlock()

	var (
		raps    []domain.Rap
		folders []domain.Folder
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		raps, err = l.raps.LoadAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		folders, err = l.folders.LoadAll(gctx)
		return err
	})
	err := g.Wait()

	l.mu.Lock()
	l.loading = false
	if err != nil {
		l.lastErr = err
		l.mu.Unlock()
		l.logger.Error().Err(err).Msg("failed to load library")
		return err
	}
	l.rapList = raps
	l.folderList = folders
	l.loaded = true
	l.mu.Unlock()

	l.logger.Info().Int("raps", len(raps)).Int("folders", len(folders)).Msg("library loaded")
	return nil
}

// CreateRap stores a new rap. A blank title becomes domain.DefaultRapTitle.
func (l *Library) CreateRap(ctx context.Context, title, content string, folderID *string) (*domain.Rap, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "create rap"

	if err := l.requireFolder(folderID); err != nil {
		return nil, l.fail(op, err)
	}

	now := l.now()
	rap := domain.Rap{
		ID:        domain.NewRapID(),
		Title:     domain.NormalizeTitle(title),
		Content:   content,
		FolderID:  domain.CloneID(folderID),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := toValidationError(rap.Validate()); err != nil {
		return nil, l.fail(op, err)
	}

	if err := l.raps.Save(ctx, rap); err != nil {
		return nil, l.fail(op, err)
	}

	l.commit(func() {
		l.rapList = append(l.rapList, rap)
	})
	l.logger.Debug().Str("id", rap.ID).Str("folder", domain.IDOrEmpty(rap.FolderID)).Msg("rap created")

	out := rap.Clone()
	return &out, nil
}

// UpdateRap merges changes into an existing rap and refreshes UpdatedAt
func (l *Library) UpdateRap(ctx context.Context, id string, changes RapUpdate) (*domain.Rap, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "update rap"

	idx := l.rapIndex(id)
	if idx < 0 {
		return nil, l.fail(op, &NotFoundError{Kind: "rap", ID: id})
	}

	updated := l.rapList[idx].Clone()
	if changes.Title != nil {
		updated.Title = domain.NormalizeTitle(*changes.Title)
	}
	if changes.Content != nil {
		updated.Content = *changes.Content
	}
	if changes.Folder.Set {
		if err := l.requireFolder(changes.Folder.Value); err != nil {
			return nil, l.fail(op, err)
		}
		updated.FolderID = domain.CloneID(changes.Folder.Value)
	}
	if changes.AudioURL != nil {
		updated.AudioURL = *changes.AudioURL
	}
	if changes.AudioFile != nil {
		updated.AudioFile = *changes.AudioFile
	}
	if changes.Tags != nil {
		updated.Tags = append([]string(nil), (*changes.Tags)...)
	}
	if changes.Metadata != nil {
		md := *changes.Metadata
		if md.Extra == nil && updated.Metadata != nil {
			md.Extra = updated.Metadata.Extra
		}
		updated.Metadata = &md
	}
	updated.UpdatedAt = l.now()

	if err := toValidationError(updated.Validate()); err != nil {
		return nil, l.fail(op, err)
	}

	if err := l.raps.Save(ctx, updated); err != nil {
		return nil, l.fail(op, err)
	}

	l.commit(func() {
		l.rapList[idx] = updated
	})
	l.logger.Debug().Str("id", id).Msg("rap updated")

	out := updated.Clone()
	return &out, nil
}

// MoveRap puts a rap in folderID (nil = root)
func (l *Library) MoveRap(ctx context.Context, id string, folderID *string) (*domain.Rap, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "move rap"

	idx := l.rapIndex(id)
	if idx < 0 {
		return nil, l.fail(op, &NotFoundError{Kind: "rap", ID: id})
	}
	if err := l.requireFolder(folderID); err != nil {
		return nil, l.fail(op, err)
	}

	moved := l.rapList[idx].Clone()
	moved.FolderID = domain.CloneID(folderID)
	moved.UpdatedAt = l.now()

	if err := l.raps.Save(ctx, moved); err != nil {
		return nil, l.fail(op, err)
	}

	l.commit(func() {
		l.rapList[idx] = moved
	})
	l.logger.Debug().Str("id", id).Str("folder", domain.IDOrEmpty(folderID)).Msg("rap moved")

	out := moved.Clone()
	return &out, nil
}

// DeleteRap removes a rap. Unknown IDs fail with a NotFoundError.
func (l *Library) DeleteRap(ctx context.Context, id string) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "delete rap"

	idx := l.rapIndex(id)
	if idx < 0 {
		return l.fail(op, &NotFoundError{Kind: "rap", ID: id})
	}

	if err := l.raps.Delete(ctx, id); err != nil {
		return l.fail(op, err)
	}

	l.commit(func() {
		l.rapList = append(l.rapList[:idx:idx], l.rapList[idx+1:]...)
	})
	l.logger.Debug().Str("id", id).Msg("rap deleted")
	return nil
}

// CreateFolder stores a new folder under parentID (nil = root)
func (l *Library) CreateFolder(ctx context.Context, name string, parentID *string) (*domain.Folder, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "create folder"

	name = domain.NormalizeName(name)
	if err := ValidateRequired("name", name); err != nil {
		return nil, l.fail(op, err)
	}
	if err := l.requireFolder(parentID); err != nil {
		return nil, l.fail(op, err)
	}

	folder := domain.Folder{
		ID:        domain.NewFolderID(),
		Name:      name,
		ParentID:  domain.CloneID(parentID),
		CreatedAt: l.now(),
	}
	if err := toValidationError(folder.Validate()); err != nil {
		return nil, l.fail(op, err)
	}

	if err := l.folders.Save(ctx, folder); err != nil {
		return nil, l.fail(op, err)
	}

	l.commit(func() {
		l.folderList = append(l.folderList, folder)
	})
	l.logger.Debug().Str("id", folder.ID).Str("parent", domain.IDOrEmpty(parentID)).Msg("folder created")

	out := folder.Clone()
	return &out, nil
}

// RenameFolder changes a folder's name; parent and creation time are kept
func (l *Library) RenameFolder(ctx context.Context, id, newName string) (*domain.Folder, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "rename folder"

	idx := l.folderIndex(id)
	if idx < 0 {
		return nil, l.fail(op, &NotFoundError{Kind: "folder", ID: id})
	}

	newName = domain.NormalizeName(newName)
	if err := ValidateRequired("name", newName); err != nil {
		return nil, l.fail(op, err)
	}

	renamed := l.folderList[idx].Clone()
	renamed.Name = newName
	if err := toValidationError(renamed.Validate()); err != nil {
		return nil, l.fail(op, err)
	}

	if err := l.folders.Save(ctx, renamed); err != nil {
		return nil, l.fail(op, err)
	}

	l.commit(func() {
		l.folderList[idx] = renamed
	})
	l.logger.Debug().Str("id", id).Str("name", newName).Msg("folder renamed")

	out := renamed.Clone()
	return &out, nil
}

// MoveFolder re-parents a folder (nil = root). Moving a folder into itself
// or into one of its descendants fails with a MoveError.
func (l *Library) MoveFolder(ctx context.Context, id string, parentID *string) (*domain.Folder, error) {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "move folder"

	idx := l.folderIndex(id)
	if idx < 0 {
		return nil, l.fail(op, &NotFoundError{Kind: "folder", ID: id})
	}

	if parentID != nil {
		if *parentID == id {
			return nil, l.fail(op, &MoveError{SourceID: id, DestID: *parentID, Reason: "a folder cannot contain itself"})
		}
		if err := l.requireFolder(parentID); err != nil {
			return nil, l.fail(op, err)
		}
		if domain.IsDescendant(l.folderList, id, *parentID) {
			return nil, l.fail(op, &MoveError{SourceID: id, DestID: *parentID, Reason: "destination is inside the folder being moved"})
		}
	}

	moved := l.folderList[idx].Clone()
	moved.ParentID = domain.CloneID(parentID)

	if err := l.folders.Save(ctx, moved); err != nil {
		return nil, l.fail(op, err)
	}

	l.commit(func() {
		l.folderList[idx] = moved
	})
	l.logger.Debug().Str("id", id).Str("parent", domain.IDOrEmpty(parentID)).Msg("folder moved")

	out := moved.Clone()
	return &out, nil
}

// DeleteFolder removes an empty folder. A folder with any direct child
// folder or rap fails with a NotEmptyError and nothing changes.
func (l *Library) DeleteFolder(ctx context.Context, id string) error {
	l.opMu.Lock()
	defer l.opMu.Unlock()

	const op = "delete folder"

	idx := l.folderIndex(id)
	if idx < 0 {
		return l.fail(op, &NotFoundError{Kind: "folder", ID: id})
	}

	nFolders, nRaps := domain.CountChildren(l.folderList, l.rapList, id)
	if nFolders > 0 || nRaps > 0 {
		return l.fail(op, &NotEmptyError{FolderID: id, Folders: nFolders, Raps: nRaps})
	}

	if err := l.folders.Delete(ctx, id); err != nil {
		return l.fail(op, err)
	}

	l.commit(func() {
		l.folderList = append(l.folderList[:idx:idx], l.folderList[idx+1:]...)
	})
	l.logger.Debug().Str("id", id).Msg("folder deleted")
	return nil
}

// IsLoading reports whether LoadInitialData is in progress
func (l *Library) IsLoading() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loading
}

// IsLoaded reports whether a load has completed successfully
func (l *Library) IsLoaded() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.loaded
}

// LastError returns the error of the most recent failed operation, or nil
// once a later operation succeeds or ClearError is called
func (l *Library) LastError() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lastErr
}

// ClearError forgets the last error
func (l *Library) ClearError() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lastErr = nil
}

// commit applies a successful mutation to memory and clears the last error
func (l *Library) commit(apply func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	apply()
	l.lastErr = nil
}

// fail records err as the last error and returns it
func (l *Library) fail(op string, err error) error {
	l.mu.Lock()
	l.lastErr = err
	l.mu.Unlock()

	ev := l.logger.Warn()
	if errors.Is(err, ErrStorage) {
		ev = l.logger.Error()
	}
	ev.Err(err).Str("op", op).Msg("operation failed")
	return err
}

// requireFolder checks that a referenced folder exists. nil (root) always does.
// Callers must hold opMu.
func (l *Library) requireFolder(id *string) error {
	if id == nil {
		return nil
	}
	if l.folderIndex(*id) < 0 {
		return &NotFoundError{Kind: "folder", ID: *id}
	}
	return nil
}

func (l *Library) rapIndex(id string) int {
	for i := range l.rapList {
		if l.rapList[i].ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) folderIndex(id string) int {
	for i := range l.folderList {
		if l.folderList[i].ID == id {
			return i
		}
	}
	return -1
}
