package application_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"rapbook/internal/adapters/memory"
	"rapbook/internal/adapters/storage"
	"rapbook/internal/application"
	"rapbook/internal/domain"
)

var errDiskFull = errors.New("disk full")

// flakyStore wraps a memory store and fails on demand
type flakyStore struct {
	*memory.Store
	failGet atomic.Bool
	failSet atomic.Bool
}

func (s *flakyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.failGet.Load() {
		return nil, false, errDiskFull
	}
	return s.Store.Get(ctx, key)
}

func (s *flakyStore) Set(ctx context.Context, key string, value []byte) error {
	if s.failSet.Load() {
		return errDiskFull
	}
	return s.Store.Set(ctx, key, value)
}

func (s *flakyStore) Remove(ctx context.Context, key string) error {
	if s.failSet.Load() {
		return errDiskFull
	}
	return s.Store.Remove(ctx, key)
}

// clock hands out strictly increasing times
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

func newClient(t *testing.T, store *flakyStore) *application.Client {
	t.Helper()

	adapter := storage.NewAdapter(store, zerolog.Nop())
	lib := application.NewLibrary(storage.NewRapRepository(adapter), storage.NewFolderRepository(adapter), zerolog.Nop())
	c := &clock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	application.SetClock(lib, c.Now)

	client := application.NewClient(lib)
	if err := client.LoadInitialData(context.Background()); err != nil {
		t.Fatalf("LoadInitialData failed: %v", err)
	}
	return client
}

func setupClient(t *testing.T) (*application.Client, *flakyStore) {
	t.Helper()
	store := &flakyStore{Store: memory.NewStore()}
	return newClient(t, store), store
}

func ptr(s string) *string { return &s }

func mustFolder(t *testing.T, c *application.Client, name string, parent *string) *domain.Folder {
	t.Helper()
	f, err := c.CreateFolder(context.Background(), name, parent)
	if err != nil {
		t.Fatalf("CreateFolder(%q) failed: %v", name, err)
	}
	return f
}

func mustRap(t *testing.T, c *application.Client, title string, folder *string) *domain.Rap {
	t.Helper()
	r, err := c.CreateRap(context.Background(), title, "content of "+title, folder)
	if err != nil {
		t.Fatalf("CreateRap(%q) failed: %v", title, err)
	}
	return r
}

func TestCreateRap_Defaults(t *testing.T) {
	client, _ := setupClient(t)

	rap, err := client.CreateRap(context.Background(), "", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rap.Title != domain.DefaultRapTitle {
		t.Errorf("expected title %q, got %q", domain.DefaultRapTitle, rap.Title)
	}
	if rap.Content != "" {
		t.Errorf("expected empty content, got %q", rap.Content)
	}
	if rap.FolderID != nil {
		t.Errorf("expected root rap, got folder %s", *rap.FolderID)
	}
	if !rap.CreatedAt.Equal(rap.UpdatedAt) {
		t.Errorf("expected createdAt == updatedAt on creation")
	}
	if domain.ParseIDKind(rap.ID) != domain.IDKindRap {
		t.Errorf("expected rap ID, got %s", rap.ID)
	}
}

func TestCreateRap_TrimsTitle(t *testing.T) {
	client, _ := setupClient(t)

	rap := mustRap(t, client, "  Intro  ", nil)
	if rap.Title != "Intro" {
		t.Errorf("expected trimmed title, got %q", rap.Title)
	}
}

func TestCreateRap_UniqueIDs(t *testing.T) {
	client, _ := setupClient(t)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		rap := mustRap(t, client, "t", nil)
		if seen[rap.ID] {
			t.Fatalf("duplicate id %s", rap.ID)
		}
		seen[rap.ID] = true
	}
}

func TestCreateRap_Validation(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		title   string
		content string
		folder  *string
		target  error
	}{
		{"title too long", strings.Repeat("a", domain.MaxTitleLength+1), "", nil, application.ErrValidation},
		{"content too long", "ok", strings.Repeat("a", domain.MaxContentLength+1), nil, application.ErrValidation},
		{"unknown folder", "ok", "", ptr("folder_missing"), application.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.CreateRap(ctx, tt.title, tt.content, tt.folder)
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if client.LastError() == nil {
				t.Error("expected last error to be recorded")
			}
			if len(client.Raps()) != 0 {
				t.Error("failed create must not add a rap")
			}
		})
	}
}

func TestCreateRap_StorageFailure(t *testing.T) {
	client, store := setupClient(t)

	store.failSet.Store(true)
	_, err := client.CreateRap(context.Background(), "Intro", "", nil)

	if !errors.Is(err, application.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if !errors.Is(err, errDiskFull) {
		t.Errorf("expected cause to be preserved, got %v", err)
	}
	if len(client.Raps()) != 0 {
		t.Error("in-memory state must not change when persistence fails")
	}
	if !errors.Is(client.LastError(), application.ErrStorage) {
		t.Errorf("expected last error to be the storage error, got %v", client.LastError())
	}
}

func TestUpdateRap(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()
	folder := mustFolder(t, client, "Verses", nil)
	rap := mustRap(t, client, "Intro", nil)

	newContent := "new bars"
	tags := []string{"final"}
	updated, err := client.UpdateRap(ctx, rap.ID, application.RapUpdate{
		Content: &newContent,
		Folder:  application.MoveTo(&folder.ID),
		Tags:    &tags,
	})
	if err != nil {
		t.Fatalf("UpdateRap failed: %v", err)
	}

	if updated.Title != "Intro" {
		t.Errorf("expected title to be untouched, got %q", updated.Title)
	}
	if updated.Content != newContent {
		t.Errorf("expected content %q, got %q", newContent, updated.Content)
	}
	if !domain.SameID(updated.FolderID, &folder.ID) {
		t.Errorf("expected rap to move into %s", folder.ID)
	}
	if !updated.UpdatedAt.After(rap.UpdatedAt) {
		t.Error("expected updatedAt to be refreshed")
	}
	if !updated.CreatedAt.Equal(rap.CreatedAt) {
		t.Error("expected createdAt to be preserved")
	}

	got, err := client.GetRap(rap.ID)
	if err != nil {
		t.Fatalf("GetRap failed: %v", err)
	}
	if got.Content != newContent || len(got.Tags) != 1 {
		t.Errorf("in-memory rap not updated: %+v", got)
	}
}

func TestUpdateRap_BlankTitleFallsBackToDefault(t *testing.T) {
	client, _ := setupClient(t)
	rap := mustRap(t, client, "Intro", nil)

	blank := "   "
	updated, err := client.UpdateRap(context.Background(), rap.ID, application.RapUpdate{Title: &blank})
	if err != nil {
		t.Fatalf("UpdateRap failed: %v", err)
	}
	if updated.Title != domain.DefaultRapTitle {
		t.Errorf("expected %q, got %q", domain.DefaultRapTitle, updated.Title)
	}
}

func TestUpdateRap_NotFound(t *testing.T) {
	client, _ := setupClient(t)

	title := "x"
	_, err := client.UpdateRap(context.Background(), "rap_missing", application.RapUpdate{Title: &title})

	var nfErr *application.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nfErr.Kind != "rap" || nfErr.ID != "rap_missing" {
		t.Errorf("unexpected error details: %+v", nfErr)
	}
}

func TestUpdateRap_StorageFailureKeepsMemory(t *testing.T) {
	client, store := setupClient(t)
	rap := mustRap(t, client, "Intro", nil)

	store.failSet.Store(true)
	title := "Changed"
	if _, err := client.UpdateRap(context.Background(), rap.ID, application.RapUpdate{Title: &title}); err == nil {
		t.Fatal("expected error")
	}

	got, _ := client.GetRap(rap.ID)
	if got.Title != "Intro" || !got.UpdatedAt.Equal(rap.UpdatedAt) {
		t.Errorf("in-memory rap changed after failed update: %+v", got)
	}
}

func TestMutations_StorageFailureKeepsMemory(t *testing.T) {
	tests := []struct {
		name string
		run  func(ctx context.Context, c *application.Client, rap *domain.Rap, a, b, empty *domain.Folder) error
	}{
		{
			name: "delete rap",
			run: func(ctx context.Context, c *application.Client, rap *domain.Rap, _, _, _ *domain.Folder) error {
				return c.DeleteRap(ctx, rap.ID)
			},
		},
		{
			name: "create folder",
			run: func(ctx context.Context, c *application.Client, _ *domain.Rap, _, _, _ *domain.Folder) error {
				_, err := c.CreateFolder(ctx, "Bridges", nil)
				return err
			},
		},
		{
			name: "rename folder",
			run: func(ctx context.Context, c *application.Client, _ *domain.Rap, a, _, _ *domain.Folder) error {
				_, err := c.RenameFolder(ctx, a.ID, "Renamed")
				return err
			},
		},
		{
			name: "delete folder",
			run: func(ctx context.Context, c *application.Client, _ *domain.Rap, _, _, empty *domain.Folder) error {
				return c.DeleteFolder(ctx, empty.ID)
			},
		},
		{
			name: "move rap",
			run: func(ctx context.Context, c *application.Client, rap *domain.Rap, a, _, _ *domain.Folder) error {
				_, err := c.MoveRap(ctx, rap.ID, &a.ID)
				return err
			},
		},
		{
			name: "move folder",
			run: func(ctx context.Context, c *application.Client, _ *domain.Rap, a, b, _ *domain.Folder) error {
				_, err := c.MoveFolder(ctx, b.ID, &a.ID)
				return err
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, store := setupClient(t)
			ctx := context.Background()

			a := mustFolder(t, client, "Verses", nil)
			b := mustFolder(t, client, "Hooks", nil)
			empty := mustFolder(t, client, "Empty", nil)
			rap := mustRap(t, client, "Intro", nil)

			raps, folders := client.Raps(), client.Folders()

			store.failSet.Store(true)
			err := tt.run(ctx, client, rap, a, b, empty)

			if !errors.Is(err, application.ErrStorage) {
				t.Fatalf("expected storage error, got %v", err)
			}
			if !errors.Is(err, errDiskFull) {
				t.Errorf("expected cause to be preserved, got %v", err)
			}
			if !reflect.DeepEqual(client.Raps(), raps) {
				t.Errorf("raps changed after failed write:\ngot  %+v\nwant %+v", client.Raps(), raps)
			}
			if !reflect.DeepEqual(client.Folders(), folders) {
				t.Errorf("folders changed after failed write:\ngot  %+v\nwant %+v", client.Folders(), folders)
			}
			if !errors.Is(client.LastError(), application.ErrStorage) {
				t.Errorf("expected last error to be the storage error, got %v", client.LastError())
			}
		})
	}
}

func TestDeleteRap(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()
	keep := mustRap(t, client, "Keep", nil)
	drop := mustRap(t, client, "Drop", nil)

	if err := client.DeleteRap(ctx, drop.ID); err != nil {
		t.Fatalf("DeleteRap failed: %v", err)
	}

	raps := client.Raps()
	if len(raps) != 1 || raps[0].ID != keep.ID {
		t.Errorf("expected only %s to remain, got %+v", keep.ID, raps)
	}

	if err := client.DeleteRap(ctx, drop.ID); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected deleting twice to report not found, got %v", err)
	}
}

func TestCreateFolder(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		input   string
		parent  *string
		want    string
		wantErr error
	}{
		{name: "trims name", input: "  Verses  ", want: "Verses"},
		{name: "empty name", input: "", wantErr: application.ErrValidation},
		{name: "whitespace name", input: "   ", wantErr: application.ErrValidation},
		{name: "name too long", input: strings.Repeat("x", domain.MaxFolderNameLength+1), wantErr: application.ErrValidation},
		{name: "unknown parent", input: "Drafts", parent: ptr("folder_missing"), wantErr: application.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(client.Folders())
			folder, err := client.CreateFolder(ctx, tt.input, tt.parent)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(client.Folders()) != before {
					t.Error("failed create must not add a folder")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if folder.Name != tt.want {
				t.Errorf("expected name %q, got %q", tt.want, folder.Name)
			}
		})
	}
}

func TestRenameFolder(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()
	parent := mustFolder(t, client, "Verses", nil)
	folder := mustFolder(t, client, "Drafts", &parent.ID)

	renamed, err := client.RenameFolder(ctx, folder.ID, "  Finished ")
	if err != nil {
		t.Fatalf("RenameFolder failed: %v", err)
	}
	if renamed.Name != "Finished" {
		t.Errorf("expected Finished, got %q", renamed.Name)
	}
	if !domain.SameID(renamed.ParentID, &parent.ID) || !renamed.CreatedAt.Equal(folder.CreatedAt) {
		t.Error("rename must keep parent and createdAt")
	}

	_, err = client.RenameFolder(ctx, folder.ID, "  ")
	if !errors.Is(err, application.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	got, _ := client.GetFolder(folder.ID)
	if got.Name != "Finished" {
		t.Errorf("name changed after failed rename: %q", got.Name)
	}

	if _, err := client.RenameFolder(ctx, "folder_missing", "x"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDeleteFolder_NotEmpty(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()

	withFolder := mustFolder(t, client, "Parent", nil)
	mustFolder(t, client, "Child", &withFolder.ID)
	withRap := mustFolder(t, client, "Holder", nil)
	mustRap(t, client, "Intro", &withRap.ID)

	for _, id := range []string{withFolder.ID, withRap.ID} {
		folders, raps := len(client.Folders()), len(client.Raps())

		for attempt := 0; attempt < 2; attempt++ {
			err := client.DeleteFolder(ctx, id)
			if !errors.Is(err, application.ErrNotEmpty) {
				t.Fatalf("expected not-empty error, got %v", err)
			}
		}

		if len(client.Folders()) != folders || len(client.Raps()) != raps {
			t.Error("rejected delete must not change any collection")
		}
	}

	var neErr *application.NotEmptyError
	if err := client.DeleteFolder(ctx, withRap.ID); !errors.As(err, &neErr) || neErr.Raps != 1 || neErr.Folders != 0 {
		t.Errorf("expected counts in error, got %v", err)
	}
}

func TestDeleteFolder_NotFound(t *testing.T) {
	client, _ := setupClient(t)

	if err := client.DeleteFolder(context.Background(), "folder_missing"); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestMoveRap(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()
	f1 := mustFolder(t, client, "One", nil)
	f2 := mustFolder(t, client, "Two", nil)
	rap := mustRap(t, client, "Intro", &f1.ID)

	moved, err := client.MoveRap(ctx, rap.ID, &f2.ID)
	if err != nil {
		t.Fatalf("MoveRap failed: %v", err)
	}
	if !moved.UpdatedAt.After(rap.UpdatedAt) {
		t.Error("expected move to refresh updatedAt")
	}

	if !containsRap(client.ListChildren(&f2.ID), rap.ID) {
		t.Error("expected rap in destination folder")
	}
	if containsRap(client.ListChildren(&f1.ID), rap.ID) {
		t.Error("expected rap to leave its original folder")
	}

	if _, err := client.MoveRap(ctx, rap.ID, nil); err != nil {
		t.Fatalf("MoveRap to root failed: %v", err)
	}
	if !containsRap(client.ListChildren(nil), rap.ID) {
		t.Error("expected rap at root")
	}

	if _, err := client.MoveRap(ctx, rap.ID, ptr("folder_missing")); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected not found for unknown destination, got %v", err)
	}
	if _, err := client.MoveRap(ctx, "rap_missing", nil); !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected not found for unknown rap, got %v", err)
	}
}

func TestMoveFolder(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()
	a := mustFolder(t, client, "A", nil)
	b := mustFolder(t, client, "B", &a.ID)
	c := mustFolder(t, client, "C", &b.ID)
	d := mustFolder(t, client, "D", nil)

	tests := []struct {
		name    string
		id      string
		dest    *string
		wantErr error
	}{
		{"into itself", a.ID, &a.ID, application.ErrInvalidMove},
		{"into a child", a.ID, &b.ID, application.ErrInvalidMove},
		{"into a grandchild", a.ID, &c.ID, application.ErrInvalidMove},
		{"into unknown folder", a.ID, ptr("folder_missing"), application.ErrNotFound},
		{"unknown folder", "folder_missing", nil, application.ErrNotFound},
		{"into a sibling", a.ID, &d.ID, nil},
		{"back to root", a.ID, nil, nil},
		{"grandchild to root", c.ID, nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moved, err := client.MoveFolder(ctx, tt.id, tt.dest)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !domain.SameID(moved.ParentID, tt.dest) {
				t.Errorf("expected parent %v, got %v", tt.dest, moved.ParentID)
			}
		})
	}

	// the tree must still be acyclic: every folder reachable from the root
	options := client.FolderOptions(nil, "")
	if len(options) != 5 {
		t.Errorf("expected root plus 4 folders, got %d options", len(options))
	}
}

func TestMoveFolder_CycleIsValidationError(t *testing.T) {
	client, _ := setupClient(t)
	a := mustFolder(t, client, "A", nil)
	b := mustFolder(t, client, "B", &a.ID)

	_, err := client.MoveFolder(context.Background(), a.ID, &b.ID)

	var moveErr *application.MoveError
	if !errors.As(err, &moveErr) {
		t.Fatalf("expected MoveError, got %T", err)
	}
	if !errors.Is(err, application.ErrValidation) {
		t.Error("expected MoveError to count as a validation error")
	}
	got, _ := client.GetFolder(a.ID)
	if got.ParentID != nil {
		t.Error("rejected move must not change the folder")
	}
}

func TestFolderOptions_ExcludesMovedSubtree(t *testing.T) {
	client, _ := setupClient(t)
	a := mustFolder(t, client, "A", nil)
	b := mustFolder(t, client, "B", &a.ID)
	mustFolder(t, client, "C", &b.ID)

	options := client.FolderOptions(&a.ID, "")

	if len(options) != 1 || !options[0].IsRoot || options[0].Name != domain.DefaultRootLabel {
		t.Errorf("expected only the root option, got %+v", options)
	}
}

func TestScenario_DeleteGuardUsesDirectChildren(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()

	verses := mustFolder(t, client, "Verses", nil)
	drafts := mustFolder(t, client, "Drafts", &verses.ID)
	intro := mustRap(t, client, "Intro", &drafts.ID)

	var neErr *application.NotEmptyError
	if err := client.DeleteFolder(ctx, verses.ID); !errors.As(err, &neErr) {
		t.Fatalf("expected NotEmptyError, got %v", err)
	}
	if neErr.Folders != 1 || neErr.Raps != 0 {
		t.Errorf("expected the guard to count only direct children, got %+v", neErr)
	}

	steps := []struct {
		name string
		run  func() error
	}{
		{"delete Intro", func() error { return client.DeleteRap(ctx, intro.ID) }},
		{"delete Drafts", func() error { return client.DeleteFolder(ctx, drafts.ID) }},
		{"delete Verses", func() error { return client.DeleteFolder(ctx, verses.ID) }},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			t.Fatalf("%s failed: %v", step.name, err)
		}
	}

	if len(client.Folders()) != 0 || len(client.Raps()) != 0 {
		t.Error("expected an empty library")
	}
	if client.LastError() != nil {
		t.Errorf("expected last error to be cleared, got %v", client.LastError())
	}
}

func TestLoadInitialData(t *testing.T) {
	store := &flakyStore{Store: memory.NewStore()}
	first := newClient(t, store)
	folder := mustFolder(t, first, "Verses", nil)
	rap := mustRap(t, first, "Intro", &folder.ID)

	second := newClient(t, store)

	if !second.IsLoaded() || second.IsLoading() {
		t.Error("expected loaded state after LoadInitialData")
	}
	got, err := second.GetRap(rap.ID)
	if err != nil {
		t.Fatalf("expected rap to be loaded: %v", err)
	}
	if got.Title != rap.Title || !domain.SameID(got.FolderID, rap.FolderID) || !got.CreatedAt.Equal(rap.CreatedAt) {
		t.Errorf("loaded rap differs: %+v vs %+v", got, rap)
	}
	if _, err := second.GetFolder(folder.ID); err != nil {
		t.Errorf("expected folder to be loaded: %v", err)
	}
}

func TestLoadInitialData_FailureKeepsState(t *testing.T) {
	client, store := setupClient(t)
	mustRap(t, client, "Intro", nil)

	store.failGet.Store(true)
	err := client.LoadInitialData(context.Background())

	if !errors.Is(err, application.ErrStorage) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if client.IsLoading() {
		t.Error("expected loading flag to be reset")
	}
	if len(client.Raps()) != 1 {
		t.Error("failed load must not replace in-memory state")
	}
	if client.LastError() == nil {
		t.Error("expected last error to be recorded")
	}

	store.failGet.Store(false)
	if err := client.LoadInitialData(context.Background()); err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if client.LastError() != nil {
		t.Error("expected successful load to clear the error")
	}
}

func TestLastError_ClearError(t *testing.T) {
	client, _ := setupClient(t)

	_, _ = client.CreateFolder(context.Background(), "", nil)
	if client.LastError() == nil {
		t.Fatal("expected last error")
	}

	client.ClearError()
	if client.LastError() != nil {
		t.Error("expected ClearError to reset the error")
	}
}

func TestFolderContents_Sorted(t *testing.T) {
	client, _ := setupClient(t)
	mustFolder(t, client, "beta", nil)
	mustFolder(t, client, "Alpha", nil)
	older := mustRap(t, client, "Older", nil)
	newer := mustRap(t, client, "Newer", nil)

	contents := client.FolderContents(nil)
	if contents.Folders[0].Name != "Alpha" || contents.Folders[1].Name != "beta" {
		t.Errorf("expected folders by name, got %+v", contents.Folders)
	}
	if contents.Raps[0].ID != newer.ID || contents.Raps[1].ID != older.ID {
		t.Error("expected raps newest first")
	}

	recent := client.RecentRaps(1)
	if len(recent) != 1 || recent[0].ID != newer.ID {
		t.Errorf("expected newest rap, got %+v", recent)
	}
}

func TestSearch(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()
	folder := mustFolder(t, client, "Verses", nil)

	_, _ = client.CreateRap(ctx, "Midnight", "city lights and empty streets", &folder.ID)
	_, _ = client.CreateRap(ctx, "Hook", "we ride at MIDNIGHT again", nil)
	_, _ = client.CreateRap(ctx, "Other", "nothing here", nil)

	results := client.Search("midnight")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].TitleMatch || results[0].Path != "Verses" {
		t.Errorf("expected title match in Verses first, got %+v", results[0])
	}
	if results[1].TitleMatch || !strings.Contains(results[1].Snippet, "MIDNIGHT") {
		t.Errorf("expected content match with snippet, got %+v", results[1])
	}

	if client.Search("   ") != nil {
		t.Error("expected blank query to return nothing")
	}
}

func TestSearch_TitleAndContentFoldAlike(t *testing.T) {
	client, _ := setupClient(t)
	ctx := context.Background()

	// U+017F folds to "s" but has no lowercase mapping to it
	_, _ = client.CreateRap(ctx, "Mi\u017Fter", "", nil)
	_, _ = client.CreateRap(ctx, "Plain", "the mi\u017Fter line", nil)

	results := client.Search("MISTER")
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !results[0].TitleMatch || results[0].Rap.Title != "Mi\u017Fter" {
		t.Errorf("expected folded title match first, got %+v", results[0])
	}
	if results[1].TitleMatch || !strings.Contains(results[1].Snippet, "mi\u017Fter") {
		t.Errorf("expected folded content match with snippet, got %+v", results[1])
	}
}

func TestConcurrentOperations(t *testing.T) {
	client, store := setupClient(t)
	ctx := context.Background()
	folder := mustFolder(t, client, "Shared", nil)

	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := client.CreateRap(ctx, "t", "", &folder.ID); err != nil {
				t.Errorf("CreateRap failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := client.CreateFolder(ctx, "f", &folder.ID); err != nil {
				t.Errorf("CreateFolder failed: %v", err)
			}
		}()
	}
	wg.Wait()

	folders, raps := client.ChildCounts(folder.ID)
	if folders != 25 || raps != 25 {
		t.Errorf("expected 25 folders and 25 raps, got %d and %d", folders, raps)
	}

	// Nothing may be lost in storage either
	reloaded := newClient(t, store)
	folders, raps = reloaded.ChildCounts(folder.ID)
	if folders != 25 || raps != 25 {
		t.Errorf("expected 25 folders and 25 raps after reload, got %d and %d", folders, raps)
	}
}

func containsRap(children domain.Children, id string) bool {
	for _, r := range children.Raps {
		if r.ID == id {
			return true
		}
	}
	return false
}
