package views

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"rapbook/internal/adapters/memory"
	"rapbook/internal/adapters/storage"
	"rapbook/internal/application"
	"rapbook/internal/domain"
)

func newTestClient(t *testing.T) *application.Client {
	t.Helper()

	adapter := storage.NewAdapter(memory.NewStore(), zerolog.Nop())
	lib := application.NewLibrary(storage.NewRapRepository(adapter), storage.NewFolderRepository(adapter), zerolog.Nop())
	client := application.NewClient(lib)
	if err := client.LoadInitialData(context.Background()); err != nil {
		t.Fatalf("LoadInitialData failed: %v", err)
	}
	return client
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// runCmd runs a command and returns its message, or nil
func runCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// library builds Verses/Hooks with a rap in Hooks and one at root
func library(t *testing.T) (*application.Client, *domain.Folder, *domain.Folder, *domain.Rap) {
	t.Helper()
	ctx := context.Background()
	client := newTestClient(t)

	verses, err := client.CreateFolder(ctx, "Verses", nil)
	if err != nil {
		t.Fatal(err)
	}
	hooks, err := client.CreateFolder(ctx, "Hooks", &verses.ID)
	if err != nil {
		t.Fatal(err)
	}
	rap, err := client.CreateRap(ctx, "Chorus", "hands up\nhands down", &hooks.ID)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := client.CreateRap(ctx, "Loose", "", nil); err != nil {
		t.Fatal(err)
	}
	return client, verses, hooks, rap
}

func loadedBrowser(t *testing.T, client *application.Client) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(client)
	m.Update(runCmd(m.Init()))
	if m.root == nil {
		t.Fatal("expected tree to be loaded")
	}
	return m
}

func TestBrowser_InitialTree(t *testing.T) {
	client, _, _, _ := library(t)
	m := loadedBrowser(t, client)

	// root, Verses (collapsed), Loose
	if len(m.flatNodes) != 3 {
		t.Fatalf("expected 3 visible nodes, got %d", len(m.flatNodes))
	}
	if m.flatNodes[0].Type != domain.NodeRoot || m.flatNodes[0].Name != domain.DefaultRootLabel {
		t.Errorf("expected root row first, got %+v", m.flatNodes[0])
	}
	if m.flatNodes[1].Name != "Verses" || m.flatNodes[2].Name != "Loose" {
		t.Errorf("expected folders before raps, got %s, %s", m.flatNodes[1].Name, m.flatNodes[2].Name)
	}

	view := m.View()
	if !strings.Contains(view, "2 raps in 2 folders") {
		t.Errorf("expected summary line in view:\n%s", view)
	}
}

func TestBrowser_LoadsLibraryOnInit(t *testing.T) {
	adapter := storage.NewAdapter(memory.NewStore(), zerolog.Nop())
	lib := application.NewLibrary(storage.NewRapRepository(adapter), storage.NewFolderRepository(adapter), zerolog.Nop())
	client := application.NewClient(lib)

	m := NewBrowserModel(client)
	if !strings.Contains(m.View(), "Loading") {
		t.Error("expected loading view before data arrives")
	}

	m.Update(m.loadLibrary())
	if !client.IsLoaded() || m.root == nil {
		t.Fatal("expected library loaded")
	}
	if !strings.Contains(m.View(), "Press n to write your first rap") {
		t.Error("expected empty state hint")
	}
}

func TestBrowser_RevealExpandsAncestors(t *testing.T) {
	client, verses, hooks, rap := library(t)
	m := loadedBrowser(t, client)

	if !m.Reveal(rap.ID) {
		t.Fatal("expected rap to be found")
	}
	if got := m.Selected(); got == nil || got.ID != rap.ID {
		t.Fatalf("expected cursor on rap, got %+v", got)
	}
	if !m.root.Find(domain.NodeFolder, verses.ID).IsExpanded || !m.root.Find(domain.NodeFolder, hooks.ID).IsExpanded {
		t.Error("expected ancestors expanded")
	}
	if !strings.Contains(m.View(), "hands up") {
		t.Error("expected preview of the selected rap")
	}
}

func TestBrowser_ReloadKeepsExpansionAndSelection(t *testing.T) {
	client, verses, _, _ := library(t)
	m := loadedBrowser(t, client)

	m.Reveal(verses.ID)
	m.Update(runes("l"))

	if _, err := client.CreateRap(context.Background(), "New", "", nil); err != nil {
		t.Fatal(err)
	}
	m.Update(runCmd(m.Reload("")))

	node := m.root.Find(domain.NodeFolder, verses.ID)
	if !node.IsExpanded {
		t.Error("expected Verses to stay expanded")
	}
	if m.Selected() != node {
		t.Error("expected selection to follow Verses")
	}
}

func TestBrowser_KeysProduceViewSwitches(t *testing.T) {
	client, _, hooks, rap := library(t)
	m := loadedBrowser(t, client)
	m.Reveal(rap.ID)

	msg := runCmd(m.handleKey(runes("n")))
	create, ok := msg.(SwitchToCreateMsg)
	if !ok || create.Kind != domain.IDKindRap || !domain.SameID(create.ParentID, &hooks.ID) {
		t.Errorf("expected new rap in Hooks, got %#v", msg)
	}

	msg = runCmd(m.handleKey(runes("N")))
	if create, ok := msg.(SwitchToCreateMsg); !ok || create.Kind != domain.IDKindFolder {
		t.Errorf("expected new folder, got %#v", msg)
	}

	if _, ok := runCmd(m.handleKey(tea.KeyMsg{Type: tea.KeyEnter})).(EditRapMsg); !ok {
		t.Error("expected enter on a rap to edit it")
	}
	if _, ok := runCmd(m.handleKey(runes("m"))).(SwitchToMoveMsg); !ok {
		t.Error("expected move")
	}
	if _, ok := runCmd(m.handleKey(runes("d"))).(SwitchToDeleteMsg); !ok {
		t.Error("expected delete")
	}

	m.cursor = 0 // root row
	if msg := runCmd(m.handleKey(runes("d"))); msg != nil {
		t.Errorf("expected root to be undeletable, got %#v", msg)
	}
	msg = runCmd(m.handleKey(runes("n")))
	if create, ok := msg.(SwitchToCreateMsg); !ok || create.ParentID != nil {
		t.Errorf("expected new rap at root, got %#v", msg)
	}
}

func TestBrowser_ErrorsShowInlineAndClear(t *testing.T) {
	client, _, _, _ := library(t)
	m := loadedBrowser(t, client)

	m.Update(ActionErrMsg{Err: &application.NotEmptyError{FolderID: "folder_1", Raps: 2}})
	if !m.MessageErr || !strings.Contains(m.View(), "not empty") {
		t.Errorf("expected inline error, got %q", m.Message)
	}

	m.Update(runes("j"))
	if m.Message != "" {
		t.Error("expected message cleared on key press")
	}
	if client.LastError() != nil {
		t.Error("expected library error cleared")
	}
}

func TestMoveModel_ExcludesSubtreeAndMoves(t *testing.T) {
	client, verses, hooks, rap := library(t)
	ctx := context.Background()
	other, _ := client.CreateFolder(ctx, "Other", nil)

	m := NewMoveModel(client)
	m.SetSource(&domain.TreeNode{Type: domain.NodeFolder, ID: verses.ID, Name: "Verses"})

	for _, o := range m.options {
		if domain.SameID(o.ID, &verses.ID) || domain.SameID(o.ID, &hooks.ID) {
			t.Errorf("expected %s to be excluded", o.Name)
		}
	}
	if opt, _ := m.Selected(); !opt.IsRoot {
		t.Errorf("expected cursor on current location (root), got %+v", opt)
	}

	m.SetSource(&domain.TreeNode{Type: domain.NodeRap, ID: rap.ID, Name: "Chorus"})
	if opt, _ := m.Selected(); !domain.SameID(opt.ID, &hooks.ID) {
		t.Fatalf("expected cursor on Hooks, got %+v", opt)
	}
	if _, ok := runCmd(m.move()).(SwitchToBrowserMsg); !ok {
		t.Error("expected moving to the current folder to be a no-op")
	}

	for i, o := range m.options {
		if domain.SameID(o.ID, &other.ID) {
			m.paginator.SetCursor(i)
		}
	}

	msg := runCmd(m.move())
	done, ok := msg.(ActionDoneMsg)
	if !ok {
		t.Fatalf("expected ActionDoneMsg, got %#v", msg)
	}
	if done.RevealID != rap.ID || !strings.Contains(done.Message, "Other") {
		t.Errorf("unexpected done message: %+v", done)
	}
	if moved, _ := client.GetRap(rap.ID); !domain.SameID(moved.FolderID, &other.ID) {
		t.Error("expected rap in Other")
	}
}

func TestDeleteModel_NonEmptyFolder(t *testing.T) {
	client, verses, _, _ := library(t)

	m := NewDeleteModel(client)
	m.SetTarget(&domain.TreeNode{Type: domain.NodeFolder, ID: verses.ID, Name: "Verses"})

	if !strings.Contains(m.View(), "Holds 1 folders and 0 raps") {
		t.Errorf("expected contents warning:\n%s", m.View())
	}

	_, cmd := m.Update(runes("y"))
	msg := runCmd(cmd)
	errMsg, ok := msg.(ActionErrMsg)
	if !ok || !errors.Is(errMsg.Err, application.ErrNotEmpty) {
		t.Fatalf("expected not-empty error, got %#v", msg)
	}

	m.Update(errMsg)
	if !m.MessageErr {
		t.Error("expected inline error")
	}
	if _, err := client.GetFolder(verses.ID); err != nil {
		t.Error("expected folder to survive")
	}
}

func TestCreateModel_CreatesFolder(t *testing.T) {
	client, verses, _, _ := library(t)

	m := NewCreateModel(client, false)
	m.SetTarget(domain.IDKindFolder, &verses.ID)
	m.Update(runes("Bridges"))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := runCmd(cmd)
	done, ok := msg.(ActionDoneMsg)
	if !ok {
		t.Fatalf("expected ActionDoneMsg, got %#v", msg)
	}

	folder, err := client.GetFolder(done.RevealID)
	if err != nil {
		t.Fatal(err)
	}
	if folder.Name != "Bridges" || !domain.SameID(folder.ParentID, &verses.ID) {
		t.Errorf("unexpected folder: %+v", folder)
	}
}

func TestCreateModel_RapOpensEditor(t *testing.T) {
	client := newTestClient(t)

	m := NewCreateModel(client, true)
	m.SetTarget(domain.IDKindRap, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := runCmd(cmd)
	edit, ok := msg.(EditRapMsg)
	if !ok {
		t.Fatalf("expected EditRapMsg, got %#v", msg)
	}
	rap, err := client.GetRap(edit.RapID)
	if err != nil {
		t.Fatal(err)
	}
	if rap.Title != domain.DefaultRapTitle {
		t.Errorf("expected default title, got %q", rap.Title)
	}
}

func TestRenameModel_Prefilled(t *testing.T) {
	client, verses, _, _ := library(t)

	m := NewRenameModel(client)
	m.SetTarget(&domain.TreeNode{Type: domain.NodeFolder, ID: verses.ID, Name: "Verses"})
	if m.form.Value() != "Verses" {
		t.Fatalf("expected current name prefilled, got %q", m.form.Value())
	}

	m.Update(runes("!"))
	msg := runCmd(m.rename())
	if _, ok := msg.(ActionDoneMsg); !ok {
		t.Fatalf("expected ActionDoneMsg, got %#v", msg)
	}
	if f, _ := client.GetFolder(verses.ID); f.Name != "Verses!" {
		t.Errorf("expected renamed folder, got %q", f.Name)
	}
}

func TestSearchModel_ResultsAndSelect(t *testing.T) {
	client, _, _, rap := library(t)

	m := NewSearchModel(client)
	_, cmd := m.Update(runes("hands"))

	var results searchResultsMsg
	for _, msg := range batch(cmd) {
		if r, ok := msg.(searchResultsMsg); ok {
			results = r
		}
	}
	m.Update(results)

	if len(m.results) != 1 || m.results[0].Rap.ID != rap.ID {
		t.Fatalf("expected the chorus, got %+v", m.results)
	}
	if !strings.Contains(m.View(), "Verses / Hooks") {
		t.Error("expected folder path in results")
	}

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if done, ok := runCmd(cmd).(ActionDoneMsg); !ok || done.RevealID != rap.ID {
		t.Errorf("expected reveal of the rap, got %#v", done)
	}

	m.Update(searchResultsMsg{query: "stale"})
	if len(m.results) != 1 {
		t.Error("expected stale results to be dropped")
	}
}

// batch runs a possibly batched command and collects its messages
func batch(cmd tea.Cmd) []tea.Msg {
	msg := runCmd(cmd)
	if b, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range b {
			out = append(out, batch(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestErrorText(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"not empty", &application.NotEmptyError{Folders: 1, Raps: 2}, "Folder is not empty (1 folders, 2 raps)"},
		{"move", fmtErr(&application.MoveError{SourceID: "folder_1", Reason: "cycle"}), "Can't move there: cycle"},
		{"validation", &application.ValidationError{Field: "name", Message: "folder name is required"}, "folder name is required"},
		{"storage", &application.StorageError{Op: "set", Err: errors.New("disk full")}, "Couldn't save: disk full"},
		{"not found", &application.NotFoundError{Kind: "rap", ID: "rap_1"}, "It no longer exists."},
		{"other", errors.New("boom"), "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorText(tt.err); !strings.HasPrefix(got, tt.want) {
				t.Errorf("ErrorText() = %q, want prefix %q", got, tt.want)
			}
		})
	}
}

func fmtErr(err error) error {
	return errors.Join(errors.New("failed to move"), err)
}

func TestHighlight(t *testing.T) {
	out := highlight("hands UP high", "up")
	if !strings.Contains(out, "UP") {
		t.Errorf("expected original casing kept, got %q", out)
	}
	if got := highlight("no match", "zzz"); !strings.Contains(got, "no match") {
		t.Errorf("expected text kept, got %q", got)
	}
}

func TestPaginator(t *testing.T) {
	p := NewPaginator(3)
	p.SetTotal(7)

	if p.TotalPages() != 3 {
		t.Errorf("expected 3 pages, got %d", p.TotalPages())
	}
	for range 4 {
		p.CursorDown()
	}
	if p.Cursor() != 4 || p.CurrentPage() != 2 {
		t.Errorf("expected cursor 4 on page 2, got %d on %d", p.Cursor(), p.CurrentPage())
	}
	start, end := p.VisibleRange()
	if start != 3 || end != 6 {
		t.Errorf("expected range 3-6, got %d-%d", start, end)
	}

	if !p.NextPage() || p.Cursor() != 6 {
		t.Errorf("expected next page to start at 6, got %d", p.Cursor())
	}
	if p.NextPage() {
		t.Error("expected no page after the last")
	}
	if !p.PrevPage() || p.Cursor() != 3 {
		t.Errorf("expected previous page to start at 3, got %d", p.Cursor())
	}
	p.SetCursor(4)

	p.SetPageSize(10)
	if p.TotalPages() != 1 || p.CurrentPage() != 1 {
		t.Errorf("expected one page after resize, got %d/%d", p.CurrentPage(), p.TotalPages())
	}

	p.SetTotal(2)
	if p.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1, got %d", p.Cursor())
	}
}
