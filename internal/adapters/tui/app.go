package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"rapbook/internal/adapters/editor"
	"rapbook/internal/adapters/tui/views"
	"rapbook/internal/application"
	"rapbook/internal/application/commands"
	"rapbook/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewCreate
	ViewRename
	ViewMove
	ViewDelete
	ViewSearch
	ViewHelp
)

// App is the main TUI application model
type App struct {
	client *application.Client
	editor ports.EditorOpener
	logger zerolog.Logger

	state   ViewState
	browser *views.BrowserModel
	create  *views.CreateModel
	rename  *views.RenameModel
	move    *views.MoveModel
	delete  *views.DeleteModel
	search  *views.SearchModel
	help    *views.HelpModel

	width  int
	height int
}

// NewApp creates a new TUI application. ed may be nil, which disables editing.
func NewApp(client *application.Client, ed ports.EditorOpener, logger zerolog.Logger) *App {
	return &App{
		client:  client,
		editor:  ed,
		logger:  logger,
		state:   ViewBrowser,
		browser: views.NewBrowserModel(client),
		create:  views.NewCreateModel(client, ed != nil),
		rename:  views.NewRenameModel(client),
		move:    views.NewMoveModel(client),
		delete:  views.NewDeleteModel(client),
		search:  views.NewSearchModel(client),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// State returns the active view
func (a *App) State() ViewState {
	return a.state
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.Update(msg)
		a.create.Update(msg)
		a.rename.Update(msg)
		a.move.Update(msg)
		a.delete.Update(msg)
		a.search.Update(msg)
		a.help.Update(msg)
		return a, nil

	// View switching messages
	case views.SwitchToCreateMsg:
		a.state = ViewCreate
		a.create.SetTarget(msg.Kind, msg.ParentID)
		return a, a.create.Init()

	case views.SwitchToRenameMsg:
		a.state = ViewRename
		a.rename.SetTarget(msg.Node)
		return a, a.rename.Init()

	case views.SwitchToMoveMsg:
		a.state = ViewMove
		a.move.SetSource(msg.Node)
		return a, nil

	case views.SwitchToDeleteMsg:
		a.state = ViewDelete
		a.delete.SetTarget(msg.Node)
		return a, nil

	case views.SwitchToSearchMsg:
		a.state = ViewSearch
		a.search.Reset()
		return a, a.search.Init()

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, a.browser.Reload("")

	case views.ActionDoneMsg:
		a.state = ViewBrowser
		if msg.Message != "" {
			a.logger.Debug().Str("reveal", msg.RevealID).Msg(msg.Message)
			a.browser.SetMessage(msg.Message, false)
		}
		return a, a.browser.Reload(msg.RevealID)

	case views.EditRapMsg:
		a.state = ViewBrowser
		return a, tea.Batch(a.browser.Reload(msg.RapID), a.openEditor(msg.RapID))

	case editorFinishedMsg:
		return a, a.finishEdit(msg)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewCreate:
		_, cmd = a.create.Update(msg)
	case ViewRename:
		_, cmd = a.rename.Update(msg)
	case ViewMove:
		_, cmd = a.move.Update(msg)
	case ViewDelete:
		_, cmd = a.delete.Update(msg)
	case ViewSearch:
		_, cmd = a.search.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct {
	rapID    string
	path     string
	original string
	cleanup  func()
	err      error
}

// openEditor writes the rap to a scratch file and hands the terminal to the
// editor until it exits
func (a *App) openEditor(rapID string) tea.Cmd {
	fail := func(err error) tea.Cmd {
		return func() tea.Msg { return views.ActionErrMsg{Err: err} }
	}

	if a.editor == nil {
		return fail(errors.New("no editor configured: set $EDITOR"))
	}

	rap, err := a.client.GetRap(rapID)
	if err != nil {
		return fail(err)
	}

	path, cleanup, err := editor.WriteScratch(rap.Title, rap.Content)
	if err != nil {
		return fail(err)
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		cleanup()
		return fail(err)
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{rapID: rapID, path: path, original: rap.Content, cleanup: cleanup, err: err}
	})
}

// finishEdit saves the scratch file back into the rap when it changed
func (a *App) finishEdit(msg editorFinishedMsg) tea.Cmd {
	return func() tea.Msg {
		defer msg.cleanup()

		if msg.err != nil {
			return views.ActionErrMsg{Err: fmt.Errorf("editor exited with error: %w", msg.err)}
		}

		content, err := editor.ReadScratch(msg.path)
		if err != nil {
			return views.ActionErrMsg{Err: err}
		}
		if content == msg.original {
			return views.ActionDoneMsg{RevealID: msg.rapID}
		}

		cmd := commands.NewUpdateRapCommand(a.client, msg.rapID)
		cmd.Content = &content
		result, err := cmd.Execute(context.Background())
		if err != nil {
			return views.ActionErrMsg{Err: err}
		}
		return views.ActionDoneMsg{
			Message:  fmt.Sprintf("Saved %q", result.Rap.Title),
			RevealID: msg.rapID,
		}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewCreate:
		return a.create.View()
	case ViewRename:
		return a.rename.View()
	case ViewMove:
		return a.move.View()
	case ViewDelete:
		return a.delete.View()
	case ViewSearch:
		return a.search.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}
