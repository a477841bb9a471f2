package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rapbook/internal/adapters/tui/styles"
	"rapbook/internal/application"
	"rapbook/internal/application/commands"
	"rapbook/internal/domain"
)

// PickerKeyMap defines key bindings for list pickers
type PickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Submit   key.Binding
	Cancel   key.Binding
}

var PickerKeys = PickerKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "prev page"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "next page"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "move here"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "q"),
		key.WithHelp("esc", "cancel"),
	),
}

const pickerPageSize = 15

// MoveModel lets the user pick a destination folder for a rap or folder
type MoveModel struct {
	ViewState
	client    *application.Client
	source    *domain.TreeNode
	currentID *string // where the source lives now
	options   []domain.FolderOption
	paginator *Paginator
}

// NewMoveModel creates a new move view model
func NewMoveModel(client *application.Client) *MoveModel {
	return &MoveModel{
		client:    client,
		paginator: NewPaginator(pickerPageSize),
	}
}

// SetSource loads the destinations valid for node. A folder can't be moved
// into itself or its subfolders, so those are left out of the list.
func (m *MoveModel) SetSource(node *domain.TreeNode) {
	m.source = node
	m.ClearMessage()

	var exclude string
	m.currentID = nil
	switch node.Type {
	case domain.NodeFolder:
		exclude = node.ID
		if f, err := m.client.GetFolder(node.ID); err == nil {
			m.currentID = f.ParentID
		}
	case domain.NodeRap:
		if r, err := m.client.GetRap(node.ID); err == nil {
			m.currentID = r.FolderID
		}
	}

	m.options, _ = commands.NewFolderOptionsCommand(m.client, exclude, "").Execute(context.Background())
	m.paginator.Reset()
	m.paginator.SetTotal(len(m.options))

	// start on the current location
	for i, o := range m.options {
		if domain.SameID(o.ID, m.currentID) {
			m.paginator.SetCursor(i)
			break
		}
	}
}

// Init initializes the move view
func (m *MoveModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the move view
func (m *MoveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.SetPageSize(min(pickerPageSize, max(msg.Height-12, 3)))
		return m, nil

	case ActionErrMsg:
		m.SetMessage(ErrorText(msg.Err), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, PickerKeys.Cancel):
			return m, send(SwitchToBrowserMsg{})
		case key.Matches(msg, PickerKeys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, PickerKeys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, PickerKeys.PrevPage):
			m.paginator.PrevPage()
		case key.Matches(msg, PickerKeys.NextPage):
			m.paginator.NextPage()
		case key.Matches(msg, PickerKeys.Submit):
			return m, m.move()
		}
	}

	return m, nil
}

// Selected returns the highlighted destination
func (m *MoveModel) Selected() (domain.FolderOption, bool) {
	i := m.paginator.Cursor()
	if i < 0 || i >= len(m.options) {
		return domain.FolderOption{}, false
	}
	return m.options[i], true
}

func (m *MoveModel) move() tea.Cmd {
	option, ok := m.Selected()
	if !ok || m.source == nil {
		return nil
	}
	if domain.SameID(option.ID, m.currentID) {
		return send(SwitchToBrowserMsg{})
	}

	sourceID := m.source.ID
	name := m.source.Name
	destID := domain.IDOrEmpty(option.ID)
	destName := option.Name

	return func() tea.Msg {
		if _, err := commands.NewMoveCommand(m.client, sourceID, destID).Execute(context.Background()); err != nil {
			return ActionErrMsg{Err: err}
		}
		return ActionDoneMsg{
			Message:  fmt.Sprintf("Moved %q to %s", name, destName),
			RevealID: sourceID,
		}
	}
}

// View renders the move view
func (m *MoveModel) View() string {
	v := NewViewBuilder().Title("Move")
	if m.source != nil {
		v.Line(RenderTargetInfo(m.source, "Move")).BlankLine()
	}
	v.Subtitle("Choose a destination")

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderOption(m.options[i], i == m.paginator.Cursor()))
	}
	if m.paginator.TotalPages() > 1 {
		v.BlankLine().Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
	}

	return v.
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(PickerKeys.Up, PickerKeys.Down, PickerKeys.Submit, PickerKeys.Cancel).
		String()
}

func (m *MoveModel) renderOption(o domain.FolderOption, selected bool) string {
	text := styles.DepthIndent(o.Depth) + o.Name
	if selected {
		text = styles.NodeSelected.Render(text)
	} else if o.IsRoot {
		text = styles.NodeRoot.Render(text)
	}

	if domain.SameID(o.ID, m.currentID) {
		text += styles.MutedText.Render("  (current)")
	}
	return strings.TrimRight(text, " ")
}
