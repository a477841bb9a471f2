package views

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rapbook/internal/application"
	"rapbook/internal/application/commands"
	"rapbook/internal/domain"
)

// RenameModel renames a folder or retitles a rap
type RenameModel struct {
	ViewState
	client *application.Client
	target *domain.TreeNode
	form   *InputForm
}

// NewRenameModel creates a new rename view model
func NewRenameModel(client *application.Client) *RenameModel {
	return &RenameModel{
		client: client,
		form:   NewInputForm(NewInputField("Name:", "", 0)),
	}
}

// SetTarget prefills the form with the node's current name
func (m *RenameModel) SetTarget(node *domain.TreeNode) {
	m.target = node
	m.ClearMessage()

	limit := domain.MaxTitleLength
	if node.Type == domain.NodeFolder {
		limit = domain.MaxFolderNameLength
	}
	m.form = NewInputForm(NewPrefilledField("New name:", node.Name, limit))
}

// Init initializes the rename view
func (m *RenameModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the rename view
func (m *RenameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ActionErrMsg:
		m.SetMessage(ErrorText(msg.Err), true)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.form.Keys.Cancel):
			return m, send(SwitchToBrowserMsg{})
		case key.Matches(msg, m.form.Keys.Submit):
			return m, m.rename()
		}
	}

	return m, m.form.Update(msg)
}

func (m *RenameModel) rename() tea.Cmd {
	if m.target == nil {
		return nil
	}
	id := m.target.ID
	newName := m.form.Value()

	return func() tea.Msg {
		result, err := commands.NewRenameCommand(m.client, id, newName).Execute(context.Background())
		if err != nil {
			return ActionErrMsg{Err: err}
		}
		return ActionDoneMsg{
			Message:  fmt.Sprintf("Renamed to %q", result.NewName),
			RevealID: id,
		}
	}
}

// View renders the rename view
func (m *RenameModel) View() string {
	v := NewViewBuilder().Title("Rename")
	if m.target != nil {
		v.Line(RenderTargetInfo(m.target, "Rename")).BlankLine()
	}
	return v.
		Line(m.form.View()).
		BlankLine().
		Message(m.Message, m.MessageErr).
		Help(m.form.Keys.Submit, m.form.Keys.Cancel).
		String()
}
