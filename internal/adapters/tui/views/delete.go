package views

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"rapbook/internal/adapters/tui/styles"
	"rapbook/internal/application"
	"rapbook/internal/application/commands"
	"rapbook/internal/domain"
)

// DeleteModel is the model for the delete confirmation view
type DeleteModel struct {
	ConfirmationModel
	client *application.Client
}

// NewDeleteModel creates a new delete view model
func NewDeleteModel(client *application.Client) *DeleteModel {
	return &DeleteModel{
		ConfirmationModel: NewConfirmationModel(),
		client:            client,
	}
}

// Init initializes the delete view
func (m *DeleteModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the delete view
func (m *DeleteModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case ActionErrMsg:
		m.SetMessage(ErrorText(msg.Err), true)
		return m, nil

	case tea.KeyMsg:
		switch m.choice(msg) {
		case confirmed:
			return m, m.doDelete
		case declined:
			return m, send(SwitchToBrowserMsg{})
		}
	}

	return m, nil
}

func (m *DeleteModel) doDelete() tea.Msg {
	if m.TargetNode == nil {
		return ActionErrMsg{Err: fmt.Errorf("no target selected")}
	}

	if _, err := commands.NewDeleteCommand(m.client, m.TargetNode.ID).Execute(context.Background()); err != nil {
		return ActionErrMsg{Err: err}
	}

	return ActionDoneMsg{
		Message: fmt.Sprintf("Deleted %q", m.TargetNode.Name),
	}
}

// View renders the delete confirmation view
func (m *DeleteModel) View() string {
	v := NewViewBuilder().
		Title("Delete Confirmation").
		Line(styles.ErrorMsg.Render("This action cannot be undone!")).
		BlankLine().
		Line(RenderTargetInfo(m.TargetNode, "Delete")).
		BlankLine()

	if m.TargetNode != nil && m.TargetNode.Type == domain.NodeFolder {
		folders, raps := m.client.ChildCounts(m.TargetNode.ID)
		if folders+raps > 0 {
			v.Muted(fmt.Sprintf("  Holds %d folders and %d raps. Only empty folders can be deleted.", folders, raps)).BlankLine()
		}
	}

	return v.
		Message(m.Message, m.MessageErr).
		Line(RenderConfirmPrompt("Are you sure?")).
		String()
}
