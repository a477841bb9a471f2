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

// CreateModel is the model for the create view
type CreateModel struct {
	ViewState
	client       *application.Client
	openInEditor bool
	kind         domain.IDKind
	parentID     *string
	form         *InputForm
}

// NewCreateModel creates a new create view model. With openInEditor set a
// new rap is opened in the editor right after it is created.
func NewCreateModel(client *application.Client, openInEditor bool) *CreateModel {
	return &CreateModel{
		client:       client,
		openInEditor: openInEditor,
		kind:         domain.IDKindRap,
		form:         NewInputForm(NewInputField("Title:", domain.DefaultRapTitle, domain.MaxTitleLength)),
	}
}

// SetTarget prepares the form for a new rap or folder inside parentID
func (m *CreateModel) SetTarget(kind domain.IDKind, parentID *string) {
	m.kind = kind
	m.parentID = domain.CloneID(parentID)
	m.ClearMessage()

	if kind == domain.IDKindFolder {
		m.form = NewInputForm(NewInputField("Name:", "Folder name", domain.MaxFolderNameLength))
	} else {
		m.form = NewInputForm(NewInputField("Title:", domain.DefaultRapTitle, domain.MaxTitleLength))
	}
}

// Init initializes the create view
func (m *CreateModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update handles messages for the create view
func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			return m, m.create()
		}
	}

	return m, m.form.Update(msg)
}

func (m *CreateModel) create() tea.Cmd {
	name := m.form.Value()
	parentID := domain.IDOrEmpty(m.parentID)
	kind := m.kind

	return func() tea.Msg {
		ctx := context.Background()

		if kind == domain.IDKindFolder {
			result, err := commands.NewCreateFolderCommand(m.client, name, parentID).Execute(ctx)
			if err != nil {
				return ActionErrMsg{Err: err}
			}
			return ActionDoneMsg{
				Message:  fmt.Sprintf("Created folder %q", result.Folder.Name),
				RevealID: result.Folder.ID,
			}
		}

		result, err := commands.NewCreateRapCommand(m.client, name, "", parentID).Execute(ctx)
		if err != nil {
			return ActionErrMsg{Err: err}
		}
		if m.openInEditor {
			return EditRapMsg{RapID: result.Rap.ID}
		}
		return ActionDoneMsg{
			Message:  fmt.Sprintf("Created %q", result.Rap.Title),
			RevealID: result.Rap.ID,
		}
	}
}

// View renders the create view
func (m *CreateModel) View() string {
	title := "New Rap"
	if m.kind == domain.IDKindFolder {
		title = "New Folder"
	}

	location := domain.DefaultRootLabel
	if m.parentID != nil {
		if path, err := m.client.FolderPath(*m.parentID); err == nil {
			location = domain.FormatPath(path)
		}
	}

	v := NewViewBuilder().
		Title(title).
		Subtitle("In " + location).
		Line(m.form.View()).
		BlankLine().
		Message(m.Message, m.MessageErr)

	if m.kind == domain.IDKindRap && m.openInEditor {
		v.Muted("The editor opens after the rap is created.").BlankLine()
	}

	return v.Help(m.form.Keys.Submit, m.form.Keys.Cancel).String()
}
