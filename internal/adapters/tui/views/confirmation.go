package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"rapbook/internal/adapters/tui/styles"
	"rapbook/internal/domain"
)

type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

type confirmChoice int

const (
	undecided confirmChoice = iota
	confirmed
	declined
)

// ConfirmationModel is embedded by views that ask a yes/no question
// about a single tree node
type ConfirmationModel struct {
	ViewState
	TargetNode *domain.TreeNode
	Keys       ConfirmKeyMap
}

func NewConfirmationModel() ConfirmationModel {
	return ConfirmationModel{Keys: DefaultConfirmKeys}
}

// SetTarget points the question at node and drops any stale message
func (m *ConfirmationModel) SetTarget(node *domain.TreeNode) {
	m.TargetNode = node
	m.ClearMessage()
}

func (m *ConfirmationModel) choice(msg tea.KeyMsg) confirmChoice {
	switch {
	case key.Matches(msg, m.Keys.Confirm):
		return confirmed
	case key.Matches(msg, m.Keys.Cancel):
		return declined
	}
	return undecided
}

// RenderConfirmPrompt appends the y/n hint to question
func RenderConfirmPrompt(question string) string {
	return question + " " +
		styles.HelpKey.Render("y") + styles.HelpDesc.Render(" to confirm, ") +
		styles.HelpKey.Render("n") + styles.HelpDesc.Render(" to cancel")
}

// RenderTargetInfo shows which node an action applies to, e.g.
// "Delete folder:" followed by its name and ID
func RenderTargetInfo(node *domain.TreeNode, action string) string {
	if node == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(action + " " + strings.ToLower(nodeTypeString(node.Type)) + ":"))
	b.WriteString("\n  ")
	b.WriteString(node.Name)
	b.WriteString(" ")
	b.WriteString(styles.MutedText.Render(node.ID))
	return b.String()
}
