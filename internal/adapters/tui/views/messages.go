package views

import "rapbook/internal/domain"

// Messages for view switching
type SwitchToBrowserMsg struct{}

type SwitchToHelpMsg struct{}

type SwitchToSearchMsg struct{}

// SwitchToCreateMsg opens the create form. ParentID is the folder the new
// rap or folder goes into, nil for root.
type SwitchToCreateMsg struct {
	Kind     domain.IDKind
	ParentID *string
}

type SwitchToRenameMsg struct {
	Node *domain.TreeNode
}

type SwitchToMoveMsg struct {
	Node *domain.TreeNode
}

type SwitchToDeleteMsg struct {
	Node *domain.TreeNode
}

// EditRapMsg asks the app to open a rap in the external editor
type EditRapMsg struct {
	RapID string
}

// ActionDoneMsg reports a successful change. The browser reloads and, when
// RevealID is set, selects that node.
type ActionDoneMsg struct {
	Message  string
	RevealID string
}

// ActionErrMsg reports a failed change to the view that started it
type ActionErrMsg struct {
	Err error
}
