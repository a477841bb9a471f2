package views

import (
	"rapbook/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// nodeTypeString returns a human-readable string for the node type
func nodeTypeString(t domain.NodeType) string {
	switch t {
	case domain.NodeFolder:
		return "Folder"
	case domain.NodeRap:
		return "Rap"
	default:
		return t.String()
	}
}

// contextFolder returns the folder new entries go into when node is selected:
// the folder itself, the folder holding a rap, or nil for root
func contextFolder(node *domain.TreeNode) *string {
	for n := node; n != nil; n = n.Parent {
		if n.Type == domain.NodeFolder {
			id := n.ID
			return &id
		}
	}
	return nil
}
