package domain

import (
	"strings"

	"github.com/google/uuid"
)

// IDKind represents the kind of entity an identifier points to
type IDKind int

const (
	IDKindUnknown IDKind = iota
	IDKindRap            // rap_...
	IDKindFolder         // folder_...
)

const (
	rapIDPrefix    = "rap_"
	folderIDPrefix = "folder_"
)

func (k IDKind) String() string {
	switch k {
	case IDKindRap:
		return "Rap"
	case IDKindFolder:
		return "Folder"
	default:
		return "Unknown"
	}
}

// NewRapID generates a fresh rap identifier
func NewRapID() string {
	return rapIDPrefix + uuid.NewString()
}

// NewFolderID generates a fresh folder identifier
func NewFolderID() string {
	return folderIDPrefix + uuid.NewString()
}

// ParseIDKind determines the kind of an identifier from its prefix.
// Identifiers written by older builds (rap_<millis>_<rand>) share the prefixes.
func ParseIDKind(id string) IDKind {
	id = strings.TrimSpace(id)

	switch {
	case strings.HasPrefix(id, rapIDPrefix) && len(id) > len(rapIDPrefix):
		return IDKindRap
	case strings.HasPrefix(id, folderIDPrefix) && len(id) > len(folderIDPrefix):
		return IDKindFolder
	default:
		return IDKindUnknown
	}
}
