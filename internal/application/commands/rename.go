package commands

import (
	"context"
	"fmt"
	"strings"

	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	OriginalID string
	NewName    string
	Message    string
}

// RenameCommand renames a folder or retitles a rap
type RenameCommand struct {
	client  *application.Client
	ID      string
	NewName string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(client *application.Client, id, newName string) *RenameCommand {
	return &RenameCommand{
		client:  client,
		ID:      id,
		NewName: newName,
	}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("id", c.ID); err != nil {
		return err
	}

	if strings.TrimSpace(c.NewName) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "new name is required",
		}
	}

	if domain.ParseIDKind(c.ID) == domain.IDKindUnknown {
		return &application.ValidationError{
			Field:   "id",
			Message: fmt.Sprintf("invalid ID: %s", c.ID),
		}
	}

	return nil
}

// Execute runs the rename command
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(c.ID)
	newName := strings.TrimSpace(c.NewName)

	var err error
	switch domain.ParseIDKind(id) {
	case domain.IDKindRap:
		var rap *domain.Rap
		rap, err = c.client.UpdateRap(ctx, id, application.RapUpdate{Title: &newName})
		if rap != nil {
			newName = rap.Title
		}
	case domain.IDKindFolder:
		var folder *domain.Folder
		folder, err = c.client.RenameFolder(ctx, id, newName)
		if folder != nil {
			newName = folder.Name
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to rename: %w", err)
	}

	return &RenameResult{
		OriginalID: id,
		NewName:    newName,
		Message:    fmt.Sprintf("Renamed %s to %s", id, newName),
	}, nil
}
