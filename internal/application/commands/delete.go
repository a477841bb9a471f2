package commands

import (
	"context"
	"fmt"
	"strings"

	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// DeleteResult contains the result of a delete operation
type DeleteResult struct {
	DeletedID string
	Message   string
}

// DeleteCommand deletes a rap or an empty folder by ID
type DeleteCommand struct {
	client *application.Client
	ID     string
}

// NewDeleteCommand creates a new DeleteCommand
func NewDeleteCommand(client *application.Client, id string) *DeleteCommand {
	return &DeleteCommand{
		client: client,
		ID:     id,
	}
}

// Validate checks if the delete operation is valid
func (c *DeleteCommand) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return &application.ValidationError{
			Field:   "id",
			Message: "ID is required",
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

// Execute runs the delete command. Folders that still hold raps or
// subfolders are refused with an *application.NotEmptyError.
func (c *DeleteCommand) Execute(ctx context.Context) (*DeleteResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	id := strings.TrimSpace(c.ID)

	var err error
	switch domain.ParseIDKind(id) {
	case domain.IDKindRap:
		err = c.client.DeleteRap(ctx, id)
	case domain.IDKindFolder:
		err = c.client.DeleteFolder(ctx, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to delete %s: %w", id, err)
	}

	return &DeleteResult{
		DeletedID: id,
		Message:   fmt.Sprintf("Deleted %s", id),
	}, nil
}
