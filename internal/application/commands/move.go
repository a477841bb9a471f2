package commands

import (
	"context"
	"fmt"
	"strings"

	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// MoveResult contains the result of a move operation
type MoveResult struct {
	SourceID      string
	DestinationID *string // nil when moved to root
	Message       string
}

// MoveCommand moves a rap or a folder under another folder or to root
type MoveCommand struct {
	client        *application.Client
	SourceID      string
	DestinationID string
}

// NewMoveCommand creates a new MoveCommand. destinationID may be empty or
// "root" to move to the top level.
func NewMoveCommand(client *application.Client, sourceID, destinationID string) *MoveCommand {
	return &MoveCommand{
		client:        client,
		SourceID:      sourceID,
		DestinationID: destinationID,
	}
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if err := application.ValidateRequired("sourceID", c.SourceID); err != nil {
		return err
	}

	if domain.ParseIDKind(c.SourceID) == domain.IDKindUnknown {
		return &application.ValidationError{
			Field:   "sourceID",
			Message: fmt.Sprintf("invalid ID: %s", c.SourceID),
		}
	}

	if err := validateDestination("destinationID", c.DestinationID); err != nil {
		return err
	}

	if dest := parseDestination(c.DestinationID); dest != nil && *dest == strings.TrimSpace(c.SourceID) {
		return &application.MoveError{
			SourceID: c.SourceID,
			DestID:   *dest,
			Reason:   "a folder cannot be moved into itself",
		}
	}

	return nil
}

// Execute runs the move command
func (c *MoveCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sourceID := strings.TrimSpace(c.SourceID)
	dest := parseDestination(c.DestinationID)

	var err error
	switch domain.ParseIDKind(sourceID) {
	case domain.IDKindRap:
		_, err = c.client.MoveRap(ctx, sourceID, dest)
	case domain.IDKindFolder:
		_, err = c.client.MoveFolder(ctx, sourceID, dest)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to move %s: %w", sourceID, err)
	}

	return &MoveResult{
		SourceID:      sourceID,
		DestinationID: dest,
		Message:       fmt.Sprintf("Moved %s to %s", sourceID, destinationLabel(c.client, dest)),
	}, nil
}
