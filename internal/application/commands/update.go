package commands

import (
	"context"
	"fmt"
	"strings"

	"rapbook/internal/application"
	"rapbook/internal/domain"
	"rapbook/internal/ports"
)

// ShowResult is a rap together with its location
type ShowResult struct {
	Rap  *domain.Rap
	Path string // empty at root
}

// ShowCommand fetches a single rap
type ShowCommand struct {
	client *application.Client
	ID     string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(client *application.Client, id string) *ShowCommand {
	return &ShowCommand{client: client, ID: id}
}

// Validate checks the rap ID
func (c *ShowCommand) Validate() error {
	if err := application.ValidateRequired("rapID", c.ID); err != nil {
		return err
	}
	return application.ValidateIDKind("rapID", strings.TrimSpace(c.ID), domain.IDKindRap)
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*ShowResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rap, err := c.client.GetRap(strings.TrimSpace(c.ID))
	if err != nil {
		return nil, err
	}

	result := &ShowResult{Rap: rap}
	if rap.FolderID != nil {
		if path, err := c.client.FolderPath(*rap.FolderID); err == nil {
			result.Path = domain.FormatPath(path)
		}
	}
	return result, nil
}

// UpdateRapResult contains the result of an update
type UpdateRapResult struct {
	Rap     *domain.Rap
	Changed bool
	Message string
}

// UpdateRapCommand changes the title, content or tags of a rap. Nil fields
// are left untouched.
type UpdateRapCommand struct {
	client  *application.Client
	ID      string
	Title   *string
	Content *string
	Tags    *[]string
}

// NewUpdateRapCommand creates a new UpdateRapCommand
func NewUpdateRapCommand(client *application.Client, id string) *UpdateRapCommand {
	return &UpdateRapCommand{client: client, ID: id}
}

// Validate checks that there is something to update
func (c *UpdateRapCommand) Validate() error {
	if err := application.ValidateRequired("rapID", c.ID); err != nil {
		return err
	}
	if err := application.ValidateIDKind("rapID", strings.TrimSpace(c.ID), domain.IDKindRap); err != nil {
		return err
	}
	if c.Title == nil && c.Content == nil && c.Tags == nil {
		return &application.ValidationError{
			Field:   "changes",
			Message: "nothing to update",
		}
	}
	return nil
}

// Execute runs the update command
func (c *UpdateRapCommand) Execute(ctx context.Context) (*UpdateRapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rap, err := c.client.UpdateRap(ctx, strings.TrimSpace(c.ID), application.RapUpdate{
		Title:   c.Title,
		Content: c.Content,
		Tags:    c.Tags,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update rap: %w", err)
	}

	return &UpdateRapResult{
		Rap:     rap,
		Changed: true,
		Message: fmt.Sprintf("Updated rap: %s %q", rap.ID, rap.Title),
	}, nil
}

// EditRapCommand opens a rap's content in an external editor and saves
// whatever the editor leaves behind
type EditRapCommand struct {
	client *application.Client
	editor ports.EditorOpener
	ID     string
}

// NewEditRapCommand creates a new EditRapCommand
func NewEditRapCommand(client *application.Client, editor ports.EditorOpener, id string) *EditRapCommand {
	return &EditRapCommand{client: client, editor: editor, ID: id}
}

// Validate checks the rap ID
func (c *EditRapCommand) Validate() error {
	if err := application.ValidateRequired("rapID", c.ID); err != nil {
		return err
	}
	return application.ValidateIDKind("rapID", strings.TrimSpace(c.ID), domain.IDKindRap)
}

// Execute runs the edit command. An unchanged buffer is not written back.
func (c *EditRapCommand) Execute(ctx context.Context) (*UpdateRapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	rap, err := c.client.GetRap(strings.TrimSpace(c.ID))
	if err != nil {
		return nil, err
	}

	content, err := c.editor.EditText(ctx, rap.Title, rap.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to edit rap: %w", err)
	}

	if content == rap.Content {
		return &UpdateRapResult{
			Rap:     rap,
			Message: fmt.Sprintf("No changes to %s", rap.ID),
		}, nil
	}

	update := NewUpdateRapCommand(c.client, rap.ID)
	update.Content = &content
	return update.Execute(ctx)
}
