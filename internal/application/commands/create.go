package commands

import (
	"context"
	"fmt"
	"strings"

	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// rootAliases are the destination values that mean "no folder"
var rootAliases = map[string]bool{"": true, "root": true, "/": true}

// parseDestination turns a user supplied folder ID into the optional form
// the library expects. Empty, "root" and "/" all mean the top level.
func parseDestination(id string) *string {
	id = strings.TrimSpace(id)
	if rootAliases[strings.ToLower(id)] {
		return nil
	}
	return &id
}

// validateDestination checks that a non-root destination looks like a folder ID
func validateDestination(fieldName, id string) error {
	if parseDestination(id) == nil {
		return nil
	}
	return application.ValidateIDKind(fieldName, strings.TrimSpace(id), domain.IDKindFolder)
}

// destinationLabel describes a destination for result messages
func destinationLabel(client *application.Client, folderID *string) string {
	if folderID == nil {
		return "root"
	}
	if f, err := client.GetFolder(*folderID); err == nil {
		return fmt.Sprintf("%q", f.Name)
	}
	return *folderID
}

// CreateRapResult contains the result of creating a rap
type CreateRapResult struct {
	Rap     *domain.Rap
	Message string
}

// CreateRapCommand creates a new rap, optionally inside a folder
type CreateRapCommand struct {
	client   *application.Client
	Title    string
	Content  string
	FolderID string
}

// NewCreateRapCommand creates a new CreateRapCommand
func NewCreateRapCommand(client *application.Client, title, content, folderID string) *CreateRapCommand {
	return &CreateRapCommand{
		client:   client,
		Title:    title,
		Content:  content,
		FolderID: folderID,
	}
}

// Validate checks if the create operation is valid. A blank title is allowed
// and becomes the default title.
func (c *CreateRapCommand) Validate() error {
	return validateDestination("folderID", c.FolderID)
}

// Execute runs the create rap command
func (c *CreateRapCommand) Execute(ctx context.Context) (*CreateRapResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	folderID := parseDestination(c.FolderID)
	rap, err := c.client.CreateRap(ctx, c.Title, c.Content, folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to create rap: %w", err)
	}

	return &CreateRapResult{
		Rap:     rap,
		Message: fmt.Sprintf("Created rap: %s %q in %s", rap.ID, rap.Title, destinationLabel(c.client, folderID)),
	}, nil
}

// CreateFolderResult contains the result of creating a folder
type CreateFolderResult struct {
	Folder  *domain.Folder
	Message string
}

// CreateFolderCommand creates a new folder, optionally nested in a parent
type CreateFolderCommand struct {
	client   *application.Client
	Name     string
	ParentID string
}

// NewCreateFolderCommand creates a new CreateFolderCommand
func NewCreateFolderCommand(client *application.Client, name, parentID string) *CreateFolderCommand {
	return &CreateFolderCommand{
		client:   client,
		Name:     name,
		ParentID: parentID,
	}
}

// Validate checks if the create operation is valid
func (c *CreateFolderCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return validateDestination("parentID", c.ParentID)
}

// Execute runs the create folder command
func (c *CreateFolderCommand) Execute(ctx context.Context) (*CreateFolderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	parentID := parseDestination(c.ParentID)
	folder, err := c.client.CreateFolder(ctx, c.Name, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return &CreateFolderResult{
		Folder:  folder,
		Message: fmt.Sprintf("Created folder: %s %q in %s", folder.ID, folder.Name, destinationLabel(c.client, parentID)),
	}, nil
}
