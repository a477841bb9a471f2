package commands

import (
	"context"
	"strings"

	"rapbook/internal/application"
	"rapbook/internal/domain"
)

// ListResult is the content of one folder level
type ListResult struct {
	Folder   *domain.Folder // nil for root
	Path     string
	Children domain.Children
}

// ListCommand lists the folders and raps directly under a folder
type ListCommand struct {
	client   *application.Client
	FolderID string
}

// NewListCommand creates a new ListCommand. An empty folderID lists root.
func NewListCommand(client *application.Client, folderID string) *ListCommand {
	return &ListCommand{
		client:   client,
		FolderID: folderID,
	}
}

// Validate checks that the folder ID, if given, looks like one
func (c *ListCommand) Validate() error {
	return validateDestination("folderID", c.FolderID)
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) (*ListResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	folderID := parseDestination(c.FolderID)
	result := &ListResult{}

	if folderID != nil {
		folder, err := c.client.GetFolder(*folderID)
		if err != nil {
			return nil, err
		}
		path, err := c.client.FolderPath(folder.ID)
		if err != nil {
			return nil, err
		}
		result.Folder = folder
		result.Path = domain.FormatPath(path)
	}

	result.Children = c.client.FolderContents(folderID)
	return result, nil
}

// TreeCommand builds the full navigation tree
type TreeCommand struct {
	client    *application.Client
	RootLabel string
}

// NewTreeCommand creates a new TreeCommand
func NewTreeCommand(client *application.Client, rootLabel string) *TreeCommand {
	return &TreeCommand{client: client, RootLabel: rootLabel}
}

// Execute runs the tree command
func (c *TreeCommand) Execute(ctx context.Context) (*domain.TreeNode, error) {
	return c.client.Tree(c.RootLabel), nil
}

// RecentCommand lists the most recently updated raps
type RecentCommand struct {
	client *application.Client
	Limit  int
}

// NewRecentCommand creates a new RecentCommand
func NewRecentCommand(client *application.Client, limit int) *RecentCommand {
	return &RecentCommand{client: client, Limit: limit}
}

// Execute runs the recent command
func (c *RecentCommand) Execute(ctx context.Context) ([]domain.Rap, error) {
	return c.client.RecentRaps(c.Limit), nil
}

// FolderOptionsCommand lists the destinations offered by a folder picker
type FolderOptionsCommand struct {
	client    *application.Client
	ExcludeID string
	RootLabel string
}

// NewFolderOptionsCommand creates a new FolderOptionsCommand. excludeID is
// the folder being moved, if any.
func NewFolderOptionsCommand(client *application.Client, excludeID, rootLabel string) *FolderOptionsCommand {
	return &FolderOptionsCommand{
		client:    client,
		ExcludeID: excludeID,
		RootLabel: rootLabel,
	}
}

// Execute runs the folder options command
func (c *FolderOptionsCommand) Execute(ctx context.Context) ([]domain.FolderOption, error) {
	var exclude *string
	if id := strings.TrimSpace(c.ExcludeID); id != "" {
		exclude = &id
	}
	return c.client.FolderOptions(exclude, c.RootLabel), nil
}
