package application

import (
	"context"

	"rapbook/internal/domain"
)

// Client is the entry point used by the CLI, the TUI and the MCP server.
// It forwards to a Library and surfaces its loading and error state.
type Client struct {
	lib *Library
}

// NewClient wraps a library
func NewClient(lib *Library) *Client {
	return &Client{lib: lib}
}

func (c *Client) LoadInitialData(ctx context.Context) error {
	return c.lib.LoadInitialData(ctx)
}

func (c *Client) CreateRap(ctx context.Context, title, content string, folderID *string) (*domain.Rap, error) {
	return c.lib.CreateRap(ctx, title, content, folderID)
}

func (c *Client) UpdateRap(ctx context.Context, id string, changes RapUpdate) (*domain.Rap, error) {
	return c.lib.UpdateRap(ctx, id, changes)
}

func (c *Client) MoveRap(ctx context.Context, id string, folderID *string) (*domain.Rap, error) {
	return c.lib.MoveRap(ctx, id, folderID)
}

func (c *Client) DeleteRap(ctx context.Context, id string) error {
	return c.lib.DeleteRap(ctx, id)
}

func (c *Client) CreateFolder(ctx context.Context, name string, parentID *string) (*domain.Folder, error) {
	return c.lib.CreateFolder(ctx, name, parentID)
}

func (c *Client) RenameFolder(ctx context.Context, id, newName string) (*domain.Folder, error) {
	return c.lib.RenameFolder(ctx, id, newName)
}

func (c *Client) MoveFolder(ctx context.Context, id string, parentID *string) (*domain.Folder, error) {
	return c.lib.MoveFolder(ctx, id, parentID)
}

func (c *Client) DeleteFolder(ctx context.Context, id string) error {
	return c.lib.DeleteFolder(ctx, id)
}

func (c *Client) Raps() []domain.Rap {
	return c.lib.Raps()
}

func (c *Client) Folders() []domain.Folder {
	return c.lib.Folders()
}

func (c *Client) GetRap(id string) (*domain.Rap, error) {
	return c.lib.GetRap(id)
}

func (c *Client) GetFolder(id string) (*domain.Folder, error) {
	return c.lib.GetFolder(id)
}

func (c *Client) ListChildren(folderID *string) domain.Children {
	return c.lib.ListChildren(folderID)
}

func (c *Client) FolderContents(folderID *string) domain.Children {
	return c.lib.FolderContents(folderID)
}

func (c *Client) ChildCounts(folderID string) (folders, raps int) {
	return c.lib.ChildCounts(folderID)
}

func (c *Client) FolderOptions(excludeID *string, rootLabel string) []domain.FolderOption {
	return c.lib.FolderOptions(excludeID, rootLabel)
}

func (c *Client) FolderPath(id string) ([]domain.Folder, error) {
	return c.lib.FolderPath(id)
}

func (c *Client) Tree(rootLabel string) *domain.TreeNode {
	return c.lib.Tree(rootLabel)
}

func (c *Client) RecentRaps(limit int) []domain.Rap {
	return c.lib.RecentRaps(limit)
}

func (c *Client) Search(query string) []SearchResult {
	return c.lib.Search(query)
}

func (c *Client) IsLoading() bool {
	return c.lib.IsLoading()
}

func (c *Client) IsLoaded() bool {
	return c.lib.IsLoaded()
}

func (c *Client) LastError() error {
	return c.lib.LastError()
}

func (c *Client) ClearError() {
	c.lib.ClearError()
}
