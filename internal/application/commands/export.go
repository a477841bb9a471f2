package commands

import (
	"context"
	"fmt"

	"rapbook/internal/application"
	"rapbook/internal/domain"
	"rapbook/internal/ports"
)

// ExportResult contains the result of an export
type ExportResult struct {
	Stats   *domain.ExportStats
	Message string
}

// ExportCommand writes every rap through an exporter
type ExportCommand struct {
	client   *application.Client
	exporter ports.Exporter
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(client *application.Client, exporter ports.Exporter) *ExportCommand {
	return &ExportCommand{client: client, exporter: exporter}
}

// Execute runs the export command
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stats, err := c.exporter.Export(c.client.Folders(), c.client.Raps())
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}

	return &ExportResult{
		Stats:   stats,
		Message: fmt.Sprintf("Exported %d raps into %d folders", stats.Raps, stats.Folders),
	}, nil
}

// OpenExportedCommand exports the library and opens one rap's file
type OpenExportedCommand struct {
	client   *application.Client
	exporter ports.Exporter
	opener   ports.FileOpener
	RapID    string
}

// NewOpenExportedCommand creates a new OpenExportedCommand
func NewOpenExportedCommand(client *application.Client, exporter ports.Exporter, opener ports.FileOpener, rapID string) *OpenExportedCommand {
	return &OpenExportedCommand{
		client:   client,
		exporter: exporter,
		opener:   opener,
		RapID:    rapID,
	}
}

// Validate checks the rap ID
func (c *OpenExportedCommand) Validate() error {
	if err := application.ValidateRequired("rapID", c.RapID); err != nil {
		return err
	}
	return application.ValidateIDKind("rapID", c.RapID, domain.IDKindRap)
}

// Execute runs the export, then opens the rap's file. The returned path is
// the file that was opened.
func (c *OpenExportedCommand) Execute(ctx context.Context) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if _, err := c.client.GetRap(c.RapID); err != nil {
		return "", err
	}

	result, err := NewExportCommand(c.client, c.exporter).Execute(ctx)
	if err != nil {
		return "", err
	}

	path, ok := result.Stats.ByRap[c.RapID]
	if !ok {
		return "", fmt.Errorf("rap %s was not exported", c.RapID)
	}
	if err := c.opener.OpenFile(path); err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	return path, nil
}
