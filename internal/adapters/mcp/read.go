package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rapbook/internal/application"
	"rapbook/internal/application/commands"
	"rapbook/internal/domain"
)

// RegisterReadTools adds all read-only library tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, client *application.Client) {
	s.AddTool(listTool(), listHandler(client))
	s.AddTool(treeTool(), treeHandler(client))
	s.AddTool(getTool(), getHandler(client))
	s.AddTool(searchTool(), searchHandler(client))
	s.AddTool(recentTool(), recentHandler(client))
	s.AddTool(folderOptionsTool(), folderOptionsHandler(client))
}

// --- list ---

func listTool() mcp.Tool {
	return mcp.NewTool("list",
		mcp.WithDescription("List the folders and raps directly inside a folder. Folders come first by name, then raps newest first."),
		mcp.WithString("folder_id",
			mcp.Description("Folder ID (folder_...) to list. Omit or pass \"root\" for the top level."),
		),
	)
}

func listHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewListCommand(client, req.GetString("folder_id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if result.Children.Len() == 0 {
			return mcp.NewToolResultText("Empty folder."), nil
		}

		var sb strings.Builder
		if result.Path != "" {
			fmt.Fprintf(&sb, "%s\n", result.Path)
		}
		for _, f := range result.Children.Folders {
			folders, raps := client.ChildCounts(f.ID)
			fmt.Fprintf(&sb, "%s  %s/  (%d folders, %d raps)\n", f.ID, f.Name, folders, raps)
		}
		for _, r := range result.Children.Raps {
			sb.WriteString(formatRap(r))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- tree ---

func treeTool() mcp.Tool {
	return mcp.NewTool("tree",
		mcp.WithDescription("Display the whole library as a tree of folders and raps."),
	)
}

func treeHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		root, err := commands.NewTreeCommand(client, "").Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		var sb strings.Builder
		renderTree(&sb, root, "")
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func renderTree(sb *strings.Builder, node *domain.TreeNode, prefix string) {
	switch node.Type {
	case domain.NodeRoot:
		fmt.Fprintf(sb, "%s\n", node.Name)
	case domain.NodeFolder:
		fmt.Fprintf(sb, "%s%s  %s/\n", prefix, node.ID, node.Name)
	default:
		fmt.Fprintf(sb, "%s%s  %s\n", prefix, node.ID, node.Name)
	}
	for _, child := range node.Children {
		renderTree(sb, child, prefix+"  ")
	}
}

// --- get ---

func getTool() mcp.Tool {
	return mcp.NewTool("get",
		mcp.WithDescription("Read a rap: title, folder path, tags and full content."),
		mcp.WithString("id",
			mcp.Description("Rap ID (rap_...)"),
			mcp.Required(),
		),
	)
}

func getHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewShowCommand(client, req.GetString("id", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		r := result.Rap
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n", r.Title)
		fmt.Fprintf(&sb, "id: %s\n", r.ID)
		if result.Path != "" {
			fmt.Fprintf(&sb, "folder: %s\n", result.Path)
		}
		if len(r.Tags) > 0 {
			fmt.Fprintf(&sb, "tags: %s\n", strings.Join(r.Tags, ", "))
		}
		fmt.Fprintf(&sb, "updated: %s\n\n", r.UpdatedAt.Format("2006-01-02 15:04"))
		sb.WriteString(r.Content)
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- search ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search",
		mcp.WithDescription("Search raps by title and content. Returns matching raps with their IDs and folder paths."),
		mcp.WithString("query",
			mcp.Description("Search query (at least two characters)"),
			mcp.Required(),
		),
		mcp.WithBoolean("fuzzy",
			mcp.Description("Also match titles whose letters appear in query order"),
		),
	)
}

func searchHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		cmd := commands.NewSearchCommand(client, query)
		cmd.Fuzzy = req.GetBool("fuzzy", false)
		results, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s", r.Rap.ID, r.Rap.Title)
			if r.Path != "" {
				fmt.Fprintf(&sb, "  [%s]", r.Path)
			}
			if r.Snippet != "" {
				fmt.Fprintf(&sb, "  %s", r.Snippet)
			}
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- recent ---

func recentTool() mcp.Tool {
	return mcp.NewTool("recent",
		mcp.WithDescription("List the most recently updated raps."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of raps to return (default 10)"),
		),
	)
}

func recentHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		raps, err := commands.NewRecentCommand(client, req.GetInt("limit", 10)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(raps, formatRap)
	}
}

// --- folder_options ---

func folderOptionsTool() mcp.Tool {
	return mcp.NewTool("folder_options",
		mcp.WithDescription("List valid destination folders, indented by depth. Pass exclude_id when moving a folder to hide it and its subfolders."),
		mcp.WithString("exclude_id",
			mcp.Description("Folder ID being moved"),
		),
	)
}

func folderOptionsHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		options, err := commands.NewFolderOptionsCommand(client, req.GetString("exclude_id", ""), "").Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(options, formatOption)
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatRap(r domain.Rap) string {
	return fmt.Sprintf("%s  %s  (%s)", r.ID, r.Title, r.UpdatedAt.Format("2006-01-02"))
}

func formatOption(o domain.FolderOption) string {
	if o.IsRoot {
		return fmt.Sprintf("root  %s", o.Name)
	}
	return fmt.Sprintf("%s%s  %s", strings.Repeat("  ", o.Depth-1), domain.IDOrEmpty(o.ID), o.Name)
}
