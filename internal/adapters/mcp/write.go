package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rapbook/internal/application"
	"rapbook/internal/application/commands"
)

// RegisterWriteTools adds all write library tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, client *application.Client) {
	s.AddTool(createRapTool(), createRapHandler(client))
	s.AddTool(createFolderTool(), createFolderHandler(client))
	s.AddTool(updateTool(), updateHandler(client))
	s.AddTool(moveTool(), moveHandler(client))
	s.AddTool(renameTool(), renameHandler(client))
	s.AddTool(deleteTool(), deleteHandler(client))
}

// --- create_rap ---

func createRapTool() mcp.Tool {
	return mcp.NewTool("create_rap",
		mcp.WithDescription("Create a new rap. A blank title becomes \"Untitled Rap\"."),
		mcp.WithString("title",
			mcp.Description("Title of the rap"),
		),
		mcp.WithString("content",
			mcp.Description("Lyrics / body text"),
		),
		mcp.WithString("folder_id",
			mcp.Description("Folder ID to create the rap in. Omit for the top level."),
		),
	)
}

func createRapHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateRapCommand(client,
			req.GetString("title", ""),
			req.GetString("content", ""),
			req.GetString("folder_id", ""),
		)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- create_folder ---

func createFolderTool() mcp.Tool {
	return mcp.NewTool("create_folder",
		mcp.WithDescription("Create a new folder, optionally inside another folder."),
		mcp.WithString("name",
			mcp.Description("Folder name"),
			mcp.Required(),
		),
		mcp.WithString("parent_id",
			mcp.Description("Parent folder ID. Omit for the top level."),
		),
	)
}

func createFolderHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewCreateFolderCommand(client, req.GetString("name", ""), req.GetString("parent_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- update ---

func updateTool() mcp.Tool {
	return mcp.NewTool("update",
		mcp.WithDescription("Change the title, content or tags of a rap. Omitted fields are left as they are."),
		mcp.WithString("id",
			mcp.Description("Rap ID (rap_...)"),
			mcp.Required(),
		),
		mcp.WithString("title",
			mcp.Description("New title"),
		),
		mcp.WithString("content",
			mcp.Description("New content, replacing the old one"),
		),
		mcp.WithArray("tags",
			mcp.Description("New tag list, replacing the old one"),
			mcp.WithStringItems(),
		),
	)
}

func updateHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewUpdateRapCommand(client, req.GetString("id", ""))

		args := req.GetArguments()
		if _, ok := args["title"]; ok {
			title := req.GetString("title", "")
			cmd.Title = &title
		}
		if _, ok := args["content"]; ok {
			content := req.GetString("content", "")
			cmd.Content = &content
		}
		if _, ok := args["tags"]; ok {
			tags := req.GetStringSlice("tags", nil)
			cmd.Tags = &tags
		}

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- move ---

func moveTool() mcp.Tool {
	return mcp.NewTool("move",
		mcp.WithDescription("Move a rap or a folder into another folder, or to the top level. A folder cannot be moved into itself or one of its subfolders."),
		mcp.WithString("source_id",
			mcp.Description("ID of the rap or folder to move"),
			mcp.Required(),
		),
		mcp.WithString("destination_id",
			mcp.Description("Destination folder ID. Omit or pass \"root\" for the top level."),
		),
	)
}

func moveHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewMoveCommand(client, req.GetString("source_id", ""), req.GetString("destination_id", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename",
		mcp.WithDescription("Rename a folder or retitle a rap."),
		mcp.WithString("id",
			mcp.Description("ID of the folder or rap"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New name or title"),
			mcp.Required(),
		),
	)
}

func renameHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewRenameCommand(client, req.GetString("id", ""), req.GetString("new_name", ""))
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete ---

func deleteTool() mcp.Tool {
	return mcp.NewTool("delete",
		mcp.WithDescription("Delete a rap, or an empty folder. Folders that still hold raps or subfolders are refused."),
		mcp.WithString("id",
			mcp.Description("ID of the rap or folder to delete"),
			mcp.Required(),
		),
	)
}

func deleteHandler(client *application.Client) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")
		if id == "" {
			return toolError(fmt.Errorf("id is required"))
		}

		result, err := commands.NewDeleteCommand(client, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
