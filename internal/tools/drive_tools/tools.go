package drive_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/plannery/eventkit/internal/drive"
	"github.com/plannery/eventkit/internal/server"
	"github.com/plannery/eventkit/internal/tools/common"
)

// errorResult wraps any failure as a prefixed tool result. Classified
// Drive errors render their guidance message; everything else renders
// verbatim.
func errorResult(err error) *mcp.CallToolResult {
	var driveErr *drive.Error
	if errors.As(err, &driveErr) {
		return mcp.NewToolResultError("Error: " + driveErr.Message())
	}
	return mcp.NewToolResultError("Error: " + err.Error())
}

// formatFromArgs parses the optional format argument shared by the
// read-style tools.
func formatFromArgs(args map[string]interface{}) (drive.Format, error) {
	raw, _ := args["format"].(string)
	return drive.ParseFormat(raw)
}

// RegisterDriveTools registers all Google Drive gateway tools with the
// MCP server. Write tools are skipped in read-only mode.
func RegisterDriveTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	registerListFilesTool(s, sc)
	registerGetFileTool(s, sc)
	registerSearchFilesTool(s, sc)

	if !readOnly {
		registerCreateFolderTool(s, sc)
		registerUploadFileTool(s, sc)
		registerDeleteFileTool(s, sc)
	}

	return nil
}

func registerListFilesTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("drive_list_files",
		mcp.WithDescription("List files in Google Drive with optional filtering and pagination"),
		mcp.WithString("query",
			mcp.Description("Drive query expression (e.g., \"name contains 'budget'\", \"mimeType='application/pdf'\")"),
		),
		mcp.WithString("folder_id",
			mcp.Description("Restrict results to children of this folder"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of files to return (1-100, default: 20)"),
		),
		mcp.WithString("page_token",
			mcp.Description("Page token from a previous listing for the next page of results"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"drive_list_files", "drive", "list", sc, ListFilesHandler(sc)))
}

// ListFilesHandler returns the drive_list_files handler.
func ListFilesHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		format, err := formatFromArgs(args)
		if err != nil {
			return errorResult(err), nil
		}

		opts := drive.ListOptions{}
		if query, ok := args["query"].(string); ok {
			opts.Query = query
		}
		if folderID, ok := args["folder_id"].(string); ok {
			opts.FolderID = folderID
		}
		if limit, ok := args["limit"].(float64); ok {
			opts.Limit = int64(limit)
		}
		if pageToken, ok := args["page_token"].(string); ok {
			opts.PageToken = pageToken
		}

		client, err := sc.DriveClient()
		if err != nil {
			return errorResult(err), nil
		}

		page, err := client.ListFiles(ctx, opts)
		if err != nil {
			return errorResult(err), nil
		}

		output, err := drive.RenderFileList(page.Files, format, 0)
		if err != nil {
			return errorResult(err), nil
		}
		output += drive.PaginationInstruction(page.NextPageToken)

		return mcp.NewToolResultText(output), nil
	}
}

func registerGetFileTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("drive_get_file",
		mcp.WithDescription("Get detailed metadata for a file, including owners and permissions"),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("Google Drive file ID"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"drive_get_file", "drive", "get", sc, GetFileHandler(sc)))
}

// GetFileHandler returns the drive_get_file handler.
func GetFileHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		fileID, _ := args["file_id"].(string)
		if fileID == "" {
			return errorResult(fmt.Errorf("file_id is required")), nil
		}

		format, err := formatFromArgs(args)
		if err != nil {
			return errorResult(err), nil
		}

		client, err := sc.DriveClient()
		if err != nil {
			return errorResult(err), nil
		}

		info, err := client.GetFile(ctx, fileID)
		if err != nil {
			return errorResult(err), nil
		}

		output, err := drive.RenderFile(info, format)
		if err != nil {
			return errorResult(err), nil
		}

		return mcp.NewToolResultText(output), nil
	}
}

func registerCreateFolderTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("drive_create_folder",
		mcp.WithDescription("Create a folder in Google Drive for organizing event documents"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Folder name (e.g., 'Tech Conference 2026')"),
		),
		mcp.WithString("parent_folder_id",
			mcp.Description("Parent folder ID (creates in root if not specified)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"drive_create_folder", "drive", "create_folder", sc, CreateFolderHandler(sc)))
}

// CreateFolderHandler returns the drive_create_folder handler.
func CreateFolderHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		name, _ := args["name"].(string)
		parentFolderID, _ := args["parent_folder_id"].(string)

		format, err := formatFromArgs(args)
		if err != nil {
			return errorResult(err), nil
		}

		client, err := sc.DriveClient()
		if err != nil {
			return errorResult(err), nil
		}

		info, err := client.CreateFolder(ctx, name, parentFolderID)
		if err != nil {
			return errorResult(err), nil
		}

		output, err := drive.RenderFile(info, format)
		if err != nil {
			return errorResult(err), nil
		}

		return mcp.NewToolResultText(output), nil
	}
}

func registerUploadFileTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("drive_upload_file",
		mcp.WithDescription("Upload a text document to Google Drive"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("File name with extension (e.g., 'event-plan.md')"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("File content (text)"),
		),
		mcp.WithString("mime_type",
			mcp.Description("MIME type (default: 'text/plain')"),
		),
		mcp.WithString("folder_id",
			mcp.Description("Folder ID to upload into (root if not specified)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"drive_upload_file", "drive", "upload", sc, UploadFileHandler(sc)))
}

// UploadFileHandler returns the drive_upload_file handler.
func UploadFileHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		opts := drive.UploadOptions{}
		opts.Name, _ = args["name"].(string)
		opts.Content, _ = args["content"].(string)
		if mimeType, ok := args["mime_type"].(string); ok {
			opts.MimeType = mimeType
		}
		if folderID, ok := args["folder_id"].(string); ok {
			opts.ParentFolderID = folderID
		}

		format, err := formatFromArgs(args)
		if err != nil {
			return errorResult(err), nil
		}

		client, err := sc.DriveClient()
		if err != nil {
			return errorResult(err), nil
		}

		info, err := client.UploadFile(ctx, opts)
		if err != nil {
			return errorResult(err), nil
		}

		output, err := drive.RenderFile(info, format)
		if err != nil {
			return errorResult(err), nil
		}

		return mcp.NewToolResultText(output), nil
	}
}

func registerDeleteFileTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("drive_delete_file",
		mcp.WithDescription("Permanently delete a file from Google Drive"),
		mcp.WithString("file_id",
			mcp.Required(),
			mcp.Description("Google Drive file ID to delete"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"drive_delete_file", "drive", "delete", sc, DeleteFileHandler(sc)))
}

// DeleteFileHandler returns the drive_delete_file handler.
func DeleteFileHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		fileID, _ := args["file_id"].(string)
		if fileID == "" {
			return errorResult(fmt.Errorf("file_id is required")), nil
		}

		client, err := sc.DriveClient()
		if err != nil {
			return errorResult(err), nil
		}

		if err := client.DeleteFile(ctx, fileID); err != nil {
			return errorResult(err), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted file with ID: %s", fileID)), nil
	}
}

func registerSearchFilesTool(s *mcpserver.MCPServer, sc *server.ServerContext) {
	tool := mcp.NewTool("drive_search_files",
		mcp.WithDescription("Search for files by name in Google Drive"),
		mcp.WithString("search_term",
			mcp.Required(),
			mcp.Description("Search term to find in file names (e.g., 'conference', 'participant list')"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (1-50, default: 10)"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'markdown' or 'json' (default: markdown)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"drive_search_files", "drive", "search", sc, SearchFilesHandler(sc)))
}

// SearchFilesHandler returns the drive_search_files handler.
func SearchFilesHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		searchTerm, _ := args["search_term"].(string)

		var limit int64
		if raw, ok := args["limit"].(float64); ok {
			limit = int64(raw)
		}

		format, err := formatFromArgs(args)
		if err != nil {
			return errorResult(err), nil
		}

		client, err := sc.DriveClient()
		if err != nil {
			return errorResult(err), nil
		}

		files, err := client.SearchFiles(ctx, searchTerm, limit)
		if err != nil {
			return errorResult(err), nil
		}

		if len(files) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No files found matching '%s'", searchTerm)), nil
		}

		output, err := drive.RenderFileList(files, format, len(files))
		if err != nil {
			return errorResult(err), nil
		}

		return mcp.NewToolResultText(output), nil
	}
}
