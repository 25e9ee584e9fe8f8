// Package files_tools provides the filesystem MCP tool for event
// planning documents, confined to a single allowed directory.
package files_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/plannery/eventkit/internal/server"
	"github.com/plannery/eventkit/internal/tools/common"
)

// Action names accepted by the filesystem tool.
const (
	ActionList  = "list"
	ActionRead  = "read"
	ActionWrite = "write"
)

type listResult struct {
	Success bool     `json:"success"`
	Action  string   `json:"action"`
	Files   []string `json:"files"`
	Count   int      `json:"count"`
}

type readResult struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type writeResult struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

type failureResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RegisterFilesTools registers the filesystem tool with the MCP
// server. In read-only mode the write action is rejected at dispatch.
func RegisterFilesTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	tool := mcp.NewTool("filesystem",
		mcp.WithDescription("Manage event planning documents. Actions: 'list' (show all files - no filename needed), 'read' (read file content - requires filename), 'write' (save content to file - requires filename and content). Files are stored in a dedicated event planning folder."),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of 'read', 'write', 'list'"),
		),
		mcp.WithString("filename",
			mcp.Description("Name of the file (not needed for the list action)"),
		),
		mcp.WithString("content",
			mcp.Description("Content to write (for the write action)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"filesystem", "files", "manage", sc, FilesystemHandler(sc, readOnly)))

	return nil
}

// FilesystemHandler returns the filesystem handler.
func FilesystemHandler(sc *server.ServerContext, readOnly bool) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		action, _ := args["action"].(string)
		filename, _ := args["filename"].(string)

		store, err := sc.FileStore()
		if err != nil {
			return jsonResult(failureResult{Error: err.Error()})
		}

		switch action {
		case ActionList:
			names, err := store.List()
			if err != nil {
				return jsonResult(failureResult{Error: err.Error()})
			}
			if names == nil {
				names = []string{}
			}
			return jsonResult(listResult{
				Success: true,
				Action:  ActionList,
				Files:   names,
				Count:   len(names),
			})

		case ActionRead:
			if filename == "" {
				return jsonResult(failureResult{Error: fmt.Sprintf("filename is required for action '%s'", action)})
			}
			content, err := store.Read(filename)
			if err != nil {
				return jsonResult(failureResult{Error: err.Error()})
			}
			return jsonResult(readResult{
				Success:  true,
				Action:   ActionRead,
				Filename: filename,
				Content:  content,
			})

		case ActionWrite:
			if readOnly {
				return jsonResult(failureResult{Error: "action 'write' requires write mode"})
			}
			if filename == "" {
				return jsonResult(failureResult{Error: fmt.Sprintf("filename is required for action '%s'", action)})
			}
			content, _ := args["content"].(string)
			if err := store.Write(filename, content); err != nil {
				return jsonResult(failureResult{Error: err.Error()})
			}
			return jsonResult(writeResult{
				Success:  true,
				Action:   ActionWrite,
				Filename: filename,
				Message:  fmt.Sprintf("Successfully wrote to %s", filename),
			})

		default:
			return jsonResult(failureResult{
				Error: fmt.Sprintf("Unknown action: %s. Use 'read', 'write', or 'list'", action),
			})
		}
	}
}

func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
