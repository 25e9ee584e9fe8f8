// Package memory_tools provides the conversation memory MCP tool:
// an action-multiplexed interface over the JSON-file message log.
package memory_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/plannery/eventkit/internal/memory"
	"github.com/plannery/eventkit/internal/server"
	"github.com/plannery/eventkit/internal/tools/common"
)

// Action names accepted by the memory_storage tool.
const (
	ActionSave   = "save"
	ActionRecall = "recall"
	ActionSearch = "search"
	ActionClear  = "clear"
)

type saveResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TotalMessages int    `json:"total_messages"`
}

type recallResult struct {
	Success       bool             `json:"success"`
	History       []memory.Message `json:"history"`
	TotalMessages int              `json:"total_messages"`
}

type searchResult struct {
	Success bool             `json:"success"`
	Results []memory.Message `json:"results"`
	Count   int              `json:"count"`
}

type actionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegisterMemoryTools registers the memory_storage tool with the MCP
// server. In read-only mode the save and clear actions are rejected at
// dispatch.
func RegisterMemoryTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	tool := mcp.NewTool("memory_storage",
		mcp.WithDescription("Manage conversation memory. Actions: save, recall, search, clear"),
		mcp.WithString("action",
			mcp.Required(),
			mcp.Description("One of 'save', 'recall', 'search', 'clear'"),
		),
		mcp.WithString("message",
			mcp.Description("Message content to save (for the save action)"),
		),
		mcp.WithString("role",
			mcp.Description("Message role for the save action (default: 'user')"),
		),
		mcp.WithString("query",
			mcp.Description("Search text (required for the search action)"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"memory_storage", "memory", "manage", sc, MemoryStorageHandler(sc, readOnly)))

	return nil
}

// MemoryStorageHandler returns the memory_storage handler.
func MemoryStorageHandler(sc *server.ServerContext, readOnly bool) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		action, _ := args["action"].(string)
		store := sc.MemoryStore()

		switch action {
		case ActionSave:
			if readOnly {
				return jsonResult(actionResult{Success: false, Error: "action 'save' requires write mode"})
			}
			role, _ := args["role"].(string)
			if role == "" {
				role = "user"
			}
			message, _ := args["message"].(string)

			outcome, err := store.Save(role, message)
			if err != nil {
				return jsonResult(actionResult{Success: false, Error: err.Error()})
			}
			return jsonResult(saveResult{
				Success:       true,
				Message:       "Memory saved",
				TotalMessages: outcome.TotalMessages,
			})

		case ActionRecall:
			history, total, err := store.Recall()
			if err != nil {
				return jsonResult(actionResult{Success: false, Error: err.Error()})
			}
			if history == nil {
				history = []memory.Message{}
			}
			return jsonResult(recallResult{
				Success:       true,
				History:       history,
				TotalMessages: total,
			})

		case ActionSearch:
			query, _ := args["query"].(string)
			if query == "" {
				return jsonResult(actionResult{Success: false, Error: "Query required for search"})
			}
			results, err := store.Search(query)
			if err != nil {
				return jsonResult(actionResult{Success: false, Error: err.Error()})
			}
			if results == nil {
				results = []memory.Message{}
			}
			return jsonResult(searchResult{
				Success: true,
				Results: results,
				Count:   len(results),
			})

		case ActionClear:
			if readOnly {
				return jsonResult(actionResult{Success: false, Error: "action 'clear' requires write mode"})
			}
			if err := store.Clear(); err != nil {
				return jsonResult(actionResult{Success: false, Error: err.Error()})
			}
			return jsonResult(actionResult{Success: true, Message: "Memory cleared"})

		default:
			return jsonResult(actionResult{
				Success: false,
				Error:   fmt.Sprintf("Unknown action: %s", action),
			})
		}
	}
}

// jsonResult renders a payload as an indented JSON tool result. The
// success flag lives inside the payload; only marshalling itself is a
// tool error.
func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
