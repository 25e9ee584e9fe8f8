// Package participant_tools provides MCP tools for the event
// participant database: saving registrations and listing recent
// participants.
package participant_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/plannery/eventkit/internal/participants"
	"github.com/plannery/eventkit/internal/server"
	"github.com/plannery/eventkit/internal/tools/common"
)

// participantListing is the get_participants result payload.
type participantListing struct {
	Participants []participants.Participant `json:"participants"`
	TotalCount   int64                      `json:"total_count"`
}

// RegisterParticipantTools registers the participant database tools
// with the MCP server. save_participant is a write tool and is skipped
// in read-only mode.
func RegisterParticipantTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if !readOnly {
		saveTool := mcp.NewTool("save_participant",
			mcp.WithDescription("Save a participant to the event database"),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Participant's full name"),
			),
			mcp.WithString("email",
				mcp.Required(),
				mcp.Description("Participant's email address"),
			),
			mcp.WithString("company",
				mcp.Description("Participant's company"),
			),
			mcp.WithString("role",
				mcp.Description("Participant's role"),
			),
			mcp.WithString("phone",
				mcp.Description("Participant's phone number"),
			),
		)
		s.AddTool(saveTool, common.InstrumentedToolHandlerWithService(
			"save_participant", "participants", "save", sc, SaveParticipantHandler(sc)))
	}

	listTool := mcp.NewTool("get_participants",
		mcp.WithDescription("Retrieve participants from the event database"),
		mcp.WithNumber("limit",
			mcp.Description("Number of participants to retrieve (default: 10)"),
		),
	)
	s.AddTool(listTool, common.InstrumentedToolHandlerWithService(
		"get_participants", "participants", "list", sc, GetParticipantsHandler(sc)))

	return nil
}

// SaveParticipantHandler returns the save_participant handler. A
// duplicate email is a friendly failure payload, not a tool error.
func SaveParticipantHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		name, _ := args["name"].(string)
		email, _ := args["email"].(string)
		company, _ := args["company"].(string)
		role, _ := args["role"].(string)
		phone, _ := args["phone"].(string)

		store, err := sc.ParticipantStore()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error saving participant: %v", err)), nil
		}

		result, err := store.Save(ctx, name, email, company, role, phone)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error saving participant: %v", err)), nil
		}

		payload, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error saving participant: %v", err)), nil
		}

		return mcp.NewToolResultText(string(payload)), nil
	}
}

// GetParticipantsHandler returns the get_participants handler.
func GetParticipantsHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		var limit int64
		if raw, ok := args["limit"].(float64); ok {
			limit = int64(raw)
		}

		store, err := sc.ParticipantStore()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving participants: %v", err)), nil
		}

		list, total, err := store.List(ctx, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving participants: %v", err)), nil
		}

		payload, err := json.MarshalIndent(participantListing{
			Participants: list,
			TotalCount:   total,
		}, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error retrieving participants: %v", err)), nil
		}

		return mcp.NewToolResultText(string(payload)), nil
	}
}
