package workflow

import (
	"context"
	"fmt"

	"github.com/plannery/eventkit/internal/memory"
	"github.com/plannery/eventkit/internal/participants"
	"github.com/plannery/eventkit/internal/server"
)

// RegisterEventTools registers the event-planning collaborator
// functions against the shared server context. Both the MCP tools and
// these functions observe the same stores, so state written through
// one convention is visible through the other.
func RegisterEventTools(r *Registry, sc *server.ServerContext, readOnly bool) error {
	fns := []Func{
		{
			Name:        "save_participant",
			Description: "Save a participant to the event database",
			Run:         saveParticipant(sc, readOnly),
		},
		{
			Name:        "get_participants",
			Description: "Retrieve participants from the event database",
			Run:         getParticipants(sc),
		},
		{
			Name:        "memory_storage",
			Description: "Manage conversation memory. Actions: save, recall, search, clear",
			Run:         memoryStorage(sc, readOnly),
		},
		{
			Name:        "filesystem",
			Description: "Manage event planning documents. Actions: list, read, write",
			Run:         filesystem(sc, readOnly),
		},
		{
			Name:        "check_weather",
			Description: "Check weather conditions for event planning",
			Run:         checkWeather(sc),
		},
	}

	for _, fn := range fns {
		if err := r.Register(fn); err != nil {
			return err
		}
	}
	return nil
}

type saveParticipantResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ParticipantID int64  `json:"participant_id,omitempty"`
}

type participantListing struct {
	Participants []participants.Participant `json:"participants"`
	TotalCount   int64                      `json:"total_count"`
}

func saveParticipant(sc *server.ServerContext, readOnly bool) func(context.Context, map[string]interface{}) (interface{}, error) {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		if readOnly {
			return nil, fmt.Errorf("save_participant requires write mode")
		}

		name, _ := args["name"].(string)
		email, _ := args["email"].(string)
		company, _ := args["company"].(string)
		role, _ := args["role"].(string)
		phone, _ := args["phone"].(string)

		store, err := sc.ParticipantStore()
		if err != nil {
			return nil, fmt.Errorf("Error saving participant: %v", err)
		}

		result, err := store.Save(ctx, name, email, company, role, phone)
		if err != nil {
			return nil, fmt.Errorf("Error saving participant: %v", err)
		}

		return saveParticipantResult{
			Success:       result.Success,
			Message:       result.Message,
			ParticipantID: result.ParticipantID,
		}, nil
	}
}

func getParticipants(sc *server.ServerContext) func(context.Context, map[string]interface{}) (interface{}, error) {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		var limit int64
		if raw, ok := args["limit"].(float64); ok {
			limit = int64(raw)
		}

		store, err := sc.ParticipantStore()
		if err != nil {
			return nil, fmt.Errorf("Error retrieving participants: %v", err)
		}

		list, total, err := store.List(ctx, limit)
		if err != nil {
			return nil, fmt.Errorf("Error retrieving participants: %v", err)
		}

		return participantListing{
			Participants: list,
			TotalCount:   total,
		}, nil
	}
}

type memorySaveResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	TotalMessages int    `json:"total_messages"`
}

type memoryRecallResult struct {
	Success       bool             `json:"success"`
	History       []memory.Message `json:"history"`
	TotalMessages int              `json:"total_messages"`
}

type memorySearchResult struct {
	Success bool             `json:"success"`
	Results []memory.Message `json:"results"`
	Count   int              `json:"count"`
}

type memoryActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func memoryStorage(sc *server.ServerContext, readOnly bool) func(context.Context, map[string]interface{}) (interface{}, error) {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		action, _ := args["action"].(string)
		store := sc.MemoryStore()

		switch action {
		case "save":
			if readOnly {
				return nil, fmt.Errorf("action 'save' requires write mode")
			}
			role, _ := args["role"].(string)
			if role == "" {
				role = "user"
			}
			message, _ := args["message"].(string)

			outcome, err := store.Save(role, message)
			if err != nil {
				return nil, err
			}
			return memorySaveResult{
				Success:       true,
				Message:       "Memory saved",
				TotalMessages: outcome.TotalMessages,
			}, nil

		case "recall":
			history, total, err := store.Recall()
			if err != nil {
				return nil, err
			}
			if history == nil {
				history = []memory.Message{}
			}
			return memoryRecallResult{
				Success:       true,
				History:       history,
				TotalMessages: total,
			}, nil

		case "search":
			query, _ := args["query"].(string)
			if query == "" {
				return nil, fmt.Errorf("Query required for search")
			}
			results, err := store.Search(query)
			if err != nil {
				return nil, err
			}
			if results == nil {
				results = []memory.Message{}
			}
			return memorySearchResult{
				Success: true,
				Results: results,
				Count:   len(results),
			}, nil

		case "clear":
			if readOnly {
				return nil, fmt.Errorf("action 'clear' requires write mode")
			}
			if err := store.Clear(); err != nil {
				return nil, err
			}
			return memoryActionResult{Success: true, Message: "Memory cleared"}, nil

		default:
			return nil, fmt.Errorf("Unknown action: %s", action)
		}
	}
}

type fileListing struct {
	Success bool     `json:"success"`
	Action  string   `json:"action"`
	Files   []string `json:"files"`
	Count   int      `json:"count"`
}

type fileContent struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

type fileWritten struct {
	Success  bool   `json:"success"`
	Action   string `json:"action"`
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

func filesystem(sc *server.ServerContext, readOnly bool) func(context.Context, map[string]interface{}) (interface{}, error) {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		action, _ := args["action"].(string)
		filename, _ := args["filename"].(string)

		store, err := sc.FileStore()
		if err != nil {
			return nil, err
		}

		switch action {
		case "list":
			names, err := store.List()
			if err != nil {
				return nil, err
			}
			if names == nil {
				names = []string{}
			}
			return fileListing{
				Success: true,
				Action:  "list",
				Files:   names,
				Count:   len(names),
			}, nil

		case "read":
			if filename == "" {
				return nil, fmt.Errorf("filename is required for action '%s'", action)
			}
			content, err := store.Read(filename)
			if err != nil {
				return nil, err
			}
			return fileContent{
				Success:  true,
				Action:   "read",
				Filename: filename,
				Content:  content,
			}, nil

		case "write":
			if readOnly {
				return nil, fmt.Errorf("action 'write' requires write mode")
			}
			if filename == "" {
				return nil, fmt.Errorf("filename is required for action '%s'", action)
			}
			content, _ := args["content"].(string)
			if err := store.Write(filename, content); err != nil {
				return nil, err
			}
			return fileWritten{
				Success:  true,
				Action:   "write",
				Filename: filename,
				Message:  fmt.Sprintf("Successfully wrote to %s", filename),
			}, nil

		default:
			return nil, fmt.Errorf("Unknown action: %s. Use 'read', 'write', or 'list'", action)
		}
	}
}

type weatherReport struct {
	Success            bool    `json:"success"`
	City               string  `json:"city"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
	Conditions         string  `json:"conditions"`
}

func checkWeather(sc *server.ServerContext) func(context.Context, map[string]interface{}) (interface{}, error) {
	return func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		city, _ := args["city"].(string)
		countryCode, _ := args["country_code"].(string)

		client, err := sc.WeatherClient()
		if err != nil {
			return nil, err
		}

		conditions, err := client.Current(ctx, city, countryCode)
		if err != nil {
			return nil, err
		}

		return weatherReport{
			Success:            true,
			City:               conditions.City,
			TemperatureCelsius: conditions.TemperatureCelsius,
			Conditions:         conditions.Conditions,
		}, nil
	}
}
