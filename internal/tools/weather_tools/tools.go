// Package weather_tools provides the check_weather MCP tool for
// event-location planning.
package weather_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/plannery/eventkit/internal/server"
	"github.com/plannery/eventkit/internal/tools/common"
)

type weatherResult struct {
	Success            bool    `json:"success"`
	City               string  `json:"city"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
	Conditions         string  `json:"conditions"`
}

type weatherFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RegisterWeatherTools registers the check_weather tool with the MCP
// server.
func RegisterWeatherTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	tool := mcp.NewTool("check_weather",
		mcp.WithDescription("Check weather conditions for event planning"),
		mcp.WithString("city",
			mcp.Required(),
			mcp.Description("City name (e.g., 'Austin')"),
		),
		mcp.WithString("country_code",
			mcp.Description("ISO country code (default: 'US')"),
		),
	)

	s.AddTool(tool, common.InstrumentedToolHandlerWithService(
		"check_weather", "weather", "current", sc, CheckWeatherHandler(sc)))

	return nil
}

// CheckWeatherHandler returns the check_weather handler. Lookup
// failures, including a missing API key, are success-false payloads.
func CheckWeatherHandler(sc *server.ServerContext) common.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		city, _ := args["city"].(string)
		countryCode, _ := args["country_code"].(string)

		client, err := sc.WeatherClient()
		if err != nil {
			return jsonResult(weatherFailure{Error: err.Error()})
		}

		conditions, err := client.Current(ctx, city, countryCode)
		if err != nil {
			return jsonResult(weatherFailure{Error: err.Error()})
		}

		return jsonResult(weatherResult{
			Success:            true,
			City:               conditions.City,
			TemperatureCelsius: conditions.TemperatureCelsius,
			Conditions:         conditions.Conditions,
		})
	}
}

func jsonResult(payload interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to render result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
