package memory_tools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannery/eventkit/internal/config"
	"github.com/plannery/eventkit/internal/server"
)

func newTestContext(t *testing.T) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), config.Config{
		MemoryPath: filepath.Join(t.TempDir(), "conversation_memory.json"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func call(t *testing.T, sc *server.ServerContext, readOnly bool, args map[string]interface{}) map[string]interface{} {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := MemoryStorageHandler(sc, readOnly)(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestSaveAndRecall(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{
		"action":  "save",
		"message": "book the venue by Friday",
		"role":    "assistant",
	})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Memory saved", payload["message"])
	assert.Equal(t, float64(1), payload["total_messages"])

	payload = call(t, sc, false, map[string]interface{}{"action": "recall"})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(1), payload["total_messages"])

	history, ok := payload["history"].([]interface{})
	require.True(t, ok)
	require.Len(t, history, 1)

	first, ok := history[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "assistant", first["role"])
	assert.Equal(t, "book the venue by Friday", first["content"])
}

func TestSaveDefaultRole(t *testing.T) {
	sc := newTestContext(t)

	call(t, sc, false, map[string]interface{}{
		"action":  "save",
		"message": "hello",
	})

	payload := call(t, sc, false, map[string]interface{}{"action": "recall"})
	history := payload["history"].([]interface{})
	first := history[0].(map[string]interface{})
	assert.Equal(t, "user", first["role"])
}

func TestSearch(t *testing.T) {
	sc := newTestContext(t)

	for _, msg := range []string{"Venue booked", "catering quote received", "venue deposit paid"} {
		call(t, sc, false, map[string]interface{}{"action": "save", "message": msg})
	}

	payload := call(t, sc, false, map[string]interface{}{
		"action": "search",
		"query":  "VENUE",
	})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(2), payload["count"])
}

func TestSearchRequiresQuery(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{"action": "search"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Query required for search", payload["error"])
}

func TestClear(t *testing.T) {
	sc := newTestContext(t)

	call(t, sc, false, map[string]interface{}{"action": "save", "message": "x"})

	payload := call(t, sc, false, map[string]interface{}{"action": "clear"})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Memory cleared", payload["message"])

	payload = call(t, sc, false, map[string]interface{}{"action": "recall"})
	assert.Equal(t, float64(0), payload["total_messages"])
}

func TestUnknownAction(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{"action": "archive"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Unknown action: archive", payload["error"])
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, true, map[string]interface{}{"action": "save", "message": "x"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "action 'save' requires write mode", payload["error"])

	payload = call(t, sc, true, map[string]interface{}{"action": "clear"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "action 'clear' requires write mode", payload["error"])

	// Read actions still work
	payload = call(t, sc, true, map[string]interface{}{"action": "recall"})
	assert.Equal(t, true, payload["success"])
}
