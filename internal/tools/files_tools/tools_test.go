package files_tools

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
		DocsDir: filepath.Join(t.TempDir(), "event_documents"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func call(t *testing.T, sc *server.ServerContext, readOnly bool, args map[string]interface{}) map[string]interface{} {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	result, err := FilesystemHandler(sc, readOnly)(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &payload))
	return payload
}

func TestWriteReadList(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{
		"action":   "write",
		"filename": "agenda.md",
		"content":  "# Agenda",
	})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Successfully wrote to agenda.md", payload["message"])

	payload = call(t, sc, false, map[string]interface{}{
		"action":   "read",
		"filename": "agenda.md",
	})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "# Agenda", payload["content"])

	payload = call(t, sc, false, map[string]interface{}{"action": "list"})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(1), payload["count"])
}

func TestListEmpty(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{"action": "list"})
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(0), payload["count"])
	assert.NotNil(t, payload["files"])
}

func TestFilenameRequired(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{"action": "read"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "filename is required for action 'read'", payload["error"])

	payload = call(t, sc, false, map[string]interface{}{"action": "write"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "filename is required for action 'write'", payload["error"])
}

func TestReadMissingFile(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{
		"action":   "read",
		"filename": "missing.txt",
	})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "File not found: missing.txt", payload["error"])
}

func TestEscapeDenied(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{
		"action":   "read",
		"filename": "../../etc/passwd",
	})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Access denied - file outside allowed directory", payload["error"])
}

func TestUnknownAction(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, false, map[string]interface{}{"action": "delete", "filename": "x"})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "Unknown action: delete. Use 'read', 'write', or 'list'", payload["error"])
}

func TestReadOnlyRejectsWrite(t *testing.T) {
	sc := newTestContext(t)

	payload := call(t, sc, true, map[string]interface{}{
		"action":   "write",
		"filename": "agenda.md",
		"content":  "x",
	})
	assert.Equal(t, false, payload["success"])
	assert.Equal(t, "action 'write' requires write mode", payload["error"])

	// Read actions still work
	payload = call(t, sc, true, map[string]interface{}{"action": "list"})
	assert.Equal(t, true, payload["success"])
}
