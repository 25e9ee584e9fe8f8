// Package drive_tools provides MCP tools for the Google Drive document
// gateway: listing, inspecting, creating, uploading, deleting and
// searching event documents.
package drive_tools
