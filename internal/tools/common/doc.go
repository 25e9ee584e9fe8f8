// Package common provides shared helpers for MCP tool packages,
// including instrumentation wrappers for metrics and audit logging.
package common
