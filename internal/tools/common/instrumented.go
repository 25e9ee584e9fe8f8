package common

import (
	"context"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/plannery/eventkit/internal/instrumentation"
	"github.com/plannery/eventkit/internal/logging"
	"github.com/plannery/eventkit/internal/server"
)

// ToolHandlerFunc is the handler signature mcp-go expects for tools.
type ToolHandlerFunc = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with tracing, metrics and
// audit logging. Every invocation runs inside a tool span; metrics and
// audit records are emitted when the server context carries them.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		// The span comes from the global tracer provider, a no-op
		// when tracing is disabled
		ctx, span := instrumentation.StartToolSpan(ctx, toolName)
		defer span.End()

		// Metrics and audit logger may be nil if not configured
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)

		if subject := SubjectFromArgs(request.GetArguments()); subject != "" {
			invocation.WithSubject(subject)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				instrumentation.SetSpanError(span, err)
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			instrumentation.SetSpanSuccess(span)
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		logging.WithTool(slog.Default(), toolName).
			Debug("tool completed", logging.Status(status), logging.Err(err))

		return result, err
	}
}

// InstrumentedToolHandlerWithService is like InstrumentedToolHandler but also
// records the backend service and operation for more detailed metrics, and
// annotates the span with the backend attributes.
//
// This handler records both:
//   - MCP tool invocation metrics (mcp_tool_invocations_total, mcp_tool_duration_seconds)
//   - backend operation metrics (backend_operations_total, backend_operation_duration_seconds)
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandlerWithService("my_tool", "drive", "list", sc, handler))
func InstrumentedToolHandlerWithService(toolName, serviceName, operation string, sc *server.ServerContext, handler ToolHandlerFunc) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		attrs := instrumentation.NewSpanAttributeBuilder().
			WithService(serviceName).
			WithOperation(operation).
			Build()
		ctx, span := instrumentation.StartToolSpan(ctx, toolName, attrs...)
		defer span.End()

		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithService(serviceName, operation)

		if subject := SubjectFromArgs(request.GetArguments()); subject != "" {
			invocation.WithSubject(subject)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			if err != nil {
				instrumentation.SetSpanError(span, err)
				invocation.CompleteWithError(err)
			} else {
				invocation.Complete(false, nil)
			}
		} else {
			instrumentation.SetSpanSuccess(span)
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, duration)
			metrics.RecordBackendOperation(ctx, serviceName, operation, status, duration)
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		logger := logging.WithService(logging.WithTool(slog.Default(), toolName), serviceName)
		logging.WithOperation(logger, operation).
			Debug("tool completed", logging.Status(status), logging.Err(err))

		return result, err
	}
}
