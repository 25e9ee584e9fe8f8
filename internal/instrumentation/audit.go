package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/plannery/eventkit/internal/logging"
)

// ToolInvocation captures all information about a tool invocation for audit logging.
// This provides a comprehensive audit trail for all MCP tool calls.
//
// # Privacy Considerations
//
// The Subject field may contain PII (for example a participant email). When
// logging, the AuditLogger anonymizes it unless IncludePII is enabled, and
// audit logs should be routed to storage with appropriate access controls.
type ToolInvocation struct {
	// Tool name
	Tool string

	// Subject is the primary entity the tool acted on, when one exists
	// (participant email, file ID, city). May contain PII.
	Subject string

	// Target information for backend services
	ServiceName string // Backend service (drive, weather, participants, memory, files)
	Operation   string // Operation type (list, get, create, upload, delete, search)

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging.
// The subject is anonymized to keep PII out of general log streams;
// for full audit logging use LogAuditAttrs.
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		slog.Duration(logging.KeyDuration, ti.Duration),
		logging.Status(ti.Status()),
	}

	// Add optional fields only if present
	if ti.Subject != "" {
		attrs = append(attrs, logging.UserHash(ti.Subject))
	}
	if ti.ServiceName != "" {
		attrs = append(attrs, logging.Service(ti.ServiceName))
	}
	if ti.Operation != "" {
		attrs = append(attrs, logging.Operation(ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging.
// This includes the raw subject for compliance/audit purposes.
//
// # Security Warning
//
// This method may include PII. Ensure audit logs are stored securely with
// appropriate access controls and retained according to compliance
// requirements.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		logging.Tool(ti.Tool),
		slog.Duration(logging.KeyDuration, ti.Duration),
		logging.Status(ti.Status()),
	}

	// Add all optional fields
	if ti.Subject != "" {
		attrs = append(attrs, slog.String("subject", ti.Subject))
	}
	if ti.ServiceName != "" {
		attrs = append(attrs, logging.Service(ti.ServiceName))
	}
	if ti.Operation != "" {
		attrs = append(attrs, logging.Operation(ti.Operation))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String(logging.KeyError, ti.Error))
	}

	return attrs
}

// NewToolInvocation creates a new ToolInvocation with timing started.
// Call Complete() when the tool operation finishes.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithSubject sets the primary entity the tool acted on.
func (ti *ToolInvocation) WithSubject(subject string) *ToolInvocation {
	ti.Subject = subject
	return ti
}

// WithService sets the backend service and operation.
func (ti *ToolInvocation) WithService(serviceName, operation string) *ToolInvocation {
	ti.ServiceName = serviceName
	ti.Operation = operation
	return ti
}

// WithSpanContext extracts trace context from the current span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	ti.TraceID = GetTraceID(ctx)
	ti.SpanID = GetSpanID(ctx)
	return ti
}

// Complete marks the invocation as completed and calculates duration.
// Returns the same ToolInvocation for method chaining.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteWithError marks the invocation as failed with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// CompleteSuccess marks the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// AuditLogger provides structured audit logging for tool invocations.
// It wraps slog.Logger with convenience methods for logging tool operations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, PII is not included in logs (anonymized identifiers are used instead).
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: false,
		enabled:    true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// SetIncludePII sets whether to include raw subjects in audit logs.
func (al *AuditLogger) SetIncludePII(include bool) {
	al.includePII = include
}

// SetEnabled sets whether audit logging is enabled.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogToolInvocation logs a tool invocation using the standard log attributes.
// If the logger is configured with IncludePII, raw subjects are logged;
// otherwise, only anonymized identifiers are used.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	// Choose between PII and anonymized logging based on configuration
	var attrs []slog.Attr
	if al.includePII {
		attrs = ti.LogAuditAttrs()
	} else {
		attrs = ti.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}
