package server

import (
	"context"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/plannery/eventkit/internal/instrumentation"
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// DisableStreaming forces plain request/response mode for clients
	// that cannot consume SSE streams.
	DisableStreaming bool

	// HealthChecker serves the probe endpoints. Optional.
	HealthChecker *HealthChecker

	// Metrics records per-request HTTP metrics. Optional.
	Metrics *instrumentation.Metrics
}

// HTTPServer exposes the MCP server over streamable HTTP along with
// health probes. Prometheus metrics stay on the dedicated metrics
// server so they are never reachable from MCP traffic.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	httpServer *http.Server
	config     HTTPServerConfig
}

// NewHTTPServer creates an HTTP transport wrapper for an MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, config HTTPServerConfig) *HTTPServer {
	return &HTTPServer{
		mcpServer: mcpServer,
		config:    config,
	}
}

// statusRecorder captures the response status for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withMetrics wraps a handler with HTTP request metrics. Passes the
// handler through unchanged when metrics are disabled.
func (s *HTTPServer) withMetrics(endpoint string, next http.Handler) http.Handler {
	if s.config.Metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		s.config.Metrics.RecordHTTPRequest(r.Context(), r.Method, endpoint,
			recorder.status, time.Since(start))
	})
}

// buildServer assembles the mux and http.Server. WriteTimeout stays
// disabled: tool calls may hold the response for the full backend
// timeout (Drive calls are budgeted at 30s) and SSE streams stay open
// indefinitely, so any write deadline would cut legitimate responses
// short. Slowloris protection comes from ReadHeaderTimeout.
func (s *HTTPServer) buildServer(addr string) *http.Server {
	mux := http.NewServeMux()

	if s.config.HealthChecker != nil {
		s.config.HealthChecker.RegisterHealthEndpoints(mux)
	}

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath("/mcp"),
	}
	if s.config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}
	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)

	mux.Handle("/mcp", s.withMetrics("/mcp", streamable))

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       120 * time.Second,
	}
}

// Start starts the HTTP server on the given address and blocks until
// the server stops.
func (s *HTTPServer) Start(addr string) error {
	s.httpServer = s.buildServer(addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
