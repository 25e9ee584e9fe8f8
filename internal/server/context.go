package server

import (
	"context"
	"sync"

	"github.com/plannery/eventkit/internal/config"
	"github.com/plannery/eventkit/internal/drive"
	"github.com/plannery/eventkit/internal/files"
	"github.com/plannery/eventkit/internal/instrumentation"
	"github.com/plannery/eventkit/internal/memory"
	"github.com/plannery/eventkit/internal/participants"
	"github.com/plannery/eventkit/internal/weather"
)

// ServerContext holds the shared state for the MCP server and the
// workflow registry: configuration, lazily created backend clients and
// stores, and instrumentation hooks. Both registration conventions
// observe the same instances, so tools cannot drift apart.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg config.Config

	driveClient      *drive.Client
	weatherClient    *weather.Client
	participantStore *participants.Store
	memoryStore      *memory.Store
	fileStore        *files.Store

	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger

	mu       sync.RWMutex
	shutdown bool
}

// NewServerContext creates a new server context. Backend clients are
// not created here; they are initialized lazily so a missing credential
// surfaces as a tool result instead of a startup failure.
func NewServerContext(ctx context.Context, cfg config.Config) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		cfg:    cfg,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the resolved configuration.
func (sc *ServerContext) Config() config.Config {
	return sc.cfg
}

// DriveClient returns the Drive client, creating it on first use.
// A missing access token fails here with a classified error and no
// network activity.
func (sc *ServerContext) DriveClient() (*drive.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.driveClient != nil {
		return sc.driveClient, nil
	}

	client, err := drive.NewClient(sc.ctx, drive.Config{AccessToken: sc.cfg.DriveAccessToken})
	if err != nil {
		return nil, err
	}

	sc.driveClient = client
	return client, nil
}

// SetDriveClient sets the Drive client. Used by tests to inject a
// client bound to a fake endpoint.
func (sc *ServerContext) SetDriveClient(client *drive.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.driveClient = client
}

// WeatherClient returns the weather client, creating it on first use.
// A missing API key fails here with no network activity.
func (sc *ServerContext) WeatherClient() (*weather.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.weatherClient != nil {
		return sc.weatherClient, nil
	}

	client, err := weather.NewClient(weather.Config{APIKey: sc.cfg.WeatherAPIKey})
	if err != nil {
		return nil, err
	}

	sc.weatherClient = client
	return client, nil
}

// SetWeatherClient sets the weather client. Used by tests.
func (sc *ServerContext) SetWeatherClient(client *weather.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.weatherClient = client
}

// ParticipantStore returns the participant store, opening the database
// on first use.
func (sc *ServerContext) ParticipantStore() (*participants.Store, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.participantStore != nil {
		return sc.participantStore, nil
	}

	store, err := participants.Open(sc.cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	sc.participantStore = store
	return store, nil
}

// MemoryStore returns the conversation memory store.
func (sc *ServerContext) MemoryStore() *memory.Store {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.memoryStore == nil {
		sc.memoryStore = memory.NewStore(sc.cfg.MemoryPath, memory.DefaultMaxHistory)
	}
	return sc.memoryStore
}

// FileStore returns the document file store, creating the allowed
// directory on first use.
func (sc *ServerContext) FileStore() (*files.Store, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.fileStore != nil {
		return sc.fileStore, nil
	}

	store, err := files.NewStore(sc.cfg.DocsDir)
	if err != nil {
		return nil, err
	}

	sc.fileStore = store
	return store, nil
}

// SetMetrics sets the metrics recorder for tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for tool instrumentation.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil when audit logging is
// disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context and closes the participant
// database.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()

	if sc.participantStore != nil {
		if err := sc.participantStore.Close(); err != nil {
			return err
		}
		sc.participantStore = nil
	}

	return nil
}
