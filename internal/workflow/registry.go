// Package workflow exposes the event-planning operations as
// name-registered functions for embedding in an agent workflow without
// an MCP transport. Functions take JSON-decoded arguments and return a
// JSON payload; failures are success-false payloads, never a panic.
package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/plannery/eventkit/internal/logging"
)

// Func is a registered workflow function.
type Func struct {
	// Name is the registration name, unique within a registry.
	Name string

	// Description is the agent-facing description.
	Description string

	// Run executes the function with decoded arguments.
	Run func(ctx context.Context, args map[string]interface{}) (interface{}, error)
}

// Failure is the JSON shape returned for any call that does not
// produce a result.
type Failure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Registry holds named workflow functions.
type Registry struct {
	mu     sync.RWMutex
	fns    map[string]Func
	logger logging.Logger
}

// NewRegistry creates an empty registry logging through the default
// slog logger.
func NewRegistry() *Registry {
	return &Registry{
		fns:    make(map[string]Func),
		logger: logging.DefaultLogger(),
	}
}

// SetLogger replaces the registry's logger. The embedding host can pass
// its own logging.Logger implementation; a nil logger is ignored.
func (r *Registry) SetLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

func (r *Registry) log() logging.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}

// Register adds a function to the registry. Registering an unnamed
// function, a function without a Run body, or a duplicate name is an
// error.
func (r *Registry) Register(fn Func) error {
	if fn.Name == "" {
		return fmt.Errorf("workflow function requires a name")
	}
	if fn.Run == nil {
		return fmt.Errorf("workflow function %q requires a run body", fn.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.fns[fn.Name]; exists {
		return fmt.Errorf("workflow function %q already registered", fn.Name)
	}

	r.fns[fn.Name] = fn
	return nil
}

// Get returns a function by name.
func (r *Registry) Get(name string) (Func, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.fns[name]
	return fn, ok
}

// Names returns the registered function names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Call invokes a function by name with JSON-encoded arguments and
// returns the indented JSON result. Unknown names, argument decode
// failures and function errors all come back as a success-false
// payload, so the caller always receives well-formed JSON.
func (r *Registry) Call(ctx context.Context, name string, argsJSON []byte) string {
	fn, ok := r.Get(name)
	if !ok {
		r.log().Warn("workflow call to unknown function", "function", name)
		return failureJSON(fmt.Sprintf("unknown function: %s", name))
	}

	args := map[string]interface{}{}
	if len(argsJSON) > 0 {
		if err := json.Unmarshal(argsJSON, &args); err != nil {
			r.log().Warn("workflow call with invalid arguments", "function", name, "error", err)
			return failureJSON(fmt.Sprintf("invalid arguments: %v", err))
		}
	}

	result, err := fn.Run(ctx, args)
	if err != nil {
		r.log().Warn("workflow function failed", "function", name, "error", err)
		return failureJSON(err.Error())
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return failureJSON(fmt.Sprintf("failed to render result: %v", err))
	}
	return string(data)
}

func failureJSON(msg string) string {
	data, err := json.MarshalIndent(Failure{Error: msg}, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success": false, "error": %q}`, msg)
	}
	return string(data)
}
