// Package memory keeps a short conversation log in a local JSON file.
// The file retains at most a configured number of messages; older
// entries fall off on save.
package memory

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultMaxHistory is the number of messages retained when no limit is
// configured.
const DefaultMaxHistory = 10

// RecallCount is the number of recent messages returned by Recall.
const RecallCount = 5

// Message is one stored conversation turn.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// SaveOutcome reports the result of saving a message.
type SaveOutcome struct {
	// TotalMessages is the history length after the save, before the
	// retention trim is applied to the file.
	TotalMessages int
}

// Store is a file-backed conversation log. It is safe for concurrent
// use within one process; the file itself is not locked across
// processes.
type Store struct {
	path       string
	maxHistory int

	mu sync.Mutex
}

// NewStore creates a store backed by the file at path. A maxHistory of
// 0 applies DefaultMaxHistory.
func NewStore(path string, maxHistory int) *Store {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Store{path: path, maxHistory: maxHistory}
}

// Save appends a message with the current timestamp.
func (s *Store) Save(role, content string) (*SaveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load()
	history = append(history, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339),
	})

	if err := s.write(history); err != nil {
		return nil, err
	}

	return &SaveOutcome{TotalMessages: len(history)}, nil
}

// Recall returns the most recent messages (up to RecallCount) and the
// total stored count.
func (s *Store) Recall() ([]Message, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := s.load()
	start := len(history) - RecallCount
	if start < 0 {
		start = 0
	}
	recent := make([]Message, len(history)-start)
	copy(recent, history[start:])

	return recent, len(history), nil
}

// Search returns all messages whose content contains the query,
// case-insensitively.
func (s *Store) Search(query string) ([]Message, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required for search")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(query)
	var results []Message
	for _, msg := range s.load() {
		if strings.Contains(strings.ToLower(msg.Content), needle) {
			results = append(results, msg)
		}
	}

	return results, nil
}

// Clear removes all stored messages.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.write(nil)
}

// load reads the history file. A missing or corrupt file reads as an
// empty history.
func (s *Store) load() []Message {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil
	}

	var history []Message
	if err := json.Unmarshal(data, &history); err != nil {
		return nil
	}
	return history
}

// write persists the history, keeping only the newest maxHistory
// messages.
func (s *Store) write(history []Message) error {
	if len(history) > s.maxHistory {
		history = history[len(history)-s.maxHistory:]
	}
	if history == nil {
		history = []Message{}
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create memory directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode memory: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memory: %w", err)
	}
	return nil
}
