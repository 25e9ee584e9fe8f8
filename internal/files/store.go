// Package files manages event-planning documents inside a single
// allowed directory. Filenames that resolve outside the directory are
// rejected.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrAccessDenied is the message for filenames escaping the allowed
// directory.
const ErrAccessDenied = "Access denied - file outside allowed directory"

// Store confines document reads and writes to one directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if it
// does not exist.
func NewStore(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve document directory: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create document directory: %w", err)
	}
	return &Store{dir: abs}, nil
}

// Dir returns the allowed directory.
func (s *Store) Dir() string {
	return s.dir
}

// List returns the names of the regular files in the directory.
// Subdirectories are not listed.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// Read returns the content of the named document.
func (s *Store) Read(filename string) (string, error) {
	path, err := s.resolve(filename)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("File not found: %s", filename)
		}
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(data), nil
}

// Write stores content under the named document, replacing any
// existing content.
func (s *Store) Write(filename, content string) error {
	path, err := s.resolve(filename)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

// resolve validates a filename and returns its absolute path inside
// the allowed directory.
func (s *Store) resolve(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required")
	}

	path, err := filepath.Abs(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("failed to resolve filename: %w", err)
	}

	if path != s.dir && !strings.HasPrefix(path, s.dir+string(filepath.Separator)) {
		return "", fmt.Errorf("%s", ErrAccessDenied)
	}
	if path == s.dir {
		return "", fmt.Errorf("%s", ErrAccessDenied)
	}

	return path, nil
}
