// Package participants stores event participants in a local SQLite
// database. A duplicate email is a normal outcome reported in the save
// result, not an error.
package participants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// schema creates the tables on first use. Moderators are seeded by
// operators out of band; the store only reads them.
const schema = `
CREATE TABLE IF NOT EXISTS moderators (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    city TEXT,
    description TEXT,
    email TEXT,
    phone TEXT,
    expertise TEXT,
    created_at TIMESTAMP
);

CREATE TABLE IF NOT EXISTS participants (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    email TEXT UNIQUE NOT NULL,
    company TEXT,
    role TEXT,
    phone TEXT,
    created_at TIMESTAMP
);
`

// DefaultListLimit is the number of participants returned when no limit
// is given.
const DefaultListLimit = 10

// Participant is a stored event participant.
type Participant struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role"`
}

// SaveResult reports the outcome of a save attempt. Duplicate emails
// yield Success=false with a descriptive message rather than an error.
type SaveResult struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	ParticipantID int64  `json:"participant_id,omitempty"`
}

// Moderator is a stored event moderator.
type Moderator struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	City      string `json:"city"`
	Expertise string `json:"expertise"`
	Email     string `json:"email"`
}

// Store provides participant persistence over SQLite.
type Store struct {
	db *sql.DB
}

// Open opens the database at path, creating the schema if needed.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save inserts a new participant. Name and email are required; company,
// role, and phone may be empty.
func (s *Store) Save(ctx context.Context, name, email, company, role, phone string) (*SaveResult, error) {
	if name == "" {
		return nil, fmt.Errorf("participant name is required")
	}
	if email == "" {
		return nil, fmt.Errorf("participant email is required")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO participants (name, email, company, role, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, name, email, company, role, phone, time.Now())
	if err != nil {
		if isUniqueViolation(err) {
			return &SaveResult{
				Success: false,
				Message: fmt.Sprintf("Email '%s' already exists!", email),
			}, nil
		}
		return nil, fmt.Errorf("failed to save participant: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read participant id: %w", err)
	}

	return &SaveResult{
		Success:       true,
		Message:       fmt.Sprintf("Participant '%s' saved successfully!", name),
		ParticipantID: id,
	}, nil
}

// List returns the most recently added participants plus the total
// participant count. A limit of 0 applies DefaultListLimit.
func (s *Store) List(ctx context.Context, limit int64) ([]Participant, int64, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(company, ''), COALESCE(role, '')
		FROM participants
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list participants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	participants := make([]Participant, 0, limit)
	for rows.Next() {
		var p Participant
		if err := rows.Scan(&p.ID, &p.Name, &p.Email, &p.Company, &p.Role); err != nil {
			return nil, 0, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate participants: %w", err)
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM participants`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count participants: %w", err)
	}

	return participants, total, nil
}

// Moderators returns all stored moderators.
func (s *Store) Moderators(ctx context.Context) ([]Moderator, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(city, ''), COALESCE(expertise, ''), COALESCE(email, '')
		FROM moderators
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list moderators: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var moderators []Moderator
	for rows.Next() {
		var m Moderator
		if err := rows.Scan(&m.ID, &m.Name, &m.City, &m.Expertise, &m.Email); err != nil {
			return nil, fmt.Errorf("failed to scan moderator: %w", err)
		}
		moderators = append(moderators, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moderators: %w", err)
	}

	return moderators, nil
}

// isUniqueViolation reports whether err is a SQLite unique-constraint
// failure.
func isUniqueViolation(err error) bool {
	var serr *sqlite.Error
	if !errors.As(err, &serr) {
		return false
	}
	code := serr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT
}
