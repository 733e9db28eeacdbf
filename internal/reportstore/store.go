package reportstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jingwhale/blockpy/internal/analyzer"
)

// Store persists one row per analysis so instructors can review a
// student's submission history.
type Store struct {
	db *sql.DB
}

// Entry is one persisted analysis summary.
type Entry struct {
	ID          string
	Filename    string
	CreatedAt   time.Time
	Success     bool
	IssueCounts map[string]int
}

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	success INTEGER NOT NULL,
	issue_counts TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS reports_created_at ON reports (created_at);
`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report store %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize report store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save records the summary of one report and returns its id.
func (s *Store) Save(filename string, report *analyzer.Report) (string, error) {
	counts := make(map[string]int)
	for kind, list := range report.Issues {
		if len(list) > 0 {
			counts[string(kind)] = len(list)
		}
	}
	encoded, err := json.Marshal(counts)
	if err != nil {
		return "", fmt.Errorf("failed to encode issue counts: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.Exec(
		`INSERT INTO reports (id, filename, created_at, success, issue_counts) VALUES (?, ?, ?, ?, ?)`,
		id, filename, time.Now().UTC(), report.Success, string(encoded),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save report: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, filename, created_at, success, issue_counts FROM reports ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var success int
		var encoded string
		if err := rows.Scan(&entry.ID, &entry.Filename, &entry.CreatedAt, &success, &encoded); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		entry.Success = success != 0
		if err := json.Unmarshal([]byte(encoded), &entry.IssueCounts); err != nil {
			return nil, fmt.Errorf("failed to decode issue counts: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
