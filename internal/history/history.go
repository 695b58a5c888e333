// Package history keeps an append-only SQLite log of executions. Logging is
// best effort: a failure to record never fails the execution flow.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/reqmanhq/reqman/internal/config"
	"github.com/reqmanhq/reqman/internal/types"
)

type Manager struct {
	db *sql.DB
}

// NewManager opens (creating if needed) the history database at dbPath.
func NewManager(dbPath string) (*Manager, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	m := &Manager{db: db}
	if err := m.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return m, nil
}

func (m *Manager) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS executions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		request_id TEXT,
		request_name TEXT,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status INTEGER NOT NULL,
		status_text TEXT,
		duration_ms INTEGER NOT NULL,
		error TEXT,
		response_body TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_executions_timestamp ON executions(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_executions_request_id ON executions(request_id);
	`

	if _, err := m.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return nil
}

// Append records one execution of def with its result.
func (m *Manager) Append(def *types.RequestDefinition, result *types.ResponseResult) error {
	query := `
		INSERT INTO executions (
			timestamp, request_id, request_name, method, url,
			status, status_text, duration_ms, error, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	timestamp := result.ExecutedAt
	if timestamp == "" {
		timestamp = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := m.db.Exec(query,
		timestamp,
		def.ID,
		def.Name,
		def.Method,
		def.URL,
		result.Status,
		result.StatusText,
		result.Duration,
		result.Error,
		result.Body,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	return nil
}

// Recent returns up to limit entries, newest first.
func (m *Manager) Recent(limit int) ([]types.HistoryEntry, error) {
	query := `
		SELECT id, timestamp, COALESCE(request_id, ''), COALESCE(request_name, ''),
		       method, url, status, COALESCE(status_text, ''), duration_ms,
		       COALESCE(error, ''), COALESCE(response_body, '')
		FROM executions
		ORDER BY id DESC
		LIMIT ?
	`

	rows, err := m.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []types.HistoryEntry
	for rows.Next() {
		var e types.HistoryEntry
		if err := rows.Scan(
			&e.ID, &e.Timestamp, &e.RequestID, &e.RequestName,
			&e.Method, &e.URL, &e.Status, &e.StatusText, &e.Duration,
			&e.Error, &e.Body,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read history rows: %w", err)
	}

	return entries, nil
}

// Close releases the database handle.
func (m *Manager) Close() error {
	return m.db.Close()
}
