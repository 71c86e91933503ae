package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteSink stores records in the assemblies table.
type SQLiteSink struct {
	db *sql.DB
	mu sync.Mutex
}

// OpenSQLite opens or creates the audit database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	s := &SQLiteSink{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *SQLiteSink) init() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS assemblies (
			id              TEXT PRIMARY KEY,
			created_at      TEXT NOT NULL,
			workspace_dir   TEXT NOT NULL,
			request_digest  TEXT NOT NULL,
			sections        TEXT NOT NULL,
			prompt          TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_assemblies_created ON assemblies(created_at);
		CREATE INDEX IF NOT EXISTS idx_assemblies_digest ON assemblies(request_digest);
	`)
	return err
}

func (s *SQLiteSink) Write(ctx context.Context, rec Record) error {
	sections, err := json.Marshal(rec.Sections)
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO assemblies (id, created_at, workspace_dir, request_digest, sections, prompt)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Timestamp.UTC().Format(time.RFC3339Nano), rec.WorkspaceDir, rec.RequestDigest, string(sections), rec.Prompt)
	if err != nil {
		return fmt.Errorf("insert assembly: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. A non-positive limit
// returns everything.
func (s *SQLiteSink) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, workspace_dir, request_digest, sections, prompt
		FROM assemblies
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("load assemblies: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		var createdAt, sections string
		if err := rows.Scan(&rec.ID, &createdAt, &rec.WorkspaceDir, &rec.RequestDigest, &sections, &rec.Prompt); err != nil {
			return nil, fmt.Errorf("scan assembly: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			rec.Timestamp = t
		}
		if err := json.Unmarshal([]byte(sections), &rec.Sections); err != nil {
			return nil, fmt.Errorf("decode sections for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assemblies: %w", err)
	}
	return records, nil
}

// Get returns one record by id.
func (s *SQLiteSink) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	var createdAt, sections string
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, workspace_dir, request_digest, sections, prompt
		FROM assemblies WHERE id = ?
	`, id)
	if err := row.Scan(&rec.ID, &createdAt, &rec.WorkspaceDir, &rec.RequestDigest, &sections, &rec.Prompt); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, fmt.Errorf("assembly %s not found", id)
		}
		return Record{}, fmt.Errorf("load assembly %s: %w", id, err)
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		rec.Timestamp = t
	}
	if err := json.Unmarshal([]byte(sections), &rec.Sections); err != nil {
		return Record{}, fmt.Errorf("decode sections for %s: %w", rec.ID, err)
	}
	return rec, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
