package state

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mkramer/instapp/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS installs (
    name         TEXT PRIMARY KEY,
    archive      TEXT NOT NULL,
    path         TEXT NOT NULL,
    binaries     TEXT NOT NULL DEFAULT '[]',
    desktop      INTEGER NOT NULL DEFAULT 0,
    installed_at TEXT NOT NULL
);
`

// SQLiteState records completed installs. Recording is advisory: the
// installer treats failures here as warnings, never as install failures.
type SQLiteState struct {
	mu sync.RWMutex
	db *sql.DB
}

func New(dbPath string) (*SQLiteState, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteState{db: db}, nil
}

func (s *SQLiteState) Record(app *domain.InstalledApp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	binaries, err := json.Marshal(app.Binaries)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO installs (name, archive, path, binaries, desktop, installed_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		app.Name, app.Archive, app.Path, string(binaries),
		boolToInt(app.Desktop), app.InstalledAt.UTC().Format(time.RFC3339),
	)
	return err
}

func (s *SQLiteState) List() ([]*domain.InstalledApp, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT name, archive, path, binaries, desktop, installed_at
		FROM installs ORDER BY installed_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []*domain.InstalledApp
	for rows.Next() {
		var app domain.InstalledApp
		var binaries, installedAt string
		var desktop int

		if err := rows.Scan(&app.Name, &app.Archive, &app.Path, &binaries, &desktop, &installedAt); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(binaries), &app.Binaries); err != nil {
			app.Binaries = nil
		}
		app.Desktop = desktop != 0
		app.InstalledAt, _ = time.Parse(time.RFC3339, installedAt)

		apps = append(apps, &app)
	}

	return apps, rows.Err()
}

func (s *SQLiteState) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
