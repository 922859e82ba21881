package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

const currentSchemaVersion = 1

// SQLiteStorage implements Storage using a SQLite database.
type SQLiteStorage struct {
	db   *sql.DB
	path string
}

// NewSQLiteStorage creates a new SQLiteStorage with the given database path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &SQLiteStorage{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *SQLiteStorage) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *SQLiteStorage) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *SQLiteStorage) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS bookmarks (
			id TEXT PRIMARY KEY NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			description TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			updated_at TEXT,
			archived INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_bookmarks_url ON bookmarks(url);
		CREATE INDEX IF NOT EXISTS idx_bookmarks_archived ON bookmarks(archived);

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY NOT NULL,
			last_export_at TEXT
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Load reads the document from the SQLite database.
func (s *SQLiteStorage) Load() (*model.Document, error) {
	doc := model.NewDocument()

	rows, err := s.db.Query(`
		SELECT id, url, title, tags, description, created_at, updated_at, archived
		FROM bookmarks
		ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var b model.Bookmark
		var tagsJSON string
		var createdAtStr string
		var updatedAtStr sql.NullString
		var archived int

		if err := rows.Scan(
			&b.ID, &b.URL, &b.Title, &tagsJSON,
			&b.Description, &createdAtStr, &updatedAtStr, &archived,
		); err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(tagsJSON), &b.Tags); err != nil {
			b.Tags = []string{}
		}

		b.CreatedAt, _ = time.Parse(time.RFC3339, createdAtStr)

		if updatedAtStr.Valid {
			t, err := time.Parse(time.RFC3339, updatedAtStr.String)
			if err == nil {
				b.UpdatedAt = &t
			}
		}

		b.Archived = archived == 1

		doc.Bookmarks = append(doc.Bookmarks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	var lastExportStr sql.NullString
	err = s.db.QueryRow("SELECT last_export_at FROM meta WHERE key = ?", StorageKey).Scan(&lastExportStr)
	if err == nil && lastExportStr.Valid {
		if t, perr := time.Parse(time.RFC3339, lastExportStr.String); perr == nil {
			doc.LastExportAt = &t
		}
	}

	return doc, nil
}

// Save writes the document to the SQLite database.
// The whole document is rewritten inside one transaction - all or nothing.
func (s *SQLiteStorage) Save(doc *model.Document) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bookmarks"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO bookmarks (id, url, title, tags, description, created_at, updated_at, archived, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, b := range doc.Bookmarks {
		tagsJSON, _ := json.Marshal(b.Tags)
		if b.Tags == nil {
			tagsJSON = []byte("[]")
		}

		var updatedAt *string
		if b.UpdatedAt != nil {
			v := b.UpdatedAt.Format(time.RFC3339)
			updatedAt = &v
		}

		archived := 0
		if b.Archived {
			archived = 1
		}

		if _, err := stmt.Exec(
			b.ID, b.URL, b.Title, string(tagsJSON), b.Description,
			b.CreatedAt.Format(time.RFC3339), updatedAt, archived, i,
		); err != nil {
			return err
		}
	}

	var lastExport *string
	if doc.LastExportAt != nil {
		v := doc.LastExportAt.Format(time.RFC3339)
		lastExport = &v
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, last_export_at) VALUES (?, ?)",
		StorageKey, lastExport,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// DefaultSQLitePath returns the default SQLite database path:
// ~/.config/cliptuck/cliptuck.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "cliptuck", "cliptuck.db"), nil
}
