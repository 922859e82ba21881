package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// StorageKey is the fixed key the document is persisted under. The JSON
// backend uses it as the file name; the SQLite backend as the meta row key.
const StorageKey = "cliptuck-data"

// Storage defines the interface for persisting the bookmark document.
type Storage interface {
	Load() (*model.Document, error)
	Save(doc *model.Document) error
}

// JSONStorage implements Storage using a single pretty-printed JSON file.
type JSONStorage struct {
	path string
}

// NewJSONStorage creates a new JSONStorage with the given file path.
func NewJSONStorage(path string) *JSONStorage {
	return &JSONStorage{path: path}
}

// Path returns the storage file path.
func (s *JSONStorage) Path() string {
	return s.path
}

// Load reads the document from the JSON file.
// A missing file yields an empty document. A malformed file resets to an
// empty document and reports a FormatError alongside it, so callers can warn
// and keep going.
func (s *JSONStorage) Load() (*model.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.NewDocument(), nil
		}
		return nil, err
	}

	var doc model.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.NewDocument(), &model.FormatError{Reason: "stored data is not valid JSON"}
	}

	// The bookmark list must be an array; anything else is a corrupt document.
	if doc.Bookmarks == nil {
		doc.Bookmarks = []model.Bookmark{}
	}

	return &doc, nil
}

// Save writes the document to the JSON file.
// Creates the directory if it doesn't exist.
func (s *JSONStorage) Save(doc *model.Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}

// DefaultJSONPath returns the default document path:
// ~/.config/cliptuck/cliptuck-data.json
func DefaultJSONPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "cliptuck", StorageKey+".json"), nil
}

// OpenStorage opens the appropriate storage backend.
// Prefers SQLite if the database file exists, otherwise falls back to JSON.
func OpenStorage() (Storage, error) {
	sqlitePath, err := DefaultSQLitePath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(sqlitePath); err == nil {
		return NewSQLiteStorage(sqlitePath)
	}

	jsonPath, err := DefaultJSONPath()
	if err != nil {
		return nil, err
	}
	return NewJSONStorage(jsonPath), nil
}
