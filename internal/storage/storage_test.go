package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/storage"
)

func TestJSONStorage_SaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cliptuck-data.json")

	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	doc := &model.Document{
		Bookmarks: []model.Bookmark{
			{ID: "b1", URL: "https://example.com", Title: "Example", Tags: []string{"test"}, CreatedAt: now},
		},
		LastExportAt: &now,
	}

	s := storage.NewJSONStorage(path)
	if err := s.Save(doc); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("data file was not created")
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	if len(loaded.Bookmarks) != 1 {
		t.Fatalf("expected 1 bookmark, got %d", len(loaded.Bookmarks))
	}
	if loaded.Bookmarks[0].Title != "Example" {
		t.Errorf("expected title 'Example', got %q", loaded.Bookmarks[0].Title)
	}
	if loaded.LastExportAt == nil || !loaded.LastExportAt.Equal(now) {
		t.Errorf("expected lastExportAt %v, got %v", now, loaded.LastExportAt)
	}
}

func TestJSONStorage_LoadNonexistent(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent.json")

	s := storage.NewJSONStorage(path)
	doc, err := s.Load()

	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if len(doc.Bookmarks) != 0 {
		t.Error("expected empty document for missing file")
	}
	if doc.LastExportAt != nil {
		t.Error("expected nil lastExportAt for missing file")
	}
}

func TestJSONStorage_CorruptFileResetsToEmpty(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cliptuck-data.json")

	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := storage.NewJSONStorage(path)
	doc, err := s.Load()

	var ferr *model.FormatError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected FormatError for corrupt file, got %v", err)
	}
	if doc == nil || len(doc.Bookmarks) != 0 {
		t.Error("expected reset-to-empty document alongside the error")
	}
}

func TestJSONStorage_CreatesDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "dir", "cliptuck-data.json")

	s := storage.NewJSONStorage(path)
	if err := s.Save(model.NewDocument()); err != nil {
		t.Fatalf("failed to save with nested dir: %v", err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("data file was not created in nested directory")
	}
}

func TestJSONStorage_PreservesOrder(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cliptuck-data.json")

	doc := &model.Document{
		Bookmarks: []model.Bookmark{
			{ID: "b1", URL: "https://first.com", Title: "First"},
			{ID: "b2", URL: "https://second.com", Title: "Second"},
			{ID: "b3", URL: "https://third.com", Title: "Third"},
		},
	}

	s := storage.NewJSONStorage(path)
	if err := s.Save(doc); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	expectedTitles := []string{"First", "Second", "Third"}
	for i, title := range expectedTitles {
		if loaded.Bookmarks[i].Title != title {
			t.Errorf("order not preserved: expected %q at position %d, got %q",
				title, i, loaded.Bookmarks[i].Title)
		}
	}
}

func TestConfig_Defaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load missing config: %v", err)
	}

	if cfg.ListenAddr == "" {
		t.Error("expected default listen address")
	}
	if !cfg.ConfirmDeletes {
		t.Error("expected confirm-deletes default on")
	}

	// Defaults should have been written out
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected config file to be created with defaults")
	}
}

func TestConfig_PartialFileGetsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.json")

	if err := os.WriteFile(path, []byte(`{"confirmDeletes": false}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := storage.LoadConfig(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.ConfirmDeletes {
		t.Error("explicit false should survive")
	}
	if cfg.ListenAddr == "" {
		t.Error("missing listenAddr should get the default")
	}
	if cfg.CaptureTags == nil {
		t.Error("missing captureTags should get the default")
	}
}
