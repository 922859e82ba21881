package exporter_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/exporter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/importer"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/store"
)

func exportSample() *model.Document {
	created := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	return &model.Document{
		Bookmarks: []model.Bookmark{
			{
				ID: "b1", URL: "https://go.dev", Title: "Go",
				Tags: []string{"go", "docs"}, CreatedAt: created,
			},
			{
				ID: "b2", URL: "https://old.example.com/a?b=1&c=2", Title: "Old & dusty",
				Tags: []string{}, Description: "kept for reference",
				CreatedAt: created.Add(-48 * time.Hour), Archived: true,
			},
		},
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	if got := exporter.Filename(now); got != "cliptuck-export-2025-03-10.json" {
		t.Errorf("unexpected filename: %q", got)
	}
}

func TestExportJSON_FullPrettyDocument(t *testing.T) {
	doc := exportSample()

	data, err := exporter.ExportJSON(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pretty-printed
	if !strings.Contains(string(data), "\n  ") {
		t.Error("expected indented JSON")
	}

	var got model.Document
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	// Full document, not a filtered view: archived records included.
	if len(got.Bookmarks) != 2 {
		t.Errorf("expected both bookmarks in export, got %d", len(got.Bookmarks))
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	doc := exportSample()

	data, err := exporter.ExportJSON(doc)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	parsed, err := importer.ParseJSON(data)
	if err != nil {
		t.Fatalf("import of own export failed: %v", err)
	}

	empty := store.New(model.NewDocument(), nil)
	merged, err := empty.ImportMerge(parsed.Bookmarks)
	if err != nil {
		t.Fatalf("merge failed: %v", err)
	}

	if merged != len(doc.Bookmarks) {
		t.Errorf("expected %d merged, got %d", len(doc.Bookmarks), merged)
	}
	for _, orig := range doc.Bookmarks {
		got := empty.Document().GetBookmarkByID(orig.ID)
		if got == nil {
			t.Fatalf("bookmark %s lost in round trip", orig.ID)
		}
		if got.URL != orig.URL || got.Title != orig.Title || got.Archived != orig.Archived {
			t.Errorf("bookmark %s changed in round trip: %+v vs %+v", orig.ID, got, orig)
		}
	}
}

func TestExportHTML(t *testing.T) {
	doc := exportSample()
	out := exporter.ExportHTML(doc)

	if !strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("missing Netscape header")
	}
	if !strings.Contains(out, `HREF="https://go.dev"`) {
		t.Error("missing active bookmark")
	}
	if !strings.Contains(out, `TAGS="go,docs"`) {
		t.Error("missing tags attribute")
	}
	if !strings.Contains(out, "<DT><H3>Archived</H3>") {
		t.Error("missing archived folder")
	}
	// HTML escaping of URL query separators and title entities
	if !strings.Contains(out, "https://old.example.com/a?b=1&amp;c=2") {
		t.Error("URL not escaped")
	}
	if !strings.Contains(out, "Old &amp; dusty") {
		t.Error("title not escaped")
	}
	if !strings.Contains(out, "<DD>kept for reference") {
		t.Error("description not exported")
	}
}

func TestExportHTML_ImportRoundTrip(t *testing.T) {
	doc := exportSample()
	out := exporter.ExportHTML(doc)

	bookmarks, err := importer.ParseHTML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("reimport failed: %v", err)
	}
	if len(bookmarks) != 2 {
		t.Fatalf("expected 2 bookmarks, got %d", len(bookmarks))
	}

	byURL := map[string]model.Bookmark{}
	for _, b := range bookmarks {
		byURL[b.URL] = b
	}
	if !byURL["https://old.example.com/a?b=1&c=2"].Archived {
		t.Error("archived partition lost in HTML round trip")
	}
	goDev := byURL["https://go.dev"]
	if len(goDev.Tags) != 2 {
		t.Errorf("tags lost in HTML round trip: %v", goDev.Tags)
	}
	if goDev.CreatedAt.Unix() != doc.Bookmarks[0].CreatedAt.Unix() {
		t.Error("ADD_DATE lost in HTML round trip")
	}
}
