package model_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestBookmark_JSONSerialization(t *testing.T) {
	tests := []struct {
		name     string
		bookmark model.Bookmark
	}{
		{
			name: "bookmark with all fields",
			bookmark: model.Bookmark{
				ID:          "b1",
				URL:         "https://go.dev/blog",
				Title:       "The Go Blog",
				Tags:        []string{"go", "reading"},
				Description: "Official Go blog",
				CreatedAt:   time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
				UpdatedAt:   timePtr(time.Date(2025, 1, 20, 14, 22, 0, 0, time.UTC)),
				Archived:    true,
			},
		},
		{
			name: "minimal bookmark",
			bookmark: model.Bookmark{
				ID:        "b2",
				URL:       "https://news.ycombinator.com",
				Title:     "news.ycombinator.com",
				Tags:      []string{},
				CreatedAt: time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.bookmark)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			var got model.Bookmark
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}

			if got.ID != tt.bookmark.ID {
				t.Errorf("ID mismatch: got %q, want %q", got.ID, tt.bookmark.ID)
			}
			if got.URL != tt.bookmark.URL {
				t.Errorf("URL mismatch: got %q, want %q", got.URL, tt.bookmark.URL)
			}
			if got.Archived != tt.bookmark.Archived {
				t.Errorf("Archived mismatch: got %v, want %v", got.Archived, tt.bookmark.Archived)
			}
			if (got.UpdatedAt == nil) != (tt.bookmark.UpdatedAt == nil) {
				t.Errorf("UpdatedAt nil-ness mismatch: got %v, want %v", got.UpdatedAt, tt.bookmark.UpdatedAt)
			}
		})
	}
}

func TestNewBookmark_Defaults(t *testing.T) {
	b := model.NewBookmark(model.NewBookmarkParams{URL: "https://example.com/post/1"})

	if b.ID == "" {
		t.Error("expected generated ID")
	}
	if b.Title != "example.com" {
		t.Errorf("expected host as default title, got %q", b.Title)
	}
	if b.Tags == nil || len(b.Tags) != 0 {
		t.Errorf("expected empty initialized tags, got %v", b.Tags)
	}
	if b.Archived {
		t.Error("new bookmark should not be archived")
	}
	if b.UpdatedAt != nil {
		t.Error("new bookmark should have nil UpdatedAt")
	}
	if b.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "plain https", raw: "https://example.com", want: "https://example.com"},
		{name: "plain http", raw: "http://example.com/a?b=c", want: "http://example.com/a?b=c"},
		{name: "percent encoded", raw: "https%3A%2F%2Fexample.com", want: "https://example.com"},
		{name: "surrounding whitespace", raw: "  https://example.com  ", want: "https://example.com"},
		{name: "empty", raw: "", wantErr: true},
		{name: "no scheme", raw: "example.com", wantErr: true},
		{name: "ftp scheme", raw: "ftp://example.com", wantErr: true},
		{name: "scheme only", raw: "https://", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.NormalizeURL(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %q", tt.raw, got)
				}
				var verr *model.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://go.dev/blog/slices", "go.dev"},
		{"http://localhost:8080/x", "localhost:8080"},
		{"not a url at all", "not a url at all"}, // fallback to raw string
	}

	for _, tt := range tests {
		if got := model.ExtractDomain(tt.url); got != tt.want {
			t.Errorf("ExtractDomain(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestParseTags(t *testing.T) {
	got := model.ParseTags(" go , reading,, , tools ")
	want := []string{"go", "reading", "tools"}

	if len(got) != len(want) {
		t.Fatalf("expected %d tags, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDocument_Counts(t *testing.T) {
	doc := model.Document{
		Bookmarks: []model.Bookmark{
			{ID: "b1", URL: "https://a.com", Archived: false},
			{ID: "b2", URL: "https://b.com", Archived: true},
			{ID: "b3", URL: "https://c.com", Archived: false},
		},
	}

	if doc.ActiveCount() != 2 {
		t.Errorf("expected 2 active, got %d", doc.ActiveCount())
	}
	if doc.ArchivedCount() != 1 {
		t.Errorf("expected 1 archived, got %d", doc.ArchivedCount())
	}
}

func TestDocument_SortByCreatedAtDesc(t *testing.T) {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	doc := model.Document{
		Bookmarks: []model.Bookmark{
			{ID: "old", CreatedAt: base},
			{ID: "new", CreatedAt: base.Add(48 * time.Hour)},
			{ID: "mid", CreatedAt: base.Add(24 * time.Hour)},
		},
	}

	doc.SortByCreatedAtDesc()

	wantOrder := []string{"new", "mid", "old"}
	for i, id := range wantOrder {
		if doc.Bookmarks[i].ID != id {
			t.Errorf("position %d: got %q, want %q", i, doc.Bookmarks[i].ID, id)
		}
	}
}

func TestDocument_GetBookmarkByID(t *testing.T) {
	doc := model.Document{
		Bookmarks: []model.Bookmark{
			{ID: "b1", URL: "https://a.com"},
		},
	}

	if b := doc.GetBookmarkByID("b1"); b == nil || b.URL != "https://a.com" {
		t.Errorf("expected to find b1, got %v", b)
	}
	if b := doc.GetBookmarkByID("missing"); b != nil {
		t.Error("expected nil for missing ID")
	}
}
