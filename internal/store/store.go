// Package store implements the in-memory bookmark store. Every mutation is
// followed by a best-effort persistence write: a failed write is reported as
// a PersistenceError but never rolls back the in-memory change.
package store

import (
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/storage"
)

// Scope selects which bookmarks a bulk delete targets.
type Scope string

const (
	ScopeActive   Scope = "active"
	ScopeArchived Scope = "archived"
	ScopeAll      Scope = "all"
)

// Store owns the live document and its persistence backend.
type Store struct {
	doc     *model.Document
	persist storage.Storage
}

// New creates a Store over the given document and backend.
func New(doc *model.Document, persist storage.Storage) *Store {
	if doc == nil {
		doc = model.NewDocument()
	}
	return &Store{doc: doc, persist: persist}
}

// Open loads the document from the backend and wraps it in a Store.
// A corrupt document comes back reset-to-empty together with the FormatError,
// so the caller can warn and continue with the empty store.
func Open(persist storage.Storage) (*Store, error) {
	doc, err := persist.Load()
	if doc == nil {
		return nil, err
	}
	return New(doc, persist), err
}

// Document returns the live document.
func (s *Store) Document() *model.Document {
	return s.doc
}

// Len returns the number of bookmarks in the store.
func (s *Store) Len() int {
	return len(s.doc.Bookmarks)
}

// AddParams holds the input of an Add operation. Title, Tags and Description
// are optional.
type AddParams struct {
	URL         string
	Title       string
	Tags        []string
	Description string
}

// Add saves a bookmark, upserting by normalized URL. An existing record keeps
// its ID and CreatedAt; its mutable fields are overwritten and the record is
// un-archived. A new record is prepended (most-recent-first ordering).
func (s *Store) Add(params AddParams) (model.Bookmark, error) {
	normalized, err := model.NormalizeURL(params.URL)
	if err != nil {
		return model.Bookmark{}, err
	}

	title := params.Title
	if title == "" {
		title = model.ExtractDomain(normalized)
	}
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	if i := s.doc.IndexOfURL(normalized); i >= 0 {
		existing := &s.doc.Bookmarks[i]
		existing.Title = title
		existing.Tags = tags
		existing.Description = params.Description
		existing.Archived = false
		result := *existing
		return result, s.persistNow()
	}

	b := model.NewBookmark(model.NewBookmarkParams{
		URL:         normalized,
		Title:       title,
		Tags:        tags,
		Description: params.Description,
	})
	s.doc.Bookmarks = append([]model.Bookmark{b}, s.doc.Bookmarks...)
	return b, s.persistNow()
}

// UpdateFields holds the editable fields of a bookmark.
type UpdateFields struct {
	URL         string
	Title       string
	Tags        []string
	Description string
}

// Update edits an existing bookmark and stamps UpdatedAt.
func (s *Store) Update(id string, fields UpdateFields) (model.Bookmark, error) {
	b := s.doc.GetBookmarkByID(id)
	if b == nil {
		return model.Bookmark{}, &model.NotFoundError{ID: id}
	}

	normalized, err := model.NormalizeURL(fields.URL)
	if err != nil {
		return model.Bookmark{}, err
	}

	title := fields.Title
	if title == "" {
		title = model.ExtractDomain(normalized)
	}
	tags := fields.Tags
	if tags == nil {
		tags = []string{}
	}

	now := time.Now()
	b.URL = normalized
	b.Title = title
	b.Tags = tags
	b.Description = fields.Description
	b.UpdatedAt = &now

	return *b, s.persistNow()
}

// ToggleArchive flips the archived flag and returns the new state.
func (s *Store) ToggleArchive(id string) (bool, error) {
	b := s.doc.GetBookmarkByID(id)
	if b == nil {
		return false, &model.NotFoundError{ID: id}
	}
	b.Archived = !b.Archived
	return b.Archived, s.persistNow()
}

// Delete removes a single bookmark. Confirmation prompts are the caller's
// responsibility.
func (s *Store) Delete(id string) error {
	if !s.doc.HasBookmarkID(id) {
		return &model.NotFoundError{ID: id}
	}
	kept := s.doc.Bookmarks[:0]
	for _, b := range s.doc.Bookmarks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	s.doc.Bookmarks = kept
	return s.persistNow()
}

// DeleteMany removes all bookmarks whose ID is in ids and returns the count
// removed. Unknown IDs are ignored.
func (s *Store) DeleteMany(ids []string) (int, error) {
	target := make(map[string]bool, len(ids))
	for _, id := range ids {
		target[id] = true
	}

	kept := s.doc.Bookmarks[:0]
	removed := 0
	for _, b := range s.doc.Bookmarks {
		if target[b.ID] {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	s.doc.Bookmarks = kept

	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistNow()
}

// DeleteAll removes every bookmark matching the scope and returns the count
// removed.
func (s *Store) DeleteAll(scope Scope) (int, error) {
	before := len(s.doc.Bookmarks)

	switch scope {
	case ScopeActive:
		kept := s.doc.Bookmarks[:0]
		for _, b := range s.doc.Bookmarks {
			if b.Archived {
				kept = append(kept, b)
			}
		}
		s.doc.Bookmarks = kept
	case ScopeArchived:
		kept := s.doc.Bookmarks[:0]
		for _, b := range s.doc.Bookmarks {
			if !b.Archived {
				kept = append(kept, b)
			}
		}
		s.doc.Bookmarks = kept
	default:
		s.doc.Bookmarks = []model.Bookmark{}
	}

	removed := before - len(s.doc.Bookmarks)
	if removed == 0 {
		return 0, nil
	}
	return removed, s.persistNow()
}

// ImportMerge inserts bookmarks whose ID is not already present (existing
// records win), re-sorts the whole store by CreatedAt descending and returns
// the count actually merged.
func (s *Store) ImportMerge(incoming []model.Bookmark) (int, error) {
	existing := make(map[string]bool, len(s.doc.Bookmarks))
	for _, b := range s.doc.Bookmarks {
		existing[b.ID] = true
	}

	merged := 0
	for _, b := range incoming {
		if existing[b.ID] {
			continue
		}
		if b.Tags == nil {
			b.Tags = []string{}
		}
		s.doc.Bookmarks = append(s.doc.Bookmarks, b)
		existing[b.ID] = true
		merged++
	}

	s.doc.SortByCreatedAtDesc()

	if merged == 0 {
		return 0, nil
	}
	return merged, s.persistNow()
}

// MarkExported stamps LastExportAt on the live document and persists it.
func (s *Store) MarkExported(now time.Time) error {
	s.doc.LastExportAt = &now
	return s.persistNow()
}

// persistNow writes the document through the backend. Failures are wrapped as
// PersistenceError; in-memory truth, best-effort persistence.
func (s *Store) persistNow() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Save(s.doc); err != nil {
		return &model.PersistenceError{Err: err}
	}
	return nil
}
