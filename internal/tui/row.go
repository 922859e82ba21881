package tui

import "github.com/RYUKOU-OKUMURA/cliptuck/internal/model"

// RowKind distinguishes group headers from bookmark rows in the list.
type RowKind int

const (
	RowHeader RowKind = iota
	RowBookmark
)

// Row is one rendered line of the bookmark list. Grouped views flatten their
// groups into header rows followed by their bookmarks.
type Row struct {
	Kind     RowKind
	Header   string
	Indent   int
	Bookmark *model.Bookmark
}

// IsHeader returns true for group header rows.
func (r Row) IsHeader() bool {
	return r.Kind == RowHeader
}

// ID returns the bookmark ID, or "" for header rows.
func (r Row) ID() string {
	if r.Kind == RowHeader {
		return ""
	}
	return r.Bookmark.ID
}
