package model

import (
	"sort"
	"time"
)

// Document holds all bookmarks plus the last export timestamp.
// It is the single unit of persistence.
type Document struct {
	Bookmarks    []Bookmark `json:"bookmarks"`
	LastExportAt *time.Time `json:"lastExportAt"`
}

// NewDocument creates an empty Document with an initialized slice.
func NewDocument() *Document {
	return &Document{
		Bookmarks:    []Bookmark{},
		LastExportAt: nil,
	}
}

// GetBookmarkByID finds a bookmark by ID, returns nil if not found.
func (d *Document) GetBookmarkByID(id string) *Bookmark {
	for i := range d.Bookmarks {
		if d.Bookmarks[i].ID == id {
			return &d.Bookmarks[i]
		}
	}
	return nil
}

// IndexOfURL returns the index of the bookmark with the given URL, or -1.
func (d *Document) IndexOfURL(url string) int {
	for i := range d.Bookmarks {
		if d.Bookmarks[i].URL == url {
			return i
		}
	}
	return -1
}

// HasBookmarkID reports whether a bookmark with the given ID exists.
func (d *Document) HasBookmarkID(id string) bool {
	return d.GetBookmarkByID(id) != nil
}

// ActiveCount returns the number of non-archived bookmarks.
func (d *Document) ActiveCount() int {
	n := 0
	for i := range d.Bookmarks {
		if !d.Bookmarks[i].Archived {
			n++
		}
	}
	return n
}

// ArchivedCount returns the number of archived bookmarks.
func (d *Document) ArchivedCount() int {
	return len(d.Bookmarks) - d.ActiveCount()
}

// SortByCreatedAtDesc orders bookmarks most-recent-first.
func (d *Document) SortByCreatedAtDesc() {
	sort.SliceStable(d.Bookmarks, func(i, j int) bool {
		return d.Bookmarks[i].CreatedAt.After(d.Bookmarks[j].CreatedAt)
	})
}
