package model

import "time"

// Bookmark represents a saved URL with metadata.
type Bookmark struct {
	ID          string     `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Tags        []string   `json:"tags"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"` // nil = never edited
	Archived    bool       `json:"archived"`
}

// NewBookmarkParams holds parameters for creating a new Bookmark.
type NewBookmarkParams struct {
	URL         string
	Title       string
	Tags        []string
	Description string
}

// NewBookmark creates a Bookmark with generated UUID and creation timestamp.
// The title falls back to the URL host when empty.
func NewBookmark(params NewBookmarkParams) Bookmark {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	title := params.Title
	if title == "" {
		title = ExtractDomain(params.URL)
	}

	return Bookmark{
		ID:          GenerateUUID(),
		URL:         params.URL,
		Title:       title,
		Tags:        tags,
		Description: params.Description,
		CreatedAt:   time.Now(),
		UpdatedAt:   nil,
		Archived:    false,
	}
}

// Domain returns the host component of the bookmark URL.
func (b Bookmark) Domain() string {
	return ExtractDomain(b.URL)
}
