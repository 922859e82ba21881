// Package capture implements the bookmarklet capture flow: parsing the
// invocation parameters, pre-filling the pending draft, and coordinating the
// completion signal between the capture window and its opener.
package capture

import (
	"net/url"
	"strings"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// Mode selects how a capture is confirmed.
type Mode int

const (
	// ModeDirect auto-submits after a short settle delay.
	ModeDirect Mode = iota
	// ModePopup pre-fills the draft and waits for explicit confirmation.
	ModePopup
)

// Intent is a parsed capture invocation.
type Intent struct {
	URL         string // decoded target URL
	Title       string
	Tags        []string
	Description string
	Mode        Mode
}

// ParseIntent reads the capture parameters (add, title, tags, description,
// popup) from already-unescaped query values. Returns nil when there is no
// capture parameter at all.
func ParseIntent(values url.Values) *Intent {
	add := values.Get("add")
	if add == "" {
		return nil
	}

	// Bookmarklets pass the target URL percent-encoded; a value that still
	// carries '%' gets one more decode pass, falling back to the raw value
	// when decoding fails.
	target := add
	if strings.Contains(target, "%") {
		if decoded, err := url.QueryUnescape(target); err == nil {
			target = decoded
		}
	}

	intent := &Intent{
		URL:         target,
		Title:       values.Get("title"),
		Description: values.Get("description"),
		Tags:        []string{},
	}

	if tags := values.Get("tags"); tags != "" {
		intent.Tags = model.ParseTags(tags)
	}

	if values.Get("popup") == "1" {
		intent.Mode = ModePopup
	}

	return intent
}

// ParseQueryString parses a raw query string as passed on the command line,
// with or without a leading '?'.
func ParseQueryString(raw string) (*Intent, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	values, err := url.ParseQuery(raw)
	if err != nil {
		return nil, &model.FormatError{Reason: "capture parameters are not a valid query string"}
	}
	intent := ParseIntent(values)
	if intent == nil {
		return nil, &model.ValidationError{Field: "add", Reason: "capture requires an add parameter"}
	}
	return intent, nil
}

// Draft is the pre-filled input state shown before saving.
type Draft struct {
	URL         string
	Title       string
	Tags        []string
	Description string
}

// Draft builds the pending draft for this intent. The title defaults to the
// URL host when the bookmarklet did not pass one.
func (it *Intent) Draft() Draft {
	title := it.Title
	if title == "" {
		title = model.ExtractDomain(it.URL)
	}
	return Draft{
		URL:         it.URL,
		Title:       title,
		Tags:        it.Tags,
		Description: it.Description,
	}
}
