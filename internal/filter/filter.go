// Package filter derives filtered, optionally grouped views of the bookmark
// list. Everything here is a pure function of (snapshot, spec, now); the
// engine never mutates the store.
package filter

import (
	"net/url"
	"strings"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// View selects the active/archived partition.
type View string

const (
	ViewActive   View = "active"
	ViewArchived View = "archived"
)

// DateRange names the supported date predicates.
type DateRange string

const (
	DateAny    DateRange = ""
	DateToday  DateRange = "today"
	DateLast7  DateRange = "last-7-days"
	DateLast30 DateRange = "last-30-days"
	DateCustom DateRange = "custom"
)

// Spec is the full filter configuration. All active predicates are ANDed.
// Zero values mean "predicate off" (except View, which defaults to active).
type Spec struct {
	View   View
	Search string // case-insensitive substring over title+url+tags+description
	Tag    string // exact match against one tag
	Domain string // exact match against the URL host
	Date   DatePredicate
}

// DatePredicate restricts bookmarks by creation time.
// For DateCustom, a zero Start or End leaves that side unbounded; End is
// inclusive through 23:59:59.999 local time.
type DatePredicate struct {
	Range DateRange
	Start time.Time
	End   time.Time
}

// DefaultSpec returns the spec for the initial view.
func DefaultSpec() Spec {
	return Spec{View: ViewActive}
}

// ParseSpec builds a Spec from query-style values, validating the enumerated
// fields once at the boundary. Unknown view or date values are rejected.
func ParseSpec(values url.Values) (Spec, error) {
	spec := DefaultSpec()

	switch v := values.Get("view"); v {
	case "", string(ViewActive):
		spec.View = ViewActive
	case string(ViewArchived):
		spec.View = ViewArchived
	default:
		return Spec{}, &model.ValidationError{Field: "view", Reason: "must be active or archived"}
	}

	spec.Search = values.Get("search")
	spec.Tag = values.Get("tag")
	spec.Domain = values.Get("domain")

	switch d := DateRange(values.Get("date")); d {
	case DateAny, DateToday, DateLast7, DateLast30:
		spec.Date.Range = d
	case DateCustom:
		spec.Date.Range = DateCustom
		if s := values.Get("start"); s != "" {
			t, err := time.ParseInLocation("2006-01-02", s, time.Local)
			if err != nil {
				return Spec{}, &model.ValidationError{Field: "start", Reason: "must be YYYY-MM-DD"}
			}
			spec.Date.Start = t
		}
		if e := values.Get("end"); e != "" {
			t, err := time.ParseInLocation("2006-01-02", e, time.Local)
			if err != nil {
				return Spec{}, &model.ValidationError{Field: "end", Reason: "must be YYYY-MM-DD"}
			}
			spec.Date.End = t
		}
	default:
		return Spec{}, &model.ValidationError{Field: "date", Reason: "unknown date range"}
	}

	return spec, nil
}

// Apply returns the bookmarks matching the spec, preserving input order.
// The caller supplies now so results are deterministic and testable.
func Apply(bookmarks []model.Bookmark, spec Spec, now time.Time) []model.Bookmark {
	result := []model.Bookmark{}
	for _, b := range bookmarks {
		if Matches(b, spec, now) {
			result = append(result, b)
		}
	}
	return result
}

// Matches reports whether a single bookmark passes every active predicate.
func Matches(b model.Bookmark, spec Spec, now time.Time) bool {
	if spec.View == ViewArchived && !b.Archived {
		return false
	}
	if spec.View != ViewArchived && b.Archived {
		return false
	}

	if spec.Search != "" {
		haystack := strings.ToLower(
			b.Title + " " + b.URL + " " + strings.Join(b.Tags, " ") + " " + b.Description,
		)
		if !strings.Contains(haystack, strings.ToLower(spec.Search)) {
			return false
		}
	}

	if spec.Tag != "" {
		found := false
		for _, t := range b.Tags {
			if t == spec.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if spec.Domain != "" && b.Domain() != spec.Domain {
		return false
	}

	return matchesDate(b.CreatedAt, spec.Date, now)
}

func matchesDate(created time.Time, p DatePredicate, now time.Time) bool {
	switch p.Range {
	case DateToday:
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return !created.Before(midnight)
	case DateLast7:
		return !created.Before(now.AddDate(0, 0, -7))
	case DateLast30:
		return !created.Before(now.AddDate(0, 0, -30))
	case DateCustom:
		if !p.Start.IsZero() && created.Before(p.Start) {
			return false
		}
		if !p.End.IsZero() {
			endOfDay := time.Date(
				p.End.Year(), p.End.Month(), p.End.Day(),
				23, 59, 59, 999_000_000, p.End.Location(),
			)
			if created.After(endOfDay) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
