package filter_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/filter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

var testNow = time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)

func sampleBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{
			ID: "b1", URL: "https://go.dev/blog/slices", Title: "Go Slices",
			Tags: []string{"go", "reading"}, Description: "deep dive",
			CreatedAt: testNow.Add(-2 * time.Hour), // today
		},
		{
			ID: "b2", URL: "https://go.dev/doc", Title: "Go Docs",
			Tags:      []string{"go"},
			CreatedAt: testNow.AddDate(0, 0, -3), // this week
		},
		{
			ID: "b3", URL: "https://news.ycombinator.com/item", Title: "HN thread",
			Tags:      []string{"news"},
			CreatedAt: testNow.AddDate(0, 0, -20), // this month
			Archived:  true,
		},
		{
			ID: "b4", URL: "https://example.com/old", Title: "Old stuff",
			Tags:      []string{},
			CreatedAt: testNow.AddDate(0, 0, -90),
		},
	}
}

func ids(bs []model.Bookmark) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

func assertIDs(t *testing.T, got []model.Bookmark, want ...string) {
	t.Helper()
	gotIDs := ids(got)
	if len(gotIDs) != len(want) {
		t.Fatalf("got %v, want %v", gotIDs, want)
	}
	for i := range want {
		if gotIDs[i] != want[i] {
			t.Fatalf("got %v, want %v", gotIDs, want)
		}
	}
}

func TestApply_ViewPartitionsStore(t *testing.T) {
	bs := sampleBookmarks()

	active := filter.Apply(bs, filter.Spec{View: filter.ViewActive}, testNow)
	archived := filter.Apply(bs, filter.Spec{View: filter.ViewArchived}, testNow)

	for _, b := range active {
		if b.Archived {
			t.Errorf("active view returned archived bookmark %s", b.ID)
		}
	}
	for _, b := range archived {
		if !b.Archived {
			t.Errorf("archived view returned active bookmark %s", b.ID)
		}
	}
	if len(active)+len(archived) != len(bs) {
		t.Errorf("views must partition the store: %d + %d != %d",
			len(active), len(archived), len(bs))
	}
}

func TestApply_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	bs := sampleBookmarks()

	tests := []struct {
		name   string
		search string
		want   []string
	}{
		{name: "title match", search: "SLICES", want: []string{"b1"}},
		{name: "url match", search: "go.dev", want: []string{"b1", "b2"}},
		{name: "tag match", search: "reading", want: []string{"b1"}},
		{name: "description match", search: "deep dive", want: []string{"b1"}},
		{name: "no match", search: "zzz-nothing", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(bs, filter.Spec{View: filter.ViewActive, Search: tt.search}, testNow)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestApply_TagExactMatch(t *testing.T) {
	bs := sampleBookmarks()

	got := filter.Apply(bs, filter.Spec{View: filter.ViewActive, Tag: "go"}, testNow)
	assertIDs(t, got, "b1", "b2")

	// "g" is a substring of "go" but not an exact tag
	got = filter.Apply(bs, filter.Spec{View: filter.ViewActive, Tag: "g"}, testNow)
	assertIDs(t, got)
}

func TestApply_DomainExactMatch(t *testing.T) {
	bs := sampleBookmarks()

	got := filter.Apply(bs, filter.Spec{View: filter.ViewActive, Domain: "go.dev"}, testNow)
	assertIDs(t, got, "b1", "b2")
}

func TestApply_DateRanges(t *testing.T) {
	bs := sampleBookmarks()

	tests := []struct {
		name string
		date filter.DatePredicate
		want []string
	}{
		{name: "today", date: filter.DatePredicate{Range: filter.DateToday}, want: []string{"b1"}},
		{name: "last 7 days", date: filter.DatePredicate{Range: filter.DateLast7}, want: []string{"b1", "b2"}},
		{name: "last 30 days", date: filter.DatePredicate{Range: filter.DateLast30}, want: []string{"b1", "b2"}},
		{
			name: "custom bounded",
			date: filter.DatePredicate{
				Range: filter.DateCustom,
				Start: testNow.AddDate(0, 0, -5),
				End:   testNow,
			},
			want: []string{"b1", "b2"},
		},
		{
			name: "custom start only",
			date: filter.DatePredicate{Range: filter.DateCustom, Start: testNow.AddDate(0, 0, -100)},
			want: []string{"b1", "b2", "b4"},
		},
		{
			name: "custom end only excludes later",
			date: filter.DatePredicate{Range: filter.DateCustom, End: testNow.AddDate(0, 0, -30)},
			want: []string{"b4"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(bs, filter.Spec{View: filter.ViewActive, Date: tt.date}, testNow)
			assertIDs(t, got, tt.want...)
		})
	}
}

func TestApply_CustomEndIsInclusiveThroughEndOfDay(t *testing.T) {
	endDay := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	late := model.Bookmark{
		ID: "late", URL: "https://a.com",
		CreatedAt: endDay.Add(23*time.Hour + 30*time.Minute), // 23:30 on the end day
	}
	next := model.Bookmark{
		ID: "next", URL: "https://b.com",
		CreatedAt: endDay.AddDate(0, 0, 1).Add(time.Minute), // 00:01 the day after
	}

	spec := filter.Spec{
		View: filter.ViewActive,
		Date: filter.DatePredicate{Range: filter.DateCustom, End: endDay},
	}
	got := filter.Apply([]model.Bookmark{late, next}, spec, testNow)
	assertIDs(t, got, "late")
}

func TestApply_PredicatesAreANDed(t *testing.T) {
	bs := sampleBookmarks()

	spec := filter.Spec{
		View:   filter.ViewActive,
		Search: "go",
		Tag:    "go",
		Domain: "go.dev",
		Date:   filter.DatePredicate{Range: filter.DateToday},
	}
	got := filter.Apply(bs, spec, testNow)
	assertIDs(t, got, "b1")
}

func TestApply_PreservesOrder(t *testing.T) {
	bs := sampleBookmarks()
	got := filter.Apply(bs, filter.Spec{View: filter.ViewActive}, testNow)
	assertIDs(t, got, "b1", "b2", "b4")
}

func TestParseSpec(t *testing.T) {
	values := url.Values{}
	values.Set("view", "archived")
	values.Set("search", "go")
	values.Set("tag", "news")
	values.Set("domain", "go.dev")
	values.Set("date", "custom")
	values.Set("start", "2025-06-01")
	values.Set("end", "2025-06-15")

	spec, err := filter.ParseSpec(values)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.View != filter.ViewArchived || spec.Search != "go" || spec.Tag != "news" {
		t.Errorf("spec fields mismatch: %+v", spec)
	}
	if spec.Date.Range != filter.DateCustom || spec.Date.Start.IsZero() || spec.Date.End.IsZero() {
		t.Errorf("date predicate mismatch: %+v", spec.Date)
	}
}

func TestParseSpec_RejectsUnknownValues(t *testing.T) {
	for _, tt := range []struct{ key, value string }{
		{"view", "trash"},
		{"date", "yesterday"},
		{"start", "June 1"},
	} {
		values := url.Values{}
		if tt.key == "start" {
			values.Set("date", "custom")
		}
		values.Set(tt.key, tt.value)
		if _, err := filter.ParseSpec(values); err == nil {
			t.Errorf("expected error for %s=%s", tt.key, tt.value)
		}
	}
}

func TestParseSpec_Defaults(t *testing.T) {
	spec, err := filter.ParseSpec(url.Values{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if spec.View != filter.ViewActive {
		t.Errorf("default view should be active, got %q", spec.View)
	}
	if spec.Date.Range != filter.DateAny {
		t.Errorf("default date range should be any, got %q", spec.Date.Range)
	}
}
