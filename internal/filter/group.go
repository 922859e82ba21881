package filter

import (
	"sort"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// GroupMode selects how the filtered view is grouped.
type GroupMode int

const (
	GroupNone GroupMode = iota
	GroupByDomain
	GroupByDate
	GroupByDomainAndDate
)

// String returns a short label for the mode, used in status lines.
func (m GroupMode) String() string {
	switch m {
	case GroupByDomain:
		return "domain"
	case GroupByDate:
		return "date"
	case GroupByDomainAndDate:
		return "domain+date"
	default:
		return "none"
	}
}

// Group is one section of a grouped view. Either Bookmarks or Subgroups is
// populated, never both.
type Group struct {
	Key       string
	Bookmarks []model.Bookmark
	Subgroups []Group
}

// Count returns the number of bookmarks in the group, including subgroups.
func (g Group) Count() int {
	n := len(g.Bookmarks)
	for _, sg := range g.Subgroups {
		n += sg.Count()
	}
	return n
}

// dateKey is the local calendar day used for date grouping.
func dateKey(b model.Bookmark) string {
	return b.CreatedAt.Local().Format("2006-01-02")
}

// GroupBookmarks partitions an already-filtered list. Record order within a
// group follows the filtered order; group ordering matches the original UI:
// domains ascending, dates descending.
func GroupBookmarks(bookmarks []model.Bookmark, mode GroupMode) []Group {
	switch mode {
	case GroupByDomain:
		return groupBy(bookmarks, model.Bookmark.Domain, sortAsc)
	case GroupByDate:
		return groupBy(bookmarks, dateKey, sortDesc)
	case GroupByDomainAndDate:
		domains := groupBy(bookmarks, model.Bookmark.Domain, sortAsc)
		for i := range domains {
			domains[i].Subgroups = groupBy(domains[i].Bookmarks, dateKey, sortDesc)
			domains[i].Bookmarks = nil
		}
		return domains
	default:
		if len(bookmarks) == 0 {
			return nil
		}
		return []Group{{Bookmarks: bookmarks}}
	}
}

type keyOrder int

const (
	sortAsc keyOrder = iota
	sortDesc
)

func groupBy(bookmarks []model.Bookmark, key func(model.Bookmark) string, order keyOrder) []Group {
	buckets := map[string][]model.Bookmark{}
	keys := []string{}
	for _, b := range bookmarks {
		k := key(b)
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], b)
	}

	sort.Strings(keys)
	if order == sortDesc {
		for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	}

	groups := make([]Group, 0, len(keys))
	for _, k := range keys {
		groups = append(groups, Group{Key: k, Bookmarks: buckets[k]})
	}
	return groups
}
