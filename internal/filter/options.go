package filter

import (
	"sort"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// TagOptions returns the sorted set of all tags in the document, for
// building the tag filter choices.
func TagOptions(doc *model.Document) []string {
	seen := map[string]bool{}
	tags := []string{}
	for _, b := range doc.Bookmarks {
		for _, t := range b.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// DomainOptions returns every domain in the document with its bookmark
// count, domains sorted ascending.
func DomainOptions(doc *model.Document) ([]string, map[string]int) {
	counts := map[string]int{}
	for _, b := range doc.Bookmarks {
		counts[b.Domain()]++
	}

	domains := make([]string, 0, len(counts))
	for d := range counts {
		domains = append(domains, d)
	}
	sort.Strings(domains)
	return domains, counts
}
