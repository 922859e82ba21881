package search

import (
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// Result represents a fuzzy search match.
type Result struct {
	Bookmark       *model.Bookmark
	MatchedIndexes []int
	Score          int
}

// bookmarkHaystack implements fuzzy.Source over title, URL and tags so a
// query can match any of them.
type bookmarkHaystack []*model.Bookmark

func (bh bookmarkHaystack) String(i int) string {
	b := bh[i]
	return b.Title + " " + b.URL + " " + strings.Join(b.Tags, " ")
}

func (bh bookmarkHaystack) Len() int {
	return len(bh)
}

// FuzzySearch matches query against the given bookmarks. Results come back
// sorted by match score, best first.
func FuzzySearch(bookmarks []model.Bookmark, query string) []Result {
	if query == "" {
		return nil
	}

	haystack := make(bookmarkHaystack, len(bookmarks))
	for i := range bookmarks {
		haystack[i] = &bookmarks[i]
	}

	matches := fuzzy.FindFrom(query, haystack)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Bookmark:       haystack[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
