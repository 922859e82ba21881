package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// ParseHTML parses Netscape bookmark HTML into a flat bookmark list.
// Folder structure is flattened; bookmarks under a folder named "Archived"
// come back with the archived flag set (the inverse of our own HTML export).
// ADD_DATE and TAGS attributes are honored when present.
func ParseHTML(r io.Reader) ([]model.Bookmark, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, &model.FormatError{Reason: "file is not parseable HTML"}
	}

	var bookmarks []model.Bookmark
	var folderStack []string
	var pendingFolder string

	inArchivedFolder := func() bool {
		for _, name := range folderStack {
			if strings.EqualFold(name, "Archived") {
				return true
			}
		}
		return false
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition; pushed when the matching DL arrives
				pendingFolder = getTextContent(n)
				return

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					return
				}

				title := getTextContent(n)
				if title == "" {
					title = model.ExtractDomain(href)
				}

				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				tags := []string{}
				if raw := getAttr(n, "tags"); raw != "" {
					tags = model.ParseTags(raw)
				}

				bookmarks = append(bookmarks, model.Bookmark{
					ID:        model.GenerateUUID(),
					URL:       href,
					Title:     title,
					Tags:      tags,
					CreatedAt: createdAt,
					Archived:  inArchivedFolder(),
				})
				return

			case "dl":
				pushed := false
				if pendingFolder != "" {
					folderStack = append(folderStack, pendingFolder)
					pendingFolder = ""
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed && len(folderStack) > 0 {
					folderStack = folderStack[:len(folderStack)-1]
				}
				return
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return bookmarks, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
