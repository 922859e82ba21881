package exporter

import (
	"fmt"
	"html"
	"strings"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

// ExportHTML exports the document to Netscape bookmark HTML format, with
// archived bookmarks in their own folder so browsers keep the partition.
func ExportHTML(doc *model.Document) string {
	var b strings.Builder

	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	for _, bm := range doc.Bookmarks {
		if !bm.Archived {
			writeBookmark(&b, bm, 1)
		}
	}

	if doc.ArchivedCount() > 0 {
		b.WriteString("    <DT><H3>Archived</H3>\n")
		b.WriteString("    <DL><p>\n")
		for _, bm := range doc.Bookmarks {
			if bm.Archived {
				writeBookmark(&b, bm, 2)
			}
		}
		b.WriteString("    </DL><p>\n")
	}

	b.WriteString("</DL><p>\n")
	return b.String()
}

func writeBookmark(b *strings.Builder, bm model.Bookmark, indent int) {
	prefix := strings.Repeat("    ", indent)
	tags := ""
	if len(bm.Tags) > 0 {
		tags = fmt.Sprintf(" TAGS=\"%s\"", html.EscapeString(strings.Join(bm.Tags, ",")))
	}
	fmt.Fprintf(b,
		"%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\"%s>%s</A>\n",
		prefix,
		html.EscapeString(bm.URL),
		bm.CreatedAt.Unix(),
		tags,
		html.EscapeString(bm.Title),
	)
	if bm.Description != "" {
		fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(bm.Description))
	}
}
