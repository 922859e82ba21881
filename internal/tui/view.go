package tui

import (
	"fmt"
	"strings"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/filter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
)

func (a App) renderView() string {
	switch a.mode {
	case modeModal:
		return a.styles.App.Render(a.renderModal())
	case modeConfirm:
		return a.styles.App.Render(a.renderConfirm())
	case modeHelp:
		return a.styles.App.Render(a.renderHelp())
	}

	var b strings.Builder
	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")
	b.WriteString(a.renderList())
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return a.styles.App.Render(b.String())
}

func (a App) renderHeader() string {
	doc := a.store.Document()

	label := "Active"
	count := doc.ActiveCount()
	if a.view == filter.ViewArchived {
		label = "Archived"
		count = doc.ArchivedCount()
	}

	header := a.styles.Title.Render(fmt.Sprintf("ClipTuck · %s (%d)", label, count))

	if a.groupMode != filter.GroupNone {
		header += a.styles.Date.Render("  grouped by " + a.groupMode.String())
	}
	if a.search.Query != "" && a.mode != modeSearch {
		header += a.styles.Date.Render(fmt.Sprintf("  search: %q", a.search.Query))
	}
	if a.selection.Count() > 0 {
		header += a.styles.Status.Render(fmt.Sprintf("  %d selected", a.selection.Count()))
	}

	if a.mode == modeSearch {
		header += "\n\n" + a.search.Input.View()
	}

	return header
}

func (a App) renderList() string {
	if len(a.rows) == 0 {
		if a.search.Query != "" {
			return a.styles.Empty.Render("No bookmarks match your search.")
		}
		if a.view == filter.ViewArchived {
			return a.styles.Empty.Render("Nothing archived.")
		}
		return a.styles.Empty.Render("No bookmarks yet. Press 'a' to add one.")
	}

	var b strings.Builder
	for i, row := range a.rows {
		indent := strings.Repeat("  ", row.Indent)

		if row.IsHeader() {
			b.WriteString(indent + a.styles.GroupHeader.Render(row.Header) + "\n")
			continue
		}

		b.WriteString(indent + a.renderBookmarkRow(row.Bookmark, i == a.cursor) + "\n")
	}
	return b.String()
}

func (a App) renderBookmarkRow(bm *model.Bookmark, atCursor bool) string {
	cursor := "  "
	style := a.styles.Item
	if atCursor {
		cursor = "> "
		style = a.styles.ItemSelected
	} else if a.selection.IsSelected(bm.ID) {
		cursor = "* "
		style = a.styles.ItemMarked
	}

	title := bm.Title
	if bm.Archived {
		title = a.styles.Archived.Render(title)
	}

	line := cursor + style.Render(title)
	if len(bm.Tags) > 0 {
		line += " " + a.styles.Tag.Render("#"+strings.Join(bm.Tags, " #"))
	}
	line += "\n   " + a.styles.URL.Render(bm.URL) +
		"  " + a.styles.Date.Render(bm.CreatedAt.Format("2006-01-02"))

	return line
}

func (a App) renderFooter() string {
	if a.status != "" {
		return a.styles.Status.Render(a.status) + "\n" + a.renderHints()
	}
	return a.renderHints()
}

func (a App) renderHints() string {
	hints := []string{
		"j/k move", "tab view", "/ search", "a add", "e edit",
		"x archive", "d delete", "space select", "s group", "? help", "q quit",
	}
	return a.styles.Help.Render(strings.Join(hints, "  "))
}

func (a App) renderModal() string {
	title := "Add bookmark"
	if a.modal.EditID != "" {
		title = "Edit bookmark"
	}

	var b strings.Builder
	b.WriteString(a.styles.ModalTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(a.styles.InputLabel.Render("URL") + "\n" + a.modal.URLInput.View() + "\n")
	b.WriteString(a.styles.InputLabel.Render("Title") + "\n" + a.modal.TitleInput.View() + "\n")
	b.WriteString(a.styles.InputLabel.Render("Tags") + "\n" + a.modal.TagsInput.View() + "\n")
	b.WriteString(a.styles.InputLabel.Render("Description") + "\n" + a.modal.DescriptionInput.View() + "\n")

	if a.modal.Error != "" {
		b.WriteString("\n" + a.styles.Status.Render(a.modal.Error) + "\n")
	}

	b.WriteString("\n" + a.styles.Help.Render("tab next field  enter save  esc cancel"))

	return a.styles.Modal.Render(b.String())
}

func (a App) renderConfirm() string {
	var b strings.Builder
	b.WriteString(a.styles.ModalTitle.Render("Delete"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Delete %s?", a.confirm.Label))
	b.WriteString("\n\n")
	b.WriteString(a.styles.Help.Render("y delete  n cancel"))
	return a.styles.Modal.Render(b.String())
}

func (a App) renderHelp() string {
	rows := [][2]string{
		{"j/k, arrows", "move"},
		{"gg / G", "top / bottom"},
		{"tab", "toggle active/archived"},
		{"/", "search (enter keeps, esc clears)"},
		{"s", "cycle grouping (domain, date, both)"},
		{"a", "add bookmark"},
		{"e", "edit bookmark"},
		{"x", "archive / restore"},
		{"d", "delete under cursor"},
		{"space", "mark for batch delete"},
		{"D", "delete marked"},
		{"X", "delete all in current view"},
		{"Y", "copy URL to clipboard"},
		{"o / enter", "open in browser"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(a.styles.ModalTitle.Render("Keys"))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("%-12s %s\n",
			a.styles.Status.Render(r[0]), a.styles.Help.Render(r[1])))
	}
	b.WriteString("\n" + a.styles.Help.Render("any key to close"))
	return b.String()
}
