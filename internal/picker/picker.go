// Package picker is the minimal TUI shown by quick search: a list of fuzzy
// matches to pick one bookmark from.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/search"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("109"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Picker selects one bookmark from a set of search results.
type Picker struct {
	results   []search.Result
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the given results.
func New(results []search.Result, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.results) > 0 {
				p.selected = true
			} else {
				p.cancelled = true
			}
			return p, tea.Quit

		case tea.KeyDown:
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}
			return p, nil

		case tea.KeyUp:
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		}

		if msg.Type == tea.KeyRunes {
			r := string(msg.Runes)
			switch r {
			case "j":
				if p.cursor < len(p.results)-1 {
					p.cursor++
				}
				return p, nil
			case "k":
				if p.cursor > 0 {
					p.cursor--
				}
				return p, nil
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
			// 1-9 jump straight to that result.
			if len(r) == 1 && r[0] >= '1' && r[0] <= '9' {
				idx := int(r[0] - '1')
				if idx < len(p.results) {
					p.cursor = idx
					p.selected = true
					return p, tea.Quit
				}
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	for i, result := range p.results {
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		line := style.Render(result.Bookmark.Title)
		if len(result.Bookmark.Tags) > 0 {
			line += " " + tagStyle.Render("#"+strings.Join(result.Bookmark.Tags, " #"))
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, line))
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(result.Bookmark.URL)))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  1-9: pick  Enter: open  q/Esc: cancel"))

	return b.String()
}

// Selected returns the chosen bookmark, or nil if the picker was cancelled.
func (p Picker) Selected() *model.Bookmark {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Bookmark
	}
	return nil
}

// Cancelled reports whether the user backed out.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
