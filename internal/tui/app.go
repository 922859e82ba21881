// Package tui is the interactive bookmark list: filtering, grouping,
// archiving, editing and batch deletes over the store.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RYUKOU-OKUMURA/cliptuck/internal/filter"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/model"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/storage"
	"github.com/RYUKOU-OKUMURA/cliptuck/internal/store"
)

// mode is the top-level input mode of the app.
type mode int

const (
	modeList mode = iota
	modeSearch
	modeModal
	modeConfirm
	modeHelp
)

// App is the main bubbletea model.
type App struct {
	store  *store.Store
	config *storage.Config
	keys   KeyMap
	styles Styles

	mode      mode
	view      filter.View
	groupMode filter.GroupMode

	rows   []Row
	cursor int

	search    SearchState
	modal     ModalState
	confirm   ConfirmState
	selection SelectionState

	status string

	// gg sequence
	lastKeyWasG bool

	// openURL is swapped out in tests.
	openURL func(string) error

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store  *store.Store
	Config *storage.Config
	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	config := params.Config
	if config == nil {
		def := storage.DefaultConfig()
		config = &def
	}

	app := App{
		store:     params.Store,
		config:    config,
		keys:      keys,
		styles:    styles,
		view:      filter.ViewActive,
		search:    NewSearchState(),
		modal:     NewModalState(),
		selection: NewSelectionState(),
		openURL:   openInBrowser,
		width:     80,
		height:    24,
	}

	app.refreshRows()
	return app
}

// WithDimensions returns a copy with fixed dimensions, for tests.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Rows returns the current list rows.
func (a App) Rows() []Row {
	return a.rows
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// View mode currently shown (active or archived).
func (a App) CurrentView() filter.View {
	return a.view
}

// refreshRows rebuilds the visible rows from the store through the filter
// and grouping engine, then clamps the cursor.
func (a *App) refreshRows() {
	spec := filter.Spec{View: a.view, Search: a.search.Query}
	matched := filter.Apply(a.store.Document().Bookmarks, spec, time.Now())

	a.rows = nil
	if a.groupMode == filter.GroupNone {
		for i := range matched {
			a.rows = append(a.rows, Row{Kind: RowBookmark, Bookmark: &matched[i]})
		}
	} else {
		groups := filter.GroupBookmarks(matched, a.groupMode)
		for gi := range groups {
			a.appendGroup(&groups[gi], 0)
		}
	}

	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	a.snapToBookmark(1)
}

func (a *App) appendGroup(g *filter.Group, indent int) {
	a.rows = append(a.rows, Row{Kind: RowHeader, Header: g.Key, Indent: indent})
	for i := range g.Bookmarks {
		a.rows = append(a.rows, Row{Kind: RowBookmark, Bookmark: &g.Bookmarks[i], Indent: indent + 1})
	}
	for si := range g.Subgroups {
		a.appendGroup(&g.Subgroups[si], indent+1)
	}
}

// snapToBookmark moves the cursor off header rows in the given direction.
func (a *App) snapToBookmark(direction int) {
	for a.cursor >= 0 && a.cursor < len(a.rows) && a.rows[a.cursor].IsHeader() {
		a.cursor += direction
	}
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
		for a.cursor >= 0 && a.rows[a.cursor].IsHeader() {
			a.cursor--
		}
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// current returns the bookmark under the cursor, or nil.
func (a *App) current() *model.Bookmark {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return nil
	}
	r := a.rows[a.cursor]
	if r.IsHeader() {
		return nil
	}
	return r.Bookmark
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case modeSearch:
			return a.updateSearch(msg)
		case modeModal:
			return a.updateModal(msg)
		case modeConfirm:
			return a.updateConfirm(msg)
		case modeHelp:
			a.mode = modeList
			return a, nil
		default:
			return a.updateList(msg)
		}
	}

	return a, nil
}

func (a App) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.snapToBookmark(1)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		a.cursor = len(a.rows) - 1
		a.snapToBookmark(-1)

	case key.Matches(msg, a.keys.ToggleView):
		if a.view == filter.ViewActive {
			a.view = filter.ViewArchived
		} else {
			a.view = filter.ViewActive
		}
		a.cursor = 0
		a.selection.Reset()
		a.refreshRows()

	case key.Matches(msg, a.keys.Search):
		a.mode = modeSearch
		a.search.Input.SetValue(a.search.Query)
		a.search.Input.Focus()

	case key.Matches(msg, a.keys.Group):
		a.groupMode = (a.groupMode + 1) % 4
		a.cursor = 0
		a.refreshRows()

	case key.Matches(msg, a.keys.Add):
		a.modal.Reset()
		a.modal.URLInput.Focus()
		a.mode = modeModal

	case key.Matches(msg, a.keys.Edit):
		if b := a.current(); b != nil {
			a.modal.Reset()
			a.modal.EditID = b.ID
			a.modal.URLInput.SetValue(b.URL)
			a.modal.TitleInput.SetValue(b.Title)
			a.modal.TagsInput.SetValue(strings.Join(b.Tags, ", "))
			a.modal.DescriptionInput.SetValue(b.Description)
			a.modal.URLInput.Focus()
			a.mode = modeModal
		}

	case key.Matches(msg, a.keys.Archive):
		if b := a.current(); b != nil {
			archived, err := a.store.ToggleArchive(b.ID)
			if err != nil {
				a.status = err.Error()
			} else if archived {
				a.status = "archived " + b.Title
			} else {
				a.status = "restored " + b.Title
			}
			a.refreshRows()
		}

	case key.Matches(msg, a.keys.Delete):
		if b := a.current(); b != nil {
			if a.config.ConfirmDeletes {
				a.confirm = ConfirmState{IDs: []string{b.ID}, Label: b.Title}
				a.mode = modeConfirm
			} else {
				a.deleteByIDs([]string{b.ID})
			}
		}

	case key.Matches(msg, a.keys.Select):
		if b := a.current(); b != nil {
			a.selection.Toggle(b.ID)
			a.moveCursor(1)
		}

	case key.Matches(msg, a.keys.DeleteSelected):
		if a.selection.Count() > 0 {
			ids := a.selection.IDs()
			if a.config.ConfirmDeletes {
				a.confirm = ConfirmState{
					IDs:   ids,
					Label: fmt.Sprintf("%d selected bookmarks", len(ids)),
				}
				a.mode = modeConfirm
			} else {
				a.deleteByIDs(ids)
			}
		}

	case key.Matches(msg, a.keys.DeleteAll):
		doc := a.store.Document()
		count := doc.ActiveCount()
		label := "active"
		if a.view == filter.ViewArchived {
			count = doc.ArchivedCount()
			label = "archived"
		}
		if count > 0 {
			// Always confirmed, whatever the config says: this wipes a
			// whole view.
			a.confirm = ConfirmState{
				All:   true,
				Label: fmt.Sprintf("ALL %d %s bookmarks", count, label),
			}
			a.mode = modeConfirm
		}

	case key.Matches(msg, a.keys.YankURL):
		if b := a.current(); b != nil {
			if err := clipboard.WriteAll(b.URL); err != nil {
				a.status = "clipboard unavailable"
			} else {
				a.status = "yanked " + b.URL
			}
		}

	case key.Matches(msg, a.keys.Open):
		if b := a.current(); b != nil {
			if err := a.openURL(b.URL); err != nil {
				a.status = "could not open browser"
			} else {
				a.status = "opened " + b.URL
			}
		}

	case key.Matches(msg, a.keys.Help):
		a.mode = modeHelp
	}

	return a, nil
}

func (a *App) moveCursor(direction int) {
	next := a.cursor + direction
	for next >= 0 && next < len(a.rows) && a.rows[next].IsHeader() {
		next += direction
	}
	if next >= 0 && next < len(a.rows) {
		a.cursor = next
	}
}

func (a *App) deleteAllInView() {
	scope := store.ScopeActive
	if a.view == filter.ViewArchived {
		scope = store.ScopeArchived
	}
	n, err := a.store.DeleteAll(scope)
	if err != nil {
		a.status = err.Error()
	} else {
		a.status = fmt.Sprintf("deleted %d", n)
	}
	a.selection.Reset()
	a.refreshRows()
}

func (a *App) deleteByIDs(ids []string) {
	n, err := a.store.DeleteMany(ids)
	if err != nil {
		a.status = err.Error()
	} else {
		a.status = fmt.Sprintf("deleted %d", n)
	}
	a.selection.Reset()
	a.refreshRows()
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.search.Reset()
		a.mode = modeList
		a.refreshRows()
		return a, nil
	case tea.KeyEnter:
		a.search.Query = a.search.Input.Value()
		a.search.Input.Blur()
		a.mode = modeList
		a.refreshRows()
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	// Live filtering while typing.
	a.search.Query = a.search.Input.Value()
	a.refreshRows()
	return a, cmd
}

func (a App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.modal.Reset()
		a.mode = modeList
		return a, nil

	case tea.KeyTab, tea.KeyDown:
		a.modal.FocusNext()
		return a, nil

	case tea.KeyShiftTab, tea.KeyUp:
		a.modal.FocusPrev()
		return a, nil

	case tea.KeyEnter:
		return a.submitModal()
	}

	var cmd tea.Cmd
	focused := a.modal.focused()
	*focused, cmd = focused.Update(msg)
	return a, cmd
}

func (a App) submitModal() (tea.Model, tea.Cmd) {
	url := a.modal.URLInput.Value()
	title := a.modal.TitleInput.Value()
	tags := model.ParseTags(a.modal.TagsInput.Value())
	description := a.modal.DescriptionInput.Value()

	var err error
	if a.modal.EditID != "" {
		_, err = a.store.Update(a.modal.EditID, store.UpdateFields{
			URL:         url,
			Title:       title,
			Tags:        tags,
			Description: description,
		})
	} else {
		_, err = a.store.Add(store.AddParams{
			URL:         url,
			Title:       title,
			Tags:        tags,
			Description: description,
		})
	}

	if err != nil {
		a.modal.Error = err.Error()
		return a, nil
	}

	a.modal.Reset()
	a.mode = modeList
	a.status = "saved"
	a.refreshRows()
	return a, nil
}

func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		if a.confirm.All {
			a.deleteAllInView()
		} else {
			a.deleteByIDs(a.confirm.IDs)
		}
		a.confirm = ConfirmState{}
		a.mode = modeList
	case "n", "esc", "q":
		a.confirm = ConfirmState{}
		a.mode = modeList
	}
	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
