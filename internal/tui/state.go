package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// SearchState holds the incremental search input.
type SearchState struct {
	Input textinput.Model
	Query string // active query, persists after closing the input
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState() SearchState {
	input := textinput.New()
	input.Placeholder = "Search..."
	input.CharLimit = 100
	input.Width = 40
	return SearchState{Input: input}
}

// Reset clears the search input and the active query.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Query = ""
}

// modalField indexes the focusable inputs of the add/edit modal.
type modalField int

const (
	fieldURL modalField = iota
	fieldTitle
	fieldTags
	fieldDescription
	fieldCount
)

// ModalState holds state for the add/edit bookmark modal.
type ModalState struct {
	URLInput         textinput.Model
	TitleInput       textinput.Model
	TagsInput        textinput.Model
	DescriptionInput textinput.Model
	Focus            modalField
	EditID           string // "" when adding
	Error            string // validation message shown inside the modal
}

// NewModalState creates a ModalState with initialized inputs.
func NewModalState() ModalState {
	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = 500
	urlInput.Width = 50

	titleInput := textinput.New()
	titleInput.Placeholder = "Title"
	titleInput.CharLimit = 200
	titleInput.Width = 50

	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = 200
	tagsInput.Width = 50

	descriptionInput := textinput.New()
	descriptionInput.Placeholder = "Description"
	descriptionInput.CharLimit = 500
	descriptionInput.Width = 50

	return ModalState{
		URLInput:         urlInput,
		TitleInput:       titleInput,
		TagsInput:        tagsInput,
		DescriptionInput: descriptionInput,
	}
}

// Reset clears all modal inputs for a new session.
func (m *ModalState) Reset() {
	m.URLInput.Reset()
	m.TitleInput.Reset()
	m.TagsInput.Reset()
	m.DescriptionInput.Reset()
	m.Focus = fieldURL
	m.EditID = ""
	m.Error = ""
}

// focused returns a pointer to the currently focused input.
func (m *ModalState) focused() *textinput.Model {
	switch m.Focus {
	case fieldTitle:
		return &m.TitleInput
	case fieldTags:
		return &m.TagsInput
	case fieldDescription:
		return &m.DescriptionInput
	default:
		return &m.URLInput
	}
}

// FocusNext moves focus to the next field, wrapping around.
func (m *ModalState) FocusNext() {
	m.focused().Blur()
	m.Focus = (m.Focus + 1) % fieldCount
	m.focused().Focus()
}

// FocusPrev moves focus to the previous field, wrapping around.
func (m *ModalState) FocusPrev() {
	m.focused().Blur()
	m.Focus = (m.Focus + fieldCount - 1) % fieldCount
	m.focused().Focus()
}

// ConfirmState holds the pending delete shown in the confirm dialog.
type ConfirmState struct {
	IDs   []string
	All   bool   // delete everything in the current view instead of IDs
	Label string // what the dialog says is being deleted
}

// SelectionState holds the marked bookmark IDs for batch operations.
type SelectionState struct {
	Selected map[string]bool
}

// NewSelectionState creates an empty SelectionState.
func NewSelectionState() SelectionState {
	return SelectionState{Selected: make(map[string]bool)}
}

// Reset clears all marks.
func (s *SelectionState) Reset() {
	s.Selected = make(map[string]bool)
}

// Toggle adds or removes a bookmark from the selection.
func (s *SelectionState) Toggle(id string) {
	if s.Selected[id] {
		delete(s.Selected, id)
	} else {
		s.Selected[id] = true
	}
}

// IsSelected returns true if the bookmark is marked.
func (s *SelectionState) IsSelected(id string) bool {
	return s.Selected[id]
}

// Count returns the number of marked bookmarks.
func (s *SelectionState) Count() int {
	return len(s.Selected)
}

// IDs returns the marked bookmark IDs.
func (s *SelectionState) IDs() []string {
	ids := make([]string, 0, len(s.Selected))
	for id := range s.Selected {
		ids = append(ids, id)
	}
	return ids
}
