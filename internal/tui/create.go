package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/funthingsnearme/nearby/internal/places"
	"github.com/funthingsnearme/nearby/internal/wizard"
)

// createForm is the screen around the wizard: one text input reused per
// step, plus the suggestion picker on the location step.
type createForm struct {
	wiz *wizard.Wizard

	input       textinput.Model
	suggestions []places.Suggestion
	sel         int
	picking     bool
	imageMode   bool

	err    string
	notice string
}

func newCreateForm(wiz *wizard.Wizard) createForm {
	input := textinput.New()
	input.CharLimit = 512
	input.Width = 56

	return createForm{
		wiz:   wiz,
		input: input,
	}
}

func (f *createForm) focusCmd() tea.Cmd {
	f.err = ""
	f.notice = ""
	f.syncPlaceholder()
	return f.input.Focus()
}

func (f *createForm) reset() {
	f.wiz.Reset()
	f.input.Reset()
	f.suggestions = nil
	f.sel = 0
	f.picking = false
	f.imageMode = false
	f.err = ""
}

func (f *createForm) syncPlaceholder() {
	switch f.wiz.State() {
	case wizard.StateEnteringTitle:
		f.input.Placeholder = "title"
	case wizard.StateEnteringURL:
		f.input.Placeholder = "https://..."
	case wizard.StateEnteringDescription:
		f.input.Placeholder = "what makes it worth doing?"
	case wizard.StateChoosingLocation:
		f.input.Placeholder = "search for a place"
	case wizard.StateChoosingFeatures:
		f.input.Placeholder = "path to an image file"
	}
}

func (m *Model) updateCreate(msg tea.Msg) (tea.Model, tea.Cmd) {
	f := &m.create

	switch msg := msg.(type) {
	case suggestionsMsg:
		m.busy = false
		if msg.err != nil {
			f.err = msg.err.Error()
			return m, nil
		}
		f.err = ""
		f.suggestions = msg.items
		f.sel = 0
		f.picking = len(msg.items) > 0
		if !f.picking {
			f.err = "No places matched."
		}
		return m, nil

	case placePickedMsg:
		m.busy = false
		if msg.err != nil {
			f.err = msg.err.Error()
			return m, nil
		}
		f.err = ""
		f.suggestions = nil
		f.picking = false
		f.wiz.Advance()
		f.input.Reset()
		f.syncPlaceholder()
		return m, nil

	case submitDoneMsg:
		m.busy = false
		if msg.err != nil {
			f.err = msg.err.Error()
			return m, nil
		}
		f.reset()
		m.screen = screenFeed
		m.status = "Created \"" + msg.activity.Title + "\"."
		return m, nil

	case tea.KeyMsg:
		return m.createKey(msg)
	}

	return m, nil
}

func (m *Model) createKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.create

	if msg.String() == "esc" {
		if f.picking {
			f.picking = false
			f.suggestions = nil
			return m, nil
		}
		f.reset()
		m.screen = screenFeed
		return m, nil
	}

	if f.picking {
		switch msg.String() {
		case "up", "k":
			if f.sel > 0 {
				f.sel--
			}
			return m, nil
		case "down", "j":
			if f.sel < len(f.suggestions)-1 {
				f.sel++
			}
			return m, nil
		case "enter":
			m.busy = true
			return m, m.pickPlaceCmd(f.suggestions[f.sel])
		}
		return m, nil
	}

	switch f.wiz.State() {
	case wizard.StateEnteringTitle, wizard.StateEnteringURL, wizard.StateEnteringDescription:
		if msg.String() == "enter" {
			value := f.input.Value()
			switch f.wiz.State() {
			case wizard.StateEnteringTitle:
				f.wiz.SetTitle(value)
			case wizard.StateEnteringURL:
				f.wiz.SetURL(value)
			case wizard.StateEnteringDescription:
				f.wiz.SetDescription(value)
			}
			f.wiz.Advance()
			f.input.Reset()
			f.syncPlaceholder()
			return m, nil
		}

	case wizard.StateChoosingLocation:
		if msg.String() == "enter" {
			query := strings.TrimSpace(f.input.Value())
			if query == "" {
				f.err = "Type a place to search for."
				return m, nil
			}
			m.busy = true
			return m, m.suggestCmd(query)
		}

	case wizard.StateChoosingFeatures:
		if f.imageMode {
			if msg.String() == "enter" {
				f.wiz.AttachImage(strings.TrimSpace(f.input.Value()))
				f.imageMode = false
				f.input.Blur()
				f.input.Reset()
				return m, nil
			}
			break
		}
		switch msg.String() {
		case "p":
			f.wiz.TogglePetsAllowed()
			return m, nil
		case "a":
			f.wiz.ToggleAccessibility()
			return m, nil
		case "i":
			f.imageMode = true
			f.syncPlaceholder()
			return m, f.input.Focus()
		case "enter":
			f.wiz.Advance()
			return m, nil
		}
		return m, nil

	case wizard.StateReady:
		if msg.String() == "enter" {
			if errs := f.wiz.Validate(); len(errs) > 0 {
				return m, nil
			}
			m.busy = true
			return m, m.submitCmd()
		}
		return m, nil
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return m, cmd
}
