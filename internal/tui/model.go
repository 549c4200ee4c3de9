// Package tui is the terminal front-end: one activity card at a time, with
// login, creation and profile screens layered on top of the controllers.
// Nothing in here talks to the network directly.
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/funthingsnearme/nearby/internal/app/appconfig"
	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/feed"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/pkg/fterr"
	"github.com/funthingsnearme/nearby/internal/prefs"
	"github.com/funthingsnearme/nearby/internal/profile"
	"github.com/funthingsnearme/nearby/internal/rest"
	"github.com/funthingsnearme/nearby/internal/wizard"
)

// Deps is everything the front-end renders and drives.
type Deps struct {
	Config  *appconfig.Config
	Session *auth.Session
	API     *rest.Client
	Feed    *feed.Controller
	Actions *prefs.Actions
	Profile *profile.Aggregator
	Wizard  *wizard.Wizard
}

type screen int

const (
	screenFeed screen = iota
	screenLogin
	screenCreate
	screenProfile
	screenDetail
)

type Model struct {
	deps       Deps
	activityID int

	keys KeyMap
	st   styles
	help help.Model
	spin spinner.Model

	sessionCh     <-chan auth.Change
	cancelSession func()

	screen screen
	width  int
	busy   bool
	status string
	errTxt string

	login    loginForm
	create   createForm
	overview *profile.Overview
	cursor   int

	detail *model.Activity
}

func newModel(deps Deps, activityID int) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ch, cancel := deps.Session.Subscribe()

	return &Model{
		deps:          deps,
		activityID:    activityID,
		keys:          defaultKeyMap(),
		st:            defaultStyles(),
		help:          help.New(),
		spin:          sp,
		sessionCh:     ch,
		cancelSession: cancel,
		login:         newLoginForm(deps.Config.LegacyAuth),
		create:        newCreateForm(deps.Wizard),
	}
}

func (m *Model) Init() tea.Cmd {
	m.busy = true
	// the saved set is seeded up front so restored sessions render their
	// favorites as such from the first card
	return tea.Batch(m.spin.Tick, m.startFeedCmd(), m.seedSavedCmd(), m.waitSessionCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case sessionChangeMsg:
		if !msg.open {
			return m, nil
		}
		if msg.change.Authenticated {
			m.status = "Signed in."
			return m, tea.Batch(m.seedSavedCmd(), m.waitSessionCmd())
		}
		m.status = "Signed out."
		m.overview = nil
		return m, m.waitSessionCmd()

	case advanceMsg:
		m.busy = true
		return m, m.nextCmd()

	case cardMsg:
		m.busy = false
		if msg.err != nil {
			m.errTxt = msg.err.Error()
			return m, nil
		}
		m.errTxt = ""
		return m, nil

	case receiptMsg:
		return m.onReceipt(msg)

	case overviewMsg:
		m.busy = false
		if msg.err != nil {
			if fterr.IsAuthRequired(msg.err) {
				m.screen = screenLogin
				return m, m.login.focusCmd()
			}
			m.errTxt = msg.err.Error()
			return m, nil
		}
		m.overview = msg.overview
		m.cursor = 0
		m.screen = screenProfile
		return m, nil

	case authDoneMsg:
		return m.onAuthDone(msg)

	case suggestionsMsg, placePickedMsg, submitDoneMsg:
		return m.updateCreate(msg)

	case tea.KeyMsg:
		return m.onKey(msg)
	}

	return m, nil
}

func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// text-entry screens own the keyboard apart from escape
	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenCreate:
		return m.updateCreate(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancelSession()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch m.screen {
	case screenFeed:
		return m.updateFeed(msg)
	case screenProfile:
		return m.updateProfile(msg)
	case screenDetail:
		if key.Matches(msg, m.keys.Back) {
			m.detail = nil
			m.screen = screenFeed
			if m.overview != nil {
				m.screen = screenProfile
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) updateFeed(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	current := m.deps.Feed.Current()

	switch {
	case key.Matches(msg, m.keys.Next):
		if m.busy {
			return m, nil
		}
		m.busy = true
		m.status = ""
		return m, m.nextCmd()

	case key.Matches(msg, m.keys.Favorite):
		if current == nil {
			return m, nil
		}
		return m.gated(m.applyCmd(current.ID, model.ActionFavorite))

	case key.Matches(msg, m.keys.Upvote):
		if current == nil {
			return m, nil
		}
		return m.gated(m.applyCmd(current.ID, model.ActionUpvote))

	case key.Matches(msg, m.keys.Downvote):
		if current == nil {
			return m, nil
		}
		return m.gated(m.applyCmd(current.ID, model.ActionDownvote))

	case key.Matches(msg, m.keys.Open):
		if current != nil {
			m.detail = current
			m.overview = nil
			m.screen = screenDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Profile):
		return m.gated(m.overviewCmd())

	case key.Matches(msg, m.keys.Create):
		if err := m.deps.Session.Require(); err != nil {
			m.screen = screenLogin
			return m, m.login.focusCmd()
		}
		m.screen = screenCreate
		return m, m.create.focusCmd()

	case key.Matches(msg, m.keys.Login):
		m.screen = screenLogin
		return m, m.login.focusCmd()

	case key.Matches(msg, m.keys.Logout):
		if m.deps.Session.Authenticated() {
			m.deps.Session.SignOut()
		}
		return m, nil
	}
	return m, nil
}

// gated runs cmd only for a signed-in session; otherwise it opens the login
// prompt and drops the action on the floor, to be re-invoked by hand.
func (m *Model) gated(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if err := m.deps.Session.Require(); err != nil {
		m.status = "Please log in first."
		m.screen = screenLogin
		return m, m.login.focusCmd()
	}
	m.busy = true
	return m, cmd
}

func (m *Model) onReceipt(msg receiptMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		if fterr.IsAuthRequired(msg.err) {
			m.screen = screenLogin
			return m, m.login.focusCmd()
		}
		m.errTxt = msg.err.Error()
		return m, nil
	}

	m.errTxt = ""
	if msg.receipt.Action == model.ActionFavorite {
		if m.deps.Actions.Saved(msg.receipt.Activity.ID) {
			m.status = "Saved."
		} else {
			m.status = "Removed from saved."
		}
	}
	// votes advance through the controller callback, not here
	return m, nil
}

func (m *Model) updateProfile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	entries := m.profileEntries()

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		if m.cursor < len(entries) {
			activity := entries[m.cursor]
			m.detail = &activity
			m.screen = screenDetail
		}
	case key.Matches(msg, m.keys.Back):
		m.overview = nil
		m.screen = screenFeed
	}
	return m, nil
}

func (m *Model) profileEntries() []model.Activity {
	if m.overview == nil {
		return nil
	}
	entries := make([]model.Activity, 0, len(m.overview.Favorites)+len(m.overview.Created))
	entries = append(entries, m.overview.Favorites...)
	entries = append(entries, m.overview.Created...)
	return entries
}

func (m *Model) onAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	m.busy = false
	if msg.err != nil {
		m.login.err = msg.err.Error()
		return m, nil
	}
	m.login.reset()
	m.screen = screenFeed
	return m, nil
}
