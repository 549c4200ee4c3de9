package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/funthingsnearme/nearby/internal/auth"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/places"
	"github.com/funthingsnearme/nearby/internal/profile"
	"github.com/funthingsnearme/nearby/internal/rest"
)

// Messages delivered through the bubbletea loop. Every blocking operation
// runs as a command and reports back with one of these.
type (
	cardMsg struct {
		activity *model.Activity
		err      error
	}

	receiptMsg struct {
		receipt *rest.PreferenceReceipt
		err     error
	}

	overviewMsg struct {
		overview *profile.Overview
		err      error
	}

	authDoneMsg struct {
		err error
	}

	sessionChangeMsg struct {
		change auth.Change
		open   bool
	}

	// advanceMsg is delivered when a successful vote asks the feed to move
	// on to the next card.
	advanceMsg struct{}

	submitDoneMsg struct {
		activity *model.Activity
		err      error
	}

	suggestionsMsg struct {
		items []places.Suggestion
		err   error
	}

	placePickedMsg struct {
		err error
	}
)

func (m *Model) startFeedCmd() tea.Cmd {
	return func() tea.Msg {
		activity, err := m.deps.Feed.Start(context.Background(), m.activityID)
		return cardMsg{activity: activity, err: err}
	}
}

func (m *Model) nextCmd() tea.Cmd {
	return func() tea.Msg {
		activity, err := m.deps.Feed.Next(context.Background())
		return cardMsg{activity: activity, err: err}
	}
}

func (m *Model) applyCmd(activityID int, action model.PreferenceAction) tea.Cmd {
	return func() tea.Msg {
		receipt, err := m.deps.Actions.Apply(context.Background(), activityID, action)
		return receiptMsg{receipt: receipt, err: err}
	}
}

func (m *Model) overviewCmd() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.deps.Profile.Overview(context.Background())
		return overviewMsg{overview: overview, err: err}
	}
}

func (m *Model) seedSavedCmd() tea.Cmd {
	return func() tea.Msg {
		m.deps.Actions.SeedSaved(context.Background())
		return nil
	}
}

// signInCmd authenticates and then upserts the backend-side user bound to
// the fresh token.
func (m *Model) signInCmd(email, password string, register bool) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		var err error
		if register {
			err = m.deps.Session.SignUp(ctx, email, password)
		} else {
			err = m.deps.Session.SignIn(ctx, email, password)
		}
		if err != nil {
			return authDoneMsg{err: err}
		}

		token, err := m.deps.Session.IDToken(ctx)
		if err != nil {
			return authDoneMsg{err: err}
		}
		if _, err := m.deps.API.RegisterOrLogin(ctx, token); err != nil {
			return authDoneMsg{err: err}
		}
		return authDoneMsg{}
	}
}

func (m *Model) legacySignInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		tokens, err := m.deps.API.LegacyLogin(context.Background(), email, password)
		if err != nil {
			return authDoneMsg{err: err}
		}
		m.deps.Session.AdoptLegacy(tokens)
		return authDoneMsg{}
	}
}

func (m *Model) suggestCmd(query string) tea.Cmd {
	return func() tea.Msg {
		items, err := m.deps.Wizard.SuggestLocations(context.Background(), query)
		return suggestionsMsg{items: items, err: err}
	}
}

func (m *Model) pickPlaceCmd(suggestion places.Suggestion) tea.Cmd {
	return func() tea.Msg {
		return placePickedMsg{err: m.deps.Wizard.SelectSuggestion(context.Background(), suggestion)}
	}
}

func (m *Model) submitCmd() tea.Cmd {
	return func() tea.Msg {
		activity, err := m.deps.Wizard.Submit(context.Background())
		return submitDoneMsg{activity: activity, err: err}
	}
}

// waitSessionCmd blocks on the session subscription and re-arms itself
// after every delivery until the channel closes on teardown.
func (m *Model) waitSessionCmd() tea.Cmd {
	return func() tea.Msg {
		change, open := <-m.sessionCh
		return sessionChangeMsg{change: change, open: open}
	}
}
