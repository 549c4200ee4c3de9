package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/funthingsnearme/nearby/internal/feed"
	"github.com/funthingsnearme/nearby/internal/model"
	"github.com/funthingsnearme/nearby/internal/wizard"
)

func (m *Model) View() string {
	var body string
	switch m.screen {
	case screenFeed:
		body = m.viewFeed()
	case screenLogin:
		body = m.viewLogin()
	case screenCreate:
		body = m.viewCreate()
	case screenProfile:
		body = m.viewProfile()
	case screenDetail:
		body = m.viewDetail()
	}

	footer := m.help.View(m.keys)

	sections := []string{body}
	if m.status != "" {
		sections = append(sections, m.st.muted.Render(m.status))
	}
	if m.errTxt != "" {
		sections = append(sections, m.st.errorText.Render(m.errTxt))
	}
	sections = append(sections, footer)

	return m.st.app.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) viewFeed() string {
	current := m.deps.Feed.Current()

	if current == nil {
		if m.busy || m.deps.Feed.Phase() == feed.PhaseInitialLoading {
			return m.spin.View() + " finding something nearby..."
		}
		return m.st.muted.Render("Nothing yet. Press n to look around.")
	}

	card := m.renderCard(current)
	if m.busy {
		return lipgloss.JoinVertical(lipgloss.Left, card, m.spin.View()+" loading the next one...")
	}
	return card
}

func (m *Model) renderCard(activity *model.Activity) string {
	var lines []string

	title := m.st.title.Render(activity.Title)
	if m.deps.Actions.Saved(activity.ID) {
		title = lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", m.st.savedTag.Render("saved"))
	}
	lines = append(lines, title)

	if activity.URL != "" {
		lines = append(lines, m.st.url.Render(activity.URL))
	}
	lines = append(lines, "", m.st.body.Render(activity.Description))

	var badges []string
	if activity.PetsAllowed {
		badges = append(badges, m.st.badge.Render("pets ok"))
	}
	if activity.Accessibility {
		badges = append(badges, m.st.badge.Render("accessible"))
	}
	if activity.Location.Valid && activity.Location.String != "" {
		badges = append(badges, m.st.muted.Render(activity.Location.String))
	}
	if len(badges) > 0 {
		lines = append(lines, "", strings.Join(badges, " "))
	}

	lines = append(lines, "", m.st.counts.Render(fmt.Sprintf(
		"♥ %d   ↑ %d   ↓ %d",
		activity.FavoritesCount, activity.ThumbsUpCount, activity.ThumbsDownCount,
	)))

	return m.st.card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m *Model) viewLogin() string {
	f := &m.login

	heading := "Log in"
	if f.registering {
		heading = "Create an account"
	}

	lines := []string{
		m.st.heading.Render(heading),
		f.email.View(),
		f.password.View(),
		"",
	}
	if f.legacy {
		lines = append(lines, m.st.muted.Render("enter to log in · esc to go back"))
	} else {
		lines = append(lines, m.st.muted.Render("enter to submit · ctrl+r to switch login/register · esc to go back"))
	}
	if f.err != "" {
		lines = append(lines, m.st.errorText.Render(f.err))
	}
	if m.busy {
		lines = append(lines, m.spin.View()+" signing in...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) viewCreate() string {
	f := &m.create
	draft := f.wiz.Draft()

	lines := []string{m.st.heading.Render("New activity · " + f.wiz.State().String())}

	switch f.wiz.State() {
	case wizard.StateEnteringTitle, wizard.StateEnteringURL, wizard.StateEnteringDescription:
		lines = append(lines, f.input.View())

	case wizard.StateChoosingLocation:
		lines = append(lines, f.input.View())
		if f.picking {
			for i, s := range f.suggestions {
				cursor := "  "
				line := s.Description
				if i == f.sel {
					cursor = m.st.cursor.Render("> ")
					line = m.st.title.Render(line)
				}
				lines = append(lines, cursor+line)
			}
		}

	case wizard.StateChoosingFeatures:
		lines = append(lines,
			checkbox("pets allowed (p)", draft.PetsAllowed),
			checkbox("accessible (a)", draft.Accessibility),
			"",
		)
		if f.imageMode {
			lines = append(lines, f.input.View())
		} else if draft.ImagePath != "" {
			lines = append(lines, m.st.muted.Render("image: "+draft.ImagePath+" (i to change)"))
		} else {
			lines = append(lines, m.st.muted.Render("i to attach an image · enter to continue"))
		}

	case wizard.StateReady:
		lines = append(lines,
			m.st.title.Render(draft.Title),
			m.st.url.Render(draft.URL),
			m.st.body.Render(draft.Description),
		)
		if draft.Address != "" {
			lines = append(lines, m.st.muted.Render(draft.Address))
		}
		lines = append(lines, "", m.st.muted.Render("enter to submit · esc to discard"))

		for _, message := range f.wiz.Errors() {
			lines = append(lines, m.st.fieldErr.Render(message))
		}
	}

	if f.err != "" {
		lines = append(lines, "", m.st.errorText.Render(f.err))
	}
	if m.busy {
		lines = append(lines, m.spin.View()+" working...")
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func checkbox(label string, checked bool) string {
	if checked {
		return "[x] " + label
	}
	return "[ ] " + label
}

func (m *Model) viewProfile() string {
	if m.overview == nil {
		return m.spin.View() + " loading profile..."
	}

	lines := []string{m.st.heading.Render("Profile · " + m.overviewTitle())}

	index := 0
	section := func(name string, activities []model.Activity) {
		lines = append(lines, m.st.title.Render(name))
		if len(activities) == 0 {
			lines = append(lines, m.st.muted.Render("  none yet"))
		}
		for _, activity := range activities {
			cursor := "  "
			line := activity.Title
			if index == m.cursor {
				cursor = m.st.cursor.Render("> ")
				line = m.st.title.Render(line)
			}
			lines = append(lines, cursor+line)
			index++
		}
		lines = append(lines, "")
	}

	section("Favorites", m.overview.Favorites)
	section("Created by you", m.overview.Created)

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) overviewTitle() string {
	if m.overview.Email != "" {
		return m.overview.Email
	}
	return "your activities"
}

func (m *Model) viewDetail() string {
	if m.detail == nil {
		return ""
	}

	card := m.renderCard(m.detail)
	extra := []string{card}
	if m.detail.ImageURL.Valid && m.detail.ImageURL.String != "" {
		extra = append(extra, m.st.muted.Render("image: "+m.detail.ImageURL.String))
	}
	if m.detail.Latitude.Valid && m.detail.Longitude.Valid {
		extra = append(extra, m.st.muted.Render(fmt.Sprintf(
			"at %.5f, %.5f", m.detail.Latitude.Float64, m.detail.Longitude.Float64,
		)))
	}
	extra = append(extra, m.st.muted.Render("esc to go back"))

	return lipgloss.JoinVertical(lipgloss.Left, extra...)
}
