package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// loginForm is the login/register prompt. In legacy mode the email field
// doubles as the username and registration is handled elsewhere.
type loginForm struct {
	email    textinput.Model
	password textinput.Model

	legacy      bool
	registering bool
	focus       int
	err         string
}

func newLoginForm(legacy bool) loginForm {
	email := textinput.New()
	email.Placeholder = "email"
	if legacy {
		email.Placeholder = "username"
	}
	email.CharLimit = 128
	email.Width = 40

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128
	password.Width = 40

	return loginForm{
		email:    email,
		password: password,
		legacy:   legacy,
	}
}

func (f *loginForm) focusCmd() tea.Cmd {
	f.focus = 0
	f.password.Blur()
	return f.email.Focus()
}

func (f *loginForm) reset() {
	f.email.Reset()
	f.password.Reset()
	f.err = ""
	f.registering = false
}

func (f *loginForm) ready() bool {
	return strings.TrimSpace(f.email.Value()) != "" && f.password.Value() != ""
}

func (m *Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := &m.login

	switch msg.String() {
	case "esc":
		f.reset()
		m.screen = screenFeed
		return m, nil

	case "tab", "shift+tab":
		if f.focus == 0 {
			f.focus = 1
			f.email.Blur()
			return m, f.password.Focus()
		}
		f.focus = 0
		f.password.Blur()
		return m, f.email.Focus()

	case "ctrl+r":
		if !f.legacy {
			f.registering = !f.registering
		}
		return m, nil

	case "enter":
		if !f.ready() {
			f.err = "Both fields are required."
			return m, nil
		}
		f.err = ""
		m.busy = true
		if f.legacy {
			return m, m.legacySignInCmd(f.email.Value(), f.password.Value())
		}
		return m, m.signInCmd(f.email.Value(), f.password.Value(), f.registering)
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.email, cmd = f.email.Update(msg)
	} else {
		f.password, cmd = f.password.Update(msg)
	}
	return m, cmd
}
