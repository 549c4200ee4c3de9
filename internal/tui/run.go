package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
)

// Run takes over the terminal until the user quits. A non-zero activityID
// deep-links the feed straight to that record.
func Run(deps Deps, activityID int) error {
	m := newModel(deps, activityID)

	p := tea.NewProgram(m, tea.WithAltScreen())

	// a successful vote means "show me the next one"
	deps.Actions.OnAdvance(func() {
		p.Send(advanceMsg{})
	})

	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "terminal ui failed")
	}
	return nil
}
