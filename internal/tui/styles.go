package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	app       lipgloss.Style
	card      lipgloss.Style
	title     lipgloss.Style
	url       lipgloss.Style
	body      lipgloss.Style
	badge     lipgloss.Style
	savedTag  lipgloss.Style
	counts    lipgloss.Style
	muted     lipgloss.Style
	errorText lipgloss.Style
	fieldErr  lipgloss.Style
	heading   lipgloss.Style
	cursor    lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		app: lipgloss.NewStyle().
			Padding(1, 2),
		card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2).
			Width(64),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")),
		url: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true),
		body: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		savedTag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("161")).
			Padding(0, 1),
		counts: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		errorText: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Bold(true),
		fieldErr: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")),
		heading: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true),
	}
}
