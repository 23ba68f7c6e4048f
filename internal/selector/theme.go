package selector

import "github.com/charmbracelet/lipgloss"

// Theme holds the colors used by the List prompt. Colors are ANSI 256
// codes so they render on most terminals.
type Theme struct {
	Prompt   lipgloss.Color
	Active   lipgloss.Color
	Inactive lipgloss.Color
	Chosen   lipgloss.Color
	Help     lipgloss.Color
}

// DefaultTheme returns the standard palette.
func DefaultTheme() Theme {
	return Theme{
		Prompt:   lipgloss.Color("81"),
		Active:   lipgloss.Color("214"),
		Inactive: lipgloss.Color("252"),
		Chosen:   lipgloss.Color("78"),
		Help:     lipgloss.Color("241"),
	}
}

type styles struct {
	prompt   lipgloss.Style
	active   lipgloss.Style
	inactive lipgloss.Style
	chosen   lipgloss.Style
	help     lipgloss.Style
}

func (t Theme) styles() styles {
	return styles{
		prompt:   lipgloss.NewStyle().Bold(true).Foreground(t.Prompt),
		active:   lipgloss.NewStyle().Bold(true).Foreground(t.Active),
		inactive: lipgloss.NewStyle().Foreground(t.Inactive),
		chosen:   lipgloss.NewStyle().Foreground(t.Chosen),
		help:     lipgloss.NewStyle().Faint(true).Foreground(t.Help),
	}
}
