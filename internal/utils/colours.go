package utils

import "github.com/charmbracelet/lipgloss"

// ColourScheme is the subset of the Catppuccin Mocha palette the UI draws with
type ColourScheme struct {
	Red      string
	Peach    string
	Yellow   string
	Green    string
	Sapphire string
	Blue     string
	Lavender string
	Text     string
	Subtext0 string
	Overlay0 string
	Surface1 string
	Surface0 string
	Base     string
}

var Colours = ColourScheme{
	Red:      "#f38ba8",
	Peach:    "#fab387",
	Yellow:   "#f9e2af",
	Green:    "#a6e3a1",
	Sapphire: "#74c7ec",
	Blue:     "#89b4fa",
	Lavender: "#b4befe",
	Text:     "#cdd6f4",
	Subtext0: "#a6adc8",
	Overlay0: "#6c7086",
	Surface1: "#45475a",
	Surface0: "#313244",
	Base:     "#1e1e2e",
}

// Styles shared by the form and confirmation screens
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Colours.Blue)).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Colours.Text)).
			Bold(true)

	FocusedLabelStyle = LabelStyle.
				Foreground(lipgloss.Color(Colours.Lavender))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Colours.Text))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Colours.Red))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Colours.Overlay0)).
			Italic(true)

	ContainerStyle = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(Colours.Blue))
)

// ButtonStyle renders the submit button, highlighted when focused and
// dimmed when submission is disabled
func ButtonStyle(focused, enabled bool) lipgloss.Style {
	style := lipgloss.NewStyle().Padding(0, 2).Bold(true)

	switch {
	case !enabled:
		return style.
			Foreground(lipgloss.Color(Colours.Overlay0)).
			Background(lipgloss.Color(Colours.Surface0))
	case focused:
		return style.
			Foreground(lipgloss.Color(Colours.Base)).
			Background(lipgloss.Color(Colours.Green))
	default:
		return style.
			Foreground(lipgloss.Color(Colours.Text)).
			Background(lipgloss.Color(Colours.Surface1))
	}
}
