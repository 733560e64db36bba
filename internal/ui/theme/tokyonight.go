package theme

import "github.com/charmbracelet/lipgloss"

var (
	Base     = lipgloss.Color("#1a1b26")
	Mantle   = lipgloss.Color("#16161e")
	Surface0 = lipgloss.Color("#292e42")
	Surface1 = lipgloss.Color("#3b4261")
	Text     = lipgloss.Color("#c0caf5")
	Subtext0 = lipgloss.Color("#a9b1d6")
	Blue     = lipgloss.Color("#7aa2f7")
	Cyan     = lipgloss.Color("#7dcfff")
	Green    = lipgloss.Color("#9ece6a")
	Yellow   = lipgloss.Color("#e0af68")
	Orange   = lipgloss.Color("#ff9e64")
	Red      = lipgloss.Color("#f7768e")

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Background(Mantle).
		Foreground(Text).
		Padding(1)

	PaneActive = Pane.BorderForeground(Blue)

	Title = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot   = lipgloss.NewStyle().Foreground(Orange).Bold(true)

	// Score bands for form-score rendering.
	Good = lipgloss.NewStyle().Foreground(Green)
	Fair = lipgloss.NewStyle().Foreground(Yellow)
	Poor = lipgloss.NewStyle().Foreground(Red)
)
