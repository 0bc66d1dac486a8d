package cli

import "github.com/charmbracelet/lipgloss"

// Palette shared by plain output and the dashboard.
var (
	colorGreen  = lipgloss.Color("#8ec07c")
	colorYellow = lipgloss.Color("#fabd2f")
	colorRed    = lipgloss.Color("#fb4934")
	colorDim    = lipgloss.Color("#928374")
	colorHeader = lipgloss.Color("#fe8019")
)

// Styles holds the lipgloss styles of the CLI
type Styles struct {
	Header  lipgloss.Style
	Working lipgloss.Style
	Break   lipgloss.Style
	Idle    lipgloss.Style
	Error   lipgloss.Style
	Dim     lipgloss.Style
	Bold    lipgloss.Style
	Clock   lipgloss.Style
	Box     lipgloss.Style
}

// NewStyles returns coloured styles, or unstyled ones when colour is false
func NewStyles(colour bool) Styles {
	if !colour {
		plain := lipgloss.NewStyle()
		return Styles{
			Header: plain, Working: plain, Break: plain, Idle: plain,
			Error: plain, Dim: plain, Bold: plain, Clock: plain, Box: plain,
		}
	}
	return Styles{
		Header:  lipgloss.NewStyle().Foreground(colorHeader).Bold(true),
		Working: lipgloss.NewStyle().Foreground(colorGreen),
		Break:   lipgloss.NewStyle().Foreground(colorYellow),
		Idle:    lipgloss.NewStyle().Foreground(colorDim),
		Error:   lipgloss.NewStyle().Foreground(colorRed),
		Dim:     lipgloss.NewStyle().Foreground(colorDim),
		Bold:    lipgloss.NewStyle().Bold(true),
		Clock:   lipgloss.NewStyle().Bold(true).Foreground(colorHeader),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(1, 3),
	}
}
