package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title          lipgloss.Style
	TitleFocused   lipgloss.Style
	Label          lipgloss.Style
	Placeholder    lipgloss.Style
	Choice         lipgloss.Style
	ChoicePending  lipgloss.Style
	ChoiceDisabled lipgloss.Style
	SearchPrompt   lipgloss.Style
	Group          lipgloss.Style
	Result         lipgloss.Style
	Highlight      lipgloss.Style
	Selected       lipgloss.Style
	Disabled       lipgloss.Style
	Em             lipgloss.Style
	NoResults      lipgloss.Style
	Status         lipgloss.Style
	Help           lipgloss.Style
	ClearMark      lipgloss.Style
	Scroll         lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("241")),
		TitleFocused: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Label:       lipgloss.NewStyle(),
		Placeholder: lipgloss.NewStyle().Faint(true).Italic(true),
		Choice: lipgloss.NewStyle().
			Foreground(lipgloss.Color("78")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		ChoicePending: lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		ChoiceDisabled: lipgloss.NewStyle().
			Faint(true).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		SearchPrompt: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Group:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33")),
		Result:       lipgloss.NewStyle(),
		Highlight:    lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true),
		Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		Disabled:     lipgloss.NewStyle().Faint(true),
		Em:           lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Underline(true),
		NoResults:    lipgloss.NewStyle().Faint(true).Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Help:      lipgloss.NewStyle().Faint(true),
		ClearMark: lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Scroll:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	}
}
