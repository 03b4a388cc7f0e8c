// Package ui renders terminal output for the CLI and TUI.
// All helpers pull styles from the active theme; SetTheme is called once at
// startup with the preference stored in the state document.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/mlcheck/internal/model"
)

// Styles bundles palette + symbols. All render helpers pull from `current`.
type Styles struct {
	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done, Help, Border                  lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
}

var current = themeStyles(model.ThemeSystem)

// SetTheme switches the active palette. Unknown values fall back to system.
func SetTheme(t model.Theme) {
	current = themeStyles(t)
}

// Current exposes what renderers need.
func Current() Styles { return current }

func themeStyles(t model.Theme) Styles {
	s := Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:     lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Help:     lipgloss.NewStyle().Faint(true),

		BoxUnchecked: "☐",
		BoxChecked:   "☑",
		SymDone:      "✔",
		SymPending:   "•",
	}
	switch t {
	case model.ThemeLight:
		s.Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("26"))
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("124")).Bold(true)
		s.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("130"))
		s.Border = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	case model.ThemeDark:
		s.Muted = lipgloss.NewStyle().Faint(true)
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		s.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
		s.Border = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	default: // system: let the terminal pick per background
		s.Muted = lipgloss.NewStyle().Faint(true)
		s.Accent = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "26", Dark: "12"})
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "28", Dark: "42"})
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "124", Dark: "9"}).Bold(true)
		s.Pending = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "130", Dark: "214"})
		s.Border = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "250", Dark: "8"})
	}
	return s
}
