package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string
	Border                   lipgloss.Border
	BorderColor              lipgloss.TerminalColor
}

// ThemeNames lists the accepted theme names; the first is the default.
var ThemeNames = []string{"classic", "neon", "mono"}

var current = themeFor("classic")

// SetTheme switches the active theme. Unknown names are an error and leave
// the current theme in place.
func SetTheme(name string) error {
	name = strings.ToLower(strings.TrimSpace(name))
	if !ValidTheme(name) {
		return fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames, ", "))
	}
	current = themeFor(name)
	return nil
}

func ValidTheme(name string) bool {
	for _, n := range ThemeNames {
		if n == name {
			return true
		}
	}
	return false
}

// Current exposes what renderers need.
func Current() Theme { return current }

func themeFor(name string) Theme {
	plain := lipgloss.NewStyle()
	switch name {
	case "neon":
		return Theme{
			Name:         name,
			Title:        plain.Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        plain.Foreground(lipgloss.Color("8")),
			Accent:       plain.Foreground(lipgloss.Color("14")),
			Success:      plain.Foreground(lipgloss.Color("10")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("11")),
			Selected:     plain.Bold(true).Reverse(true),
			Done:         plain.Faint(true).Strikethrough(true),
			BoxUnchecked: "◻", BoxChecked: "◼",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("13"),
		}
	case "mono":
		return Theme{
			Name:         name,
			Title:        plain.Bold(true),
			Muted:        plain,
			Accent:       plain,
			Success:      plain,
			Error:        plain.Bold(true),
			Pending:      plain,
			Selected:     plain.Reverse(true),
			Done:         plain.Strikethrough(true),
			BoxUnchecked: "[ ]", BoxChecked: "[x]",
			SymDone: "x", SymPending: "-",
			Border:      lipgloss.NormalBorder(),
			BorderColor: lipgloss.NoColor{},
		}
	default: // classic
		return Theme{
			Name:         "classic",
			Title:        plain.Bold(true),
			Muted:        plain.Faint(true),
			Accent:       plain.Foreground(lipgloss.Color("12")),
			Success:      plain.Foreground(lipgloss.Color("42")),
			Error:        plain.Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      plain.Foreground(lipgloss.Color("214")),
			Selected:     plain.Bold(true).Reverse(true),
			Done:         plain.Faint(true).Strikethrough(true),
			BoxUnchecked: "☐", BoxChecked: "☑",
			SymDone: "✔", SymPending: "•",
			Border:      lipgloss.RoundedBorder(),
			BorderColor: lipgloss.Color("8"),
		}
	}
}
