package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo/internal/model"
)

// Theme bundles styles + symbols.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style
	Selected, Done                                lipgloss.Style
	Border                                        lipgloss.Border
	BorderColor                                   lipgloss.Color

	BoxUnchecked, BoxChecked string
	SymDone, SymPending      string

	// Card is the background of item rows; set from the card palette.
	Card lipgloss.Style
	// Background is the panel background; set from the main palette.
	Background lipgloss.Style
}

var current = classic()

// Themes lists the names SetTheme understands.
var Themes = []string{"classic", "neon", "mono"}

func SetTheme(name string) {
	switch strings.ToLower(name) {
	case "neon":
		current = neon()
	case "mono":
		current = mono()
	default:
		current = classic()
	}
}

// Current exposes what renderers need.
func Current() Theme { return current }

// WithSwatches returns t with panel and card backgrounds from the palettes.
func (t Theme) WithSwatches(bg, card model.Swatch) Theme {
	if t.Name == "mono" {
		return t
	}
	t.Background = lipgloss.NewStyle().Background(lipgloss.Color(bg.Hex)).Foreground(lipgloss.Color("0"))
	t.Card = lipgloss.NewStyle().Background(lipgloss.Color(card.Hex)).Foreground(lipgloss.Color("0"))
	return t
}

// PriorityStyle colours a priority: low blue, medium orange, high red.
func (t Theme) PriorityStyle(p model.Priority) lipgloss.Style {
	if t.Name == "mono" {
		return lipgloss.NewStyle()
	}
	switch p {
	case model.PriorityLow:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	case model.PriorityHigh:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
}

func classic() Theme {
	return Theme{
		Name:         "classic",
		Title:        lipgloss.NewStyle().Bold(true),
		Muted:        lipgloss.NewStyle().Faint(true),
		Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Selected:     lipgloss.NewStyle().Bold(true).Reverse(true),
		Done:         lipgloss.NewStyle().Faint(true).Strikethrough(true),
		Border:       lipgloss.RoundedBorder(),
		BorderColor:  lipgloss.Color("8"),
		BoxUnchecked: "☐", BoxChecked: "☑",
		SymDone: "✔", SymPending: "•",
	}
}

func neon() Theme {
	t := classic()
	t.Name = "neon"
	t.Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	t.Accent = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	t.Pending = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	t.BoxUnchecked, t.BoxChecked = "◻", "◼"
	return t
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:  "mono",
		Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
		Selected:     plain.Reverse(true),
		Done:         plain,
		Border:       lipgloss.NormalBorder(),
		BoxUnchecked: "[ ]", BoxChecked: "[x]",
		SymDone: "x", SymPending: "-",
	}
}
