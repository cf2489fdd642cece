package tui

import (
	"github.com/charmbracelet/lipgloss"

	"autosphere-api/internal/model"
)

// Palette
var (
	Indigo    = lipgloss.Color("#4f46e5")
	Slate     = lipgloss.Color("#0f172a")
	SlateMute = lipgloss.Color("#64748b")
	SlateLine = lipgloss.Color("#cbd5e1")
	Rose      = lipgloss.Color("#fb7185")
	Green     = lipgloss.Color("#16a34a")
	Yellow    = lipgloss.Color("#ca8a04")
	Red       = lipgloss.Color("#dc2626")
)

const cardWidth = 34

// Styles groups every lipgloss style the views use
type Styles struct {
	Title       lipgloss.Style
	Tagline     lipgloss.Style
	Section     lipgloss.Style
	Hint        lipgloss.Style
	Error       lipgloss.Style
	Card        lipgloss.Style
	CardFocused lipgloss.Style
	Skeleton    lipgloss.Style
	Badge       lipgloss.Style
	Price       lipgloss.Style
	Label       lipgloss.Style
	Muted       lipgloss.Style
	Overlay     lipgloss.Style
	StepNumber  lipgloss.Style
	Tool        lipgloss.Style
}

func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(SlateLine).
		Padding(0, 1).
		Width(cardWidth)

	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(Indigo),
		Tagline:     lipgloss.NewStyle().Foreground(SlateMute),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(Slate).MarginTop(1),
		Hint:        lipgloss.NewStyle().Foreground(SlateMute).Italic(true),
		Error:       lipgloss.NewStyle().Foreground(Rose).Bold(true),
		Card:        card,
		CardFocused: card.BorderForeground(Indigo),
		Skeleton:    card.Foreground(SlateLine),
		Badge:       lipgloss.NewStyle().Bold(true).Foreground(Indigo),
		Price:       lipgloss.NewStyle().Bold(true).Foreground(Indigo),
		Label:       lipgloss.NewStyle().Bold(true).Foreground(SlateMute),
		Muted:       lipgloss.NewStyle().Foreground(SlateMute),
		Overlay:     lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(Indigo).Padding(1, 2),
		StepNumber:  lipgloss.NewStyle().Bold(true).Foreground(Indigo),
		Tool:        lipgloss.NewStyle().Foreground(Slate),
	}
}

// DifficultyStyle colours the badge: Easy green, Medium yellow, Hard red
func DifficultyStyle(d model.Difficulty) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)
	switch d {
	case model.DifficultyEasy:
		return base.Foreground(Green)
	case model.DifficultyMedium:
		return base.Foreground(Yellow)
	default:
		return base.Foreground(Red)
	}
}
