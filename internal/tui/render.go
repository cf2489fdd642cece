package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"autosphere-api/internal/model"
	"autosphere-api/internal/view"
)

// NewMarkdownRenderer builds the glamour renderer for descriptions. style
// "auto" picks dark or light from the terminal.
func NewMarkdownRenderer(style string, width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}
	return glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
}

// RenderCard draws the grid tile for a car
func RenderCard(car model.Car, styles Styles, focused bool) string {
	var sb strings.Builder
	sb.WriteString(styles.Badge.Render(strings.ToUpper(car.Category)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(car.Make + " " + car.Model))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(strconv.Itoa(car.Year)))
	sb.WriteString("  ")
	sb.WriteString(styles.Price.Render(view.FormatPrice(car.MarketPrice, car.Currency, view.CardFractionDigits)))
	sb.WriteString("\n")
	sb.WriteString(styles.Label.Render("License Required: "))
	sb.WriteString(car.LicenseRequired)

	if focused {
		return styles.CardFocused.Render(sb.String())
	}
	return styles.Card.Render(sb.String())
}

// RenderSkeleton draws a placeholder tile shown while the featured set loads
func RenderSkeleton(styles Styles) string {
	bar := strings.Repeat("░", cardWidth-4)
	short := strings.Repeat("░", (cardWidth-4)/2)
	return styles.Skeleton.Render(strings.Join([]string{short, bar, short, bar}, "\n"))
}

// RenderGrid lays tiles out in rows of cols
func RenderGrid(tiles []string, cols int) string {
	if cols < 1 {
		cols = 1
	}
	rows := make([]string, 0, len(tiles)/cols+1)
	for start := 0; start < len(tiles); start += cols {
		end := start + cols
		if end > len(tiles) {
			end = len(tiles)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles[start:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// RenderDetail draws the full record: header, price and license, the
// description and every DIY fix with numbered steps. md may be nil.
func RenderDetail(car model.Car, styles Styles, md *glamour.TermRenderer) string {
	var sb strings.Builder

	sb.WriteString(styles.Badge.Render(strings.ToUpper(car.Category)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(car.Make + " " + car.Model))
	sb.WriteString("\n")
	sb.WriteString(styles.Muted.Render(fmt.Sprintf("%d Model Year", car.Year)))
	sb.WriteString("\n\n")

	sb.WriteString(styles.Label.Render("MARKET PRICE  "))
	sb.WriteString(styles.Price.Render(view.FormatPrice(car.MarketPrice, car.Currency, view.DetailFractionDigits)))
	sb.WriteString("\n")
	sb.WriteString(styles.Label.Render("LICENSE TYPE  "))
	sb.WriteString(car.LicenseRequired)
	sb.WriteString("\n\n")

	sb.WriteString(renderDescription(car.Description, md))
	sb.WriteString("\n")

	sb.WriteString(styles.Section.Render("DIY Home Fixes"))
	sb.WriteString("\n")
	for _, fix := range car.DIYFixes {
		sb.WriteString("\n")
		sb.WriteString(renderFix(fix, styles))
	}

	return sb.String()
}

func renderDescription(text string, md *glamour.TermRenderer) string {
	if md == nil {
		return text + "\n"
	}
	out, err := md.Render(text)
	if err != nil {
		return text + "\n"
	}
	return out
}

func renderFix(fix model.DIYFix, styles Styles) string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(fix.Problem))
	sb.WriteString("  ")
	sb.WriteString(DifficultyStyle(fix.Difficulty).Render(strings.ToUpper(string(fix.Difficulty))))
	sb.WriteString("\n")

	sb.WriteString(styles.Label.Render("Tools Needed: "))
	tools := make([]string, 0, len(fix.ToolsNeeded))
	for _, tool := range fix.ToolsNeeded {
		tools = append(tools, styles.Tool.Render(tool))
	}
	sb.WriteString(strings.Join(tools, ", "))
	sb.WriteString("\n")

	sb.WriteString(styles.Label.Render("Steps"))
	sb.WriteString("\n")
	for i, step := range fix.Steps {
		sb.WriteString(styles.StepNumber.Render(fmt.Sprintf("%d.", i+1)))
		sb.WriteString(" ")
		sb.WriteString(step)
		sb.WriteString("\n")
	}
	return sb.String()
}
