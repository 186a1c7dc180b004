// Package cli implements the mealctl command line tool.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mealsync/backend/internal/domain/mealplan"
)

var (
	colorBorder = lipgloss.Color("#575653")
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorGreen  = lipgloss.Color("#879A39")
	colorRed    = lipgloss.Color("#D14D41")
	colorMuted  = lipgloss.Color("#6F6E69")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Width(44).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	dimStyle    = lipgloss.NewStyle().Foreground(colorBorder)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	underStyle  = lipgloss.NewStyle().Foreground(colorGreen)
	overStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// table is a bordered text table.
type table struct {
	title   string
	headers []string
	rows    [][]string
}

func renderTitle(title string) string {
	return titleStyle.Render(title)
}

func renderTable(t table) string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	if t.title != "" {
		b.WriteString("  " + headerStyle.Render(t.title) + "\n")
	}

	border := func(left, mid, right string) {
		b.WriteString(dimStyle.Render(left))
		for i, w := range widths {
			b.WriteString(dimStyle.Render(strings.Repeat("─", w+2)))
			if i < len(widths)-1 {
				b.WriteString(dimStyle.Render(mid))
			}
		}
		b.WriteString(dimStyle.Render(right) + "\n")
	}
	line := func(cells []string, style *lipgloss.Style) {
		b.WriteString(dimStyle.Render("│"))
		for i, w := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := strings.Repeat(" ", w-lipgloss.Width(cell))
			if style != nil {
				cell = style.Render(cell)
			}
			b.WriteString(" " + cell + pad + " ")
			b.WriteString(dimStyle.Render("│"))
		}
		b.WriteString("\n")
	}

	border("╭", "┬", "╮")
	line(t.headers, &headerStyle)
	border("├", "┼", "┤")
	for _, row := range t.rows {
		line(row, nil)
	}
	border("╰", "┴", "╯")
	return b.String()
}

// renderDelta colors an under-budget delta green and an over-budget one red.
func renderDelta(line mealplan.SummaryLine) string {
	switch {
	case line.Delta.OverBudget():
		return overStyle.Render(line.Delta.String())
	case line.Delta.UnderBudget():
		return underStyle.Render(line.Delta.String())
	default:
		return mutedStyle.Render("on budget")
	}
}

func renderSummary(summary mealplan.Summary) string {
	rows := make([][]string, 0, len(summary.Lines))
	for _, l := range summary.Lines {
		rows = append(rows, []string{
			l.Label,
			l.Actual.StringFixed(2),
			l.Target.StringFixed(2),
			renderDelta(l),
		})
	}
	return renderTable(table{
		title:   fmt.Sprintf("Budget summary (week %d)", summary.Week),
		headers: []string{"Total", "Actual", "Target", "Delta"},
		rows:    rows,
	})
}

func renderBoard(board mealplan.WeekBoard) string {
	rows := make([][]string, 0, len(board.Days)*2)
	for _, day := range board.Days {
		for i, slot := range day.Slots {
			name := day.Name
			if i > 0 {
				name = ""
			}
			display := slot.DisplayName
			if !slot.Planned {
				display = mutedStyle.Render(display)
			}
			rows = append(rows, []string{name, string(slot.MealType), display, slot.Price.StringFixed(2)})
		}
	}
	rows = append(rows, []string{"", "", "Week total", board.Total.StringFixed(2)})
	return renderTable(table{
		title:   fmt.Sprintf("Week %d", board.Week),
		headers: []string{"Day", "Slot", "Meal", "Cost"},
		rows:    rows,
	})
}
