package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vkarthik/canvault/internal/grid"
	"github.com/vkarthik/canvault/internal/model"
)

const monthCellWidth = 16

// RenderMonth draws the full month grid: weekday header, one block row per
// week, fill days dimmed, capped item chips with a "+N more" line.
func RenderMonth(g grid.MonthGrid, marker TodayMarker, selectedPath string) string {
	var b strings.Builder
	b.WriteString(g.Label + "\n")
	b.WriteString(renderWeekdayHeader(g.Weekdays, monthCellWidth) + "\n")

	for _, row := range g.Rows {
		cells := make([]string, 0, 7)
		height := monthCellHeight(row)
		for _, cell := range row {
			cells = append(cells, renderMonthCell(cell, marker, selectedPath, height))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func monthCellHeight(row [7]grid.MonthCell) int {
	height := 1
	for _, cell := range row {
		lines := len(cell.Items)
		if cell.Overflow > 0 {
			lines++
		}
		if lines+1 > height {
			height = lines + 1
		}
	}
	return height
}

func renderMonthCell(cell grid.MonthCell, marker TodayMarker, selectedPath string, height int) string {
	lines := make([]string, 0, height)
	lines = append(lines, renderDayNumber(cell.Date.Day(), cell.IsToday, cell.InMonth, marker))
	for _, item := range cell.Items {
		lines = append(lines, itemChip(item, selectedPath))
	}
	if cell.Overflow > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("+%d more", cell.Overflow)))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	cellStyle := lipgloss.NewStyle().Width(monthCellWidth).MaxWidth(monthCellWidth)
	return cellStyle.Render(strings.Join(lines, "\n"))
}

func renderDayNumber(day int, isToday, inMonth bool, marker TodayMarker) string {
	switch {
	case isToday && marker == TodayGlyph:
		if glyph := dayGlyph(day); glyph != "" {
			return dayNumStyle.Render(glyph)
		}
		return todayBgStyle.Render(fmt.Sprintf(" %d ", day))
	case isToday:
		return todayBgStyle.Render(fmt.Sprintf(" %d ", day))
	case !inMonth:
		return dimStyle.Render(fmt.Sprintf("%d", day))
	default:
		return dayNumStyle.Render(fmt.Sprintf("%d", day))
	}
}

// itemChip is the truncated month-cell rendering of one item.
func itemChip(item model.DueItem, selectedPath string) string {
	name := item.DisplayName
	if runes := []rune(name); len(runes) > monthCellWidth-3 {
		name = string(runes[:monthCellWidth-4]) + "…"
	}
	c := model.ColorFor(item.Subject)
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(c.Background)).
		Foreground(lipgloss.Color(c.Text))
	if item.Path == selectedPath {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(name)
}

// RenderWeek draws the 7-cell week row with untruncated names and subject
// labels.
func RenderWeek(g grid.WeekGrid, marker TodayMarker, selectedPath string) string {
	var b strings.Builder
	b.WriteString(g.Label + "\n")

	for i, cell := range g.Cells {
		dayLabel := fmt.Sprintf("%s %s", g.Weekdays[i], cell.Date.Format("Jan 2"))
		switch {
		case cell.IsToday && marker == TodayGlyph:
			if glyph := dayGlyph(cell.Date.Day()); glyph != "" {
				dayLabel = fmt.Sprintf("%s %s %s", g.Weekdays[i], glyph, cell.Date.Format("Jan"))
			}
			dayLabel = dayNumStyle.Render(dayLabel)
		case cell.IsToday:
			dayLabel = todayBgStyle.Render(dayLabel)
		default:
			dayLabel = dayNumStyle.Render(dayLabel)
		}
		b.WriteString(dayLabel + "\n")

		if len(cell.Items) == 0 {
			b.WriteString("  " + dimStyle.Render(emptyStateText) + "\n")
			continue
		}
		for _, item := range cell.Items {
			cursor := " "
			if item.Path == selectedPath {
				cursor = ">"
			}
			b.WriteString(fmt.Sprintf("%s %s %s\n", cursor, item.DisplayName, SubjectBadge(item.Subject)))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderDay draws every item due on the anchor date, or the explicit
// empty-state message.
func RenderDay(d grid.DayList, selectedPath string) string {
	var b strings.Builder
	b.WriteString(d.Label + "\n\n")
	if d.Empty {
		b.WriteString(dimStyle.Render("No assignments due on this day."))
		return b.String()
	}
	for _, item := range d.Items {
		cursor := " "
		if item.Path == selectedPath {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [ ] %s %s\n", cursor, item.DisplayName, SubjectBadge(item.Subject)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderWeekdayHeader(weekdays [7]string, width int) string {
	cells := make([]string, 0, 7)
	style := lipgloss.NewStyle().Width(width).Bold(true)
	for _, name := range weekdays {
		cells = append(cells, style.Render(name))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}
