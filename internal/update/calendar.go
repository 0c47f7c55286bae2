package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkarthik/canvault/internal/grid"
	"github.com/vkarthik/canvault/internal/model"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "d":
		m.setCalendarMode(ModeDay)
	case "w":
		m.setCalendarMode(ModeWeek)
	case "m":
		m.setCalendarMode(ModeMonth)
	case "h", "left":
		m.shiftCalendarAnchor(-1)
	case "l", "right":
		m.shiftCalendarAnchor(1)
	case "t":
		m.Calendar.Anchor = model.CivilDate(m.deps.Now())
		m.Calendar.Cursor = 0
		m.Status = StatusBar{Text: "calendar: back to today"}
	case "up", "k":
		if m.Calendar.Cursor > 0 {
			m.Calendar.Cursor--
		}
	case "down", "j":
		if m.Calendar.Cursor < len(m.visibleCalendarItems())-1 {
			m.Calendar.Cursor++
		}
	case "enter":
		if item, ok := m.selectedCalendarItem(); ok {
			return m, openCmd(m.deps, item)
		}
	case "v":
		if item, ok := m.selectedCalendarItem(); ok {
			return m, previewCmd(m.deps, item)
		}
	case "c":
		if item, ok := m.selectedCalendarItem(); ok {
			return m, completeCmd(m.deps, item)
		}
	}
	return m, nil
}

// setCalendarMode switches the grid granularity, keeping the anchor. A
// redundant switch is a no-op so identical state never forces a rebuild.
func (m *Model) setCalendarMode(mode CalendarMode) {
	if m.Calendar.Mode == mode {
		return
	}
	m.Calendar.Mode = mode
	m.Calendar.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("calendar mode: %s", mode)}
}

// shiftCalendarAnchor moves the anchor by one unit of the current mode:
// a calendar month (clamped to the 1st), a 7-day week, or a single day.
func (m *Model) shiftCalendarAnchor(delta int) {
	switch m.Calendar.Mode {
	case ModeDay:
		m.Calendar.Anchor = m.Calendar.Anchor.AddDate(0, 0, delta)
	case ModeWeek:
		m.Calendar.Anchor = m.Calendar.Anchor.AddDate(0, 0, 7*delta)
	default:
		anchor := m.Calendar.Anchor
		firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
		m.Calendar.Anchor = firstOfMonth.AddDate(0, delta, 0)
	}
	m.Calendar.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("calendar: %s", m.Calendar.Anchor.Format("2006-01-02"))}
}

// visibleCalendarItems flattens the items inside the current mode's date
// range, ordered by date then name, for cursor navigation.
func (m Model) visibleCalendarItems() []model.DueItem {
	index := grid.BuildIndex(m.Items)
	var out []model.DueItem
	switch m.Calendar.Mode {
	case ModeDay:
		out = grid.BuildDay(m.Calendar.Anchor, index).Items
	case ModeWeek:
		week := grid.BuildWeek(m.Calendar.Anchor, m.deps.Now(), index)
		for _, cell := range week.Cells {
			out = append(out, cell.Items...)
		}
	default:
		month := grid.BuildMonth(m.Calendar.Anchor, m.deps.Now(), index, 0)
		for _, row := range month.Rows {
			for _, cell := range row {
				if cell.InMonth {
					out = append(out, cell.Items...)
				}
			}
		}
	}
	return out
}

func (m Model) selectedCalendarItem() (model.DueItem, bool) {
	items := m.visibleCalendarItems()
	if len(items) == 0 || m.Calendar.Cursor < 0 || m.Calendar.Cursor >= len(items) {
		return model.DueItem{}, false
	}
	return items[m.Calendar.Cursor], true
}

func (m *Model) ensureCalendarState() {
	if !m.Calendar.Mode.IsValid() {
		m.Calendar.Mode = ModeMonth
	}
	if m.Calendar.Anchor.IsZero() {
		m.Calendar.Anchor = model.CivilDate(m.deps.Now())
	}
	if m.Calendar.Cursor < 0 {
		m.Calendar.Cursor = 0
	}
	if visible := len(m.visibleCalendarItems()); m.Calendar.Cursor >= visible && visible > 0 {
		m.Calendar.Cursor = visible - 1
	}
}
