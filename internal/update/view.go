package update

import (
	"fmt"
	"strings"

	"github.com/vkarthik/canvault/internal/config"
	"github.com/vkarthik/canvault/internal/grid"
	"github.com/vkarthik/canvault/internal/views"
)

func (m Model) View() string {
	if m.Quitting {
		return "bye!\n"
	}

	if m.previewActive {
		body := m.preview.View()
		return views.RenderApp(views.AppData{
			Header:     "Preview: " + m.previewTitle,
			Body:       body,
			StatusLine: m.statusLine(),
			IsError:    m.Status.IsError,
			Footer:     "[esc]close [j/k]scroll",
		})
	}

	header := fmt.Sprintf("canvault | [1]list [2]calendar | %s", m.CurrentView)
	if m.spinnerActive {
		header += " " + m.syncSpinner.View() + "syncing"
	}

	body := ""
	switch m.CurrentView {
	case ViewCalendar:
		body = m.renderCalendarView()
	default:
		body = m.renderListView()
	}

	footer := ""
	if m.HelpVisible {
		footer = m.renderHelp()
	}

	return views.RenderApp(views.AppData{
		Header:     header,
		Body:       body,
		StatusLine: m.statusLine(),
		IsError:    m.Status.IsError,
		Footer:     footer,
	})
}

func (m Model) renderListView() string {
	sections := grid.BuildSections(m.Items, m.List.Grouping, m.deps.Now())
	return views.RenderList(views.ListData{
		Sections:     sections,
		Grouping:     m.List.Grouping,
		SelectedPath: m.selectedPath(),
	})
}

func (m Model) renderCalendarView() string {
	index := grid.BuildIndex(m.Items)
	marker := m.todayMarkerPolicy()
	switch m.Calendar.Mode {
	case ModeDay:
		return views.RenderDay(grid.BuildDay(m.Calendar.Anchor, index), m.selectedPath())
	case ModeWeek:
		return views.RenderWeek(grid.BuildWeek(m.Calendar.Anchor, m.deps.Now(), index), marker, m.selectedPath())
	default:
		return views.RenderMonth(grid.BuildMonth(m.Calendar.Anchor, m.deps.Now(), index, m.maxPerCell()), marker, m.selectedPath())
	}
}

func (m Model) todayMarkerPolicy() views.TodayMarker {
	if m.todayMarker() == config.TodayMarkerBackgr {
		return views.TodayBackground
	}
	return views.TodayGlyph
}

// selectedPath identifies the item under the cursor of whichever view is
// active so renderers can highlight it.
func (m Model) selectedPath() string {
	if m.CurrentView == ViewCalendar {
		if item, ok := m.selectedCalendarItem(); ok {
			return item.Path
		}
		return ""
	}
	if item, ok := m.selectedListItem(); ok {
		return item.Path
	}
	return ""
}

func (m Model) statusLine() string {
	if m.Status.Text == "" {
		return ""
	}
	if m.Status.IsError {
		return "status: error: " + m.Status.Text
	}
	return "status: " + m.Status.Text
}

func (m Model) renderHelp() string {
	lines := []string{
		"keys:",
		"  1 list view    2 calendar view",
		"  j/k move       enter open note",
		"  c complete     v preview",
		"  g regroup      S sync now",
		"  r reload       q quit",
	}
	if m.CurrentView == ViewCalendar {
		lines = append(lines,
			"  d/w/m day/week/month",
			"  h/l previous/next    t today",
		)
	}
	return strings.Join(lines, "\n")
}

func renderPreview(body string) string {
	return views.RenderMarkdown(body)
}
