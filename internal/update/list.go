package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkarthik/canvault/internal/grid"
	"github.com/vkarthik/canvault/internal/model"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.List.Cursor > 0 {
			m.List.Cursor--
		}
	case "down", "j":
		if m.List.Cursor < len(m.listItems())-1 {
			m.List.Cursor++
		}
	case "g":
		m.List.Grouping = m.List.Grouping.Next()
		m.List.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("grouped by %s", m.List.Grouping)}
	case "enter":
		if item, ok := m.selectedListItem(); ok {
			return m, openCmd(m.deps, item)
		}
	case "v":
		if item, ok := m.selectedListItem(); ok {
			return m, previewCmd(m.deps, item)
		}
	case "c":
		if item, ok := m.selectedListItem(); ok {
			return m, completeCmd(m.deps, item)
		}
	}
	return m, nil
}

// listItems flattens the grouped sections in display order so the cursor
// index lines up with the rendered rows.
func (m Model) listItems() []model.DueItem {
	var out []model.DueItem
	for _, section := range grid.BuildSections(m.Items, m.List.Grouping, m.deps.Now()) {
		out = append(out, section.Items...)
	}
	return out
}

func (m Model) selectedListItem() (model.DueItem, bool) {
	items := m.listItems()
	if len(items) == 0 || m.List.Cursor < 0 || m.List.Cursor >= len(items) {
		return model.DueItem{}, false
	}
	return items[m.List.Cursor], true
}

func (m *Model) ensureListState() {
	if !m.List.Grouping.IsValid() {
		m.List.Grouping = grid.GroupByUrgency
	}
	if m.List.Cursor < 0 {
		m.List.Cursor = 0
	}
	if visible := len(m.listItems()); m.List.Cursor >= visible && visible > 0 {
		m.List.Cursor = visible - 1
	}
}
