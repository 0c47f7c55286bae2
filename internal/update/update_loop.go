package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkarthik/canvault/internal/model"
	"github.com/vkarthik/canvault/internal/syncer"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadItemsCmd(m.deps)}
	if tick := syncTickCmd(m.deps); tick != nil {
		cmds = append(cmds, tick)
	}
	if m.deps.SyncOnStart && m.deps.Syncer != nil {
		cmds = append(cmds, syncCmd(m.deps))
	}
	if m.deps.Alerts != nil {
		cmds = append(cmds, waitForAlertCmd(m.deps.Alerts.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		m.ensureListState()
		m.ensureCalendarState()

		keyStr := typed.String()

		if m.previewActive {
			switch keyStr {
			case "esc", "q", "v":
				m.previewActive = false
				return m, nil
			default:
				var cmd tea.Cmd
				m.preview, cmd = m.preview.Update(typed)
				return m, cmd
			}
		}

		switch keyStr {
		case m.Keys.List:
			m.CurrentView = ViewList
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			if m.HelpVisible {
				m.Status = StatusBar{Text: "help shown"}
			} else {
				m.Status = StatusBar{Text: "help hidden"}
			}
			return m, nil
		case m.Keys.Sync:
			if !m.spinnerActive {
				m.spinnerActive = true
				m.Status = StatusBar{Text: "sync started"}
				return m, tea.Batch(m.syncSpinner.Tick, syncCmd(m.deps))
			}
			return m, nil
		case "r":
			m.Status = StatusBar{Text: "reloading notes"}
			return m, loadItemsCmd(m.deps)
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		if m.CurrentView == ViewCalendar {
			return m.handleCalendarKey(typed)
		}
		return m.handleListKey(typed)

	case tea.WindowSizeMsg:
		m.preview.Width = typed.Width - 4
		m.preview.Height = typed.Height - 6
		return m, nil

	case spinner.TickMsg:
		if m.spinnerActive {
			var cmd tea.Cmd
			m.syncSpinner, cmd = m.syncSpinner.Update(typed)
			return m, cmd
		}
		return m, nil

	case syncTickMsg:
		cmds := []tea.Cmd{}
		if tick := syncTickCmd(m.deps); tick != nil {
			cmds = append(cmds, tick)
		}
		if !m.spinnerActive && m.deps.Syncer != nil {
			m.spinnerActive = true
			m.Status = StatusBar{Text: "background sync started"}
			cmds = append(cmds, m.syncSpinner.Tick, syncCmd(m.deps))
		}
		return m, tea.Batch(cmds...)

	case ItemsLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Items = typed.Items
		m.ensureListState()
		m.ensureCalendarState()
		rearmAlerts(m.deps, m.Items)
		m.Status = StatusBar{Text: fmt.Sprintf("%d assignments loaded", len(typed.Items))}
		return m, clearStatusCmd()

	case SyncDoneMsg:
		m.spinnerActive = false
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: "sync failed: " + typed.Err.Error(), IsError: true}
			return m, loadItemsCmd(m.deps)
		}
		m.Status = StatusBar{Text: summarizeSync(typed.Results)}
		return m, loadItemsCmd(m.deps)

	case ItemCompletedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: "complete failed: " + typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.Items = removeItemByPath(m.Items, typed.Path)
		m.ensureListState()
		m.ensureCalendarState()
		rearmAlerts(m.deps, m.Items)
		m.Status = StatusBar{Text: "completed: moved to " + typed.Result.NewPath}
		return m, clearStatusCmd()

	case PreviewLoadedMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			return m, nil
		}
		m.previewActive = true
		m.previewTitle = typed.Title
		m.preview.SetContent(renderPreview(typed.Body))
		m.preview.GotoTop()
		return m, nil

	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, clearStatusCmd()

	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil

	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil

	case DueAlertMsg:
		text := fmt.Sprintf("due now: %s (%s)", typed.Alert.DisplayName, typed.Alert.Subject)
		m.Status = StatusBar{Text: text}
		cmds := []tea.Cmd{notifyCmd(m.deps, "Assignment due", text)}
		if m.deps.Alerts != nil {
			cmds = append(cmds, waitForAlertCmd(m.deps.Alerts.C()))
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func summarizeSync(results []syncer.CourseResult) string {
	added, failed := 0, 0
	for _, r := range results {
		added += r.Added
		if r.Err != nil {
			failed++
		}
	}
	parts := []string{fmt.Sprintf("sync complete: %d new", added)}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d course(s) failed", failed))
	}
	return strings.Join(parts, ", ")
}

func removeItemByPath(items []model.DueItem, path string) []model.DueItem {
	out := items[:0]
	for _, it := range items {
		if it.Path != path {
			out = append(out, it)
		}
	}
	return out
}
