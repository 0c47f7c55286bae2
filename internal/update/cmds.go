package update

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vkarthik/canvault/internal/alerts"
	"github.com/vkarthik/canvault/internal/model"
	"github.com/vkarthik/canvault/internal/syncer"
	"github.com/vkarthik/canvault/internal/vault"
)

var errNoSyncer = errors.New("update: sync is not configured")

// loadItemsCmd walks the vault and collects every assignment note under
// the configured marker folder.
func loadItemsCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		items, err := vault.Collect(deps.Store, deps.Meta, deps.Cfg.BasePath, deps.Cfg.MarkerFolder)
		return ItemsLoadedMsg{Items: items, Err: err}
	}
}

// syncCmd runs a full remote pass: import new assignments, rebuild the
// index, then fire any pending due-date notifications.
func syncCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		if deps.Syncer == nil {
			return SyncDoneMsg{Err: errNoSyncer}
		}
		ctx := context.Background()
		results, err := deps.Syncer.SyncAll(ctx)
		if err != nil {
			return SyncDoneMsg{Results: results, Err: err}
		}
		if err := deps.Syncer.Reindex(ctx); err != nil {
			return SyncDoneMsg{Results: results, Err: err}
		}
		items, err := vault.Collect(deps.Store, deps.Meta, deps.Cfg.BasePath, deps.Cfg.MarkerFolder)
		if err != nil {
			return SyncDoneMsg{Results: results, Err: err}
		}
		_, err = notifyPending(ctx, deps, items)
		return SyncDoneMsg{Results: results, Err: err}
	}
}

func notifyPending(ctx context.Context, deps Deps, items []model.DueItem) ([]string, error) {
	if deps.Syncer == nil || deps.Syncer.Index == nil || deps.Cfg.NotifyDays <= 0 {
		return nil, nil
	}
	return syncer.NotifyCheck(ctx, items, deps.Syncer.Index, deps.Notifier, deps.Now(), deps.Cfg.NotifyDays)
}

func completeCmd(deps Deps, item model.DueItem) tea.Cmd {
	return func() tea.Msg {
		result, err := vault.Complete(deps.Store, item, deps.Cfg.MarkerFolder, deps.Cfg.DoneFolder)
		return ItemCompletedMsg{Path: item.Path, Result: result, Err: err}
	}
}

func openCmd(deps Deps, item model.DueItem) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Store.OpenByPath(item.Path); err != nil {
			return AppErrorMsg{Err: err}
		}
		return SetStatusMsg{Text: "opened " + item.DisplayName}
	}
}

func previewCmd(deps Deps, item model.DueItem) tea.Cmd {
	return func() tea.Msg {
		content, err := deps.Store.Read(vault.File{Path: item.Path})
		if err != nil {
			return PreviewLoadedMsg{Title: item.DisplayName, Err: err}
		}
		return PreviewLoadedMsg{Title: item.DisplayName, Body: content}
	}
}

// syncTickCmd schedules the next periodic sync. Zero or negative cadence
// disables the timer.
func syncTickCmd(deps Deps) tea.Cmd {
	if deps.Cfg.SyncMinutes <= 0 {
		return nil
	}
	interval := time.Duration(deps.Cfg.SyncMinutes) * time.Minute
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return syncTickMsg{}
	})
}

// waitForAlertCmd blocks on the alert engine channel and surfaces the
// next due-moment alert as a message.
func waitForAlertCmd(ch <-chan alerts.DueAlert) tea.Cmd {
	return func() tea.Msg {
		alert, ok := <-ch
		if !ok {
			return nil
		}
		return DueAlertMsg{Alert: alert}
	}
}

// rearmAlerts replaces the armed due-moment alerts with the current item
// set. Items without a due date carry no deadline to arm.
func rearmAlerts(deps Deps, items []model.DueItem) {
	if deps.Alerts == nil {
		return
	}
	armed := make([]alerts.DueAlert, 0, len(items))
	for _, it := range items {
		if it.DueDate == nil {
			continue
		}
		armed = append(armed, alerts.DueAlert{
			Path:        it.Path,
			DisplayName: it.DisplayName,
			Subject:     it.Subject,
			DueAt:       *it.DueDate,
		})
	}
	deps.Alerts.ReplaceAll(armed, deps.Now())
}

func notifyCmd(deps Deps, title, body string) tea.Cmd {
	return func() tea.Msg {
		if err := deps.Notifier.Send(title, body); err != nil {
			return AppErrorMsg{Err: err}
		}
		return nil
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
