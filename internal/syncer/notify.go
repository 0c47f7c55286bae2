package syncer

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/vkarthik/canvault/internal/model"
)

// SentState is the caller-owned record of already-sent notification keys.
// It resets daily: when the stored last-seen date differs from today the
// whole set is cleared before the check runs. index.Repository satisfies it.
type SentState interface {
	WasSent(ctx context.Context, key string) (bool, error)
	MarkSent(ctx context.Context, key string, sentOn string) error
	ClearSent(ctx context.Context) error
	LastSeen(ctx context.Context) (string, error)
	SetLastSeen(ctx context.Context, date string) error
}

// Notifier delivers a desktop notification.
type Notifier interface {
	Send(title, body string) error
}

type NoopNotifier struct{}

func (NoopNotifier) Send(string, string) error { return nil }

// ExecNotifier shells out to the platform notification command.
type ExecNotifier struct{}

func (ExecNotifier) Send(title, body string) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", title, body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(body), escapeAppleScript(title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

func escapeAppleScript(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '"' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}

// NotifyCheck sends one notification per item coming due within withinDays
// days of now (today included). Keys already in state are skipped, so the
// check is safe to run on every sync tick.
func NotifyCheck(ctx context.Context, items []model.DueItem, state SentState, notifier Notifier, now time.Time, withinDays int) ([]string, error) {
	today := model.CivilDate(now).Format(model.DateKeyLayout)

	lastSeen, err := state.LastSeen(ctx)
	if err != nil {
		return nil, err
	}
	if lastSeen != today {
		if err := state.ClearSent(ctx); err != nil {
			return nil, err
		}
		if err := state.SetLastSeen(ctx, today); err != nil {
			return nil, err
		}
	}

	var sent []string
	for _, item := range items {
		if !item.HasDue() {
			continue
		}
		days := model.DaysBetween(now, *item.DueDate)
		if days < 0 || days > withinDays {
			continue
		}
		key := item.Path + "|" + item.DateKey()
		already, err := state.WasSent(ctx, key)
		if err != nil {
			return sent, err
		}
		if already {
			continue
		}
		title := "Assignment due"
		if days == 0 {
			title = "Assignment due today"
		}
		body := fmt.Sprintf("%s (%s) due %s", item.DisplayName, item.Subject, item.DueLabel())
		if err := notifier.Send(title, body); err != nil {
			return sent, err
		}
		if err := state.MarkSent(ctx, key, today); err != nil {
			return sent, err
		}
		sent = append(sent, key)
	}
	return sent, nil
}
