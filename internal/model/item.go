package model

import (
	"errors"
	"path"
	"strings"
	"time"
)

var ErrEmptyPath = errors.New("model: item path is required")

// DueItem is one outstanding assignment note in the vault. Path is the
// vault-relative identity of the backing file; DisplayName and Subject are
// snapshots derived from that path at creation time. If the backing file is
// renamed or moved the item must be rebuilt, not patched.
type DueItem struct {
	Path        string
	DisplayName string
	Subject     string
	DueDate     *time.Time
	CanvasID    string
}

const UnknownSubject = "Unknown"

// NewDueItem derives an item from a vault-relative path. The marker folder
// (typically "Todo") both qualifies the file and locates the subject: the
// path segment immediately before the marker. Paths without the marker get
// subject "Unknown".
func NewDueItem(filePath, marker string, due *time.Time) (DueItem, error) {
	trimmed := strings.TrimSpace(filePath)
	if trimmed == "" {
		return DueItem{}, ErrEmptyPath
	}
	base := path.Base(trimmed)
	name := strings.TrimSuffix(base, path.Ext(base))
	return DueItem{
		Path:        trimmed,
		DisplayName: name,
		Subject:     SubjectOf(trimmed, marker),
		DueDate:     normalizeDue(due),
	}, nil
}

// SubjectOf returns the path segment immediately preceding the first marker
// segment, or "Unknown" when the marker is absent or leads the path.
func SubjectOf(filePath, marker string) string {
	segments := strings.Split(filePath, "/")
	for i, seg := range segments {
		if seg == marker {
			if i == 0 {
				return UnknownSubject
			}
			return segments[i-1]
		}
	}
	return UnknownSubject
}

// HasDue reports whether the item carries a due date. Absence is a valid,
// permanent state, not an error.
func (d DueItem) HasDue() bool {
	return d.DueDate != nil
}

// DateKey formats the due date as YYYY-MM-DD for calendar index lookups.
// Items without a due date have no key.
func (d DueItem) DateKey() string {
	if d.DueDate == nil {
		return ""
	}
	return d.DueDate.Format(DateKeyLayout)
}

// DueLabel is the human-readable due date, e.g. "Feb 12, 2026".
func (d DueItem) DueLabel() string {
	if d.DueDate == nil {
		return ""
	}
	return d.DueDate.Format("Jan 2, 2006")
}

func (d DueItem) Validate() error {
	if strings.TrimSpace(d.Path) == "" {
		return ErrEmptyPath
	}
	if strings.TrimSpace(d.DisplayName) == "" {
		return errors.New("model: item display name is required")
	}
	if strings.TrimSpace(d.Subject) == "" {
		return errors.New("model: item subject is required")
	}
	return nil
}

// DateKeyLayout is the calendar index key format.
const DateKeyLayout = "2006-01-02"

// normalizeDue truncates a due timestamp to its civil date; time-of-day never
// participates in urgency or grouping.
func normalizeDue(due *time.Time) *time.Time {
	if due == nil {
		return nil
	}
	day := CivilDate(*due)
	return &day
}

// CivilDate truncates t to midnight in its own location.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
