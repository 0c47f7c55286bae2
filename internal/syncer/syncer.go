// Package syncer pulls assignments from the LMS into the vault and runs the
// due-soon notification pass. Course failures are isolated: one course's
// transport error never aborts the others.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"time"

	"github.com/vkarthik/canvault/internal/canvas"
	"github.com/vkarthik/canvault/internal/config"
	"github.com/vkarthik/canvault/internal/index"
	"github.com/vkarthik/canvault/internal/vault"
)

// AssignmentSource is the remote API capability, satisfied by
// *canvas.Client and faked in tests.
type AssignmentSource interface {
	ActiveCourses(ctx context.Context) ([]canvas.Course, error)
	Assignments(ctx context.Context, courseID int64) ([]canvas.Assignment, error)
}

// NoteWriter creates new notes; satisfied by *vault.DirStore.
type NoteWriter interface {
	vault.Store
	WriteNew(path, content string) error
}

// CourseResult reports one course's sync outcome. Err is non-nil when the
// course failed; Added counts freshly created notes.
type CourseResult struct {
	CourseID string
	Subject  string
	Added    int
	Skipped  int
	Err      error
}

type Syncer struct {
	Source AssignmentSource
	Store  NoteWriter
	Index  index.Repository
	Config config.Config
}

// SyncAll syncs every configured course mapping. Configuration errors abort
// before any network call; transport errors land in the per-course results.
func (s *Syncer) SyncAll(ctx context.Context) ([]CourseResult, error) {
	if err := s.Config.ValidateSync(); err != nil {
		return nil, err
	}

	out := make([]CourseResult, 0, len(s.Config.Courses))
	for courseID, subject := range s.Config.Courses {
		result := s.syncCourse(ctx, courseID, subject)
		out = append(out, result)
	}
	return out, nil
}

func (s *Syncer) syncCourse(ctx context.Context, courseID, subject string) CourseResult {
	result := CourseResult{CourseID: courseID, Subject: subject}

	id, err := strconv.ParseInt(courseID, 10, 64)
	if err != nil {
		result.Err = fmt.Errorf("syncer: bad course id %q: %w", courseID, err)
		return result
	}

	assignments, err := s.Source.Assignments(ctx, id)
	if err != nil {
		result.Err = err
		return result
	}

	for _, a := range assignments {
		added, err := s.importAssignment(ctx, a, subject)
		if err != nil {
			result.Err = err
			return result
		}
		if added {
			result.Added++
		} else {
			result.Skipped++
		}
	}
	return result
}

// importAssignment writes the note for one assignment unless it is
// unpublished or already known (by canvas id or path collision).
func (s *Syncer) importAssignment(ctx context.Context, a canvas.Assignment, subject string) (bool, error) {
	if !a.Published {
		return false, nil
	}
	canvasID := strconv.FormatInt(a.ID, 10)
	if _, err := s.Index.FindByCanvasID(ctx, canvasID); err == nil {
		return false, nil
	} else if !errors.Is(err, index.ErrNotFound) {
		return false, err
	}

	notePath := path.Join(
		s.Config.BasePath,
		subject,
		s.Config.MarkerFolder,
		vault.SanitizeName(a.Name)+".md",
	)
	due := civilDue(a.DueAt)
	content := vault.RenderNote(vault.NoteFields{
		Name:        a.Name,
		Due:         due,
		CanvasID:    canvasID,
		URL:         a.HTMLURL,
		Points:      a.PointsPossible,
		Description: a.Description,
		Course:      subject,
	}, s.Config.MarkerFolder)

	if err := s.Store.WriteNew(notePath, content); err != nil {
		// A colliding note that never got a canvas id: leave it alone.
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, err
	}

	err := s.Index.UpsertNote(ctx, index.Note{
		Path:      notePath,
		Due:       due,
		CanvasID:  canvasID,
		Status:    s.Config.MarkerFolder,
		IndexedAt: time.Now(),
	})
	return true, err
}

// Reindex rebuilds the metadata index from a full vault scan.
func (s *Syncer) Reindex(ctx context.Context) error {
	files, err := s.Store.ListAll()
	if err != nil {
		return err
	}
	meta := vault.StoreMeta{Store: s.Store}
	now := time.Now()

	notes := make([]index.Note, 0, len(files))
	for _, f := range files {
		if !vault.Selects(f.Path, s.Config.BasePath, s.Config.MarkerFolder) {
			continue
		}
		fm, metaErr := meta.FrontMatterOf(f)
		if metaErr != nil {
			fm = nil
		}
		note := index.Note{Path: f.Path, Due: fm.DueTime(), IndexedAt: now}
		if fm != nil {
			note.CanvasID = fm.CanvasID
			note.Status = fm.Status
		}
		notes = append(notes, note)
	}
	return s.Index.ReplaceNotes(ctx, notes)
}

func civilDue(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	local := t.In(time.Local)
	y, m, d := local.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return &day
}
