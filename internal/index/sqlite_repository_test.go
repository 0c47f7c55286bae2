package index

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "canvault-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func localDay(t *testing.T, key string) *time.Time {
	t.Helper()
	out, err := time.ParseInLocation("2006-01-02", key, time.Local)
	if err != nil {
		t.Fatalf("parse day: %v", err)
	}
	return &out
}

func TestNoteUpsertGetList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Date(2026, 2, 12, 9, 0, 0, 0, time.UTC)

	note := Note{
		Path:      "School/Math/Todo/HW 3.md",
		Due:       localDay(t, "2026-02-12"),
		CanvasID:  "12345",
		Status:    "Todo",
		IndexedAt: now,
	}
	if err := repo.UpsertNote(ctx, note); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.GetNote(ctx, note.Path)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.CanvasID != "12345" || got.Due == nil || got.Due.Format("2006-01-02") != "2026-02-12" {
		t.Fatalf("unexpected note: %+v", got)
	}

	note.Status = "Done"
	note.Due = nil
	if err := repo.UpsertNote(ctx, note); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, err = repo.GetNote(ctx, note.Path)
	if err != nil {
		t.Fatalf("get after upsert: %v", err)
	}
	if got.Status != "Done" || got.Due != nil {
		t.Fatalf("upsert did not replace fields: %+v", got)
	}

	todos, err := repo.ListNotes(ctx, NoteFilter{Status: "Todo"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("no Todo notes expected, got %d", len(todos))
	}
}

func TestFindByCanvasID(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.UpsertNote(ctx, Note{Path: "School/Math/Todo/A.md", CanvasID: "77", Status: "Todo", IndexedAt: now}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	got, err := repo.FindByCanvasID(ctx, "77")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Path != "School/Math/Todo/A.md" {
		t.Fatalf("unexpected path: %q", got.Path)
	}

	if _, err := repo.FindByCanvasID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// Empty canvas ids never match anything, even though unindexed notes
	// store an empty string.
	if _, err := repo.FindByCanvasID(ctx, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty id must be ErrNotFound, got %v", err)
	}
}

func TestReplaceNotes(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	now := time.Now()

	if err := repo.UpsertNote(ctx, Note{Path: "stale.md", Status: "Todo", IndexedAt: now}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	fresh := []Note{
		{Path: "School/Math/Todo/A.md", Status: "Todo", IndexedAt: now},
		{Path: "School/Math/Todo/B.md", Status: "Todo", IndexedAt: now},
	}
	if err := repo.ReplaceNotes(ctx, fresh); err != nil {
		t.Fatalf("replace: %v", err)
	}

	all, err := repo.ListNotes(ctx, NoteFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("replace should drop stale rows, got %d", len(all))
	}
	if _, err := repo.GetNote(ctx, "stale.md"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("stale note should be gone, got %v", err)
	}
}

func TestNotifyStateRoundTrip(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	sent, err := repo.WasSent(ctx, "12345:2026-02-12")
	if err != nil || sent {
		t.Fatalf("fresh key should be unsent: %v %v", sent, err)
	}
	if err := repo.MarkSent(ctx, "12345:2026-02-12", "2026-02-12"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	sent, err = repo.WasSent(ctx, "12345:2026-02-12")
	if err != nil || !sent {
		t.Fatalf("key should be sent: %v %v", sent, err)
	}

	if err := repo.SetLastSeen(ctx, "2026-02-12"); err != nil {
		t.Fatalf("set last seen: %v", err)
	}
	day, err := repo.LastSeen(ctx)
	if err != nil || day != "2026-02-12" {
		t.Fatalf("last seen = %q, %v", day, err)
	}

	if err := repo.ClearSent(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	sent, _ = repo.WasSent(ctx, "12345:2026-02-12")
	if sent {
		t.Fatalf("clear should empty the sent set")
	}
}

func TestMigrateRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up: %v", err)
	}
	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	if err := repo.UpsertNote(t.Context(), Note{Path: "rt.md", Status: "Todo", IndexedAt: time.Now()}); err != nil {
		t.Fatalf("insert after roundtrip: %v", err)
	}
}
