package index

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	timestampLayout = time.RFC3339Nano
	dueLayout       = "2006-01-02"
	lastSeenKey     = "notify_last_seen"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) (*SQLiteRepository, error) {
	if db == nil {
		return nil, errors.New("index: nil db")
	}
	return &SQLiteRepository{db: db}, nil
}

// Open opens (or creates) the index database at path and applies migrations.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("index: open sqlite: %w", err)
	}
	if err := MigrateUp(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	repo, err := NewSQLiteRepository(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) UpsertNote(ctx context.Context, in Note) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notes (path, due, canvas_id, status, indexed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			due = excluded.due,
			canvas_id = excluded.canvas_id,
			status = excluded.status,
			indexed_at = excluded.indexed_at`,
		in.Path, nullDue(in.Due), in.CanvasID, in.Status, mustTime(in.IndexedAt),
	)
	return err
}

func (r *SQLiteRepository) GetNote(ctx context.Context, path string) (Note, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT path, due, canvas_id, status, indexed_at
		FROM notes WHERE path = ?`, path)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return note, nil
}

func (r *SQLiteRepository) DeleteNote(ctx context.Context, path string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE path = ?`, path)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

func (r *SQLiteRepository) ListNotes(ctx context.Context, filter NoteFilter) ([]Note, error) {
	query := `SELECT path, due, canvas_id, status, indexed_at FROM notes`
	args := make([]any, 0, 3)
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, filter.Status)
	}
	query += ` ORDER BY path`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += ` OFFSET ?`
			args = append(args, filter.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Note, 0)
	for rows.Next() {
		note, scanErr := scanNote(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		out = append(out, note)
	}
	return out, rows.Err()
}

func (r *SQLiteRepository) FindByCanvasID(ctx context.Context, canvasID string) (Note, error) {
	if canvasID == "" {
		return Note{}, ErrNotFound
	}
	row := r.db.QueryRowContext(ctx, `
		SELECT path, due, canvas_id, status, indexed_at
		FROM notes WHERE canvas_id = ? LIMIT 1`, canvasID)
	note, err := scanNote(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return note, nil
}

// ReplaceNotes swaps the whole note table for a fresh vault scan in one
// transaction, so readers never observe a half-built index.
func (r *SQLiteRepository) ReplaceNotes(ctx context.Context, notes []Note) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return err
	}
	for _, in := range notes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notes (path, due, canvas_id, status, indexed_at)
			VALUES (?, ?, ?, ?, ?)`,
			in.Path, nullDue(in.Due), in.CanvasID, in.Status, mustTime(in.IndexedAt),
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepository) MarkSent(ctx context.Context, key string, sentOn string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO notify_sent (key, sent_on) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET sent_on = excluded.sent_on`,
		key, sentOn,
	)
	return err
}

func (r *SQLiteRepository) WasSent(ctx context.Context, key string) (bool, error) {
	var found string
	err := r.db.QueryRowContext(ctx, `SELECT key FROM notify_sent WHERE key = ?`, key).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *SQLiteRepository) ClearSent(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notify_sent`)
	return err
}

func (r *SQLiteRepository) LastSeen(ctx context.Context) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, lastSeenKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *SQLiteRepository) SetLastSeen(ctx context.Context, date string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO meta (k, v) VALUES (?, ?)
		ON CONFLICT(k) DO UPDATE SET v = excluded.v`,
		lastSeenKey, date,
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanNote(s scanner) (Note, error) {
	var out Note
	var due sql.NullString
	var indexed string
	if err := s.Scan(&out.Path, &due, &out.CanvasID, &out.Status, &indexed); err != nil {
		return Note{}, err
	}
	if due.Valid && due.String != "" {
		parsed, err := time.ParseInLocation(dueLayout, due.String, time.Local)
		if err != nil {
			return Note{}, fmt.Errorf("index: bad due %q: %w", due.String, err)
		}
		out.Due = &parsed
	}
	indexedAt, err := time.Parse(timestampLayout, indexed)
	if err != nil {
		return Note{}, fmt.Errorf("index: bad indexed_at %q: %w", indexed, err)
	}
	out.IndexedAt = indexedAt
	return out, nil
}

func nullDue(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(dueLayout)
}

func mustTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
