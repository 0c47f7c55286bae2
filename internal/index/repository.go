package index

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("index: not found")

// Repository is the metadata index consumed by the collector and the
// notification check. Notes mirror vault front matter; the sent-key set
// backs the due-soon notification pass with its daily reset.
type Repository interface {
	UpsertNote(ctx context.Context, in Note) error
	GetNote(ctx context.Context, path string) (Note, error)
	DeleteNote(ctx context.Context, path string) error
	ListNotes(ctx context.Context, filter NoteFilter) ([]Note, error)
	FindByCanvasID(ctx context.Context, canvasID string) (Note, error)
	ReplaceNotes(ctx context.Context, notes []Note) error

	MarkSent(ctx context.Context, key string, sentOn string) error
	WasSent(ctx context.Context, key string) (bool, error)
	ClearSent(ctx context.Context) error
	LastSeen(ctx context.Context) (string, error)
	SetLastSeen(ctx context.Context, date string) error
}
