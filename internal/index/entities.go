package index

import "time"

// Note is the indexed front matter of one vault file. Due is the civil due
// date when present; nil mirrors a note without one.
type Note struct {
	Path      string
	Due       *time.Time
	CanvasID  string
	Status    string
	IndexedAt time.Time
}

// NoteFilter narrows ListNotes. Zero values mean "no constraint".
type NoteFilter struct {
	Status string
	Limit  int
	Offset int
}
