package vault

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/vkarthik/canvault/internal/model"
)

var ErrNoMarkerSegment = errors.New("vault: item path has no marker segment")

// CompleteResult reports where the completed note ended up so the caller can
// drop the corresponding row.
type CompleteResult struct {
	OldPath string
	NewPath string
}

// Complete transitions a due item to done: the Status/<marker> tag line is
// removed, the status field is rewritten to Done, the modified content is
// persisted, and the file is moved from the marker folder to the done
// folder. The rewrite is textual and line-anchored, not a structured front
// matter round-trip, so untouched lines survive byte for byte.
//
// There is no rollback: if the move fails after the content write, the note
// stays updated in place and the move error propagates.
func Complete(store Store, item model.DueItem, marker, done string) (CompleteResult, error) {
	f := File{Path: item.Path}
	content, err := store.Read(f)
	if err != nil {
		return CompleteResult{}, err
	}

	updated := RewriteStatusDone(content, marker, done)
	if err := store.Modify(f, updated); err != nil {
		return CompleteResult{}, err
	}

	newPath, ok := replaceSegment(item.Path, marker, done)
	if !ok {
		return CompleteResult{}, fmt.Errorf("%w: %s", ErrNoMarkerSegment, item.Path)
	}
	if err := store.CreateFolder(path.Dir(newPath)); err != nil {
		return CompleteResult{}, err
	}
	if err := store.Move(f, newPath); err != nil {
		return CompleteResult{}, err
	}
	return CompleteResult{OldPath: item.Path, NewPath: newPath}, nil
}

// RewriteStatusDone performs the two line-anchored edits of the completion
// transition on raw note content.
func RewriteStatusDone(content, marker, done string) string {
	statusTag := "Status/" + marker
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "- "+statusTag || trimmed == statusTag {
			continue
		}
		if strings.TrimSpace(line) == "status: "+marker {
			indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
			out = append(out, indent+"status: "+done)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// replaceSegment swaps the first whole path segment equal to from with to.
func replaceSegment(p, from, to string) (string, bool) {
	segments := strings.Split(p, "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == from {
			segments[i] = to
			return strings.Join(segments, "/"), true
		}
	}
	return p, false
}
