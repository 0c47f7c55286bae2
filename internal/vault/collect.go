package vault

import (
	"strings"

	"github.com/vkarthik/canvault/internal/model"
)

const noteExtension = ".md"

// Collect materializes the outstanding due items from the vault. A file
// qualifies when its path starts with basePrefix, contains a path segment
// equal to marker, and carries the note extension. Output order is not
// specified; callers sort and group for presentation.
//
// Collection is read-only and total: files whose metadata is missing or
// malformed become items without a due date.
func Collect(store Store, meta MetaSource, basePrefix, marker string) ([]model.DueItem, error) {
	files, err := store.ListAll()
	if err != nil {
		return nil, err
	}

	out := make([]model.DueItem, 0, len(files))
	for _, f := range files {
		if !Selects(f.Path, basePrefix, marker) {
			continue
		}
		fm, metaErr := meta.FrontMatterOf(f)
		if metaErr != nil {
			fm = nil
		}
		item, itemErr := model.NewDueItem(f.Path, marker, fm.DueTime())
		if itemErr != nil {
			continue
		}
		if fm != nil {
			item.CanvasID = fm.CanvasID
		}
		out = append(out, item)
	}
	return out, nil
}

// Selects reports whether a vault path is a candidate due-item note.
func Selects(path, basePrefix, marker string) bool {
	if basePrefix != "" && !strings.HasPrefix(path, basePrefix) {
		return false
	}
	if !strings.HasSuffix(path, noteExtension) {
		return false
	}
	return hasSegment(path, marker)
}

// hasSegment reports whether path contains dir as a whole segment bounded by
// separators, excluding the final (file name) segment.
func hasSegment(path, dir string) bool {
	segments := strings.Split(path, "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == dir {
			return true
		}
	}
	return false
}
