// Package grid computes pure layout structures for the calendar and list
// views: cells, rows, and sections as plain data. Rendering them is a
// separate, mechanical pass in internal/views.
package grid

import (
	"sort"

	"github.com/vkarthik/canvault/internal/model"
)

// Index maps a YYYY-MM-DD date key to the items due that day. It is built
// once per render from the full item collection and read-only afterwards.
type Index map[string][]model.DueItem

// BuildIndex groups items by due-date key. Items without a due date are not
// indexed; the list view is the only surface that shows them.
func BuildIndex(items []model.DueItem) Index {
	out := make(Index)
	for _, item := range items {
		key := item.DateKey()
		if key == "" {
			continue
		}
		out[key] = append(out[key], item)
	}
	for key := range out {
		day := out[key]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].DisplayName < day[j].DisplayName
		})
	}
	return out
}

// SortByDue orders items by due date ascending with due-less items last,
// preserving relative order among equal dates and among due-less items.
func SortByDue(items []model.DueItem) []model.DueItem {
	out := make([]model.DueItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].DueDate, out[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
	return out
}
