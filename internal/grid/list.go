package grid

import (
	"sort"
	"strings"
	"time"

	"github.com/vkarthik/canvault/internal/model"
)

// Grouping selects how the list view arranges items. It is a view-local
// presentation toggle; the underlying collection is never reordered.
type Grouping string

const (
	GroupByUrgency Grouping = "urgency"
	GroupBySubject Grouping = "subject"
	GroupByName    Grouping = "name"
)

func (g Grouping) IsValid() bool {
	switch g {
	case GroupByUrgency, GroupBySubject, GroupByName:
		return true
	default:
		return false
	}
}

// Next cycles through the grouping modes in toggle order.
func (g Grouping) Next() Grouping {
	switch g {
	case GroupByUrgency:
		return GroupBySubject
	case GroupBySubject:
		return GroupByName
	default:
		return GroupByUrgency
	}
}

// Section is one titled block of the list view.
type Section struct {
	Title  string
	Bucket model.Bucket
	Items  []model.DueItem
}

// BuildSections arranges collected items for the list view. Urgency grouping
// sorts by due date ascending (due-less last, stable), buckets the result,
// and emits sections in the fixed bucket order, omitting empty ones. Subject
// and name groupings flatten to a single alphabetical section.
func BuildSections(items []model.DueItem, grouping Grouping, today time.Time) []Section {
	switch grouping {
	case GroupBySubject:
		return []Section{flatSection("By Subject", items, func(a, b model.DueItem) bool {
			if a.Subject != b.Subject {
				return lessFold(a.Subject, b.Subject)
			}
			return lessFold(a.DisplayName, b.DisplayName)
		})}
	case GroupByName:
		return []Section{flatSection("By Name", items, func(a, b model.DueItem) bool {
			return lessFold(a.DisplayName, b.DisplayName)
		})}
	default:
		return urgencySections(items, today)
	}
}

func urgencySections(items []model.DueItem, today time.Time) []Section {
	sorted := SortByDue(items)
	byBucket := make(map[model.Bucket][]model.DueItem)
	for _, item := range sorted {
		bucket := model.Classify(item.DueDate, today)
		byBucket[bucket] = append(byBucket[bucket], item)
	}

	out := make([]Section, 0, len(model.BucketOrder))
	for _, bucket := range model.BucketOrder {
		grouped := byBucket[bucket]
		if len(grouped) == 0 {
			continue
		}
		out = append(out, Section{
			Title:  bucket.Heading(),
			Bucket: bucket,
			Items:  grouped,
		})
	}
	return out
}

func flatSection(title string, items []model.DueItem, less func(a, b model.DueItem) bool) Section {
	sorted := make([]model.DueItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return Section{Title: title, Items: sorted}
}

func lessFold(a, b string) bool {
	return strings.ToLower(a) < strings.ToLower(b)
}
