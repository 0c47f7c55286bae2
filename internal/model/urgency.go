package model

import "time"

// Bucket is the coarse urgency classification of a due date relative to
// today. The zero-ish value for items without a due date is BucketNone.
type Bucket string

const (
	BucketOverdue  Bucket = "Overdue"
	BucketToday    Bucket = "Today"
	BucketTomorrow Bucket = "Tomorrow"
	BucketWeek     Bucket = "Week"
	BucketLater    Bucket = "Later"
	BucketNone     Bucket = "None"
)

// BucketOrder is the fixed presentation order for grouped views.
var BucketOrder = []Bucket{
	BucketOverdue,
	BucketToday,
	BucketTomorrow,
	BucketWeek,
	BucketLater,
	BucketNone,
}

func (b Bucket) IsValid() bool {
	switch b {
	case BucketOverdue, BucketToday, BucketTomorrow, BucketWeek, BucketLater, BucketNone:
		return true
	default:
		return false
	}
}

// Rank returns the bucket's position in the presentation order. Unknown
// buckets sort after everything.
func (b Bucket) Rank() int {
	for i, candidate := range BucketOrder {
		if candidate == b {
			return i
		}
	}
	return len(BucketOrder)
}

// Heading is the section title used by the list view.
func (b Bucket) Heading() string {
	switch b {
	case BucketOverdue:
		return "Overdue"
	case BucketToday:
		return "Due Today"
	case BucketTomorrow:
		return "Due Tomorrow"
	case BucketWeek:
		return "Due This Week"
	case BucketLater:
		return "Later"
	default:
		return "No Due Date"
	}
}

// Classify maps a due date to its urgency bucket relative to today. Both
// inputs are truncated to their civil dates; only whole-day differences
// matter. A nil due date is always BucketNone.
func Classify(due *time.Time, today time.Time) Bucket {
	if due == nil {
		return BucketNone
	}
	switch days := DaysBetween(today, *due); {
	case days < 0:
		return BucketOverdue
	case days == 0:
		return BucketToday
	case days == 1:
		return BucketTomorrow
	case days <= 7:
		return BucketWeek
	default:
		return BucketLater
	}
}

// DaysBetween counts whole calendar days from a to b, ignoring time of day
// and DST shifts by comparing civil dates in UTC.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}
