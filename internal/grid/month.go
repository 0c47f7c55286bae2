package grid

import (
	"time"

	"github.com/vkarthik/canvault/internal/model"
)

// MonthCell is one day slot in the month grid. Fill cells borrowed from the
// neighboring months carry InMonth=false. Overflow counts items beyond the
// per-cell cap; those items are deferred from inline display, not lost.
type MonthCell struct {
	Date     time.Time
	InMonth  bool
	IsToday  bool
	Items    []model.DueItem
	Overflow int
}

// MonthGrid is the complete 7-column month layout plus its header label.
type MonthGrid struct {
	Label    string
	Weekdays [7]string
	Rows     [][7]MonthCell
}

// BuildMonth lays out the calendar month containing anchor. Leading days are
// borrowed from the previous month and trailing days from the next so every
// row holds exactly seven cells. maxPerCell caps inline items per cell; zero
// or negative means unlimited.
func BuildMonth(anchor, today time.Time, index Index, maxPerCell int) MonthGrid {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday()) // Sunday == 0
	rows := (offset + daysInMonth + 6) / 7

	out := MonthGrid{
		Label:    first.Format("January 2006"),
		Weekdays: weekdayHeader(),
		Rows:     make([][7]MonthCell, rows),
	}

	start := first.AddDate(0, 0, -offset)
	todayKey := model.CivilDate(today).Format(model.DateKeyLayout)
	for row := 0; row < rows; row++ {
		for col := 0; col < 7; col++ {
			day := start.AddDate(0, 0, row*7+col)
			key := day.Format(model.DateKeyLayout)
			cell := MonthCell{
				Date:    day,
				InMonth: day.Month() == first.Month(),
				IsToday: key == todayKey,
			}
			cell.Items, cell.Overflow = capItems(index[key], maxPerCell)
			out.Rows[row][col] = cell
		}
	}
	return out
}

func capItems(items []model.DueItem, max int) ([]model.DueItem, int) {
	if max <= 0 || len(items) <= max {
		return items, 0
	}
	return items[:max], len(items) - max
}

func weekdayHeader() [7]string {
	var out [7]string
	for i := 0; i < 7; i++ {
		out[i] = time.Weekday(i).String()[:3]
	}
	return out
}
