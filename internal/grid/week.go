package grid

import (
	"time"

	"github.com/vkarthik/canvault/internal/model"
)

// WeekCell is one day in the single-row week grid. Week items render with
// full, untruncated names, so there is no overflow cap here.
type WeekCell struct {
	Date    time.Time
	IsToday bool
	Items   []model.DueItem
}

type WeekGrid struct {
	Label    string
	Weekdays [7]string
	Cells    [7]WeekCell
}

// BuildWeek lays out the Sunday-start week containing anchor.
func BuildWeek(anchor, today time.Time, index Index) WeekGrid {
	day := model.CivilDate(anchor)
	sunday := day.AddDate(0, 0, -int(day.Weekday()))
	todayKey := model.CivilDate(today).Format(model.DateKeyLayout)

	out := WeekGrid{Weekdays: weekdayHeader()}
	for i := 0; i < 7; i++ {
		d := sunday.AddDate(0, 0, i)
		key := d.Format(model.DateKeyLayout)
		out.Cells[i] = WeekCell{
			Date:    d,
			IsToday: key == todayKey,
			Items:   index[key],
		}
	}
	out.Label = rangeLabel(sunday, sunday.AddDate(0, 0, 6))
	return out
}

func rangeLabel(from, to time.Time) string {
	if from.Month() == to.Month() {
		return from.Format("Jan 2") + " – " + to.Format("2, 2006")
	}
	return from.Format("Jan 2") + " – " + to.Format("Jan 2, 2006")
}

// DayList is the day view: every item due exactly on the anchor date.
type DayList struct {
	Label string
	Date  time.Time
	Items []model.DueItem
	Empty bool
}

// BuildDay collects the items due on anchor's date. Empty is an explicit
// state so the view can render its no-assignments message.
func BuildDay(anchor time.Time, index Index) DayList {
	day := model.CivilDate(anchor)
	items := index[day.Format(model.DateKeyLayout)]
	return DayList{
		Label: day.Format("Monday, January 2, 2006"),
		Date:  day,
		Items: items,
		Empty: len(items) == 0,
	}
}
