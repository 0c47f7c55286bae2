package grid

import (
	"testing"
	"time"
)

func TestBuildWeekSundayStart(t *testing.T) {
	// 2026-02-12 is a Thursday; its week runs Feb 8 (Sun) through Feb 14 (Sat).
	anchor := day(2026, time.February, 12)
	g := BuildWeek(anchor, anchor, Index{})

	if g.Cells[0].Date.Weekday() != time.Sunday {
		t.Fatalf("week should start on Sunday, got %v", g.Cells[0].Date.Weekday())
	}
	if g.Cells[0].Date.Day() != 8 || g.Cells[6].Date.Day() != 14 {
		t.Fatalf("week range = %v .. %v", g.Cells[0].Date, g.Cells[6].Date)
	}
	if g.Label != "Feb 8 – 14, 2026" {
		t.Fatalf("label = %q", g.Label)
	}
	if !g.Cells[4].IsToday {
		t.Fatalf("Thursday cell should carry the today marker")
	}
}

func TestBuildWeekCrossMonthLabel(t *testing.T) {
	// 2026-03-31 is a Tuesday; its week spans March 29 to April 4.
	anchor := day(2026, time.March, 31)
	g := BuildWeek(anchor, day(2026, time.January, 1), Index{})
	if g.Label != "Mar 29 – Apr 4, 2026" {
		t.Fatalf("label = %q", g.Label)
	}
}

func TestBuildDay(t *testing.T) {
	due := day(2026, time.February, 12)
	items := []struct{ path string }{
		{"School/Math/Todo/HW.md"},
		{"School/Bio/Todo/Lab.md"},
	}
	idx := Index{}
	for _, it := range items {
		idx["2026-02-12"] = append(idx["2026-02-12"], item(t, it.path, ptr(due)))
	}

	d := BuildDay(due, idx)
	if d.Empty || len(d.Items) != 2 {
		t.Fatalf("day list: empty=%v items=%d", d.Empty, len(d.Items))
	}
	if d.Label != "Thursday, February 12, 2026" {
		t.Fatalf("label = %q", d.Label)
	}

	empty := BuildDay(day(2026, time.February, 13), idx)
	if !empty.Empty || len(empty.Items) != 0 {
		t.Fatalf("expected explicit empty state")
	}
}
