package views

import (
	"strings"
	"testing"
	"time"

	"github.com/vkarthik/canvault/internal/grid"
	"github.com/vkarthik/canvault/internal/model"
)

func testItem(t *testing.T, path string, due *time.Time) model.DueItem {
	t.Helper()
	item, err := model.NewDueItem(path, "Todo", due)
	if err != nil {
		t.Fatalf("item: %v", err)
	}
	return item
}

func TestRenderMonthShowsOverflow(t *testing.T) {
	due := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	items := []model.DueItem{
		testItem(t, "School/Math/Todo/A.md", &due),
		testItem(t, "School/Math/Todo/B.md", &due),
		testItem(t, "School/Math/Todo/C.md", &due),
	}
	g := grid.BuildMonth(due, due, grid.BuildIndex(items), 2)
	out := RenderMonth(g, TodayGlyph, "")

	if !strings.Contains(out, "February 2026") {
		t.Fatalf("missing month label:\n%s", out)
	}
	if !strings.Contains(out, "+1 more") {
		t.Fatalf("missing overflow affordance:\n%s", out)
	}
	plain := stripAnsi(out)
	if !strings.Contains(plain, "A") || !strings.Contains(plain, "B") {
		t.Fatalf("capped cell should still show the first two items:\n%s", plain)
	}
	if strings.Contains(plain, "C") {
		t.Fatalf("third item should be deferred behind the overflow count:\n%s", plain)
	}
}

func TestRenderMonthTodayGlyph(t *testing.T) {
	anchor := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	g := grid.BuildMonth(anchor, anchor, grid.Index{}, 2)

	glyph := RenderMonth(g, TodayGlyph, "")
	if !strings.Contains(glyph, "⑫") {
		t.Fatalf("glyph policy should circle the day number:\n%s", glyph)
	}
	background := RenderMonth(g, TodayBackground, "")
	if strings.Contains(background, "⑫") {
		t.Fatalf("background policy must not use the glyph:\n%s", background)
	}
}

func TestRenderDayEmptyState(t *testing.T) {
	d := grid.BuildDay(time.Date(2026, 2, 13, 0, 0, 0, 0, time.Local), grid.Index{})
	out := RenderDay(d, "")
	if !strings.Contains(out, "No assignments due on this day.") {
		t.Fatalf("missing empty state:\n%s", out)
	}
}

func TestRenderListSectionsInOrder(t *testing.T) {
	today := time.Date(2026, 2, 12, 0, 0, 0, 0, time.Local)
	overdue := today.AddDate(0, 0, -2)
	later := today.AddDate(0, 0, 10)
	items := []model.DueItem{
		testItem(t, "School/Math/Todo/later.md", &later),
		testItem(t, "School/Math/Todo/past.md", &overdue),
		testItem(t, "School/Math/Todo/now.md", &today),
	}
	out := RenderList(ListData{
		Sections: grid.BuildSections(items, grid.GroupByUrgency, today),
		Grouping: grid.GroupByUrgency,
	})

	plain := stripAnsi(out)
	iOverdue := strings.Index(plain, "Overdue")
	iToday := strings.Index(plain, "Due Today")
	iLater := strings.Index(plain, "Later")
	if iOverdue < 0 || iToday < 0 || iLater < 0 {
		t.Fatalf("missing section headings:\n%s", plain)
	}
	if !(iOverdue < iToday && iToday < iLater) {
		t.Fatalf("sections out of order:\n%s", plain)
	}
}

// stripAnsi removes color escape sequences so assertions see plain text.
func stripAnsi(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
