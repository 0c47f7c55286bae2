package views

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vkarthik/canvault/internal/model"
)

// TodayMarker selects how the current day is highlighted in calendar grids:
// a circled day-number glyph or a background fill. One policy, two renderings.
type TodayMarker string

const (
	TodayGlyph      TodayMarker = "glyph"
	TodayBackground TodayMarker = "background"
)

var (
	todayBgStyle   = lipgloss.NewStyle().Background(lipgloss.Color("12")).Foreground(lipgloss.Color("0")).Bold(true)
	dayNumStyle    = lipgloss.NewStyle().Bold(true)
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	overdueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	dueTodayStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	emptyStateText = "(no assignments due)"
)

// SubjectBadge renders a subject label in its deterministic palette colors.
func SubjectBadge(subject string) string {
	c := model.ColorFor(subject)
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Background)).
		Foreground(lipgloss.Color(c.Text)).
		Padding(0, 1).
		Render(subject)
}

// BucketStyle maps urgency to a text style for list rows.
func BucketStyle(b model.Bucket) lipgloss.Style {
	switch b {
	case model.BucketOverdue:
		return overdueStyle
	case model.BucketToday:
		return dueTodayStyle
	default:
		return lipgloss.NewStyle()
	}
}

// dayGlyph renders a day-of-month as a circled digit for the glyph today
// marker. Days outside the table fall back to the plain number.
func dayGlyph(day int) string {
	if day < 1 || day >= len(whiteCircledDigits) {
		return ""
	}
	return whiteCircledDigits[day]
}

var whiteCircledDigits = []string{
	"⓪",
	"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧", "⑨", "⑩",
	"⑪", "⑫", "⑬", "⑭", "⑮", "⑯", "⑰", "⑱", "⑲", "⑳",
	"㉑", "㉒", "㉓", "㉔", "㉕", "㉖", "㉗", "㉘", "㉙", "㉚",
	"㉛",
}
