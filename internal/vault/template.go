package vault

import (
	"fmt"
	"strings"
	"time"
)

// NoteFields carries everything the assignment note template needs. Keeping
// this a plain struct avoids a vault -> canvas dependency.
type NoteFields struct {
	Name        string
	Due         *time.Time
	CanvasID    string
	URL         string
	Points      float64
	Description string
	Course      string
}

// RenderNote produces the markdown content for a freshly synced assignment.
// The front matter mirrors what Collect and Complete later read back:
// an optional due date, the canvas id, a Todo status, and the Status/<marker>
// tag the completion transition strips.
func RenderNote(fields NoteFields, marker string) string {
	var b strings.Builder
	b.WriteString("---\n")
	if fields.Due != nil {
		fmt.Fprintf(&b, "due: %s\n", fields.Due.Format("2006-01-02"))
	}
	if fields.CanvasID != "" {
		fmt.Fprintf(&b, "canvas-id: %q\n", fields.CanvasID)
	}
	fmt.Fprintf(&b, "status: %s\n", marker)
	b.WriteString("tags:\n")
	fmt.Fprintf(&b, "  - Status/%s\n", marker)
	b.WriteString("---\n\n")

	fmt.Fprintf(&b, "# %s\n\n", fields.Name)
	if fields.Course != "" {
		fmt.Fprintf(&b, "Course: %s\n", fields.Course)
	}
	if fields.Due != nil {
		fmt.Fprintf(&b, "Due: %s\n", fields.Due.Format("Jan 2, 2006"))
	}
	if fields.Points > 0 {
		fmt.Fprintf(&b, "Points: %g\n", fields.Points)
	}
	if fields.URL != "" {
		fmt.Fprintf(&b, "\n[Open in Canvas](%s)\n", fields.URL)
	}
	if desc := strings.TrimSpace(fields.Description); desc != "" {
		b.WriteString("\n" + desc + "\n")
	}
	return b.String()
}

// SanitizeName makes an assignment name safe as a file base name.
func SanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-", "\\", "-", ":", "-", "*", "", "?", "",
		"\"", "'", "<", "(", ">", ")", "|", "-", "#", "",
	)
	out := strings.TrimSpace(replacer.Replace(name))
	if out == "" {
		return "Untitled"
	}
	return out
}
