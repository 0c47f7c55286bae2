package views

import (
	"fmt"
	"strings"

	"github.com/vkarthik/canvault/internal/grid"
)

// ListData is everything the todo list screen needs from the update layer.
type ListData struct {
	Sections     []grid.Section
	Grouping     grid.Grouping
	SelectedPath string
}

// RenderList draws the grouped todo list. Every row exposes the completion
// affordance, the name, the subject badge, and the due label when present.
func RenderList(data ListData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("grouping: %s\n", data.Grouping))
	b.WriteString("actions: [j/k]move [c]complete [enter]open [v]preview [g]regroup\n")

	if len(data.Sections) == 0 {
		b.WriteString("\n" + dimStyle.Render(emptyStateText))
		return b.String()
	}

	for _, section := range data.Sections {
		title := sectionStyle.Render(section.Title)
		if styled := BucketStyle(section.Bucket); section.Bucket != "" {
			title = styled.Render(section.Title)
		}
		b.WriteString("\n" + title + "\n")
		for _, item := range section.Items {
			cursor := " "
			if item.Path == data.SelectedPath {
				cursor = ">"
			}
			line := fmt.Sprintf("%s [ ] %s %s", cursor, item.DisplayName, SubjectBadge(item.Subject))
			if label := item.DueLabel(); label != "" {
				line += dimStyle.Render(" due " + label)
			}
			b.WriteString(line + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
