package export

import (
	"strings"

	"chronofy/internal/model"
)

// TaskList renders tasks as a plain-text checklist, open items first
// under "To-Do:" and finished ones under "Completed:", one line per
// task in the form "- [ ] <emoji> <text> (<tag>)".
func TaskList(tasks []model.Task) string {
	var b strings.Builder
	b.WriteString("Chronofy To-Do List\n\n")

	b.WriteString("To-Do:\n")
	for _, t := range tasks {
		if !t.Completed {
			writeTaskLine(&b, t, "- [ ] ")
		}
	}

	b.WriteString("\nCompleted:\n")
	for _, t := range tasks {
		if t.Completed {
			writeTaskLine(&b, t, "- [x] ")
		}
	}

	return b.String()
}

func writeTaskLine(b *strings.Builder, t model.Task, prefix string) {
	b.WriteString(prefix)
	if t.Emoji != "" {
		b.WriteString(t.Emoji)
		b.WriteString(" ")
	}
	b.WriteString(t.Text)
	b.WriteString(" (")
	b.WriteString(t.Tag)
	b.WriteString(")\n")
}
