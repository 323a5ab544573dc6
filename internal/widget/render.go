package widget

import (
	"fmt"
	"strings"
	"time"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/ui"
)

const (
	header    = "To-do"
	emptyText = "No to-dos"
	titleMax  = 32
)

func countText(n int) string {
	if n == 1 {
		return "1 to-do"
	}
	return fmt.Sprintf("%d to-dos", n)
}

func moreText(n int) string {
	return fmt.Sprintf("+%d more", n)
}

func dueText(it model.Item, f Family, loc *time.Location) string {
	if !f.ShowsDueTime() || it.DueDate == nil {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	return it.DueDate.In(loc).Format("15:04")
}

// RenderText is the plain rendering, one line per row.
func RenderText(s Summary, f Family, loc *time.Location) string {
	lines := []string{header}
	if s.Count == 0 {
		lines = append(lines, emptyText)
		return strings.Join(lines, "\n") + "\n"
	}
	lines = append(lines, countText(s.Count))
	for _, it := range s.Shown {
		line := it.Priority.Marker() + " " + ui.Truncate(it.Title, titleMax)
		if due := dueText(it, f, loc); due != "" {
			line += " · " + due
		}
		lines = append(lines, line)
	}
	if s.More > 0 {
		lines = append(lines, moreText(s.More))
	}
	return strings.Join(lines, "\n") + "\n"
}

// Render is the styled rendering inside a themed panel.
func Render(s Summary, f Family, loc *time.Location) string {
	t := ui.Current()
	lines := []string{t.Title.Render(header)}
	if s.Count == 0 {
		lines = append(lines, t.Muted.Render(emptyText))
		return ui.PanelString(lines)
	}
	lines = append(lines, t.Muted.Render(countText(s.Count)))
	for _, it := range s.Shown {
		line := t.PriorityStyle(it.Priority).Render("●") + " " + ui.Truncate(it.Title, titleMax)
		if due := dueText(it, f, loc); due != "" {
			line += "  " + t.Muted.Render(due)
		}
		lines = append(lines, line)
	}
	if s.More > 0 {
		lines = append(lines, t.Muted.Render(moreText(s.More)))
	}
	return ui.PanelString(lines)
}
