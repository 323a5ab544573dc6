package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/ui"
)

// viewFlags select the view that positions refer to.
type viewFlags struct {
	search string
	tags   []string
	all    bool
	sort   string
	desc   bool
}

func (v *viewFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&v.search, "search", "", "only items whose title, notes or tags contain text")
	f.StringSliceVar(&v.tags, "tag", nil, "only items carrying any of these tags")
	f.BoolVarP(&v.all, "all", "a", false, "include completed items")
	f.StringVar(&v.sort, "sort", "created", "created|due|priority|title")
	f.BoolVar(&v.desc, "desc", false, "reverse the sort order")
}

func (v *viewFlags) query() (todo.Query, error) {
	o, err := todo.ParseSortOption(v.sort)
	if err != nil {
		return todo.Query{}, usageErr("%v", err)
	}
	return todo.Query{
		SearchText:    v.search,
		SelectedTags:  v.tags,
		ShowCompleted: v.all,
		Sort:          o,
		Ascending:     !v.desc,
	}, nil
}

// positions parses 1-based user positions into 0-based view positions.
// A repeated position is kept once, at its first occurrence.
func positions(args []string, viewLen int) ([]int, error) {
	out := make([]int, 0, len(args))
	seen := make(map[int]bool, len(args))
	for _, a := range args {
		n, err := strconv.Atoi(a)
		if err != nil {
			return nil, usageErr("not a number: %s", a)
		}
		if n < 1 || n > viewLen {
			return nil, usageErr("index out of range: have %d, got %d (run `todo ls` to see valid indexes)", viewLen, n)
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n-1)
	}
	return out, nil
}

// itemLine renders one numbered row of `todo ls`.
func itemLine(pos int, it model.Item, now time.Time, loc *time.Location) string {
	t := ui.Current()
	box := t.Muted.Render(t.BoxUnchecked)
	title := ui.Truncate(it.Title, 60)
	if it.IsCompleted {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}
	line := fmt.Sprintf("%s %s %s %s",
		t.Muted.Render(fmt.Sprintf("%2d.", pos)),
		box,
		t.PriorityStyle(it.Priority).Render(it.Priority.Marker()),
		title,
	)
	if it.DueDate != nil {
		due := it.DueDate.In(loc).Format("Mon Jan 2 15:04")
		if !it.IsCompleted && it.DueDate.Before(now) {
			line += "  " + t.Error.Render(due)
		} else {
			line += "  " + t.Muted.Render(due)
		}
	}
	if len(it.Tags) > 0 {
		line += "  " + t.Accent.Render("#"+strings.Join(it.Tags, " #"))
	}
	if it.Notes != nil {
		line += "  " + t.Muted.Render("✎")
	}
	if len(it.ImageData) > 0 {
		line += "  " + t.Muted.Render("▣")
	}
	return line
}

func statsHeader(st todo.Stats) []string {
	t := ui.Current()
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), st.Completed,
		t.Pending.Render(t.SymPending), st.Pending(),
		t.Accent.Render("Total"), st.Total,
	)
	return []string{header, t.Muted.Render(ui.ProgressBar(st.Completed, st.Total, 28))}
}
