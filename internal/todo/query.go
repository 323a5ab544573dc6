package todo

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/idilsaglam/todo/internal/model"
)

// SortOption selects the ordering of a derived view.
type SortOption int

const (
	SortCreated SortOption = iota
	SortDueDate
	SortPriority
	SortTitle
)

var sortNames = map[SortOption]string{
	SortCreated:  "created",
	SortDueDate:  "due",
	SortPriority: "priority",
	SortTitle:    "title",
}

// SortOptions lists every option in menu order.
var SortOptions = []SortOption{SortCreated, SortDueDate, SortPriority, SortTitle}

func (o SortOption) String() string {
	if s, ok := sortNames[o]; ok {
		return s
	}
	return fmt.Sprintf("SortOption(%d)", int(o))
}

// Next cycles through SortOptions.
func (o SortOption) Next() SortOption {
	return SortOptions[(int(o)+1)%len(SortOptions)]
}

// ParseSortOption accepts the names printed by String.
func ParseSortOption(s string) (SortOption, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, name := range sortNames {
		if s == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown sort option %q (want created|due|priority|title)", s)
}

// Query describes a derived view of the collection.
type Query struct {
	SearchText    string
	SelectedTags  []string
	ShowCompleted bool
	Sort          SortOption
	Ascending     bool
}

// DefaultQuery shows every item, oldest first.
func DefaultQuery() Query {
	return Query{ShowCompleted: true, Sort: SortCreated, Ascending: true}
}

// distantFuture stands in for a missing due date when sorting.
var distantFuture = time.Date(4001, 1, 1, 0, 0, 0, 0, time.UTC)

// apply filters and sorts items without touching the input slice.
func apply(items []model.Item, q Query, locale language.Tag) []model.Item {
	out := make([]model.Item, 0, len(items))
	fold := cases.Fold()
	needle := fold.String(q.SearchText)

	for _, it := range items {
		if q.SearchText != "" && !matchesText(it, needle, fold) {
			continue
		}
		if len(q.SelectedTags) > 0 && !sharesTag(it, q.SelectedTags) {
			continue
		}
		if !q.ShowCompleted && it.IsCompleted {
			continue
		}
		out = append(out, it.Clone())
	}

	compare := comparator(q.Sort, locale)
	slices.SortStableFunc(out, func(a, b model.Item) int {
		c := compare(a, b)
		if !q.Ascending {
			c = -c
		}
		return c
	})
	return out
}

func matchesText(it model.Item, needle string, fold cases.Caser) bool {
	if strings.Contains(fold.String(it.Title), needle) {
		return true
	}
	if strings.Contains(fold.String(it.NotesText()), needle) {
		return true
	}
	for _, tag := range it.Tags {
		if strings.Contains(fold.String(tag), needle) {
			return true
		}
	}
	return false
}

func sharesTag(it model.Item, selected []string) bool {
	for _, s := range selected {
		if it.HasTag(s) {
			return true
		}
	}
	return false
}

func comparator(o SortOption, locale language.Tag) func(a, b model.Item) int {
	switch o {
	case SortDueDate:
		return func(a, b model.Item) int {
			return dueOrFuture(a).Compare(dueOrFuture(b))
		}
	case SortPriority:
		// Stored-label order, not severity: medium < low < high.
		return func(a, b model.Item) int {
			return cmp.Compare(a.Priority.LabelRank(), b.Priority.LabelRank())
		}
	case SortTitle:
		col := collate.New(locale)
		return func(a, b model.Item) int {
			return col.CompareString(a.Title, b.Title)
		}
	default:
		return func(a, b model.Item) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	}
}

func dueOrFuture(it model.Item) time.Time {
	if it.DueDate == nil {
		return distantFuture
	}
	return *it.DueDate
}
