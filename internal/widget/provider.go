// Package widget is the read-only home-screen summary.
//
// It runs in its own process, reads the collection blob the main process
// writes to the shared location, and never writes back. A missing or
// undecodable blob is an empty list.
package widget

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/todo"
)

// Load returns the incomplete items in the shared location, in stored order.
func Load(src store.Reader) []model.Item {
	items, _ := load(src)
	return items
}

func load(src store.Reader) ([]model.Item, error) {
	if src == nil {
		return []model.Item{}, nil
	}
	b, err := src.Data(todo.KeyTodos)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return []model.Item{}, nil
		}
		return []model.Item{}, err
	}
	items, err := todo.Decode(b)
	if err != nil {
		return []model.Item{}, err
	}
	out := items[:0]
	for _, it := range items {
		if !it.IsCompleted {
			out = append(out, it)
		}
	}
	return out, nil
}

// Entry is one rendered moment of the widget.
type Entry struct {
	Date  time.Time
	Items []model.Item
}

// Policy says when the host should ask for the next timeline.
type Policy int

const (
	// AtEnd asks again after the last entry.
	AtEnd Policy = iota
)

// Timeline is what the host displays until Policy triggers a refresh.
type Timeline struct {
	Entries []Entry
	Policy  Policy
}

// Provider builds entries from a shared location.
type Provider struct {
	Source store.Reader
	Now    func() time.Time
	Logger *log.Logger
}

func (p *Provider) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// Placeholder is shown before any data has been read.
func (p *Provider) Placeholder() Entry {
	now := p.now()
	return Entry{Date: now, Items: []model.Item{
		model.NewItem("Sample task 1", now, model.WithPriority(model.PriorityHigh)),
		model.NewItem("Sample task 2", now, model.WithPriority(model.PriorityMedium)),
		model.NewItem("Sample task 3", now, model.WithPriority(model.PriorityLow)),
	}}
}

// Snapshot reads the shared location once.
func (p *Provider) Snapshot() Entry {
	items, err := load(p.Source)
	if err != nil {
		logging.OrDefault(p.Logger).Warn("shared todos unreadable; showing none", "err", err)
	}
	return Entry{Date: p.now(), Items: items}
}

// Timeline is a single current entry, refreshed at its end.
func (p *Provider) Timeline() Timeline {
	return Timeline{Entries: []Entry{p.Snapshot()}, Policy: AtEnd}
}

// Family is the display size.
type Family int

const (
	Small Family = iota
	Medium
	Large
)

// Families lists every size.
var Families = []Family{Small, Medium, Large}

func (f Family) String() string {
	switch f {
	case Small:
		return "small"
	case Large:
		return "large"
	}
	return "medium"
}

// Limit is how many items the family shows.
func (f Family) Limit() int {
	switch f {
	case Small:
		return 1
	case Large:
		return 5
	}
	return 3
}

// ShowsDueTime reports whether rows carry the due time.
func (f Family) ShowsDueTime() bool { return f != Small }

// ParseFamily accepts small|medium|large.
func ParseFamily(s string) (Family, error) {
	for _, f := range Families {
		if strings.EqualFold(strings.TrimSpace(s), f.String()) {
			return f, nil
		}
	}
	return Medium, fmt.Errorf("unknown widget family %q (want small|medium|large)", s)
}

// Summary is the bounded view of an Entry for one family.
type Summary struct {
	Count int
	Shown []model.Item
	// More is how many items did not fit.
	More int
}

// Summarize keeps the first Limit items of e.
func Summarize(e Entry, f Family) Summary {
	n := min(len(e.Items), f.Limit())
	return Summary{
		Count: len(e.Items),
		Shown: e.Items[:n],
		More:  len(e.Items) - n,
	}
}
