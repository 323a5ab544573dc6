// Package todo owns the canonical to-do collection of the main process.
//
// Every mutation persists the whole collection to the local location and
// then to the shared location read by the widget. Persistence is
// fire-and-forget: failures are logged and the in-memory change stands.
package todo

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
)

var (
	ErrEmptyTitle    = errors.New("title is empty")
	ErrUnknownSwatch = errors.New("unknown colour")
)

// Reminders is the part of the notification scheduler the Store drives.
type Reminders interface {
	Schedule(model.Item)
	Cancel(model.Item)
	Resync(model.Item)
}

type noReminders struct{}

func (noReminders) Schedule(model.Item) {}
func (noReminders) Cancel(model.Item)   {}
func (noReminders) Resync(model.Item)   {}

// Options configures New. Local is required.
type Options struct {
	Local  store.Store
	Shared store.Store
	// Reminders defaults to a no-op.
	Reminders Reminders
	Logger    *log.Logger
	// Locale orders titles; defaults to English.
	Locale language.Tag
	Now    func() time.Time
}

// Store is the canonical collection plus the two colour preferences.
type Store struct {
	local     store.Store
	shared    store.Store
	reminders Reminders
	log       *log.Logger
	locale    language.Tag
	now       func() time.Time

	mu    sync.Mutex
	items []model.Item
	bg    model.Swatch
	card  model.Swatch

	subsMu  sync.Mutex
	subs    map[int]func(Event)
	nextSub int
}

// New loads the collection and preferences from opts.Local.
func New(opts Options) *Store {
	s := &Store{
		local:     opts.Local,
		shared:    opts.Shared,
		reminders: opts.Reminders,
		log:       logging.OrDefault(opts.Logger),
		locale:    opts.Locale,
		now:       opts.Now,
		subs:      map[int]func(Event){},
	}
	if s.reminders == nil {
		s.reminders = noReminders{}
	}
	if s.locale == language.Und {
		s.locale = language.English
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.items = s.loadItems()
	s.bg = s.loadSwatch(KeyBackgroundColor, model.BackgroundPalette)
	s.card = s.loadSwatch(KeyCardColor, model.CardPalette)
	return s
}

// Items returns a copy of the canonical collection in insertion order.
func (s *Store) Items() []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// Len is the size of the canonical collection.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Item looks up a copy by id.
func (s *Store) Item(id uuid.UUID) (model.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	return model.Item{}, false
}

// Add appends a new item, persists, and schedules its reminder when it has
// a due date.
func (s *Store) Add(title string, opts ...model.Option) (model.Item, error) {
	if strings.TrimSpace(title) == "" {
		return model.Item{}, ErrEmptyTitle
	}
	it := model.NewItem(title, s.now(), opts...)

	s.mu.Lock()
	s.items = append(s.items, it)
	s.persistLocked()
	s.mu.Unlock()

	if it.DueDate != nil {
		s.reminders.Schedule(it)
	}
	s.emit(Event{Kind: EventAdded, IDs: []uuid.UUID{it.ID}})
	return it.Clone(), nil
}

// Update is a whole-record edit. Title, Notes, DueDate and Image always
// replace the stored values (nil clears). Tags and Priority replace only
// when non-nil.
type Update struct {
	Title    string
	Notes    *string
	DueDate  *time.Time
	Image    []byte
	Tags     []string
	Priority *model.Priority
}

// UpdateFrom is an Update that leaves it unchanged. Front ends start from
// it and override only what the user edited.
func UpdateFrom(it model.Item) Update {
	p := it.Priority
	return Update{
		Title:    it.Title,
		Notes:    it.Notes,
		DueDate:  it.DueDate,
		Image:    it.ImageData,
		Tags:     it.Tags,
		Priority: &p,
	}
}

// Update applies u to the item with id. A missing id is a silent no-op and
// reports false.
func (s *Store) Update(id uuid.UUID, u Update) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	it := s.items[i]
	it.Title = u.Title
	it.Notes = nil
	if u.Notes != nil {
		n := *u.Notes
		it.Notes = &n
	}
	it.DueDate = model.UTC(u.DueDate)
	it.ImageData = nil
	if len(u.Image) > 0 {
		it.ImageData = append([]byte(nil), u.Image...)
	}
	if u.Tags != nil {
		it.Tags = append([]string{}, u.Tags...)
	}
	if u.Priority != nil {
		it.Priority = *u.Priority
	}
	s.items[i] = it
	s.persistLocked()
	updated := it.Clone()
	s.mu.Unlock()

	s.reminders.Resync(updated)
	s.emit(Event{Kind: EventUpdated, IDs: []uuid.UUID{id}})
	return true
}

// Toggle flips completion of the item with id; false if absent.
func (s *Store) Toggle(id uuid.UUID) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.items[i].IsCompleted = !s.items[i].IsCompleted
	s.persistLocked()
	toggled := s.items[i].Clone()
	s.mu.Unlock()

	s.reminders.Resync(toggled)
	s.emit(Event{Kind: EventToggled, IDs: []uuid.UUID{id}})
	return true
}

// Delete removes the items at positions of the view FilteredAndSorted(q).
// Positions outside the view are ignored. It returns how many were removed.
func (s *Store) Delete(q Query, positions ...int) int {
	s.mu.Lock()
	view := apply(s.items, q, s.locale)

	doomed := map[uuid.UUID]model.Item{}
	for _, p := range positions {
		if p < 0 || p >= len(view) {
			continue
		}
		doomed[view[p].ID] = view[p]
	}
	if len(doomed) == 0 {
		s.mu.Unlock()
		return 0
	}

	kept := s.items[:0:0]
	ids := make([]uuid.UUID, 0, len(doomed))
	for _, it := range s.items {
		if _, ok := doomed[it.ID]; ok {
			ids = append(ids, it.ID)
			continue
		}
		kept = append(kept, it)
	}
	s.items = kept
	s.persistLocked()
	s.mu.Unlock()

	for _, id := range ids {
		s.reminders.Cancel(doomed[id])
	}
	s.emit(Event{Kind: EventDeleted, IDs: ids})
	return len(ids)
}

// FilteredAndSorted returns the derived view for q. The canonical order is
// never changed.
func (s *Store) FilteredAndSorted(q Query) []model.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return apply(s.items, q, s.locale)
}

// Stats are aggregate counts. Items due exactly now, or without a due
// date, are neither overdue nor upcoming.
type Stats struct {
	Total     int
	Completed int
	Overdue   int
	Upcoming  int
}

// Pending is the number of incomplete items.
func (st Stats) Pending() int { return st.Total - st.Completed }

func (s *Store) Statistics() Stats {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Total: len(s.items)}
	for _, it := range s.items {
		if it.IsCompleted {
			st.Completed++
			continue
		}
		if it.DueDate == nil {
			continue
		}
		switch {
		case it.DueDate.Before(now):
			st.Overdue++
		case it.DueDate.After(now):
			st.Upcoming++
		}
	}
	return st
}

// AllTags is every tag in use, deduplicated and sorted.
func (s *Store) AllTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := map[string]struct{}{}
	for _, it := range s.items {
		for _, t := range it.Tags {
			seen[t] = struct{}{}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Reload replaces the in-memory collection with the local location's copy.
func (s *Store) Reload() {
	items := s.loadItems()
	s.mu.Lock()
	s.items = items
	s.mu.Unlock()
	s.emit(Event{Kind: EventReloaded})
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) loadItems() []model.Item {
	b, err := s.local.Data(KeyTodos)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.log.Warn("load todos", "err", err)
		}
		return []model.Item{}
	}
	items, err := Decode(b)
	if err != nil {
		s.log.Warn("discarding undecodable todos", "err", err)
		return []model.Item{}
	}
	return items
}

// persistLocked writes the collection to both locations. Must hold mu.
func (s *Store) persistLocked() {
	b, err := Encode(s.items)
	if err != nil {
		s.log.Error("encode todos", "err", err)
		return
	}
	if err := s.local.SetData(KeyTodos, b); err != nil {
		s.log.Error("save todos", "location", "local", "err", err)
	}
	if s.shared == nil {
		return
	}
	if err := s.shared.SetData(KeyTodos, b); err != nil {
		s.log.Error("save todos", "location", "shared", "err", err)
	}
}
