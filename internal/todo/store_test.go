package todo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/store/jsonstore"
	"github.com/idilsaglam/todo/internal/store/sqlitestore"
)

type recorder struct {
	scheduled []string
	cancelled []string
	pending   map[uuid.UUID]bool
}

func newRecorder() *recorder { return &recorder{pending: map[uuid.UUID]bool{}} }

func (r *recorder) Schedule(it model.Item) {
	if it.DueDate == nil {
		return
	}
	r.scheduled = append(r.scheduled, it.Title)
	r.pending[it.ID] = true
}

func (r *recorder) Cancel(it model.Item) {
	r.cancelled = append(r.cancelled, it.Title)
	delete(r.pending, it.ID)
}

func (r *recorder) Resync(it model.Item) {
	r.Cancel(it)
	if !it.IsCompleted {
		r.Schedule(it)
	}
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	store     *Store
	local     store.Store
	shared    store.Store
	reminders *recorder
	clock     *clock
	dir       string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	local, err := jsonstore.Open(filepath.Join(dir, jsonstore.DefaultFileName))
	require.NoError(t, err)
	shared, err := sqlitestore.Open(filepath.Join(dir, "group.db"))
	require.NoError(t, err)
	t.Cleanup(func() { shared.Close() })

	f := &fixture{
		local:     local,
		shared:    shared,
		reminders: newRecorder(),
		clock:     &clock{t: time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)},
		dir:       dir,
	}
	f.store = f.open()
	return f
}

func (f *fixture) open() *Store {
	return New(Options{
		Local:     f.local,
		Shared:    f.shared,
		Reminders: f.reminders,
		Logger:    logging.Discard(),
		Now:       f.clock.now,
	})
}

// add inserts an item one minute after the previous one.
func (f *fixture) add(t *testing.T, title string, opts ...model.Option) model.Item {
	t.Helper()
	f.clock.advance(time.Minute)
	it, err := f.store.Add(title, opts...)
	require.NoError(t, err)
	return it
}

func titles(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestAdd_BuyMilk(t *testing.T) {
	f := newFixture(t)
	it := f.add(t, "Buy milk")

	items := f.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, it.ID, items[0].ID)
	assert.Nil(t, items[0].DueDate)
	assert.False(t, items[0].IsCompleted)
	assert.Equal(t, Stats{Total: 1}, f.store.Statistics())
	assert.Empty(t, f.reminders.scheduled)
}

func TestAdd_EmptyTitle(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.Add("   ")
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Equal(t, 0, f.store.Len())
}

func TestAdd_PayRentYesterdayIsOverdue(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Pay rent", model.WithDueDate(f.clock.t.Add(-24*time.Hour)))

	st := f.store.Statistics()
	assert.Equal(t, 1, st.Overdue)
	assert.Equal(t, 0, st.Upcoming)
	assert.Equal(t, []string{"Pay rent"}, f.reminders.scheduled)
}

func TestToggle_CancelsReminderAndLeavesUpcoming(t *testing.T) {
	f := newFixture(t)
	it := f.add(t, "Dentist", model.WithDueDate(f.clock.t.Add(24*time.Hour)))
	require.Equal(t, 1, f.store.Statistics().Upcoming)
	require.True(t, f.reminders.pending[it.ID])

	assert.True(t, f.store.Toggle(it.ID))

	st := f.store.Statistics()
	assert.Equal(t, 0, st.Upcoming)
	assert.Equal(t, 1, st.Completed)
	assert.False(t, f.reminders.pending[it.ID])

	assert.True(t, f.store.Toggle(it.ID))
	assert.True(t, f.reminders.pending[it.ID])
}

func TestToggle_MissingID(t *testing.T) {
	f := newFixture(t)
	f.add(t, "a")
	assert.False(t, f.store.Toggle(uuid.New()))
	assert.Equal(t, 0, f.store.Statistics().Completed)
}

func TestFilteredAndSorted_TagFilter(t *testing.T) {
	f := newFixture(t)
	f.add(t, "Apple", model.WithTags("fruit"))
	f.add(t, "banana", model.WithTags("food"))

	got := f.store.FilteredAndSorted(Query{
		SelectedTags:  []string{"fruit"},
		ShowCompleted: true,
		Sort:          SortTitle,
		Ascending:     true,
	})
	assert.Equal(t, []string{"Apple"}, titles(got))
}

func TestDelete_UsesViewPositions(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "first")
	b := f.add(t, "second")
	c := f.add(t, "third")

	q := Query{ShowCompleted: true, Sort: SortCreated, Ascending: false}
	require.Equal(t, []string{"third", "second", "first"}, titles(f.store.FilteredAndSorted(q)))

	assert.Equal(t, 1, f.store.Delete(q, 0))

	items := f.store.Items()
	assert.Equal(t, []string{"first", "second"}, titles(items))
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, b.ID, items[1].ID)
	_, ok := f.store.Item(c.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{"third"}, f.reminders.cancelled)
}

func TestDelete_FilteredViewAndOutOfRange(t *testing.T) {
	f := newFixture(t)
	f.add(t, "keep", model.WithTags("home"))
	f.add(t, "drop one", model.WithTags("work"))
	f.add(t, "drop two", model.WithTags("work"))

	q := Query{SelectedTags: []string{"work"}, ShowCompleted: true, Ascending: true}
	assert.Equal(t, 2, f.store.Delete(q, 1, 0, 0, 7, -1))
	assert.Equal(t, []string{"keep"}, titles(f.store.Items()))

	assert.Equal(t, 0, f.store.Delete(q, 0))
}

func TestUpdate_WholeRecordAndMergeFields(t *testing.T) {
	f := newFixture(t)
	it := f.add(t, "Draft",
		model.WithNotes("old notes"),
		model.WithDueDate(f.clock.t.Add(time.Hour)),
		model.WithImage([]byte("jpeg")),
		model.WithTags("a"),
		model.WithPriority(model.PriorityHigh),
	)

	assert.True(t, f.store.Update(it.ID, Update{Title: "Final"}))

	got, ok := f.store.Item(it.ID)
	require.True(t, ok)
	assert.Equal(t, "Final", got.Title)
	assert.Nil(t, got.Notes, "notes are replaced, so omission clears them")
	assert.Nil(t, got.DueDate, "due date is replaced, so omission clears it")
	assert.Nil(t, got.ImageData, "image is cleared when not supplied")
	assert.Equal(t, []string{"a"}, got.Tags, "tags kept when not supplied")
	assert.Equal(t, model.PriorityHigh, got.Priority, "priority kept when not supplied")
	assert.Equal(t, it.CreatedAt, got.CreatedAt)
	assert.False(t, f.reminders.pending[it.ID])

	notes := "new"
	due := f.clock.t.Add(2 * time.Hour)
	low := model.PriorityLow
	assert.True(t, f.store.Update(it.ID, Update{
		Title:    "Final",
		Notes:    &notes,
		DueDate:  &due,
		Image:    []byte("png"),
		Tags:     []string{},
		Priority: &low,
	}))
	got, _ = f.store.Item(it.ID)
	assert.Equal(t, "new", got.NotesText())
	require.NotNil(t, got.DueDate)
	assert.True(t, got.DueDate.Equal(due))
	assert.Equal(t, []byte("png"), got.ImageData)
	assert.Empty(t, got.Tags)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.True(t, f.reminders.pending[it.ID])
}

func TestUpdate_MissingIDLeavesStorageUntouched(t *testing.T) {
	f := newFixture(t)
	f.add(t, "a", model.WithTags("x"))
	f.add(t, "b")

	before, err := f.local.Data(KeyTodos)
	require.NoError(t, err)
	beforeItems := f.store.Items()

	assert.False(t, f.store.Update(uuid.New(), Update{Title: "ghost"}))

	after, err := f.local.Data(KeyTodos)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Equal(t, beforeItems, f.store.Items())
}

func TestSizeChangesOnlyOnAddAndDelete(t *testing.T) {
	f := newFixture(t)
	a := f.add(t, "a")
	b := f.add(t, "b", model.WithDueDate(f.clock.t))
	require.Equal(t, 2, f.store.Len())

	f.store.Toggle(a.ID)
	f.store.Update(b.ID, Update{Title: "b2"})
	f.store.Toggle(uuid.New())
	assert.Equal(t, 2, f.store.Len())

	removed := f.store.Delete(DefaultQuery(), 0, 1)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, f.store.Len())
}

func TestPersistence_BothLocationsAndReload(t *testing.T) {
	f := newFixture(t)
	f.add(t, "a", model.WithTags("x"), model.WithNotes("n"))
	f.add(t, "b", model.WithDueDate(f.clock.t.Add(time.Hour)))

	local, err := f.local.Data(KeyTodos)
	require.NoError(t, err)
	shared, err := f.shared.Data(KeyTodos)
	require.NoError(t, err)
	assert.Equal(t, local, shared)

	reopened := f.open()
	assert.Equal(t, f.store.Items(), reopened.Items())
}

func TestLoad_CorruptBlobIsEmpty(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.local.SetData(KeyTodos, []byte(`{"schema":2}`)))

	s := f.open()
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, Stats{}, s.Statistics())
}

func TestPersistence_SharedFailureIsLoggedOnly(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.shared.Close())

	it := f.add(t, "still here")
	_, ok := f.store.Item(it.ID)
	assert.True(t, ok)

	local, err := f.local.Data(KeyTodos)
	require.NoError(t, err)
	items, err := Decode(local)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPersistence_LocalWriteFailureKeepsMemory(t *testing.T) {
	f := newFixture(t)
	path := filepath.Join(f.dir, "unwritable.json")
	bad, err := jsonstore.Open(path)
	require.NoError(t, err)
	// a directory in the file's place makes every write fail
	require.NoError(t, os.Mkdir(path, 0o755))

	s := New(Options{Local: bad, Logger: logging.Discard()})
	_, err = s.Add("in memory only")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestReload(t *testing.T) {
	f := newFixture(t)
	f.add(t, "a")

	other := f.open()
	_, err := other.Add("written elsewhere")
	require.NoError(t, err)

	var got []Event
	f.store.Subscribe(func(ev Event) { got = append(got, ev) })
	f.store.Reload()
	assert.Equal(t, 2, f.store.Len())
	require.Len(t, got, 1)
	assert.Equal(t, EventReloaded, got[0].Kind)
}

func TestAllTags(t *testing.T) {
	f := newFixture(t)
	f.add(t, "a", model.WithTags("work", "home", "work"))
	f.add(t, "b", model.WithTags("errand", "home"))
	assert.Equal(t, []string{"errand", "home", "work"}, f.store.AllTags())
}

func TestStatistics_Invariants(t *testing.T) {
	f := newFixture(t)
	now := f.clock.t.Add(5 * time.Minute) // clock after five adds
	f.add(t, "past", model.WithDueDate(now.Add(-time.Hour)))
	f.add(t, "future", model.WithDueDate(now.Add(time.Hour)))
	f.add(t, "exactly now", model.WithDueDate(now))
	f.add(t, "no due")
	done := f.add(t, "done past", model.WithDueDate(now.Add(-time.Hour)))
	f.store.Toggle(done.ID)

	st := f.store.Statistics()
	assert.Equal(t, Stats{Total: 5, Completed: 1, Overdue: 1, Upcoming: 1}, st)
	assert.Equal(t, st.Total, st.Completed+st.Pending())
	assert.LessOrEqual(t, st.Overdue+st.Upcoming, st.Pending())
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	var got []Event
	cancel := f.store.Subscribe(func(ev Event) {
		// callbacks may read the store
		_ = f.store.Len()
		got = append(got, ev)
	})

	it := f.add(t, "a")
	f.store.Toggle(it.ID)
	f.store.Update(it.ID, Update{Title: "b"})
	require.NoError(t, f.store.SetCardColor("rose"))
	f.store.Delete(DefaultQuery(), 0)
	cancel()
	f.add(t, "after cancel")

	kinds := make([]EventKind, len(got))
	for i, ev := range got {
		kinds[i] = ev.Kind
	}
	assert.Equal(t, []EventKind{EventAdded, EventToggled, EventUpdated, EventPreferences, EventDeleted}, kinds)
	assert.Equal(t, []uuid.UUID{it.ID}, got[0].IDs)
	assert.Equal(t, []uuid.UUID{it.ID}, got[4].IDs)
}

func TestPreferences_PersistedByName(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, model.BackgroundPalette[0], f.store.BackgroundColor())
	assert.Equal(t, model.CardPalette[0], f.store.CardColor())

	require.NoError(t, f.store.SetBackgroundColor("lilac"))
	require.NoError(t, f.store.SetCardColor("seafoam"))
	assert.ErrorIs(t, f.store.SetCardColor("lilac"), ErrUnknownSwatch)

	name, err := f.local.String(KeyBackgroundColor)
	require.NoError(t, err)
	assert.Equal(t, "lilac", name)

	reopened := f.open()
	assert.Equal(t, "lilac", reopened.BackgroundColor().Name)
	assert.Equal(t, "seafoam", reopened.CardColor().Name)
}

func TestPreferences_UnknownStoredNameFallsBack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.local.SetString(KeyBackgroundColor, "chartreuse"))
	assert.Equal(t, model.BackgroundPalette[0], f.open().BackgroundColor())
}

func TestUpdateFrom_OnlyTitleChanges(t *testing.T) {
	f := newFixture(t)
	due := f.clock.t.Add(24 * time.Hour)
	it, err := f.store.Add("Pay rent",
		model.WithDueDate(due),
		model.WithNotes("landlord"),
		model.WithImage([]byte("img")),
		model.WithTags("home"),
		model.WithPriority(model.PriorityHigh),
	)
	require.NoError(t, err)

	u := UpdateFrom(it)
	u.Title = "Pay the rent"
	require.True(t, f.store.Update(it.ID, u))

	got, ok := f.store.Item(it.ID)
	require.True(t, ok)
	want := it
	want.Title = "Pay the rent"
	assert.Equal(t, want, got)
}
