package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/todo/internal/logging"
	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/store/jsonstore"
	"github.com/idilsaglam/todo/internal/todo"
)

func newStore(t *testing.T) *todo.Store {
	t.Helper()
	local, err := jsonstore.Open(filepath.Join(t.TempDir(), jsonstore.DefaultFileName))
	require.NoError(t, err)
	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	return todo.New(todo.Options{
		Local:  local,
		Logger: logging.Discard(),
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	})
}

func press(m *Model, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case " ":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func titles(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestAddToggleDelete(t *testing.T) {
	s := newStore(t)
	m := New(s, todo.DefaultQuery())
	assert.Empty(t, m.Items())

	press(m, "a", "Buy milk", "enter")
	press(m, "a", "Pay rent", "enter")
	require.Equal(t, []string{"Buy milk", "Pay rent"}, titles(m.Items()))
	assert.Equal(t, 2, s.Len())

	press(m, " ")
	assert.True(t, m.Items()[0].IsCompleted)

	press(m, "c")
	assert.Equal(t, []string{"Pay rent"}, titles(m.Items()))

	press(m, "d")
	assert.Empty(t, m.Items())
	assert.Equal(t, []string{"Buy milk"}, titles(s.Items()))
}

func TestAdd_EmptyTitleKeepsInputOpen(t *testing.T) {
	s := newStore(t)
	m := New(s, todo.DefaultQuery())

	press(m, "a", "   ", "enter")
	assert.Equal(t, adding, m.mode)
	assert.Equal(t, "Title cannot be empty", m.err)
	assert.Zero(t, s.Len())

	press(m, "esc")
	assert.Equal(t, browsing, m.mode)
}

func TestEdit_KeepsOtherFields(t *testing.T) {
	s := newStore(t)
	it, err := s.Add("Pay rent", model.WithNotes("landlord"), model.WithTags("home"), model.WithPriority(model.PriorityHigh))
	require.NoError(t, err)
	m := New(s, todo.DefaultQuery())

	press(m, "e", "!", "enter")

	got, ok := s.Item(it.ID)
	require.True(t, ok)
	assert.Equal(t, "Pay rent!", got.Title)
	assert.Equal(t, "landlord", got.NotesText())
	assert.Equal(t, []string{"home"}, got.Tags)
	assert.Equal(t, model.PriorityHigh, got.Priority)
}

func TestSearchSortReverse(t *testing.T) {
	s := newStore(t)
	for _, title := range []string{"banana", "apple", "cherry"} {
		_, err := s.Add(title)
		require.NoError(t, err)
	}
	m := New(s, todo.DefaultQuery())

	press(m, "s", "s", "s")
	assert.Equal(t, todo.SortTitle, m.Query().Sort)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, titles(m.Items()))

	press(m, "r")
	assert.Equal(t, []string{"cherry", "banana", "apple"}, titles(m.Items()))

	press(m, "/", "an")
	assert.Equal(t, []string{"banana"}, titles(m.Items()))
	press(m, "enter")
	assert.Equal(t, "an", m.Query().SearchText)

	press(m, "/")
	assert.Equal(t, "Search title, notes and tags...", m.ti.Placeholder)
	press(m, "esc")
	assert.Empty(t, m.Query().SearchText)
	assert.Len(t, m.Items(), 3)
}

func TestDelete_UsesViewPosition(t *testing.T) {
	s := newStore(t)
	for _, title := range []string{"banana", "apple", "cherry"} {
		_, err := s.Add(title)
		require.NoError(t, err)
	}
	m := New(s, todo.Query{ShowCompleted: true, Sort: todo.SortTitle, Ascending: true})

	press(m, "down", "d")
	assert.Equal(t, []string{"apple", "cherry"}, titles(m.Items()))
	assert.Equal(t, []string{"apple", "cherry"}, titles(s.FilteredAndSorted(m.Query())))
}

func TestChangedMsgRefreshes(t *testing.T) {
	s := newStore(t)
	m := New(s, todo.DefaultQuery())
	_, err := s.Add("from elsewhere")
	require.NoError(t, err)
	assert.Empty(t, m.Items())

	_, cmd := m.Update(changedMsg{})
	assert.NotNil(t, cmd)
	assert.Equal(t, []string{"from elsewhere"}, titles(m.Items()))
}

func TestQuit(t *testing.T) {
	m := New(newStore(t), todo.DefaultQuery())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Contains(t, m.View(), "Todos")
}
