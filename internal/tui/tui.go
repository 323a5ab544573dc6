// Package tui is the interactive list over a todo.Store.
package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/todo/internal/model"
	"github.com/idilsaglam/todo/internal/todo"
	"github.com/idilsaglam/todo/internal/ui"
)

// row adapts model.Item to bubbles/list.Item.
type row struct {
	item model.Item
}

func (r row) Title() string       { return r.item.Title }
func (r row) Description() string { return r.item.NotesText() }
func (r row) FilterValue() string { return r.item.Title }

// Custom delegate to control how rows render (single line).
type rowDelegate struct {
	theme ui.Theme
}

func (d rowDelegate) Height() int                               { return 1 }
func (d rowDelegate) Spacing() int                              { return 0 }
func (d rowDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d rowDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	r, _ := li.(row)
	t := d.theme

	box := t.Muted.Render(t.BoxUnchecked)
	title := r.item.Title
	if r.item.IsCompleted {
		box = t.Success.Render(t.BoxChecked)
		title = t.Done.Render(title)
	}

	line := fmt.Sprintf("%s %s %s", box, t.PriorityStyle(r.item.Priority).Render(r.item.Priority.Marker()), title)
	if r.item.DueDate != nil {
		line += "  " + t.Muted.Render(r.item.DueDate.Local().Format("Jan 2 15:04"))
	}
	if len(r.item.Tags) > 0 {
		line += "  " + t.Accent.Render("#"+strings.Join(r.item.Tags, " #"))
	}

	prefix := "  "
	if index == m.Index() {
		prefix = t.Selected.Render(">") + " "
	}
	fmt.Fprintln(w, prefix+line)
}

type mode int

const (
	browsing mode = iota
	adding
	editing
	searching
)

// changedMsg is sent when the Store reports a mutation.
type changedMsg struct{}

// Model is the Bubble Tea model. Positions in the list are positions in
// the view FilteredAndSorted(Query).
type Model struct {
	store   *todo.Store
	query   todo.Query
	list    list.Model
	ti      textinput.Model
	theme   ui.Theme
	changed chan struct{}

	mode   mode
	target model.Item
	err    string
	width  int
	height int
}

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	delBind    = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	toggleBind = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	doneBind   = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "show/hide done"))
	sortBind   = key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort"))
	revBind    = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reverse"))
	findBind   = key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search"))
)

func extraKeys() []key.Binding {
	return []key.Binding{toggleBind, addBind, editBind, delBind, doneBind, sortBind, revBind, findBind}
}

// New builds the model for s starting from q.
func New(s *todo.Store, q todo.Query) *Model {
	theme := ui.Current().WithSwatches(s.BackgroundColor(), s.CardColor())

	l := list.New(nil, rowDelegate{theme: theme}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.Title
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = extraKeys
	l.AdditionalFullHelpKeys = extraKeys
	// Quitting is handled here so that q never leaves an input half typed.
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)
	// d deletes; keep paging on the other keys.
	l.KeyMap.NextPage.SetKeys("right", "l", "pgdown", "f")

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 200

	m := &Model{store: s, query: q, list: l, ti: ti, theme: theme, changed: make(chan struct{}, 1)}
	m.refresh()
	return m
}

// Query returns the view currently shown.
func (m *Model) Query() todo.Query { return m.query }

// Items returns the rows currently shown, in view order.
func (m *Model) Items() []model.Item {
	out := make([]model.Item, 0, len(m.list.Items()))
	for _, li := range m.list.Items() {
		out = append(out, li.(row).item)
	}
	return out
}

func (m *Model) refresh() {
	items := m.store.FilteredAndSorted(m.query)
	rows := make([]list.Item, len(items))
	for i, it := range items {
		rows[i] = row{item: it}
	}
	m.list.SetItems(rows)

	st := m.store.Statistics()
	order := "↑"
	if !m.query.Ascending {
		order = "↓"
	}
	m.list.Title = fmt.Sprintf("Todos   %s %d  %s %d  overdue %d   sort: %s%s",
		m.theme.SymDone, st.Completed,
		m.theme.SymPending, st.Pending(),
		st.Overdue,
		m.query.Sort, order,
	)
}

func (m *Model) selected() (model.Item, bool) {
	li, ok := m.list.SelectedItem().(row)
	if !ok {
		return model.Item{}, false
	}
	return li.item, true
}

func (m *Model) openInput(md mode, value, placeholder string) tea.Cmd {
	m.mode = md
	m.err = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m.ti.Focus()
}

func (m *Model) closeInput() {
	m.mode = browsing
	m.ti.SetValue("")
	m.ti.Blur()
}

func (m *Model) listen() tea.Cmd {
	ch := m.changed
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func (m *Model) Init() tea.Cmd { return m.listen() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil
	case changedMsg:
		m.refresh()
		return m, m.listen()
	case tea.KeyMsg:
		if m.mode != browsing {
			return m, m.updateInput(msg)
		}
		if cmd, handled := m.updateBrowse(msg); handled {
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		if m.mode == searching {
			m.query.SearchText = ""
			m.refresh()
		}
		m.closeInput()
		return nil
	case "enter":
		value := m.ti.Value()
		switch m.mode {
		case adding:
			if _, err := m.store.Add(strings.TrimSpace(value)); err != nil {
				if errors.Is(err, todo.ErrEmptyTitle) {
					m.err = "Title cannot be empty"
				} else {
					m.err = err.Error()
				}
				return nil
			}
		case editing:
			title := strings.TrimSpace(value)
			if title == "" {
				m.err = "Title cannot be empty"
				return nil
			}
			u := todo.UpdateFrom(m.target)
			u.Title = title
			m.store.Update(m.target.ID, u)
		}
		m.closeInput()
		m.refresh()
		return nil
	}

	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	if m.mode == searching {
		m.query.SearchText = m.ti.Value()
		m.refresh()
	}
	return cmd
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit, true
	case " ":
		if it, ok := m.selected(); ok {
			m.store.Toggle(it.ID)
			m.refresh()
		}
		return nil, true
	case "d":
		if _, ok := m.selected(); ok {
			m.store.Delete(m.query, m.list.Index())
			m.refresh()
		}
		return nil, true
	case "a":
		return m.openInput(adding, "", "New item title..."), true
	case "e":
		it, ok := m.selected()
		if !ok {
			return nil, true
		}
		m.target = it
		return m.openInput(editing, it.Title, "Edit item title..."), true
	case "/":
		return m.openInput(searching, m.query.SearchText, "Search title, notes and tags..."), true
	case "c":
		m.query.ShowCompleted = !m.query.ShowCompleted
		m.refresh()
		return nil, true
	case "s":
		m.query.Sort = m.query.Sort.Next()
		m.refresh()
		return nil, true
	case "r":
		m.query.Ascending = !m.query.Ascending
		m.refresh()
		return nil, true
	}
	return nil, false
}

func (m *Model) resize() {
	h := m.height - 4
	if m.mode != browsing {
		h -= 3
	}
	m.list.SetSize(max(m.width-4, 20), max(h, 5))
}

func (m *Model) View() string {
	m.resize()
	content := m.list.View()
	if m.mode != browsing {
		title := map[mode]string{adding: "Add new item", editing: "Edit item", searching: "Search"}[m.mode]
		if m.err != "" {
			title += ": " + m.theme.Error.Render(m.err)
		}
		bar := lipgloss.NewStyle().Border(m.theme.Border).BorderForeground(m.theme.BorderColor).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View())
	}
	return ui.PanelString([]string{content})
}

// Run shows the list until the user quits. Mutations made elsewhere in
// the process refresh the view.
func Run(s *todo.Store, q todo.Query) error {
	m := New(s, q)
	cancel := s.Subscribe(func(todo.Event) {
		select {
		case m.changed <- struct{}{}:
		default:
		}
	})

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	cancel()
	close(m.changed)
	return err
}
