package widget

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type refreshMsg time.Time

// Model is a Bubble Tea model that re-reads the shared location on every
// refresh tick. It only ever reads.
type Model struct {
	provider *Provider
	family   Family
	every    time.Duration
	loc      *time.Location
	entry    Entry
	loaded   bool
}

// NewModel starts from the placeholder entry until the first read.
func NewModel(p *Provider, f Family, every time.Duration) Model {
	if every <= 0 {
		every = 15 * time.Minute
	}
	return Model{provider: p, family: f, every: every, loc: time.Local, entry: p.Placeholder()}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.every, func(t time.Time) tea.Msg { return refreshMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return refreshMsg(time.Now()) }
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.entry = m.provider.Snapshot()
		m.loaded = true
		return m, m.tick()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.entry = m.provider.Snapshot()
			m.loaded = true
			return m, nil
		case "f":
			m.family = Families[(int(m.family)+1)%len(Families)]
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	return Render(Summarize(m.entry, m.family), m.family, m.loc) + "\n"
}

// Entry returns the entry currently displayed.
func (m Model) Entry() Entry { return m.entry }

// Loaded reports whether the shared location has been read at least once.
func (m Model) Loaded() bool { return m.loaded }

// Family returns the current display size.
func (m Model) Family() Family { return m.family }
