package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

var (
	promptStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	itemStyle         = lipgloss.NewStyle().PaddingLeft(2)
	selectedItemStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	matchStyle        = lipgloss.NewStyle().Underline(true)
	countStyle        = lipgloss.NewStyle().Faint(true)
)

// entry is one visible row: the index into the original items and the byte
// offsets the query matched.
type entry struct {
	index   int
	matched []int
}

type model struct {
	prompt string
	items  []string
	input  textinput.Model

	entries []entry
	cursor  int
	offset  int
	height  int

	chosen    int
	cancelled bool
	done      bool
}

func newModel(prompt string, items []string, defaultIndex, height int) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.Focus()

	if height <= 0 {
		height = DefaultHeight
	}

	m := model{
		prompt: prompt,
		items:  items,
		input:  ti,
		height: height,
		chosen: -1,
	}
	m.refilter()
	m.cursor = defaultIndex
	m.scroll()
	return m
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			m.chosen = m.entries[m.cursor].index
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k", "shift+tab":
			if m.cursor > 0 {
				m.cursor--
			}
			m.scroll()
			return m, nil
		case "down", "ctrl+n", "ctrl+j", "tab":
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
			m.scroll()
			return m, nil
		}
	case tea.WindowSizeMsg:
		// prompt line, input line, count line
		if h := msg.Height - 3; h > 0 && h < m.height {
			m.height = h
		}
		m.scroll()
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refilter()
		m.cursor = 0
		m.offset = 0
	}
	return m, cmd
}

// refilter recomputes the visible entries for the current query. An empty
// query shows every item in its original order; otherwise items are ranked
// by fuzzy score.
func (m *model) refilter() {
	query := m.input.Value()
	if query == "" {
		m.entries = make([]entry, len(m.items))
		for i := range m.items {
			m.entries[i] = entry{index: i}
		}
		return
	}

	matches := fuzzy.Find(query, m.items)
	m.entries = make([]entry, len(matches))
	for i, mt := range matches {
		m.entries[i] = entry{index: mt.Index, matched: mt.MatchedIndexes}
	}
}

// scroll keeps the cursor inside the visible window.
func (m *model) scroll() {
	if len(m.entries) == 0 {
		m.cursor, m.offset = 0, 0
		return
	}
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	end := m.offset + m.height
	if end > len(m.entries) {
		end = len(m.entries)
	}
	for i := m.offset; i < end; i++ {
		e := m.entries[i]
		label := highlight(m.items[e.index], e.matched)
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("> ") + label)
		} else {
			b.WriteString(itemStyle.Render(label))
		}
		b.WriteString("\n")
	}

	b.WriteString(countStyle.Render(fmt.Sprintf("  %d/%d", len(m.entries), len(m.items))))
	return b.String()
}

// highlight renders s with the bytes at matched offsets emphasised.
func highlight(s string, matched []int) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
