package selector

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// List prompts with an inline bubbletea list. Arrow keys or j/k move,
// enter selects, esc or q abandons, ctrl+c interrupts. Long lists scroll
// inside the terminal height.
type List struct {
	// In defaults to stdin.
	In io.Reader
	// Out is where the list is drawn, normally stderr.
	Out   io.Writer
	Theme Theme
}

// Select runs the list until the operator decides. ok is false when the
// prompt was abandoned.
func (l *List) Select(ctx context.Context, prompt string, items []string) (index int, ok bool, err error) {
	if len(items) == 0 {
		return 0, false, fmt.Errorf("nothing to select")
	}

	// Signals belong to terminal.Guard, which restores the tty and exits.
	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithoutSignalHandler()}
	if l.In != nil {
		opts = append(opts, tea.WithInput(l.In))
	}
	if l.Out != nil {
		opts = append(opts, tea.WithOutput(l.Out))
	}

	final, err := tea.NewProgram(newListModel(prompt, items, l.Theme), opts...).Run()
	if err != nil {
		return 0, false, fmt.Errorf("reading selection: %w", err)
	}

	m := final.(listModel)
	switch m.outcome {
	case outcomeChosen:
		return m.cursor, true, nil
	case outcomeAbandoned:
		return 0, false, nil
	default:
		return 0, false, ErrInterrupted
	}
}

type outcome int

const (
	outcomePending outcome = iota
	outcomeChosen
	outcomeAbandoned
	outcomeInterrupted
)

// chromeLines is the prompt line, the help line, and one spare line for
// the terminal cursor below the inline view.
const chromeLines = 3

type listModel struct {
	prompt  string
	items   []string
	cursor  int
	offset  int
	height  int // terminal rows; 0 until the first WindowSizeMsg
	outcome outcome
	keys    KeyMap
	styles  styles
}

func newListModel(prompt string, items []string, theme Theme) listModel {
	if theme == (Theme{}) {
		theme = DefaultTheme()
	}
	return listModel{
		prompt: prompt,
		items:  items,
		keys:   DefaultKeyMap,
		styles: theme.styles(),
	}
}

func (m listModel) Init() tea.Cmd {
	return nil
}

// visible is the number of item rows that fit on screen.
func (m listModel) visible() int {
	if m.height <= 0 {
		return len(m.items)
	}
	return max(1, min(len(m.items), m.height-chromeLines))
}

// scroll keeps the cursor inside the window.
func (m *listModel) scroll() {
	rows := m.visible()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = max(0, min(m.offset, len(m.items)-rows))
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.scroll()
		return m, nil
	case tea.KeyMsg:
		return m.updateKey(msg)
	}
	return m, nil
}

func (m listModel) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	last := len(m.items) - 1
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		m.outcome = outcomeInterrupted
		return m, tea.Quit
	case key.Matches(msg, m.keys.Skip):
		m.outcome = outcomeAbandoned
		return m, tea.Quit
	case key.Matches(msg, m.keys.Select):
		m.outcome = outcomeChosen
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		} else {
			m.cursor = last
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < last {
			m.cursor++
		} else {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.PageUp):
		m.cursor = max(0, m.cursor-m.visible())
	case key.Matches(msg, m.keys.PageDown):
		m.cursor = min(last, m.cursor+m.visible())
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = last
	}
	m.scroll()
	return m, nil
}

func (m listModel) View() string {
	var b strings.Builder

	// Once decided, collapse to a single summary line so the scrollback
	// keeps a record of every answer.
	switch m.outcome {
	case outcomeChosen:
		b.WriteString(m.styles.prompt.Render(m.prompt))
		b.WriteString(" · ")
		b.WriteString(m.styles.chosen.Render(m.items[m.cursor]))
		b.WriteString("\n")
		return b.String()
	case outcomeAbandoned, outcomeInterrupted:
		label := "skipped"
		if m.outcome == outcomeInterrupted {
			label = "interrupted"
		}
		b.WriteString(m.styles.prompt.Render(m.prompt))
		b.WriteString(" · ")
		b.WriteString(m.styles.help.Render(label))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.styles.prompt.Render(m.prompt))
	b.WriteString("\n")
	end := min(len(m.items), m.offset+m.visible())
	for i := m.offset; i < end; i++ {
		if i == m.cursor {
			b.WriteString(m.styles.active.Render("> " + m.items[i]))
		} else {
			b.WriteString(m.styles.inactive.Render("  " + m.items[i]))
		}
		b.WriteString("\n")
	}

	help := "↑/↓ move · enter select · esc/q skip"
	if end-m.offset < len(m.items) {
		help = fmt.Sprintf("(%d/%d) %s", m.cursor+1, len(m.items), help)
	}
	b.WriteString(m.styles.help.Render(help))
	b.WriteString("\n")
	return b.String()
}
