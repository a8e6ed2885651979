// Package tracetui is an interactive pager over a recorded instruction
// trace. It knows nothing about 6502 semantics: it pages through a slice
// of already-formatted trace lines and, alongside each, dumps the CPU
// snapshot captured at that step with go-spew.
package tracetui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"nescore/cpu"
)

// Step pairs one emitted trace line with the register snapshot taken
// right after that instruction executed.
type Step struct {
	Line     string
	Snapshot cpu.Snapshot
}

var (
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type model struct {
	steps  []Step
	cursor int
	quit   bool
}

// Init performs no startup command; the trace is already fully recorded.
func (m model) Init() tea.Cmd { return nil }

// Update handles the pager's keybindings: q to quit, space/j to step
// forward, k to step back.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "ctrl+c":
		m.quit = true
		return m, tea.Quit
	case " ", "j":
		if m.cursor < len(m.steps)-1 {
			m.cursor++
		}
	case "k":
		if m.cursor > 0 {
			m.cursor--
		}
	}
	return m, nil
}

func (m model) window() string {
	var b strings.Builder
	const radius = 5
	lo := m.cursor - radius
	if lo < 0 {
		lo = 0
	}
	hi := m.cursor + radius
	if hi >= len(m.steps) {
		hi = len(m.steps) - 1
	}
	for i := lo; i <= hi; i++ {
		line := m.steps[i].Line
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(fmt.Sprintf("> %s", line)))
		} else {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %s", line)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// View renders the surrounding trace window above a go-spew dump of the
// current step's register snapshot.
func (m model) View() string {
	if len(m.steps) == 0 {
		return "no trace recorded\n"
	}
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.window(),
		"",
		spew.Sdump(m.steps[m.cursor].Snapshot),
		"j/space next · k prev · q quit",
	)
}

// Run starts the interactive pager over a recorded trace. It blocks until
// the user quits.
func Run(steps []Step) error {
	_, err := tea.NewProgram(model{steps: steps}).Run()
	if err != nil {
		return fmt.Errorf("tracetui: %w", err)
	}
	return nil
}
