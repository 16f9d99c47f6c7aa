package probe

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var labelStyle = lipgloss.NewStyle().Faint(true)

type tickMsg time.Time

type spinnerModel struct {
	h         checker
	spin      spinner.Model
	remaining time.Duration
	result    *Result
}

func runWithSpinner(h checker, timeout time.Duration, out *os.File) Result {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	m := spinnerModel{h: h, spin: s, remaining: timeout}

	p := tea.NewProgram(m, tea.WithOutput(out))
	final, err := p.Run()
	if err != nil {
		// The terminal program couldn't start; degrade to a silent poll
		// rather than losing the probe outcome entirely.
		return poll(h, timeout, nil)
	}
	fm := final.(spinnerModel)
	if fm.result != nil {
		return *fm.result
	}
	return Result{Outcome: Healthy}
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, tickCmd())
}

func tickCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tickMsg:
		if rc, ok := m.h.ReturnCode(); ok {
			r := resultFor(m.h, rc)
			m.result = &r
			return m, tea.Quit
		}
		m.remaining -= pollInterval
		if m.remaining <= 0 {
			r := Result{Outcome: Healthy}
			m.result = &r
			return m, tea.Quit
		}
		return m, tickCmd()
	case tea.KeyMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m spinnerModel) View() string {
	secs := int(math.Ceil(m.remaining.Seconds()))
	return fmt.Sprintf("%s %s\n", m.spin.View(), labelStyle.Render(fmt.Sprintf("waiting for fast failure (%ds)", secs)))
}
