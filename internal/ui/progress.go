package ui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user interrupts a progress display.
var ErrCancelled = errors.New("cancelled")

type progressMsg float64

type progressDoneMsg struct{ err error }

type progressModel struct {
	progress progress.Model
	message  string
	percent  float64
	done     bool
	err      error
}

func (m progressModel) Init() tea.Cmd {
	return nil
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case progressMsg:
		m.percent = float64(msg)
		return m, nil
	case progressDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	pad := strings.Repeat(" ", 2)
	return "\n" + pad + DimStyle.Render(m.message) + "\n" + pad + m.progress.ViewAs(m.percent) + "\n"
}

// RunWithProgress runs fn while drawing a progress bar on stderr. fn reports
// its progress as a ratio between 0 and 1. Without a terminal fn runs with
// the message printed once.
func RunWithProgress(message string, fn func(report func(ratio float64)) error) error {
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		fmt.Fprintln(os.Stderr, DimStyle.Render(message))
		return fn(func(float64) {})
	}

	m := progressModel{
		progress: progress.New(
			progress.WithScaledGradient(ColorViolet600, ColorViolet300),
			progress.WithWidth(40),
		),
		message: message,
	}
	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))

	errCh := make(chan error, 1)
	go func() {
		err := fn(func(ratio float64) { p.Send(progressMsg(clamp(ratio))) })
		p.Send(progressDoneMsg{err: err})
		errCh <- err
	}()

	finalModel, runErr := p.Run()
	if runErr != nil {
		return errors.Join(runErr, <-errCh)
	}
	if fm, ok := finalModel.(progressModel); ok && !fm.done {
		return ErrCancelled
	}
	return <-errCh
}

// FormatBytes formats a byte count in binary units.
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

func clamp(ratio float64) float64 {
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}
