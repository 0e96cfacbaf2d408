package ui

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorViolet500))

// Spinner shows activity on stderr while network calls are in flight.
// Start and Stop are reference counted: nested operations keep a single
// spinner running until the outermost one stops.
type Spinner struct {
	mu      sync.Mutex
	count   int
	program *tea.Program
	isTTY   bool
	out     io.Writer
	quitCh  chan struct{}
}

type spinnerModel struct {
	spinner spinner.Model
	message string
	done    bool
}

type msgUpdate string
type msgQuit struct{}

func newSpinnerModel(message string) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = spinnerStyle
	return spinnerModel{spinner: s, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case msgUpdate:
		m.message = string(msg)
		return m, nil
	case msgQuit:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), DimStyle.Render(m.message))
}

func NewSpinner() *Spinner {
	return &Spinner{
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
		out:   os.Stderr,
	}
}

// Start shows message, replacing the message of a running spinner.
// Each Start must be paired with a Stop.
func (s *Spinner) Start(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	if s.program != nil {
		s.program.Send(msgUpdate(message))
		return
	}
	if !s.isTTY {
		fmt.Fprintln(s.out, DimStyle.Render(message))
		return
	}

	s.quitCh = make(chan struct{})
	s.program = tea.NewProgram(newSpinnerModel(message), tea.WithOutput(s.out), tea.WithInput(nil))

	program, quitCh := s.program, s.quitCh
	go func() {
		_, _ = program.Run()
		close(quitCh)
	}()
}

// Stop ends one operation and removes the spinner once none remain.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if s.count > 0 {
		s.count--
	}
	if s.count > 0 || s.program == nil {
		s.mu.Unlock()
		return
	}

	program, quitCh := s.program, s.quitCh
	s.program = nil
	s.mu.Unlock()

	program.Send(msgQuit{})
	<-quitCh
}

// Run executes fn while showing message.
func (s *Spinner) Run(message string, fn func() error) error {
	s.Start(message)
	defer s.Stop()
	return fn()
}

// WithSpinner executes fn while showing a new spinner.
func WithSpinner(message string, fn func() error) error {
	return NewSpinner().Run(message, fn)
}

// WithSpinnerResult executes fn, which returns a value, while showing a spinner.
func WithSpinnerResult[T any](message string, fn func() (T, error)) (T, error) {
	s := NewSpinner()
	s.Start(message)
	defer s.Stop()
	return fn()
}
