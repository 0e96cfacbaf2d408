package ui

import (
	"fmt"
	"io"
	"os"
)

// Notifier shows short fire-and-forget messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Console writes notifications as styled lines.
type Console struct {
	w io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

func (c *Console) Success(msg string) {
	fmt.Fprintln(c.w, SuccessStyle.Render("✓ "+msg))
}

func (c *Console) Error(msg string) {
	fmt.Fprintln(c.w, ErrorStyle.Render("✗ "+msg))
}

// Discard drops every notification.
type Discard struct{}

func (Discard) Success(string) {}
func (Discard) Error(string)   {}

// Recorder keeps notifications in memory.
type Recorder struct {
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) { r.Successes = append(r.Successes, msg) }
func (r *Recorder) Error(msg string)   { r.Errors = append(r.Errors, msg) }
