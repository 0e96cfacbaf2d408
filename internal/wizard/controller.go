package wizard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/logger"
)

// Controller owns the current step index of one wizard session. The index
// only changes through Advance, Retreat and a successful Submit, and never
// leaves [0, Total()-1].
type Controller struct {
	mu      sync.Mutex
	steps   []Step
	current int
	busy    bool
	form    *FormState
	checker *checker
	log     *zerolog.Logger
}

type Option func(*Controller)

func WithLogger(l *zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

// New starts a session on the first step. A nil form gets a fresh container.
func New(steps []Step, form *FormState, opts ...Option) (*Controller, error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	chk, err := newChecker()
	if err != nil {
		return nil, err
	}
	if form == nil {
		form = NewFormState()
	}

	c := &Controller{
		steps:   steps,
		form:    form,
		checker: chk,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = logger.New(logger.WithLevel("disabled"))
	}
	return c, nil
}

func (c *Controller) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Total() int { return len(c.steps) }

func (c *Controller) Current() Step {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current]
}

// Form returns the shared container every step reads from and writes into.
func (c *Controller) Form() *FormState { return c.form }

// Complete reports whether the session reached the terminal step.
func (c *Controller) Complete() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.steps[c.current].Terminal || c.current == len(c.steps)-1
}

func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// ValidateStep evaluates the rule table of the step at index against the
// current form values. It returns nil when all fields are accepted or the
// index is out of range.
func (c *Controller) ValidateStep(index int) FieldErrors {
	if index < 0 || index >= len(c.steps) {
		return nil
	}
	return validateStep(c.checker, c.steps[index], c.form)
}

// Advance moves to the next step once the current one validates. It is a
// no-op on the last step. A submitting step refuses with
// ErrSubmissionRequired; use Submit instead.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy {
		return ErrBusy
	}
	step := c.steps[c.current]
	if step.Terminal || c.current == len(c.steps)-1 {
		return nil
	}
	if step.Submits {
		return ErrSubmissionRequired
	}
	if errs := validateStep(c.checker, step, c.form); errs != nil {
		c.log.Debug().Str("step", step.ID.String()).Int("violations", len(errs)).Msg("Step rejected")
		return errs
	}

	c.current++
	c.log.Debug().Str("step", c.steps[c.current].ID.String()).Msg("Advanced")
	return nil
}

// Retreat moves to the previous step. It is a no-op on the first step, on
// the terminal step and while a submission is in flight.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy || c.current == 0 || c.steps[c.current].Terminal {
		return
	}
	c.current--
	c.log.Debug().Str("step", c.steps[c.current].ID.String()).Msg("Went back")
}

// Submit validates the submitting step, hands the accumulated values to fn
// and, only once fn succeeds, clears the form and advances one step. On
// failure nothing changes and the returned *SubmitError wraps fn's error,
// so the same values can be submitted again. A Submit issued while
// another is in flight returns ErrBusy.
func (c *Controller) Submit(ctx context.Context, fn SubmitFunc) error {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return ErrBusy
	}
	step := c.steps[c.current]
	if !step.Submits {
		c.mu.Unlock()
		return ErrNotSubmitStep
	}
	if errs := validateStep(c.checker, step, c.form); errs != nil {
		c.mu.Unlock()
		return errs
	}
	c.busy = true
	index := c.current
	payload := BuildSubmission(c.form)
	c.mu.Unlock()

	err := fn(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	if err != nil {
		c.log.Debug().Err(err).Msg("Submission failed")
		return &SubmitError{Err: err}
	}

	c.form.Reset()
	if index+1 < len(c.steps) {
		c.current = index + 1
	}
	c.log.Debug().Str("step", c.steps[c.current].ID.String()).Msg("Submitted")
	return nil
}
