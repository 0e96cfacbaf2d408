package wizard

import "errors"

var (
	// ErrBusy is returned by Submit while another submission is in flight.
	ErrBusy = errors.New("a submission is already in progress")

	// ErrSubmissionRequired is returned by Advance on a step that can only
	// be left through Submit.
	ErrSubmissionRequired = errors.New("this step must be submitted")

	// ErrNotSubmitStep is returned by Submit on a step that does not submit.
	ErrNotSubmitStep = errors.New("the current step does not submit")

	ErrNoSteps = errors.New("wizard needs at least one step")
)

// SubmitError wraps a failed remote write. The wizard stays on the
// submitting step with every value intact, so the same submission can be
// retried.
type SubmitError struct {
	Err error
}

func (e *SubmitError) Error() string {
	return "saving your information failed: " + e.Err.Error()
}

func (e *SubmitError) Unwrap() error {
	return e.Err
}
