package scenario

import (
	"errors"
	"fmt"
)

var (
	// ErrElementNotFound is wrapped by driver failures to locate an
	// expected control: a labeled input or a named button missing from
	// the login form.
	ErrElementNotFound = errors.New("element not found")

	// ErrWaitTimeout is wrapped by driver failures where a bounded wait
	// expired: the post-login redirect never happened or no gallery
	// card appeared in time.
	ErrWaitTimeout = errors.New("wait timed out")
)

// StepError reports which verification step failed and why. The step
// identifies the failure class: acquire_session is an environment
// problem, open_login_page a navigation problem, fill_credentials and
// submit_login missing controls, the await steps expired waits, and
// capture_artifact a screenshot or file-write problem.
type StepError struct {
	Step Step
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %s: %v", e.Step, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// FailedStep extracts the step from an error returned by Runner.Run.
// It returns an empty step if the error carries no step information.
func FailedStep(err error) Step {
	var stepErr *StepError
	if errors.As(err, &stepErr) {
		return stepErr.Step
	}
	return ""
}
