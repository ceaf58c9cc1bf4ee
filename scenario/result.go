package scenario

import (
	"time"

	"github.com/google/uuid"
)

// Step identifies one stage of the fixed verification sequence.
type Step string

const (
	StepAcquireSession  Step = "acquire_session"
	StepOpenLoginPage   Step = "open_login_page"
	StepFillCredentials Step = "fill_credentials"
	StepSubmitLogin     Step = "submit_login"
	StepAwaitDashboard  Step = "await_dashboard"
	StepAwaitCards      Step = "await_cards"
	StepCaptureArtifact Step = "capture_artifact"
	StepReleaseSession  Step = "release_session"
)

// Status represents the outcome of a verification run.
type Status string

const (
	StatusPassed Status = "passed"
	StatusFailed Status = "failed"
)

// Result is the tagged outcome of one verification run: either passed
// with the artifact location and size, or failed with the step that
// raised and its cause. A Result is produced on every run, success or
// not, so callers can report without re-deriving state from errors.
type Result struct {
	RunID        uuid.UUID `json:"run_id"`
	Status       Status    `json:"status"`
	TargetURL    string    `json:"target_url"`
	FailedStep   Step      `json:"failed_step,omitempty"`
	Cause        string    `json:"cause,omitempty"`
	ArtifactPath string    `json:"artifact_path,omitempty"`
	ArtifactSize int64     `json:"artifact_size,omitempty"`
	StartedAt    time.Time `json:"started_at"`
	CompletedAt  time.Time `json:"completed_at"`
}

// Passed reports whether the run reached the artifact-written state.
func (r *Result) Passed() bool {
	return r.Status == StatusPassed
}

// Duration returns how long the run took, start to completion.
func (r *Result) Duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}
