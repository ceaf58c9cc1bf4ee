// Package runlog persists the outcome of verification runs so that
// past results can be listed and inspected after the fact.
package runlog

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yarrowhq/ui-verify/scenario"
)

var (
	// ErrRunNotFound is returned when a run is not found.
	ErrRunNotFound = errors.New("run not found")

	// ErrInvalidTargetURL is returned when target_url is not set.
	ErrInvalidTargetURL = errors.New("target_url is required")

	// ErrInvalidStatus is returned when status is invalid.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrRunFinished is returned when trying to finish a run that already
	// has a final status.
	ErrRunFinished = errors.New("run already finished")
)

// Status represents the status of a verification run.
type Status string

const (
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
)

// IsValid checks if the status is valid.
func (s Status) IsValid() bool {
	switch s {
	case StatusRunning, StatusPassed, StatusFailed:
		return true
	default:
		return false
	}
}

// IsFinal checks if the status is a final status (can't be changed).
func (s Status) IsFinal() bool {
	return s == StatusPassed || s == StatusFailed
}

// Run represents a single recorded verification run.
type Run struct {
	ID           uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Status       Status     `json:"status" gorm:"type:varchar(20);not null;default:'running';index:idx_status"`
	TargetURL    string     `json:"target_url" gorm:"type:varchar(512);not null"`
	FailedStep   string     `json:"failed_step,omitempty" gorm:"type:varchar(64)"`
	Cause        string     `json:"cause,omitempty" gorm:"type:text"`
	ArtifactPath string     `json:"artifact_path,omitempty" gorm:"type:varchar(512)"`
	ArtifactSize int64      `json:"artifact_size,omitempty"`
	StartedAt    time.Time  `json:"started_at" gorm:"index:idx_started_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// BeforeCreate hook to generate UUID before creating a new run
func (r *Run) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Validate checks if the run has valid required fields.
func (r *Run) Validate() error {
	if r.TargetURL == "" {
		return ErrInvalidTargetURL
	}
	if !r.Status.IsValid() {
		return ErrInvalidStatus
	}
	return nil
}

// Pass sets the completed_at timestamp, records the artifact, and changes
// status to passed. Returns an error if the run has already finished.
func (r *Run) Pass(artifactPath string, artifactSize int64) error {
	if r.Status.IsFinal() {
		return ErrRunFinished
	}
	now := time.Now()
	r.CompletedAt = &now
	r.Status = StatusPassed
	r.ArtifactPath = artifactPath
	r.ArtifactSize = artifactSize
	return nil
}

// Fail sets the completed_at timestamp, records the failed step and its
// cause, and changes status to failed. Returns an error if the run has
// already finished.
func (r *Run) Fail(failedStep, cause string) error {
	if r.Status.IsFinal() {
		return ErrRunFinished
	}
	now := time.Now()
	r.CompletedAt = &now
	r.Status = StatusFailed
	r.FailedStep = failedStep
	r.Cause = cause
	return nil
}

// Duration reports how long the run took. Returns zero while the run is
// still in progress.
func (r *Run) Duration() time.Duration {
	if r.CompletedAt == nil {
		return 0
	}
	return r.CompletedAt.Sub(r.StartedAt)
}

// FromResult converts a finished scenario result into a run record that
// preserves the result's identifiers and timestamps.
func FromResult(res *scenario.Result) *Run {
	completed := res.CompletedAt
	run := &Run{
		ID:           res.RunID,
		TargetURL:    res.TargetURL,
		FailedStep:   string(res.FailedStep),
		Cause:        res.Cause,
		ArtifactPath: res.ArtifactPath,
		ArtifactSize: res.ArtifactSize,
		StartedAt:    res.StartedAt,
		CompletedAt:  &completed,
	}
	if res.Passed() {
		run.Status = StatusPassed
	} else {
		run.Status = StatusFailed
	}
	return run
}
