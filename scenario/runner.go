package scenario

import (
	"bytes"
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yarrowhq/ui-verify/artifact"
	"github.com/yarrowhq/ui-verify/logger"
)

// Runner executes the fixed login verification sequence: open the login
// page, authenticate with the configured credentials, wait for the
// dashboard redirect and the first gallery card, then capture a
// full-page screenshot as evidence. Steps run strictly in order; the
// first failure aborts the sequence and the browsing session is
// released on every path.
type Runner struct {
	cfg       Config
	driver    Driver
	artifacts artifact.Store
	logger    logger.Logger
}

// NewRunner creates a runner for one verification scenario. The driver
// must be unstarted; the runner owns its whole lifecycle.
func NewRunner(cfg Config, driver Driver, artifacts artifact.Store, log logger.Logger) *Runner {
	return &Runner{
		cfg:       cfg,
		driver:    driver,
		artifacts: artifacts,
		logger:    log,
	}
}

// Run executes the scenario once. A Result is returned on every run;
// the error is non-nil exactly when the run failed and always wraps a
// StepError naming the step that raised. The run is terminal: no retry,
// no resumption.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{
		RunID:     uuid.New(),
		TargetURL: r.cfg.BaseURL,
		StartedAt: time.Now(),
	}

	err := r.execute(ctx, result)
	result.CompletedAt = time.Now()

	if err != nil {
		result.Status = StatusFailed
		result.FailedStep = FailedStep(err)
		result.Cause = err.Error()
		r.logger.Error(ctx, "verification failed", map[string]interface{}{
			"run_id":      result.RunID.String(),
			"failed_step": string(result.FailedStep),
			"error":       err.Error(),
		})
		return result, err
	}

	result.Status = StatusPassed
	r.logger.Info(ctx, "verification passed", map[string]interface{}{
		"run_id":        result.RunID.String(),
		"artifact_path": result.ArtifactPath,
		"artifact_size": result.ArtifactSize,
		"duration_ms":   result.Duration().Milliseconds(),
	})
	return result, nil
}

// execute drives the eight steps. The deferred close runs whether the
// steps succeeded or raised; a close failure on an otherwise clean run
// fails the run, since a leaked browser process is itself a defect.
func (r *Runner) execute(ctx context.Context, result *Result) (err error) {
	if verr := r.cfg.Validate(); verr != nil {
		return &StepError{Step: StepAcquireSession, Err: verr}
	}

	log := r.logger.WithField("run_id", result.RunID.String())

	log.Info(ctx, "acquiring browser session", nil)
	startErr := r.driver.Start(ctx)
	defer func() {
		cerr := r.driver.Close()
		if cerr == nil {
			return
		}
		if err == nil {
			err = &StepError{Step: StepReleaseSession, Err: cerr}
			return
		}
		log.Warn(ctx, "session close failed after earlier error", map[string]interface{}{
			"close_error": cerr.Error(),
		})
	}()
	if startErr != nil {
		return &StepError{Step: StepAcquireSession, Err: startErr}
	}

	loginURL := r.cfg.LoginURL()
	log.Info(ctx, "opening login page", map[string]interface{}{"url": loginURL})
	if err := r.driver.Navigate(ctx, loginURL); err != nil {
		return &StepError{Step: StepOpenLoginPage, Err: err}
	}

	log.Debug(ctx, "filling credentials", map[string]interface{}{"email": r.cfg.Email})
	if err := r.driver.FillByLabel(ctx, EmailLabel, r.cfg.Email); err != nil {
		return &StepError{Step: StepFillCredentials, Err: err}
	}
	if err := r.driver.FillByLabel(ctx, PasswordLabel, r.cfg.Password); err != nil {
		return &StepError{Step: StepFillCredentials, Err: err}
	}

	log.Debug(ctx, "submitting login form", nil)
	if err := r.driver.ClickButton(ctx, LoginButtonName); err != nil {
		return &StepError{Step: StepSubmitLogin, Err: err}
	}

	dashboardURL := r.cfg.DashboardURL()
	log.Debug(ctx, "waiting for post-login redirect", map[string]interface{}{
		"url":     dashboardURL,
		"timeout": r.cfg.NavigationTimeout.String(),
	})
	if err := r.driver.WaitForURL(ctx, dashboardURL, r.cfg.NavigationTimeout); err != nil {
		return &StepError{Step: StepAwaitDashboard, Err: err}
	}

	log.Debug(ctx, "waiting for gallery cards", map[string]interface{}{
		"selector": r.cfg.CardSelector,
		"timeout":  r.cfg.ContentTimeout.String(),
	})
	if err := r.driver.WaitForSelector(ctx, r.cfg.CardSelector, r.cfg.ContentTimeout); err != nil {
		return &StepError{Step: StepAwaitCards, Err: err}
	}

	log.Debug(ctx, "capturing screenshot", nil)
	img, serr := r.driver.Screenshot(ctx)
	if serr != nil {
		return &StepError{Step: StepCaptureArtifact, Err: serr}
	}
	size, serr := r.artifacts.Save(ctx, r.cfg.ArtifactPath, bytes.NewReader(img))
	if serr != nil {
		return &StepError{Step: StepCaptureArtifact, Err: serr}
	}
	result.ArtifactPath = r.cfg.ArtifactPath
	result.ArtifactSize = size

	log.Info(ctx, "artifact written", map[string]interface{}{
		"path": result.ArtifactPath,
		"size": size,
	})
	return nil
}
