package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarrowhq/ui-verify/artifact"
	"github.com/yarrowhq/ui-verify/logger"
)

type waitArgs struct {
	target  string
	timeout time.Duration
}

// fakeDriver records every call in order and fails wherever a test
// scripts it to, so runner sequencing can be verified without a browser.
type fakeDriver struct {
	calls      []string
	fills      map[string]string
	urlWaits   []waitArgs
	selWaits   []waitArgs
	image      []byte
	closeCount int

	startErr      error
	navigateErr   error
	fillErrs      map[string]error
	clickErr      error
	waitURLErr    error
	waitSelErr    error
	screenshotErr error
	closeErr      error
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		fills:    make(map[string]string),
		fillErrs: make(map[string]error),
		image:    []byte("png-bytes"),
	}
}

func (d *fakeDriver) Start(ctx context.Context) error {
	d.calls = append(d.calls, "start")
	return d.startErr
}

func (d *fakeDriver) Navigate(ctx context.Context, url string) error {
	d.calls = append(d.calls, "navigate "+url)
	return d.navigateErr
}

func (d *fakeDriver) FillByLabel(ctx context.Context, label, value string) error {
	d.calls = append(d.calls, "fill "+label)
	if err := d.fillErrs[label]; err != nil {
		return err
	}
	d.fills[label] = value
	return nil
}

func (d *fakeDriver) ClickButton(ctx context.Context, name string) error {
	d.calls = append(d.calls, "click "+name)
	return d.clickErr
}

func (d *fakeDriver) WaitForURL(ctx context.Context, url string, timeout time.Duration) error {
	d.calls = append(d.calls, "wait-url "+url)
	d.urlWaits = append(d.urlWaits, waitArgs{target: url, timeout: timeout})
	return d.waitURLErr
}

func (d *fakeDriver) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	d.calls = append(d.calls, "wait-selector "+selector)
	d.selWaits = append(d.selWaits, waitArgs{target: selector, timeout: timeout})
	return d.waitSelErr
}

func (d *fakeDriver) Screenshot(ctx context.Context) ([]byte, error) {
	d.calls = append(d.calls, "screenshot")
	if d.screenshotErr != nil {
		return nil, d.screenshotErr
	}
	return d.image, nil
}

func (d *fakeDriver) Close() error {
	d.calls = append(d.calls, "close")
	d.closeCount++
	return d.closeErr
}

func (d *fakeDriver) called(op string) bool {
	for _, c := range d.calls {
		if c == op {
			return true
		}
	}
	return false
}

// fakeStore keeps saved artifacts in memory.
type fakeStore struct {
	saved   map[string][]byte
	saveErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string][]byte)}
}

func (s *fakeStore) Save(ctx context.Context, path string, reader io.Reader) (int64, error) {
	if s.saveErr != nil {
		return 0, s.saveErr
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	s.saved[path] = data
	return int64(len(data)), nil
}

func (s *fakeStore) Exists(ctx context.Context, path string) (bool, error) {
	_, ok := s.saved[path]
	return ok, nil
}

func (s *fakeStore) URL(ctx context.Context, path string) (string, error) {
	if _, ok := s.saved[path]; !ok {
		return "", artifact.ErrNotFound
	}
	return "/artifacts/" + path, nil
}

func TestRunner_Run_Passes(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	driver := newFakeDriver()
	store := newFakeStore()

	runner := NewRunner(cfg, driver, store, logger.NewTestLogger())
	result, err := runner.Run(ctx)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Passed())
	assert.Equal(t, StatusPassed, result.Status)
	assert.NotEqual(t, uuid.Nil, result.RunID)
	assert.Empty(t, result.FailedStep)
	assert.Empty(t, result.Cause)
	assert.Equal(t, cfg.ArtifactPath, result.ArtifactPath)
	assert.Equal(t, int64(len(driver.image)), result.ArtifactSize)
	assert.False(t, result.CompletedAt.Before(result.StartedAt))

	// Strict step order, nothing skipped, nothing repeated.
	assert.Equal(t, []string{
		"start",
		"navigate http://localhost:3000/login",
		"fill Email",
		"fill Password",
		"click Login",
		"wait-url http://localhost:3000/dashboard",
		"wait-selector .card",
		"screenshot",
		"close",
	}, driver.calls)

	assert.Equal(t, cfg.Email, driver.fills[EmailLabel])
	assert.Equal(t, cfg.Password, driver.fills[PasswordLabel])
	assert.Equal(t, driver.image, store.saved[cfg.ArtifactPath])
	assert.Equal(t, 1, driver.closeCount)
}

func TestRunner_Run_WaitBoundsComeFromConfig(t *testing.T) {
	ctx := context.Background()
	cfg := DefaultConfig()
	cfg.NavigationTimeout = 7 * time.Second
	cfg.ContentTimeout = 3 * time.Second
	driver := newFakeDriver()

	runner := NewRunner(cfg, driver, newFakeStore(), logger.NewTestLogger())
	_, err := runner.Run(ctx)
	require.NoError(t, err)

	require.Len(t, driver.urlWaits, 1)
	assert.Equal(t, cfg.DashboardURL(), driver.urlWaits[0].target)
	assert.Equal(t, 7*time.Second, driver.urlWaits[0].timeout)

	require.Len(t, driver.selWaits, 1)
	assert.Equal(t, cfg.CardSelector, driver.selWaits[0].target)
	assert.Equal(t, 3*time.Second, driver.selWaits[0].timeout)
}

func TestRunner_Run_StepFailures(t *testing.T) {
	boom := errors.New("boom")
	missing := fmt.Errorf("%w: no such control", ErrElementNotFound)
	expired := fmt.Errorf("%w: gave up", ErrWaitTimeout)

	tests := []struct {
		name       string
		setup      func(d *fakeDriver, s *fakeStore)
		wantStep   Step
		wantIs     error
		notReached string
	}{
		{
			name:       "session start fails",
			setup:      func(d *fakeDriver, s *fakeStore) { d.startErr = boom },
			wantStep:   StepAcquireSession,
			wantIs:     boom,
			notReached: "navigate http://localhost:3000/login",
		},
		{
			name:       "login page unreachable",
			setup:      func(d *fakeDriver, s *fakeStore) { d.navigateErr = boom },
			wantStep:   StepOpenLoginPage,
			wantIs:     boom,
			notReached: "fill Email",
		},
		{
			name:       "email input missing",
			setup:      func(d *fakeDriver, s *fakeStore) { d.fillErrs[EmailLabel] = missing },
			wantStep:   StepFillCredentials,
			wantIs:     ErrElementNotFound,
			notReached: "fill Password",
		},
		{
			name:       "password input missing",
			setup:      func(d *fakeDriver, s *fakeStore) { d.fillErrs[PasswordLabel] = missing },
			wantStep:   StepFillCredentials,
			wantIs:     ErrElementNotFound,
			notReached: "click Login",
		},
		{
			name:       "login button missing",
			setup:      func(d *fakeDriver, s *fakeStore) { d.clickErr = missing },
			wantStep:   StepSubmitLogin,
			wantIs:     ErrElementNotFound,
			notReached: "wait-url http://localhost:3000/dashboard",
		},
		{
			name:       "dashboard never reached",
			setup:      func(d *fakeDriver, s *fakeStore) { d.waitURLErr = expired },
			wantStep:   StepAwaitDashboard,
			wantIs:     ErrWaitTimeout,
			notReached: "wait-selector .card",
		},
		{
			name:       "no gallery card appears",
			setup:      func(d *fakeDriver, s *fakeStore) { d.waitSelErr = expired },
			wantStep:   StepAwaitCards,
			wantIs:     ErrWaitTimeout,
			notReached: "screenshot",
		},
		{
			name:     "screenshot fails",
			setup:    func(d *fakeDriver, s *fakeStore) { d.screenshotErr = boom },
			wantStep: StepCaptureArtifact,
			wantIs:   boom,
		},
		{
			name:     "artifact write fails",
			setup:    func(d *fakeDriver, s *fakeStore) { s.saveErr = boom },
			wantStep: StepCaptureArtifact,
			wantIs:   boom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			driver := newFakeDriver()
			store := newFakeStore()
			tt.setup(driver, store)

			runner := NewRunner(DefaultConfig(), driver, store, logger.NewTestLogger())
			result, err := runner.Run(context.Background())

			require.Error(t, err)
			require.NotNil(t, result)

			var stepErr *StepError
			require.ErrorAs(t, err, &stepErr)
			assert.Equal(t, tt.wantStep, stepErr.Step)
			assert.Equal(t, tt.wantStep, FailedStep(err))
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}

			assert.Equal(t, StatusFailed, result.Status)
			assert.Equal(t, tt.wantStep, result.FailedStep)
			assert.NotEmpty(t, result.Cause)

			// No artifact on any failure path.
			assert.Empty(t, result.ArtifactPath)
			assert.Empty(t, store.saved)

			// The session is always released, and later steps never run.
			assert.Equal(t, 1, driver.closeCount)
			if tt.notReached != "" {
				assert.False(t, driver.called(tt.notReached),
					"step %q should not have run after the failure", tt.notReached)
			}
		})
	}
}

func TestRunner_Run_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Email = ""
	driver := newFakeDriver()

	runner := NewRunner(cfg, driver, newFakeStore(), logger.NewTestLogger())
	result, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Equal(t, StepAcquireSession, FailedStep(err))
	assert.Equal(t, StatusFailed, result.Status)

	// Nothing was acquired, so nothing needs releasing.
	assert.Empty(t, driver.calls)
	assert.Equal(t, 0, driver.closeCount)
}

func TestRunner_Run_CloseFailureFailsPassingRun(t *testing.T) {
	driver := newFakeDriver()
	driver.closeErr = errors.New("browser refused to die")
	store := newFakeStore()

	runner := NewRunner(DefaultConfig(), driver, store, logger.NewTestLogger())
	result, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepReleaseSession, FailedStep(err))
	assert.Equal(t, StatusFailed, result.Status)

	// The evidence was already written before the close failed.
	assert.NotEmpty(t, store.saved)
	assert.Equal(t, DefaultConfig().ArtifactPath, result.ArtifactPath)
}

func TestRunner_Run_CloseFailureDoesNotMaskStepFailure(t *testing.T) {
	primary := errors.New("no login button")
	driver := newFakeDriver()
	driver.clickErr = primary
	driver.closeErr = errors.New("close also failed")

	runner := NewRunner(DefaultConfig(), driver, newFakeStore(), logger.NewTestLogger())
	_, err := runner.Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepSubmitLogin, FailedStep(err))
	assert.ErrorIs(t, err, primary)
	assert.Equal(t, 1, driver.closeCount)
}

func TestRunner_Run_OverwritesPreviousArtifact(t *testing.T) {
	ctx := context.Background()
	baseDir := t.TempDir()
	store, err := artifact.NewLocalStore(baseDir)
	require.NoError(t, err)

	cfg := DefaultConfig()

	first := newFakeDriver()
	first.image = []byte("evidence from the first run")
	_, err = NewRunner(cfg, first, store, logger.NewTestLogger()).Run(ctx)
	require.NoError(t, err)

	second := newFakeDriver()
	second.image = []byte("run two")
	result, err := NewRunner(cfg, second, store, logger.NewTestLogger()).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(len(second.image)), result.ArtifactSize)

	content, err := os.ReadFile(filepath.Join(baseDir, cfg.ArtifactPath))
	require.NoError(t, err)
	assert.Equal(t, second.image, content)

	fileCount := 0
	err = filepath.WalkDir(baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			fileCount++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fileCount, "repeated runs must not accumulate artifact files")
}

func TestFailedStep(t *testing.T) {
	stepErr := &StepError{Step: StepAwaitCards, Err: errors.New("boom")}
	assert.Equal(t, StepAwaitCards, FailedStep(stepErr))
	assert.Equal(t, StepAwaitCards, FailedStep(fmt.Errorf("run failed: %w", stepErr)))
	assert.Equal(t, Step(""), FailedStep(errors.New("plain error")))
	assert.Equal(t, Step(""), FailedStep(nil))
}

func TestStepError(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StepError{Step: StepOpenLoginPage, Err: cause}

	assert.Equal(t, "step open_login_page: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
}
