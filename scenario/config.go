package scenario

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Accessible identities of the login controls. These belong to the
// scenario itself rather than to deployment configuration: a renamed
// label or button is exactly the markup regression the verification
// exists to catch.
const (
	EmailLabel      = "Email"
	PasswordLabel   = "Password"
	LoginButtonName = "Login"
)

// Defaults for the verification target. These are the values the
// scenario was written against; tests and other deployments override
// them through Config.
const (
	DefaultBaseURL           = "http://localhost:3000"
	DefaultLoginPath         = "/login"
	DefaultDashboardPath     = "/dashboard"
	DefaultEmail             = "photographer@yarrow.com"
	DefaultPassword          = "yarrow"
	DefaultCardSelector      = ".card"
	DefaultArtifactPath      = "jules-scratch/verification/verification.png"
	DefaultNavigationTimeout = 30 * time.Second
	DefaultContentTimeout    = 10 * time.Second
)

var (
	// ErrInvalidBaseURL is returned when the base URL is missing or unparseable.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrInvalidPagePath is returned when a page path does not start with "/".
	ErrInvalidPagePath = errors.New("page path must start with /")

	// ErrMissingCredentials is returned when the email or password is empty.
	ErrMissingCredentials = errors.New("credentials are required")

	// ErrMissingCardSelector is returned when the content selector is empty.
	ErrMissingCardSelector = errors.New("card selector is required")

	// ErrMissingArtifactPath is returned when the artifact path is empty.
	ErrMissingArtifactPath = errors.New("artifact path is required")

	// ErrInvalidTimeout is returned when a wait timeout is zero or negative.
	ErrInvalidTimeout = errors.New("wait timeouts must be positive")
)

// Config holds the fixed inputs of the verification scenario: where the
// target runs, which credentials to submit, what to wait for, and where
// the evidence goes. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// BaseURL is the root of the target application, scheme and host.
	BaseURL string

	// LoginPath and DashboardPath are appended to BaseURL to form the
	// login page URL and the expected post-login URL.
	LoginPath     string
	DashboardPath string

	// Email and Password are submitted through the login form.
	Email    string
	Password string

	// CardSelector matches the gallery card elements whose appearance
	// signals that the dashboard content finished rendering.
	CardSelector string

	// NavigationTimeout bounds the wait for the post-login redirect.
	// The wait is always explicit; there is no unbounded fallback.
	NavigationTimeout time.Duration

	// ContentTimeout bounds the wait for the first gallery card.
	ContentTimeout time.Duration

	// ArtifactPath is where the screenshot is written, relative to the
	// artifact store's base directory. Overwritten on every run.
	ArtifactPath string
}

// DefaultConfig returns the scenario configuration for the standard
// local verification target.
func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		LoginPath:         DefaultLoginPath,
		DashboardPath:     DefaultDashboardPath,
		Email:             DefaultEmail,
		Password:          DefaultPassword,
		CardSelector:      DefaultCardSelector,
		NavigationTimeout: DefaultNavigationTimeout,
		ContentTimeout:    DefaultContentTimeout,
		ArtifactPath:      DefaultArtifactPath,
	}
}

// LoginURL returns the full URL of the login page.
func (c Config) LoginURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.LoginPath
}

// DashboardURL returns the exact URL the browser must reach after a
// successful login.
func (c Config) DashboardURL() string {
	return strings.TrimRight(c.BaseURL, "/") + c.DashboardPath
}

// Validate checks that the configuration describes a runnable scenario.
func (c Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: base URL is empty", ErrInvalidBaseURL)
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: %q has no scheme or host", ErrInvalidBaseURL, c.BaseURL)
	}
	if !strings.HasPrefix(c.LoginPath, "/") {
		return fmt.Errorf("%w: login path %q", ErrInvalidPagePath, c.LoginPath)
	}
	if !strings.HasPrefix(c.DashboardPath, "/") {
		return fmt.Errorf("%w: dashboard path %q", ErrInvalidPagePath, c.DashboardPath)
	}
	if c.Email == "" || c.Password == "" {
		return ErrMissingCredentials
	}
	if c.CardSelector == "" {
		return ErrMissingCardSelector
	}
	if c.NavigationTimeout <= 0 || c.ContentTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ArtifactPath == "" {
		return ErrMissingArtifactPath
	}
	return nil
}
