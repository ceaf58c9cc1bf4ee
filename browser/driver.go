// Package browser drives a real headless Chromium through playwright,
// implementing the session the verification scenario runs against.
package browser

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/yarrowhq/ui-verify/logger"
	"github.com/yarrowhq/ui-verify/scenario"
)

// Config holds browser session configuration.
type Config struct {
	Headless       bool
	ViewportWidth  int
	ViewportHeight int

	// ExecutablePath points at a Chromium binary to use instead of the
	// playwright-managed one. Empty means the managed browser.
	ExecutablePath string

	// ActionTimeout bounds element interactions such as fill and click.
	// Explicit waits carry their own deadlines.
	ActionTimeout time.Duration
}

// DefaultConfig returns the browser configuration used for verification runs.
func DefaultConfig() Config {
	return Config{
		Headless:       true,
		ViewportWidth:  1280,
		ViewportHeight: 720,
		ActionTimeout:  30 * time.Second,
	}
}

// Driver owns one playwright session: a browser, a context, and the
// single page the scenario drives.
type Driver struct {
	cfg    Config
	logger logger.Logger

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
}

// NewDriver creates an unstarted browser driver.
func NewDriver(cfg Config, log logger.Logger) *Driver {
	return &Driver{
		cfg:    cfg,
		logger: log,
	}
}

// Start launches Chromium and opens the page the session will use.
func (d *Driver) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.pw != nil {
		return errors.New("browser session already started")
	}

	pw, err := playwright.Run()
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}
	d.pw = pw

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(d.cfg.Headless),
	}
	if d.cfg.ExecutablePath != "" {
		launchOpts.ExecutablePath = playwright.String(d.cfg.ExecutablePath)
	}

	browser, err := pw.Chromium.Launch(launchOpts)
	if err != nil {
		_ = d.Close()
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	d.browser = browser

	browserCtx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  d.cfg.ViewportWidth,
			Height: d.cfg.ViewportHeight,
		},
	})
	if err != nil {
		_ = d.Close()
		return fmt.Errorf("failed to create browser context: %w", err)
	}
	d.context = browserCtx

	page, err := browserCtx.NewPage()
	if err != nil {
		_ = d.Close()
		return fmt.Errorf("failed to open page: %w", err)
	}
	page.SetDefaultTimeout(float64(d.cfg.ActionTimeout.Milliseconds()))
	page.SetDefaultNavigationTimeout(float64(d.cfg.ActionTimeout.Milliseconds()))
	d.page = page

	d.logger.Debug(ctx, "browser session started", map[string]interface{}{
		"headless": d.cfg.Headless,
		"viewport": fmt.Sprintf("%dx%d", d.cfg.ViewportWidth, d.cfg.ViewportHeight),
	})

	return nil
}

// Navigate loads the given URL in the session page.
func (d *Driver) Navigate(ctx context.Context, url string) error {
	if err := d.ready(ctx); err != nil {
		return err
	}

	if _, err := d.page.Goto(url); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	d.logger.Debug(ctx, "page opened", map[string]interface{}{
		"url": url,
	})
	return nil
}

// FillByLabel types a value into the input associated with the given
// accessible label.
func (d *Driver) FillByLabel(ctx context.Context, label, value string) error {
	if err := d.ready(ctx); err != nil {
		return err
	}

	if err := d.page.GetByLabel(label).Fill(value); err != nil {
		return fmt.Errorf("%w: input labelled %q: %v", scenario.ErrElementNotFound, label, err)
	}
	return nil
}

// ClickButton clicks the button with the given accessible name.
func (d *Driver) ClickButton(ctx context.Context, name string) error {
	if err := d.ready(ctx); err != nil {
		return err
	}

	button := d.page.GetByRole(playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name: name,
	})
	if err := button.Click(); err != nil {
		return fmt.Errorf("%w: button named %q: %v", scenario.ErrElementNotFound, name, err)
	}
	return nil
}

// WaitForURL blocks until the page reaches the given URL or the timeout
// elapses.
func (d *Driver) WaitForURL(ctx context.Context, url string, timeout time.Duration) error {
	if err := d.ready(ctx); err != nil {
		return err
	}

	err := d.page.WaitForURL(url, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: page did not reach %s within %s: %v", scenario.ErrWaitTimeout, url, timeout, err)
	}
	return nil
}

// WaitForSelector blocks until at least one element matching the
// selector is visible or the timeout elapses.
func (d *Driver) WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error {
	if err := d.ready(ctx); err != nil {
		return err
	}

	first := d.page.Locator(selector).First()
	err := first.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return fmt.Errorf("%w: no visible %q within %s: %v", scenario.ErrWaitTimeout, selector, timeout, err)
	}
	return nil
}

// Screenshot captures the full page as PNG bytes.
func (d *Driver) Screenshot(ctx context.Context) ([]byte, error) {
	if err := d.ready(ctx); err != nil {
		return nil, err
	}

	img, err := d.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return img, nil
}

// Close tears down whatever part of the session came up, in reverse
// order. Safe to call regardless of how far Start got, and again after
// a previous Close.
func (d *Driver) Close() error {
	var firstErr error

	if d.page != nil {
		if err := d.page.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close page: %w", err)
		}
		d.page = nil
	}
	if d.context != nil {
		if err := d.context.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close browser context: %w", err)
		}
		d.context = nil
	}
	if d.browser != nil {
		if err := d.browser.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close browser: %w", err)
		}
		d.browser = nil
	}
	if d.pw != nil {
		if err := d.pw.Stop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		d.pw = nil
	}

	return firstErr
}

func (d *Driver) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.page == nil {
		return errors.New("browser session not started")
	}
	return nil
}
