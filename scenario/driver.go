package scenario

import (
	"context"
	"time"
)

// Driver is the browser-automation collaborator the runner drives. One
// Driver owns at most one browsing session with a single page; Start
// acquires it and Close releases it. Implementations must make Close
// safe to call regardless of how far Start got, and should honor
// context cancellation on every blocking call.
//
// Locator failures should wrap ErrElementNotFound and expired waits
// should wrap ErrWaitTimeout so callers can classify failures without
// knowing the underlying automation library.
type Driver interface {
	// Start launches an isolated headless browsing session with no
	// state shared with prior runs, and opens its single page.
	Start(ctx context.Context) error

	// Navigate loads the given URL in the session's page.
	Navigate(ctx context.Context, url string) error

	// FillByLabel locates the form control by its accessible label
	// text, independent of markup structure, and sets its value.
	FillByLabel(ctx context.Context, label, value string) error

	// ClickButton locates the control with role "button" and the given
	// accessible name, and activates it.
	ClickButton(ctx context.Context, name string) error

	// WaitForURL blocks until the page's location equals url, or the
	// timeout expires.
	WaitForURL(ctx context.Context, url string, timeout time.Duration) error

	// WaitForSelector blocks until at least one element matching the
	// selector is visible, or the timeout expires.
	WaitForSelector(ctx context.Context, selector string, timeout time.Duration) error

	// Screenshot captures a full-page screenshot of the current page.
	Screenshot(ctx context.Context) ([]byte, error)

	// Close terminates the browsing session and all of its resources.
	Close() error
}
