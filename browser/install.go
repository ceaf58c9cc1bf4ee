package browser

import (
	"github.com/playwright-community/playwright-go"
)

// Install downloads the playwright driver and the Chromium build it
// runs. Needs to happen once per environment before the first session.
func Install() error {
	return playwright.Install(&playwright.RunOptions{
		Browsers: []string{"chromium"},
	})
}
