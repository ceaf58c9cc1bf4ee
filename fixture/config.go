// Package fixture serves a small photographer portal that behaves like
// the production target: an accessible login form, a gallery dashboard,
// and the JSON API the dashboard renders its cards from. It gives
// verification runs something real to drive in development.
package fixture

import (
	"fmt"
	"time"

	"github.com/yarrowhq/ui-verify/scenario"
)

// Config holds portal configuration.
type Config struct {
	Host            string
	Port            int
	Email           string
	Password        string
	CookieName      string
	CookieSecret    string
	CookieSecure    bool
	SessionDuration time.Duration
	CardCount       int
	CardDelay       time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
}

// DefaultConfig returns a portal configuration that matches what a
// default verification run expects to find.
func DefaultConfig() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            3000,
		Email:           scenario.DefaultEmail,
		Password:        scenario.DefaultPassword,
		CookieName:      "yarrow_session",
		CookieSecret:    "change-this-secret-in-production-min-32-chars",
		CookieSecure:    false,
		SessionDuration: 24 * time.Hour,
		CardCount:       3,
		CardDelay:       500 * time.Millisecond,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
	}
}

// Addr returns the host:port the portal listens on.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
