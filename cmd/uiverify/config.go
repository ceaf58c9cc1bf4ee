package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/yarrowhq/ui-verify/artifact"
	"github.com/yarrowhq/ui-verify/browser"
	"github.com/yarrowhq/ui-verify/fixture"
	"github.com/yarrowhq/ui-verify/logger"
	"github.com/yarrowhq/ui-verify/runlog"
	"github.com/yarrowhq/ui-verify/scenario"
)

var cfg *viper.Viper

// initConfig loads configuration with the following precedence:
// environment variables (UIVERIFY_*), config file, defaults.
func initConfig() error {
	cfg = viper.New()

	if flagConfig != "" {
		cfg.SetConfigFile(flagConfig)
	} else {
		cfg.SetConfigName(".uiverify")
		cfg.SetConfigType("yaml")
		cfg.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			cfg.AddConfigPath(home)
		}
	}

	cfg.SetEnvPrefix("UIVERIFY")
	cfg.AutomaticEnv()
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg.SetDefault("log.level", "info")
	cfg.SetDefault("log.format", logger.FormatText)

	cfg.SetDefault("target.base_url", scenario.DefaultBaseURL)
	cfg.SetDefault("target.login_path", scenario.DefaultLoginPath)
	cfg.SetDefault("target.dashboard_path", scenario.DefaultDashboardPath)

	cfg.SetDefault("credentials.email", scenario.DefaultEmail)
	cfg.SetDefault("credentials.password", scenario.DefaultPassword)

	cfg.SetDefault("verify.card_selector", scenario.DefaultCardSelector)
	cfg.SetDefault("verify.navigation_timeout", scenario.DefaultNavigationTimeout)
	cfg.SetDefault("verify.content_timeout", scenario.DefaultContentTimeout)

	cfg.SetDefault("browser.headless", true)
	cfg.SetDefault("browser.viewport_width", 1280)
	cfg.SetDefault("browser.viewport_height", 720)
	cfg.SetDefault("browser.executable_path", "")
	cfg.SetDefault("browser.action_timeout", "30s")

	cfg.SetDefault("artifact.type", "local")
	cfg.SetDefault("artifact.base_dir", ".")
	cfg.SetDefault("artifact.path", scenario.DefaultArtifactPath)
	cfg.SetDefault("artifact.s3_bucket", "")
	cfg.SetDefault("artifact.s3_region", "us-east-1")
	cfg.SetDefault("artifact.s3_presign_expiry", "15m")

	cfg.SetDefault("history.enabled", true)
	cfg.SetDefault("history.driver", runlog.DriverSQLite)
	cfg.SetDefault("history.path", ".uiverify/runs.db")
	cfg.SetDefault("history.dsn", "")

	cfg.SetDefault("fixture.host", "0.0.0.0")
	cfg.SetDefault("fixture.port", 3000)
	cfg.SetDefault("fixture.card_count", 3)
	cfg.SetDefault("fixture.card_delay", "500ms")
	cfg.SetDefault("fixture.session_duration", "24h")
	cfg.SetDefault("fixture.cookie_name", "yarrow_session")
	cfg.SetDefault("fixture.cookie_secret", "change-this-secret-in-production-min-32-chars")
	cfg.SetDefault("fixture.cookie_secure", false)
	cfg.SetDefault("fixture.read_timeout", "15s")
	cfg.SetDefault("fixture.write_timeout", "15s")

	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return nil
}

func newLogger() logger.Logger {
	level := cfg.GetString("log.level")
	if flagDebug {
		level = "debug"
	}
	return logger.NewLogrusLogger(level, cfg.GetString("log.format"))
}

func scenarioConfig() scenario.Config {
	return scenario.Config{
		BaseURL:           cfg.GetString("target.base_url"),
		LoginPath:         cfg.GetString("target.login_path"),
		DashboardPath:     cfg.GetString("target.dashboard_path"),
		Email:             cfg.GetString("credentials.email"),
		Password:          cfg.GetString("credentials.password"),
		CardSelector:      cfg.GetString("verify.card_selector"),
		NavigationTimeout: cfg.GetDuration("verify.navigation_timeout"),
		ContentTimeout:    cfg.GetDuration("verify.content_timeout"),
		ArtifactPath:      cfg.GetString("artifact.path"),
	}
}

func browserConfig() browser.Config {
	return browser.Config{
		Headless:       cfg.GetBool("browser.headless"),
		ViewportWidth:  cfg.GetInt("browser.viewport_width"),
		ViewportHeight: cfg.GetInt("browser.viewport_height"),
		ExecutablePath: cfg.GetString("browser.executable_path"),
		ActionTimeout:  cfg.GetDuration("browser.action_timeout"),
	}
}

func artifactConfig() artifact.Config {
	return artifact.Config{
		Type:            cfg.GetString("artifact.type"),
		BaseDir:         cfg.GetString("artifact.base_dir"),
		S3Bucket:        cfg.GetString("artifact.s3_bucket"),
		S3Region:        cfg.GetString("artifact.s3_region"),
		S3PresignExpiry: cfg.GetDuration("artifact.s3_presign_expiry"),
	}
}

func historyEnabled() bool {
	return cfg.GetBool("history.enabled")
}

func historyDBConfig() runlog.DBConfig {
	return runlog.DBConfig{
		Driver: cfg.GetString("history.driver"),
		Path:   cfg.GetString("history.path"),
		DSN:    cfg.GetString("history.dsn"),
	}
}

// fixtureConfig reuses credentials.* so the portal accepts exactly the
// credentials a verification run submits.
func fixtureConfig() fixture.Config {
	return fixture.Config{
		Host:            cfg.GetString("fixture.host"),
		Port:            cfg.GetInt("fixture.port"),
		Email:           cfg.GetString("credentials.email"),
		Password:        cfg.GetString("credentials.password"),
		CookieName:      cfg.GetString("fixture.cookie_name"),
		CookieSecret:    cfg.GetString("fixture.cookie_secret"),
		CookieSecure:    cfg.GetBool("fixture.cookie_secure"),
		SessionDuration: cfg.GetDuration("fixture.session_duration"),
		CardCount:       cfg.GetInt("fixture.card_count"),
		CardDelay:       cfg.GetDuration("fixture.card_delay"),
		ReadTimeout:     cfg.GetDuration("fixture.read_timeout"),
		WriteTimeout:    cfg.GetDuration("fixture.write_timeout"),
	}
}
