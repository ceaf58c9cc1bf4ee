package scenario

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "/login", cfg.LoginPath)
	assert.Equal(t, "/dashboard", cfg.DashboardPath)
	assert.Equal(t, "photographer@yarrow.com", cfg.Email)
	assert.Equal(t, "yarrow", cfg.Password)
	assert.Equal(t, ".card", cfg.CardSelector)
	assert.Equal(t, "jules-scratch/verification/verification.png", cfg.ArtifactPath)
	assert.Equal(t, 30*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, 10*time.Second, cfg.ContentTimeout)

	require.NoError(t, cfg.Validate())
}

func TestConfig_URLs(t *testing.T) {
	tests := []struct {
		name          string
		baseURL       string
		wantLogin     string
		wantDashboard string
	}{
		{
			name:          "plain base",
			baseURL:       "http://localhost:3000",
			wantLogin:     "http://localhost:3000/login",
			wantDashboard: "http://localhost:3000/dashboard",
		},
		{
			name:          "trailing slash on base",
			baseURL:       "http://localhost:3000/",
			wantLogin:     "http://localhost:3000/login",
			wantDashboard: "http://localhost:3000/dashboard",
		},
		{
			name:          "remote host",
			baseURL:       "https://staging.yarrow.com",
			wantLogin:     "https://staging.yarrow.com/login",
			wantDashboard: "https://staging.yarrow.com/dashboard",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.BaseURL = tt.baseURL
			assert.Equal(t, tt.wantLogin, cfg.LoginURL())
			assert.Equal(t, tt.wantDashboard, cfg.DashboardURL())
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:   "defaults are valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "empty base url",
			mutate:  func(cfg *Config) { cfg.BaseURL = "" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "base url without scheme",
			mutate:  func(cfg *Config) { cfg.BaseURL = "localhost:3000" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "base url without host",
			mutate:  func(cfg *Config) { cfg.BaseURL = "http://" },
			wantErr: ErrInvalidBaseURL,
		},
		{
			name:    "login path without leading slash",
			mutate:  func(cfg *Config) { cfg.LoginPath = "login" },
			wantErr: ErrInvalidPagePath,
		},
		{
			name:    "dashboard path without leading slash",
			mutate:  func(cfg *Config) { cfg.DashboardPath = "dashboard" },
			wantErr: ErrInvalidPagePath,
		},
		{
			name:    "empty email",
			mutate:  func(cfg *Config) { cfg.Email = "" },
			wantErr: ErrMissingCredentials,
		},
		{
			name:    "empty password",
			mutate:  func(cfg *Config) { cfg.Password = "" },
			wantErr: ErrMissingCredentials,
		},
		{
			name:    "empty card selector",
			mutate:  func(cfg *Config) { cfg.CardSelector = "" },
			wantErr: ErrMissingCardSelector,
		},
		{
			name:    "empty artifact path",
			mutate:  func(cfg *Config) { cfg.ArtifactPath = "" },
			wantErr: ErrMissingArtifactPath,
		},
		{
			name:    "zero navigation timeout",
			mutate:  func(cfg *Config) { cfg.NavigationTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "negative content timeout",
			mutate:  func(cfg *Config) { cfg.ContentTimeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestResult_PassedAndDuration(t *testing.T) {
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	passed := Result{
		Status:      StatusPassed,
		StartedAt:   started,
		CompletedAt: started.Add(4 * time.Second),
	}
	assert.True(t, passed.Passed())
	assert.Equal(t, 4*time.Second, passed.Duration())

	failed := Result{Status: StatusFailed, StartedAt: started, CompletedAt: started}
	assert.False(t, failed.Passed())
	assert.Equal(t, time.Duration(0), failed.Duration())
}
