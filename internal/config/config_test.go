package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"KP_FEED_URL", "SOLAR_WIND_FEED_URL", "XRAY_FEED_URL",
	"FETCH_TIMEOUT", "FETCH_MAX_ATTEMPTS", "FETCH_BACKOFF_FACTOR", "FETCH_RETRY_STATUSES",
	"OBSERVER_LATITUDE", "LOG_LEVEL", "LOG_FORMAT",
	"PORT", "REFRESH_INTERVAL", "SNAPSHOT_MAX_AGE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, defaultKpURL, cfg.KpURL)
	assert.Equal(t, defaultSolarWindURL, cfg.SolarWindURL)
	assert.Equal(t, defaultXRayURL, cfg.XRayURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchMaxAttempts)
	assert.Equal(t, 0.3, cfg.FetchBackoffFactor)
	assert.Equal(t, []int{500, 502, 504}, cfg.FetchRetryStatuses)
	assert.Equal(t, 50.0, cfg.ObserverLatitude)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 30*time.Minute, cfg.SnapshotMaxAge)
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("KP_FEED_URL", "http://localhost:9000/kp.json")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("FETCH_MAX_ATTEMPTS", "1")
	t.Setenv("FETCH_BACKOFF_FACTOR", "1.5")
	t.Setenv("FETCH_RETRY_STATUSES", "429, 503")
	t.Setenv("OBSERVER_LATITUDE", "-64.5")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("PORT", "9090")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("SNAPSHOT_MAX_AGE", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/kp.json", cfg.KpURL)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.FetchMaxAttempts)
	assert.Equal(t, 1.5, cfg.FetchBackoffFactor)
	assert.Equal(t, []int{429, 503}, cfg.FetchRetryStatuses)
	assert.Equal(t, -64.5, cfg.ObserverLatitude)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, time.Hour, cfg.SnapshotMaxAge)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"KP_FEED_URL", "not a url"},
		{"FETCH_TIMEOUT", "soon"},
		{"FETCH_TIMEOUT", "-1s"},
		{"FETCH_MAX_ATTEMPTS", "three"},
		{"FETCH_MAX_ATTEMPTS", "0"},
		{"FETCH_MAX_ATTEMPTS", "11"},
		{"FETCH_BACKOFF_FACTOR", "-0.5"},
		{"FETCH_RETRY_STATUSES", "500,abc"},
		{"FETCH_RETRY_STATUSES", "500,700"},
		{"OBSERVER_LATITUDE", "91"},
		{"OBSERVER_LATITUDE", "north"},
		{"LOG_LEVEL", "verbose"},
		{"LOG_FORMAT", "xml"},
		{"PORT", "http"},
		{"REFRESH_INTERVAL", "10s"},
		{"SNAPSHOT_MAX_AGE", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAppConfig_ClientConfig(t *testing.T) {
	cfg := &AppConfig{
		FetchTimeout:       4 * time.Second,
		FetchMaxAttempts:   2,
		FetchBackoffFactor: 0.5,
		FetchRetryStatuses: []int{503},
	}

	cc := cfg.ClientConfig()
	assert.Equal(t, 4*time.Second, cc.Timeout)
	assert.Equal(t, 2, cc.Retry.MaxAttempts)
	assert.Equal(t, 0.5, cc.Retry.BackoffFactor)
	assert.Equal(t, []int{503}, cc.Retry.RetryStatuses)
	assert.Equal(t, 120*time.Second, cc.Retry.MaxBackoff)
}
