package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
	"github.com/i474232898/spaceweather-forecast/internal/spaceweather/feeds"
)

const (
	defaultKpURL        = "https://services.swpc.noaa.gov/products/noaa-planetary-k-index.json"
	defaultSolarWindURL = "https://services.swpc.noaa.gov/products/solar-wind/mag-2-hour.json"
	defaultXRayURL      = "https://services.swpc.noaa.gov/json/goes/primary/xrays-7-day.json"
)

var validate = validator.New()

type AppConfig struct {
	// Upstream feeds.
	KpURL        string `validate:"required,url"`
	SolarWindURL string `validate:"required,url"`
	XRayURL      string `validate:"required,url"`

	// FetchTimeout bounds each upstream request.
	FetchTimeout       time.Duration `validate:"gt=0"`
	FetchMaxAttempts   int           `validate:"gte=1,lte=10"`
	FetchBackoffFactor float64       `validate:"gte=0"`
	FetchRetryStatuses []int         `validate:"dive,gte=100,lte=599"`

	// ObserverLatitude feeds the aurora visibility model.
	ObserverLatitude float64 `validate:"gte=-90,lte=90"`

	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=text json"`

	// Server mode only.
	Port            string        `validate:"required,numeric"`
	RefreshInterval time.Duration `validate:"gte=1m"`
	SnapshotMaxAge  time.Duration `validate:"gt=0"`
}

// Load reads configuration from the environment (and an optional .env file)
// with defaults matching the public NOAA SWPC feeds.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{
		KpURL:        getenvDefault("KP_FEED_URL", defaultKpURL),
		SolarWindURL: getenvDefault("SOLAR_WIND_FEED_URL", defaultSolarWindURL),
		XRayURL:      getenvDefault("XRAY_FEED_URL", defaultXRayURL),
		LogLevel:     strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		LogFormat:    strings.ToLower(getenvDefault("LOG_FORMAT", "text")),
		Port:         getenvDefault("PORT", "8080"),
	}

	fetch := feeds.DefaultClientConfig()

	var err error
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", fetch.Timeout); err != nil {
		return nil, err
	}
	if cfg.FetchMaxAttempts, err = getenvInt("FETCH_MAX_ATTEMPTS", fetch.Retry.MaxAttempts); err != nil {
		return nil, err
	}
	if cfg.FetchBackoffFactor, err = getenvFloat("FETCH_BACKOFF_FACTOR", fetch.Retry.BackoffFactor); err != nil {
		return nil, err
	}
	if cfg.FetchRetryStatuses, err = getenvInts("FETCH_RETRY_STATUSES", fetch.Retry.RetryStatuses); err != nil {
		return nil, err
	}
	if cfg.ObserverLatitude, err = getenvFloat("OBSERVER_LATITUDE", spaceweather.DefaultLatitude); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SnapshotMaxAge, err = getenvDuration("SNAPSHOT_MAX_AGE", 30*time.Minute); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ClientConfig overlays the fetch settings on feeds.DefaultClientConfig.
func (c *AppConfig) ClientConfig() feeds.ClientConfig {
	cc := feeds.DefaultClientConfig()
	cc.Timeout = c.FetchTimeout
	cc.Retry.MaxAttempts = c.FetchMaxAttempts
	cc.Retry.BackoffFactor = c.FetchBackoffFactor
	cc.Retry.RetryStatuses = c.FetchRetryStatuses
	return cc
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getenvInts(key string, def []int) ([]int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	var out []int
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
		out = append(out, n)
	}
	return out, nil
}
