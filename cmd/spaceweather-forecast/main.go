// Command spaceweather-forecast fetches the NOAA SWPC feeds once, derives the
// flare, CME and aurora forecast, and prints the bundle as JSON on stdout.
// Diagnostics go to stderr. Exit status is 0 on SUCCESS and 1 on ERROR.
//
// Configuration comes from the environment (see internal/config); there are no flags.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/spaceweather-forecast/internal/config"
	"github.com/i474232898/spaceweather-forecast/internal/observability"
	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
	"github.com/i474232898/spaceweather-forecast/internal/spaceweather/feeds"
)

func main() {
	os.Exit(run(os.Stdout, os.Stderr, observability.NewMetrics()))
}

func run(stdout, stderr io.Writer, metrics *observability.Metrics) (code int) {
	defer func() {
		if r := recover(); r != nil {
			code = fail(stdout, fmt.Errorf("unexpected failure: %v", r))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		return fail(stdout, err)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat, stderr)

	client := feeds.NewClient(cfg.ClientConfig(), logger, metrics)
	defer client.Close()

	service := spaceweather.NewService(spaceweather.Sources{
		Kp:        feeds.NewKpFeed(client, cfg.KpURL),
		SolarWind: feeds.NewSolarWindFeed(client, cfg.SolarWindURL),
		XRay:      feeds.NewXRayFeed(client, cfg.XRayURL),
	}, clockwork.NewRealClock(), logger, metrics)

	report, err := service.Forecast(context.Background(), cfg.ObserverLatitude)
	if err != nil {
		logger.Error("forecast failed", "error", err)
		return fail(stdout, err)
	}

	if err := writeJSON(stdout, report.Forecast); err != nil {
		logger.Error("write forecast", "error", err)
		return 1
	}
	return 0
}

func fail(stdout io.Writer, err error) int {
	_ = writeJSON(stdout, spaceweather.NewErrorBundle(err, time.Now()))
	return 1
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
