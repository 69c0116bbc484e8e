package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

// runTimeout bounds one refresh; fetches are already bounded per request.
const runTimeout = 90 * time.Second

// Observer produces a complete observation from the upstream feeds.
type Observer interface {
	Observe(ctx context.Context) spaceweather.Observation
}

// ObservationSaver keeps the most recent observation.
type ObservationSaver interface {
	SaveObservation(obs spaceweather.Observation)
}

// Scheduler periodically refreshes the feed observation.
type Scheduler struct {
	scheduler *gocron.Scheduler
	observer  Observer
	store     ObservationSaver
	interval  time.Duration
	logger    *slog.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, observer Observer, store ObservationSaver, logger *slog.Logger) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		observer:  observer,
		store:     store,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the refresh job, runs it once immediately and starts the
// underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		s.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", "interval_minutes", minutes)
	return nil
}

// RunOnce fetches one observation and hands it to the store.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.logger.Debug("scheduler: refreshing observation")
	obs := s.observer.Observe(ctx)
	s.store.SaveObservation(obs)
	s.logger.Info("scheduler: observation refreshed",
		"observed_at", obs.ObservedAt,
		"kp", obs.Provenance.Kp,
		"solar_wind", obs.Provenance.SolarWind,
		"xray", obs.Provenance.XRayClass,
	)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
