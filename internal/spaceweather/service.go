package spaceweather

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/spaceweather-forecast/internal/observability"
)

// Observation is one complete, fallback-filled reading plus where each field came from.
type Observation struct {
	Reading    NormalizedReading
	Provenance ReadingProvenance
	ObservedAt time.Time
}

// Service orchestrates the feeds, fallback injection, models and assembly.
type Service struct {
	sources Sources
	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewService creates a Service. A nil clock means the real wall clock.
func NewService(sources Sources, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		sources: sources,
		clock:   clock,
		logger:  logger,
		metrics: metrics,
	}
}

// Observe fetches all feeds concurrently and returns a complete reading.
// It never fails: unavailable feeds are replaced by their fixed defaults.
func (s *Service) Observe(ctx context.Context) Observation {
	var (
		wg   sync.WaitGroup
		kp   field[float64]
		wind field[SolarWind]
		xray field[XRayClass]
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		kp = resolve(ctx, s.sources.Kp, DefaultKp)
	}()
	go func() {
		defer wg.Done()
		wind = resolve(ctx, s.sources.SolarWind, DefaultSolarWind)
	}()
	go func() {
		defer wg.Done()
		xray = resolve(ctx, s.sources.XRay, DefaultXRayClass)
	}()
	wg.Wait()

	s.record(sourceName(s.sources.Kp, "kp"), kp.provenance, kp.err)
	s.record(sourceName(s.sources.SolarWind, "solar_wind"), wind.provenance, wind.err)
	s.record(sourceName(s.sources.XRay, "xray"), xray.provenance, xray.err)

	obs := Observation{
		Reading: NormalizedReading{
			Kp:        kp.value,
			SolarWind: wind.value,
			XRayClass: xray.value,
		},
		Provenance: ReadingProvenance{
			Kp:        kp.provenance,
			SolarWind: wind.provenance,
			XRayClass: xray.provenance,
		},
		ObservedAt: s.clock.Now().UTC(),
	}

	if obs.Provenance.Degraded() {
		s.logger.Warn("forecast inputs degraded to defaults",
			"kp", obs.Provenance.Kp,
			"solar_wind", obs.Provenance.SolarWind,
			"xray", obs.Provenance.XRayClass,
		)
	}
	return obs
}

// Evaluate derives the forecast for obs at the current instant. The only
// error is an assembly failure, which callers turn into an ERROR bundle.
func (s *Service) Evaluate(obs Observation, latitude float64) (Report, error) {
	at := s.clock.Now().UTC()

	derived := Derive(obs.Reading, latitude, at)
	bundle, err := Assemble(obs.Reading, derived, at)
	if err != nil {
		s.metrics.ForecastRuns.WithLabelValues(string(StatusError)).Inc()
		return Report{}, err
	}

	s.metrics.ForecastRuns.WithLabelValues(string(StatusSuccess)).Inc()
	s.metrics.CurrentKp.Set(bundle.CurrentKP)
	s.metrics.FlareProbability.Set(bundle.SuryaFlareProb)
	s.metrics.CMEArrivalHours.Set(bundle.CMEArrivalHours)
	s.metrics.AuroraScore.Set(float64(bundle.AuroraVisibilityScore))

	report := Report{
		Forecast:   bundle,
		Provenance: obs.Provenance,
		StormScale: ClassifyStorm(obs.Reading.Kp),
		Latitude:   latitude,
	}
	s.logger.Info("forecast assembled",
		"kp", bundle.CurrentKP,
		"xray_class", bundle.XRayClass,
		"flare_probability", bundle.SuryaFlareProb,
		"cme_arrival_hours", bundle.CMEArrivalHours,
		"risk", bundle.Cycle25RiskLevel,
		"aurora_score", bundle.AuroraVisibilityScore,
		"storm_scale", report.StormScale,
	)
	return report, nil
}

// Forecast runs one full observe-derive-assemble cycle.
func (s *Service) Forecast(ctx context.Context, latitude float64) (Report, error) {
	start := s.clock.Now()
	defer func() {
		s.metrics.ForecastDuration.Observe(s.clock.Since(start).Seconds())
	}()

	return s.Evaluate(s.Observe(ctx), latitude)
}

// ErrorBundle reports err stamped with the service clock.
func (s *Service) ErrorBundle(err error) ErrorBundle {
	return NewErrorBundle(err, s.clock.Now())
}

func (s *Service) record(feed string, p Provenance, err error) {
	s.metrics.FeedResults.WithLabelValues(feed, string(p)).Inc()
	switch p {
	case ProvenanceFallback:
		s.logger.Warn("feed unavailable, using fallback", "feed", feed, "error", err)
	case ProvenanceEmpty:
		s.logger.Info("feed returned no usable data, using default", "feed", feed)
	default:
		s.logger.Debug("feed live", "feed", feed)
	}
}

func sourceName[T any](src Source[T], fallback string) string {
	if src == nil {
		return fallback
	}
	return src.Name()
}
