package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/singleflight"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
	"github.com/i474232898/spaceweather-forecast/internal/store"
)

var validate = validator.New()

// Forecaster is the slice of spaceweather.Service the handlers need.
type Forecaster interface {
	Observe(ctx context.Context) spaceweather.Observation
	Evaluate(obs spaceweather.Observation, latitude float64) (spaceweather.Report, error)
	ErrorBundle(err error) spaceweather.ErrorBundle
}

// ObservationStore holds the observation refreshed by the scheduler.
type ObservationStore interface {
	GetLatest() (spaceweather.Observation, error)
	SaveObservation(obs spaceweather.Observation)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service Forecaster, st ObservationStore, defaultLatitude float64) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")
	refresher := &observationRefresher{service: service, store: st}

	v1.Get("/forecast", forecastHandler(service, refresher, defaultLatitude, func(c *fiber.Ctx, r spaceweather.Report) error {
		return c.JSON(r.Forecast)
	}))

	v1.Get("/forecast/details", forecastHandler(service, refresher, defaultLatitude, func(c *fiber.Ctx, r spaceweather.Report) error {
		return c.JSON(r)
	}))
}

// observationRefresher serves the held observation and collapses concurrent
// refreshes of a missing or stale one into a single upstream round.
type observationRefresher struct {
	service Forecaster
	store   ObservationStore
	group   singleflight.Group
}

func (r *observationRefresher) latest(ctx context.Context) (spaceweather.Observation, error) {
	obs, err := r.store.GetLatest()
	switch {
	case err == nil:
		return obs, nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrStale):
	default:
		return spaceweather.Observation{}, err
	}

	v, _, _ := r.group.Do("observe", func() (any, error) {
		fresh := r.service.Observe(ctx)
		r.store.SaveObservation(fresh)
		return fresh, nil
	})
	return v.(spaceweather.Observation), nil
}

// forecastQuery holds query parameters for the forecast endpoints.
type forecastQuery struct {
	Latitude float64 `validate:"gte=-90,lte=90"`
}

func parseForecastQuery(c *fiber.Ctx, defaultLatitude float64) (forecastQuery, error) {
	q := forecastQuery{Latitude: defaultLatitude}

	if s := c.Query("lat"); s != "" {
		lat, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return q, errors.New("lat must be a number")
		}
		q.Latitude = lat
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// forecastHandler runs the models over the held observation, refreshing it
// first when it is missing or stale. Assembly failures answer with an ERROR bundle.
func forecastHandler(service Forecaster, refresher *observationRefresher, defaultLatitude float64, render func(*fiber.Ctx, spaceweather.Report) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		q, err := parseForecastQuery(c, defaultLatitude)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := refresher.latest(c.UserContext())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to load observation")
		}

		report, err := service.Evaluate(obs, q.Latitude)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(service.ErrorBundle(err))
		}
		return render(c, report)
	}
}
