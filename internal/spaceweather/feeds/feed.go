package feeds

import (
	"context"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

// Feed names used in logs and metrics.
const (
	KpFeedName        = "kp"
	SolarWindFeedName = "solar_wind"
	XRayFeedName      = "xray"
)

// Fetcher returns the raw body behind a URL. *Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Normalizer turns one upstream payload shape into a normalized field. The
// bool result reports that the payload held no usable data and the value is
// the normalizer's own default.
type Normalizer[T any] func(payload []byte) (T, bool, error)

// Feed pairs an endpoint with the normalizer for its payload shape.
// It implements spaceweather.Source.
type Feed[T any] struct {
	name      string
	url       string
	fetcher   Fetcher
	normalize Normalizer[T]
}

var (
	_ spaceweather.Source[float64]                = (*Feed[float64])(nil)
	_ spaceweather.Source[spaceweather.SolarWind] = (*Feed[spaceweather.SolarWind])(nil)
	_ spaceweather.Source[spaceweather.XRayClass] = (*Feed[spaceweather.XRayClass])(nil)
)

// NewKpFeed reads the planetary K-index feed.
func NewKpFeed(fetcher Fetcher, url string) *Feed[float64] {
	return &Feed[float64]{name: KpFeedName, url: url, fetcher: fetcher, normalize: NormalizeKp}
}

// NewSolarWindFeed reads the solar-wind feed.
func NewSolarWindFeed(fetcher Fetcher, url string) *Feed[spaceweather.SolarWind] {
	return &Feed[spaceweather.SolarWind]{name: SolarWindFeedName, url: url, fetcher: fetcher, normalize: NormalizeSolarWind}
}

// NewXRayFeed reads the GOES X-ray flux feed.
func NewXRayFeed(fetcher Fetcher, url string) *Feed[spaceweather.XRayClass] {
	return &Feed[spaceweather.XRayClass]{name: XRayFeedName, url: url, fetcher: fetcher, normalize: NormalizeXRay}
}

func (f *Feed[T]) Name() string {
	return f.name
}

func (f *Feed[T]) Fetch(ctx context.Context) (T, bool, error) {
	body, err := f.fetcher.Fetch(ctx, f.url)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return f.normalize(body)
}
