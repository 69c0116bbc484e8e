package spaceweather

import (
	"context"
	"errors"
)

// ErrUnavailable marks a feed that could not be fetched or parsed. Callers
// replace the affected field with its fixed fallback.
var ErrUnavailable = errors.New("source unavailable")

// Source abstracts one upstream feed: it fetches its own payload shape and
// returns a normalized field. A nil error with empty=true means the feed
// answered with no usable data and the value is the normalizer's own default.
type Source[T any] interface {
	Name() string
	Fetch(ctx context.Context) (value T, empty bool, err error)
}

// Sources bundles the three feeds a Service reads from.
type Sources struct {
	Kp        Source[float64]
	SolarWind Source[SolarWind]
	XRay      Source[XRayClass]
}

// field is one resolved NormalizedReading slot.
type field[T any] struct {
	value      T
	provenance Provenance
	err        error
}

// resolve fetches from src and substitutes fallback when the source is unavailable.
func resolve[T any](ctx context.Context, src Source[T], fallback T) field[T] {
	if src == nil {
		return field[T]{value: fallback, provenance: ProvenanceFallback, err: ErrUnavailable}
	}
	v, empty, err := src.Fetch(ctx)
	switch {
	case err != nil:
		return field[T]{value: fallback, provenance: ProvenanceFallback, err: err}
	case empty:
		return field[T]{value: v, provenance: ProvenanceEmpty}
	default:
		return field[T]{value: v, provenance: ProvenanceLive}
	}
}
