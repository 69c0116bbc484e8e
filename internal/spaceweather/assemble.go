package spaceweather

import (
	"errors"
	"fmt"
	"time"

	"github.com/i474232898/spaceweather-forecast/internal/common"
)

// ErrAssembly is returned when a bundle cannot be built from the inputs.
var ErrAssembly = errors.New("assemble forecast")

// TimestampLayout renders UTC instants as ISO-8601 with microseconds and a trailing Z.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp renders t in TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Derive runs the three forecast models over a reading.
func Derive(r NormalizedReading, latitude float64, at time.Time) Derived {
	hours, risk := CMEArrival(r.SolarWind.Speed, r.Kp, at)
	return Derived{
		FlareProbability: FlareProbability(r.XRayClass, r.Kp, r.SolarWind),
		CMEArrivalHours:  hours,
		RiskLevel:        risk,
		AuroraScore:      AuroraVisibility(r.Kp, r.SolarWind.Bz, r.SolarWind.Speed, latitude),
	}
}

// Assemble merges a reading and its derived metrics into a SUCCESS bundle
// stamped with at. Non-finite numbers or an unknown class fail with ErrAssembly.
func Assemble(r NormalizedReading, d Derived, at time.Time) (ForecastBundle, error) {
	w := r.SolarWind
	if !common.Finite(r.Kp, w.Speed, w.Density, w.Bz, w.Bt, d.FlareProbability, d.CMEArrivalHours) {
		return ForecastBundle{}, fmt.Errorf("%w: non-finite value in reading or metrics", ErrAssembly)
	}
	if _, ok := flareBase[r.XRayClass]; !ok {
		return ForecastBundle{}, fmt.Errorf("%w: unknown x-ray class %q", ErrAssembly, r.XRayClass)
	}
	if d.RiskLevel == "" {
		return ForecastBundle{}, fmt.Errorf("%w: missing risk level", ErrAssembly)
	}

	return ForecastBundle{
		CurrentKP: common.Round(r.Kp, 1),
		SolarWind: SolarWind{
			Speed:   common.Round(w.Speed, 1),
			Density: common.Round(w.Density, 2),
			Bz:      common.Round(w.Bz, 2),
			Bt:      common.Round(w.Bt, 1),
		},
		SuryaFlareProb:        common.Round(d.FlareProbability, 1),
		CMEArrivalHours:       common.Round(d.CMEArrivalHours, 1),
		Cycle25RiskLevel:      d.RiskLevel,
		AuroraVisibilityScore: d.AuroraScore,
		XRayClass:             r.XRayClass,
		Timestamp:             FormatTimestamp(at),
		Status:                StatusSuccess,
	}, nil
}

// NewErrorBundle reports err in place of a forecast.
func NewErrorBundle(err error, at time.Time) ErrorBundle {
	return ErrorBundle{
		Status:    StatusError,
		Message:   err.Error(),
		Timestamp: FormatTimestamp(at),
	}
}
