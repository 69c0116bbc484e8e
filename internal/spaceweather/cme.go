package spaceweather

import (
	"math"
	"time"
)

const (
	// AUKilometers is the mean Sun–Earth distance.
	AUKilometers = 1.496e8
	// SolarCycle25PeakYear anchors the cycle intensity factor.
	SolarCycle25PeakYear = 2025

	// stalledTransitHours is used when the wind speed gives no usable transit time.
	stalledTransitHours = 96.0
)

// CMEArrival estimates hours until a CME riding the current solar wind reaches
// Earth, and buckets the estimate into a risk tier. The evaluation instant only
// contributes its calendar year, through the solar-cycle factor.
func CMEArrival(speed, kp float64, evaluationInstant time.Time) (float64, RiskLevel) {
	transitHours := stalledTransitHours
	if speed > 0 {
		transitHours = (AUKilometers / speed) / 3600
	}

	yearsFromPeak := math.Abs(float64(evaluationInstant.UTC().Year() - SolarCycle25PeakYear))
	cycleFactor := math.Max(1-yearsFromPeak/5, 0.5)
	kpAccel := 1 - kp/20

	arrival := transitHours * kpAccel * cycleFactor
	return arrival, RiskFromArrival(arrival)
}

// RiskFromArrival maps an arrival estimate in hours to its risk tier.
func RiskFromArrival(hours float64) RiskLevel {
	switch {
	case hours < 24:
		return RiskCritical
	case hours < 48:
		return RiskHigh
	case hours < 72:
		return RiskModerate
	default:
		return RiskLow
	}
}
