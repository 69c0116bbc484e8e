package spaceweather

import "math"

// DefaultLatitude is the observer latitude used when none is configured.
const DefaultLatitude = 50.0

// AuroraVisibility scores aurora visibility from 0 to 100 for an observer at
// latitude (degrees). Mid-latitudes near 50° see the full score; the latitude
// factor never drops below 0.3.
func AuroraVisibility(kp, bz, speed, latitude float64) int {
	kpScore := math.Min(kp/9*60, 60)
	bzScore := math.Max(-bz, 0) * 5
	speedScore := clamp((speed-300)/500*20, 0, 20)
	latFactor := math.Max(1-math.Abs(50-latitude)/50, 0.3)

	score := clamp((kpScore+bzScore+speedScore)*latFactor, 0, 100)
	return int(math.Round(score))
}
