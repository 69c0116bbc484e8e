package spaceweather

// StormScale is the NOAA geomagnetic storm level derived from Kp.
type StormScale string

const (
	StormG0 StormScale = "G0"
	StormG1 StormScale = "G1"
	StormG2 StormScale = "G2"
	StormG3 StormScale = "G3"
	StormG4 StormScale = "G4"
	StormG5 StormScale = "G5"
)

// ClassifyStorm maps Kp onto the G-scale; anything below Kp 5 is G0.
func ClassifyStorm(kp float64) StormScale {
	switch {
	case kp >= 9:
		return StormG5
	case kp >= 8:
		return StormG4
	case kp >= 7:
		return StormG3
	case kp >= 6:
		return StormG2
	case kp >= 5:
		return StormG1
	default:
		return StormG0
	}
}
