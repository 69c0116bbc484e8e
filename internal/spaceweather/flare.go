package spaceweather

import "math"

// flareBase is the baseline flare probability (percent) for each X-ray class.
var flareBase = map[XRayClass]float64{
	XRayClassA: 5,
	XRayClassB: 15,
	XRayClassC: 35,
	XRayClassM: 65,
	XRayClassX: 90,
}

const unmappedFlareBase = 15

// FlareProbability returns the solar-flare probability in percent, clamped to [0, 100].
// Only southward (negative) Bz and wind faster than 300 km/s add to the baseline.
func FlareProbability(class XRayClass, kp float64, wind SolarWind) float64 {
	base, ok := flareBase[class]
	if !ok {
		base = unmappedFlareBase
	}

	kpFactor := math.Min(kp/9, 1) * 20
	speedFactor := math.Min(math.Max(wind.Speed-300, 0)/400, 1) * 15
	bzFactor := math.Max(-wind.Bz, 0) * 3

	return clamp(base+kpFactor+speedFactor+bzFactor, 0, 100)
}

// ClassifyFlux buckets a GOES 1–8 Å flux (W/m²) into its flare class.
// Every real input maps to exactly one class; anything below 1e-6 is A.
func ClassifyFlux(flux float64) XRayClass {
	switch {
	case flux >= 1e-3:
		return XRayClassX
	case flux >= 1e-4:
		return XRayClassM
	case flux >= 1e-5:
		return XRayClassC
	case flux >= 1e-6:
		return XRayClassB
	default:
		return XRayClassA
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
