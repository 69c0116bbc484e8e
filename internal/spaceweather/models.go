package spaceweather

// XRayClass is the logarithmic GOES X-ray flux bucket, A weakest through X strongest.
type XRayClass string

const (
	XRayClassA XRayClass = "A"
	XRayClassB XRayClass = "B"
	XRayClassC XRayClass = "C"
	XRayClassM XRayClass = "M"
	XRayClassX XRayClass = "X"
)

// RiskLevel buckets the CME arrival estimate for downstream alerting.
type RiskLevel string

const (
	RiskLow      RiskLevel = "LOW"
	RiskModerate RiskLevel = "MODERATE"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// Status marks whether a bundle is a complete forecast or an error report.
type Status string

const (
	StatusSuccess Status = "SUCCESS"
	StatusError   Status = "ERROR"
)

// Provenance records where a normalized field came from.
type Provenance string

const (
	// ProvenanceLive means the feed answered with usable data.
	ProvenanceLive Provenance = "live"
	// ProvenanceEmpty means the feed answered but had no usable rows, so the
	// normalizer's in-band default was used.
	ProvenanceEmpty Provenance = "empty"
	// ProvenanceFallback means the feed was unavailable and the fixed fallback was injected.
	ProvenanceFallback Provenance = "fallback"
)

// SolarWind is the bulk plasma and IMF state upstream of Earth.
type SolarWind struct {
	Speed   float64 `json:"speed"`   // km/s
	Density float64 `json:"density"` // particles/cm³
	Bz      float64 `json:"bz"`      // nT, negative is southward
	Bt      float64 `json:"bt"`      // nT
}

// Fallback values injected when a feed is unavailable.
const (
	DefaultKp        = 3.0
	DefaultXRayClass = XRayClassB
)

// DefaultSolarWind is used both as the solar-wind normalizer's in-band default
// and as the fallback when the feed is unavailable.
var DefaultSolarWind = SolarWind{Speed: 400.0, Density: 5.0, Bz: 0.0, Bt: 5.0}

// NormalizedReading is the reconciled snapshot every forecast model reads.
// Kp is always within [0, 9].
type NormalizedReading struct {
	Kp        float64
	SolarWind SolarWind
	XRayClass XRayClass
}

// ReadingProvenance tracks the origin of each NormalizedReading field.
type ReadingProvenance struct {
	Kp        Provenance `json:"kp"`
	SolarWind Provenance `json:"solarWind"`
	XRayClass Provenance `json:"xrayClass"`
}

// Degraded reports whether any field fell back to its fixed default.
func (p ReadingProvenance) Degraded() bool {
	return p.Kp == ProvenanceFallback || p.SolarWind == ProvenanceFallback || p.XRayClass == ProvenanceFallback
}

// Derived holds the three model outputs before rounding.
type Derived struct {
	FlareProbability float64
	CMEArrivalHours  float64
	RiskLevel        RiskLevel
	AuroraScore      int
}

// ForecastBundle is the sole public output. Field names are part of the wire contract.
type ForecastBundle struct {
	CurrentKP             float64   `json:"CurrentKP"`
	SolarWind             SolarWind `json:"SolarWind"`
	SuryaFlareProb        float64   `json:"SuryaFlareProb"`
	CMEArrivalHours       float64   `json:"CMEArrivalHours"`
	Cycle25RiskLevel      RiskLevel `json:"Cycle25RiskLevel"`
	AuroraVisibilityScore int       `json:"AuroraVisibilityScore"`
	XRayClass             XRayClass `json:"XRayClass"`
	Timestamp             string    `json:"Timestamp"`
	Status                Status    `json:"Status"`
}

// ErrorBundle replaces the forecast when assembly fails.
type ErrorBundle struct {
	Status    Status `json:"Status"`
	Message   string `json:"Message"`
	Timestamp string `json:"Timestamp"`
}

// Report wraps a bundle with the observability details that stay out of the public schema.
type Report struct {
	Forecast   ForecastBundle    `json:"forecast"`
	Provenance ReadingProvenance `json:"provenance"`
	StormScale StormScale        `json:"stormScale"`
	Latitude   float64           `json:"latitude"`
}
