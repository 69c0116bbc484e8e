package feeds

import (
	"encoding/json"
	"fmt"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

// NormalizeXRay classifies the flux of the newest record in a GOES X-ray
// record list. An empty list or a record without flux yields class B.
func NormalizeXRay(payload []byte) (spaceweather.XRayClass, bool, error) {
	var records []map[string]json.RawMessage
	if err := json.Unmarshal(payload, &records); err != nil {
		return "", false, unavailable(XRayFeedName, fmt.Errorf("decode payload: %w", err))
	}
	if len(records) == 0 {
		return spaceweather.DefaultXRayClass, true, nil
	}

	flux, present, err := scalar(records[len(records)-1]["flux"])
	if err != nil {
		return "", false, unavailable(XRayFeedName, err)
	}
	if !present {
		return spaceweather.DefaultXRayClass, true, nil
	}
	return spaceweather.ClassifyFlux(flux), false, nil
}
