package feeds

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

// kpValueCol is the Kp column in [time_tag, Kp, ...] rows.
const kpValueCol = 1

// NormalizeKp takes the Kp value from the newest row of a header-first
// [[time_tag, Kp, ...], ...] table. A header-only table or an empty latest
// value yields the 3.0 default. Values are clamped into the 0–9 scale.
func NormalizeKp(payload []byte) (float64, bool, error) {
	table, err := rows(payload, KpFeedName)
	if err != nil {
		return 0, false, err
	}
	if len(table) <= 1 {
		return spaceweather.DefaultKp, true, nil
	}

	var latest []json.RawMessage
	if err := json.Unmarshal(table[len(table)-1], &latest); err != nil {
		return 0, false, unavailable(KpFeedName, fmt.Errorf("decode latest row: %w", err))
	}
	if len(latest) <= kpValueCol {
		return 0, false, unavailable(KpFeedName, fmt.Errorf("latest row has %d columns", len(latest)))
	}

	kp, present, err := scalar(latest[kpValueCol])
	if err != nil {
		return 0, false, unavailable(KpFeedName, err)
	}
	if !present {
		return spaceweather.DefaultKp, true, nil
	}
	return math.Min(math.Max(kp, 0), 9), false, nil
}
