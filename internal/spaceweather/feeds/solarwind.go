package feeds

import (
	"encoding/json"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

// Fixed column positions in the solar-wind table.
const (
	bzCol      = 3
	btCol      = 4
	speedCol   = 6
	densityCol = 7
)

// NormalizeSolarWind scans the header-first solar-wind table from newest to
// oldest and returns the first row whose bz, bt, speed and density are all
// present and numeric. Malformed rows are skipped, not fatal. With no usable
// row the default wind is returned.
func NormalizeSolarWind(payload []byte) (spaceweather.SolarWind, bool, error) {
	table, err := rows(payload, SolarWindFeedName)
	if err != nil {
		return spaceweather.SolarWind{}, false, err
	}

	for i := len(table) - 1; i >= 1; i-- {
		if wind, ok := windFromRow(table[i]); ok {
			return wind, false, nil
		}
	}
	return spaceweather.DefaultSolarWind, true, nil
}

func windFromRow(raw json.RawMessage) (spaceweather.SolarWind, bool) {
	var row []json.RawMessage
	if err := json.Unmarshal(raw, &row); err != nil || len(row) <= densityCol {
		return spaceweather.SolarWind{}, false
	}

	var vals [4]float64
	for i, col := range []int{bzCol, btCol, speedCol, densityCol} {
		v, present, err := scalar(row[col])
		if err != nil || !present {
			return spaceweather.SolarWind{}, false
		}
		vals[i] = v
	}

	return spaceweather.SolarWind{
		Bz:      vals[0],
		Bt:      vals[1],
		Speed:   vals[2],
		Density: vals[3],
	}, true
}
