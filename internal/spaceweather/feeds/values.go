package feeds

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

var errNotNumeric = errors.New("value is not numeric")

// scalar reads a JSON cell that upstream may send as a number, a numeric
// string, an empty string or null. present is false for the last two.
func scalar(raw json.RawMessage) (value float64, present bool, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false, nil
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false, fmt.Errorf("%w: %s", errNotNumeric, raw)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return 0, false, nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false, fmt.Errorf("%w: %q", errNotNumeric, s)
		}
		return v, true, nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, false, fmt.Errorf("%w: %s", errNotNumeric, raw)
	}
	return v, true, nil
}

// rows decodes a top-level JSON array without committing to its element shape.
func rows(payload []byte, feed string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, unavailable(feed, fmt.Errorf("decode payload: %w", err))
	}
	return out, nil
}

func unavailable(feed string, err error) error {
	return fmt.Errorf("%s: %w: %w", feed, spaceweather.ErrUnavailable, err)
}
