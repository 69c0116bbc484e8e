package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

const kpHeader = `["time_tag","Kp","a_running","station_count"]`

func TestNormalizeKp(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		want      float64
		wantEmpty bool
	}{
		{
			name:    "string value in latest row",
			payload: `[` + kpHeader + `,["2025-06-01 00:00:00.000","1.67","6","8"],["2025-06-01 03:00:00.000","2.33","9","8"]]`,
			want:    2.33,
		},
		{
			name:    "numeric value",
			payload: `[` + kpHeader + `,["2025-06-01 03:00:00.000",4.67,39,8]]`,
			want:    4.67,
		},
		{
			name:    "zero is a real reading",
			payload: `[` + kpHeader + `,["2025-06-01 03:00:00.000","0",0,8]]`,
			want:    0,
		},
		{
			name:    "clamped above scale",
			payload: `[` + kpHeader + `,["2025-06-01 03:00:00.000","12",400,8]]`,
			want:    9,
		},
		{
			name:    "clamped below scale",
			payload: `[` + kpHeader + `,["2025-06-01 03:00:00.000","-1",0,8]]`,
			want:    0,
		},
		{
			name:      "header only",
			payload:   `[` + kpHeader + `]`,
			want:      3.0,
			wantEmpty: true,
		},
		{
			name:      "empty table",
			payload:   `[]`,
			want:      3.0,
			wantEmpty: true,
		},
		{
			name:      "null latest value",
			payload:   `[` + kpHeader + `,["2025-06-01 03:00:00.000",null,null,0]]`,
			want:      3.0,
			wantEmpty: true,
		},
		{
			name:      "blank latest value",
			payload:   `[` + kpHeader + `,["2025-06-01 03:00:00.000","",null,0]]`,
			want:      3.0,
			wantEmpty: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, empty, err := NormalizeKp([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantEmpty, empty)
		})
	}
}

func TestNormalizeKp_Unavailable(t *testing.T) {
	tests := map[string]string{
		"not json":          `<html>502 Bad Gateway</html>`,
		"object not array":  `{"Kp":3}`,
		"non-numeric value": `[` + kpHeader + `,["2025-06-01 03:00:00.000","n/a","9","8"]]`,
		"short latest row":  `[` + kpHeader + `,["2025-06-01 03:00:00.000"]]`,
		"latest row scalar": `[` + kpHeader + `,"oops"]`,
		"NaN string":        `[` + kpHeader + `,["2025-06-01 03:00:00.000","NaN","9","8"]]`,
	}
	for name, payload := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := NormalizeKp([]byte(payload))
			require.Error(t, err)
			assert.ErrorIs(t, err, spaceweather.ErrUnavailable)
		})
	}
}
