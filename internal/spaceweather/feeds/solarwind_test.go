package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/spaceweather-forecast/internal/spaceweather"
)

const windHeader = `["time_tag","bx_gsm","by_gsm","bz_gsm","bt","lat_gsm","speed","density"]`

func TestNormalizeSolarWind_LatestRow(t *testing.T) {
	payload := `[` + windHeader + `,
		["2025-06-01 00:00:00.000","1.1","2.2","3.3","4.4","10","410.5","3.2"],
		["2025-06-01 00:01:00.000","0.5","-1.0","-4.25","6.1","-12","512.3","7.75"]]`

	wind, empty, err := NormalizeSolarWind([]byte(payload))
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Equal(t, spaceweather.SolarWind{Speed: 512.3, Density: 7.75, Bz: -4.25, Bt: 6.1}, wind)
}

func TestNormalizeSolarWind_SkipsMalformedRows(t *testing.T) {
	payload := `[` + windHeader + `,
		["2025-06-01 00:00:00.000","1","1","-2.5","5.5","0","455.0","4.1"],
		["2025-06-01 00:01:00.000","1","1","bad","5.0","0","460.0","4.0"],
		["2025-06-01 00:02:00.000","1","1",null,"5.0","0","470.0","4.0"],
		["2025-06-01 00:03:00.000","1","1","-1.0","5.0"]]`

	wind, empty, err := NormalizeSolarWind([]byte(payload))
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Equal(t, spaceweather.SolarWind{Speed: 455, Density: 4.1, Bz: -2.5, Bt: 5.5}, wind)
}

func TestNormalizeSolarWind_NumericCells(t *testing.T) {
	payload := `[` + windHeader + `,["2025-06-01 00:00:00.000",1,1,2.0,3.5,0,350,1.5]]`

	wind, empty, err := NormalizeSolarWind([]byte(payload))
	require.NoError(t, err)
	assert.False(t, empty)
	assert.Equal(t, spaceweather.SolarWind{Speed: 350, Density: 1.5, Bz: 2, Bt: 3.5}, wind)
}

func TestNormalizeSolarWind_NoUsableRowsUsesDefault(t *testing.T) {
	payloads := map[string]string{
		"empty table": `[]`,
		"header only": `[` + windHeader + `]`,
		"all malformed": `[` + windHeader + `,
			["2025-06-01 00:00:00.000","1","1","x","5","0","400","5"],
			["2025-06-01 00:01:00.000","1","1","-1","5","0","",""]]`,
	}
	for name, payload := range payloads {
		t.Run(name, func(t *testing.T) {
			wind, empty, err := NormalizeSolarWind([]byte(payload))
			require.NoError(t, err)
			assert.True(t, empty)
			assert.Equal(t, spaceweather.DefaultSolarWind, wind)
		})
	}
}

func TestNormalizeSolarWind_HeaderRowIsNeverData(t *testing.T) {
	// A single row is treated as the header even if it looks numeric.
	payload := `[["t","1","1","-9","9","0","900","9"]]`

	wind, empty, err := NormalizeSolarWind([]byte(payload))
	require.NoError(t, err)
	assert.True(t, empty)
	assert.Equal(t, spaceweather.DefaultSolarWind, wind)
}

func TestNormalizeSolarWind_Unavailable(t *testing.T) {
	_, _, err := NormalizeSolarWind([]byte(`not json`))
	require.Error(t, err)
	assert.ErrorIs(t, err, spaceweather.ErrUnavailable)
}
