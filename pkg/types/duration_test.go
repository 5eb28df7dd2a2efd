package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
	}{
		{input: "3h", want: 3 * time.Hour},
		{input: "3d", want: 3 * Day},
		{input: "3w", want: 21 * Day},
	}

	for _, tt := range tests {
		got, err := ParseSimpleDuration(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseSimpleDuration("3m")
	assert.Error(t, err)
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input   interface{}
		want    time.Duration
		wantErr bool
	}{
		{input: "T5", want: 5 * time.Minute},
		{input: 60, want: time.Minute},
		{input: "2d", want: 2 * Day},
		{input: "90m", want: 90 * time.Minute},
		{input: "-90m", wantErr: true},
		{input: "Q5", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.input)
		if tt.wantErr {
			assert.Error(t, err, "input %v", tt.input)
			continue
		}
		require.NoError(t, err, "input %v", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestTimeframe_JSON(t *testing.T) {
	var s struct {
		Timeframe  Timeframe `json:"timeframe"`
		CandleLife Timeframe `json:"candleLife"`
		Missing    Timeframe `json:"missing"`
	}

	err := json.Unmarshal([]byte(`{"timeframe": "T5", "candleLife": 3600, "missing": null}`), &s)
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, s.Timeframe.Duration())
	assert.Equal(t, time.Hour, s.CandleLife.Duration())
	assert.Equal(t, Timeframe(0), s.Missing)

	out, err := json.Marshal(s.Timeframe)
	require.NoError(t, err)
	assert.Equal(t, `"T5"`, string(out))

	err = json.Unmarshal([]byte(`{"timeframe": "X1"}`), &s)
	assert.Error(t, err)

	err = json.Unmarshal([]byte(`{"timeframe": true}`), &s)
	assert.Error(t, err)
}
