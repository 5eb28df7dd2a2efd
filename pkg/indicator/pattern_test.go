package indicator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPattern_Doji(t *testing.T) {
	candles := buildCandles(10, 12, 11, 13, 13)
	p := NewPattern("doji", 3)
	require.NoError(t, p.Append(candles...))
	assert.Equal(t, "PATTERN_doji_3", p.Name())

	assert.True(t, p.Reading(0).IsAbsent())

	doji, ok := p.Reading(4).Bool()
	require.True(t, ok)
	assert.True(t, doji)

	doji, ok = p.Reading(3).Bool()
	require.True(t, ok)
	assert.False(t, doji)
}
