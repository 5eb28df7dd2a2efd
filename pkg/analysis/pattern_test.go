package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/tacandle/pkg/types"
)

func TestDoji(t *testing.T) {
	s := buildSlice(10, 12, 11, 13, 13)

	assert.True(t, Doji(s, 0, 3).IsAbsent())

	doji, ok := Doji(s, 4, 3).Bool()
	require.True(t, ok)
	assert.True(t, doji)

	doji, _ = Doji(s, 3, 3).Bool()
	assert.False(t, doji)

	// the lookback is clamped at the head
	doji, ok = Doji(s, 1, 10).Bool()
	require.True(t, ok)
	assert.False(t, doji)
}

func TestEngulfing(t *testing.T) {
	s := buildSlice(10, 11, 9)
	s[2].Open = 11.5

	engulfing, ok := Engulfing(s, 2, 0).Bool()
	require.True(t, ok)
	assert.True(t, engulfing)

	engulfing, _ = Engulfing(s, 1, 0).Bool()
	assert.False(t, engulfing)
}

func TestLookupPattern(t *testing.T) {
	fn, err := LookupPattern("Doji")
	require.NoError(t, err)
	assert.NotNil(t, fn)

	_, err = LookupPattern("unicorn")
	assert.ErrorIs(t, err, types.ErrInvalidPattern)
}

func TestRegistryNames(t *testing.T) {
	assert.Equal(t, []string{"doji", "engulfing"}, Patterns())
	assert.Contains(t, Analyses(), "crossover")
	assert.Contains(t, Analyses(), "mean_rising")
	assert.IsIncreasing(t, Analyses())
}
