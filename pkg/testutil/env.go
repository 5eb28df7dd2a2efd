package testutil

import (
	"os"
	"testing"
)

// ExternalCandlesConfigured returns the candle file named by <prefix>_CANDLES
// when TEST_<prefix>=1 is set, for replay tests over larger data sets.
func ExternalCandlesConfigured(t *testing.T, prefix string) (path string, ok bool) {
	path, hasPath := os.LookupEnv(prefix + "_CANDLES")
	ok = hasPath && os.Getenv("TEST_"+prefix) == "1"
	if ok {
		t.Logf(prefix+" external candles enabled, file = %s", path)
	}

	return path, ok
}
