package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const Day = 24 * time.Hour

var timeframeUnits = map[byte]time.Duration{
	'S': time.Second,
	'T': time.Minute,
	'H': time.Hour,
	'D': Day,
}

// ParseTimeframe converts a timeframe given as "S30", "T5", "H1", "D1",
// an integer number of seconds or a time.Duration into a duration.
func ParseTimeframe(v interface{}) (time.Duration, error) {
	switch tf := v.(type) {
	case time.Duration:
		if tf <= 0 {
			return 0, errors.Wrapf(ErrInvalidTimeFrame, "timeframe %s must be positive", tf)
		}
		return tf.Truncate(time.Second), nil

	case int:
		return secondsTimeframe(int64(tf))

	case int64:
		return secondsTimeframe(tf)

	case float64:
		if tf != float64(int64(tf)) {
			return 0, errors.Wrapf(ErrInvalidTimeFrame, "timeframe %v is not a whole number of seconds", tf)
		}
		return secondsTimeframe(int64(tf))

	case string:
		return parseTimeframeString(tf)
	}

	return 0, errors.Wrapf(ErrInvalidTimeFrame, "unsupported timeframe type %T", v)
}

// MustParseTimeframe is ParseTimeframe for literals known to be valid.
func MustParseTimeframe(s string) time.Duration {
	d, err := ParseTimeframe(s)
	if err != nil {
		panic(err)
	}
	return d
}

func secondsTimeframe(n int64) (time.Duration, error) {
	if n <= 0 {
		return 0, errors.Wrapf(ErrInvalidTimeFrame, "timeframe %d must be a positive number of seconds", n)
	}
	return time.Duration(n) * time.Second, nil
}

func parseTimeframeString(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Wrap(ErrInvalidTimeFrame, "empty timeframe")
	}

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return secondsTimeframe(n)
	}

	unit, ok := timeframeUnits[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidTimeFrame, "timeframe %q has an unknown prefix", s)
	}

	n, err := strconv.ParseInt(s[1:], 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.Wrapf(ErrInvalidTimeFrame, "timeframe %q needs a positive integer after the prefix", s)
	}

	return time.Duration(n) * unit, nil
}

// TimeframeString encodes the duration with the largest unit dividing it, e.g. 5m -> "T5".
func TimeframeString(d time.Duration) string {
	switch {
	case d <= 0:
		return ""
	case d%Day == 0:
		return fmt.Sprintf("D%d", d/Day)
	case d%time.Hour == 0:
		return fmt.Sprintf("H%d", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("T%d", d/time.Minute)
	}
	return fmt.Sprintf("S%d", d/time.Second)
}

// StripMicroseconds drops the sub-second part of the timestamp.
func StripMicroseconds(ts time.Time) time.Time {
	return ts.Truncate(time.Second)
}

func floorSeconds(sec, width int64) int64 {
	r := sec % width
	if r < 0 {
		r += width
	}
	return sec - r
}

// RoundDown returns the greatest bucket start that is <= ts.
func RoundDown(ts time.Time, d time.Duration) time.Time {
	width := int64(d / time.Second)
	if width <= 0 {
		return StripMicroseconds(ts)
	}

	return time.Unix(floorSeconds(ts.Unix(), width), 0).In(ts.Location())
}

// BucketEnd returns the end E of the bucket (E-d, E] that contains ts.
func BucketEnd(ts time.Time, d time.Duration) time.Time {
	ts = StripMicroseconds(ts)
	if OnTimeframe(ts, d) {
		return ts
	}
	return RoundDown(ts, d).Add(d)
}

// OnTimeframe reports whether ts lies exactly on a bucket boundary.
func OnTimeframe(ts time.Time, d time.Duration) bool {
	width := int64(d / time.Second)
	if width <= 0 {
		return true
	}

	return ts.Nanosecond() == 0 && floorSeconds(ts.Unix(), width) == ts.Unix()
}
