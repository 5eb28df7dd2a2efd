package types

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp accepts an ISO-8601 string, a time.Time or unix seconds.
func ParseTimestamp(v interface{}) (time.Time, error) {
	switch ts := v.(type) {
	case time.Time:
		return StripMicroseconds(ts), nil
	case *time.Time:
		if ts == nil {
			return time.Time{}, nil
		}
		return StripMicroseconds(*ts), nil
	case int:
		return time.Unix(int64(ts), 0).UTC(), nil
	case int64:
		return time.Unix(ts, 0).UTC(), nil
	case float64:
		return time.Unix(int64(ts), 0).UTC(), nil
	case string:
		for _, layout := range timestampLayouts {
			if t, err := time.Parse(layout, ts); err == nil {
				return StripMicroseconds(t), nil
			}
		}
		if sec, err := strconv.ParseInt(ts, 10, 64); err == nil {
			return time.Unix(sec, 0).UTC(), nil
		}
		return time.Time{}, errors.Wrapf(ErrInvalidCandle, "can not parse timestamp %q", ts)
	case nil:
		return time.Time{}, nil
	}

	return time.Time{}, errors.Wrapf(ErrInvalidCandle, "unsupported timestamp type %T", v)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func toVolume(v interface{}) (int64, bool) {
	if n, ok := v.(int64); ok {
		return n, true
	}

	f, ok := toFloat(v)
	if !ok {
		return 0, false
	}
	return int64(math.Round(f)), true
}

// NewCandleFromMap builds a candle from a record with case-insensitive keys.
func NewCandleFromMap(record map[string]interface{}) (*Candle, error) {
	fields := make(map[string]interface{}, len(record))
	for k, v := range record {
		fields[strings.ToLower(k)] = v
	}

	var values [4]float64
	for i, key := range []string{"open", "high", "low", "close"} {
		raw, ok := fields[key]
		if !ok {
			return nil, errors.Wrapf(ErrInvalidCandle, "candle record is missing %q", key)
		}
		f, ok := toFloat(raw)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidCandle, "candle %s %v is not a number", key, raw)
		}
		values[i] = f
	}

	var volume int64
	if raw, ok := fields["volume"]; ok {
		v, ok := toVolume(raw)
		if !ok {
			return nil, errors.Wrapf(ErrInvalidCandle, "candle volume %v is not a number", raw)
		}
		volume = v
	}

	ts, err := ParseTimestamp(fields["timestamp"])
	if err != nil {
		return nil, err
	}

	c := NewCandle(values[0], values[1], values[2], values[3], volume, ts)
	if tf, ok := fields["timeframe"]; ok && tf != nil {
		d, err := ParseTimeframe(tf)
		if err != nil {
			return nil, err
		}
		c.Timeframe = d
	}

	return c, nil
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// isTimestampValue reports values that can only be a timestamp. Numbers and
// numeric strings are excluded since they may just as well be a price.
func isTimestampValue(v interface{}) bool {
	switch s := v.(type) {
	case time.Time, *time.Time:
		return true
	case string:
		if isNumeric(s) {
			return false
		}
		_, err := ParseTimestamp(s)
		return err == nil
	}
	return false
}

// isTimeframeValue reports values that can only be a timeframe.
func isTimeframeValue(v interface{}) bool {
	switch s := v.(type) {
	case time.Duration:
		return true
	case string:
		return !isNumeric(s)
	}
	return false
}

// consistentPrices reports whether values read as open, high, low, close
// form a valid bar.
func consistentPrices(values []interface{}) bool {
	var p [4]float64
	for i := range p {
		f, ok := toFloat(values[i])
		if !ok {
			return false
		}
		p[i] = f
	}
	open, high, low, cloze := p[0], p[1], p[2], p[3]
	return high >= math.Max(open, cloze) && low <= math.Min(open, cloze) && low <= high
}

// splitSixValues tells [timestamp, o, h, l, c, v] from [o, h, l, c, v, timeframe]
// when both ends are plain numbers, by checking which reading yields a valid bar.
func splitSixValues(values []interface{}) (ts, tf interface{}, rest []interface{}, err error) {
	switch {
	case isTimestampValue(values[0]):
		return values[0], nil, values[1:], nil
	case isTimeframeValue(values[5]):
		return nil, values[5], values[:5], nil
	}

	prefixed := consistentPrices(values[1:5])
	_, tfErr := ParseTimeframe(values[5])
	suffixed := tfErr == nil && consistentPrices(values[:4])

	switch {
	case prefixed && !suffixed:
		return values[0], nil, values[1:], nil
	case suffixed && !prefixed:
		return nil, values[5], values[:5], nil
	case prefixed && suffixed:
		return nil, nil, nil, errors.Wrapf(ErrInvalidCandle, "ambiguous candle %v: can not tell a leading timestamp from a trailing timeframe", values)
	}
	// neither reading is a valid bar, let the timestamp reading report it
	return values[0], nil, values[1:], nil
}

// NewCandleFromSlice builds a candle from [open, high, low, close, volume],
// optionally prefixed by a timestamp and/or suffixed by a timeframe.
func NewCandleFromSlice(values []interface{}) (*Candle, error) {
	var ts, tf interface{}

	switch len(values) {
	case 5:
	case 6:
		var err error
		if ts, tf, values, err = splitSixValues(values); err != nil {
			return nil, err
		}
	case 7:
		ts, tf, values = values[0], values[6], values[1:6]
	default:
		return nil, errors.Wrapf(ErrInvalidCandle, "positional candle needs 5 to 7 values, got %d", len(values))
	}

	return NewCandleFromMap(map[string]interface{}{
		"open":      values[0],
		"high":      values[1],
		"low":       values[2],
		"close":     values[3],
		"volume":    values[4],
		"timestamp": ts,
		"timeframe": tf,
	})
}

// NewCandleFrom accepts a *Candle, Candle, record map or positional slice.
func NewCandleFrom(v interface{}) (*Candle, error) {
	switch c := v.(type) {
	case *Candle:
		return c, nil
	case Candle:
		return &c, nil
	case map[string]interface{}:
		return NewCandleFromMap(c)
	case []interface{}:
		return NewCandleFromSlice(c)
	case []float64:
		values := make([]interface{}, len(c))
		for i, f := range c {
			values[i] = f
		}
		return NewCandleFromSlice(values)
	}

	return nil, errors.Wrapf(ErrInvalidCandle, "unsupported candle type %T", v)
}

// NewCandles converts a list of ingestible values into candles.
func NewCandles(values []interface{}) ([]*Candle, error) {
	candles := make([]*Candle, 0, len(values))
	for i, v := range values {
		c, err := NewCandleFrom(v)
		if err != nil {
			return nil, errors.Wrapf(err, "candle #%d", i)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

// ToMap exports the candle as a record.
func (c *Candle) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"open":      c.Open,
		"high":      c.High,
		"low":       c.Low,
		"close":     c.Close,
		"volume":    c.Volume,
		"timestamp": c.Timestamp,
	}
	if c.Timeframe > 0 {
		m["timeframe"] = TimeframeString(c.Timeframe)
	}
	return m
}

// ToSlice exports the candle in positional form [timestamp, o, h, l, c, v(, timeframe)].
func (c *Candle) ToSlice() []interface{} {
	s := []interface{}{c.Timestamp, c.Open, c.High, c.Low, c.Close, c.Volume}
	if c.Timeframe > 0 {
		s = append(s, TimeframeString(c.Timeframe))
	}
	return s
}
