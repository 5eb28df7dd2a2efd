package types

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type Direction int

const DirectionUp = 1
const DirectionNone = 0
const DirectionDown = -1

// CandleValues is the core OHLCV snapshot of a candle.
type CandleValues struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// Candle is one OHLCV bar. The timestamp marks the end of the bar.
type Candle struct {
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`

	Timestamp time.Time     `json:"timestamp"`
	Timeframe time.Duration `json:"timeframe,omitempty"`

	// AggregationFactor is the number of raw candles folded into this candle, 0 for filled gaps.
	AggregationFactor int `json:"aggregationFactor"`

	Indicators    map[string]Reading `json:"-"`
	SubIndicators map[string]Reading `json:"-"`

	tag   string
	clean *CandleValues

	startTimestamp time.Time
	endTimestamp   time.Time
}

func NewCandle(open, high, low, cloze float64, volume int64, timestamp time.Time) *Candle {
	return &Candle{
		Open:              open,
		High:              high,
		Low:               low,
		Close:             cloze,
		Volume:            volume,
		Timestamp:         StripMicroseconds(timestamp),
		AggregationFactor: 1,
		Indicators:        make(map[string]Reading),
		SubIndicators:     make(map[string]Reading),
	}
}

// Clone copies the candle shape. Computed readings are not copied.
func (c *Candle) Clone() *Candle {
	o := &Candle{
		Open:              c.Open,
		High:              c.High,
		Low:               c.Low,
		Close:             c.Close,
		Volume:            c.Volume,
		Timestamp:         c.Timestamp,
		Timeframe:         c.Timeframe,
		AggregationFactor: c.AggregationFactor,
		Indicators:        make(map[string]Reading),
		SubIndicators:     make(map[string]Reading),
		tag:               c.tag,
		startTimestamp:    c.startTimestamp,
		endTimestamp:      c.endTimestamp,
	}
	if c.clean != nil {
		clean := *c.clean
		o.clean = &clean
	}
	return o
}

func (c *Candle) Values() CandleValues {
	return CandleValues{Open: c.Open, High: c.High, Low: c.Low, Close: c.Close, Volume: c.Volume}
}

func (c *Candle) SetValues(v CandleValues) {
	c.Open, c.High, c.Low, c.Close, c.Volume = v.Open, v.High, v.Low, v.Close, v.Volume
}

func (c *Candle) Tag() string {
	return c.tag
}

// SetTag stamps the candlestick type acronym. A candle can only be tagged once.
func (c *Candle) SetTag(tag string) error {
	if c.tag != "" {
		return errors.Wrapf(ErrCandleAlreadyTagged, "candle %s is tagged %q, can not tag it %q", c.Timestamp, c.tag, tag)
	}
	c.tag = tag
	return nil
}

// SaveCleanValues snapshots the OHLCV values before a candlestick transform.
func (c *Candle) SaveCleanValues() {
	if c.clean != nil {
		return
	}
	v := c.Values()
	c.clean = &v
}

// RecoverCleanValues restores the snapshot taken by SaveCleanValues.
func (c *Candle) RecoverCleanValues() {
	if c.clean == nil {
		return
	}
	c.SetValues(*c.clean)
	c.clean = nil
}

func (c *Candle) CleanValues() (CandleValues, bool) {
	if c.clean == nil {
		return c.Values(), false
	}
	return *c.clean, true
}

// ResetCandle drops every computed reading and the candlestick tag.
func (c *Candle) ResetCandle() {
	c.ClearReadings()
	c.tag = ""
}

// ClearReadings drops the computed readings but keeps the tag.
func (c *Candle) ClearReadings() {
	c.Indicators = make(map[string]Reading)
	c.SubIndicators = make(map[string]Reading)
}

// SetResampledTimestamp moves the candle to the bucket end while remembering the original time span.
func (c *Candle) SetResampledTimestamp(ts time.Time) {
	if c.startTimestamp.IsZero() {
		c.startTimestamp = c.Timestamp
	}
	if c.endTimestamp.IsZero() {
		c.endTimestamp = c.Timestamp
	}
	c.Timestamp = StripMicroseconds(ts)
}

func (c *Candle) StartTimestamp() time.Time {
	if c.startTimestamp.IsZero() {
		return c.Timestamp
	}
	return c.startTimestamp
}

func (c *Candle) EndTimestamp() time.Time {
	if c.endTimestamp.IsZero() {
		return c.Timestamp
	}
	return c.endTimestamp
}

// Merge folds o into c when o lies within one timeframe of c. The open comes
// from the earliest original timestamp and the close from the latest, so the
// arrival order of the merged candles does not matter.
func (c *Candle) Merge(o *Candle, timeframe time.Duration) bool {
	if timeframe <= 0 {
		timeframe = c.Timeframe
	}

	if timeframe > 0 {
		if o.Timestamp.After(c.Timestamp.Add(timeframe)) || o.Timestamp.Before(c.Timestamp.Add(-timeframe)) {
			return false
		}
	}

	start, end := c.StartTimestamp(), c.EndTimestamp()
	oStart, oEnd := o.StartTimestamp(), o.EndTimestamp()

	if oStart.Before(start) {
		c.Open = o.Open
		start = oStart
	}

	if oEnd.After(end) {
		c.Close = o.Close
		end = oEnd
	}

	c.startTimestamp, c.endTimestamp = start, end
	c.High = math.Max(c.High, o.High)
	c.Low = math.Min(c.Low, o.Low)
	c.Volume += o.Volume
	c.AggregationFactor += o.AggregationFactor
	c.ResetCandle()
	return true
}

// Reading resolves a reading address on the candle: "<indicator>.<field>",
// an OHLCV attribute, an indicator name or a sub indicator name.
func (c *Candle) Reading(name string) Reading {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		outer := c.Reading(name[:i])
		if outer.Kind() == ReadingRecord {
			return outer.Field(name[i+1:])
		}
		return outer
	}

	switch name {
	case "open":
		return Number(c.Open)
	case "high":
		return Number(c.High)
	case "low":
		return Number(c.Low)
	case "close":
		return Number(c.Close)
	case "volume":
		return Number(float64(c.Volume))
	case "timestamp":
		return Number(float64(c.Timestamp.Unix()))
	}

	if r, ok := c.Indicators[name]; ok {
		return r
	}

	if r, ok := c.SubIndicators[name]; ok {
		return r
	}

	return Absent
}

// SetReading stores a reading under one namespace only. Absent readings remove the name.
func (c *Candle) SetReading(name string, r Reading, sub bool) {
	if c.Indicators == nil {
		c.Indicators = make(map[string]Reading)
	}
	if c.SubIndicators == nil {
		c.SubIndicators = make(map[string]Reading)
	}

	if r.IsAbsent() {
		c.DeleteReading(name)
		return
	}

	if sub {
		delete(c.Indicators, name)
		c.SubIndicators[name] = r
	} else {
		delete(c.SubIndicators, name)
		c.Indicators[name] = r
	}
}

func (c *Candle) HasReading(name string) bool {
	if _, ok := c.Indicators[name]; ok {
		return true
	}
	_, ok := c.SubIndicators[name]
	return ok
}

func (c *Candle) DeleteReading(name string) {
	delete(c.Indicators, name)
	delete(c.SubIndicators, name)
}

func (c *Candle) Direction() Direction {
	switch {
	case c.Close > c.Open:
		return DirectionUp
	case c.Close < c.Open:
		return DirectionDown
	}
	return DirectionNone
}

// Body returns the absolute height of the real body.
func (c *Candle) Body() float64 {
	return math.Abs(c.Close - c.Open)
}

// Range returns high - low.
func (c *Candle) Range() float64 {
	return c.High - c.Low
}

// TypicalPrice returns (high + low + close) / 3.
func (c *Candle) TypicalPrice() float64 {
	return (c.High + c.Low + c.Close) / 3.0
}

// IsFilled reports whether the candle was synthesized to fill a gap.
func (c *Candle) IsFilled() bool {
	return c.AggregationFactor == 0
}

func (c *Candle) String() string {
	tag := c.tag
	if tag == "" {
		tag = "-"
	}
	return fmt.Sprintf("%s %s %s O: %.4f H: %.4f L: %.4f C: %.4f V: %d AGG: %d",
		c.Timestamp.Format(time.RFC3339), TimeframeString(c.Timeframe), tag,
		c.Open, c.High, c.Low, c.Close, c.Volume, c.AggregationFactor)
}
