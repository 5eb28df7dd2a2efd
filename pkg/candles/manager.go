package candles

import (
	"fmt"
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacandle/pkg/metrics"
	"github.com/c9s/tacandle/pkg/types"
)

var log = logrus.WithField("component", "candles")

const DefaultName = "default"

type Config struct {
	// Timeframe resamples the raw candles into aligned buckets, 0 keeps the raw candles.
	Timeframe time.Duration `json:"timeframe,omitempty" yaml:"timeframe,omitempty"`

	// CandleLife drops head candles older than the newest one by more than this duration, 0 keeps everything.
	CandleLife time.Duration `json:"candleLife,omitempty" yaml:"candleLife,omitempty"`

	// FillGaps inserts flat candles for missing buckets.
	FillGaps bool `json:"fillGaps,omitempty" yaml:"fillGaps,omitempty"`

	// Candlestick derives a candlestick type from the resampled candles.
	Candlestick Transform `json:"-" yaml:"-"`
}

type mode int

const (
	modeAppend mode = iota
	modePrepend
	modeInsert
)

func (m mode) String() string {
	switch m {
	case modeAppend:
		return "append"
	case modePrepend:
		return "prepend"
	}
	return "insert"
}

// Manager owns the candle list of one (timeframe, candlestick) stream.
//
// The raw list holds the ingested candles as given. With a timeframe the
// resampled list holds one bucket candle per timeframe bucket; without one the
// raw list is used directly. With a candlestick transform the derived list
// holds the transformed candles and spans records how many derived candles
// each resampled candle produced, so the derivation can resume from any index.
type Manager struct {
	Config

	raw       types.CandleSlice
	resampled types.CandleSlice
	derived   types.CandleSlice
	spans     []int

	// dirty is the first resampled index changed by the current operation, -1 when clean
	dirty int

	log logrus.FieldLogger
}

func New(config Config) *Manager {
	m := &Manager{Config: config, dirty: -1}
	m.log = log.WithField("manager", m.Name())
	return m
}

// Name returns the stream key, e.g. "T5_HA", "T5", "HA" or "default".
func (m *Manager) Name() string {
	return Name(m.Timeframe, m.Candlestick)
}

func Name(timeframe time.Duration, candlestick Transform) string {
	name := types.TimeframeString(timeframe)
	if candlestick != nil {
		if name != "" {
			name += "_"
		}
		name += candlestick.Acronym()
	}

	if name == "" {
		return DefaultName
	}
	return name
}

// Candles returns the list indicators compute on: derived, else resampled, else raw.
func (m *Manager) Candles() types.CandleSlice {
	if m.Candlestick != nil {
		return m.derived
	}
	return m.bars()
}

func (m *Manager) RawCandles() types.CandleSlice {
	return m.raw
}

// ResampledCandles returns the candles before the candlestick transform.
func (m *Manager) ResampledCandles() types.CandleSlice {
	return m.bars()
}

func (m *Manager) Len() int {
	return len(m.Candles())
}

// Reset drops every candle.
func (m *Manager) Reset() {
	m.raw, m.resampled, m.derived, m.spans = nil, nil, nil, nil
	m.dirty = -1
}

func (m *Manager) bars() types.CandleSlice {
	if m.Timeframe > 0 {
		return m.resampled
	}
	return m.raw
}

func (m *Manager) markDirty(i int) {
	if m.dirty < 0 || i < m.dirty {
		m.dirty = i
	}
}

// accept drops the candles whose timeframe is larger than the manager
// timeframe and the late candles trim would drop right away.
func (m *Manager) accept(candles []*types.Candle) []*types.Candle {
	if m.Timeframe == 0 && m.CandleLife <= 0 {
		return candles
	}

	var newest time.Time
	if last := m.raw.Last(); last != nil {
		newest = last.Timestamp
	}

	accepted := make([]*types.Candle, 0, len(candles))
	for _, c := range candles {
		if m.Timeframe > 0 && c.Timeframe > m.Timeframe {
			m.log.Debugf("rejecting %s candle %s: timeframe is larger than %s", types.TimeframeString(c.Timeframe), c.Timestamp, types.TimeframeString(m.Timeframe))
			continue
		}
		if m.expired(c, newest) {
			m.log.Debugf("rejecting candle %s: older than the candle life %s", c.Timestamp, m.CandleLife)
			continue
		}
		accepted = append(accepted, c)
	}
	return accepted
}

// expired reports whether c falls outside the candle life counted back from
// the current tail. A batch is never measured against its own candles.
func (m *Manager) expired(c *types.Candle, newest time.Time) bool {
	if m.CandleLife <= 0 || newest.IsZero() {
		return false
	}

	ts := c.Timestamp
	if m.Timeframe > 0 {
		ts, newest = types.BucketEnd(ts, m.Timeframe), types.BucketEnd(newest, m.Timeframe)
	}
	return newest.Sub(ts) > m.CandleLife
}

// Append pushes candles to the tail. Candles that arrive before the current
// tail are inserted instead.
func (m *Manager) Append(candles ...*types.Candle) error {
	accepted := m.accept(candles)
	if len(accepted) == 0 {
		metrics.ObserveCandles(m.Name(), 0, len(candles), m.Len())
		return nil
	}

	last := m.raw.Last()
	for _, c := range accepted {
		if last != nil && c.Timestamp.Before(last.Timestamp) {
			m.log.Debugf("candle %s arrived before the tail %s, inserting", c.Timestamp, last.Timestamp)
			return m.run(modeInsert, accepted, len(candles)-len(accepted))
		}
		last = c
	}

	return m.run(modeAppend, accepted, len(candles)-len(accepted))
}

// Prepend pushes older candles to the head.
func (m *Manager) Prepend(candles ...*types.Candle) error {
	accepted := m.accept(candles)
	if len(accepted) == 0 {
		return nil
	}

	first := m.raw.At(0)
	for i, c := range accepted {
		if (first != nil && c.Timestamp.After(first.Timestamp)) || (i > 0 && c.Timestamp.Before(accepted[i-1].Timestamp)) {
			m.log.Debugf("prepended candle %s is out of order, inserting", c.Timestamp)
			return m.run(modeInsert, accepted, len(candles)-len(accepted))
		}
	}

	return m.run(modePrepend, accepted, len(candles)-len(accepted))
}

// Insert pushes candles in any order and sorts them into place.
func (m *Manager) Insert(candles ...*types.Candle) error {
	accepted := m.accept(candles)
	if len(accepted) == 0 {
		return nil
	}
	return m.run(modeInsert, accepted, len(candles)-len(accepted))
}

func (m *Manager) run(md mode, candles []*types.Candle, rejected int) error {
	m.dirty = -1

	switch md {
	case modeAppend:
		m.raw = append(m.raw, candles...)
	case modePrepend:
		m.raw = append(append(types.CandleSlice{}, candles...), m.raw...)
	case modeInsert:
		m.raw = append(m.raw, candles...)
		m.sortRaw()
	}

	if err := m.pipeline(md, candles); err != nil {
		m.log.WithError(err).Errorf("%s of %d candles failed", md, len(candles))
		return err
	}

	metrics.ObserveCandles(m.Name(), len(candles), rejected, m.Len())
	return nil
}

// pipeline runs resample, gap fill, the candlestick transform and trim.
func (m *Manager) pipeline(md mode, candles []*types.Candle) error {
	if err := m.resample(md, candles); err != nil {
		return err
	}

	if m.dirty < 0 {
		return nil
	}

	m.fillGaps()
	m.clearReadings()

	if err := m.transform(); err != nil {
		return err
	}

	m.trim()
	m.dirty = -1
	return nil
}

// less orders raw candles by timestamp; within one bucket the bucket-aligned
// candle sorts first.
func (m *Manager) less(a, b *types.Candle) bool {
	if m.Timeframe > 0 && types.BucketEnd(a.Timestamp, m.Timeframe).Equal(types.BucketEnd(b.Timestamp, m.Timeframe)) {
		aligned, bAligned := types.OnTimeframe(a.Timestamp, m.Timeframe), types.OnTimeframe(b.Timestamp, m.Timeframe)
		if aligned != bAligned {
			return aligned
		}
	}
	return a.Timestamp.Before(b.Timestamp)
}

func (m *Manager) sortRaw() {
	sort.SliceStable(m.raw, func(i, j int) bool {
		return m.less(m.raw[i], m.raw[j])
	})
}

// resample places the new candles into their buckets and records the first changed index.
func (m *Manager) resample(md mode, candles []*types.Candle) error {
	if m.Timeframe == 0 {
		m.markUnresampled(md, candles)
		m.mergeEqual()
		return nil
	}

	if md == modePrepend {
		m.markDirty(0)
	}

	ordered := append([]*types.Candle{}, candles...)
	if md != modeAppend {
		sort.SliceStable(ordered, func(i, j int) bool {
			return m.less(ordered[i], ordered[j])
		})
	}

	for _, c := range ordered {
		if err := m.place(c, md == modeAppend); err != nil {
			return err
		}
	}

	m.log.Debugf("resampled %d candles into %d buckets, dirty from %d", len(candles), len(m.resampled), m.dirty)
	return nil
}

// markUnresampled finds the first changed index when the raw list is used as is.
func (m *Manager) markUnresampled(md mode, candles []*types.Candle) {
	switch md {
	case modeAppend:
		m.markDirty(len(m.raw) - len(candles))
	case modePrepend:
		m.markDirty(0)
	case modeInsert:
		added := make(map[*types.Candle]struct{}, len(candles))
		for _, c := range candles {
			added[c] = struct{}{}
		}
		for i, c := range m.raw {
			if _, ok := added[c]; ok {
				m.markDirty(i)
				return
			}
		}
	}
}

// mergeEqual folds each raw candle sharing the timestamp of its predecessor,
// from the dirty index on, into a merged copy of the predecessor. The copy
// keeps the shared raw candles of other managers untouched.
func (m *Manager) mergeEqual() {
	from := m.dirty
	if from < 1 {
		from = 1
	}
	if from >= len(m.raw) {
		return
	}

	out := m.raw[:from]
	merged := 0
	for _, c := range m.raw[from:] {
		last := out[len(out)-1]
		if !c.Timestamp.Equal(last.Timestamp) {
			out = append(out, c)
			continue
		}

		bucket := last.Clone()
		bucket.Merge(c, 0)
		out[len(out)-1] = bucket
		m.markDirty(len(out) - 1)
		merged++
	}

	if merged > 0 {
		m.log.Debugf("merged %d candles into candles with the same timestamp", merged)
	}
	m.raw = out
}

// place merges c into the bucket ending at ceil(c.Timestamp / timeframe).
func (m *Manager) place(c *types.Candle, tailOnly bool) error {
	end := types.BucketEnd(c.Timestamp, m.Timeframe)
	n := len(m.resampled)

	if n == 0 || end.After(m.resampled[n-1].Timestamp) {
		m.resampled = append(m.resampled, m.newBucket(c, end))
		m.markDirty(n)
		return nil
	}

	idx := sort.Search(n, func(i int) bool {
		return !m.resampled[i].Timestamp.Before(end)
	})

	if idx < n && m.resampled[idx].Timestamp.Equal(end) {
		bucket := m.resampled[idx]
		if bucket.IsFilled() {
			m.resampled[idx] = m.newBucket(c, end)
		} else if !bucket.Merge(c, m.Timeframe) {
			return errors.Wrapf(types.ErrInvalidCandleOrder, "candle %s does not fit bucket %s", c.Timestamp, bucket.Timestamp)
		}
		m.markDirty(idx)
		return nil
	}

	if tailOnly {
		return errors.Wrapf(types.ErrInvalidCandleOrder, "candle %s falls before the last bucket %s", c.Timestamp, m.resampled[n-1].Timestamp)
	}

	m.resampled = append(m.resampled, nil)
	copy(m.resampled[idx+1:], m.resampled[idx:])
	m.resampled[idx] = m.newBucket(c, end)
	m.markDirty(idx)
	return nil
}

func (m *Manager) newBucket(c *types.Candle, end time.Time) *types.Candle {
	bucket := c.Clone()
	bucket.Timeframe = m.Timeframe
	bucket.SetResampledTimestamp(end)
	return bucket
}

// fillGaps inserts flat candles between buckets more than one timeframe apart
// and refreshes the existing fillers after the dirty index.
func (m *Manager) fillGaps() {
	if !m.FillGaps || m.Timeframe == 0 {
		return
	}

	start := m.dirty
	if start < 1 {
		start = 1
	}

	src := m.resampled
	filled := append(types.CandleSlice{}, src[:start]...)
	inserted := 0
	for i := start; i < len(src); i++ {
		prev := filled[len(filled)-1]
		c := src[i]

		for ts := prev.Timestamp.Add(m.Timeframe); ts.Before(c.Timestamp); ts = ts.Add(m.Timeframe) {
			prev = m.newFiller(prev, ts)
			filled = append(filled, prev)
			inserted++
		}

		if c.IsFilled() {
			c.SetValues(types.CandleValues{Open: prev.Close, High: prev.Close, Low: prev.Close, Close: prev.Close})
		}
		filled = append(filled, c)
	}

	if inserted > 0 {
		m.log.Debugf("filled %d missing %s buckets", inserted, types.TimeframeString(m.Timeframe))
	}

	m.resampled = filled
}

func (m *Manager) newFiller(prev *types.Candle, ts time.Time) *types.Candle {
	c := types.NewCandle(prev.Close, prev.Close, prev.Close, prev.Close, 0, ts)
	c.Timeframe = m.Timeframe
	c.AggregationFactor = 0
	return c
}

// clearReadings invalidates the readings of the exposed candles from the dirty index on.
func (m *Manager) clearReadings() {
	if m.Candlestick != nil {
		// derived candles after the dirty index are rebuilt
		return
	}

	bars := m.bars()
	for i := m.dirty; i < len(bars); i++ {
		bars[i].ClearReadings()
	}
}

// transform rederives the candlestick list from the dirty index on.
func (m *Manager) transform() error {
	if m.Candlestick == nil {
		return nil
	}

	bars := m.bars()
	from := m.dirty
	if from > len(m.spans) {
		from = len(m.spans)
	}

	offset := 0
	for _, n := range m.spans[:from] {
		offset += n
	}

	m.derived = m.derived[:offset]
	m.spans = m.spans[:from]

	var prev *types.Candle
	if offset > 0 {
		prev = m.derived[offset-1]
	}

	for i := from; i < len(bars); i++ {
		out, err := m.Candlestick.Derive(prev, bars[i])
		if err != nil {
			return errors.Wrapf(err, "%s transform of candle %s", m.Candlestick.Acronym(), bars[i].Timestamp)
		}

		m.derived = append(m.derived, out...)
		m.spans = append(m.spans, len(out))
		if len(out) > 0 {
			prev = out[len(out)-1]
		}
	}

	m.log.Debugf("derived %d %s candles from index %d", len(m.derived)-offset, m.Candlestick.Acronym(), from)
	return nil
}

// trim drops head candles older than the candle life.
func (m *Manager) trim() {
	if m.CandleLife <= 0 {
		return
	}

	before := len(m.raw)
	m.raw = trimHead(m.raw, m.CandleLife)
	dropped := before - len(m.raw)

	if m.Timeframe > 0 {
		before = len(m.resampled)
		m.resampled = trimHead(m.resampled, m.CandleLife)
		dropped = before - len(m.resampled)
	}

	if dropped <= 0 {
		return
	}

	if m.Candlestick != nil {
		offset := 0
		for _, n := range m.spans[:dropped] {
			offset += n
		}
		m.spans = m.spans[dropped:]
		m.derived = m.derived[offset:]
	}

	m.log.Debugf("trimmed %d candles older than %s", dropped, m.CandleLife)
}

func trimHead(candles types.CandleSlice, life time.Duration) types.CandleSlice {
	if len(candles) == 0 {
		return candles
	}

	newest := candles[len(candles)-1].Timestamp
	i := 0
	for i < len(candles)-1 && newest.Sub(candles[i].Timestamp) > life {
		i++
	}
	return candles[i:]
}

func (m *Manager) String() string {
	return fmt.Sprintf("%s manager: %d raw, %d candles", m.Name(), len(m.raw), m.Len())
}
