// Package strategy coordinates indicators over one raw candle stream. Candle
// managers are shared by every indicator with the same timeframe and
// candlestick, so each stream is resampled and transformed only once.
package strategy

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/c9s/tacandle/pkg/candles"
	"github.com/c9s/tacandle/pkg/indicator"
	"github.com/c9s/tacandle/pkg/types"
)

var log = logrus.WithField("component", "strategy")

type Config struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// CandleLife and FillGaps apply to every manager unless the indicator sets its own.
	CandleLife types.Timeframe `json:"candleLife,omitempty" yaml:"candleLife,omitempty"`
	FillGaps   bool            `json:"fillGaps,omitempty" yaml:"fillGaps,omitempty"`
}

type Strategy struct {
	Config

	ID string

	candles types.CandleSlice

	managers     map[string]*candles.Manager
	managerNames []string

	indicators []indicator.Indicator

	log logrus.FieldLogger
}

func New(config Config) *Strategy {
	s := &Strategy{
		Config:   config,
		ID:       uuid.New().String(),
		managers: make(map[string]*candles.Manager),
	}

	s.log = log.WithFields(logrus.Fields{
		"strategy": config.Name,
		"id":       s.ID,
	})

	s.addManager(candles.DefaultName, candles.Config{
		CandleLife: config.CandleLife.Duration(),
		FillGaps:   config.FillGaps,
	})
	return s
}

func (s *Strategy) addManager(name string, config candles.Config) *candles.Manager {
	m := candles.New(config)
	s.managers[name] = m
	s.managerNames = append(s.managerNames, name)
	return m
}

// RawCandles returns the ingested candles in timestamp order.
func (s *Strategy) RawCandles() types.CandleSlice {
	return s.candles
}

// Len returns the number of ingested candles.
func (s *Strategy) Len() int {
	return len(s.candles)
}

// Manager returns the candle manager of a stream key such as "T5_HA" or "default".
func (s *Strategy) Manager(name string) (*candles.Manager, bool) {
	m, ok := s.managers[name]
	return m, ok
}

// Candles returns the candles of the (timeframe, candlestick) stream.
func (s *Strategy) Candles(timeframe time.Duration, candlestick string) (types.CandleSlice, error) {
	transform, err := candles.NewTransform(candlestick)
	if err != nil {
		return nil, err
	}

	name := candles.Name(timeframe, transform)
	m, ok := s.managers[name]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidConfiguration, "no indicator uses the %s candles", name)
	}
	return m.Candles(), nil
}

// AddIndicator binds the indicator to the shared manager of its stream and
// calculates it over the candles ingested so far.
func (s *Strategy) AddIndicator(ind indicator.Indicator) error {
	if _, ok := s.Indicator(ind.Name()); ok {
		return errors.Wrapf(types.ErrInvalidIndicator, "indicator %s already exists", ind.Name())
	}

	config, err := ind.ManagerConfig()
	if err != nil {
		return err
	}

	if config.CandleLife == 0 {
		config.CandleLife = s.CandleLife.Duration()
	}
	config.FillGaps = config.FillGaps || s.FillGaps

	name := candles.Name(config.Timeframe, config.Candlestick)
	m, ok := s.managers[name]
	if !ok {
		m = s.addManager(name, config)
		if err := m.Append(s.candles...); err != nil {
			return err
		}
		s.log.Debugf("created candle manager %s", name)
	} else if m.CandleLife != config.CandleLife || m.FillGaps != config.FillGaps {
		s.log.Warnf("indicator %s shares the %s candles: using candleLife=%s fillGaps=%t instead of candleLife=%s fillGaps=%t",
			ind.Name(), name, m.CandleLife, m.FillGaps, config.CandleLife, config.FillGaps)
	}

	ind.SetManager(m)
	if err := ind.Calculate(); err != nil {
		return err
	}

	s.indicators = append(s.indicators, ind)
	s.log.Infof("added indicator %s on %s candles", ind.Name(), name)
	return nil
}

// AddIndicators builds and adds indicators from kind and parameters, see indicator.New.
func (s *Strategy) AddIndicators(kind string, params ...map[string]interface{}) error {
	if len(params) == 0 {
		params = append(params, nil)
	}

	var errs error
	for _, p := range params {
		ind, err := indicator.New(kind, p)
		if err == nil {
			err = s.AddIndicator(ind)
		}
		errs = multierr.Append(errs, err)
	}
	return errs
}

// Indicator returns the indicator named name.
func (s *Strategy) Indicator(name string) (indicator.Indicator, bool) {
	for _, ind := range s.indicators {
		if ind.Name() == name {
			return ind, true
		}
	}
	return nil, false
}

func (s *Strategy) Indicators() []indicator.Indicator {
	return s.indicators
}

func (s *Strategy) mustIndicator(name string) (indicator.Indicator, error) {
	ind, ok := s.Indicator(name)
	if !ok {
		return nil, errors.Wrapf(types.ErrMissingIndicator, "indicator %s", name)
	}
	return ind, nil
}

// Append adds candles to the tail of every stream and calculates the new readings.
// Candles older than the current tail are inserted instead.
func (s *Strategy) Append(newCandles ...*types.Candle) error {
	if len(newCandles) == 0 {
		return nil
	}

	s.ingest(newCandles)
	return s.fanOut(newCandles, (*candles.Manager).Append)
}

// Prepend adds candles older than the current head.
func (s *Strategy) Prepend(newCandles ...*types.Candle) error {
	if len(newCandles) == 0 {
		return nil
	}

	s.ingest(newCandles)
	return s.fanOut(newCandles, (*candles.Manager).Prepend)
}

// Insert adds candles anywhere in the stream.
func (s *Strategy) Insert(newCandles ...*types.Candle) error {
	if len(newCandles) == 0 {
		return nil
	}

	s.ingest(newCandles)
	return s.fanOut(newCandles, (*candles.Manager).Insert)
}

func (s *Strategy) ingest(newCandles []*types.Candle) {
	s.candles = append(s.candles, newCandles...)
	if !sort.SliceIsSorted(s.candles, s.less) {
		sort.SliceStable(s.candles, s.less)
	}
	s.candles = mergeEqual(s.candles)
	s.trim()
}

// mergeEqual folds each candle sharing the timestamp of its predecessor into
// a merged copy of the predecessor.
func mergeEqual(cs types.CandleSlice) types.CandleSlice {
	if len(cs) < 2 {
		return cs
	}

	out := cs[:1]
	for _, c := range cs[1:] {
		last := out[len(out)-1]
		if !c.Timestamp.Equal(last.Timestamp) {
			out = append(out, c)
			continue
		}

		merged := last.Clone()
		merged.Merge(c, 0)
		out[len(out)-1] = merged
	}
	return out
}

func (s *Strategy) less(i, j int) bool {
	return s.candles[i].Timestamp.Before(s.candles[j].Timestamp)
}

// trim drops raw candles no manager can need any more.
func (s *Strategy) trim() {
	life := s.CandleLife.Duration()
	if life <= 0 || len(s.candles) == 0 {
		return
	}

	for _, m := range s.managers {
		if m.CandleLife == 0 || m.CandleLife > life {
			return
		}
	}

	cutoff := s.candles[len(s.candles)-1].Timestamp.Add(-life)
	n := sort.Search(len(s.candles), func(i int) bool {
		return !s.candles[i].Timestamp.Before(cutoff)
	})
	s.candles = s.candles[n:]
}

func (s *Strategy) fanOut(newCandles []*types.Candle, add func(m *candles.Manager, cs ...*types.Candle) error) error {
	var errs error
	for _, name := range s.managerNames {
		if err := add(s.managers[name], newCandles...); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "%s candles", name))
		}
	}

	if errs != nil {
		s.log.WithError(errs).Error("unable to add candles")
		return errs
	}
	return s.Calculate()
}

// Calculate fills the missing readings of every indicator.
func (s *Strategy) Calculate() error {
	for _, ind := range s.indicators {
		if err := ind.Calculate(); err != nil {
			return errors.Wrapf(err, "calculate %s", ind.Name())
		}
	}
	return nil
}

// Purge removes the readings of the named indicator, keeping the indicator.
func (s *Strategy) Purge(name string) error {
	ind, err := s.mustIndicator(name)
	if err != nil {
		return err
	}

	ind.Purge()
	return nil
}

// Recalculate purges and calculates the named indicator again, every indicator when name is empty.
func (s *Strategy) Recalculate(name string) error {
	if name == "" {
		for _, ind := range s.indicators {
			if err := ind.Recalculate(); err != nil {
				return err
			}
		}
		return nil
	}

	ind, err := s.mustIndicator(name)
	if err != nil {
		return err
	}
	return ind.Recalculate()
}

// RemoveIndicator purges the named indicator and forgets it. A manager left
// without indicators is dropped, except the default one.
func (s *Strategy) RemoveIndicator(name string) error {
	ind, err := s.mustIndicator(name)
	if err != nil {
		return err
	}

	ind.Purge()
	for i, other := range s.indicators {
		if other == ind {
			s.indicators = append(s.indicators[:i], s.indicators[i+1:]...)
			break
		}
	}

	m := ind.Manager()
	for _, other := range s.indicators {
		if other.Manager() == m {
			return nil
		}
	}

	for i, managerName := range s.managerNames {
		if s.managers[managerName] == m && managerName != candles.DefaultName {
			delete(s.managers, managerName)
			s.managerNames = append(s.managerNames[:i], s.managerNames[i+1:]...)
			s.log.Debugf("dropped candle manager %s", managerName)
			break
		}
	}
	return nil
}

// managerOf returns the manager holding the readings of a reading address,
// nil when the address is not bound to an indicator.
func (s *Strategy) managerOf(address string) *candles.Manager {
	name := address
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}

	if ind, ok := s.Indicator(name); ok {
		return ind.Manager()
	}

	// sub indicator names extend their parent name, the longest parent wins
	var parent indicator.Indicator
	for _, ind := range s.indicators {
		if strings.HasPrefix(name, ind.Name()+"_") && (parent == nil || len(ind.Name()) > len(parent.Name())) {
			parent = ind
		}
	}

	if parent == nil {
		return nil
	}
	return parent.Manager()
}

// CandlesOf returns the stream holding the address, the default stream when no indicator matches.
func (s *Strategy) CandlesOf(address string) types.CandleSlice {
	if m := s.managerOf(address); m != nil {
		return m.Candles()
	}
	return s.managers[candles.DefaultName].Candles()
}

// Reading looks the address up on candle index of the stream that holds it,
// the default stream for OHLCV attributes. Negative indexes count from the tail.
func (s *Strategy) Reading(address string, index int) types.Reading {
	return s.CandlesOf(address).ReadingAt(address, index)
}

// ReadingAsList returns the whole series of the address.
func (s *Strategy) ReadingAsList(address string) []types.Reading {
	return s.CandlesOf(address).Readings(address)
}

// Float returns the numeric reading of the address on candle index.
func (s *Strategy) Float(address string, index int) (float64, bool) {
	return s.Reading(address, index).Float64()
}
