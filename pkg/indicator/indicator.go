package indicator

import (
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/c9s/tacandle/pkg/candles"
	"github.com/c9s/tacandle/pkg/metrics"
	"github.com/c9s/tacandle/pkg/types"
)

var log = logrus.WithField("component", "indicator")

const DefaultRounding = 4

// NoRounding keeps readings at full precision.
const NoRounding = -1

// Config holds the settings every indicator shares.
type Config struct {
	// Name overrides the generated name.
	Name string `json:"name,omitempty"`

	Timeframe   types.Timeframe `json:"timeframe,omitempty"`
	Candlestick string          `json:"candlestick,omitempty"`

	// CandleLife and FillGaps configure the manager created for a standalone indicator.
	CandleLife types.Timeframe `json:"candleLife,omitempty"`
	FillGaps   bool            `json:"fillGaps,omitempty"`

	// Rounding is the number of decimals kept, DefaultRounding when nil.
	Rounding *int `json:"rounding,omitempty"`
}

type Option func(c *Config)

func WithName(name string) Option {
	return func(c *Config) { c.Name = name }
}

func WithTimeframe(timeframe time.Duration) Option {
	return func(c *Config) { c.Timeframe = types.Timeframe(timeframe) }
}

func WithCandlestick(candlestick string) Option {
	return func(c *Config) { c.Candlestick = candlestick }
}

func WithCandleLife(life time.Duration) Option {
	return func(c *Config) { c.CandleLife = types.Timeframe(life) }
}

func WithFillGaps(fill bool) Option {
	return func(c *Config) { c.FillGaps = fill }
}

func WithRounding(decimals int) Option {
	return func(c *Config) { c.Rounding = &decimals }
}

// Calculator is the leaf computation of an indicator.
type Calculator interface {
	// Kind is the indicator type, the first part of the generated name.
	Kind() string

	// Params are the parameters embedded in the generated name.
	Params() []interface{}

	Validate() error

	// Initialise declares the sub and managed indicators. It runs once, on the first calculation.
	Initialise() error

	// CalculateReading computes the reading of candle i. Previous readings are already present.
	CalculateReading(i int) types.Reading

	base() *Base
}

// Indicator is the public contract shared by every indicator.
type Indicator interface {
	Name() string
	Kind() string
	IsSub() bool
	Settings() Config

	Manager() *candles.Manager
	SetManager(m *candles.Manager)
	ManagerConfig() (candles.Config, error)
	Candles() types.CandleSlice

	Calculate() error
	CalculateIndex(start, end int) error
	Purge()
	Recalculate() error
	Append(candles ...*types.Candle) error

	Reading(i int) types.Reading
	Readings() []types.Reading

	// Children returns the prior, posterior and managed sub indicators.
	Children() []Indicator
}

// Base carries the state shared by all indicators: the candle manager, the
// name and the sub indicator arenas. Concrete indicators embed it and call
// setup with themselves.
type Base struct {
	Config

	impl Calculator
	name string
	sub  bool

	manager     *candles.Manager
	initialised bool

	prior     []Indicator
	posterior []Indicator

	managed      map[string]Indicator
	managedRoles []string

	log logrus.FieldLogger
}

func (b *Base) base() *Base {
	return b
}

// setup binds the leaf computation to its base and applies the options.
func setup[T Calculator](impl T, options ...Option) T {
	b := impl.base()
	for _, option := range options {
		option(&b.Config)
	}
	b.bind(impl)
	return impl
}

func (b *Base) bind(impl Calculator) {
	b.impl = impl
	b.name = ""
	b.log = log.WithField("indicator", b.Name())
}

func (b *Base) Name() string {
	if b.Config.Name != "" {
		return b.Config.Name
	}

	if b.name == "" && b.impl != nil {
		b.name = GenerateName(b.impl.Kind(), b.impl.Params(), b.Timeframe.Duration(), b.Candlestick)
	}
	return b.name
}

func (b *Base) Kind() string {
	return b.impl.Kind()
}

func (b *Base) IsSub() bool {
	return b.sub
}

func (b *Base) Settings() Config {
	return b.Config
}

func (b *Base) rounding() int {
	if b.Rounding == nil {
		return DefaultRounding
	}
	return *b.Rounding
}

// Round applies the indicator rounding to the reading.
func (b *Base) Round(r types.Reading) types.Reading {
	return r.Round(b.rounding())
}

// RoundFloat applies the indicator rounding to a number.
func (b *Base) RoundFloat(v float64) float64 {
	f, ok := types.Number(v).Round(b.rounding()).Float64()
	if !ok {
		return v
	}
	return f
}

func (b *Base) Manager() *candles.Manager {
	return b.manager
}

// SetManager rebinds the indicator and all its sub indicators to m.
func (b *Base) SetManager(m *candles.Manager) {
	b.manager = m
	for _, child := range b.Children() {
		child.SetManager(m)
	}
}

func (b *Base) Candles() types.CandleSlice {
	if b.manager == nil {
		return nil
	}
	return b.manager.Candles()
}

func (b *Base) Children() []Indicator {
	children := make([]Indicator, 0, len(b.prior)+len(b.posterior)+len(b.managed))
	children = append(children, b.prior...)
	children = append(children, b.posterior...)
	for _, role := range b.managedRoles {
		children = append(children, b.managed[role])
	}
	return children
}

// ManagerConfig returns the candle manager settings the indicator asks for.
func (b *Base) ManagerConfig() (candles.Config, error) {
	transform, err := candles.NewTransform(b.Candlestick)
	if err != nil {
		return candles.Config{}, err
	}

	return candles.Config{
		Timeframe:   b.Timeframe.Duration(),
		CandleLife:  b.CandleLife.Duration(),
		FillGaps:    b.FillGaps,
		Candlestick: transform,
	}, nil
}

func (b *Base) init() error {
	if b.initialised {
		return nil
	}

	if b.impl == nil {
		return errors.Wrap(types.ErrInvalidIndicator, "indicator is not set up")
	}

	if err := b.impl.Validate(); err != nil {
		return err
	}

	if b.manager == nil {
		config, err := b.ManagerConfig()
		if err != nil {
			return err
		}
		b.manager = candles.New(config)
	}

	b.initialised = true
	if err := b.impl.Initialise(); err != nil {
		b.initialised = false
		return errors.Wrapf(err, "%s initialise", b.Name())
	}

	return nil
}

func (b *Base) adopt(child Calculator) *Base {
	cb := child.base()
	cb.sub = true
	cb.manager = b.manager
	if cb.Rounding == nil {
		cb.Rounding = b.Rounding
	}
	return cb
}

// AddSub declares a sub indicator named "<parent>_<sub>" that is calculated
// before (prior) or after the parent's own readings.
func (b *Base) AddSub(child Calculator, prior bool) Indicator {
	cb := b.adopt(child)
	cb.Config.Name = b.Name() + "_" + GenerateName(child.Kind(), child.Params(), 0, "")
	cb.bind(child)

	ind := child.(Indicator)
	if prior {
		b.prior = append(b.prior, ind)
	} else {
		b.posterior = append(b.posterior, ind)
	}
	return ind
}

// AddManaged declares a helper named "<parent>_<role>" whose readings the
// parent drives itself with SetReading or CalculateIndex.
func (b *Base) AddManaged(role string, child Calculator) Indicator {
	cb := b.adopt(child)
	cb.Config.Name = b.Name() + "_" + role
	cb.bind(child)

	if b.managed == nil {
		b.managed = make(map[string]Indicator)
	}

	ind := child.(Indicator)
	if _, exists := b.managed[role]; !exists {
		b.managedRoles = append(b.managedRoles, role)
	}
	b.managed[role] = ind
	return ind
}

// Managed returns the managed helper declared under role.
func (b *Base) Managed(role string) Indicator {
	return b.managed[role]
}

// frontier returns the index after the last candle holding a reading.
func (b *Base) frontier(bars types.CandleSlice) int {
	n := len(bars)
	if n == 0 {
		return 0
	}

	name := b.Name()
	if bars[n-1].HasReading(name) {
		return n
	}

	for i := n - 2; i >= 0; i-- {
		if bars[i].HasReading(name) {
			return i + 1
		}
	}
	return 0
}

// Calculate fills the readings from the first missing index to the tail.
func (b *Base) Calculate() error {
	startTime := time.Now()
	if err := b.init(); err != nil {
		return err
	}

	for _, child := range b.prior {
		if err := child.Calculate(); err != nil {
			return err
		}
	}

	bars := b.Candles()
	start := b.frontier(bars)
	written := b.calculateRange(bars, start, len(bars))

	for _, child := range b.posterior {
		if err := child.Calculate(); err != nil {
			return err
		}
	}

	if start < len(bars) {
		b.log.Debugf("calculated [%d, %d): %d readings", start, len(bars), written)
	}
	metrics.ObserveCalculate(b.Name(), written, time.Since(startTime))
	return nil
}

// CalculateIndex recomputes the readings in [start, end) unconditionally.
func (b *Base) CalculateIndex(start, end int) error {
	if err := b.init(); err != nil {
		return err
	}

	for _, child := range b.prior {
		if err := child.CalculateIndex(start, end); err != nil {
			return err
		}
	}

	b.calculateRange(b.Candles(), start, end)

	for _, child := range b.posterior {
		if err := child.CalculateIndex(start, end); err != nil {
			return err
		}
	}
	return nil
}

func (b *Base) calculateRange(bars types.CandleSlice, start, end int) int {
	if start < 0 {
		start = 0
	}
	if end > len(bars) {
		end = len(bars)
	}

	name := b.Name()
	written := 0
	for i := start; i < end; i++ {
		r := b.Round(b.impl.CalculateReading(i))
		bars[i].SetReading(name, r, b.sub)
		if r.IsPresent() {
			written++
		}
	}
	return written
}

// Purge removes the readings of the indicator and of its sub indicators from every candle.
func (b *Base) Purge() {
	name := b.Name()
	for _, c := range b.Candles() {
		c.DeleteReading(name)
	}

	for _, child := range b.Children() {
		child.Purge()
	}
}

func (b *Base) Recalculate() error {
	b.Purge()
	return b.Calculate()
}

// Append forwards the candles to the manager and calculates the new readings.
func (b *Base) Append(newCandles ...*types.Candle) error {
	if err := b.init(); err != nil {
		return err
	}

	if err := b.manager.Append(newCandles...); err != nil {
		return err
	}
	return b.Calculate()
}

func (b *Base) Reading(i int) types.Reading {
	return b.Candles().ReadingAt(b.Name(), i)
}

func (b *Base) Readings() []types.Reading {
	return b.Candles().Readings(b.Name())
}

// Float returns the numeric reading of candle i, or the named field of a record reading.
func (b *Base) Float(i int, field ...string) (float64, bool) {
	name := b.Name()
	if len(field) > 0 {
		name += "." + field[0]
	}
	return b.Candles().FloatAt(name, i)
}
