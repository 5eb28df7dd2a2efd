package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// HLA is the high-low average (median price).
type HLA struct {
	Base
}

func NewHLA(options ...Option) *HLA {
	return setup(&HLA{}, options...)
}

func (inc *HLA) Kind() string {
	return "HLA"
}

func (inc *HLA) Params() []interface{} {
	return nil
}

func (inc *HLA) Validate() error {
	return nil
}

func (inc *HLA) Initialise() error {
	return nil
}

func (inc *HLA) CalculateReading(i int) types.Reading {
	c := inc.Candles()[i]
	return types.Number((c.High + c.Low) / 2)
}

// HLCA is the high-low-close average (typical price).
type HLCA struct {
	Base
}

func NewHLCA(options ...Option) *HLCA {
	return setup(&HLCA{}, options...)
}

func (inc *HLCA) Kind() string {
	return "HLCA"
}

func (inc *HLCA) Params() []interface{} {
	return nil
}

func (inc *HLCA) Validate() error {
	return nil
}

func (inc *HLCA) Initialise() error {
	return nil
}

func (inc *HLCA) CalculateReading(i int) types.Reading {
	return types.Number(inc.Candles()[i].TypicalPrice())
}
