package indicator

import (
	"github.com/c9s/tacandle/pkg/types"
)

// Running Moving Average
// Refer: https://github.com/twopirllc/pandas-ta/blob/main/pandas_ta/overlap/rma.py#L5
// Refer: https://pandas.pydata.org/docs/reference/api/pandas.DataFrame.ewm.html#pandas-dataframe-ewm
//
// The RMA (Wilder's smoothing) is an exponential average with alpha = 1 / period.
// The first reading is the adjusted exponentially weighted mean of the first
// period values, later readings follow alpha * x + (1 - alpha) * prev.
type RMA struct {
	Base
	Period int    `json:"period"`
	Source string `json:"source,omitempty"`
}

func NewRMA(period int, source string, options ...Option) *RMA {
	return setup(&RMA{Period: period, Source: source}, options...)
}

func (inc *RMA) Kind() string {
	return "RMA"
}

func (inc *RMA) Params() []interface{} {
	return sourceParams(inc.Source, inc.Period)
}

func (inc *RMA) Validate() error {
	if inc.Period <= 0 {
		return invalid("RMA", "period %d must be positive", inc.Period)
	}
	return nil
}

func (inc *RMA) Initialise() error {
	return nil
}

func (inc *RMA) CalculateReading(i int) types.Reading {
	x, ok := inc.value(inc.Source, i)
	if !ok {
		return types.Absent
	}

	lambda := 1 / float64(inc.Period)
	if prev, ok := inc.previous(i).Float64(); ok {
		return types.Number(lambda*x + (1-lambda)*prev)
	}

	if !inc.warmedUp(inc.Source, inc.Period, i) {
		return types.Absent
	}

	values, _ := inc.window(inc.Source, inc.Period, i)
	return types.Number(adjustedMean(values, lambda))
}

// adjustedMean is the adjusted exponentially weighted mean, newest value last.
func adjustedMean(values []float64, lambda float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum, tmp := 1.0, values[0]
	for _, x := range values[1:] {
		sum = sum*(1-lambda) + 1
		tmp = tmp + (x-tmp)/sum
	}
	return tmp
}
