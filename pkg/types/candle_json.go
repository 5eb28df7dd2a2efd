package types

import (
	"github.com/pkg/errors"
	"github.com/valyala/fastjson"
)

// ParseCandlesJSON parses a JSON array of candles, each either a record
// object or a positional array.
func ParseCandlesJSON(data []byte) ([]*Candle, error) {
	var p fastjson.Parser
	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCandle, err.Error())
	}

	items, err := v.Array()
	if err != nil {
		return nil, errors.Wrap(ErrInvalidCandle, "candle json must be an array")
	}

	candles := make([]*Candle, 0, len(items))
	for i, item := range items {
		c, err := candleFromJSONValue(item)
		if err != nil {
			return nil, errors.Wrapf(err, "candle #%d", i)
		}
		candles = append(candles, c)
	}

	return candles, nil
}

func candleFromJSONValue(v *fastjson.Value) (*Candle, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		record := make(map[string]interface{}, o.Len())
		o.Visit(func(key []byte, item *fastjson.Value) {
			record[string(key)] = jsonScalar(item)
		})
		return NewCandleFromMap(record)

	case fastjson.TypeArray:
		items, _ := v.Array()
		values := make([]interface{}, len(items))
		for i, item := range items {
			values[i] = jsonScalar(item)
		}
		return NewCandleFromSlice(values)
	}

	return nil, errors.Wrapf(ErrInvalidCandle, "unsupported json candle type %s", v.Type())
}

func jsonScalar(v *fastjson.Value) interface{} {
	switch v.Type() {
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return n
		}
		return v.GetFloat64()
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNull:
		return nil
	}
	return v.String()
}
