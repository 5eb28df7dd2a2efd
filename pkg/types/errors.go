package types

import "github.com/pkg/errors"

var (
	ErrInvalidIndicator     = errors.New("invalid indicator")
	ErrInvalidAnalysis      = errors.New("invalid analysis")
	ErrInvalidPattern       = errors.New("invalid pattern")
	ErrInvalidTimeFrame     = errors.New("invalid timeframe")
	ErrInvalidCandleOrder   = errors.New("invalid candle order")
	ErrMixedTimeframes      = errors.New("mixed timeframes")
	ErrMissingIndicator     = errors.New("missing indicator")
	ErrCandleAlreadyTagged  = errors.New("candle already tagged")
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidCandle is returned when an ingested value has an unsupported shape.
	ErrInvalidCandle = errors.New("invalid candle")
)
