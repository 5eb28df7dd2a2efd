package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/c9s/tacandle/pkg/testutil"
	"github.com/c9s/tacandle/pkg/types"
)

func TestLoadConfig(t *testing.T) {
	type args struct {
		configFile string
	}

	tests := []struct {
		name    string
		args    args
		wantErr bool
		f       func(t *testing.T, config *Config)
	}{
		{
			name:    "strategy",
			args:    args{configFile: "testdata/strategy.yaml"},
			wantErr: false,
			f: func(t *testing.T, config *Config) {
				require.Len(t, config.Strategies, 2)

				nasdaq := config.Strategies[0]
				assert.Equal(t, "nasdaq", nasdaq.Name)
				assert.Equal(t, 24*time.Hour, nasdaq.CandleLife.Duration())
				assert.Equal(t, StringSlice{"EMA_10", "MACD_12_26_9.signal"}, nasdaq.Watch)
				require.Len(t, nasdaq.Indicators, 6)
				assert.Equal(t, "SMA", nasdaq.Indicators[2].Kind)
				assert.Equal(t, "T5", nasdaq.Indicators[2].Params["timeframe"])
				assert.Equal(t, "PATTERN", nasdaq.Indicators[5].Kind)

				volume := config.Strategies[1]
				assert.True(t, volume.FillGaps)
				assert.Equal(t, StringSlice{"VWAP_D1", "OBV"}, volume.Watch)

				assert.NoError(t, config.Validate())
			},
		},
		{
			name:    "invalid indicators",
			args:    args{configFile: "testdata/invalid.yaml"},
			wantErr: false,
			f: func(t *testing.T, config *Config) {
				err := config.Validate()
				assert.ErrorIs(t, err, types.ErrInvalidIndicator)
				assert.Len(t, multierr.Errors(err), 3)
			},
		},
		{
			name:    "missing file",
			args:    args{configFile: "testdata/missing.yaml"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := Load(tt.args.configFile)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			tt.f(t, config)
		})
	}
}

func TestLoadBytes_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no strategies", `foo: 1`},
		{"strategies not a list", `strategies: {name: a}`},
		{"missing name", "strategies:\n- description: nameless"},
		{"indicator not a map", "strategies:\n- name: a\n  indicators:\n  - 1"},
		{"two kinds in one entry", "strategies:\n- name: a\n  indicators:\n  - {EMA: {}, SMA: {}}"},
		{"malformed yaml", "strategies: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.yaml))
			assert.ErrorIs(t, err, types.ErrInvalidConfiguration)
		})
	}
}

func TestStrategyConfig_Build(t *testing.T) {
	config, err := Load("testdata/strategy.yaml")
	require.NoError(t, err)

	s, err := config.Strategies[0].Build()
	require.NoError(t, err)
	assert.Len(t, s.Indicators(), 6)

	require.NoError(t, s.Append(testutil.NasdaqCandles()...))
	for _, name := range config.Strategies[0].Watch {
		assert.True(t, s.Reading(name, -1).IsPresent(), name)
	}
	assert.True(t, s.Reading("SUPERTREND_10_3_HA.trend", -1).IsPresent())
	assert.True(t, s.Reading("RSI_14_T5", -1).IsPresent())

	invalid, err := Load("testdata/invalid.yaml")
	require.NoError(t, err)
	_, err = invalid.Strategies[0].Build()
	assert.Error(t, err)
}

func TestStringSlice(t *testing.T) {
	var s StringSlice
	require.NoError(t, s.UnmarshalJSON([]byte(`["a", "b, c"]`)))
	assert.Equal(t, StringSlice{"a", "b", "c"}, s)

	s = nil
	assert.Error(t, s.UnmarshalJSON([]byte(`[1]`)))
}
