package cmd

import (
	"context"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/c9s/tacandle/pkg/config"
	"github.com/c9s/tacandle/pkg/strategy"
	"github.com/c9s/tacandle/pkg/types"
)

// loadInputs reads the strategy config and the raw candles named by the flags.
func loadInputs() (*config.Config, []byte, error) {
	configFile := viper.GetString("config")
	conf, err := config.Load(configFile)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "can not load config file %s", configFile)
	}

	if err := conf.Validate(); err != nil {
		return nil, nil, err
	}

	candlesFile := viper.GetString("candles")
	if candlesFile == "" {
		return nil, nil, errors.New("--candles option is required")
	}

	data, err := os.ReadFile(candlesFile)
	if err != nil {
		return nil, nil, err
	}
	return conf, data, nil
}

// selectStrategies returns the named strategies, all of them when names is empty.
func selectStrategies(conf *config.Config, names []string) ([]config.StrategyConfig, error) {
	if len(names) == 0 {
		return conf.Strategies, nil
	}

	var out []config.StrategyConfig
	for _, name := range names {
		found := false
		for _, s := range conf.Strategies {
			if s.Name == name {
				out = append(out, s)
				found = true
				break
			}
		}

		if !found {
			return nil, errors.Wrapf(types.ErrInvalidConfiguration, "strategy %s is not defined", name)
		}
	}
	return out, nil
}

// replay builds the strategy and feeds it its own copy of the candles, in
// one batch or one candle at a time when stream is set.
func replay(ctx context.Context, conf *config.StrategyConfig, data []byte, stream bool, bar *pb.ProgressBar) (*strategy.Strategy, error) {
	s, err := conf.Build()
	if err != nil {
		return nil, err
	}

	bars, err := types.ParseCandlesJSON(data)
	if err != nil {
		return nil, err
	}

	if !stream {
		if err := s.Append(bars...); err != nil {
			return nil, err
		}
		if bar != nil {
			bar.Add(len(bars))
		}
		return s, nil
	}

	for _, c := range bars {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := s.Append(c); err != nil {
			return nil, err
		}

		if bar != nil {
			bar.Increment()
		}
	}
	return s, nil
}

// watchList returns the configured watch addresses, or the top level indicator names.
func watchList(s *strategy.Strategy, watch []string) []string {
	if len(watch) > 0 {
		return watch
	}

	var out []string
	for _, ind := range s.Indicators() {
		out = append(out, ind.Name())
	}
	return out
}
