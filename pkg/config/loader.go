package config

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/c9s/tacandle/pkg/indicator"
	"github.com/c9s/tacandle/pkg/strategy"
	"github.com/c9s/tacandle/pkg/types"
)

// IndicatorConfig is one indicator entry, written either as
//
//	- EMA: {period: 10}
//
// or as
//
//	- kind: EMA
//	  period: 10
type IndicatorConfig struct {
	Kind   string
	Params map[string]interface{}
}

type StrategyConfig struct {
	strategy.Config

	Indicators []IndicatorConfig `json:"-"`

	// Watch lists the reading addresses the host reports, e.g. "MACD_12_26_9.signal".
	Watch StringSlice `json:"watch,omitempty"`
}

type Config struct {
	Strategies []StrategyConfig
}

type Stash map[string]interface{}

func loadStash(configFile string) (Stash, error) {
	config, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}

	return parseStash(config)
}

func parseStash(data []byte) (Stash, error) {
	stash := make(Stash)
	if err := yaml.Unmarshal(data, &stash); err != nil {
		return nil, errors.Wrapf(types.ErrInvalidConfiguration, "yaml: %s", err.Error())
	}

	return stash, nil
}

// Load reads a strategy configuration file.
func Load(configFile string) (*Config, error) {
	stash, err := loadStash(configFile)
	if err != nil {
		return nil, err
	}

	return load(stash)
}

// LoadBytes parses a strategy configuration document.
func LoadBytes(data []byte) (*Config, error) {
	stash, err := parseStash(data)
	if err != nil {
		return nil, err
	}

	return load(stash)
}

func load(stash Stash) (*Config, error) {
	var config Config

	strategies, err := loadStrategies(stash)
	if err != nil {
		return nil, err
	}

	config.Strategies = strategies
	return &config, nil
}

func loadStrategies(stash Stash) (strategies []StrategyConfig, err error) {
	strategiesConf, ok := stash["strategies"]
	if !ok {
		return nil, errors.Wrap(types.ErrInvalidConfiguration, "missing strategies")
	}

	configList, ok := strategiesConf.([]interface{})
	if !ok {
		return nil, errors.Wrap(types.ErrInvalidConfiguration, "expecting list in strategies")
	}

	for _, entry := range configList {
		configStash, ok := entry.(map[string]interface{})
		if !ok {
			return nil, errors.Wrapf(types.ErrInvalidConfiguration, "strategy config should be a map, given: %T %+v", entry, entry)
		}

		var conf StrategyConfig
		if err := reUnmarshal(configStash, &conf); err != nil {
			return nil, errors.Wrapf(types.ErrInvalidConfiguration, "strategy %v: %s", configStash["name"], err.Error())
		}

		if conf.Name == "" {
			return nil, errors.Wrap(types.ErrInvalidConfiguration, "strategy name is required")
		}

		conf.Indicators, err = loadIndicators(configStash["indicators"])
		if err != nil {
			return nil, errors.Wrapf(err, "strategy %s", conf.Name)
		}

		strategies = append(strategies, conf)
	}

	return strategies, nil
}

func loadIndicators(v interface{}) (indicators []IndicatorConfig, err error) {
	if v == nil {
		return nil, nil
	}

	configList, ok := v.([]interface{})
	if !ok {
		return nil, errors.Wrap(types.ErrInvalidConfiguration, "expecting list in indicators")
	}

	for _, entry := range configList {
		switch e := entry.(type) {
		case string:
			indicators = append(indicators, IndicatorConfig{Kind: e})

		case map[string]interface{}:
			if kind, ok := e["kind"].(string); ok {
				params := make(map[string]interface{}, len(e))
				for k, v := range e {
					if k != "kind" {
						params[k] = v
					}
				}
				indicators = append(indicators, IndicatorConfig{Kind: kind, Params: params})
				continue
			}

			if len(e) != 1 {
				return nil, errors.Wrapf(types.ErrInvalidConfiguration, "indicator entry should have exactly one kind, given: %+v", e)
			}

			for kind, conf := range e {
				params, ok := conf.(map[string]interface{})
				if conf != nil && !ok {
					return nil, errors.Wrapf(types.ErrInvalidConfiguration, "%s parameters should be a map, given: %T", kind, conf)
				}
				indicators = append(indicators, IndicatorConfig{Kind: strings.ToUpper(kind), Params: params})
			}

		default:
			return nil, errors.Wrapf(types.ErrInvalidConfiguration, "indicator config should be a map, given: %T %+v", entry, entry)
		}
	}

	return indicators, nil
}

// NewIndicators builds the configured indicators. Every invalid entry is reported.
func (c *StrategyConfig) NewIndicators() ([]indicator.Indicator, error) {
	var indicators []indicator.Indicator
	var errs error
	for _, conf := range c.Indicators {
		ind, err := indicator.New(conf.Kind, conf.Params)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		indicators = append(indicators, ind)
	}
	return indicators, errs
}

// Build creates the strategy with its indicators.
func (c *StrategyConfig) Build() (*strategy.Strategy, error) {
	indicators, err := c.NewIndicators()
	if err != nil {
		return nil, err
	}

	s := strategy.New(c.Config)
	for _, ind := range indicators {
		err = multierr.Append(err, s.AddIndicator(ind))
	}

	if err != nil {
		return nil, err
	}
	return s, nil
}

// Validate builds every configured indicator and reports all the failures at once.
func (c *Config) Validate() error {
	var errs error
	names := make(map[string]struct{})
	for i := range c.Strategies {
		conf := &c.Strategies[i]
		if _, exists := names[conf.Name]; exists {
			errs = multierr.Append(errs, errors.Wrapf(types.ErrInvalidConfiguration, "duplicate strategy %s", conf.Name))
		}
		names[conf.Name] = struct{}{}

		_, err := conf.NewIndicators()
		for _, e := range multierr.Errors(err) {
			errs = multierr.Append(errs, errors.Wrapf(e, "strategy %s", conf.Name))
		}
	}
	return errs
}

func reUnmarshal(conf interface{}, val interface{}) error {
	// get the json of the config
	data, err := json.Marshal(conf)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, val)
}
