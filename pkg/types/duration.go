package types

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

var simpleDurationRegExp = regexp.MustCompile(`^(\d+)([hdw])$`)

var ErrNotSimpleDuration = errors.New("the given input is not simple duration format, valid format: [1-9][0-9]*[hdw]")

// ParseSimpleDuration parses "3h", "2d" or "1w".
func ParseSimpleDuration(s string) (time.Duration, error) {
	matches := simpleDurationRegExp.FindStringSubmatch(s)
	if matches == nil {
		return 0, errors.Wrapf(ErrNotSimpleDuration, "input %q is not a simple duration", s)
	}

	num, err := strconv.Atoi(matches[1])
	if err != nil {
		return 0, err
	}

	switch matches[2] {
	case "h":
		return time.Duration(num) * time.Hour, nil
	case "d":
		return time.Duration(num) * Day, nil
	case "w":
		return time.Duration(num) * 7 * Day, nil
	}

	return 0, errors.Wrapf(ErrNotSimpleDuration, "input %q is not a simple duration", s)
}

// ParseDuration accepts a timeframe ("T5", 300), a simple duration ("2d") or a Go duration ("90m").
func ParseDuration(v interface{}) (time.Duration, error) {
	d, err := ParseTimeframe(v)
	if err == nil {
		return d, nil
	}

	s, ok := v.(string)
	if !ok {
		return 0, err
	}

	if sd, err2 := ParseSimpleDuration(s); err2 == nil {
		return sd, nil
	}

	if gd, err2 := time.ParseDuration(s); err2 == nil && gd > 0 {
		return gd, nil
	}

	return 0, err
}

// Timeframe is a duration that decodes from every form ParseDuration accepts.
type Timeframe time.Duration

func (d Timeframe) Duration() time.Duration {
	return time.Duration(d)
}

func (d Timeframe) String() string {
	return TimeframeString(time.Duration(d))
}

func (d Timeframe) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Timeframe) UnmarshalJSON(data []byte) error {
	var o interface{}
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}

	switch t := o.(type) {
	case nil:
		*d = 0
		return nil

	case string:
		if t == "" {
			*d = 0
			return nil
		}

	case float64:

	default:
		return fmt.Errorf("unsupported type %T value: %v", t, t)
	}

	dd, err := ParseDuration(o)
	if err != nil {
		return err
	}

	*d = Timeframe(dd)
	return nil
}
