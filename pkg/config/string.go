package config

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/c9s/tacandle/pkg/types"
)

// StringSlice decodes a list of strings, a single string or a comma separated string.
type StringSlice []string

func (s *StringSlice) decode(a interface{}) error {
	switch d := a.(type) {
	case nil:

	case string:
		for _, part := range strings.Split(d, ",") {
			if part = strings.TrimSpace(part); part != "" {
				*s = append(*s, part)
			}
		}

	case []string:
		for _, part := range d {
			if err := s.decode(part); err != nil {
				return err
			}
		}

	case []interface{}:
		for _, de := range d {
			if err := s.decode(de); err != nil {
				return err
			}
		}

	default:
		return errors.Wrapf(types.ErrInvalidConfiguration, "unexpected type %T for a string list: %+v", d, d)
	}

	return nil
}

func (s *StringSlice) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var a interface{}
	if err := unmarshal(&a); err != nil {
		return err
	}

	return s.decode(a)
}

func (s *StringSlice) UnmarshalJSON(b []byte) error {
	var a interface{}
	var err = json.Unmarshal(b, &a)
	if err != nil {
		return err
	}

	return s.decode(a)
}
