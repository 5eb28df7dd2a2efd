package types

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type ReadingKind int

const (
	ReadingAbsent ReadingKind = iota
	ReadingNumber
	ReadingBool
	ReadingRecord
)

// Reading is a computed indicator value: a number, a boolean, a record of
// named readings (multi-output indicators) or absent.
type Reading struct {
	kind   ReadingKind
	number float64
	flag   bool
	record map[string]Reading
}

// Absent is the zero Reading.
var Absent = Reading{}

func Number(v float64) Reading {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Absent
	}
	return Reading{kind: ReadingNumber, number: v}
}

func Bool(v bool) Reading {
	return Reading{kind: ReadingBool, flag: v}
}

// Record builds a record reading; absent fields are dropped.
func Record(fields map[string]Reading) Reading {
	rec := make(map[string]Reading, len(fields))
	for k, v := range fields {
		if v.IsAbsent() {
			continue
		}
		rec[k] = v
	}
	return Reading{kind: ReadingRecord, record: rec}
}

func (r Reading) Kind() ReadingKind { return r.kind }

func (r Reading) IsAbsent() bool { return r.kind == ReadingAbsent }

func (r Reading) IsPresent() bool { return r.kind != ReadingAbsent }

// Float64 returns the numeric value. Booleans convert to 0 or 1.
func (r Reading) Float64() (float64, bool) {
	switch r.kind {
	case ReadingNumber:
		return r.number, true
	case ReadingBool:
		if r.flag {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (r Reading) Bool() (bool, bool) {
	switch r.kind {
	case ReadingBool:
		return r.flag, true
	case ReadingNumber:
		return r.number != 0, true
	}
	return false, false
}

// Field returns a named field of a record reading. Scalars have no fields.
func (r Reading) Field(name string) Reading {
	if r.kind != ReadingRecord {
		return Absent
	}
	return r.record[name]
}

// Fields returns the field names of a record reading in sorted order.
func (r Reading) Fields() []string {
	if r.kind != ReadingRecord {
		return nil
	}

	names := make([]string, 0, len(r.record))
	for k := range r.record {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Values flattens the reading into its numeric values, record fields in name order.
func (r Reading) Values() []float64 {
	switch r.kind {
	case ReadingNumber, ReadingBool:
		v, _ := r.Float64()
		return []float64{v}
	case ReadingRecord:
		var values []float64
		for _, name := range r.Fields() {
			values = append(values, r.record[name].Values()...)
		}
		return values
	}
	return nil
}

// Round rounds every number in the reading to the given decimal places.
// A negative precision leaves the reading untouched.
func (r Reading) Round(precision int) Reading {
	if precision < 0 {
		return r
	}

	switch r.kind {
	case ReadingNumber:
		p := math.Pow10(precision)
		return Number(math.Round(r.number*p) / p)
	case ReadingRecord:
		rec := make(map[string]Reading, len(r.record))
		for k, v := range r.record {
			rec[k] = v.Round(precision)
		}
		return Reading{kind: ReadingRecord, record: rec}
	}
	return r
}

// Equal compares two readings, numbers within the given tolerance.
func (r Reading) Equal(o Reading, tolerance float64) bool {
	if r.kind != o.kind {
		return false
	}

	switch r.kind {
	case ReadingNumber:
		return math.Abs(r.number-o.number) <= tolerance
	case ReadingBool:
		return r.flag == o.flag
	case ReadingRecord:
		if len(r.record) != len(o.record) {
			return false
		}
		for k, v := range r.record {
			if !v.Equal(o.record[k], tolerance) {
				return false
			}
		}
	}
	return true
}

// Interface converts the reading into plain Go values (float64, bool, map or nil).
func (r Reading) Interface() interface{} {
	switch r.kind {
	case ReadingNumber:
		return r.number
	case ReadingBool:
		return r.flag
	case ReadingRecord:
		m := make(map[string]interface{}, len(r.record))
		for k, v := range r.record {
			m[k] = v.Interface()
		}
		return m
	}
	return nil
}

func (r Reading) String() string {
	switch r.kind {
	case ReadingNumber:
		return fmt.Sprintf("%g", r.number)
	case ReadingBool:
		return fmt.Sprintf("%t", r.flag)
	case ReadingRecord:
		var parts []string
		for _, name := range r.Fields() {
			parts = append(parts, name+"="+r.record[name].String())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return "-"
}

// ReadingOf converts a plain Go value into a Reading.
func ReadingOf(v interface{}) Reading {
	switch val := v.(type) {
	case Reading:
		return val
	case float64:
		return Number(val)
	case float32:
		return Number(float64(val))
	case int:
		return Number(float64(val))
	case int64:
		return Number(float64(val))
	case bool:
		return Bool(val)
	case map[string]Reading:
		return Record(val)
	case map[string]interface{}:
		rec := make(map[string]Reading, len(val))
		for k, f := range val {
			rec[k] = ReadingOf(f)
		}
		return Record(rec)
	}
	return Absent
}
