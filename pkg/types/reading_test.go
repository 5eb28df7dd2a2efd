package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReading_Number(t *testing.T) {
	assert.True(t, Number(math.NaN()).IsAbsent())
	assert.True(t, Number(math.Inf(1)).IsAbsent())

	v, ok := Number(1.5).Float64()
	assert.True(t, ok)
	assert.Equal(t, 1.5, v)

	_, ok = Absent.Float64()
	assert.False(t, ok)
}

func TestReading_Round(t *testing.T) {
	assert.Equal(t, Number(1.2346), Number(1.23456).Round(4))
	assert.Equal(t, Number(1.23456), Number(1.23456).Round(-1))
	assert.Equal(t, Bool(true), Bool(true).Round(2))

	rec := Record(map[string]Reading{
		"k": Number(10.12345),
		"d": Number(20.55555),
	}).Round(2)
	assert.Equal(t, Number(10.12), rec.Field("k"))
	assert.Equal(t, Number(20.56), rec.Field("d"))
}

func TestReading_Record(t *testing.T) {
	rec := Record(map[string]Reading{
		"upper": Number(3),
		"lower": Number(1),
		"band":  Number(2),
		"none":  Absent,
	})

	assert.Equal(t, []string{"band", "lower", "upper"}, rec.Fields())
	assert.Equal(t, []float64{2, 1, 3}, rec.Values())
	assert.True(t, rec.Field("none").IsAbsent())
	assert.True(t, Number(1).Field("upper").IsAbsent())
	assert.Equal(t, "{band=2, lower=1, upper=3}", rec.String())
}

func TestReading_Equal(t *testing.T) {
	assert.True(t, Number(1.0).Equal(Number(1.00001), 1e-4))
	assert.False(t, Number(1.0).Equal(Number(1.1), 1e-4))
	assert.False(t, Number(1.0).Equal(Bool(true), 1e-4))
	assert.True(t, Absent.Equal(Absent, 0))

	a := Record(map[string]Reading{"k": Number(1), "d": Number(2)})
	b := Record(map[string]Reading{"k": Number(1), "d": Number(2.00001)})
	assert.True(t, a.Equal(b, 1e-4))
	assert.False(t, a.Equal(Record(map[string]Reading{"k": Number(1)}), 1e-4))
}

func TestReadingOf(t *testing.T) {
	assert.Equal(t, Number(2), ReadingOf(2))
	assert.Equal(t, Bool(false), ReadingOf(false))
	assert.True(t, ReadingOf("x").IsAbsent())

	r := ReadingOf(map[string]interface{}{"a": 1.0, "b": true})
	assert.Equal(t, ReadingRecord, r.Kind())
	assert.Equal(t, map[string]interface{}{"a": 1.0, "b": true}, r.Interface())
}
