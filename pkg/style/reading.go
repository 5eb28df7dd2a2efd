package style

import (
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/c9s/tacandle/pkg/types"
)

var (
	risingColor  = color.New(color.FgGreen)
	fallingColor = color.New(color.FgRed)
	absentColor  = color.New(color.FgHiBlack)
)

// FormatReading prints numbers without trailing zeros and absent readings as "-".
func FormatReading(r types.Reading) string {
	if r.IsAbsent() {
		return "-"
	}

	if v, ok := r.Float64(); ok {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return r.String()
}

// ColorizeReading colors a numeric reading green when it rose from prev and red when it fell.
func ColorizeReading(r, prev types.Reading) string {
	s := FormatReading(r)
	if r.IsAbsent() {
		return absentColor.Sprint(s)
	}

	v, ok := r.Float64()
	p, ok2 := prev.Float64()
	if !ok || !ok2 {
		return s
	}

	switch {
	case v > p:
		return risingColor.Sprint(s)
	case v < p:
		return fallingColor.Sprint(s)
	}
	return s
}

// NewReadingsTable returns a table writer with the default style and the given header.
func NewReadingsTable(w io.Writer, title string, header ...interface{}) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(*NewDefaultTableStyle())
	t.SetTitle(title)
	t.AppendHeader(table.Row(header))
	return t
}
