package style

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/stretchr/testify/assert"

	"github.com/c9s/tacandle/pkg/types"
)

func TestFormatReading(t *testing.T) {
	assert.Equal(t, "-", FormatReading(types.Absent))
	assert.Equal(t, "1.25", FormatReading(types.Number(1.25)))
	assert.Equal(t, "100", FormatReading(types.Number(100)))
	assert.Equal(t, "true", FormatReading(types.Bool(true)))
}

func TestColorizeReading(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	assert.Equal(t, "2", ColorizeReading(types.Number(2), types.Number(1)))
	assert.Equal(t, "-", ColorizeReading(types.Absent, types.Number(1)))
	assert.Equal(t, "2", ColorizeReading(types.Number(2), types.Absent))
}

func TestNewReadingsTable(t *testing.T) {
	var buf bytes.Buffer
	tw := NewReadingsTable(&buf, "nasdaq", "name", "reading")
	tw.AppendRow(table.Row{"EMA_10", "1.5"})
	tw.Render()

	out := buf.String()
	assert.Contains(t, out, "nasdaq")
	assert.Contains(t, out, "EMA_10")
}
