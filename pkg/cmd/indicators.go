package cmd

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/c9s/tacandle/pkg/analysis"
	"github.com/c9s/tacandle/pkg/candles"
	"github.com/c9s/tacandle/pkg/indicator"
	"github.com/c9s/tacandle/pkg/style"
)

func init() {
	RootCmd.AddCommand(IndicatorsCmd)
}

var IndicatorsCmd = &cobra.Command{
	Use:          "indicators",
	Short:        "list the indicator kinds, candlestick types and patterns",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		t := style.NewReadingsTable(cmd.OutOrStdout(), "Indicators", "Kind", "Default Name")
		for _, kind := range indicator.Kinds() {
			ind, err := indicator.New(kind, nil)
			if err != nil {
				return err
			}
			t.AppendRow(table.Row{kind, ind.Name()})
		}
		t.AppendSeparator()
		t.AppendRow(table.Row{"candlesticks", strings.Join(candles.TransformNames(), ", ")})
		t.AppendRow(table.Row{"patterns", strings.Join(analysis.Patterns(), ", ")})
		t.Render()
		return nil
	},
}
