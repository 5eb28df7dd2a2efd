package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/c9s/tacandle/pkg/chart"
	"github.com/c9s/tacandle/pkg/strategy"
)

func init() {
	ChartCmd.Flags().String("strategy", "", "strategy name, the first configured strategy by default")
	ChartCmd.Flags().String("output", "", "png file, <strategy>.png by default")
	ChartCmd.Flags().StringSlice("signal", nil, "boolean reading addresses drawn as dots, e.g. PATTERN_doji_10")
	RootCmd.AddCommand(ChartCmd)
}

// go run ./cmd/tacandle chart --candles nasdaq.json --strategy nasdaq EMA_10 SMA_3_T5
var ChartCmd = &cobra.Command{
	Use:   "chart [address...]",
	Short: "plot the close price and reading series of a strategy as png",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := cmd.Flags().GetString("strategy")
		if err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		signals, err := cmd.Flags().GetStringSlice("signal")
		if err != nil {
			return err
		}

		conf, data, err := loadInputs()
		if err != nil {
			return err
		}

		var names []string
		if name != "" {
			names = append(names, name)
		}

		strategies, err := selectStrategies(conf, names)
		if err != nil {
			return err
		}

		if len(strategies) == 0 {
			return errors.New("no strategy is configured")
		}

		sc := &strategies[0]
		s, err := replay(cmd.Context(), sc, data, false, nil)
		if err != nil {
			return err
		}

		addresses := args
		if len(addresses) == 0 {
			addresses = watchList(s, sc.Watch)
		}

		canvas := plotStrategy(s, addresses, signals)
		if output == "" {
			output = s.Name + ".png"
		}

		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := canvas.Render(f); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "chart written to %s\n", output)
		return nil
	},
}

func plotStrategy(s *strategy.Strategy, addresses, signals []string) *chart.Canvas {
	raw := s.RawCandles()
	timeframe := time.Minute
	if len(raw) > 1 {
		timeframe = raw[1].Timestamp.Sub(raw[0].Timestamp)
	}

	canvas := chart.NewCanvas(s.Name, timeframe)
	canvas.Plot("close", raw, "close")
	for _, address := range addresses {
		if !canvas.Plot(address, s.CandlesOf(address), address) {
			log.Warnf("%s has no numeric readings to plot, use <indicator>.<field> for records", address)
		}
	}

	for _, address := range signals {
		canvas.PlotSignals(address, s.CandlesOf(address), address)
	}
	return canvas
}
