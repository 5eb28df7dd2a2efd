package cmd

import (
	"fmt"
	"io"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/c9s/tacandle/pkg/strategy"
	"github.com/c9s/tacandle/pkg/style"
	"github.com/c9s/tacandle/pkg/types"
)

func init() {
	RunCmd.Flags().Bool("stream", false, "append the candles one by one instead of in one batch")
	RunCmd.Flags().Bool("progress", true, "show a progress bar while streaming")
	RootCmd.AddCommand(RunCmd)
}

// go run ./cmd/tacandle run --config tacandle.yaml --candles nasdaq.json nasdaq
var RunCmd = &cobra.Command{
	Use:   "run [strategy...]",
	Short: "replay candles through the configured strategies and print the watched readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		stream, err := cmd.Flags().GetBool("stream")
		if err != nil {
			return err
		}

		progress, err := cmd.Flags().GetBool("progress")
		if err != nil {
			return err
		}

		conf, data, err := loadInputs()
		if err != nil {
			return err
		}

		strategies, err := selectStrategies(conf, args)
		if err != nil {
			return err
		}

		bars, err := types.ParseCandlesJSON(data)
		if err != nil {
			return err
		}

		var bar *pb.ProgressBar
		if stream && progress {
			bar = pb.Full.Start(len(strategies) * len(bars))
			bar.SetTemplateString(`{{ string . "log" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }} {{rtime . "ETA %s"}}`)
			bar.Set("log", "replaying")
		}

		results := make([]*strategy.Strategy, len(strategies))
		eg, ctx := errgroup.WithContext(cmd.Context())
		for i := range strategies {
			i := i
			eg.Go(func() error {
				s, err := replay(ctx, &strategies[i], data, stream, bar)
				if err != nil {
					return errors.Wrapf(err, "strategy %s", strategies[i].Name)
				}
				results[i] = s
				return nil
			})
		}

		err = eg.Wait()
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return err
		}

		for i, s := range results {
			log.Infof("strategy %s: %d raw candles, %d indicators", s.Name, s.Len(), len(s.Indicators()))
			printReadings(cmd.OutOrStdout(), s, watchList(s, strategies[i].Watch))
		}
		return nil
	},
}

func printReadings(w io.Writer, s *strategy.Strategy, addresses []string) {
	title := s.Name
	if last := s.RawCandles().Last(); last != nil {
		title = fmt.Sprintf("%s @ %s", s.Name, last.Timestamp.Format("2006-01-02 15:04"))
	}

	if s.Description != "" {
		color.Green(s.Description)
	}

	t := style.NewReadingsTable(w, title, "Address", "Previous", "Last")
	for _, address := range addresses {
		prev := s.Reading(address, -2)
		last := s.Reading(address, -1)
		t.AppendRow(table.Row{address, style.FormatReading(prev), style.ColorizeReading(last, prev)})
	}
	t.Render()
}
