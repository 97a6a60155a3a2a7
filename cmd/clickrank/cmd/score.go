package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/dataset"
	"github.com/xh3b4sd/clickrank/naming"
)

var (
	scoreEvents string
	scoreModel  string
)

var scoreCmd = &cobra.Command{
	Use:   "score [predictions]",
	Short: "Score labelled predictions",
	Long:  `Computes the mean reciprocal rank of the clicked ad per display, separately for present and future displays and pooled over both.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := dataset.ReadPredictions(args[0])
		if err != nil {
			return tracer.Mask(err)
		}

		rec.Rows("score", len(row))

		res, err := evaluate(row, scoreEvents)
		if err != nil {
			return tracer.Mask(err)
		}

		printResult(cmd.OutOrStdout(), res)

		if scoreModel != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  Name: %s\n", naming.New(scoreModel, res.Total))
		}

		return nil
	},
}

func init() {
	scoreCmd.Flags().StringVar(&scoreEvents, "events", "", "Events file providing display timestamps")
	scoreCmd.Flags().StringVar(&scoreModel, "model", "", "Model name used to derive a prediction name from the score")
	scoreCmd.MarkFlagRequired("events")

	rootCmd.AddCommand(scoreCmd)
}
