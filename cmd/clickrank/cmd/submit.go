package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/dataset"
)

var submitOut string

var submitCmd = &cobra.Command{
	Use:   "submit [predictions]",
	Short: "Write the ranked ad lists of a submission",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := dataset.ReadPredictions(args[0])
		if err != nil {
			return tracer.Mask(err)
		}

		rec.Rows("submit", len(row))

		err = writeSubmission(submitOut, row)
		if err != nil {
			return tracer.Mask(err)
		}

		return nil
	},
}

func init() {
	submitCmd.Flags().StringVar(&submitOut, "out", "", "Submission file, gzip compressed if ending in .gz")
	submitCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(submitCmd)
}
