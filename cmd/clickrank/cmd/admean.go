package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/ctr"
	"github.com/xh3b4sd/clickrank/dataset"
	"github.com/xh3b4sd/clickrank/naming"
)

var (
	admeanEvents    string
	admeanFullTest  string
	admeanFullTrain string
	admeanValTest   string
	admeanValTrain  string
)

var admeanCmd = &cobra.Command{
	Use:   "admean",
	Short: "Run the ad click-through-rate baseline",
	Long: `Scores every ad by its regularised click rate. The baseline is fitted and
scored on the validation split first, then refitted on the full split to
predict the test set and write a submission.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error

		var val []clickrank.Row
		{
			val, err = admeanFit(admeanValTrain, admeanValTest)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		var res clickrank.Result
		{
			res, err = evaluate(val, admeanEvents)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		out := naming.New("ad-mean", res.Total).String()

		{
			printResult(cmd.OutOrStdout(), res)

			err = dataset.WritePredictions(predsPath(out, "val"), val, true)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		if admeanFullTrain == "" || admeanFullTest == "" {
			fmt.Fprintf(cmd.OutOrStdout(), "  File name: %s\n", out)
			return nil
		}

		var tes []clickrank.Row
		{
			tes, err = admeanFit(admeanFullTrain, admeanFullTest)
			if err != nil {
				return tracer.Mask(err)
			}

			err = dataset.WritePredictions(predsPath(out, "test"), tes, false)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		{
			err = writeSubmission(submPath(out), tes)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  File name: %s\n", out)

		return nil
	},
}

func admeanFit(tra string, tes string) ([]clickrank.Row, error) {
	var err error

	a := ctr.AdMean{
		Reg: viper.GetFloat64("admean.reg"),
	}

	{
		var row []clickrank.Row

		row, err = dataset.ReadClicks(tra)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		rec.Rows("admean", len(row))

		err = a.Fit(row)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var row []clickrank.Row
	{
		row, err = dataset.ReadKeys(tes)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		row, err = a.Predict(row)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	return row, nil
}

func init() {
	admeanCmd.Flags().StringVar(&admeanEvents, "events", "", "Events file providing display timestamps")
	admeanCmd.Flags().StringVar(&admeanValTrain, "val-train", "", "Labelled clicks of the validation training split")
	admeanCmd.Flags().StringVar(&admeanValTest, "val-test", "", "Labelled clicks of the validation test split")
	admeanCmd.Flags().StringVar(&admeanFullTrain, "full-train", "", "Labelled clicks of the full training split")
	admeanCmd.Flags().StringVar(&admeanFullTest, "full-test", "", "Clicks of the full test split, labels not required")
	admeanCmd.MarkFlagRequired("events")
	admeanCmd.MarkFlagRequired("val-train")
	admeanCmd.MarkFlagRequired("val-test")

	rootCmd.AddCommand(admeanCmd)
}
