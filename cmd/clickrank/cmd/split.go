package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/dataset"
	"github.com/xh3b4sd/clickrank/split"
)

var (
	splitEvents   string
	splitTrainOut string
	splitValOut   string
)

var splitCmd = &cobra.Command{
	Use:   "split [clicks]",
	Short: "Split labelled clicks into training and validation displays",
	Long: `Moves every display at or after the split threshold, and every display whose
id matches the sampling modulus, into the validation split.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		row, err := dataset.ReadClicks(args[0])
		if err != nil {
			return tracer.Mask(err)
		}

		rec.Rows("split", len(row))

		eve, err := dataset.ReadEvents(splitEvents)
		if err != nil {
			return tracer.Mask(err)
		}

		s := split.Splitter{
			Eve: eve,
			Thr: viper.GetInt64("split.threshold"),
			Mod: viper.GetInt64("split.modulo"),
			Rem: viper.GetInt64("split.remainder"),
		}

		tra, val, err := s.Split(row)
		if err != nil {
			return tracer.Mask(err)
		}

		err = dataset.WriteClicks(splitTrainOut, tra)
		if err != nil {
			return tracer.Mask(err)
		}

		err = dataset.WriteClicks(splitValOut, val)
		if err != nil {
			return tracer.Mask(err)
		}

		logger.Info("split clicks", "train", len(tra), "val", len(val))

		return nil
	},
}

func init() {
	splitCmd.Flags().StringVar(&splitEvents, "events", "", "Events file providing display timestamps")
	splitCmd.Flags().StringVar(&splitTrainOut, "train-out", "", "Output file of the training split")
	splitCmd.Flags().StringVar(&splitValOut, "val-out", "", "Output file of the validation split")
	splitCmd.MarkFlagRequired("events")
	splitCmd.MarkFlagRequired("train-out")
	splitCmd.MarkFlagRequired("val-out")

	rootCmd.AddCommand(splitCmd)
}
