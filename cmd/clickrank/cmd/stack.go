package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank/ensemble"
)

var (
	stackDebug  bool
	stackEvents string
	stackLabels string
	stackModel  string
	stackOut    string
)

var stackCmd = &cobra.Command{
	Use:   "stack [name]...",
	Short: "Stack prediction sets with a second level model",
	Long: `Trains separate present and future second level models on the logit of the
given validation predictions and writes stacked test predictions.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e := ensemble.Ensemble{
			Bas: args,
			Deb: stackDebug,
			Eve: stackEvents,
			Lab: stackLabels,
			Log: logger,
			Mod: stackModel,
			Out: stackOut,
			Pat: viper.GetString("paths.preds"),
			Spl: viper.GetInt64("split.threshold"),
		}

		err := e.Train(cmd.Context())
		if err != nil {
			return tracer.Mask(err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  File name: %s\n", stackOut)

		return nil
	},
}

func init() {
	stackCmd.Flags().BoolVar(&stackDebug, "debug", false, "Forward script output to the terminal")
	stackCmd.Flags().StringVar(&stackEvents, "events", "", "Events file providing display timestamps")
	stackCmd.Flags().StringVar(&stackLabels, "labels", "", "Labelled clicks in the row order of the validation predictions")
	stackCmd.Flags().StringVar(&stackModel, "model", "lr", "Second level learner, one of lr, xgb")
	stackCmd.Flags().StringVar(&stackOut, "out", "", "Output file of the stacked test predictions")
	stackCmd.MarkFlagRequired("events")
	stackCmd.MarkFlagRequired("labels")
	stackCmd.MarkFlagRequired("out")

	rootCmd.AddCommand(stackCmd)
}
