package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/dataset"
	"github.com/xh3b4sd/clickrank/naming"
	"github.com/xh3b4sd/clickrank/profile"
	"github.com/xh3b4sd/clickrank/train"
)

var (
	trainDebug    bool
	trainEvents   string
	trainFullTest string
	trainSplit    string
	trainValTest  string
)

var trainCmd = &cobra.Command{
	Use:   "train [profile]",
	Short: "Train an external learner by profile",
	Long: `Runs the learner of the given profile on the validation split, scores its
predictions, and, if a full test file is given, reruns it on the full split to
write test predictions and a submission.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error

		var pro profile.Profile
		{
			pro, err = loadProfile(args[0])
			if err != nil {
				return tracer.Mask(err)
			}
		}

		t := train.Trainer{
			Bin: viper.GetString("paths.bin"),
			Cac: viper.GetString("paths.cache"),
			Deb: trainDebug,
			Log: logger.With("profile", pro.Name),
			Pro: pro,
			Tmp: viper.GetString("paths.tmp"),
		}

		var val []clickrank.Row
		{
			val, err = trainSubset(cmd, &t, trainSplit, trainValTest)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		var res clickrank.Result
		{
			res, err = evaluate(val, trainEvents)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		out := naming.New(pro.Name, res.Total).String()

		{
			printResult(cmd.OutOrStdout(), res)

			err = dataset.WritePredictions(predsPath(out, "val"), val, true)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		if trainFullTest != "" {
			tes, err := trainSubset(cmd, &t, "full", trainFullTest)
			if err != nil {
				return tracer.Mask(err)
			}

			err = dataset.WritePredictions(predsPath(out, "test"), tes, false)
			if err != nil {
				return tracer.Mask(err)
			}

			err = writeSubmission(submPath(out), tes)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "  File name: %s\n", out)

		return nil
	},
}

func loadProfile(nam string) (profile.Profile, error) {
	f, err := os.Open(viper.GetString("paths.profiles"))
	if err != nil {
		return profile.Profile{}, tracer.Mask(err)
	}
	defer f.Close()

	lis, err := profile.Load(f)
	if err != nil {
		return profile.Profile{}, tracer.Mask(err)
	}

	pro, err := profile.Find(lis, nam)
	if err != nil {
		return profile.Profile{}, tracer.Mask(err)
	}

	return pro, nil
}

func trainSubset(cmd *cobra.Command, t *train.Trainer, spl string, key string) ([]clickrank.Row, error) {
	row, err := dataset.ReadKeys(key)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	pre, err := t.Train(cmd.Context(), spl)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	rec.Rows("train", len(pre))

	row, err = attach(row, pre)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return row, nil
}

func init() {
	trainCmd.Flags().BoolVar(&trainDebug, "debug", false, "Forward learner output to the terminal")
	trainCmd.Flags().StringVar(&trainEvents, "events", "", "Events file providing display timestamps")
	trainCmd.Flags().StringVar(&trainFullTest, "full-test", "", "Clicks of the full test split, enables the full run")
	trainCmd.Flags().StringVar(&trainSplit, "split", "val", "Name of the validation split of the exported datasets")
	trainCmd.Flags().StringVar(&trainValTest, "val-test", "", "Labelled clicks of the validation test split")
	trainCmd.MarkFlagRequired("events")
	trainCmd.MarkFlagRequired("val-test")

	rootCmd.AddCommand(trainCmd)
}
