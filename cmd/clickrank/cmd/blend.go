package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/blend"
	"github.com/xh3b4sd/clickrank/dataset"
	"github.com/xh3b4sd/clickrank/naming"
)

var blendEvents string

var blendCmd = &cobra.Command{
	Use:   "blend [name=weight]...",
	Short: "Blend prediction sets linearly",
	Long: `Blends the validation and test predictions of the given prediction names
with the given weights, scores the blended validation predictions, and writes
the blended predictions and a submission under the derived name.`,
	Example: `  clickrank blend 20161225-0051-ffm-0.65640=0.7 20161224-2245-vw-0.64495=0.3 --events input/events.csv.gz`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var err error

		var nam []string
		var wei []float64
		{
			nam, wei, err = parseWeights(args)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		var val []clickrank.Row
		{
			val, err = blendSubset(cmd, nam, wei, "val")
			if err != nil {
				return tracer.Mask(err)
			}
		}

		var res clickrank.Result
		{
			res, err = evaluate(val, blendEvents)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		out := naming.New("l2-blend", res.Total).String()

		{
			printResult(cmd.OutOrStdout(), res)

			err = dataset.WritePredictions(predsPath(out, "val"), val, true)
			if err != nil {
				return tracer.Mask(err)
			}
		}

		var tes []clickrank.Row
		{
			tes, err = blendSubset(cmd, nam, wei, "test")
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

func blendSubset(cmd *cobra.Command, nam []string, wei []float64, sub string) ([]clickrank.Row, error) {
	var pat []string
	for _, n := range nam {
		pat = append(pat, predsPath(n, sub))
	}

	lis, err := blend.Load(cmd.Context(), pat)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	var set []blend.Set
	for i, l := range lis {
		rec.Rows("blend", len(l))
		set = append(set, blend.Set{Rows: l, Weight: wei[i]})
	}

	row, err := blend.Blend(set)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	return row, nil
}

func parseWeights(arg []string) ([]string, []float64, error) {
	var nam []string
	var wei []float64

	for _, a := range arg {
		i := strings.LastIndex(a, "=")
		if i <= 0 {
			return nil, nil, tracer.Maskf(clickrank.InvalidInputError, "%q must have the form name=weight", a)
		}

		w, err := strconv.ParseFloat(a[i+1:], 64)
		if err != nil {
			return nil, nil, tracer.Maskf(clickrank.InvalidInputError, "%q has no valid weight", a)
		}

		nam = append(nam, a[:i])
		wei = append(wei, w)
	}

	return nam, wei, nil
}

func init() {
	blendCmd.Flags().StringVar(&blendEvents, "events", "", "Events file providing display timestamps")
	blendCmd.MarkFlagRequired("events")

	rootCmd.AddCommand(blendCmd)
}
