package cmd

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/viper"
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/dataset"
	"github.com/xh3b4sd/clickrank/scorer"
	"github.com/xh3b4sd/clickrank/submission"
)

// evaluate scores the given labelled rows against the events file.
func evaluate(row []clickrank.Row, eve string) (clickrank.Result, error) {
	var err error

	var e *dataset.Events
	{
		e, err = dataset.ReadEvents(eve)
		if err != nil {
			return clickrank.Result{}, tracer.Mask(err)
		}

		if e.Ambiguous() != 0 {
			logger.Warn("events contain ambiguous displays", "path", eve, "count", e.Ambiguous())
		}
	}

	var res clickrank.Result
	{
		s := scorer.Scorer{
			Eve: e,
			Spl: viper.GetInt64("split.threshold"),
		}

		res, err = s.Score(row)
		if err != nil {
			return clickrank.Result{}, tracer.Mask(err)
		}
	}

	{
		rec.Result(res)
		logger.Info("scored predictions", "rows", len(row), "present", res.PresentCount, "future", res.FutureCount)
	}

	return res, nil
}

func printResult(w io.Writer, res clickrank.Result) {
	fmt.Fprintf(w, "  Present score: %.5f\n", res.Present)
	fmt.Fprintf(w, "  Future score: %.5f\n", res.Future)
	fmt.Fprintf(w, "  Total score: %.5f\n", res.Total)
}

// attach sets the given predictions as scores of the given rows, line by
// line.
func attach(row []clickrank.Row, pre []float64) ([]clickrank.Row, error) {
	if len(row) != len(pre) {
		return nil, tracer.Maskf(clickrank.InvalidInputError, "got %d predictions for %d rows", len(pre), len(row))
	}

	out := make([]clickrank.Row, len(row))
	for i := range row {
		out[i] = row[i]
		out[i].Score = pre[i]
	}

	return out, nil
}

func predsPath(nam string, sub string) string {
	return filepath.Join(viper.GetString("paths.preds"), nam+"-"+sub+".csv.gz")
}

func submPath(nam string) string {
	return filepath.Join(viper.GetString("paths.subm"), nam+".csv.gz")
}

func writeSubmission(pat string, row []clickrank.Row) error {
	var err error

	var ent []clickrank.Entry
	{
		b := submission.Builder{
			Top: viper.GetInt("submission.top"),
		}

		ent, err = b.Build(row)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	var w io.WriteCloser
	{
		w, err = dataset.Create(pat)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		err = submission.Write(w, ent)
		if err != nil {
			w.Close()
			return tracer.Mask(err)
		}
	}

	{
		err = w.Close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		rec.Entries(len(ent))
		logger.Info("wrote submission", "path", pat, "displays", len(ent))
	}

	return nil
}
