package blend

import (
	"context"

	"github.com/xh3b4sd/tracer"
	"golang.org/x/sync/errgroup"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/dataset"
)

// Set is one weighted prediction set taking part in a blend.
type Set struct {
	Rows   []clickrank.Row
	Weight float64
}

// Blend combines the given prediction sets linearly. All sets must list the
// same display and ad ids in the same order, which is the case for sets
// predicted on the same split. Labels are taken from the first set.
//
//     score = w1*score1 + w2*score2 + ... + wn*scoren
//
func Blend(set []Set) ([]clickrank.Row, error) {
	if len(set) == 0 {
		return nil, tracer.Maskf(clickrank.InvalidInputError, "no prediction set to blend")
	}

	out := make([]clickrank.Row, len(set[0].Rows))
	for i, x := range set[0].Rows {
		out[i] = clickrank.Row{
			Display: x.Display,
			Ad:      x.Ad,
			Clicked: x.Clicked,
		}
	}

	for j, s := range set {
		if len(s.Rows) != len(out) {
			return nil, tracer.Maskf(clickrank.InvalidInputError, "prediction set %d has %d rows, expected %d", j, len(s.Rows), len(out))
		}

		for i, x := range s.Rows {
			if x.Display != out[i].Display || x.Ad != out[i].Ad {
				return nil, tracer.Maskf(clickrank.InvalidInputError, "prediction set %d row %d is display %d ad %d, expected display %d ad %d", j, i, x.Display, x.Ad, out[i].Display, out[i].Ad)
			}

			out[i].Score += s.Weight * x.Score
		}
	}

	return out, nil
}

// Load reads the prediction files at the given paths concurrently. The
// returned sets are in the order of the given paths.
func Load(ctx context.Context, pat []string) ([][]clickrank.Row, error) {
	out := make([][]clickrank.Row, len(pat))

	g, ctx := errgroup.WithContext(ctx)
	for i, p := range pat {
		i, p := i, p

		g.Go(func() error {
			{
				err := ctx.Err()
				if err != nil {
					return tracer.Mask(err)
				}
			}

			row, err := dataset.ReadPredictions(p)
			if err != nil {
				return tracer.Mask(err)
			}

			out[i] = row

			return nil
		})
	}

	{
		err := g.Wait()
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	return out, nil
}
