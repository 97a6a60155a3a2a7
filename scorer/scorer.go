package scorer

import (
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/ranker"
)

type Scorer struct {
	// Eve is the required event time lookup used to assign every display to
	// the present or the future partition.
	Eve clickrank.Lookup
	// Spl is the required split threshold in milliseconds. Displays with an
	// event time below Spl are present, all others are future. A zero Spl
	// is treated as missing configuration and panics, even though it would
	// otherwise only leave the present partition empty.
	Spl int64
}

func (s *Scorer) Score(row []clickrank.Row) (clickrank.Result, error) {
	{
		s.configs()
	}

	var grp []ranker.Group
	{
		var r ranker.Ranker

		var err error
		grp, err = r.Rank(row)
		if err != nil {
			return clickrank.Result{}, tracer.Mask(err)
		}
	}

	var res clickrank.Result
	for _, g := range grp {
		if g.Clicks > 1 {
			return clickrank.Result{}, tracer.Maskf(clickrank.InvalidInputError, "display %d has %d clicked ads", g.Display, g.Clicks)
		}

		tim, err := s.Eve.Timestamp(g.Display)
		if err != nil {
			return clickrank.Result{}, tracer.Mask(err)
		}

		var rec float64
		if g.Rank != 0 {
			rec = 1 / float64(g.Rank)
		}

		if tim < s.Spl {
			res.PresentSum += rec
			res.PresentCount++
		} else {
			res.FutureSum += rec
			res.FutureCount++
		}
	}

	if res.PresentCount == 0 {
		return clickrank.Result{}, tracer.Maskf(clickrank.EmptyPartitionError, "no display before %d", s.Spl)
	}

	if res.FutureCount == 0 {
		return clickrank.Result{}, tracer.Maskf(clickrank.EmptyPartitionError, "no display at or after %d", s.Spl)
	}

	{
		res.Present = res.PresentSum / float64(res.PresentCount)
		res.Future = res.FutureSum / float64(res.FutureCount)
		res.Total = (res.PresentSum + res.FutureSum) / float64(res.PresentCount+res.FutureCount)
	}

	return res, nil
}

func (s *Scorer) configs() {
	if s.Eve == nil {
		panic("Scorer.Eve must not be empty")
	}

	if s.Spl == 0 {
		panic("Scorer.Spl must not be empty")
	}
}
