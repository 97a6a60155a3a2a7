package ctr

import (
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

// AdMean is the click-through-rate baseline. Every ad is scored by its
// regularised click rate observed during training.
//
//     score = clicks / (impressions + Reg)
//
// Ads never seen during training score 0.
type AdMean struct {
	// Reg is the required smoothing term added to the impression count.
	Reg float64

	cli map[int64]float64
	imp map[int64]float64
}

func (a *AdMean) Fit(row []clickrank.Row) error {
	{
		a.configs()
	}

	a.cli = map[int64]float64{}
	a.imp = map[int64]float64{}

	for _, x := range row {
		a.imp[x.Ad]++
		if x.Clicked {
			a.cli[x.Ad]++
		}
	}

	return nil
}

// Predict returns a copy of the given rows scored by the fitted rates.
func (a *AdMean) Predict(row []clickrank.Row) ([]clickrank.Row, error) {
	if a.imp == nil {
		return nil, tracer.Maskf(clickrank.InvalidInputError, "AdMean must be fitted before predicting")
	}

	out := make([]clickrank.Row, len(row))
	for i, x := range row {
		x.Score = a.cli[x.Ad] / (a.imp[x.Ad] + a.Reg)
		out[i] = x
	}

	return out, nil
}

func (a *AdMean) configs() {
	if a.Reg <= 0 {
		panic("AdMean.Reg must not be empty")
	}
}
