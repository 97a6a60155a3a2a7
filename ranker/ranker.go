package ranker

import (
	"math"
	"sort"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

// Group is the ranked ad list of a single display.
type Group struct {
	Display int64
	// Ads are the ad ids ordered by descending score, truncated to the
	// limit of the ranker.
	Ads []int64
	// Size is the number of ads the display had before truncation.
	Size int
	// Rank is the 1-based position of the clicked ad within the full
	// display. Rank is 0 if no ad of the display was clicked.
	Rank int
	// Clicks is the number of clicked ads seen for the display.
	Clicks int
}

type Ranker struct {
	// Lim is the optional maximum number of ads kept per display. The zero
	// value keeps all ads.
	Lim int
}

// Rank orders the given rows by ascending display id and descending score
// and emits one group per display, in ascending display order. Rows with
// equal scores keep their input order. The given rows are not modified.
func (r *Ranker) Rank(row []clickrank.Row) ([]Group, error) {
	{
		err := r.verify(row)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	var srt []clickrank.Row
	{
		srt = make([]clickrank.Row, len(row))
		copy(srt, row)

		sort.SliceStable(srt, func(i, j int) bool {
			if srt[i].Display != srt[j].Display {
				return srt[i].Display < srt[j].Display
			}

			return srt[i].Score > srt[j].Score
		})
	}

	var grp []Group
	var cur *Group
	var see map[int64]struct{}

	for _, x := range srt {
		if cur == nil || cur.Display != x.Display {
			grp = append(grp, Group{Display: x.Display})
			cur = &grp[len(grp)-1]
			see = map[int64]struct{}{}
		}

		{
			_, exi := see[x.Ad]
			if exi {
				return nil, tracer.Maskf(clickrank.InvalidInputError, "ad %d appears twice in display %d", x.Ad, x.Display)
			}

			see[x.Ad] = struct{}{}
		}

		cur.Size++

		if x.Clicked {
			cur.Clicks++
			if cur.Rank == 0 {
				cur.Rank = cur.Size
			}
		}

		if r.Lim == 0 || len(cur.Ads) < r.Lim {
			cur.Ads = append(cur.Ads, x.Ad)
		}
	}

	return grp, nil
}

func (r *Ranker) verify(row []clickrank.Row) error {
	if r.Lim < 0 {
		return tracer.Maskf(clickrank.InvalidInputError, "limit must not be negative, got %d", r.Lim)
	}

	for _, x := range row {
		if math.IsNaN(x.Score) || math.IsInf(x.Score, 0) {
			return tracer.Maskf(clickrank.InvalidInputError, "score of ad %d in display %d is %v", x.Ad, x.Display, x.Score)
		}
	}

	return nil
}
