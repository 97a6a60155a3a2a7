package submission

import (
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
	"github.com/xh3b4sd/clickrank/ranker"
)

var header = []string{"display_id", "ad_id"}

type Builder struct {
	// Top is the required number of ads kept per display.
	Top int
}

func (b *Builder) Build(row []clickrank.Row) ([]clickrank.Entry, error) {
	{
		b.configs()
	}

	var grp []ranker.Group
	{
		r := ranker.Ranker{Lim: b.Top}

		var err error
		grp, err = r.Rank(row)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	ent := make([]clickrank.Entry, 0, len(grp))
	for _, g := range grp {
		lis := make([]string, len(g.Ads))
		for i, a := range g.Ads {
			lis[i] = strconv.FormatInt(a, 10)
		}

		ent = append(ent, clickrank.Entry{
			Display: g.Display,
			Ads:     strings.Join(lis, " "),
		})
	}

	sort.SliceStable(ent, func(i, j int) bool {
		return ent[i].Display < ent[j].Display
	})

	return ent, nil
}

func (b *Builder) configs() {
	if b.Top <= 0 {
		panic("Builder.Top must not be empty")
	}
}

// Write encodes the given entries as submission CSV including its header.
func Write(w io.Writer, ent []clickrank.Entry) error {
	c := csv.NewWriter(w)

	{
		err := c.Write(header)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	for _, e := range ent {
		err := c.Write([]string{strconv.FormatInt(e.Display, 10), e.Ads})
		if err != nil {
			return tracer.Mask(err)
		}
	}

	{
		c.Flush()

		err := c.Error()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}
