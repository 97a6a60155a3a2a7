package dataset

import (
	"io"
	"strconv"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

// ReadPredictions reads prediction rows from a CSV file with the columns
// display_id, ad_id and pred. The optional clicked column is used as label
// if present. Files ending in ".gz" are decompressed on the fly.
//
//     display_id,ad_id,pred,clicked
//     1,42337,0.0213,0
//     1,139684,0.1734,1
//
func ReadPredictions(pat string) ([]clickrank.Row, error) {
	return read(pat, "pred", false)
}

// ReadClicks reads labelled rows from a CSV file with the columns
// display_id, ad_id and clicked. The scores of all returned rows are zero.
func ReadClicks(pat string) ([]clickrank.Row, error) {
	return read(pat, "", true)
}

// ReadKeys reads the display_id and ad_id columns of a clicks file. The
// clicked column is used if present, like in ReadPredictions.
//
//     display_id,ad_id
//     16874594,66758
//     16874594,150083
//
func ReadKeys(pat string) ([]clickrank.Row, error) {
	return read(pat, "", false)
}

func read(pat string, sco string, lab bool) ([]clickrank.Row, error) {
	var err error

	var r *reader
	{
		r, err = open(pat)
		if err != nil {
			return nil, tracer.Mask(err)
		}
		defer r.close()
	}

	var dis, ad int
	{
		dis, err = r.index("display_id")
		if err != nil {
			return nil, tracer.Mask(err)
		}

		ad, err = r.index("ad_id")
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	pre := -1
	if sco != "" {
		pre, err = r.index(sco)
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	cli := r.optional("clicked")
	if lab && cli == -1 {
		return nil, tracer.Maskf(clickrank.InvalidInputError, "%s has no column %q", pat, "clicked")
	}

	var row []clickrank.Row
	for {
		rec, err := r.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, tracer.Mask(err)
		}

		var x clickrank.Row

		x.Display, err = r.integer(rec, dis)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		x.Ad, err = r.integer(rec, ad)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		if pre != -1 {
			x.Score, err = r.float(rec, pre)
			if err != nil {
				return nil, tracer.Mask(err)
			}
		}

		if cli != -1 {
			x.Clicked, err = r.boolean(rec, cli)
			if err != nil {
				return nil, tracer.Mask(err)
			}
		}

		row = append(row, x)
	}

	return row, nil
}

// WritePredictions writes the given rows in the format understood by
// ReadPredictions. The clicked column is written if lab is true.
func WritePredictions(pat string, row []clickrank.Row, lab bool) error {
	return write(pat, row, true, lab)
}

// WriteClicks writes the given rows in the format understood by ReadClicks.
func WriteClicks(pat string, row []clickrank.Row) error {
	return write(pat, row, false, true)
}

func write(pat string, row []clickrank.Row, pre bool, lab bool) error {
	var err error

	var w *writer
	{
		w, err = create(pat)
		if err != nil {
			return tracer.Mask(err)
		}
	}

	hea := []string{"display_id", "ad_id"}
	if pre {
		hea = append(hea, "pred")
	}
	if lab {
		hea = append(hea, "clicked")
	}

	{
		err = w.c.Write(hea)
		if err != nil {
			w.close()
			return tracer.Mask(err)
		}
	}

	rec := make([]string, len(hea))
	for _, x := range row {
		rec[0] = strconv.FormatInt(x.Display, 10)
		rec[1] = strconv.FormatInt(x.Ad, 10)

		if pre {
			rec[2] = strconv.FormatFloat(x.Score, 'g', -1, 64)
		}

		if lab {
			rec[len(rec)-1] = "0"
			if x.Clicked {
				rec[len(rec)-1] = "1"
			}
		}

		err = w.c.Write(rec)
		if err != nil {
			w.close()
			return tracer.Mask(err)
		}
	}

	{
		err = w.close()
		if err != nil {
			return tracer.Mask(err)
		}
	}

	return nil
}

func (r *reader) boolean(rec []string, i int) (bool, error) {
	if i >= len(rec) {
		return false, r.missing(i)
	}

	b, err := strconv.ParseBool(rec[i])
	if err != nil {
		return false, tracer.Maskf(clickrank.InvalidInputError, "%s:%d column %d: %q is not a label", r.pat, r.lin, i+1, rec[i])
	}

	return b, nil
}

func (r *reader) float(rec []string, i int) (float64, error) {
	if i >= len(rec) {
		return 0, r.missing(i)
	}

	f, err := strconv.ParseFloat(rec[i], 64)
	if err != nil {
		return 0, tracer.Maskf(clickrank.InvalidInputError, "%s:%d column %d: %q is not a number", r.pat, r.lin, i+1, rec[i])
	}

	return f, nil
}

func (r *reader) integer(rec []string, i int) (int64, error) {
	if i >= len(rec) {
		return 0, r.missing(i)
	}

	n, err := strconv.ParseInt(rec[i], 10, 64)
	if err != nil {
		return 0, tracer.Maskf(clickrank.InvalidInputError, "%s:%d column %d: %q is not an integer", r.pat, r.lin, i+1, rec[i])
	}

	return n, nil
}

func (r *reader) missing(i int) error {
	return tracer.Maskf(clickrank.InvalidInputError, "%s:%d has no column %d", r.pat, r.lin, i+1)
}
