package split

import (
	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

// Splitter separates training displays from validation displays. The
// validation set consists of a time based part, all displays at or after
// Thr, and a sampled part, all displays whose id modulo Mod equals Rem.
type Splitter struct {
	// Eve is the required event time lookup.
	Eve clickrank.Lookup
	// Thr is the required time threshold in milliseconds.
	Thr int64
	// Mod is the required sampling modulus.
	Mod int64
	// Rem is the sampling remainder, which must be smaller than Mod.
	Rem int64
}

// Validation reports whether the given display belongs to the validation
// set.
func (s *Splitter) Validation(dis int64) (bool, error) {
	{
		s.configs()
	}

	tim, err := s.Eve.Timestamp(dis)
	if err != nil {
		return false, tracer.Mask(err)
	}

	return tim >= s.Thr || dis%s.Mod == s.Rem, nil
}

// Split partitions the given rows into training and validation rows,
// preserving their relative order.
func (s *Splitter) Split(row []clickrank.Row) ([]clickrank.Row, []clickrank.Row, error) {
	{
		s.configs()
	}

	var tra, val []clickrank.Row

	see := map[int64]bool{}
	for _, x := range row {
		v, ok := see[x.Display]
		if !ok {
			var err error
			v, err = s.Validation(x.Display)
			if err != nil {
				return nil, nil, tracer.Mask(err)
			}

			see[x.Display] = v
		}

		if v {
			val = append(val, x)
		} else {
			tra = append(tra, x)
		}
	}

	return tra, val, nil
}

func (s *Splitter) configs() {
	if s.Eve == nil {
		panic("Splitter.Eve must not be empty")
	}

	if s.Thr == 0 {
		panic("Splitter.Thr must not be empty")
	}

	if s.Mod <= 0 {
		panic("Splitter.Mod must not be empty")
	}

	if s.Rem < 0 || s.Rem >= s.Mod {
		panic("Splitter.Rem must be within [0, Splitter.Mod)")
	}
}
