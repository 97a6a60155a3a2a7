package dataset

import (
	"io"

	"github.com/xh3b4sd/tracer"

	"github.com/xh3b4sd/clickrank"
)

// Events is the event time lookup read from an events file. Display ids
// listed more than once cannot be resolved, since picking one of the
// timestamps would silently move displays between partitions.
type Events struct {
	tim map[int64]int64
	dup map[int64]int
}

// ReadEvents reads the display_id and timestamp columns of the given events
// file. All other columns are ignored.
//
//     display_id,uuid,document_id,timestamp,platform,geo_location
//     1,cb8c55702adb93,379743,61,3,US>SC>519
//
func ReadEvents(pat string) (*Events, error) {
	var err error

	var r *reader
	{
		r, err = open(pat)
		if err != nil {
			return nil, tracer.Mask(err)
		}
		defer r.close()
	}

	var dis, tim int
	{
		dis, err = r.index("display_id")
		if err != nil {
			return nil, tracer.Mask(err)
		}

		tim, err = r.index("timestamp")
		if err != nil {
			return nil, tracer.Mask(err)
		}
	}

	e := NewEvents()

	for {
		rec, err := r.next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, tracer.Mask(err)
		}

		var d, t int64

		d, err = r.integer(rec, dis)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		t, err = r.integer(rec, tim)
		if err != nil {
			return nil, tracer.Mask(err)
		}

		e.Add(d, t)
	}

	return e, nil
}

// NewEvents returns an empty lookup to be filled via Add.
func NewEvents() *Events {
	return &Events{
		tim: map[int64]int64{},
		dup: map[int64]int{},
	}
}

// Add registers the event time of a display. Adding the same display twice
// marks it as ambiguous.
func (e *Events) Add(dis int64, tim int64) {
	_, exi := e.tim[dis]
	if exi {
		if e.dup[dis] == 0 {
			e.dup[dis] = 1
		}
		e.dup[dis]++
		return
	}

	e.tim[dis] = tim
}

// Ambiguous returns the number of display ids seen more than once.
func (e *Events) Ambiguous() int {
	return len(e.dup)
}

func (e *Events) Len() int {
	return len(e.tim)
}

func (e *Events) Timestamp(dis int64) (int64, error) {
	if n, ok := e.dup[dis]; ok {
		return 0, tracer.Maskf(clickrank.MissingJoinKeyError, "display %d has %d event times", dis, n)
	}

	tim, ok := e.tim[dis]
	if !ok {
		return 0, tracer.Maskf(clickrank.MissingJoinKeyError, "no event time for display %d", dis)
	}

	return tim, nil
}
