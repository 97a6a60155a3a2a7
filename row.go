package clickrank

import "github.com/xh3b4sd/tracer"

// Row is a single click prediction, one ad shown within one display.
type Row struct {
	// Display is the id of the display the ad was shown in. All ads of a
	// display are ranked against each other.
	Display int64
	// Ad is the id of the ad. It must be unique within its display.
	Ad int64
	// Score is the predicted click probability, or any other monotone score.
	Score float64
	// Clicked is only used for scoring. At most one ad of a display can be
	// clicked.
	Clicked bool
}

// Result is the outcome of a single scoring run.
type Result struct {
	Present float64
	Future  float64
	Total   float64

	PresentSum   float64
	FutureSum    float64
	PresentCount int
	FutureCount  int
}

// Entry is one line of a submission file.
type Entry struct {
	Display int64
	Ads     string
}

// Times is an in-memory event time lookup keyed by display id.
type Times map[int64]int64

func (t Times) Timestamp(dis int64) (int64, error) {
	tim, ok := t[dis]
	if !ok {
		return 0, tracer.Maskf(MissingJoinKeyError, "no event time for display %d", dis)
	}

	return tim, nil
}
