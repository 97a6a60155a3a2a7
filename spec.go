package clickrank

// Scorer describes how ranked click predictions are evaluated. Creating a new
// scorer might be as simple as shown below.
//
//     sco := &scorer.Scorer{Eve: eve, Spl: 950400000}
//
type Scorer interface {
	// Score computes the mean reciprocal rank of the clicked ad within its
	// display. Displays are split into a present and a future partition by
	// the event time of the display. Suppose having predictions for two
	// displays, where the clicked ad of display 1 is ranked second and the
	// clicked ad of display 2 is ranked first, both in the present.
	//
	//     res.Present == (1.0/2 + 1.0/1) / 2
	//
	// The total score is pooled across both partitions, meaning it is the sum
	// of all reciprocal ranks divided by the number of all displays. It is
	// not the average of the present and future scores.
	//
	//     res.Total == (res.PresentSum + res.FutureSum) / float64(res.PresentCount + res.FutureCount)
	//
	Score([]Row) (Result, error)
}

// Builder describes how click predictions are turned into the ranked ad
// lists of a submission file.
type Builder interface {
	// Build ranks the ads of every display by descending score and keeps the
	// top ones. The returned entries are ordered by ascending display id.
	//
	//     display_id,ad_id
	//     16874594,66758 150083 162754 170392 172888 180797
	//     16874595,8846 30609 143982
	//
	Build([]Row) ([]Entry, error)
}

// Lookup resolves the event time of a display. Implementations must fail
// with a MissingJoinKeyError for unknown or ambiguous display ids.
type Lookup interface {
	Timestamp(int64) (int64, error)
}
