package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh3b4sd/clickrank"
)

func Test_Scorer_Score_empty_future(t *testing.T) {
	s := Scorer{
		Eve: clickrank.Times{1: 100},
		Spl: 200,
	}

	row := []clickrank.Row{
		{Display: 1, Ad: 10, Score: 0.9, Clicked: true},
		{Display: 1, Ad: 11, Score: 0.5},
	}

	_, err := s.Score(row)
	require.Error(t, err)
	assert.True(t, clickrank.IsEmptyPartition(err))
}

func Test_Scorer_Score_empty_present(t *testing.T) {
	s := Scorer{
		Eve: clickrank.Times{1: 300},
		Spl: 200,
	}

	_, err := s.Score([]clickrank.Row{{Display: 1, Ad: 10, Score: 0.9, Clicked: true}})
	require.Error(t, err)
	assert.True(t, clickrank.IsEmptyPartition(err))
}

func Test_Scorer_Score_present(t *testing.T) {
	s := Scorer{
		Eve: clickrank.Times{1: 100, 2: 150, 3: 500},
		Spl: 200,
	}

	row := []clickrank.Row{
		{Display: 1, Ad: 10, Score: 0.8},
		{Display: 1, Ad: 11, Score: 0.3, Clicked: true},
		{Display: 2, Ad: 20, Score: 0.6, Clicked: true},
		{Display: 2, Ad: 21, Score: 0.1},
		{Display: 3, Ad: 30, Score: 0.2, Clicked: true},
	}

	res, err := s.Score(row)
	require.NoError(t, err)

	assert.InDelta(t, 0.75, res.Present, 1e-12)
	assert.InDelta(t, 1.0, res.Future, 1e-12)
	assert.InDelta(t, 2.5/3, res.Total, 1e-12)
	assert.Equal(t, 2, res.PresentCount)
	assert.Equal(t, 1, res.FutureCount)
}

func Test_Scorer_Score_perfect(t *testing.T) {
	eve := clickrank.Times{}
	var row []clickrank.Row
	for d := int64(0); d < 10; d++ {
		eve[d] = d * 100
		for a := int64(0); a < 4; a++ {
			row = append(row, clickrank.Row{Display: d, Ad: a, Score: float64(10 - a), Clicked: a == 0})
		}
	}

	s := Scorer{Eve: eve, Spl: 450}

	res, err := s.Score(row)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Present)
	assert.Equal(t, 1.0, res.Future)
	assert.Equal(t, 1.0, res.Total)
}

func Test_Scorer_Score_pooling(t *testing.T) {
	eve := clickrank.Times{}
	var row []clickrank.Row
	for d := int64(0); d < 7; d++ {
		eve[d] = d
		for a := int64(0); a < 5; a++ {
			row = append(row, clickrank.Row{Display: d, Ad: a, Score: float64(a), Clicked: a == d%5})
		}
	}

	s := Scorer{Eve: eve, Spl: 2}

	res, err := s.Score(row)
	require.NoError(t, err)

	pre := float64(res.PresentCount)
	fut := float64(res.FutureCount)

	assert.Equal(t, 2, res.PresentCount)
	assert.Equal(t, 5, res.FutureCount)
	assert.InDelta(t, res.Present*pre+res.Future*fut, res.Total*(pre+fut), 1e-12)
	assert.NotEqual(t, (res.Present+res.Future)/2, res.Total)
}

func Test_Scorer_Score_no_click(t *testing.T) {
	s := Scorer{
		Eve: clickrank.Times{1: 100, 2: 100, 3: 300},
		Spl: 200,
	}

	row := []clickrank.Row{
		{Display: 1, Ad: 10, Score: 0.8, Clicked: true},
		{Display: 2, Ad: 20, Score: 0.8},
		{Display: 3, Ad: 30, Score: 0.8, Clicked: true},
	}

	res, err := s.Score(row)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Present, 1e-12)
	assert.Equal(t, 2, res.PresentCount)
}

func Test_Scorer_Score_tie_credit(t *testing.T) {
	s := Scorer{
		Eve: clickrank.Times{1: 100, 2: 300},
		Spl: 200,
	}

	row := []clickrank.Row{
		{Display: 1, Ad: 10, Score: 0.5},
		{Display: 1, Ad: 11, Score: 0.5, Clicked: true},
		{Display: 2, Ad: 20, Score: 0.5, Clicked: true},
		{Display: 2, Ad: 21, Score: 0.5},
	}

	res, err := s.Score(row)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Present, 1e-12)
	assert.InDelta(t, 1.0, res.Future, 1e-12)
}

func Test_Scorer_Score_error(t *testing.T) {
	testCases := []struct {
		name  string
		eve   clickrank.Times
		row   []clickrank.Row
		match func(error) bool
	}{
		{
			name: "case 0: missing event time",
			eve:  clickrank.Times{1: 100},
			row: []clickrank.Row{
				{Display: 1, Ad: 10, Score: 0.8, Clicked: true},
				{Display: 2, Ad: 20, Score: 0.8, Clicked: true},
			},
			match: clickrank.IsMissingJoinKey,
		},
		{
			name: "case 1: two clicks in one display",
			eve:  clickrank.Times{1: 100, 2: 300},
			row: []clickrank.Row{
				{Display: 1, Ad: 10, Score: 0.8, Clicked: true},
				{Display: 1, Ad: 11, Score: 0.4, Clicked: true},
				{Display: 2, Ad: 20, Score: 0.8, Clicked: true},
			},
			match: clickrank.IsInvalidInput,
		},
		{
			name:  "case 2: empty input",
			eve:   clickrank.Times{},
			row:   nil,
			match: clickrank.IsEmptyPartition,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Scorer{Eve: tc.eve, Spl: 200}

			_, err := s.Score(tc.row)
			require.Error(t, err)
			assert.True(t, tc.match(err))
		})
	}
}

func Test_Scorer_Score_panic(t *testing.T) {
	assert.Panics(t, func() {
		s := Scorer{Spl: 1}
		s.Score(nil)
	})

	assert.Panics(t, func() {
		s := Scorer{Eve: clickrank.Times{}}
		s.Score(nil)
	})
}

func Test_Scorer_Score_zero_threshold(t *testing.T) {
	row := []clickrank.Row{
		{Display: 1, Ad: 10, Score: 0.5, Clicked: true},
	}

	assert.Panics(t, func() {
		s := Scorer{Eve: clickrank.Times{1: 0}, Spl: 0}
		s.Score(row)
	})
}
