package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xh3b4sd/clickrank"
)

func Test_Splitter_Validation(t *testing.T) {
	s := Splitter{
		Eve: clickrank.Times{1: 100, 5: 100, 11: 100, 12: 900, 13: 1000},
		Thr: 1000,
		Mod: 6,
		Rem: 5,
	}

	testCases := []struct {
		name string
		dis  int64
		exp  bool
	}{
		{name: "case 0: early, not sampled", dis: 1, exp: false},
		{name: "case 1: early, sampled", dis: 5, exp: true},
		{name: "case 2: early, sampled twice over", dis: 11, exp: true},
		{name: "case 3: just before threshold", dis: 12, exp: false},
		{name: "case 4: at threshold", dis: 13, exp: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			val, err := s.Validation(tc.dis)
			require.NoError(t, err)
			assert.Equal(t, tc.exp, val)
		})
	}
}

func Test_Splitter_Split(t *testing.T) {
	s := Splitter{
		Eve: clickrank.Times{1: 100, 2: 2000, 5: 100},
		Thr: 1000,
		Mod: 6,
		Rem: 5,
	}

	row := []clickrank.Row{
		{Display: 1, Ad: 10},
		{Display: 2, Ad: 20},
		{Display: 5, Ad: 50},
		{Display: 1, Ad: 11},
		{Display: 2, Ad: 21, Clicked: true},
	}

	tra, val, err := s.Split(row)
	require.NoError(t, err)

	assert.Equal(t, []clickrank.Row{{Display: 1, Ad: 10}, {Display: 1, Ad: 11}}, tra)
	assert.Equal(t, []clickrank.Row{{Display: 2, Ad: 20}, {Display: 5, Ad: 50}, {Display: 2, Ad: 21, Clicked: true}}, val)
}

func Test_Splitter_Split_missing(t *testing.T) {
	s := Splitter{
		Eve: clickrank.Times{1: 100},
		Thr: 1000,
		Mod: 6,
		Rem: 5,
	}

	_, _, err := s.Split([]clickrank.Row{{Display: 1}, {Display: 2}})
	require.Error(t, err)
	assert.True(t, clickrank.IsMissingJoinKey(err))
}

func Test_Splitter_configs(t *testing.T) {
	assert.Panics(t, func() {
		s := Splitter{Eve: clickrank.Times{}, Thr: 1, Mod: 6, Rem: 6}
		s.Split(nil)
	})

	assert.Panics(t, func() {
		s := Splitter{Eve: clickrank.Times{}, Thr: 1}
		s.Split(nil)
	})
}
