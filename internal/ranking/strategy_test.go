package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupByValue_TiesShareRankAndSkip(t *testing.T) {
	values := map[string]float64{
		"a": 10,
		"b": 10,
		"c": 8,
		"d": 12,
	}

	groups := GroupByValue(values, Desc)

	assert.Len(t, groups, 3)
	assert.Equal(t, 1, groups[0].Rank)
	assert.Equal(t, []string{"d"}, groups[0].Participants)
	assert.Equal(t, 2, groups[1].Rank)
	assert.ElementsMatch(t, []string{"a", "b"}, groups[1].Participants)
	assert.True(t, groups[1].IsTied())
	// Two participants tied at rank 2 push the next rank to 4, not 3.
	assert.Equal(t, 4, groups[2].Rank)
	assert.Equal(t, []string{"c"}, groups[2].Participants)
}

func TestGroupByValue_AscendingOrder(t *testing.T) {
	values := map[string]float64{"a": 3, "b": 1, "c": 2}
	groups := GroupByValue(values, Asc)

	assert.Equal(t, []string{"b"}, groups[0].Participants)
	assert.Equal(t, []string{"c"}, groups[1].Participants)
	assert.Equal(t, []string{"a"}, groups[2].Participants)
}

func TestGroupByValue_TieBrokenByUserIDWhenEqual(t *testing.T) {
	values := map[string]float64{"z": 5, "a": 5}
	groups := GroupByValue(values, Desc)

	assert.Len(t, groups, 1)
	assert.Equal(t, []string{"a", "z"}, groups[0].Participants)
}

func TestParseMeasuredValue(t *testing.T) {
	cases := []struct {
		raw     string
		wantVal float64
		wantOK  bool
	}{
		{"12.5s", 12.5, true},
		{"11 pts", 11, true},
		{"-3.2", -3.2, true},
		{"DNF", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		v, ok := ParseMeasuredValue(c.raw)
		assert.Equal(t, c.wantOK, ok, "raw=%q", c.raw)
		if ok {
			assert.Equal(t, c.wantVal, v, "raw=%q", c.raw)
		}
	}
}

func TestTimeBasedStrategy_DefaultMinAscending(t *testing.T) {
	s := TimeBasedStrategy{}
	rounds := RoundResults{
		"1": {"alice": "10.0s", "bob": "9.5s"},
		"2": {"alice": "11.0s", "bob": "12.0s"},
	}
	groups := s.CalculateRankings(rounds, []string{"alice", "bob"}, "")

	assert.Equal(t, []string{"bob"}, groups[0].Participants)
	assert.Equal(t, 9.5, groups[0].FinalValue)
	assert.Equal(t, "MIN_VALUE", s.AggregationLabel(""))
}

func TestTimeBasedStrategy_DescOverrideFlipsAggregation(t *testing.T) {
	s := TimeBasedStrategy{}
	rounds := RoundResults{
		"1": {"alice": "10.0s"},
		"2": {"alice": "14.0s"},
	}
	groups := s.CalculateRankings(rounds, []string{"alice"}, Desc)

	assert.Equal(t, 14.0, groups[0].FinalValue)
	assert.Equal(t, "MAX_VALUE", s.AggregationLabel(Desc))
}

func TestScoreBasedStrategy_SumsAndDescends(t *testing.T) {
	s := ScoreBasedStrategy{}
	rounds := RoundResults{
		"1": {"alice": "5", "bob": "20"},
		"2": {"alice": "5", "bob": "1"},
	}
	groups := s.CalculateRankings(rounds, []string{"alice", "bob"}, "")

	assert.Equal(t, []string{"bob"}, groups[0].Participants)
	assert.Equal(t, 21.0, groups[0].FinalValue)
	assert.Equal(t, "SUM", s.AggregationLabel(""))
}

func TestRoundsBasedStrategy_AscOverrideFlipsToMin(t *testing.T) {
	s := RoundsBasedStrategy{}
	rounds := RoundResults{
		"1": {"alice": "3"},
		"2": {"alice": "7"},
	}
	groups := s.CalculateRankings(rounds, []string{"alice"}, Asc)

	assert.Equal(t, 3.0, groups[0].FinalValue)
	assert.Equal(t, "MIN_VALUE", s.AggregationLabel(Asc))
}

func TestPlacementStrategy_SumsPlacementsAscending(t *testing.T) {
	s := PlacementStrategy{}
	rounds := RoundResults{
		"1": {"alice": "1", "bob": "3"},
		"2": {"alice": "2", "bob": "1"},
	}
	groups := s.CalculateRankings(rounds, []string{"alice", "bob"}, "")

	assert.Equal(t, []string{"alice"}, groups[0].Participants)
	assert.Equal(t, 3.0, groups[0].FinalValue)
	assert.Equal(t, "SUM_PLACEMENT", s.AggregationLabel(Desc))
}

func TestNewStrategy_Dispatch(t *testing.T) {
	for _, scoringType := range []string{
		ScoringTimeBased, ScoringScoreBased, ScoringRoundsBased,
		ScoringDistanceBased, ScoringPlacement,
	} {
		strategy, err := NewStrategy(scoringType)
		assert.NoError(t, err)
		assert.NotNil(t, strategy)
	}
}

func TestNewStrategy_UnknownType(t *testing.T) {
	_, err := NewStrategy("LUCK_BASED")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LUCK_BASED")
}

func TestDefaultDirection(t *testing.T) {
	assert.Equal(t, Asc, DefaultDirection(ScoringTimeBased))
	assert.Equal(t, Asc, DefaultDirection(ScoringPlacement))
	assert.Equal(t, Desc, DefaultDirection(ScoringScoreBased))
	assert.Equal(t, Desc, DefaultDirection(ScoringRoundsBased))
	assert.Equal(t, Desc, DefaultDirection(ScoringDistanceBased))
}

func TestDistanceBasedStrategy_BehavesLikeScoreBased(t *testing.T) {
	var s DistanceBasedStrategy
	rounds := RoundResults{"1": {"alice": "5.5"}}
	groups := s.CalculateRankings(rounds, []string{"alice"}, "")
	assert.Equal(t, 5.5, groups[0].FinalValue)
}
