package ranking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_CalculateRankings_UnknownScoringType(t *testing.T) {
	s := NewService()
	_, err := s.CalculateRankings("UNKNOWN", RoundResults{}, []string{"a"}, "")
	assert.Error(t, err)
}

func TestService_ConvertToLegacyFormat_WinsRankingsStaysEmpty(t *testing.T) {
	s := NewService()
	groups := []RankGroup{
		{Rank: 1, Participants: []string{"alice"}, FinalValue: 9.5},
		{Rank: 2, Participants: []string{"bob", "carol"}, FinalValue: 8.0},
	}

	performance, wins := s.ConvertToLegacyFormat(groups, "seconds")

	assert.Len(t, performance, 3)
	assert.Empty(t, wins)
	assert.NotNil(t, wins)

	byUser := make(map[string]LegacyRankingEntry)
	for _, e := range performance {
		byUser[e.UserID] = e
	}
	assert.False(t, byUser["alice"].IsTied)
	assert.True(t, byUser["bob"].IsTied)
	assert.Equal(t, "seconds", byUser["alice"].MeasurementUnit)
}

func TestService_AggregationLabel_RespectsDirectionOverride(t *testing.T) {
	s := NewService()
	label, err := s.AggregationLabel(ScoringTimeBased, Desc)
	assert.NoError(t, err)
	assert.Equal(t, "MAX_VALUE", label)
}

func TestService_CalculateRankings_EndToEnd(t *testing.T) {
	s := NewService()
	rounds := RoundResults{
		"1": {"alice": "10.5s", "bob": "9.0s"},
	}
	groups, err := s.CalculateRankings(ScoringTimeBased, rounds, []string{"alice", "bob"}, "")
	assert.NoError(t, err)
	assert.Equal(t, []string{"bob"}, groups[0].Participants)
}
