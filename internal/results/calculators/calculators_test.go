package calculators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateGroupStandings_PointsAndZeroMatchRows(t *testing.T) {
	matches := []GroupMatch{
		{GroupIdentifier: "A", ParticipantA: "alice", ScoreA: 3, ParticipantB: "bob", ScoreB: 1},
		{GroupIdentifier: "A", ParticipantA: "carol", ScoreA: 2, ParticipantB: "bob", ScoreB: 2},
	}
	allParticipants := map[string][]string{
		"A": {"alice", "bob", "carol", "dave"},
	}

	names := map[string]string{"alice": "Alice A", "bob": "Bob B"}

	tables := CalculateGroupStandings(matches, allParticipants, names)
	rowsA := tables["A"]
	assert.Len(t, rowsA, 4)

	byUser := make(map[string]StandingsRow)
	for _, r := range rowsA {
		byUser[r.UserID] = r
	}

	assert.Equal(t, 3, byUser["alice"].Points)
	assert.Equal(t, 1, byUser["carol"].Points)
	assert.Equal(t, 1, byUser["bob"].Points)
	assert.Equal(t, 0, byUser["dave"].Points)
	assert.Equal(t, 0, byUser["dave"].MatchesPlayed)

	assert.Equal(t, 1, byUser["alice"].Rank)
	assert.Equal(t, 4, byUser["dave"].Rank)

	assert.Equal(t, "Alice A", byUser["alice"].Name)
	assert.Equal(t, "Bob B", byUser["bob"].Name)
	assert.Empty(t, byUser["carol"].Name)
}

func TestCalculateGroupStandings_TieBrokenByGoalDifferenceThenUserID(t *testing.T) {
	matches := []GroupMatch{
		{GroupIdentifier: "A", ParticipantA: "alice", ScoreA: 4, ParticipantB: "x1", ScoreB: 0},
		{GroupIdentifier: "A", ParticipantA: "bob", ScoreA: 2, ParticipantB: "x2", ScoreB: 0},
	}
	tables := CalculateGroupStandings(matches, nil, nil)
	rows := tables["A"]

	assert.Equal(t, "alice", rows[0].UserID)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "bob", rows[1].UserID)
	assert.Equal(t, 2, rows[1].Rank)
}

func TestCalculateAdvancement_SeedsCrossoverPairs(t *testing.T) {
	standings := map[string][]StandingsRow{
		"A": {{UserID: "a1", Rank: 1}, {UserID: "a2", Rank: 2}},
		"B": {{UserID: "b1", Rank: 1}, {UserID: "b2", Rank: 2}},
	}
	slots := []KnockoutSlot{
		{SessionID: "s1", Round: 1},
		{SessionID: "s2", Round: 1},
	}

	result := CalculateAdvancement(standings, slots)

	assert.Equal(t, 2, result.SessionsUpdated)
	// Seeded order is [a1, b1, a2, b2]; s1 pairs seeded[0] vs seeded[3],
	// s2 pairs seeded[1] vs seeded[2] (classic crossover).
	assert.Equal(t, [2]string{"a1", "b2"}, result.Pairings["s1"])
	assert.Equal(t, [2]string{"b1", "a2"}, result.Pairings["s2"])
}

func TestCalculateAdvancement_InfersTopNFromSlotsAndGroupCount(t *testing.T) {
	// 3 slots -> 6 qualifiers over 2 groups -> top_n = 3 per group, not a
	// fixed top_2 assumption.
	standings := map[string][]StandingsRow{
		"A": {{UserID: "a1", Rank: 1}, {UserID: "a2", Rank: 2}, {UserID: "a3", Rank: 3}},
		"B": {{UserID: "b1", Rank: 1}, {UserID: "b2", Rank: 2}, {UserID: "b3", Rank: 3}},
	}
	slots := []KnockoutSlot{
		{SessionID: "s1", Round: 1}, {SessionID: "s2", Round: 1}, {SessionID: "s3", Round: 1},
	}

	result := CalculateAdvancement(standings, slots)

	assert.Equal(t, 3, result.SessionsUpdated)
	assert.Len(t, result.Qualified, 6)
}

func TestCalculateAdvancement_UnevenGroupSlotRatioReturnsEmpty(t *testing.T) {
	// 1 slot -> 2 qualifiers over 3 groups does not divide evenly.
	standings := map[string][]StandingsRow{
		"A": {{UserID: "a1", Rank: 1}},
		"B": {{UserID: "b1", Rank: 1}},
		"C": {{UserID: "c1", Rank: 1}},
	}
	slots := []KnockoutSlot{{SessionID: "s1", Round: 1}}

	result := CalculateAdvancement(standings, slots)

	assert.Equal(t, 0, result.SessionsUpdated)
	assert.Empty(t, result.Pairings)
}

func TestCalculateAdvancement_InsufficientQualifiersReturnsEmpty(t *testing.T) {
	standings := map[string][]StandingsRow{
		"A": {{UserID: "a1", Rank: 1}},
	}
	slots := []KnockoutSlot{{SessionID: "s1", Round: 1}, {SessionID: "s2", Round: 1}}

	result := CalculateAdvancement(standings, slots)

	assert.Equal(t, 0, result.SessionsUpdated)
	assert.Empty(t, result.Pairings)
}

func TestCalculateAdvancement_NoSlotsIsNoop(t *testing.T) {
	result := CalculateAdvancement(map[string][]StandingsRow{}, nil)
	assert.Equal(t, 0, result.SessionsUpdated)
	assert.NotNil(t, result.Pairings)
}
