package headtohead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(TypeLeague))
	assert.NoError(t, Validate(TypeKnockout))
	assert.NoError(t, Validate(TypeGroupKnockout))

	err := Validate(TypeSwiss)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "swiss")
}

func TestValidate_Unknown(t *testing.T) {
	err := Validate("ladder")
	var typed *ErrUnknownTournamentType
	assert.ErrorAs(t, err, &typed)
}

func win(userID string, score float64) ParticipantResult {
	return ParticipantResult{UserID: userID, Score: score, Result: ResultWin}
}

func loss(userID string, score float64) ParticipantResult {
	return ParticipantResult{UserID: userID, Score: score, Result: ResultLoss}
}

func draw(userID string, score float64) ParticipantResult {
	return ParticipantResult{UserID: userID, Score: score, Result: ResultDraw}
}

func TestLeagueStandings_PointsAndTiebreaks(t *testing.T) {
	matches := []MatchRecord{
		{Round: 1, Participants: [2]ParticipantResult{win("alice", 3), loss("bob", 1)}},
		{Round: 2, Participants: [2]ParticipantResult{draw("alice", 1), draw("carol", 1)}},
		{Round: 2, Participants: [2]ParticipantResult{win("bob", 2), loss("carol", 0)}},
	}

	standings := LeagueStandings(matches)

	byUser := make(map[string]LeagueEntry)
	for _, e := range standings {
		byUser[e.UserID] = e
	}

	assert.Equal(t, 4, byUser["alice"].Points) // win(3) + draw(1)
	assert.Equal(t, 3, byUser["bob"].Points)   // loss(0) + win(3)
	assert.Equal(t, 1, byUser["carol"].Points) // draw(1) + loss(0)

	assert.Equal(t, 1, byUser["alice"].Rank)
	assert.Equal(t, 2, byUser["bob"].Rank)
	assert.Equal(t, 3, byUser["carol"].Rank)
}

func TestLeagueStandings_TiedPointsBrokenByGoalDifference(t *testing.T) {
	matches := []MatchRecord{
		{Round: 1, Participants: [2]ParticipantResult{win("alice", 5), loss("dave", 0)}},
		{Round: 1, Participants: [2]ParticipantResult{win("bob", 2), loss("erin", 1)}},
	}
	standings := LeagueStandings(matches)

	assert.Equal(t, "alice", standings[0].UserID)
	assert.Equal(t, 1, standings[0].Rank)
	assert.Equal(t, "bob", standings[1].UserID)
	assert.Equal(t, 2, standings[1].Rank)
}

func TestKnockoutStandings_ChampionRunnerUpAndEarlyElimination(t *testing.T) {
	matches := []MatchRecord{
		// Round 1 (semis)
		{Round: 1, Participants: [2]ParticipantResult{win("alice", 10), loss("bob", 4)}},
		{Round: 1, Participants: [2]ParticipantResult{win("carol", 8), loss("dave", 2)}},
		// Round 2 (final)
		{Round: 2, Participants: [2]ParticipantResult{win("alice", 6), loss("carol", 3)}},
	}

	standings := KnockoutStandings(matches)
	byUser := make(map[string]KnockoutEntry)
	for _, e := range standings {
		byUser[e.UserID] = e
	}

	assert.Equal(t, 1, byUser["alice"].Rank)
	assert.Equal(t, 2, byUser["carol"].Rank)
	// Both bob and dave were eliminated in round 1; bob scored more in his
	// deciding match (4 vs 2), so he ranks above dave.
	assert.Equal(t, 3, byUser["bob"].Rank)
	assert.Equal(t, 4, byUser["dave"].Rank)
}

func TestGroupKnockoutStandings_KnockoutFirstThenGroupOnly(t *testing.T) {
	knockoutMatches := []MatchRecord{
		{Round: 1, Participants: [2]ParticipantResult{win("alice", 5), loss("bob", 1)}},
	}
	groupOnly := []GroupOnlyEntry{
		{UserID: "dave", GroupIdentifier: "B", GroupRank: 2},
		{UserID: "carol", GroupIdentifier: "A", GroupRank: 2},
		{UserID: "erin", GroupIdentifier: "A", GroupRank: 1},
	}

	combined := GroupKnockoutStandings(knockoutMatches, groupOnly)

	byUser := make(map[string]int)
	for _, e := range combined {
		byUser[e.UserID] = e.Rank
	}

	assert.Equal(t, 1, byUser["alice"])
	assert.Equal(t, 2, byUser["bob"])
	// group-only participants are appended after the knockout bracket,
	// ordered by (group_rank, group_identifier).
	assert.Equal(t, 3, byUser["erin"])
	assert.Equal(t, 4, byUser["carol"])
	assert.Equal(t, 5, byUser["dave"])
}
