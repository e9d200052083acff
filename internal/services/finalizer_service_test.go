package services

import (
	"testing"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func groupIdentifier(s string) *string { return &s }

func TestBuildGroupMatches_IncludesZeroMatchParticipants(t *testing.T) {
	sessions := []*models.Session{
		{
			GroupIdentifier:    groupIdentifier("A"),
			ParticipantUserIDs: models.StringSlice{"alice", "bob"},
			GameResults: &models.GameResults{
				Participants: []models.H2HParticipantResult{
					{UserID: "alice", Score: 3, Result: "win"},
					{UserID: "bob", Score: 1, Result: "loss"},
				},
			},
		},
		{
			GroupIdentifier:    groupIdentifier("A"),
			ParticipantUserIDs: models.StringSlice{"carol", "dave"},
			// Not yet finalized: no GameResults.
		},
	}

	matches, allParticipants := buildGroupMatches(sessions)

	assert.Len(t, matches, 1)
	assert.Equal(t, "alice", matches[0].ParticipantA)
	assert.Equal(t, 3, matches[0].ScoreA)

	assert.ElementsMatch(t, []string{"alice", "bob", "carol", "dave"}, allParticipants["A"])
}

func TestBuildMatchRecords_SkipsUnfinalizedSessions(t *testing.T) {
	sessions := []*models.Session{
		{
			TournamentRound: 1,
			GameResults: &models.GameResults{
				Participants: []models.H2HParticipantResult{
					{UserID: "alice", Score: 2, Result: "win"},
					{UserID: "bob", Score: 1, Result: "loss"},
				},
			},
		},
		{TournamentRound: 2}, // no GameResults yet
	}

	records := buildMatchRecords(sessions)
	assert.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Round)
}

func TestFinalHeadToHeadRankings_LeagueDispatch(t *testing.T) {
	typeCode := "league"
	tournament := &models.Tournament{ID: "t1", TournamentTypeCode: &typeCode}
	sessions := []*models.Session{
		{
			TournamentRound: 1,
			GameResults: &models.GameResults{
				Participants: []models.H2HParticipantResult{
					{UserID: "alice", Score: 3, Result: "win"},
					{UserID: "bob", Score: 1, Result: "loss"},
				},
			},
		},
	}

	rows, err := finalHeadToHeadRankings(tournament, sessions)
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "t1", r.TournamentID)
		assert.Equal(t, models.RankingBasisWins, r.RankingBasis)
	}
}

func TestFinalHeadToHeadRankings_RejectsReservedSwissType(t *testing.T) {
	typeCode := "swiss"
	tournament := &models.Tournament{ID: "t1", TournamentTypeCode: &typeCode}

	_, err := finalHeadToHeadRankings(tournament, nil)
	assert.Error(t, err)
}

func TestSessionFinalizationGuard_AllowsFirstFinalization(t *testing.T) {
	session := &models.Session{}
	err := sessionFinalizationGuard(session, false, "s1")
	assert.NoError(t, err)
}

func TestSessionFinalizationGuard_RejectsWhenGameResultsAlreadyWritten(t *testing.T) {
	session := &models.Session{GameResults: &models.GameResults{}}
	err := sessionFinalizationGuard(session, false, "s1")
	appErr, ok := err.(*AppError)
	assert.True(t, ok)
	assert.Equal(t, KindAlreadyFinalized, appErr.Kind)
}

func TestSessionFinalizationGuard_RejectsWhenRankingsAlreadyPersisted(t *testing.T) {
	// game_results is still nil here, but tournament_rankings rows already
	// exist: a real interleaving from the historical dual-finalization bug
	// (§9), and each guard must fail independently rather than requiring
	// both conditions to hold.
	session := &models.Session{}
	err := sessionFinalizationGuard(session, true, "s1")
	appErr, ok := err.(*AppError)
	assert.True(t, ok)
	assert.Equal(t, KindAlreadyFinalized, appErr.Kind)
}

func TestSessionFinalizationGuard_RejectsWhenBothConditionsHold(t *testing.T) {
	session := &models.Session{GameResults: &models.GameResults{}}
	err := sessionFinalizationGuard(session, true, "s1")
	appErr, ok := err.(*AppError)
	assert.True(t, ok)
	assert.Equal(t, KindAlreadyFinalized, appErr.Kind)
}
