package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProcess_EmptyBatchRejected(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process(FormatIndividualRanking, nil)
	assert.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestProcessIndividualRanking_ContiguousPlacements(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{
		{UserID: "a", Placement: 2},
		{UserID: "b", Placement: 1},
		{UserID: "c", Placement: 3},
	}
	ranked, err := p.Process(FormatIndividualRanking, raw)
	assert.NoError(t, err)
	assert.Equal(t, []RankedResult{{UserID: "a", Rank: 2}, {UserID: "b", Rank: 1}, {UserID: "c", Rank: 3}}, ranked)
}

func TestProcessIndividualRanking_DuplicatePlacementRejected(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{{UserID: "a", Placement: 1}, {UserID: "b", Placement: 1}}
	_, err := p.Process(FormatIndividualRanking, raw)
	assert.Error(t, err)
}

func TestProcessIndividualRanking_GapInPlacementsRejected(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{{UserID: "a", Placement: 1}, {UserID: "b", Placement: 3}}
	_, err := p.Process(FormatIndividualRanking, raw)
	assert.Error(t, err)
}

func TestProcessWinLoss_ExactlyOneWinnerAndLoser(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{{UserID: "a", Result: "WIN"}, {UserID: "b", Result: "LOSS"}}
	ranked, err := p.Process(FormatHeadToHeadWinLoss, raw)
	assert.NoError(t, err)
	assert.Equal(t, []RankedResult{{UserID: "a", Rank: 1}, {UserID: "b", Rank: 2}}, ranked)
}

func TestProcessWinLoss_WrongCountRejected(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process(FormatHeadToHeadWinLoss, []RawResult{{UserID: "a", Result: "WIN"}})
	assert.Error(t, err)
}

func TestProcessWinLoss_BothWinRejected(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{{UserID: "a", Result: "WIN"}, {UserID: "b", Result: "WIN"}}
	_, err := p.Process(FormatHeadToHeadWinLoss, raw)
	assert.Error(t, err)
}

func TestProcessHeadToHeadScore_HigherScoreWins(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{{UserID: "a", Score: 10}, {UserID: "b", Score: 20}}
	ranked, err := p.Process(FormatHeadToHeadScore, raw)
	assert.NoError(t, err)
	assert.Equal(t, []RankedResult{{UserID: "b", Rank: 1}, {UserID: "a", Rank: 2}}, ranked)
}

func TestProcessHeadToHeadScore_TieSharesRankOne(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{{UserID: "a", Score: 5}, {UserID: "b", Score: 5}}
	ranked, err := p.Process(FormatHeadToHeadScore, raw)
	assert.NoError(t, err)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 1, ranked[1].Rank)
}

func TestProcessTeamMatch_HigherTeamScoreWins(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{
		{UserID: "a1", Team: "red", TeamScore: 3, OpponentScore: 1},
		{UserID: "a2", Team: "red", TeamScore: 3, OpponentScore: 1},
		{UserID: "b1", Team: "blue", TeamScore: 1, OpponentScore: 3},
	}
	ranked, err := p.Process(FormatTeamMatch, raw)
	assert.NoError(t, err)

	byUser := make(map[string]int)
	for _, r := range ranked {
		byUser[r.UserID] = r.Rank
	}
	assert.Equal(t, 1, byUser["a1"])
	assert.Equal(t, 1, byUser["a2"])
	assert.Equal(t, 2, byUser["b1"])
}

func TestProcessTeamMatch_RequiresExactlyTwoTeams(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{
		{UserID: "a1", Team: "red"},
		{UserID: "b1", Team: "blue"},
		{UserID: "c1", Team: "green"},
	}
	_, err := p.Process(FormatTeamMatch, raw)
	assert.Error(t, err)
}

func TestProcessTimeBased_FastestIsRankOne(t *testing.T) {
	p := NewProcessor()
	raw := []RawResult{
		{UserID: "a", TimeSeconds: 12.4},
		{UserID: "b", TimeSeconds: 9.8},
		{UserID: "c", TimeSeconds: 15.0},
	}
	ranked, err := p.Process(FormatTimeBased, raw)
	assert.NoError(t, err)
	assert.Equal(t, "b", ranked[0].UserID)
	assert.Equal(t, "a", ranked[1].UserID)
	assert.Equal(t, "c", ranked[2].UserID)
}

func TestProcess_SkillRatingWithoutInjectionRejected(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process(FormatSkillRating, []RawResult{{UserID: "a"}})
	assert.Error(t, err)
}

func TestProcess_SkillRatingUsesInjectedProcessor(t *testing.T) {
	p := NewProcessor()
	p.SkillRating = func(raw []RawResult) ([]RankedResult, error) {
		return []RankedResult{{UserID: raw[0].UserID, Rank: 1}}, nil
	}
	ranked, err := p.Process(FormatSkillRating, []RawResult{{UserID: "a"}})
	assert.NoError(t, err)
	assert.Equal(t, 1, ranked[0].Rank)
}

func TestProcess_UnknownMatchFormatRejected(t *testing.T) {
	p := NewProcessor()
	_, err := p.Process("ELIMINATION_DARTS", []RawResult{{UserID: "a"}})
	assert.Error(t, err)
}
