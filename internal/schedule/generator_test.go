package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func baseConfig() Config {
	return Config{
		StartDate:      time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
		MatchDuration:  30 * time.Minute,
		BreakDuration:  10 * time.Minute,
		ParallelFields: 2,
	}
}

func TestGenerate_IndividualRankingProducesOneSessionWithTotalRounds(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "INDIVIDUAL_RANKING"
	cfg.TotalRounds = 3

	plans, err := Generate(cfg, []string{"a", "b", "c"})
	assert.NoError(t, err)
	assert.Len(t, plans, 1)
	assert.Equal(t, 3, plans[0].TotalRounds)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, plans[0].ParticipantUserIDs)
}

func TestGenerate_IndividualRankingDefaultsTotalRoundsToOne(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "INDIVIDUAL_RANKING"

	plans, err := Generate(cfg, []string{"a"})
	assert.NoError(t, err)
	assert.Equal(t, 1, plans[0].TotalRounds)
}

func TestGenerate_UnknownTournamentTypeRejected(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "HEAD_TO_HEAD"
	cfg.TournamentTypeCode = "swiss"

	_, err := Generate(cfg, []string{"a", "b"})
	assert.Error(t, err)
	var typed *ErrUnsupportedTournamentType
	assert.ErrorAs(t, err, &typed)
}

func TestGenerateLeague_EveryPlayerMeetsEveryOtherExactlyOnce(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "HEAD_TO_HEAD"
	cfg.TournamentTypeCode = "league"
	roster := []string{"a", "b", "c", "d"}

	plans, err := Generate(cfg, roster)
	assert.NoError(t, err)

	seen := make(map[string]int)
	for _, p := range plans {
		assert.Len(t, p.ParticipantUserIDs, 2)
		key := p.ParticipantUserIDs[0] + "-" + p.ParticipantUserIDs[1]
		revKey := p.ParticipantUserIDs[1] + "-" + p.ParticipantUserIDs[0]
		seen[key]++
		seen[revKey]++
	}
	// 4 players round robin = 6 total matches (4 choose 2).
	assert.Len(t, plans, 6)
}

func TestGenerateLeague_OddRosterGetsByeRounds(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "HEAD_TO_HEAD"
	cfg.TournamentTypeCode = "league"
	roster := []string{"a", "b", "c"}

	plans, err := Generate(cfg, roster)
	assert.NoError(t, err)
	// 3 players with a bye: 3 rounds, 1 real match each = 3 matches total.
	assert.Len(t, plans, 3)
}

func TestGenerateKnockout_PowerOfTwoRosterHasNoByes(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "HEAD_TO_HEAD"
	cfg.TournamentTypeCode = "knockout"
	roster := []string{"a", "b", "c", "d"}

	plans, err := Generate(cfg, roster)
	assert.NoError(t, err)

	var round1 []SessionPlan
	for _, p := range plans {
		if p.TournamentRound == 1 {
			round1 = append(round1, p)
		}
	}
	assert.Len(t, round1, 2)
	for _, p := range round1 {
		assert.Len(t, p.ParticipantUserIDs, 2)
	}
}

func TestGenerateKnockout_NonPowerOfTwoRosterGetsByes(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "HEAD_TO_HEAD"
	cfg.TournamentTypeCode = "knockout"
	roster := []string{"a", "b", "c"}

	plans, err := Generate(cfg, roster)
	assert.NoError(t, err)

	var round1 []SessionPlan
	for _, p := range plans {
		if p.TournamentRound == 1 {
			round1 = append(round1, p)
		}
	}
	assert.Len(t, round1, 2)

	total := 0
	for _, p := range round1 {
		total += len(p.ParticipantUserIDs)
	}
	// One round-1 match is a bye (only 1 participant filled), the other is full.
	assert.Equal(t, 3, total)
}

func TestGenerateKnockout_LaterRoundsStartEmpty(t *testing.T) {
	cfg := baseConfig()
	cfg.TournamentFormat = "HEAD_TO_HEAD"
	cfg.TournamentTypeCode = "knockout"
	roster := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	plans, err := Generate(cfg, roster)
	assert.NoError(t, err)

	for _, p := range plans {
		if p.TournamentRound > 1 {
			assert.Empty(t, p.ParticipantUserIDs)
		}
	}
}
