package services

import (
	"testing"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRuleFor_ExactRankMatch(t *testing.T) {
	policy := map[string]models.RewardRule{
		"1":                             {Credits: 100, XP: 50, Badge: "gold"},
		models.RewardParticipantFallback: {Credits: 5, XP: 1},
	}

	rule, label, ok := ruleFor(policy, 1)
	assert.True(t, ok)
	assert.Equal(t, "1", label)
	assert.Equal(t, 100.0, rule.Credits)
	assert.Equal(t, "gold", rule.Badge)
}

func TestRuleFor_FallsBackToParticipantRule(t *testing.T) {
	policy := map[string]models.RewardRule{
		"1":                             {Credits: 100},
		models.RewardParticipantFallback: {Credits: 5, XP: 1},
	}

	rule, label, ok := ruleFor(policy, 7)
	assert.True(t, ok)
	assert.Equal(t, models.RewardParticipantFallback, label)
	assert.Equal(t, 5.0, rule.Credits)
}

func TestRuleFor_NoRuleAndNoFallbackIsSkipped(t *testing.T) {
	policy := map[string]models.RewardRule{
		"1": {Credits: 100},
	}

	_, _, ok := ruleFor(policy, 2)
	assert.False(t, ok)
}

func TestRuleFor_TiedRanksEachGetFullReward(t *testing.T) {
	policy := map[string]models.RewardRule{
		"2": {Credits: 50},
	}

	ruleA, _, okA := ruleFor(policy, 2)
	ruleB, _, okB := ruleFor(policy, 2)
	assert.True(t, okA)
	assert.True(t, okB)
	assert.Equal(t, 50.0, ruleA.Credits)
	assert.Equal(t, 50.0, ruleB.Credits)
}
