// internal/services/reward_orchestrator.go
// Reward distribution (§4.10): converts final rankings into a single,
// idempotent RewardDistribution once a tournament completes.

package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/utils"
)

// RewardOrchestrator reads a tournament's reward policy and credits each
// ranked participant exactly once.
type RewardOrchestrator struct {
	repos     *repositories.Container
	ledger    *RewardLedgerService
	analytics *AnalyticsService
	logger    *log.Logger
}

// NewRewardOrchestrator creates a new reward orchestrator
func NewRewardOrchestrator(repos *repositories.Container, ledger *RewardLedgerService, analytics *AnalyticsService, logger *log.Logger) *RewardOrchestrator {
	return &RewardOrchestrator{repos: repos, ledger: ledger, analytics: analytics, logger: logger}
}

// ruleFor resolves one participant's reward rule: rewards[str(rank)],
// falling back to rewards["participant"] (§4.10). A tied rank shares the
// same rank number across all tied participants, so each receives the full
// reward for that rank rather than a split share.
func ruleFor(policy map[string]models.RewardRule, rank int) (models.RewardRule, string, bool) {
	key := strconv.Itoa(rank)
	if rule, ok := policy[key]; ok {
		return rule, key, true
	}
	if rule, ok := policy[models.RewardParticipantFallback]; ok {
		return rule, models.RewardParticipantFallback, true
	}
	return models.RewardRule{}, "", false
}

// Distribute issues the payout run for a tournament's final rankings. It is
// idempotent: a prior distribution for the same tournament short-circuits
// and returns the existing record rather than crediting twice.
func (o *RewardOrchestrator) Distribute(ctx context.Context, tournament *models.Tournament) (*models.RewardDistribution, error) {
	exists, err := o.repos.Reward.ExistsForTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reward distribution: %w", err)
	}
	if exists {
		return o.repos.Reward.GetByTournament(ctx, tournament.ID)
	}

	rankings, err := o.repos.Ranking.ListByTournament(ctx, tournament.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rankings: %w", err)
	}
	if len(rankings) == 0 {
		return nil, NewAppError(KindIncompleteStage, "cannot distribute rewards before rankings exist", map[string]interface{}{
			"tournament_id": tournament.ID,
		})
	}

	policy := tournament.TournamentConfig.RewardPolicy

	dist := &models.RewardDistribution{
		ID:            utils.GenerateUUID(),
		TournamentID:  tournament.ID,
		DistributedAt: time.Now(),
	}

	for _, rk := range rankings {
		rule, label, ok := ruleFor(policy, rk.Rank)
		if !ok {
			continue
		}
		dist.LineItems = append(dist.LineItems, models.RewardLineItem{
			ID:                   utils.GenerateUUID(),
			RewardDistributionID: dist.ID,
			UserID:               rk.UserID,
			Rank:                 rk.Rank,
			RankLabel:            label,
			Credits:              rule.Credits,
			XP:                   rule.XP,
			Badge:                rule.Badge,
		})
	}

	tx, err := o.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := o.repos.Reward.CreateWithTx(ctx, tx, dist); err != nil {
		return nil, fmt.Errorf("failed to persist reward distribution: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit reward distribution: %w", err)
	}

	for _, item := range dist.LineItems {
		if err := o.ledger.CreditUser(ctx, item.UserID, item.Credits, item.XP, item.Badge); err != nil {
			o.logger.Printf("failed to credit user_id=%s tournament_id=%s: %v", item.UserID, tournament.ID, err)
		}
	}

	o.analytics.LogEvent(ctx, tournament.ID, "rewards.distributed", map[string]interface{}{
		"recipient_count": len(dist.LineItems),
	})

	o.logger.Printf("rewards distributed tournament_id=%s recipients=%d", tournament.ID, len(dist.LineItems))
	return dist, nil
}

// GetByTournament retrieves the distribution for a tournament, if any, for
// the read endpoint.
func (o *RewardOrchestrator) GetByTournament(ctx context.Context, tournamentID string) (*models.RewardDistribution, error) {
	return o.repos.Reward.GetByTournament(ctx, tournamentID)
}
