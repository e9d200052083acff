// internal/repositories/reward_repository.go
// RewardDistribution data access layer for the credit/XP ledger (§4.10).

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// RewardRepository handles reward distribution data access
type RewardRepository struct {
	db *sql.DB
}

// NewRewardRepository creates a new reward repository
func NewRewardRepository(db *sql.DB) *RewardRepository {
	return &RewardRepository{db: db}
}

// ExistsForTournament checks the unique-per-tournament constraint before
// the orchestrator attempts a distribution (§4.10 exactly-once).
func (r *RewardRepository) ExistsForTournament(ctx context.Context, tournamentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM reward_distributions WHERE tournament_id = ?)`,
		tournamentID,
	).Scan(&exists)
	return exists, err
}

// CreateWithTx inserts the distribution header and its line items
// atomically. The storage layer's unique constraint on tournament_id is the
// backstop against concurrent double-distribution.
func (r *RewardRepository) CreateWithTx(ctx context.Context, tx *sql.Tx, dist *models.RewardDistribution) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO reward_distributions (id, tournament_id, distributed_at) VALUES (?, ?, ?)`,
		dist.ID, dist.TournamentID, dist.DistributedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reward_distribution: %w", err)
	}

	query := `
		INSERT INTO reward_line_items (
			id, reward_distribution_id, user_id, rank, rank_label, credits, xp, badge
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, item := range dist.LineItems {
		_, err := tx.ExecContext(ctx, query,
			item.ID, dist.ID, item.UserID, item.Rank, item.RankLabel,
			item.Credits, item.XP, item.Badge,
		)
		if err != nil {
			return fmt.Errorf("failed to insert reward_line_item: %w", err)
		}
	}

	return nil
}

// GetByTournament retrieves the distribution and its line items, for the
// rewards read endpoint and for idempotent re-trigger responses.
func (r *RewardRepository) GetByTournament(ctx context.Context, tournamentID string) (*models.RewardDistribution, error) {
	var dist models.RewardDistribution
	err := r.db.QueryRowContext(ctx,
		`SELECT id, tournament_id, distributed_at FROM reward_distributions WHERE tournament_id = ?`,
		tournamentID,
	).Scan(&dist.ID, &dist.TournamentID, &dist.DistributedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, reward_distribution_id, user_id, rank, rank_label, credits, xp, badge
		 FROM reward_line_items WHERE reward_distribution_id = ? ORDER BY rank, user_id`,
		dist.ID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.RewardLineItem
		if err := rows.Scan(
			&item.ID, &item.RewardDistributionID, &item.UserID, &item.Rank,
			&item.RankLabel, &item.Credits, &item.XP, &item.Badge,
		); err != nil {
			return nil, err
		}
		dist.LineItems = append(dist.LineItems, item)
	}

	return &dist, nil
}
