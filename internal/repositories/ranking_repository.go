// internal/repositories/ranking_repository.go
// TournamentRanking data access layer

package repositories

import (
	"context"
	"database/sql"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// RankingRepository handles tournament ranking data access
type RankingRepository struct {
	db *sql.DB
}

// NewRankingRepository creates a new ranking repository
func NewRankingRepository(db *sql.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

// ReplaceAllWithTx deletes any existing ranking rows for the tournament and
// inserts the freshly computed set, within the caller's transaction. This
// makes ranking recomputation idempotent (§3.5: derived, may be recomputed
// but never mutated outside the finalizer path).
func (r *RankingRepository) ReplaceAllWithTx(ctx context.Context, tx *sql.Tx, tournamentID string, rankings []*models.TournamentRanking) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM tournament_rankings WHERE tournament_id = ?`, tournamentID); err != nil {
		return err
	}

	query := `
		INSERT INTO tournament_rankings (
			id, tournament_id, user_id, rank, final_value, measurement_unit,
			is_tied, ranking_basis, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, rk := range rankings {
		_, err := tx.ExecContext(ctx, query,
			rk.ID, rk.TournamentID, rk.UserID, rk.Rank, rk.FinalValue,
			rk.MeasurementUnit, rk.IsTied, rk.RankingBasis, rk.CreatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// ExistsForTournament reports whether any ranking rows already exist, used
// by the session finalizer's dual-path idempotency guard (§4.8).
func (r *RankingRepository) ExistsForTournament(ctx context.Context, tournamentID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM tournament_rankings WHERE tournament_id = ?)`,
		tournamentID,
	).Scan(&exists)
	return exists, err
}

// ListByTournament retrieves the persisted rankings for one tournament,
// ordered by rank, for the GET /tournaments/{id}/rankings endpoint.
func (r *RankingRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentRanking, error) {
	query := `
		SELECT id, tournament_id, user_id, rank, final_value, measurement_unit,
			is_tied, ranking_basis, created_at
		FROM tournament_rankings
		WHERE tournament_id = ?
		ORDER BY rank, user_id
	`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rankings := make([]*models.TournamentRanking, 0)
	for rows.Next() {
		var rk models.TournamentRanking
		if err := rows.Scan(
			&rk.ID, &rk.TournamentID, &rk.UserID, &rk.Rank, &rk.FinalValue,
			&rk.MeasurementUnit, &rk.IsTied, &rk.RankingBasis, &rk.CreatedAt,
		); err != nil {
			return nil, err
		}
		rankings = append(rankings, &rk)
	}
	return rankings, nil
}
