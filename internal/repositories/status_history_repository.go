// internal/repositories/status_history_repository.go
// TournamentStatusHistory data access layer (§4.9)

package repositories

import (
	"context"
	"database/sql"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// StatusHistoryRepository handles tournament status history data access
type StatusHistoryRepository struct {
	db *sql.DB
}

// NewStatusHistoryRepository creates a new status history repository
func NewStatusHistoryRepository(db *sql.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{db: db}
}

// CreateWithTx records a transition row in the same transaction as the
// status change it describes, so the two never disagree.
func (r *StatusHistoryRepository) CreateWithTx(ctx context.Context, tx *sql.Tx, h *models.TournamentStatusHistory) error {
	query := `
		INSERT INTO tournament_status_history (
			id, tournament_id, from_status, to_status, actor_user_id, reason, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := tx.ExecContext(ctx, query,
		h.ID, h.TournamentID, h.FromStatus, h.ToStatus, h.ActorUserID, h.Reason, h.CreatedAt,
	)
	return err
}

// ListByTournament retrieves the full transition history, oldest first.
func (r *StatusHistoryRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentStatusHistory, error) {
	query := `
		SELECT id, tournament_id, from_status, to_status, actor_user_id, reason, created_at
		FROM tournament_status_history
		WHERE tournament_id = ?
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]*models.TournamentStatusHistory, 0)
	for rows.Next() {
		var h models.TournamentStatusHistory
		if err := rows.Scan(
			&h.ID, &h.TournamentID, &h.FromStatus, &h.ToStatus,
			&h.ActorUserID, &h.Reason, &h.CreatedAt,
		); err != nil {
			return nil, err
		}
		history = append(history, &h)
	}
	return history, nil
}
