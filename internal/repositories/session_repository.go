// internal/repositories/session_repository.go
// Session (match slot) data access layer

package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// SessionRepository handles session data access
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

const sessionColumns = `
	id, tournament_id, title, date_start, date_end, campus_id,
	is_tournament_game, tournament_phase, tournament_round, group_identifier,
	match_format, scoring_type, participant_user_ids, rounds_data,
	game_results, created_at, updated_at
`

func scanSession(row interface{ Scan(...interface{}) error }) (*models.Session, error) {
	var s models.Session
	var participantsJSON []byte
	var roundsJSON []byte
	var resultsJSON []byte

	err := row.Scan(
		&s.ID, &s.TournamentID, &s.Title, &s.DateStart, &s.DateEnd, &s.CampusID,
		&s.IsTournamentGame, &s.TournamentPhase, &s.TournamentRound,
		&s.GroupIdentifier, &s.MatchFormat, &s.ScoringType, &participantsJSON,
		&roundsJSON, &resultsJSON, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(participantsJSON) > 0 {
		if err := s.ParticipantUserIDs.Scan(participantsJSON); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant_user_ids: %w", err)
		}
	}
	if len(roundsJSON) > 0 {
		s.RoundsData = &models.RoundsData{}
		if err := s.RoundsData.Scan(roundsJSON); err != nil {
			return nil, fmt.Errorf("failed to unmarshal rounds_data: %w", err)
		}
	}
	if len(resultsJSON) > 0 {
		s.GameResults = &models.GameResults{}
		if err := s.GameResults.Scan(resultsJSON); err != nil {
			return nil, fmt.Errorf("failed to unmarshal game_results: %w", err)
		}
	}

	return &s, nil
}

// CreateManyWithTx bulk-inserts the sessions produced by the schedule
// generator, within the caller's transaction (§4.6 is all-or-nothing).
func (r *SessionRepository) CreateManyWithTx(ctx context.Context, tx *sql.Tx, sessions []*models.Session) error {
	query := `
		INSERT INTO sessions (` + sessionColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, s := range sessions {
		participantsJSON, err := s.ParticipantUserIDs.Value()
		if err != nil {
			return fmt.Errorf("failed to marshal participant_user_ids: %w", err)
		}

		var roundsValue interface{}
		if s.RoundsData != nil {
			roundsValue, err = s.RoundsData.Value()
			if err != nil {
				return fmt.Errorf("failed to marshal rounds_data: %w", err)
			}
		}

		_, err = tx.ExecContext(ctx, query,
			s.ID, s.TournamentID, s.Title, s.DateStart, s.DateEnd, s.CampusID,
			s.IsTournamentGame, s.TournamentPhase, s.TournamentRound,
			s.GroupIdentifier, s.MatchFormat, s.ScoringType, participantsJSON,
			roundsValue, nil, s.CreatedAt, s.UpdatedAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves a session by ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ?`
	s, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	return s, err
}

// GetByIDForUpdate retrieves a session row-locked within a transaction, for
// the finalize-once guard (§4.8).
func (r *SessionRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = ? FOR UPDATE`
	s, err := scanSession(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found")
	}
	return s, err
}

// ListByTournament retrieves all sessions for a tournament, ordered for
// deterministic display and for the advancement calculator's round-1 slot
// ordering (tournament_round, id).
func (r *SessionRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE tournament_id = ? ORDER BY tournament_round, id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ListByTournamentAndPhase filters to one tournament_phase, e.g. all
// GROUP_STAGE sessions for the standings calculator.
func (r *SessionRepository) ListByTournamentAndPhase(ctx context.Context, tournamentID string, phase models.TournamentPhase) ([]*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM sessions
		WHERE tournament_id = ? AND tournament_phase = ?
		ORDER BY tournament_round, id
	`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, phase)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// ListKnockoutRoundOne returns KNOCKOUT-phase sessions at tournament_round
// 1, ordered (tournament_round, id) — the ordering the advancement
// calculator assumes its roundOneSlots argument already carries.
func (r *SessionRepository) ListKnockoutRoundOne(ctx context.Context, tournamentID string) ([]*models.Session, error) {
	query := `
		SELECT ` + sessionColumns + ` FROM sessions
		WHERE tournament_id = ? AND tournament_phase = ? AND tournament_round = 1
		ORDER BY tournament_round, id
	`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, models.PhaseKnockout)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]*models.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// DeleteByTournament removes all sessions for a tournament, used by the
// explicit `DELETE /sessions` re-generation path (§4.6).
func (r *SessionRepository) DeleteByTournament(ctx context.Context, tournamentID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE tournament_id = ?`, tournamentID)
	return err
}

// UpdateRoundsDataWithTx writes an updated rounds_data blob for an
// in-progress INDIVIDUAL_RANKING session.
func (r *SessionRepository) UpdateRoundsDataWithTx(ctx context.Context, tx *sql.Tx, id string, data *models.RoundsData) error {
	value, err := data.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal rounds_data: %w", err)
	}
	_, err = tx.ExecContext(ctx, `UPDATE sessions SET rounds_data = ?, updated_at = NOW() WHERE id = ?`, value, id)
	return err
}

// FinalizeWithTx writes game_results exactly once. Callers must have
// already verified game_results IS NULL via GetByIDForUpdate (§4.8).
func (r *SessionRepository) FinalizeWithTx(ctx context.Context, tx *sql.Tx, id string, results *models.GameResults) error {
	value, err := results.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal game_results: %w", err)
	}
	_, err = tx.ExecContext(ctx, `UPDATE sessions SET game_results = ?, updated_at = NOW() WHERE id = ?`, value, id)
	return err
}

// UpdateParticipantsWithTx overwrites a round-1 knockout session's
// participant_user_ids during advancement seeding (§4.5); deeper rounds are
// never touched by this path.
func (r *SessionRepository) UpdateParticipantsWithTx(ctx context.Context, tx *sql.Tx, id string, participants models.StringSlice) error {
	value, err := participants.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal participant_user_ids: %w", err)
	}
	_, err = tx.ExecContext(ctx, `UPDATE sessions SET participant_user_ids = ?, updated_at = NOW() WHERE id = ?`, value, id)
	return err
}

// CountUnfinalizedByPhase counts sessions in a phase still missing
// game_results, used by the group-stage/tournament finalizers' "is this
// stage complete" check (§4.8 IncompleteStage).
func (r *SessionRepository) CountUnfinalizedByPhase(ctx context.Context, tournamentID string, phase models.TournamentPhase) (int, error) {
	query := `
		SELECT COUNT(*) FROM sessions
		WHERE tournament_id = ? AND tournament_phase = ? AND game_results IS NULL
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, tournamentID, phase).Scan(&count)
	return count, err
}
