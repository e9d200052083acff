// internal/repositories/tournament_repository.go
// Tournament data access layer

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// TournamentRepository handles tournament data access
type TournamentRepository struct {
	db *sql.DB
}

// NewTournamentRepository creates a new tournament repository
func NewTournamentRepository(db *sql.DB) *TournamentRepository {
	return &TournamentRepository{db: db}
}

const tournamentColumns = `
	id, name, short_code, specialization_family, age_group, start_date, end_date,
	timezone, tournament_format, tournament_type_code, scoring_type,
	ranking_direction, measurement_unit, match_duration_minutes,
	break_duration_minutes, parallel_fields, tournament_status,
	master_instructor_id, enrollment_snapshot, tournament_config,
	created_at, updated_at
`

func scanTournament(row interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	var snapshot []byte
	var config []byte

	err := row.Scan(
		&t.ID, &t.Name, &t.ShortCode, &t.SpecializationFamily, &t.AgeGroup,
		&t.StartDate, &t.EndDate, &t.Timezone, &t.TournamentFormat,
		&t.TournamentTypeCode, &t.ScoringType, &t.RankingDirection,
		&t.MeasurementUnit, &t.MatchDurationMinutes, &t.BreakDurationMinutes,
		&t.ParallelFields, &t.TournamentStatus, &t.MasterInstructorID,
		&snapshot, &config, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(snapshot) > 0 {
		t.EnrollmentSnapshot = &models.EnrollmentSnapshot{}
		if err := t.EnrollmentSnapshot.Scan(snapshot); err != nil {
			return nil, fmt.Errorf("failed to unmarshal enrollment_snapshot: %w", err)
		}
	}
	if len(config) > 0 {
		if err := t.TournamentConfig.Scan(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal tournament_config: %w", err)
		}
	}

	return &t, nil
}

// Create inserts a new tournament
func (r *TournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (` + tournamentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	configJSON, err := tournament.TournamentConfig.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal tournament_config: %w", err)
	}

	var snapshotValue interface{}
	if tournament.EnrollmentSnapshot != nil {
		snapshotValue, err = tournament.EnrollmentSnapshot.Value()
		if err != nil {
			return fmt.Errorf("failed to marshal enrollment_snapshot: %w", err)
		}
	}

	_, err = r.db.ExecContext(ctx, query,
		tournament.ID, tournament.Name, tournament.ShortCode,
		tournament.SpecializationFamily, tournament.AgeGroup, tournament.StartDate,
		tournament.EndDate, tournament.Timezone, tournament.TournamentFormat,
		tournament.TournamentTypeCode, tournament.ScoringType,
		tournament.RankingDirection, tournament.MeasurementUnit,
		tournament.MatchDurationMinutes, tournament.BreakDurationMinutes,
		tournament.ParallelFields, tournament.TournamentStatus,
		tournament.MasterInstructorID, snapshotValue, configJSON,
		tournament.CreatedAt, tournament.UpdatedAt,
	)

	return err
}

// GetByID retrieves a tournament by ID
func (r *TournamentRepository) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ?`

	t, err := scanTournament(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tournament not found")
	}
	return t, err
}

// GetByIDForUpdate retrieves a tournament with a row-level lock, for use
// inside a finalizer transaction (§4.8 idempotency).
func (r *TournamentRepository) GetByIDForUpdate(ctx context.Context, tx *sql.Tx, id string) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = ? FOR UPDATE`

	t, err := scanTournament(tx.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("tournament not found")
	}
	return t, err
}

// Update updates a tournament's mutable fields (partial update semantics
// are enforced by the service layer, which only sets changed columns).
func (r *TournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = ?, short_code = ?, specialization_family = ?, age_group = ?,
			start_date = ?, end_date = ?, timezone = ?, tournament_format = ?,
			tournament_type_code = ?, scoring_type = ?, ranking_direction = ?,
			measurement_unit = ?, match_duration_minutes = ?,
			break_duration_minutes = ?, parallel_fields = ?, tournament_status = ?,
			master_instructor_id = ?, tournament_config = ?, updated_at = ?
		WHERE id = ?
	`

	configJSON, err := tournament.TournamentConfig.Value()
	if err != nil {
		return fmt.Errorf("failed to marshal tournament_config: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		tournament.Name, tournament.ShortCode, tournament.SpecializationFamily,
		tournament.AgeGroup, tournament.StartDate, tournament.EndDate,
		tournament.Timezone, tournament.TournamentFormat,
		tournament.TournamentTypeCode, tournament.ScoringType,
		tournament.RankingDirection, tournament.MeasurementUnit,
		tournament.MatchDurationMinutes, tournament.BreakDurationMinutes,
		tournament.ParallelFields, tournament.TournamentStatus,
		tournament.MasterInstructorID, configJSON, tournament.UpdatedAt,
		tournament.ID,
	)

	return err
}

// UpdateStatusWithTx transitions tournament_status and records the
// enrollment_snapshot write (if any) within the caller's transaction.
func (r *TournamentRepository) UpdateStatusWithTx(ctx context.Context, tx *sql.Tx, id string, status models.TournamentStatus, snapshot *models.EnrollmentSnapshot) error {
	if snapshot != nil {
		snapshotValue, err := snapshot.Value()
		if err != nil {
			return fmt.Errorf("failed to marshal enrollment_snapshot: %w", err)
		}
		query := `UPDATE tournaments SET tournament_status = ?, enrollment_snapshot = ?, updated_at = NOW() WHERE id = ?`
		_, err = tx.ExecContext(ctx, query, status, snapshotValue, id)
		return err
	}

	query := `UPDATE tournaments SET tournament_status = ?, updated_at = NOW() WHERE id = ?`
	_, err := tx.ExecContext(ctx, query, status, id)
	return err
}

// Delete hard-deletes a tournament; cascading deletion of enrollments,
// sessions, rankings and reward distributions is enforced by foreign keys
// (§3.5).
func (r *TournamentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tournaments WHERE id = ?`, id)
	return err
}

// ListFilter defines filtering options for tournament queries
type ListFilter struct {
	Page                 int
	Limit                int
	Status               string
	SpecializationFamily string
	AgeGroup             string
	Search               string
}

// List retrieves tournaments with pagination and filters
func (r *TournamentRepository) List(ctx context.Context, filter ListFilter) ([]*models.Tournament, int, error) {
	var conditions []string
	var args []interface{}

	baseQuery := "FROM tournaments WHERE 1=1"

	if filter.Status != "" {
		conditions = append(conditions, "tournament_status = ?")
		args = append(args, filter.Status)
	}
	if filter.SpecializationFamily != "" {
		conditions = append(conditions, "specialization_family = ?")
		args = append(args, filter.SpecializationFamily)
	}
	if filter.AgeGroup != "" {
		conditions = append(conditions, "age_group = ?")
		args = append(args, filter.AgeGroup)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(name LIKE ? OR short_code LIKE ?)")
		searchPattern := "%" + filter.Search + "%"
		args = append(args, searchPattern, searchPattern)
	}

	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	countQuery := "SELECT COUNT(*) " + baseQuery
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	selectQuery := `SELECT ` + tournamentColumns + ` ` + baseQuery + ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	tournaments := make([]*models.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, 0, err
		}
		tournaments = append(tournaments, t)
	}

	return tournaments, total, nil
}
