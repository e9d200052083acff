// internal/repositories/campus_schedule_repository.go
// CampusScheduleConfig data access layer.

package repositories

import (
	"context"
	"database/sql"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// CampusScheduleRepository handles campus schedule config data access
type CampusScheduleRepository struct {
	db *sql.DB
}

// NewCampusScheduleRepository creates a new campus schedule repository
func NewCampusScheduleRepository(db *sql.DB) *CampusScheduleRepository {
	return &CampusScheduleRepository{db: db}
}

const campusScheduleColumns = `
	id, tournament_id, campus_id, match_duration_minutes, break_duration_minutes,
	parallel_fields, venue_label, is_active, created_at, updated_at
`

func scanCampusSchedule(row interface{ Scan(...interface{}) error }) (*models.CampusScheduleConfig, error) {
	var c models.CampusScheduleConfig
	err := row.Scan(
		&c.ID, &c.TournamentID, &c.CampusID, &c.MatchDurationMinutes,
		&c.BreakDurationMinutes, &c.ParallelFields, &c.VenueLabel, &c.IsActive,
		&c.CreatedAt, &c.UpdatedAt,
	)
	return &c, err
}

// Create inserts a new campus schedule override
func (r *CampusScheduleRepository) Create(ctx context.Context, c *models.CampusScheduleConfig) error {
	query := `
		INSERT INTO campus_schedule_configs (` + campusScheduleColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.TournamentID, c.CampusID, c.MatchDurationMinutes,
		c.BreakDurationMinutes, c.ParallelFields, c.VenueLabel, c.IsActive,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// GetByTournamentAndCampus retrieves the active override, if any, for the
// schedule resolution order (§3.1).
func (r *CampusScheduleRepository) GetByTournamentAndCampus(ctx context.Context, tournamentID, campusID string) (*models.CampusScheduleConfig, error) {
	query := `SELECT ` + campusScheduleColumns + ` FROM campus_schedule_configs WHERE tournament_id = ? AND campus_id = ?`
	c, err := scanCampusSchedule(r.db.QueryRowContext(ctx, query, tournamentID, campusID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// ListByTournament retrieves all campus overrides for a tournament
func (r *CampusScheduleRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.CampusScheduleConfig, error) {
	query := `SELECT ` + campusScheduleColumns + ` FROM campus_schedule_configs WHERE tournament_id = ? AND is_active = TRUE ORDER BY campus_id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	configs := make([]*models.CampusScheduleConfig, 0)
	for rows.Next() {
		c, err := scanCampusSchedule(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, c)
	}
	return configs, nil
}

// Update updates a campus schedule override's fields
func (r *CampusScheduleRepository) Update(ctx context.Context, c *models.CampusScheduleConfig) error {
	query := `
		UPDATE campus_schedule_configs SET
			match_duration_minutes = ?, break_duration_minutes = ?,
			parallel_fields = ?, venue_label = ?, updated_at = ?
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query,
		c.MatchDurationMinutes, c.BreakDurationMinutes, c.ParallelFields,
		c.VenueLabel, c.UpdatedAt, c.ID,
	)
	return err
}

// Delete soft-deletes a campus schedule override
func (r *CampusScheduleRepository) Delete(ctx context.Context, id string) error {
	query := `UPDATE campus_schedule_configs SET is_active = FALSE WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
