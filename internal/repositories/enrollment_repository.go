// internal/repositories/enrollment_repository.go
// TournamentEnrollment data access layer

package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/academy-platform/tournament-engine/internal/models"
)

// EnrollmentRepository handles tournament enrollment data access
type EnrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = `
	id, tournament_id, user_id, request_status, is_active, payment_verified,
	approved_at, payment_reference_code, created_at, updated_at
`

func scanEnrollment(row interface{ Scan(...interface{}) error }) (*models.TournamentEnrollment, error) {
	var e models.TournamentEnrollment
	err := row.Scan(
		&e.ID, &e.TournamentID, &e.UserID, &e.RequestStatus, &e.IsActive,
		&e.PaymentVerified, &e.ApprovedAt, &e.PaymentReferenceCode,
		&e.CreatedAt, &e.UpdatedAt,
	)
	return &e, err
}

// Create inserts a new enrollment request
func (r *EnrollmentRepository) Create(ctx context.Context, e *models.TournamentEnrollment) error {
	query := `
		INSERT INTO tournament_enrollments (` + enrollmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TournamentID, e.UserID, e.RequestStatus, e.IsActive,
		e.PaymentVerified, e.ApprovedAt, e.PaymentReferenceCode,
		e.CreatedAt, e.UpdatedAt,
	)
	return err
}

// GetByID retrieves a single enrollment
func (r *EnrollmentRepository) GetByID(ctx context.Context, id string) (*models.TournamentEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM tournament_enrollments WHERE id = ?`
	e, err := scanEnrollment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("enrollment not found")
	}
	return e, err
}

// GetByTournamentAndUser finds an existing enrollment row, used to detect
// duplicate enroll requests and re-enrollment after cancellation.
func (r *EnrollmentRepository) GetByTournamentAndUser(ctx context.Context, tournamentID, userID string) (*models.TournamentEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM tournament_enrollments WHERE tournament_id = ? AND user_id = ?`
	e, err := scanEnrollment(r.db.QueryRowContext(ctx, query, tournamentID, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// ListByTournament retrieves all enrollments for a tournament
func (r *EnrollmentRepository) ListByTournament(ctx context.Context, tournamentID string) ([]*models.TournamentEnrollment, error) {
	query := `SELECT ` + enrollmentColumns + ` FROM tournament_enrollments WHERE tournament_id = ? ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	enrollments := make([]*models.TournamentEnrollment, 0)
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, nil
}

// ListActiveApprovedUserIDs returns the user ids eligible for the roster
// (§8.1): is_active = TRUE and request_status = APPROVED.
func (r *EnrollmentRepository) ListActiveApprovedUserIDs(ctx context.Context, tournamentID string) ([]string, error) {
	query := `
		SELECT user_id FROM tournament_enrollments
		WHERE tournament_id = ? AND is_active = TRUE AND request_status = ?
		ORDER BY created_at
	`

	rows, err := r.db.QueryContext(ctx, query, tournamentID, models.EnrollmentApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}
	return userIDs, nil
}

// UpdateStatus updates request_status, is_active and approved_at together.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id string, status models.EnrollmentRequest, isActive bool, approvedAt *time.Time) error {
	query := `
		UPDATE tournament_enrollments
		SET request_status = ?, is_active = ?, approved_at = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, status, isActive, approvedAt, id)
	return err
}

// UpdatePaymentVerified flips the payment_verified flag once a payment
// reference is confirmed out of band.
func (r *EnrollmentRepository) UpdatePaymentVerified(ctx context.Context, id string, verified bool, referenceCode *string) error {
	query := `
		UPDATE tournament_enrollments
		SET payment_verified = ?, payment_reference_code = ?, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, verified, referenceCode, id)
	return err
}

// Cancel marks an enrollment CANCELLED and inactive (unenroll).
func (r *EnrollmentRepository) Cancel(ctx context.Context, id string) error {
	query := `
		UPDATE tournament_enrollments
		SET request_status = ?, is_active = FALSE, updated_at = NOW()
		WHERE id = ?
	`
	_, err := r.db.ExecContext(ctx, query, models.EnrollmentCancelled, id)
	return err
}

// CountActiveApproved counts the current eligible roster size, used for
// capacity checks before approving a new enrollment.
func (r *EnrollmentRepository) CountActiveApproved(ctx context.Context, tournamentID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM tournament_enrollments
		WHERE tournament_id = ? AND is_active = TRUE AND request_status = ?
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, tournamentID, models.EnrollmentApproved).Scan(&count)
	return count, err
}
