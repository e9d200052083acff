// internal/services/enrollment_service.go
// Enrollment (roster) business logic: enroll, unenroll, batch admin enroll.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/utils"
)

// EnrollmentService handles tournament enrollment business logic
type EnrollmentService struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(repos *repositories.Container, logger *log.Logger) *EnrollmentService {
	return &EnrollmentService{repos: repos, logger: logger}
}

// Enroll creates a new pending enrollment request for a user.
// Re-enrollment after CANCELLED is permitted: the cancelled row is left as it
// is and a new row is inserted. A PENDING or APPROVED existing row is a
// Conflict (§7 duplicate enrollment).
func (s *EnrollmentService) Enroll(ctx context.Context, tournamentID, userID string) (*models.TournamentEnrollment, error) {
	existing, err := s.repos.Enrollment.GetByTournamentAndUser(ctx, tournamentID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
	}
	if existing != nil && existing.RequestStatus != models.EnrollmentCancelled {
		return nil, NewAppError(KindConflict, "user is already enrolled in this tournament", map[string]interface{}{
			"tournament_id": tournamentID, "user_id": userID, "request_status": existing.RequestStatus,
		})
	}

	now := time.Now()
	enrollment := &models.TournamentEnrollment{
		ID:            utils.GenerateUUID(),
		TournamentID:  tournamentID,
		UserID:        userID,
		RequestStatus: models.EnrollmentPending,
		IsActive:      false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.repos.Enrollment.Create(ctx, enrollment); err != nil {
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	return enrollment, nil
}

// Unenroll cancels a user's enrollment, dropping them from the roster.
func (s *EnrollmentService) Unenroll(ctx context.Context, tournamentID, userID string) error {
	enrollment, err := s.repos.Enrollment.GetByTournamentAndUser(ctx, tournamentID, userID)
	if err != nil {
		return fmt.Errorf("failed to look up enrollment: %w", err)
	}
	if enrollment == nil {
		return NewAppError(KindNotFound, "enrollment not found", map[string]interface{}{"tournament_id": tournamentID, "user_id": userID})
	}
	return s.repos.Enrollment.Cancel(ctx, enrollment.ID)
}

// BatchEnrollRequest admits a set of users directly into APPROVED/active
// status, bypassing the pending-approval step (admin operation).
type BatchEnrollRequest struct {
	UserIDs []string `json:"user_ids"`
}

// BatchEnrollResult reports per-user outcomes of a batch admin enroll.
type BatchEnrollResult struct {
	Enrolled []string `json:"enrolled"`
	Skipped  []string `json:"skipped"`
}

// BatchEnroll admits a batch of users as approved/active roster members,
// skipping any user already enrolled and active.
func (s *EnrollmentService) BatchEnroll(ctx context.Context, tournamentID string, req BatchEnrollRequest) (*BatchEnrollResult, error) {
	result := &BatchEnrollResult{}
	now := time.Now()

	for _, userID := range req.UserIDs {
		existing, err := s.repos.Enrollment.GetByTournamentAndUser(ctx, tournamentID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing enrollment: %w", err)
		}

		if existing != nil {
			if existing.IsEligible() {
				result.Skipped = append(result.Skipped, userID)
				continue
			}
			approvedAt := now
			if err := s.repos.Enrollment.UpdateStatus(ctx, existing.ID, models.EnrollmentApproved, true, &approvedAt); err != nil {
				return nil, fmt.Errorf("failed to approve enrollment: %w", err)
			}
			result.Enrolled = append(result.Enrolled, userID)
			continue
		}

		approvedAt := now
		enrollment := &models.TournamentEnrollment{
			ID:            utils.GenerateUUID(),
			TournamentID:  tournamentID,
			UserID:        userID,
			RequestStatus: models.EnrollmentApproved,
			IsActive:      true,
			ApprovedAt:    &approvedAt,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.repos.Enrollment.Create(ctx, enrollment); err != nil {
			return nil, fmt.Errorf("failed to create enrollment: %w", err)
		}
		result.Enrolled = append(result.Enrolled, userID)
	}

	s.logger.Printf("batch enroll tournament_id=%s enrolled=%d skipped=%d", tournamentID, len(result.Enrolled), len(result.Skipped))
	return result, nil
}

// ListRoster returns the full enrollment list for a tournament.
func (s *EnrollmentService) ListRoster(ctx context.Context, tournamentID string) ([]*models.TournamentEnrollment, error) {
	return s.repos.Enrollment.ListByTournament(ctx, tournamentID)
}

// ActiveApprovedUserIDs returns the eligible roster (§8.1) used by schedule
// generation and result validation.
func (s *EnrollmentService) ActiveApprovedUserIDs(ctx context.Context, tournamentID string) ([]string, error) {
	return s.repos.Enrollment.ListActiveApprovedUserIDs(ctx, tournamentID)
}
