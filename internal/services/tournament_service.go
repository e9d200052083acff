// internal/services/tournament_service.go
// Tournament CRUD and the lifecycle state machine (§4.9).

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

// TournamentService handles tournament CRUD and lifecycle transitions
type TournamentService struct {
	repos  *repositories.Container
	cache  *CacheService
	logger *log.Logger
}

// NewTournamentService creates a new tournament service
func NewTournamentService(repos *repositories.Container, cache *CacheService, logger *log.Logger) *TournamentService {
	return &TournamentService{repos: repos, cache: cache, logger: logger}
}

// CreateTournamentRequest is the strict-schema body for tournament creation.
type CreateTournamentRequest struct {
	Name                 string                   `json:"name"`
	ShortCode            string                   `json:"short_code"`
	SpecializationFamily string                   `json:"specialization_family"`
	AgeGroup             string                   `json:"age_group"`
	StartDate            time.Time                `json:"start_date"`
	EndDate              time.Time                `json:"end_date"`
	Timezone             string                   `json:"timezone"`
	TournamentFormat     models.TournamentFormat  `json:"tournament_format"`
	TournamentTypeCode   *string                  `json:"tournament_type_code,omitempty"`
	ScoringType          *string                  `json:"scoring_type,omitempty"`
	RankingDirection     string                   `json:"ranking_direction,omitempty"`
	MeasurementUnit      string                   `json:"measurement_unit"`
	MatchDurationMinutes int                      `json:"match_duration_minutes"`
	BreakDurationMinutes int                      `json:"break_duration_minutes"`
	ParallelFields       int                      `json:"parallel_fields"`
	MasterInstructorID   *string                  `json:"master_instructor_id,omitempty"`
	TournamentConfig     *models.TournamentConfig `json:"tournament_config,omitempty"`
}

// Create validates and persists a new DRAFT tournament (§3.1 invariants).
func (s *TournamentService) Create(ctx context.Context, req CreateTournamentRequest) (*models.Tournament, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, NewAppError(KindInvalidSchema, "end_date must not precede start_date", map[string]interface{}{
			"start_date": req.StartDate, "end_date": req.EndDate,
		})
	}

	if req.TournamentFormat != models.FormatIndividualRanking && req.TournamentFormat != models.FormatHeadToHead {
		return nil, NewAppError(KindInvalidSchema, "unknown tournament_format", map[string]interface{}{"tournament_format": req.TournamentFormat})
	}

	var scoringType *string
	var typeCode *string
	if req.TournamentFormat == models.FormatIndividualRanking {
		scoringType = req.ScoringType
		if scoringType == nil || *scoringType == "" {
			return nil, NewAppError(KindInvalidSchema, "scoring_type is required for INDIVIDUAL_RANKING tournaments", nil)
		}
	} else {
		typeCode = req.TournamentTypeCode
		if typeCode == nil || *typeCode == "" {
			return nil, NewAppError(KindInvalidSchema, "tournament_type_code is required for HEAD_TO_HEAD tournaments", nil)
		}
		if *typeCode == models.TypeSwiss {
			return nil, NewAppError(KindUnknownScoringType, "swiss tournaments are reserved and not implemented", map[string]interface{}{"tournament_type_code": *typeCode})
		}
	}

	direction := req.RankingDirection
	if direction == "" {
		seed := ""
		if scoringType != nil {
			seed = *scoringType
		}
		direction = models.DefaultRankingDirection(seed)
	}

	config := models.TournamentConfig{}
	if req.TournamentConfig != nil {
		config = *req.TournamentConfig
	}

	now := time.Now()
	tournament := &models.Tournament{
		ID:                   utils.GenerateUUID(),
		Name:                 req.Name,
		ShortCode:            req.ShortCode,
		SpecializationFamily: req.SpecializationFamily,
		AgeGroup:             req.AgeGroup,
		StartDate:            req.StartDate,
		EndDate:              req.EndDate,
		Timezone:             req.Timezone,
		TournamentFormat:     req.TournamentFormat,
		TournamentTypeCode:   typeCode,
		ScoringType:          scoringType,
		RankingDirection:     direction,
		MeasurementUnit:      req.MeasurementUnit,
		MatchDurationMinutes: req.MatchDurationMinutes,
		BreakDurationMinutes: req.BreakDurationMinutes,
		ParallelFields:       req.ParallelFields,
		TournamentStatus:     models.StatusDraft,
		MasterInstructorID:   req.MasterInstructorID,
		TournamentConfig:     config,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repos.Tournament.Create(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to create tournament: %w", err)
	}

	s.logger.Printf("tournament created id=%s name=%q format=%s", tournament.ID, tournament.Name, tournament.TournamentFormat)
	return tournament, nil
}

// GetByID retrieves a tournament by id
func (s *TournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return s.repos.Tournament.GetByID(ctx, id)
}

// UpdateTournamentRequest carries only the fields a PATCH may change.
type UpdateTournamentRequest struct {
	Name                 *string `json:"name,omitempty"`
	MasterInstructorID   *string `json:"master_instructor_id,omitempty"`
	MatchDurationMinutes *int    `json:"match_duration_minutes,omitempty"`
	BreakDurationMinutes *int    `json:"break_duration_minutes,omitempty"`
	ParallelFields       *int    `json:"parallel_fields,omitempty"`
}

// Update applies a partial update to a tournament's mutable fields.
func (s *TournamentService) Update(ctx context.Context, id string, req UpdateTournamentRequest) (*models.Tournament, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tournament.Name = *req.Name
	}
	if req.MasterInstructorID != nil {
		tournament.MasterInstructorID = req.MasterInstructorID
	}
	if req.MatchDurationMinutes != nil {
		tournament.MatchDurationMinutes = *req.MatchDurationMinutes
	}
	if req.BreakDurationMinutes != nil {
		tournament.BreakDurationMinutes = *req.BreakDurationMinutes
	}
	if req.ParallelFields != nil {
		tournament.ParallelFields = *req.ParallelFields
	}
	tournament.UpdatedAt = time.Now()

	if err := s.repos.Tournament.Update(ctx, tournament); err != nil {
		return nil, fmt.Errorf("failed to update tournament: %w", err)
	}
	return tournament, nil
}

// Delete hard-deletes a tournament; cascading FKs remove enrollments,
// sessions, rankings, reward distributions and status history (§3.5).
func (s *TournamentService) Delete(ctx context.Context, id string) error {
	return s.repos.Tournament.Delete(ctx, id)
}

// List retrieves tournaments with pagination and filters
func (s *TournamentService) List(ctx context.Context, filter repositories.ListFilter) ([]*models.Tournament, int, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}
	return s.repos.Tournament.List(ctx, filter)
}

// permittedTransitions encodes §4.9's lifecycle graph. TournamentFinalizer
// performs the IN_PROGRESS -> COMPLETED edge directly against the
// repository; it is deliberately absent here so ChangeStatus can never be
// used to skip the finalization procedure.
var permittedTransitions = map[models.TournamentStatus][]models.TournamentStatus{
	models.StatusDraft: {
		models.StatusSeekingInstructor,
		models.StatusReadyForEnrollment,
		models.StatusCancelled,
	},
	models.StatusSeekingInstructor: {
		models.StatusReadyForEnrollment,
		models.StatusCancelled,
	},
	models.StatusReadyForEnrollment: {
		models.StatusOngoing,
		models.StatusCancelled,
	},
	models.StatusOngoing: {
		models.StatusInProgress,
		models.StatusCancelled,
	},
	models.StatusInProgress: {
		models.StatusCancelled,
	},
}

func isPermittedTransition(from, to models.TournamentStatus) bool {
	for _, candidate := range permittedTransitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// ChangeStatus drives the lifecycle state machine (§4.9), writing a
// tournament_status_history row atomically with the status update.
func (s *TournamentService) ChangeStatus(ctx context.Context, tournamentID string, to models.TournamentStatus, actorUserID string, reason *string) (*models.Tournament, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	from := tournament.TournamentStatus
	if !isPermittedTransition(from, to) {
		return nil, NewAppError(KindInvalidTransition, "transition not permitted", map[string]interface{}{
			"from": from, "to": to,
		})
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repos.Tournament.UpdateStatusWithTx(ctx, tx, tournamentID, to, nil); err != nil {
		return nil, fmt.Errorf("failed to update tournament status: %w", err)
	}

	history := &models.TournamentStatusHistory{
		ID:           utils.GenerateUUID(),
		TournamentID: tournamentID,
		FromStatus:   from,
		ToStatus:     to,
		Reason:       reason,
		CreatedAt:    time.Now(),
	}
	if actorUserID != "" {
		history.ActorUserID = &actorUserID
	}
	if err := s.repos.StatusHistory.CreateWithTx(ctx, tx, history); err != nil {
		return nil, fmt.Errorf("failed to record status history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit status transition: %w", err)
	}

	tournament.TournamentStatus = to
	s.logger.Printf("tournament status transition tournament_id=%s from=%s to=%s", tournamentID, from, to)
	return tournament, nil
}

// StatusHistory retrieves the full transition audit trail for a tournament.
func (s *TournamentService) StatusHistory(ctx context.Context, tournamentID string) ([]*models.TournamentStatusHistory, error) {
	return s.repos.StatusHistory.ListByTournament(ctx, tournamentID)
}

// Summary is the aggregate view backing GET /tournaments/{id}/summary.
type Summary struct {
	Tournament    *models.Tournament `json:"tournament"`
	EnrolledCount int                `json:"enrolled_count"`
	SessionCount  int                `json:"session_count"`
	RankingsCount int                `json:"rankings_count"`
	RewardsIssued bool               `json:"rewards_issued"`
}

// Summary assembles a cross-cutting snapshot of a tournament's progress.
func (s *TournamentService) Summary(ctx context.Context, tournamentID string) (*Summary, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	enrolledCount, err := s.repos.Enrollment.CountActiveApproved(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to count enrollments: %w", err)
	}

	sessions, err := s.repos.Session.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	rankings, err := s.repos.Ranking.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}

	rewardsIssued, err := s.repos.Reward.ExistsForTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check reward distribution: %w", err)
	}

	return &Summary{
		Tournament:    tournament,
		EnrolledCount: enrolledCount,
		SessionCount:  len(sessions),
		RankingsCount: len(rankings),
		RewardsIssued: rewardsIssued,
	}, nil
}
