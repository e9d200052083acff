// internal/services/schedule_service.go
// Session generation (§4.6) and campus schedule configuration (§3.1).

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/schedule"
	"github.com/academy-platform/tournament-engine/internal/utils"
)

// ScheduleService generates, previews and manages a tournament's sessions.
type ScheduleService struct {
	repos  *repositories.Container
	logger *log.Logger
}

// NewScheduleService creates a new schedule service
func NewScheduleService(repos *repositories.Container, logger *log.Logger) *ScheduleService {
	return &ScheduleService{repos: repos, logger: logger}
}

// GenerateSessionsRequest optionally overrides scheduling defaults for a
// single generation call (§3.1 resolution order: request parameter tier).
type GenerateSessionsRequest struct {
	TotalRounds          int     `json:"total_rounds,omitempty"`
	MatchDurationMinutes int     `json:"match_duration_minutes,omitempty"`
	BreakDurationMinutes int     `json:"break_duration_minutes,omitempty"`
	ParallelFields       int     `json:"parallel_fields,omitempty"`
	VenueLabel           string  `json:"venue_label,omitempty"`
	CampusID             *string `json:"campus_id,omitempty"`
}

func (s *ScheduleService) buildConfig(ctx context.Context, tournament *models.Tournament, req GenerateSessionsRequest) (schedule.Config, error) {
	override := &models.ResolvedScheduleDefaults{
		MatchDurationMinutes: req.MatchDurationMinutes,
		BreakDurationMinutes: req.BreakDurationMinutes,
		ParallelFields:       req.ParallelFields,
		VenueLabel:           req.VenueLabel,
	}

	var campus *models.CampusScheduleConfig
	if req.CampusID != nil {
		c, err := s.repos.CampusSchedule.GetByTournamentAndCampus(ctx, tournament.ID, *req.CampusID)
		if err != nil {
			return schedule.Config{}, fmt.Errorf("failed to load campus schedule config: %w", err)
		}
		campus = c
	}

	tournamentDefaults := models.ResolvedScheduleDefaults{
		MatchDurationMinutes: tournament.MatchDurationMinutes,
		BreakDurationMinutes: tournament.BreakDurationMinutes,
		ParallelFields:       tournament.ParallelFields,
	}

	resolved := models.Resolve(campus, tournamentDefaults, override)

	typeCode := ""
	if tournament.TournamentTypeCode != nil {
		typeCode = *tournament.TournamentTypeCode
	}

	return schedule.Config{
		TournamentFormat:   string(tournament.TournamentFormat),
		TournamentTypeCode: typeCode,
		StartDate:          tournament.StartDate,
		MatchDuration:      time.Duration(resolved.MatchDurationMinutes) * time.Minute,
		BreakDuration:      time.Duration(resolved.BreakDurationMinutes) * time.Minute,
		ParallelFields:     resolved.ParallelFields,
		TotalRounds:        req.TotalRounds,
		VenueLabel:         resolved.VenueLabel,
	}, nil
}

func plansToSessions(tournamentID string, plans []schedule.SessionPlan) []*models.Session {
	now := time.Now()
	sessions := make([]*models.Session, 0, len(plans))
	for _, p := range plans {
		var groupID *string
		if p.GroupIdentifier != "" {
			g := p.GroupIdentifier
			groupID = &g
		}
		var roundsData *models.RoundsData
		if p.MatchFormat == schedule.PhaseIndividualRanking {
			roundsData = &models.RoundsData{
				TotalRounds:  p.TotalRounds,
				RoundResults: map[string]map[string]string{},
			}
		}
		sessions = append(sessions, &models.Session{
			ID:                 utils.GenerateUUID(),
			TournamentID:       tournamentID,
			Title:              p.Title,
			DateStart:          p.DateStart,
			DateEnd:            p.DateEnd,
			IsTournamentGame:   true,
			TournamentPhase:    models.TournamentPhase(p.TournamentPhase),
			TournamentRound:    p.TournamentRound,
			GroupIdentifier:    groupID,
			MatchFormat:        models.MatchFormat(p.MatchFormat),
			ParticipantUserIDs: models.StringSlice(p.ParticipantUserIDs),
			RoundsData:         roundsData,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return sessions
}

// Generate builds and persists the full session set for a tournament
// (§4.6). Permitted only while status <= SEEKING_INSTRUCTOR, or after an
// explicit DELETE /sessions that cleared the prior set.
func (s *ScheduleService) Generate(ctx context.Context, tournamentID string, req GenerateSessionsRequest) ([]*models.Session, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	if tournament.TournamentStatus != models.StatusDraft && tournament.TournamentStatus != models.StatusSeekingInstructor {
		existing, err := s.repos.Session.ListByTournament(ctx, tournamentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing sessions: %w", err)
		}
		if len(existing) > 0 {
			return nil, NewAppError(KindConflict, "sessions already generated for this tournament; DELETE /sessions first", map[string]interface{}{
				"tournament_status": tournament.TournamentStatus,
			})
		}
	}

	roster, err := s.repos.Enrollment.ListActiveApprovedUserIDs(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	cfg, err := s.buildConfig(ctx, tournament, req)
	if err != nil {
		return nil, err
	}

	plans, err := schedule.Generate(cfg, roster)
	if err != nil {
		return nil, NewAppError(KindInvalidSchema, err.Error(), map[string]interface{}{"tournament_type_code": cfg.TournamentTypeCode})
	}

	sessions := plansToSessions(tournamentID, plans)

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repos.Session.CreateManyWithTx(ctx, tx, sessions); err != nil {
		return nil, fmt.Errorf("failed to persist sessions: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session generation: %w", err)
	}

	s.logger.Printf("sessions generated tournament_id=%s count=%d", tournamentID, len(sessions))
	return sessions, nil
}

// Preview runs the same generation logic as Generate without persisting
// anything, for the dry-run preview endpoint.
func (s *ScheduleService) Preview(ctx context.Context, tournamentID string, req GenerateSessionsRequest) ([]schedule.SessionPlan, error) {
	tournament, err := s.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	roster, err := s.repos.Enrollment.ListActiveApprovedUserIDs(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	cfg, err := s.buildConfig(ctx, tournament, req)
	if err != nil {
		return nil, err
	}

	plans, err := schedule.Generate(cfg, roster)
	if err != nil {
		return nil, NewAppError(KindInvalidSchema, err.Error(), map[string]interface{}{"tournament_type_code": cfg.TournamentTypeCode})
	}
	return plans, nil
}

// ListSessions returns all sessions for a tournament.
func (s *ScheduleService) ListSessions(ctx context.Context, tournamentID string) ([]*models.Session, error) {
	return s.repos.Session.ListByTournament(ctx, tournamentID)
}

// DeleteSessions wipes the generated session set, re-enabling Generate.
func (s *ScheduleService) DeleteSessions(ctx context.Context, tournamentID string) error {
	return s.repos.Session.DeleteByTournament(ctx, tournamentID)
}

// UpsertCampusSchedule creates or replaces a campus's schedule override.
func (s *ScheduleService) UpsertCampusSchedule(ctx context.Context, tournamentID, campusID string, cfg *models.CampusScheduleConfig) (*models.CampusScheduleConfig, error) {
	existing, err := s.repos.CampusSchedule.GetByTournamentAndCampus(ctx, tournamentID, campusID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up campus schedule: %w", err)
	}

	now := time.Now()
	cfg.TournamentID = tournamentID
	cfg.CampusID = campusID
	cfg.IsActive = true
	cfg.UpdatedAt = now

	if existing != nil {
		cfg.ID = existing.ID
		cfg.CreatedAt = existing.CreatedAt
		if err := s.repos.CampusSchedule.Update(ctx, cfg); err != nil {
			return nil, fmt.Errorf("failed to update campus schedule: %w", err)
		}
		return cfg, nil
	}

	cfg.ID = utils.GenerateUUID()
	cfg.CreatedAt = now
	if err := s.repos.CampusSchedule.Create(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to create campus schedule: %w", err)
	}
	return cfg, nil
}

// ListCampusSchedules returns the active campus overrides for a tournament.
func (s *ScheduleService) ListCampusSchedules(ctx context.Context, tournamentID string) ([]*models.CampusScheduleConfig, error) {
	return s.repos.CampusSchedule.ListByTournament(ctx, tournamentID)
}

// DeleteCampusSchedule soft-deletes a campus's schedule override.
func (s *ScheduleService) DeleteCampusSchedule(ctx context.Context, tournamentID, campusID string) error {
	cfg, err := s.repos.CampusSchedule.GetByTournamentAndCampus(ctx, tournamentID, campusID)
	if err != nil {
		return fmt.Errorf("failed to look up campus schedule: %w", err)
	}
	if cfg == nil {
		return NewAppError(KindNotFound, "campus schedule not found", map[string]interface{}{"tournament_id": tournamentID, "campus_id": campusID})
	}
	return s.repos.CampusSchedule.Delete(ctx, cfg.ID)
}
