// internal/services/result_service.go
// Result submission (§4.7): validates against the roster and session state,
// derives per-session ranks for non-IR formats, and writes single-round
// measurements for INDIVIDUAL_RANKING sessions.

package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/results"
)

// ResultService validates and records raw match/round results.
type ResultService struct {
	repos     *repositories.Container
	validator *results.Validator
	processor *results.Processor
	logger    *log.Logger
}

// NewResultService creates a new result service
func NewResultService(repos *repositories.Container, logger *log.Logger) *ResultService {
	return &ResultService{
		repos:     repos,
		validator: results.NewValidator(),
		processor: results.NewProcessor(),
		logger:    logger,
	}
}

// SubmitResultsRequest is the structured, match_format-specific submission
// body for POST .../submit-results.
type SubmitResultsRequest struct {
	MatchFormat string              `json:"match_format"`
	Results     []results.RawResult `json:"results"`
}

func (s *ResultService) loadSessionAndTournament(ctx context.Context, sessionID string) (*models.Session, *models.Tournament, error) {
	session, err := s.repos.Session.GetByID(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	tournament, err := s.repos.Tournament.GetByID(ctx, session.TournamentID)
	if err != nil {
		return nil, nil, err
	}
	return session, tournament, nil
}

func (s *ResultService) validateRoster(ctx context.Context, tournamentID string, userIDs []string) error {
	roster, err := s.repos.Enrollment.ListActiveApprovedUserIDs(ctx, tournamentID)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}
	return s.validator.ValidateUsersEnrolled(userIDs, roster)
}

// SubmitResults validates a structured result batch and writes the derived
// raw_results/participants shape into game_results. It does not itself
// finalize the session — SessionFinalizer performs that transition for
// INDIVIDUAL_RANKING sessions; for HEAD_TO_HEAD sessions the written
// game_results is the only artifact the standings calculator needs.
func (s *ResultService) SubmitResults(ctx context.Context, sessionID string, req SubmitResultsRequest) (*models.Session, error) {
	session, tournament, err := s.loadSessionAndTournament(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateAcceptsResults(results.SessionState{
		TournamentStatus:   string(tournament.TournamentStatus),
		GameResultsWritten: session.IsFinalized(),
	}); err != nil {
		return nil, translateValidationError(err)
	}

	userIDs := make([]string, 0, len(req.Results))
	for _, r := range req.Results {
		userIDs = append(userIDs, r.UserID)
	}
	if err := s.validateRoster(ctx, tournament.ID, userIDs); err != nil {
		return nil, translateValidationError(err)
	}

	ranked, err := s.processor.Process(req.MatchFormat, req.Results)
	if err != nil {
		return nil, translateValidationError(err)
	}

	gameResults := &models.GameResults{
		RecordedAt:  time.Now(),
		MatchFormat: req.MatchFormat,
	}
	for i, r := range ranked {
		outcome := "loss"
		if r.Rank == 1 {
			outcome = "win"
		}
		score := 0.0
		if i < len(req.Results) {
			score = req.Results[i].Score
		}
		gameResults.Participants = append(gameResults.Participants, models.H2HParticipantResult{
			UserID: r.UserID, Score: score, Result: outcome,
		})
	}
	gameResults.RawResults = gameResults.Participants

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repos.Session.FinalizeWithTx(ctx, tx, sessionID, gameResults); err != nil {
		return nil, fmt.Errorf("failed to write game_results: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit result submission: %w", err)
	}

	session.GameResults = gameResults
	return session, nil
}

// SubmitRoundRequest is a single INDIVIDUAL_RANKING round's measurements.
type SubmitRoundRequest struct {
	Measurements map[string]string `json:"measurements"`
}

// SubmitRound writes one round's measured values into an INDIVIDUAL_RANKING
// session's rounds_data, advancing completed_rounds (§3.3).
func (s *ResultService) SubmitRound(ctx context.Context, sessionID string, roundNumber int, req SubmitRoundRequest) (*models.Session, error) {
	session, tournament, err := s.loadSessionAndTournament(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.validator.ValidateAcceptsResults(results.SessionState{
		TournamentStatus:   string(tournament.TournamentStatus),
		GameResultsWritten: session.IsFinalized(),
	}); err != nil {
		return nil, translateValidationError(err)
	}

	userIDs := make([]string, 0, len(req.Measurements))
	for userID := range req.Measurements {
		userIDs = append(userIDs, userID)
	}
	if err := s.validateRoster(ctx, tournament.ID, userIDs); err != nil {
		return nil, translateValidationError(err)
	}

	if session.RoundsData == nil {
		return nil, NewAppError(KindInvalidSchema, "session has no rounds_data configured", nil)
	}
	if roundNumber < 1 || roundNumber > session.RoundsData.TotalRounds {
		return nil, NewAppError(KindInvalidSchema, "round number out of range", map[string]interface{}{
			"round_number": roundNumber, "total_rounds": session.RoundsData.TotalRounds,
		})
	}

	if session.RoundsData.RoundResults == nil {
		session.RoundsData.RoundResults = map[string]map[string]string{}
	}
	key := strconv.Itoa(roundNumber)
	session.RoundsData.RoundResults[key] = req.Measurements

	if roundNumber > session.RoundsData.CompletedRounds {
		session.RoundsData.CompletedRounds = roundNumber
	}

	tx, err := s.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repos.Session.UpdateRoundsDataWithTx(ctx, tx, sessionID, session.RoundsData); err != nil {
		return nil, fmt.Errorf("failed to update rounds_data: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit round submission: %w", err)
	}

	return session, nil
}

// Rounds returns the current rounds_data status for an INDIVIDUAL_RANKING
// session.
func (s *ResultService) Rounds(ctx context.Context, sessionID string) (*models.RoundsData, error) {
	session, err := s.repos.Session.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.RoundsData == nil {
		return nil, NewAppError(KindInvalidSchema, "session has no rounds_data", nil)
	}
	return session.RoundsData, nil
}

// translateValidationError maps the pure results package's *ValidationError
// into the service-layer InvalidResult AppError (§7), preserving detail.
func translateValidationError(err error) error {
	if ve, ok := err.(*results.ValidationError); ok {
		return NewAppError(KindInvalidResult, ve.Reason, ve.Detail)
	}
	return NewAppError(KindInvalidResult, err.Error(), nil)
}
