// internal/services/finalizer_service.go
// The three finalizers (§4.8): SessionFinalizer closes one INDIVIDUAL_RANKING
// session, GroupStageFinalizer closes a HEAD_TO_HEAD group stage and seeds
// knockout, TournamentFinalizer closes the whole tournament and triggers
// rewards exactly once.

package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/ranking"
	"github.com/academy-platform/tournament-engine/internal/ranking/headtohead"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/results/calculators"
	"github.com/academy-platform/tournament-engine/internal/utils"
)

// FinalizerService groups the three finalization procedures. They share a
// repository container and the downstream reward/notification/analytics
// services but enforce distinct idempotency guards.
type FinalizerService struct {
	repos     *repositories.Container
	rewards   *RewardOrchestrator
	notify    *NotificationService
	analytics *AnalyticsService
	users     *UserService
	ranking   *ranking.Service
	logger    *log.Logger
}

// NewFinalizerService creates a new finalizer service
func NewFinalizerService(repos *repositories.Container, rewards *RewardOrchestrator, notify *NotificationService, analytics *AnalyticsService, users *UserService, logger *log.Logger) *FinalizerService {
	return &FinalizerService{
		repos: repos, rewards: rewards, notify: notify, analytics: analytics, users: users,
		ranking: ranking.NewService(), logger: logger,
	}
}

// FinalizeSession closes one INDIVIDUAL_RANKING session: computes
// performance/wins rankings from its rounds_data and persists both the
// game_results snapshot and the tournament_rankings rows. It never
// distributes rewards (§4.8: reward distribution is TournamentFinalizer's
// job alone).
func (f *FinalizerService) FinalizeSession(ctx context.Context, sessionID, actorUserID string) (*models.Session, error) {
	tx, err := f.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	session, err := f.repos.Session.GetByIDForUpdate(ctx, tx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.MatchFormat != models.MatchIndividualRanking {
		return nil, NewAppError(KindInvalidSchema, "only INDIVIDUAL_RANKING sessions are finalized through this path", map[string]interface{}{
			"session_id": sessionID, "match_format": session.MatchFormat,
		})
	}

	rankingsExist, err := f.repos.Ranking.ExistsForTournament(ctx, session.TournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing rankings: %w", err)
	}
	if err := sessionFinalizationGuard(session, rankingsExist, sessionID); err != nil {
		return nil, err
	}

	tournament, err := f.repos.Tournament.GetByID(ctx, session.TournamentID)
	if err != nil {
		return nil, err
	}

	if session.RoundsData == nil {
		return nil, NewAppError(KindInvalidSchema, "session has no rounds_data to finalize", nil)
	}
	if session.RoundsData.CompletedRounds < session.RoundsData.TotalRounds {
		return nil, NewAppError(KindIncompleteStage, "not all rounds have been submitted", map[string]interface{}{
			"completed_rounds": session.RoundsData.CompletedRounds, "total_rounds": session.RoundsData.TotalRounds,
		})
	}

	scoringType := ""
	if tournament.ScoringType != nil {
		scoringType = *tournament.ScoringType
	}
	direction := ranking.Direction(tournament.RankingDirection)

	groups, err := f.ranking.CalculateRankings(scoringType, ranking.RoundResults(session.RoundsData.RoundResults), session.ParticipantUserIDs, direction)
	if err != nil {
		return nil, NewAppError(KindUnknownScoringType, err.Error(), map[string]interface{}{"scoring_type": scoringType})
	}

	aggregationLabel, err := f.ranking.AggregationLabel(scoringType, direction)
	if err != nil {
		return nil, NewAppError(KindUnknownScoringType, err.Error(), map[string]interface{}{"scoring_type": scoringType})
	}

	performance, wins := f.ranking.ConvertToLegacyFormat(groups, tournament.MeasurementUnit)

	now := time.Now()
	gameResults := &models.GameResults{
		RecordedAt:          now,
		RecordedByID:        actorUserID,
		TournamentFormat:    string(tournament.TournamentFormat),
		ScoringType:         scoringType,
		MeasurementUnit:     tournament.MeasurementUnit,
		RankingDirection:    string(direction),
		TotalRounds:         session.RoundsData.TotalRounds,
		AggregationMethod:   aggregationLabel,
		RoundsDataSnapshot:  session.RoundsData,
		PerformanceRankings: toDetailRows(performance),
		WinsRankings:        toDetailRows(wins),
	}
	gameResults.DerivedRankings = gameResults.PerformanceRankings

	if err := f.repos.Session.FinalizeWithTx(ctx, tx, sessionID, gameResults); err != nil {
		return nil, fmt.Errorf("failed to write game_results: %w", err)
	}

	rankingRows := make([]*models.TournamentRanking, 0, len(performance))
	for _, entry := range performance {
		rankingRows = append(rankingRows, &models.TournamentRanking{
			ID:              utils.GenerateUUID(),
			TournamentID:    tournament.ID,
			UserID:          entry.UserID,
			Rank:            entry.Rank,
			FinalValue:      entry.FinalValue,
			MeasurementUnit: entry.MeasurementUnit,
			IsTied:          entry.IsTied,
			RankingBasis:    models.RankingBasisPerformance,
			CreatedAt:       now,
		})
	}
	if err := f.repos.Ranking.ReplaceAllWithTx(ctx, tx, tournament.ID, rankingRows); err != nil {
		return nil, fmt.Errorf("failed to persist rankings: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit session finalization: %w", err)
	}

	session.GameResults = gameResults
	f.notify.NotifySessionFinalized(tournament.ID, sessionID)
	f.analytics.LogEvent(ctx, tournament.ID, "session.finalized", map[string]interface{}{"session_id": sessionID})
	return session, nil
}

// sessionFinalizationGuard enforces the two independent idempotency checks
// a session finalization must pass, each failing fast on its own: game_results
// already written, or tournament_rankings rows already persisted for this
// session's tournament. A historical dual-finalization race could leave
// exactly one of these true without the other, so neither guard may be
// folded into an AND with the other (§4.8, §9).
func sessionFinalizationGuard(session *models.Session, rankingsExist bool, sessionID string) error {
	if session.IsFinalized() {
		return NewAppError(KindAlreadyFinalized, "session has already been finalized", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	if rankingsExist {
		return NewAppError(KindAlreadyFinalized, "session has already been finalized", map[string]interface{}{
			"session_id": sessionID,
		})
	}
	return nil
}

func toDetailRows(entries []ranking.LegacyRankingEntry) []models.RankingEntryDetail {
	rows := make([]models.RankingEntryDetail, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, models.RankingEntryDetail{
			UserID: e.UserID, Rank: e.Rank, FinalValue: e.FinalValue,
			MeasurementUnit: e.MeasurementUnit, IsTied: e.IsTied,
		})
	}
	return rows
}

// buildGroupMatches reduces a tournament's finalized GROUP_STAGE sessions
// into the shape the standings calculator consumes, and collects every
// enrolled participant per group so zero-match rows still appear.
func buildGroupMatches(sessions []*models.Session) ([]calculators.GroupMatch, map[string][]string) {
	var matches []calculators.GroupMatch
	allParticipants := map[string][]string{}

	for _, s := range sessions {
		group := ""
		if s.GroupIdentifier != nil {
			group = *s.GroupIdentifier
		}
		allParticipants[group] = append(allParticipants[group], []string(s.ParticipantUserIDs)...)

		if s.GameResults == nil || len(s.GameResults.Participants) < 2 {
			continue
		}
		a, b := s.GameResults.Participants[0], s.GameResults.Participants[1]
		matches = append(matches, calculators.GroupMatch{
			GroupIdentifier: group,
			ParticipantA:    a.UserID, ScoreA: int(a.Score),
			ParticipantB: b.UserID, ScoreB: int(b.Score),
		})
	}
	return matches, allParticipants
}

// FinalizeGroupStage closes a HEAD_TO_HEAD group_knockout tournament's group
// stage: computes per-group standings, snapshots them immutably into
// enrollment_snapshot, and seeds the first knockout round by crossover
// (§4.5, §4.8). It never distributes rewards.
func (f *FinalizerService) FinalizeGroupStage(ctx context.Context, tournamentID string) (*models.EnrollmentSnapshot, error) {
	tournament, err := f.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.EnrollmentSnapshot != nil {
		return tournament.EnrollmentSnapshot, nil
	}

	unfinalized, err := f.repos.Session.CountUnfinalizedByPhase(ctx, tournamentID, models.PhaseGroupStage)
	if err != nil {
		return nil, fmt.Errorf("failed to check group stage completion: %w", err)
	}
	if unfinalized > 0 {
		return nil, NewAppError(KindIncompleteStage, "group stage has unfinalized sessions", map[string]interface{}{
			"unfinalized_count": unfinalized,
		})
	}

	groupSessions, err := f.repos.Session.ListByTournamentAndPhase(ctx, tournamentID, models.PhaseGroupStage)
	if err != nil {
		return nil, fmt.Errorf("failed to list group stage sessions: %w", err)
	}
	matches, allParticipants := buildGroupMatches(groupSessions)
	names, err := f.resolveNames(ctx, allParticipants)
	if err != nil {
		return nil, err
	}
	standings := calculators.CalculateGroupStandings(matches, allParticipants, names)

	roundOneSessions, err := f.repos.Session.ListKnockoutRoundOne(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list knockout round one: %w", err)
	}
	slots := make([]calculators.KnockoutSlot, 0, len(roundOneSessions))
	for _, s := range roundOneSessions {
		slots = append(slots, calculators.KnockoutSlot{SessionID: s.ID, Round: s.TournamentRound})
	}

	seeding := calculators.CalculateAdvancement(standings, slots)

	qualifiersPerGroup := 0
	if len(standings) > 0 {
		qualifiersPerGroup = len(seeding.Qualified) / len(standings)
	}
	snapshot := &models.EnrollmentSnapshot{
		Timestamp:             time.Now(),
		Phase:                 string(models.PhaseGroupStage),
		GroupStandings:        toSnapshotStandings(standings),
		QualifiedParticipants: seeding.Qualified,
		QualificationRule:     fmt.Sprintf("top_%d_per_group", qualifiersPerGroup),
		TotalGroups:           len(standings),
		TotalQualified:        len(seeding.Qualified),
	}

	tx, err := f.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := f.repos.Tournament.UpdateStatusWithTx(ctx, tx, tournamentID, tournament.TournamentStatus, snapshot); err != nil {
		return nil, fmt.Errorf("failed to write enrollment_snapshot: %w", err)
	}
	for sessionID, pair := range seeding.Pairings {
		if err := f.repos.Session.UpdateParticipantsWithTx(ctx, tx, sessionID, models.StringSlice{pair[0], pair[1]}); err != nil {
			return nil, fmt.Errorf("failed to seed knockout round one: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit group stage finalization: %w", err)
	}

	f.notify.NotifyGroupStageFinalized(tournamentID)
	f.analytics.LogEvent(ctx, tournamentID, "group_stage.finalized", map[string]interface{}{
		"total_groups": snapshot.TotalGroups, "total_qualified": snapshot.TotalQualified,
	})
	return snapshot, nil
}

func toSnapshotStandings(standings map[string][]calculators.StandingsRow) map[string][]models.StandingRow {
	out := make(map[string][]models.StandingRow, len(standings))
	for group, rows := range standings {
		converted := make([]models.StandingRow, 0, len(rows))
		for _, r := range rows {
			converted = append(converted, models.StandingRow{
				UserID: r.UserID, Name: r.Name, Points: r.Points, Wins: r.Wins, Draws: r.Draws,
				Losses: r.Losses, GoalsFor: r.GoalsFor, GoalsAgainst: r.GoalsAgainst,
				GoalDifference: r.GoalDifference, MatchesPlayed: r.MatchesPlayed, Rank: r.Rank,
			})
		}
		out[group] = converted
	}
	return out
}

// resolveNames flattens every group's participant ids and resolves their
// display names through the user directory, used to populate StandingsRow.Name.
func (f *FinalizerService) resolveNames(ctx context.Context, allParticipants map[string][]string) (map[string]string, error) {
	seen := map[string]bool{}
	var ids []string
	for _, group := range allParticipants {
		for _, id := range group {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	users, err := f.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve participant names: %w", err)
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.FullName
	}
	return names, nil
}

// buildMatchRecords reduces every finalized HEAD_TO_HEAD session into the
// headtohead package's MatchRecord shape.
func buildMatchRecords(sessions []*models.Session) []headtohead.MatchRecord {
	var records []headtohead.MatchRecord
	for _, s := range sessions {
		if s.GameResults == nil || len(s.GameResults.Participants) < 2 {
			continue
		}
		group := ""
		if s.GroupIdentifier != nil {
			group = *s.GroupIdentifier
		}
		a, b := s.GameResults.Participants[0], s.GameResults.Participants[1]
		records = append(records, headtohead.MatchRecord{
			SessionID:       s.ID,
			Round:           s.TournamentRound,
			GroupIdentifier: group,
			Participants: [2]headtohead.ParticipantResult{
				{UserID: a.UserID, Score: a.Score, Result: a.Result},
				{UserID: b.UserID, Score: b.Score, Result: b.Result},
			},
		})
	}
	return records
}

// finalHeadToHeadRankings dispatches to the league/knockout/group_knockout
// ranking family named by the tournament's tournament_type_code (§4.3).
func finalHeadToHeadRankings(tournament *models.Tournament, sessions []*models.Session) ([]*models.TournamentRanking, error) {
	typeCode := ""
	if tournament.TournamentTypeCode != nil {
		typeCode = *tournament.TournamentTypeCode
	}
	if err := headtohead.Validate(typeCode); err != nil {
		return nil, err
	}

	now := time.Now()
	records := buildMatchRecords(sessions)

	var rows []*models.TournamentRanking
	switch typeCode {
	case headtohead.TypeLeague:
		for _, e := range headtohead.LeagueStandings(records) {
			rows = append(rows, &models.TournamentRanking{
				ID: utils.GenerateUUID(), TournamentID: tournament.ID, UserID: e.UserID,
				Rank: e.Rank, FinalValue: float64(e.Points), MeasurementUnit: "points",
				RankingBasis: models.RankingBasisWins, CreatedAt: now,
			})
		}
	case headtohead.TypeKnockout:
		for _, e := range headtohead.KnockoutStandings(records) {
			rows = append(rows, &models.TournamentRanking{
				ID: utils.GenerateUUID(), TournamentID: tournament.ID, UserID: e.UserID,
				Rank: e.Rank, FinalValue: float64(e.RoundReached), MeasurementUnit: "round_reached",
				RankingBasis: models.RankingBasisWins, CreatedAt: now,
			})
		}
	case headtohead.TypeGroupKnockout:
		var groupOnly []headtohead.GroupOnlyEntry
		if tournament.EnrollmentSnapshot != nil {
			qualified := map[string]bool{}
			for _, id := range tournament.EnrollmentSnapshot.QualifiedParticipants {
				qualified[id] = true
			}
			for group, groupRows := range tournament.EnrollmentSnapshot.GroupStandings {
				for _, r := range groupRows {
					if !qualified[r.UserID] {
						groupOnly = append(groupOnly, headtohead.GroupOnlyEntry{
							UserID: r.UserID, GroupIdentifier: group, GroupRank: r.Rank,
						})
					}
				}
			}
		}
		knockoutOnly := make([]headtohead.MatchRecord, 0, len(records))
		for _, r := range records {
			if r.GroupIdentifier == "" {
				knockoutOnly = append(knockoutOnly, r)
			}
		}
		for _, e := range headtohead.GroupKnockoutStandings(knockoutOnly, groupOnly) {
			rows = append(rows, &models.TournamentRanking{
				ID: utils.GenerateUUID(), TournamentID: tournament.ID, UserID: e.UserID,
				Rank: e.Rank, FinalValue: float64(e.Rank), MeasurementUnit: "final_position",
				RankingBasis: models.RankingBasisWins, CreatedAt: now,
			})
		}
	}
	return rows, nil
}

// FinalizeTournament closes a tournament: acquires a row-level lock,
// computes (or reuses) final rankings, transitions to COMPLETED, and
// triggers the Reward Orchestrator exactly once (§4.8, §4.9, §4.10). Calling
// it on an already-COMPLETED tournament is a no-op success.
func (f *FinalizerService) FinalizeTournament(ctx context.Context, tournamentID, actorUserID string, reason *string) (*models.Tournament, error) {
	tx, err := f.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	tournament, err := f.repos.Tournament.GetByIDForUpdate(ctx, tx, tournamentID)
	if err != nil {
		return nil, err
	}

	if tournament.TournamentStatus == models.StatusCompleted {
		tx.Rollback()
		return tournament, nil
	}
	if tournament.TournamentStatus != models.StatusInProgress {
		return nil, NewAppError(KindInvalidTransition, "tournament must be IN_PROGRESS to finalize", map[string]interface{}{
			"tournament_status": tournament.TournamentStatus,
		})
	}

	if tournament.TournamentFormat == models.FormatHeadToHead {
		exists, err := f.repos.Ranking.ExistsForTournament(ctx, tournamentID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing rankings: %w", err)
		}
		if !exists {
			sessions, err := f.repos.Session.ListByTournament(ctx, tournamentID)
			if err != nil {
				return nil, fmt.Errorf("failed to list sessions: %w", err)
			}
			rows, err := finalHeadToHeadRankings(tournament, sessions)
			if err != nil {
				return nil, NewAppError(KindUnknownScoringType, err.Error(), nil)
			}
			if err := f.repos.Ranking.ReplaceAllWithTx(ctx, tx, tournamentID, rows); err != nil {
				return nil, fmt.Errorf("failed to persist final rankings: %w", err)
			}
		}
	}

	if err := f.repos.Tournament.UpdateStatusWithTx(ctx, tx, tournamentID, models.StatusCompleted, nil); err != nil {
		return nil, fmt.Errorf("failed to transition tournament to COMPLETED: %w", err)
	}

	history := &models.TournamentStatusHistory{
		ID: utils.GenerateUUID(), TournamentID: tournamentID,
		FromStatus: tournament.TournamentStatus, ToStatus: models.StatusCompleted,
		Reason: reason, CreatedAt: time.Now(),
	}
	if actorUserID != "" {
		history.ActorUserID = &actorUserID
	}
	if err := f.repos.StatusHistory.CreateWithTx(ctx, tx, history); err != nil {
		return nil, fmt.Errorf("failed to record status history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit tournament finalization: %w", err)
	}

	tournament.TournamentStatus = models.StatusCompleted
	f.notify.NotifyTournamentCompleted(tournamentID)
	f.analytics.LogEvent(ctx, tournamentID, "tournament.completed", nil)

	dist, err := f.rewards.Distribute(ctx, tournament)
	if err != nil {
		f.logger.Printf("reward distribution failed tournament_id=%s: %v", tournamentID, err)
		return tournament, nil
	}
	f.notify.NotifyRewardsDistributed(tournamentID, len(dist.LineItems))

	return tournament, nil
}

// RecalculateRankings recomputes a HEAD_TO_HEAD tournament's standings from
// its currently finalized sessions without requiring IN_PROGRESS status or
// touching the lifecycle state, for manual recompute requests. INDIVIDUAL_
// RANKING tournaments derive rankings per-session through FinalizeSession
// and have no tournament-wide recompute of their own.
func (f *FinalizerService) RecalculateRankings(ctx context.Context, tournamentID string) ([]*models.TournamentRanking, error) {
	tournament, err := f.repos.Tournament.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if tournament.TournamentFormat != models.FormatHeadToHead {
		return nil, NewAppError(KindInvalidSchema, "rankings for INDIVIDUAL_RANKING tournaments are derived per session via finalize", map[string]interface{}{
			"tournament_format": tournament.TournamentFormat,
		})
	}

	sessions, err := f.repos.Session.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	rows, err := finalHeadToHeadRankings(tournament, sessions)
	if err != nil {
		return nil, NewAppError(KindUnknownScoringType, err.Error(), nil)
	}

	tx, err := f.repos.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := f.repos.Ranking.ReplaceAllWithTx(ctx, tx, tournamentID, rows); err != nil {
		return nil, fmt.Errorf("failed to persist rankings: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit ranking recompute: %w", err)
	}

	return rows, nil
}

// ListRankings returns a tournament's persisted rankings for the read endpoint.
func (f *FinalizerService) ListRankings(ctx context.Context, tournamentID string) ([]*models.TournamentRanking, error) {
	return f.repos.Ranking.ListByTournament(ctx, tournamentID)
}
