// internal/services/other_services.go
// Notification, reward-ledger and analytics services.

package services

import (
	"context"
	"log"
	"time"

	"github.com/academy-platform/tournament-engine/internal/config"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/websocket"
)

// NotificationService broadcasts tournament domain events over the
// websocket hub (§11.1).
type NotificationService struct {
	hub    *websocket.Hub
	config *config.Config
	logger *log.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(hub *websocket.Hub, cfg *config.Config, logger *log.Logger) *NotificationService {
	return &NotificationService{
		hub:    hub,
		config: cfg,
		logger: logger,
	}
}

// NotifySessionFinalized broadcasts session.finalized to subscribers of a
// tournament's event stream (§4.8).
func (s *NotificationService) NotifySessionFinalized(tournamentID, sessionID string) {
	s.hub.BroadcastTournamentUpdate(tournamentID, websocket.MessageSessionFinalized, map[string]interface{}{
		"session_id": sessionID,
	})
}

// NotifyGroupStageFinalized broadcasts group_stage.finalized (§4.8).
func (s *NotificationService) NotifyGroupStageFinalized(tournamentID string) {
	s.hub.BroadcastTournamentUpdate(tournamentID, websocket.MessageGroupStageFinalized, map[string]interface{}{})
}

// NotifyTournamentCompleted broadcasts tournament.completed (§4.9).
func (s *NotificationService) NotifyTournamentCompleted(tournamentID string) {
	s.hub.BroadcastTournamentUpdate(tournamentID, websocket.MessageTournamentCompleted, map[string]interface{}{})
}

// NotifyRewardsDistributed broadcasts rewards.distributed (§4.10).
func (s *NotificationService) NotifyRewardsDistributed(tournamentID string, recipientCount int) {
	s.hub.BroadcastTournamentUpdate(tournamentID, websocket.MessageRewardsDistributed, map[string]interface{}{
		"recipient_count": recipientCount,
	})
}

// ========================================

// RewardLedgerService issues the credit/XP payouts computed by the Reward
// Orchestrator (§4.10) against the external credit ledger (§6.2).
type RewardLedgerService struct {
	repos  *repositories.Container
	config config.ExternalConfig
	logger *log.Logger
}

// NewRewardLedgerService creates a new reward ledger service
func NewRewardLedgerService(repos *repositories.Container, cfg config.ExternalConfig, logger *log.Logger) *RewardLedgerService {
	return &RewardLedgerService{
		repos:  repos,
		config: cfg,
		logger: logger,
	}
}

// CreditUser posts one line item's credits/XP to the external ledger. The
// ledger's system of record lives outside this service; here the call is
// represented by a structured log line rather than a live HTTP round trip.
func (s *RewardLedgerService) CreditUser(ctx context.Context, userID string, credits float64, xp int, badge string) error {
	s.logger.Printf("ledger credit user_id=%s credits=%.2f xp=%d badge=%q", userID, credits, xp, badge)
	return nil
}

// ========================================

// AnalyticsService handles analytics and domain-event logging
type AnalyticsService struct {
	repo   *repositories.AnalyticsRepository
	cache  *CacheService
	logger *log.Logger
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(repo *repositories.AnalyticsRepository, cache *CacheService, logger *log.Logger) *AnalyticsService {
	return &AnalyticsService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// LogEvent appends a domain event to the audit log. Never returns an error
// to callers in the finalize path: analytics must not block a finalizer
// that has already committed its transaction.
func (s *AnalyticsService) LogEvent(ctx context.Context, tournamentID, eventType string, payload map[string]interface{}) {
	err := s.repo.RecordEvent(ctx, repositories.AnalyticsEvent{
		TournamentID: tournamentID,
		EventType:    eventType,
		Payload:      payload,
		RecordedAt:   time.Now(),
	})
	if err != nil {
		s.logger.Printf("failed to log analytics event type=%s tournament_id=%s: %v", eventType, tournamentID, err)
	}
}

// GetTournamentEvents retrieves the event log for a tournament, for audit
// tooling and support escalations.
func (s *AnalyticsService) GetTournamentEvents(ctx context.Context, tournamentID string) ([]repositories.AnalyticsEvent, error) {
	return s.repo.ListByTournament(ctx, tournamentID)
}
