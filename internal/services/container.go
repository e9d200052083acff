// internal/services/container.go
// Service container provides dependency injection for all business logic services.
// This pattern makes testing easier and keeps services loosely coupled.

package services

import (
	"errors"
	"log"

	"github.com/academy-platform/tournament-engine/internal/config"
	"github.com/academy-platform/tournament-engine/internal/database"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/websocket"
)

// Container holds all service instances and provides them to handlers
type Container struct {
	Auth               *AuthService
	User               *UserService
	Tournament         *TournamentService
	Enrollment         *EnrollmentService
	Schedule           *ScheduleService
	Result             *ResultService
	Finalizer          *FinalizerService
	RewardOrchestrator *RewardOrchestrator
	RewardLedger       *RewardLedgerService
	Notification       *NotificationService
	Cache              *CacheService
	Analytics          *AnalyticsService
}

// NewContainer creates a new service container with all dependencies
func NewContainer(db *database.Connections, cfg *config.Config, hub *websocket.Hub, logger *log.Logger) *Container {
	repos := repositories.NewContainer(db)

	cache := NewCacheService(db.Redis, logger)
	notification := NewNotificationService(hub, cfg, logger)
	analytics := NewAnalyticsService(repos.Analytics, cache, logger)

	auth := NewAuthService(repos.User, cfg.Auth, cache, logger)
	user := NewUserService(repos.User, logger)

	tournament := NewTournamentService(repos, cache, logger)
	enrollment := NewEnrollmentService(repos, logger)
	schedule := NewScheduleService(repos, logger)
	result := NewResultService(repos, logger)
	rewardLedger := NewRewardLedgerService(repos, cfg.External, logger)
	rewardOrchestrator := NewRewardOrchestrator(repos, rewardLedger, analytics, logger)
	finalizer := NewFinalizerService(repos, rewardOrchestrator, notification, analytics, user, logger)

	return &Container{
		Auth:               auth,
		User:               user,
		Tournament:         tournament,
		Enrollment:         enrollment,
		Schedule:           schedule,
		Result:             result,
		Finalizer:          finalizer,
		RewardOrchestrator: rewardOrchestrator,
		RewardLedger:       rewardLedger,
		Notification:       notification,
		Cache:              cache,
		Analytics:          analytics,
	}
}

// Common errors used across services
var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
