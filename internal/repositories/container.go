// internal/repositories/container.go
// Repository container for dependency injection

package repositories

import (
	"context"
	"database/sql"

	"github.com/academy-platform/tournament-engine/internal/database"
)

// Container holds all repository instances
type Container struct {
	User           *UserRepository
	Tournament     *TournamentRepository
	Enrollment     *EnrollmentRepository
	Session        *SessionRepository
	Ranking        *RankingRepository
	Reward         *RewardRepository
	StatusHistory  *StatusHistoryRepository
	CampusSchedule *CampusScheduleRepository
	Analytics      *AnalyticsRepository
	db             *sql.DB
}

// NewContainer creates a new repository container
func NewContainer(conn *database.Connections) *Container {
	return &Container{
		User:           NewUserRepository(conn.MySQL),
		Tournament:     NewTournamentRepository(conn.MySQL),
		Enrollment:     NewEnrollmentRepository(conn.MySQL),
		Session:        NewSessionRepository(conn.MySQL),
		Ranking:        NewRankingRepository(conn.MySQL),
		Reward:         NewRewardRepository(conn.MySQL),
		StatusHistory:  NewStatusHistoryRepository(conn.MySQL),
		CampusSchedule: NewCampusScheduleRepository(conn.MySQL),
		Analytics:      NewAnalyticsRepository(conn.MongoDB),
		db:             conn.MySQL,
	}
}

// BeginTx starts a new database transaction
func (c *Container) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return c.db.BeginTx(ctx, nil)
}
