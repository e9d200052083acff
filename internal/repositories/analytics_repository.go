// internal/repositories/analytics_repository.go
// Tournament domain-event log (MongoDB): an append-only event collection
// for audit and analytics consumption.

package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnalyticsEvent is one append-only record of a tournament domain event
// (session finalized, group stage finalized, tournament completed, rewards
// distributed).
type AnalyticsEvent struct {
	TournamentID string                 `bson:"tournament_id"`
	EventType    string                 `bson:"event_type"`
	Payload      map[string]interface{} `bson:"payload"`
	RecordedAt   time.Time              `bson:"recorded_at"`
}

// AnalyticsRepository handles tournament event logging in MongoDB
type AnalyticsRepository struct {
	collection *mongo.Collection
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepository {
	return &AnalyticsRepository{
		collection: db.Collection("tournament_events"),
	}
}

// RecordEvent appends one domain event. Never updates or deletes existing
// documents: this collection is a log, not a projection.
func (r *AnalyticsRepository) RecordEvent(ctx context.Context, event AnalyticsEvent) error {
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// ListByTournament retrieves the event log for one tournament, most recent
// first, for audit/debug tooling.
func (r *AnalyticsRepository) ListByTournament(ctx context.Context, tournamentID string) ([]AnalyticsEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "recorded_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"tournament_id": tournamentID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []AnalyticsEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}
