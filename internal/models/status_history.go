// internal/models/status_history.go
// TournamentStatusHistory: one audit row per lifecycle transition (§4.9).

package models

import "time"

// TournamentStatusHistory records a single state-machine transition,
// written atomically alongside the transition it describes.
type TournamentStatusHistory struct {
	ID           string           `json:"id" db:"id"`
	TournamentID string           `json:"tournament_id" db:"tournament_id"`
	FromStatus   TournamentStatus `json:"from_status" db:"from_status"`
	ToStatus     TournamentStatus `json:"to_status" db:"to_status"`
	ActorUserID  *string          `json:"actor_user_id,omitempty" db:"actor_user_id"`
	Reason       *string          `json:"reason,omitempty" db:"reason"`
	CreatedAt    time.Time        `json:"created_at" db:"created_at"`
}
