// internal/models/ranking.go
// TournamentRanking (persisted standings row, §3.1, written by both
// finalizers).

package models

import "time"

// TournamentRanking is one participant's final placement in a tournament.
type TournamentRanking struct {
	ID              string    `json:"id" db:"id"`
	TournamentID    string    `json:"tournament_id" db:"tournament_id"`
	UserID          string    `json:"user_id" db:"user_id"`
	Rank            int       `json:"rank" db:"rank"`
	FinalValue      float64   `json:"final_value" db:"final_value"`
	MeasurementUnit string    `json:"measurement_unit" db:"measurement_unit"`
	IsTied          bool      `json:"is_tied" db:"is_tied"`
	RankingBasis    string    `json:"ranking_basis" db:"ranking_basis"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
}

// RankingBasis values describe which computation produced the row.
const (
	RankingBasisPerformance = "performance"
	RankingBasisWins        = "wins"
)
