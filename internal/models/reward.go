// internal/models/reward.go
// RewardDistribution (§3.1, §4.10): one batch of payouts issued when a
// tournament is finalized, plus its line items.

package models

import "time"

// RewardDistribution is the idempotent record of a tournament's payout run.
type RewardDistribution struct {
	ID           string    `json:"id" db:"id"`
	TournamentID string    `json:"tournament_id" db:"tournament_id"`
	DistributedAt time.Time `json:"distributed_at" db:"distributed_at"`
	LineItems    []RewardLineItem `json:"line_items" db:"-"`
}

// RewardLineItem is one participant's payout within a distribution.
type RewardLineItem struct {
	ID                    string  `json:"id" db:"id"`
	RewardDistributionID  string  `json:"reward_distribution_id" db:"reward_distribution_id"`
	UserID                string  `json:"user_id" db:"user_id"`
	Rank                  int     `json:"rank" db:"rank"`
	RankLabel             string  `json:"rank_label" db:"rank_label"`
	Credits               float64 `json:"credits" db:"credits"`
	XP                    int     `json:"xp" db:"xp"`
	Badge                 string  `json:"badge,omitempty" db:"badge"`
}
