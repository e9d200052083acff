// internal/models/tournament.go
// Tournament and its JSON sub-documents (§3.1, §3.2).

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Tournament is a scheduled competitive event with a roster and a fixed
// format.
type Tournament struct {
	ID                   string             `json:"id" db:"id"`
	Name                 string             `json:"name" db:"name"`
	ShortCode            string             `json:"short_code" db:"short_code"`
	SpecializationFamily string             `json:"specialization_family" db:"specialization_family"`
	AgeGroup             string             `json:"age_group" db:"age_group"`
	StartDate            time.Time          `json:"start_date" db:"start_date"`
	EndDate              time.Time          `json:"end_date" db:"end_date"`
	Timezone             string             `json:"timezone" db:"timezone"`
	TournamentFormat     TournamentFormat   `json:"tournament_format" db:"tournament_format"`
	TournamentTypeCode   *string            `json:"tournament_type_code,omitempty" db:"tournament_type_code"`
	ScoringType          *string            `json:"scoring_type,omitempty" db:"scoring_type"`
	RankingDirection     string             `json:"ranking_direction" db:"ranking_direction"`
	MeasurementUnit      string             `json:"measurement_unit" db:"measurement_unit"`
	MatchDurationMinutes int                `json:"match_duration_minutes" db:"match_duration_minutes"`
	BreakDurationMinutes int                `json:"break_duration_minutes" db:"break_duration_minutes"`
	ParallelFields       int                `json:"parallel_fields" db:"parallel_fields"`
	TournamentStatus     TournamentStatus   `json:"tournament_status" db:"tournament_status"`
	MasterInstructorID   *string            `json:"master_instructor_id,omitempty" db:"master_instructor_id"`
	EnrollmentSnapshot   *EnrollmentSnapshot `json:"enrollment_snapshot,omitempty" db:"enrollment_snapshot"`
	TournamentConfig     TournamentConfig   `json:"tournament_config" db:"tournament_config"`
	CreatedAt            time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at" db:"updated_at"`
}

// TournamentFormat is the top-level competitive shape.
type TournamentFormat string

const (
	FormatIndividualRanking TournamentFormat = "INDIVIDUAL_RANKING"
	FormatHeadToHead        TournamentFormat = "HEAD_TO_HEAD"
)

// TournamentTypeCode further specializes HEAD_TO_HEAD tournaments.
const (
	TypeLeague        = "league"
	TypeKnockout      = "knockout"
	TypeGroupKnockout = "group_knockout"
	TypeSwiss         = "swiss" // reserved, not implemented
)

// ScoringType further specializes INDIVIDUAL_RANKING tournaments.
const (
	ScoringTimeBased     = "TIME_BASED"
	ScoringScoreBased    = "SCORE_BASED"
	ScoringRoundsBased   = "ROUNDS_BASED"
	ScoringDistanceBased = "DISTANCE_BASED"
	ScoringPlacement     = "PLACEMENT"
)

// RankingDirection values.
const (
	DirectionAsc  = "ASC"
	DirectionDesc = "DESC"
)

// DefaultRankingDirection implements §3.1's invariant: ASC for TIME_BASED and
// PLACEMENT, DESC otherwise.
func DefaultRankingDirection(scoringType string) string {
	switch scoringType {
	case ScoringTimeBased, ScoringPlacement:
		return DirectionAsc
	default:
		return DirectionDesc
	}
}

// TournamentStatus is the lifecycle state (§4.9).
type TournamentStatus string

const (
	StatusDraft                TournamentStatus = "DRAFT"
	StatusSeekingInstructor    TournamentStatus = "SEEKING_INSTRUCTOR"
	StatusReadyForEnrollment   TournamentStatus = "READY_FOR_ENROLLMENT"
	StatusOngoing              TournamentStatus = "ONGOING"
	StatusInProgress           TournamentStatus = "IN_PROGRESS"
	StatusCompleted            TournamentStatus = "COMPLETED"
	StatusCancelled            TournamentStatus = "CANCELLED"
)

// EnrollmentSnapshot is the immutable evidence written once by the Group
// Stage Finalizer (§3.2).
type EnrollmentSnapshot struct {
	Timestamp             time.Time                `json:"timestamp"`
	Phase                 string                    `json:"phase"`
	GroupStandings        map[string][]StandingRow `json:"group_standings"`
	QualifiedParticipants []string                  `json:"qualified_participants"`
	QualificationRule     string                    `json:"qualification_rule"`
	TotalGroups           int                       `json:"total_groups"`
	TotalQualified        int                       `json:"total_qualified"`
}

// StandingRow mirrors one line of a group table as persisted into the
// snapshot (decoupled from the pure calculators.StandingsRow type).
type StandingRow struct {
	UserID         string `json:"user_id"`
	Name           string `json:"name"`
	Points         int    `json:"points"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	MatchesPlayed  int    `json:"matches_played"`
	Rank           int    `json:"rank"`
}

// TournamentConfig holds the reward policy and any other tournament-level
// free-form configuration (§3.1 tournament_config_obj, §4.10).
type TournamentConfig struct {
	RewardPolicy map[string]RewardRule `json:"reward_policy,omitempty"`
}

// RewardRule is one reward-policy entry: rank label -> payout.
type RewardRule struct {
	Credits float64 `json:"credits"`
	XP      int     `json:"xp"`
	Badge   string  `json:"badge,omitempty"`
}

const RewardParticipantFallback = "participant"

// Scan/Value implementations ---------------------------------------------

func (s *EnrollmentSnapshot) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into EnrollmentSnapshot", value)
	}
	return json.Unmarshal(bytes, s)
}

func (s EnrollmentSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

func (c *TournamentConfig) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into TournamentConfig", value)
	}
	return json.Unmarshal(bytes, c)
}

func (c TournamentConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}
