// internal/models/session.go
// Session (match slot, §3.1) plus its two typed JSON sub-documents:
// rounds_data (§3.3) and game_results (§3.4).

package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Session is one concrete match or round slot on the schedule.
type Session struct {
	ID                 string          `json:"id" db:"id"`
	TournamentID       string          `json:"tournament_id" db:"tournament_id"`
	Title              string          `json:"title" db:"title"`
	DateStart          time.Time       `json:"date_start" db:"date_start"`
	DateEnd            time.Time       `json:"date_end" db:"date_end"`
	CampusID           *string         `json:"campus_id,omitempty" db:"campus_id"`
	IsTournamentGame   bool            `json:"is_tournament_game" db:"is_tournament_game"`
	TournamentPhase    TournamentPhase `json:"tournament_phase" db:"tournament_phase"`
	TournamentRound    int             `json:"tournament_round" db:"tournament_round"`
	GroupIdentifier    *string         `json:"group_identifier,omitempty" db:"group_identifier"`
	MatchFormat        MatchFormat     `json:"match_format" db:"match_format"`
	ScoringType        *string         `json:"scoring_type,omitempty" db:"scoring_type"`
	ParticipantUserIDs StringSlice     `json:"participant_user_ids" db:"participant_user_ids"`
	RoundsData         *RoundsData     `json:"rounds_data,omitempty" db:"rounds_data"`
	GameResults        *GameResults    `json:"game_results,omitempty" db:"game_results"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`
}

// TournamentPhase classifies which stage of the tournament a session
// belongs to.
type TournamentPhase string

const (
	PhaseGroupStage        TournamentPhase = "GROUP_STAGE"
	PhaseKnockout          TournamentPhase = "KNOCKOUT"
	PhaseIndividualRanking TournamentPhase = "INDIVIDUAL_RANKING"
)

// MatchFormat is the shape of a single session's results (§4.2 table).
type MatchFormat string

const (
	MatchIndividualRanking MatchFormat = "INDIVIDUAL_RANKING"
	MatchHeadToHead        MatchFormat = "HEAD_TO_HEAD"
	MatchTeamMatch         MatchFormat = "TEAM_MATCH"
	MatchTimeBased         MatchFormat = "TIME_BASED"
	MatchSkillRating       MatchFormat = "SKILL_RATING"
)

// IsFinalized reports whether this session's game_results has been written.
func (s Session) IsFinalized() bool {
	return s.GameResults != nil
}

// StringSlice is a JSON-array column, e.g. participant_user_ids.
type StringSlice []string

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
	if len(bytes) == 0 {
		*s = nil
		return nil
	}
	return json.Unmarshal(bytes, s)
}

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	return json.Marshal([]string(s))
}

// RoundsData is the structured blob carried by INDIVIDUAL_RANKING sessions
// (§3.3).
type RoundsData struct {
	TotalRounds     int                          `json:"total_rounds"`
	CompletedRounds int                          `json:"completed_rounds"`
	RoundResults    map[string]map[string]string `json:"round_results"`
}

func (r *RoundsData) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into RoundsData", value)
	}
	return json.Unmarshal(bytes, r)
}

func (r RoundsData) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// GameResults is written exactly once at finalization (§3.4). It carries
// both the INDIVIDUAL_RANKING shape and the HEAD_TO_HEAD shape; exactly one
// of the two groups of fields is populated, selected by TournamentFormat.
type GameResults struct {
	RecordedAt      time.Time `json:"recorded_at"`
	RecordedByID    string    `json:"recorded_by_id"`
	RecordedByName  string    `json:"recorded_by_name"`

	// INDIVIDUAL_RANKING fields.
	TournamentFormat   string                `json:"tournament_format,omitempty"`
	ScoringType        string                `json:"scoring_type,omitempty"`
	MeasurementUnit    string                `json:"measurement_unit,omitempty"`
	RankingDirection   string                `json:"ranking_direction,omitempty"`
	TotalRounds        int                   `json:"total_rounds,omitempty"`
	AggregationMethod  string                `json:"aggregation_method,omitempty"`
	RoundsDataSnapshot *RoundsData           `json:"rounds_data,omitempty"`
	DerivedRankings    []RankingEntryDetail  `json:"derived_rankings,omitempty"`
	PerformanceRankings []RankingEntryDetail `json:"performance_rankings,omitempty"`
	WinsRankings       []RankingEntryDetail  `json:"wins_rankings,omitempty"`

	// HEAD_TO_HEAD fields.
	MatchFormat  string                 `json:"match_format,omitempty"`
	RoundNumber  int                    `json:"round_number,omitempty"`
	Participants []H2HParticipantResult `json:"participants,omitempty"`
	RawResults   []H2HParticipantResult `json:"raw_results,omitempty"`
}

// RankingEntryDetail is one row of derived_rankings/performance_rankings.
type RankingEntryDetail struct {
	UserID          string  `json:"user_id"`
	Rank            int     `json:"rank"`
	FinalValue      float64 `json:"final_value"`
	MeasurementUnit string  `json:"measurement_unit"`
	IsTied          bool    `json:"is_tied"`
}

// H2HParticipantResult is one side of a HEAD_TO_HEAD session's outcome.
type H2HParticipantResult struct {
	UserID string  `json:"user_id"`
	Score  float64 `json:"score"`
	Result string  `json:"result"` // "win", "loss", "draw"
}

func (g *GameResults) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into GameResults", value)
	}
	return json.Unmarshal(bytes, g)
}

func (g GameResults) Value() (driver.Value, error) {
	return json.Marshal(g)
}
