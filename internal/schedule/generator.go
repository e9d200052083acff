// internal/schedule/generator.go
// Schedule Generator (§4.6): declarative tournament config + roster ->
// sessions. Pure — returns plain SessionPlan values; the caller persists
// them and assigns real ids/dates.

package schedule

import "time"

const (
	PhaseGroupStage        = "GROUP_STAGE"
	PhaseKnockout          = "KNOCKOUT"
	PhaseIndividualRanking = "INDIVIDUAL_RANKING"
)

// Config carries the tournament-level and resolved-campus scheduling
// parameters the generator needs.
type Config struct {
	TournamentFormat   string // INDIVIDUAL_RANKING | HEAD_TO_HEAD
	TournamentTypeCode string // league | knockout | group_knockout
	StartDate          time.Time
	MatchDuration       time.Duration
	BreakDuration       time.Duration
	ParallelFields      int
	NumberOfGroups      int // group_knockout only
	TotalRounds         int // INDIVIDUAL_RANKING only
	VenueLabel          string
}

// SessionPlan is one generated session, not yet persisted.
type SessionPlan struct {
	Title              string
	TournamentPhase    string
	TournamentRound    int
	GroupIdentifier    string // "" when not applicable
	ParticipantUserIDs []string
	DateStart          time.Time
	DateEnd            time.Time
	VenueLabel         string
	MatchFormat        string
	TotalRounds        int // INDIVIDUAL_RANKING only, else 0
}

// Generate dispatches to the format/type-specific generator.
func Generate(cfg Config, roster []string) ([]SessionPlan, error) {
	if cfg.TournamentFormat == PhaseIndividualRanking || cfg.TournamentFormat == "INDIVIDUAL_RANKING" {
		return generateIndividualRanking(cfg, roster), nil
	}

	switch cfg.TournamentTypeCode {
	case "league":
		return generateLeague(cfg, roster), nil
	case "knockout":
		return generateKnockout(cfg, roster), nil
	case "group_knockout":
		return generateGroupKnockout(cfg, roster), nil
	default:
		return nil, &ErrUnsupportedTournamentType{TournamentTypeCode: cfg.TournamentTypeCode}
	}
}

// ErrUnsupportedTournamentType is returned for an unrecognized or reserved
// (swiss) tournament_type_code.
type ErrUnsupportedTournamentType struct {
	TournamentTypeCode string
}

func (e *ErrUnsupportedTournamentType) Error() string {
	return "unsupported tournament_type_code: " + e.TournamentTypeCode
}

func generateIndividualRanking(cfg Config, roster []string) []SessionPlan {
	totalRounds := cfg.TotalRounds
	if totalRounds < 1 {
		totalRounds = 1
	}
	return []SessionPlan{
		{
			Title:              "Individual Ranking",
			TournamentPhase:    PhaseIndividualRanking,
			TournamentRound:    1,
			ParticipantUserIDs: append([]string(nil), roster...),
			DateStart:          cfg.StartDate,
			DateEnd:            cfg.StartDate.Add(cfg.MatchDuration),
			VenueLabel:         cfg.VenueLabel,
			MatchFormat:        PhaseIndividualRanking,
			TotalRounds:        totalRounds,
		},
	}
}
