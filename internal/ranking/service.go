// internal/ranking/service.go
// RankingService is the entry point SessionFinalizer calls: resolve a
// strategy, compute RankGroups, and flatten them into the legacy per-user
// shape persisted in game_results (§3.4, §4.8).

package ranking

// LegacyRankingEntry is one row of game_results.derived_rankings /
// performance_rankings.
type LegacyRankingEntry struct {
	UserID          string  `json:"user_id"`
	Rank            int     `json:"rank"`
	FinalValue      float64 `json:"final_value"`
	MeasurementUnit string  `json:"measurement_unit"`
	IsTied          bool    `json:"is_tied"`
}

// Service wraps the strategy factory with the conversions finalizers need.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// CalculateRankings resolves the strategy for scoringType and computes
// RankGroups, forwarding the ranking_direction override exactly as received.
func (s *Service) CalculateRankings(scoringType string, rounds RoundResults, participants []string, directionOverride Direction) ([]RankGroup, error) {
	strategy, err := NewStrategy(scoringType)
	if err != nil {
		return nil, err
	}
	return strategy.CalculateRankings(rounds, participants, directionOverride), nil
}

// AggregationLabel reports the label that must be written into
// game_results.aggregation_method for the given scoring type and direction.
func (s *Service) AggregationLabel(scoringType string, directionOverride Direction) (string, error) {
	strategy, err := NewStrategy(scoringType)
	if err != nil {
		return "", err
	}
	return strategy.AggregationLabel(directionOverride), nil
}

// ConvertToLegacyFormat flattens RankGroups into the per-user
// performance_rankings/wins_rankings pair persisted in game_results.
// wins_rankings is reserved for a future "most wins" tie-break variant and
// stays empty for now.
func (s *Service) ConvertToLegacyFormat(groups []RankGroup, measurementUnit string) (performance []LegacyRankingEntry, wins []LegacyRankingEntry) {
	for _, g := range groups {
		for _, userID := range g.Participants {
			performance = append(performance, LegacyRankingEntry{
				UserID:          userID,
				Rank:            g.Rank,
				FinalValue:      g.FinalValue,
				MeasurementUnit: measurementUnit,
				IsTied:          g.IsTied(),
			})
		}
	}
	return performance, []LegacyRankingEntry{}
}
