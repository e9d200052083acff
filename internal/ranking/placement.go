// internal/ranking/placement.go

package ranking

// PlacementStrategy ranks by the sum of per-round placements: lower is
// better by default (fewer total placement points wins, like golf). The
// label is always SUM_PLACEMENT regardless of direction override.
//
// A generic strategy factory could fold PLACEMENT into ScoreBasedStrategy,
// but placement rankings need ASC/SUM_PLACEMENT behavior kept separate from
// that mapping, so it gets its own type rather than a shared one.
type PlacementStrategy struct{}

func (PlacementStrategy) AggregateValue(values []float64) float64 {
	return applyAggregation(aggSum, values)
}

func (PlacementStrategy) SortDirection() Direction {
	return Asc
}

func (PlacementStrategy) AggregationLabel(Direction) string {
	return "SUM_PLACEMENT"
}

func (s PlacementStrategy) CalculateRankings(rounds RoundResults, participants []string, directionOverride Direction) []RankGroup {
	dir := resolvedDirection(s.SortDirection(), directionOverride)
	return calculateRankings(rounds, participants, dir, aggSum)
}
