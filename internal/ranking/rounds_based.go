// internal/ranking/rounds_based.go

package ranking

// RoundsBasedStrategy ranks by accumulated rounds/points: higher is better
// by default. Direction is override-sensitive like TimeBasedStrategy, but
// inverted (ASC override flips the aggregation to min).
type RoundsBasedStrategy struct{}

func (RoundsBasedStrategy) AggregateValue(values []float64) float64 {
	return applyAggregation(aggMax, values)
}

func (RoundsBasedStrategy) SortDirection() Direction {
	return Desc
}

func (s RoundsBasedStrategy) AggregationLabel(directionOverride Direction) string {
	dir := resolvedDirection(s.SortDirection(), directionOverride)
	if dir == Asc {
		return aggregationLabel(aggMin)
	}
	return aggregationLabel(aggMax)
}

func (s RoundsBasedStrategy) CalculateRankings(rounds RoundResults, participants []string, directionOverride Direction) []RankGroup {
	dir := resolvedDirection(s.SortDirection(), directionOverride)
	kind := aggMax
	if dir == Asc {
		kind = aggMin
	}
	return calculateRankings(rounds, participants, dir, kind)
}
