// internal/ranking/time_based.go

package ranking

// TimeBasedStrategy ranks by elapsed time: lower is better by default.
// Direction is override-sensitive: flipping to DESC also flips the
// aggregation from min to max.
type TimeBasedStrategy struct{}

func (TimeBasedStrategy) AggregateValue(values []float64) float64 {
	return applyAggregation(aggMin, values)
}

func (TimeBasedStrategy) SortDirection() Direction {
	return Asc
}

func (s TimeBasedStrategy) AggregationLabel(directionOverride Direction) string {
	dir := resolvedDirection(s.SortDirection(), directionOverride)
	if dir == Desc {
		return aggregationLabel(aggMax)
	}
	return aggregationLabel(aggMin)
}

func (s TimeBasedStrategy) CalculateRankings(rounds RoundResults, participants []string, directionOverride Direction) []RankGroup {
	dir := resolvedDirection(s.SortDirection(), directionOverride)
	kind := aggMin
	if dir == Desc {
		kind = aggMax
	}
	return calculateRankings(rounds, participants, dir, kind)
}
