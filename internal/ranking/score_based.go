// internal/ranking/score_based.go

package ranking

// ScoreBasedStrategy ranks by summed score: higher is better by default.
// Unlike TimeBased/RoundsBased, aggregation never flips with direction —
// only the sort order does.
type ScoreBasedStrategy struct{}

func (ScoreBasedStrategy) AggregateValue(values []float64) float64 {
	return applyAggregation(aggSum, values)
}

func (ScoreBasedStrategy) SortDirection() Direction {
	return Desc
}

func (ScoreBasedStrategy) AggregationLabel(Direction) string {
	return aggregationLabel(aggSum)
}

func (s ScoreBasedStrategy) CalculateRankings(rounds RoundResults, participants []string, directionOverride Direction) []RankGroup {
	dir := resolvedDirection(s.SortDirection(), directionOverride)
	return calculateRankings(rounds, participants, dir, aggSum)
}

// DistanceBasedStrategy behaves identically to ScoreBasedStrategy (§4.1).
type DistanceBasedStrategy struct {
	ScoreBasedStrategy
}
