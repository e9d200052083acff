// internal/ranking/strategy.go
// Strategy interface and shared aggregation/ranking plumbing for
// individual-ranking scoring types (§4.1).

package ranking

// RoundResults is round_number (string) -> user_id (string) -> raw measured value.
type RoundResults map[string]map[string]string

// Strategy is a pure value object over one scoring type. Implementations
// must not hold mutable state or reach outside the package.
type Strategy interface {
	// AggregateValue reduces per-round values for one participant to a
	// single final value, using this strategy's default direction.
	AggregateValue(values []float64) float64

	// SortDirection is this strategy's hardcoded default direction.
	SortDirection() Direction

	// AggregationLabel is the label written into game_results.aggregation_method,
	// given an optional direction override ("" means no override).
	AggregationLabel(directionOverride Direction) string

	// CalculateRankings aggregates round_results per participant and
	// produces tie-skip-ranked groups in the resolved direction.
	CalculateRankings(rounds RoundResults, participants []string, directionOverride Direction) []RankGroup
}

func resolvedDirection(def Direction, override Direction) Direction {
	if override == Asc || override == Desc {
		return override
	}
	return def
}

func collectValues(rounds RoundResults, userID string) []float64 {
	var values []float64
	for _, roundUsers := range rounds {
		raw, present := roundUsers[userID]
		if !present {
			continue
		}
		if v, ok := ParseMeasuredValue(raw); ok {
			values = append(values, v)
		}
	}
	return values
}

// aggregationKind is the family of reduction a strategy applies.
type aggregationKind int

const (
	aggMin aggregationKind = iota
	aggMax
	aggSum
)

func applyAggregation(kind aggregationKind, values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	switch kind {
	case aggMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case aggMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default: // aggSum
		var s float64
		for _, v := range values {
			s += v
		}
		return s
	}
}

func aggregationLabel(kind aggregationKind) string {
	switch kind {
	case aggMin:
		return "MIN_VALUE"
	case aggMax:
		return "MAX_VALUE"
	default:
		return "SUM"
	}
}

// calculateRankings is the shared engine used by every strategy: aggregate
// per participant with the given aggregation kind (participants with no
// parseable value are left out), then tie-skip rank in the given direction.
func calculateRankings(rounds RoundResults, participants []string, direction Direction, kind aggregationKind) []RankGroup {
	values := make(map[string]float64)
	for _, userID := range participants {
		raw := collectValues(rounds, userID)
		if len(raw) == 0 {
			continue
		}
		values[userID] = applyAggregation(kind, raw)
	}
	return GroupByValue(values, direction)
}
