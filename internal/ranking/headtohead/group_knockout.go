// internal/ranking/headtohead/group_knockout.go
// Two-phase hybrid ranking (§4.3): knockout-phase participants rank first
// by their knockout position, then group-only participants are appended in
// (group_rank asc, group_identifier asc) order.

package headtohead

import "sort"

// GroupOnlyEntry is a participant who took part in the group stage but
// never reached the knockout phase.
type GroupOnlyEntry struct {
	UserID          string
	GroupIdentifier string
	GroupRank       int
}

// CombinedEntry is one row of the final group_knockout ranking.
type CombinedEntry struct {
	UserID string
	Rank   int
}

// GroupKnockoutStandings merges knockout standings (from knockoutMatches)
// with group-only participants (groupOnly, already carrying their
// within-group rank from the Standings Calculator) into one ranking.
func GroupKnockoutStandings(knockoutMatches []MatchRecord, groupOnly []GroupOnlyEntry) []CombinedEntry {
	knockout := KnockoutStandings(knockoutMatches)

	var combined []CombinedEntry
	for _, e := range knockout {
		combined = append(combined, CombinedEntry{UserID: e.UserID, Rank: e.Rank})
	}

	sorted := append([]GroupOnlyEntry(nil), groupOnly...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].GroupRank != sorted[j].GroupRank {
			return sorted[i].GroupRank < sorted[j].GroupRank
		}
		return sorted[i].GroupIdentifier < sorted[j].GroupIdentifier
	})

	next := len(combined) + 1
	for _, e := range sorted {
		combined = append(combined, CombinedEntry{UserID: e.UserID, Rank: next})
		next++
	}

	return combined
}
