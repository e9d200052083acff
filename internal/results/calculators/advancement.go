// internal/results/calculators/advancement.go
// Advancement Calculator (§4.5): generalized crossover seeding from N group
// tables into the first knockout round.

package calculators

import "sort"

// KnockoutSlot is one round-1 knockout session awaiting seeding.
type KnockoutSlot struct {
	SessionID string
	Round     int
}

// SeedingResult describes how many round-1 sessions were updated and with
// which participant pairs, keyed by SessionID.
type SeedingResult struct {
	SessionsUpdated int
	Pairings        map[string][2]string
	Qualified       []string
}

// CalculateAdvancement implements the crossover-seeding algorithm. Groups
// are walked in ascending group_identifier order; top_n is inferred as
// total_qualifiers / num_groups (§4.5 step 2), where total_qualifiers is
// twice the number of round-1 slots. Returns an empty SeedingResult (0
// sessions updated) if that division isn't exact or a group is short of
// rows for the inferred top_n.
func CalculateAdvancement(standings map[string][]StandingsRow, roundOneSlots []KnockoutSlot) SeedingResult {
	s := len(roundOneSlots)
	q := 2 * s
	if s == 0 || len(standings) == 0 {
		return SeedingResult{Pairings: map[string][2]string{}}
	}

	var groupIDs []string
	for g := range standings {
		groupIDs = append(groupIDs, g)
	}
	sort.Strings(groupIDs)

	if q%len(groupIDs) != 0 {
		return SeedingResult{Pairings: map[string][2]string{}}
	}
	topN := q / len(groupIDs)

	// Build the seeded list rank-first across groups:
	// [G1.r1, G2.r1, ..., GN.r1, G1.r2, G2.r2, ..., GN.r2, ...]
	var seeded []string
	for rank := 0; rank < topN; rank++ {
		for _, g := range groupIDs {
			rows := standings[g]
			if rank >= len(rows) {
				return SeedingResult{Pairings: map[string][2]string{}}
			}
			seeded = append(seeded, rows[rank].UserID)
		}
	}

	if len(seeded) != q {
		return SeedingResult{Pairings: map[string][2]string{}}
	}

	// roundOneSlots must already be ordered (tournament_round, id) by the
	// caller — the repository layer's ListKnockoutRoundOne query provides
	// this ordering.
	pairings := make(map[string][2]string, s)
	for i, slot := range roundOneSlots {
		pairings[slot.SessionID] = [2]string{seeded[i], seeded[q-1-i]}
	}

	return SeedingResult{
		SessionsUpdated: s,
		Pairings:        pairings,
		Qualified:       seeded,
	}
}
