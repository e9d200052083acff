// internal/schedule/knockout.go
// Single-elimination bracket generation with byes for top seeds (§4.6).
// tournament_round = 1 is the first round, furthest from the final.

package schedule

import (
	"strconv"
	"time"
)

func nextPowerOfTwo(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}

func generateKnockout(cfg Config, roster []string) []SessionPlan {
	n := len(roster)
	if n < 2 {
		return nil
	}
	size := nextPowerOfTwo(n)
	totalRounds := 0
	for s := size; s > 1; s /= 2 {
		totalRounds++
	}

	// Standard bracket seeding order for `size` slots, 1-indexed seed
	// positions, byes fill the tail seeds.
	seedOrder := bracketSeedOrder(size)
	slots := make([]string, size)
	for i, seed := range seedOrder {
		if seed <= n {
			slots[i] = roster[seed-1]
		} else {
			slots[i] = byeMarker
		}
	}

	fields := cfg.ParallelFields
	if fields < 1 {
		fields = 1
	}

	var plans []SessionPlan
	roundStart := cfg.StartDate
	round1Matches := size / 2

	for i := 0; i < round1Matches; i++ {
		p1 := slots[2*i]
		p2 := slots[2*i+1]

		slot := i / fields
		offset := time.Duration(slot) * (cfg.MatchDuration + cfg.BreakDuration)
		start := roundStart.Add(offset)

		participants := []string{}
		if p1 != byeMarker {
			participants = append(participants, p1)
		}
		if p2 != byeMarker {
			participants = append(participants, p2)
		}

		plans = append(plans, SessionPlan{
			Title:              "Round 1 - Match " + strconv.Itoa(i+1),
			TournamentPhase:    PhaseKnockout,
			TournamentRound:    1,
			ParticipantUserIDs: participants,
			DateStart:          start,
			DateEnd:            start.Add(cfg.MatchDuration),
			VenueLabel:         cfg.VenueLabel,
			MatchFormat:        "HEAD_TO_HEAD",
		})
	}

	// Deeper rounds start empty (participants filled in by bracket
	// progression as earlier rounds complete); still created up-front so
	// the full shell exists for scheduling/display purposes.
	matchesInRound := round1Matches / 2
	for round := 2; round <= totalRounds; round++ {
		dayOffset := time.Duration(round-1) * 24 * time.Hour
		for i := 0; i < matchesInRound; i++ {
			start := roundStart.Add(dayOffset)
			plans = append(plans, SessionPlan{
				Title:              "Round " + strconv.Itoa(round) + " - Match " + strconv.Itoa(i+1),
				TournamentPhase:    PhaseKnockout,
				TournamentRound:    round,
				ParticipantUserIDs: nil,
				DateStart:          start,
				DateEnd:            start.Add(cfg.MatchDuration),
				VenueLabel:         cfg.VenueLabel,
				MatchFormat:        "HEAD_TO_HEAD",
			})
		}
		matchesInRound /= 2
	}

	return plans
}

// bracketSeedOrder returns the standard single-elimination seed placement
// for a bracket of the given power-of-two size, e.g. for size=8:
// [1,8,4,5,2,7,3,6].
func bracketSeedOrder(size int) []int {
	order := []int{1, 2}
	for len(order) < size {
		next := make([]int, 0, len(order)*2)
		total := len(order)*2 + 1
		for _, seed := range order {
			next = append(next, seed, total-seed)
		}
		order = next
	}
	return order
}
