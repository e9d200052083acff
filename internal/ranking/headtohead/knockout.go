// internal/ranking/headtohead/knockout.go
// Single-elimination knockout ranking (§4.3): rank by the furthest round
// reached, then by outcome in that round (champion > runner-up > eliminated
// earlier), then by the score posted in that deciding match.

package headtohead

import "sort"

const (
	classChampion = 2
	classRunnerUp = 1
	classLoss     = 0
)

// KnockoutEntry is one player's furthest-progress record.
type KnockoutEntry struct {
	UserID           string
	RoundReached     int
	ResultPriority   int // classChampion / classRunnerUp / classLoss
	EliminationScore float64
	Rank             int
}

// KnockoutStandings ranks every participant that appears in at least one
// completed knockout match.
func KnockoutStandings(matches []MatchRecord) []KnockoutEntry {
	maxRound := 0
	for _, m := range matches {
		if m.Round > maxRound {
			maxRound = m.Round
		}
	}

	byUser := make(map[string]*KnockoutEntry)
	for _, m := range matches {
		for _, p := range m.Participants {
			e, ok := byUser[p.UserID]
			if !ok {
				e = &KnockoutEntry{UserID: p.UserID}
				byUser[p.UserID] = e
			}
			if m.Round < e.RoundReached {
				continue
			}

			class := classLoss
			if p.Result == ResultWin {
				if m.Round == maxRound {
					class = classChampion
				} else {
					// Still alive going into a later round; provisional,
					// may be superseded by a deeper match below.
					class = classChampion
				}
			} else if m.Round == maxRound {
				class = classRunnerUp
			}

			if m.Round > e.RoundReached || (m.Round == e.RoundReached && class > e.ResultPriority) {
				e.RoundReached = m.Round
				e.ResultPriority = class
				e.EliminationScore = p.Score
			}
		}
	}

	entries := make([]KnockoutEntry, 0, len(byUser))
	for _, e := range byUser {
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].RoundReached != entries[j].RoundReached {
			return entries[i].RoundReached > entries[j].RoundReached
		}
		if entries[i].ResultPriority != entries[j].ResultPriority {
			return entries[i].ResultPriority > entries[j].ResultPriority
		}
		if entries[i].EliminationScore != entries[j].EliminationScore {
			return entries[i].EliminationScore > entries[j].EliminationScore
		}
		return entries[i].UserID < entries[j].UserID
	})

	rank := 1
	i := 0
	for i < len(entries) {
		j := i + 1
		for j < len(entries) &&
			entries[j].RoundReached == entries[i].RoundReached &&
			entries[j].ResultPriority == entries[i].ResultPriority &&
			entries[j].EliminationScore == entries[i].EliminationScore {
			j++
		}
		for k := i; k < j; k++ {
			entries[k].Rank = rank
		}
		rank += j - i
		i = j
	}

	return entries
}
