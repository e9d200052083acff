// internal/ranking/headtohead/league.go
// Round-robin league standings: 3 points for a win, 1 for a draw, 0 for a
// loss, tiebreak by goal_difference then goals_for (§4.3).

package headtohead

import "sort"

// LeagueEntry is one player's accumulated league record.
type LeagueEntry struct {
	UserID         string
	Points         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Rank           int
}

// LeagueStandings aggregates every completed match across the tournament
// per player and ranks them with tie-skip semantics.
func LeagueStandings(matches []MatchRecord) []LeagueEntry {
	byUser := make(map[string]*LeagueEntry)

	order := func(userID string) *LeagueEntry {
		e, ok := byUser[userID]
		if !ok {
			e = &LeagueEntry{UserID: userID}
			byUser[userID] = e
		}
		return e
	}

	for _, m := range matches {
		a, b := m.Participants[0], m.Participants[1]
		ea, eb := order(a.UserID), order(b.UserID)

		ea.GoalsFor += int(a.Score)
		ea.GoalsAgainst += int(b.Score)
		eb.GoalsFor += int(b.Score)
		eb.GoalsAgainst += int(a.Score)

		switch {
		case a.Result == ResultWin:
			ea.Points += 3
			ea.Wins++
			eb.Losses++
		case b.Result == ResultWin:
			eb.Points += 3
			eb.Wins++
			ea.Losses++
		default:
			ea.Points++
			eb.Points++
			ea.Draws++
			eb.Draws++
		}
	}

	entries := make([]LeagueEntry, 0, len(byUser))
	for _, e := range byUser {
		e.GoalDifference = e.GoalsFor - e.GoalsAgainst
		entries = append(entries, *e)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		if entries[i].GoalDifference != entries[j].GoalDifference {
			return entries[i].GoalDifference > entries[j].GoalDifference
		}
		if entries[i].GoalsFor != entries[j].GoalsFor {
			return entries[i].GoalsFor > entries[j].GoalsFor
		}
		return entries[i].UserID < entries[j].UserID
	})

	assignTieSkipRanks(entries)
	return entries
}

// assignTieSkipRanks assigns ranks to an already-sorted slice, grouping
// contiguous ties (equal points/goal_difference/goals_for) under one rank
// and skipping the next rank by the tied group's size.
func assignTieSkipRanks(entries []LeagueEntry) {
	rank := 1
	i := 0
	for i < len(entries) {
		j := i + 1
		for j < len(entries) &&
			entries[j].Points == entries[i].Points &&
			entries[j].GoalDifference == entries[i].GoalDifference &&
			entries[j].GoalsFor == entries[i].GoalsFor {
			j++
		}
		for k := i; k < j; k++ {
			entries[k].Rank = rank
		}
		rank += j - i
		i = j
	}
}
