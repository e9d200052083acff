// internal/results/calculators/standings.go
// Standings Calculator (§4.4): group-stage tables with football tiebreak
// rules (points, then goal difference, then goals for).

package calculators

import "sort"

// GroupMatch is one completed HEAD_TO_HEAD group-stage session reduced to
// what standings need.
type GroupMatch struct {
	GroupIdentifier string
	ParticipantA    string
	ScoreA          int
	ParticipantB    string
	ScoreB          int
}

// StandingsRow is one line of a group table.
type StandingsRow struct {
	UserID         string
	Name           string
	Points         int
	Wins           int
	Draws          int
	Losses         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	MatchesPlayed  int
	Rank           int
}

// CalculateGroupStandings builds one table per group_identifier.
// allParticipants seeds every participant with a zero-match row (from
// session.participant_user_ids) so players with no completed matches yet
// still appear in the table. names resolves each user_id to its display
// name; a user_id missing from names keeps an empty Name.
func CalculateGroupStandings(matches []GroupMatch, allParticipants map[string][]string, names map[string]string) map[string][]StandingsRow {
	tables := make(map[string]map[string]*StandingsRow)

	ensure := func(group, userID string) *StandingsRow {
		if tables[group] == nil {
			tables[group] = make(map[string]*StandingsRow)
		}
		row, ok := tables[group][userID]
		if !ok {
			row = &StandingsRow{UserID: userID, Name: names[userID]}
			tables[group][userID] = row
		}
		return row
	}

	for group, userIDs := range allParticipants {
		for _, userID := range userIDs {
			ensure(group, userID)
		}
	}

	for _, m := range matches {
		a := ensure(m.GroupIdentifier, m.ParticipantA)
		b := ensure(m.GroupIdentifier, m.ParticipantB)

		a.MatchesPlayed++
		b.MatchesPlayed++
		a.GoalsFor += m.ScoreA
		a.GoalsAgainst += m.ScoreB
		b.GoalsFor += m.ScoreB
		b.GoalsAgainst += m.ScoreA

		switch {
		case m.ScoreA > m.ScoreB:
			a.Points += 3
			a.Wins++
			b.Losses++
		case m.ScoreB > m.ScoreA:
			b.Points += 3
			b.Wins++
			a.Losses++
		default:
			a.Points++
			b.Points++
			a.Draws++
			b.Draws++
		}
	}

	result := make(map[string][]StandingsRow, len(tables))
	for group, byUser := range tables {
		rows := make([]StandingsRow, 0, len(byUser))
		for _, row := range byUser {
			row.GoalDifference = row.GoalsFor - row.GoalsAgainst
			rows = append(rows, *row)
		}
		sort.Slice(rows, func(i, j int) bool {
			if rows[i].Points != rows[j].Points {
				return rows[i].Points > rows[j].Points
			}
			if rows[i].GoalDifference != rows[j].GoalDifference {
				return rows[i].GoalDifference > rows[j].GoalDifference
			}
			if rows[i].GoalsFor != rows[j].GoalsFor {
				return rows[i].GoalsFor > rows[j].GoalsFor
			}
			return rows[i].UserID < rows[j].UserID
		})
		assignTieSkipRanks(rows)
		result[group] = rows
	}
	return result
}

func assignTieSkipRanks(rows []StandingsRow) {
	rank := 1
	i := 0
	for i < len(rows) {
		j := i + 1
		for j < len(rows) &&
			rows[j].Points == rows[i].Points &&
			rows[j].GoalDifference == rows[i].GoalDifference &&
			rows[j].GoalsFor == rows[i].GoalsFor {
			j++
		}
		for k := i; k < j; k++ {
			rows[k].Rank = rank
		}
		rank += j - i
		i = j
	}
}
