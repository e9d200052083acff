// internal/schedule/league.go
// Round-robin schedule via the circle method (§4.6 League).

package schedule

import (
	"strconv"
	"time"
)

const byeMarker = ""

func generateLeague(cfg Config, roster []string) []SessionPlan {
	players := append([]string(nil), roster...)
	if len(players)%2 != 0 {
		players = append(players, byeMarker)
	}
	n := len(players)
	if n < 2 {
		return nil
	}
	rounds := n - 1
	half := n / 2

	var plans []SessionPlan
	fields := cfg.ParallelFields
	if fields < 1 {
		fields = 1
	}

	for round := 0; round < rounds; round++ {
		matchIndexInRound := 0
		for i := 0; i < half; i++ {
			p1 := players[i]
			p2 := players[n-1-i]
			if p1 == byeMarker || p2 == byeMarker {
				continue
			}

			pitch := matchIndexInRound % fields
			slot := matchIndexInRound / fields
			offset := time.Duration(slot) * (cfg.MatchDuration + cfg.BreakDuration)
			start := cfg.StartDate.Add(time.Duration(round)*24*time.Hour + offset)

			plans = append(plans, SessionPlan{
				Title:              leagueTitle(round, pitch),
				TournamentPhase:    PhaseGroupStage,
				TournamentRound:    round + 1,
				GroupIdentifier:    "",
				ParticipantUserIDs: []string{p1, p2},
				DateStart:          start,
				DateEnd:            start.Add(cfg.MatchDuration),
				VenueLabel:         cfg.VenueLabel,
				MatchFormat:        "HEAD_TO_HEAD",
			})
			matchIndexInRound++
		}

		// Rotate: keep players[0] fixed, rotate the rest one position.
		last := players[n-1]
		copy(players[2:], players[1:n-1])
		players[1] = last
	}

	return plans
}

func leagueTitle(round, pitch int) string {
	return "Round " + strconv.Itoa(round+1) + " - Field " + strconv.Itoa(pitch+1)
}
