// internal/schedule/group_knockout.go
// Group-stage-plus-knockout hybrid (§4.6): partition roster into groups,
// round-robin each group, then a knockout shell of the correct depth.

package schedule

import (
	"strconv"
	"time"
)

func generateGroupKnockout(cfg Config, roster []string) []SessionPlan {
	groups := cfg.NumberOfGroups
	if groups < 1 {
		groups = 1
	}

	partitions := partitionRoster(roster, groups)

	var plans []SessionPlan
	for gi, members := range partitions {
		groupID := groupLabel(gi)
		groupPlans := generateLeague(cfg, members)
		for i := range groupPlans {
			groupPlans[i].GroupIdentifier = groupID
			groupPlans[i].Title = "Group " + groupID + " - " + groupPlans[i].Title
		}
		plans = append(plans, groupPlans...)
	}

	// Knockout shell sized to accept topN qualifiers per group. topN=2 is
	// the default (§4.5); the shell size is derived from groups*2
	// qualifiers.
	qualifiers := groups * 2
	shellRoster := make([]string, qualifiers)
	for i := range shellRoster {
		shellRoster[i] = "seed-pending-" + strconv.Itoa(i+1)
	}
	knockoutPlans := generateKnockout(cfg, shellRoster)
	for i := range knockoutPlans {
		// Knockout shell sessions start with no participants; advancement
		// seeding (§4.5) fills round-1 slots after the group stage finalizes.
		knockoutPlans[i].ParticipantUserIDs = nil
		knockoutPlans[i].DateStart = knockoutPlans[i].DateStart.Add(time.Duration(len(roster)) * 24 * time.Hour)
		knockoutPlans[i].DateEnd = knockoutPlans[i].DateEnd.Add(time.Duration(len(roster)) * 24 * time.Hour)
	}
	plans = append(plans, knockoutPlans...)

	return plans
}

func partitionRoster(roster []string, groups int) [][]string {
	partitions := make([][]string, groups)
	for i, userID := range roster {
		g := i % groups
		partitions[g] = append(partitions[g], userID)
	}
	return partitions
}

func groupLabel(index int) string {
	return string(rune('A' + index))
}
