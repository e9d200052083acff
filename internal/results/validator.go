// internal/results/validator.go
// Result Validator (§4.7): roster gating and batch integrity checks applied
// before any result is accepted for a session.

package results

import "sort"

// Validator checks a raw submission against the tournament roster and
// session state before the Processor ever runs.
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateUsersEnrolled rejects any submission whose user_ids are not a
// subset of the tournament's active-approved user_ids (§8.1 roster gating).
func (v *Validator) ValidateUsersEnrolled(userIDs []string, activeApprovedUserIDs []string) error {
	allowed := make(map[string]bool, len(activeApprovedUserIDs))
	for _, id := range activeApprovedUserIDs {
		allowed[id] = true
	}

	var offending []string
	for _, id := range userIDs {
		if !allowed[id] {
			offending = append(offending, id)
		}
	}
	if len(offending) > 0 {
		sort.Strings(offending)
		return invalid("submitted user_ids are not all actively enrolled", map[string]interface{}{"offending_user_ids": offending})
	}
	return nil
}

// ValidateRanksUnique checks that a batch of INDIVIDUAL_RANKING placements
// are unique integers 1..len(batch).
func (v *Validator) ValidateRanksUnique(ranks []int) error {
	seen := make(map[int]bool, len(ranks))
	var duplicates []int
	for _, r := range ranks {
		if seen[r] {
			duplicates = append(duplicates, r)
			continue
		}
		seen[r] = true
	}
	if len(duplicates) > 0 {
		return invalid("duplicate ranks in submission", map[string]interface{}{"duplicate_ranks": duplicates})
	}
	for i := 1; i <= len(ranks); i++ {
		if !seen[i] {
			return invalid("ranks must be unique integers from 1..N", map[string]interface{}{"missing_rank": i})
		}
	}
	return nil
}

// SessionState is the subset of session/tournament state the validator
// needs to decide whether results may currently be accepted.
type SessionState struct {
	TournamentStatus   string // must be ONGOING or IN_PROGRESS
	GameResultsWritten bool   // session.game_results must be NULL
}

// ValidateAcceptsResults checks the session/tournament are in a state that
// accepts new results (§4.7).
func (v *Validator) ValidateAcceptsResults(state SessionState) error {
	if state.GameResultsWritten {
		return invalid("session has already been finalized", nil)
	}
	if state.TournamentStatus != "ONGOING" && state.TournamentStatus != "IN_PROGRESS" {
		return invalid("tournament is not in a result-accepting state", map[string]interface{}{"tournament_status": state.TournamentStatus})
	}
	return nil
}
