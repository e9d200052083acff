package results

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsersEnrolled_RejectsUnapprovedUser(t *testing.T) {
	v := NewValidator()
	err := v.ValidateUsersEnrolled([]string{"a", "b"}, []string{"a"})
	assert.Error(t, err)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"b"}, verr.Detail["offending_user_ids"])
}

func TestValidateUsersEnrolled_AllowsSubset(t *testing.T) {
	v := NewValidator()
	err := v.ValidateUsersEnrolled([]string{"a"}, []string{"a", "b", "c"})
	assert.NoError(t, err)
}

func TestValidateRanksUnique_RejectsDuplicates(t *testing.T) {
	v := NewValidator()
	err := v.ValidateRanksUnique([]int{1, 2, 2})
	assert.Error(t, err)
}

func TestValidateRanksUnique_RejectsGap(t *testing.T) {
	v := NewValidator()
	err := v.ValidateRanksUnique([]int{1, 3})
	assert.Error(t, err)
}

func TestValidateRanksUnique_AcceptsContiguousRanks(t *testing.T) {
	v := NewValidator()
	err := v.ValidateRanksUnique([]int{3, 1, 2})
	assert.NoError(t, err)
}

func TestValidateAcceptsResults_RejectsAlreadyFinalized(t *testing.T) {
	v := NewValidator()
	err := v.ValidateAcceptsResults(SessionState{TournamentStatus: "ONGOING", GameResultsWritten: true})
	assert.Error(t, err)
}

func TestValidateAcceptsResults_RejectsWrongTournamentStatus(t *testing.T) {
	v := NewValidator()
	err := v.ValidateAcceptsResults(SessionState{TournamentStatus: "DRAFT"})
	assert.Error(t, err)
}

func TestValidateAcceptsResults_AcceptsOngoingOrInProgress(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateAcceptsResults(SessionState{TournamentStatus: "ONGOING"}))
	assert.NoError(t, v.ValidateAcceptsResults(SessionState{TournamentStatus: "IN_PROGRESS"}))
}
