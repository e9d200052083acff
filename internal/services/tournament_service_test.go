package services

import (
	"testing"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestIsPermittedTransition_AllowedEdges(t *testing.T) {
	cases := []struct {
		from, to models.TournamentStatus
	}{
		{models.StatusDraft, models.StatusSeekingInstructor},
		{models.StatusDraft, models.StatusReadyForEnrollment},
		{models.StatusDraft, models.StatusCancelled},
		{models.StatusSeekingInstructor, models.StatusReadyForEnrollment},
		{models.StatusReadyForEnrollment, models.StatusOngoing},
		{models.StatusOngoing, models.StatusInProgress},
		{models.StatusOngoing, models.StatusCancelled},
		{models.StatusInProgress, models.StatusCancelled},
	}
	for _, c := range cases {
		assert.True(t, isPermittedTransition(c.from, c.to), "from=%s to=%s", c.from, c.to)
	}
}

func TestIsPermittedTransition_RejectsSkippingStages(t *testing.T) {
	assert.False(t, isPermittedTransition(models.StatusDraft, models.StatusOngoing))
	assert.False(t, isPermittedTransition(models.StatusDraft, models.StatusInProgress))
	assert.False(t, isPermittedTransition(models.StatusSeekingInstructor, models.StatusOngoing))
}

func TestIsPermittedTransition_FinalizationEdgeIsNeverDirectlyPermitted(t *testing.T) {
	// IN_PROGRESS -> COMPLETED may only happen through FinalizerService.
	assert.False(t, isPermittedTransition(models.StatusInProgress, models.StatusCompleted))
}

func TestIsPermittedTransition_TerminalStatesHaveNoOutboundEdges(t *testing.T) {
	assert.False(t, isPermittedTransition(models.StatusCompleted, models.StatusOngoing))
	assert.False(t, isPermittedTransition(models.StatusCancelled, models.StatusDraft))
}
