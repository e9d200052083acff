// internal/api/finalize_handlers.go
// Finalization HTTP handlers (§4.8): session, group-stage, tournament.

package api

import (
	"net/http"

	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleFinalizeSession closes one INDIVIDUAL_RANKING session
func HandleFinalizeSession(finalizer *services.FinalizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := currentUser(c)
		session, err := finalizer.FinalizeSession(c.Request.Context(), c.Param("sid"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": session})
	}
}

// finalizeTournamentRequest is the optional reason attached to the
// IN_PROGRESS -> COMPLETED transition.
type finalizeTournamentRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// HandleFinalizeGroupStage closes a HEAD_TO_HEAD group stage and seeds knockout
func HandleFinalizeGroupStage(finalizer *services.FinalizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		snapshot, err := finalizer.FinalizeGroupStage(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"enrollment_snapshot": snapshot})
	}
}

// HandleFinalizeTournament closes a tournament and triggers reward distribution
func HandleFinalizeTournament(finalizer *services.FinalizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req finalizeTournamentRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		userID, _ := currentUser(c)
		tournament, err := finalizer.FinalizeTournament(c.Request.Context(), c.Param("id"), userID, req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}
