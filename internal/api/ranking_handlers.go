// internal/api/ranking_handlers.go
// Ranking and reward HTTP handlers (§4.10).

package api

import (
	"net/http"

	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleListRankings returns a tournament's persisted rankings
func HandleListRankings(finalizer *services.FinalizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rankings, err := finalizer.ListRankings(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rankings": rankings})
	}
}

// HandleCalculateRankings recomputes a HEAD_TO_HEAD tournament's standings
func HandleCalculateRankings(finalizer *services.FinalizerService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rankings, err := finalizer.RecalculateRankings(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rankings": rankings})
	}
}

// HandleDistributeRewards triggers (or re-triggers) the reward payout run.
// Idempotent: an already-distributed tournament returns its existing summary.
func HandleDistributeRewards(tournamentService *services.TournamentService, rewards *services.RewardOrchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournament, err := tournamentService.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		dist, err := rewards.Distribute(c.Request.Context(), tournament)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"reward_distribution": dist})
	}
}

// HandleGetDistributedRewards returns a tournament's reward distribution, if any
func HandleGetDistributedRewards(rewards *services.RewardOrchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		dist, err := rewards.GetByTournament(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		if dist == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "NotFound", "message": "no reward distribution for this tournament"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reward_distribution": dist})
	}
}
