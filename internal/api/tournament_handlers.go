// internal/api/tournament_handlers.go
// Tournament CRUD and lifecycle HTTP handlers

package api

import (
	"net/http"
	"strconv"

	"github.com/academy-platform/tournament-engine/internal/models"
	"github.com/academy-platform/tournament-engine/internal/repositories"
	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleCreateTournament creates a new DRAFT tournament
func HandleCreateTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.CreateTournamentRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		tournament, err := tournamentService.Create(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, gin.H{"tournament": tournament})
	}
}

// HandleGetTournament retrieves a single tournament
func HandleGetTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tournament, err := tournamentService.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleListTournaments lists tournaments with pagination and filters
func HandleListTournaments(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		filter := repositories.ListFilter{
			Page:                 page,
			Limit:                limit,
			Status:               c.Query("status"),
			SpecializationFamily: c.Query("specialization_family"),
			AgeGroup:             c.Query("age_group"),
			Search:               c.Query("search"),
		}

		tournaments, total, err := tournamentService.List(c.Request.Context(), filter)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"tournaments": tournaments,
			"total":       total,
			"page":        filter.Page,
			"limit":       filter.Limit,
		})
	}
}

// HandleUpdateTournament applies a partial update to a tournament
func HandleUpdateTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.UpdateTournamentRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		tournament, err := tournamentService.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleDeleteTournament hard-deletes a tournament and its cascading rows
func HandleDeleteTournament(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := tournamentService.Delete(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// changeStatusRequest is the strict-schema body for PATCH .../status
type changeStatusRequest struct {
	Status models.TournamentStatus `json:"status"`
	Reason *string                 `json:"reason,omitempty"`
}

// HandleChangeTournamentStatus drives the lifecycle state machine (§4.9)
func HandleChangeTournamentStatus(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req changeStatusRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		userID, _ := currentUser(c)
		tournament, err := tournamentService.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status, userID, req.Reason)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"tournament": tournament})
	}
}

// HandleGetStatusHistory returns the full transition audit trail
func HandleGetStatusHistory(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		history, err := tournamentService.StatusHistory(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status_history": history})
	}
}

// HandleGetTournamentSummary returns the cross-cutting progress snapshot
func HandleGetTournamentSummary(tournamentService *services.TournamentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := tournamentService.Summary(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}
