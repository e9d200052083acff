// internal/api/result_handlers.go
// Result submission HTTP handlers (§4.7).

package api

import (
	"net/http"
	"strconv"

	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// HandleSubmitResults writes a structured HEAD_TO_HEAD-family result batch
func HandleSubmitResults(resultService *services.ResultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.SubmitResultsRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		session, err := resultService.SubmitResults(c.Request.Context(), c.Param("sid"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": session})
	}
}

// HandleSubmitRound writes one INDIVIDUAL_RANKING round's measurements
func HandleSubmitRound(resultService *services.ResultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roundNumber, err := strconv.Atoi(c.Param("round"))
		if err != nil {
			respondError(c, services.NewAppError(services.KindInvalidSchema, "round must be numeric", nil))
			return
		}

		var req services.SubmitRoundRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		session, err := resultService.SubmitRound(c.Request.Context(), c.Param("sid"), roundNumber, req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"session": session})
	}
}

// HandleGetRounds returns a session's rounds_data status
func HandleGetRounds(resultService *services.ResultService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rounds, err := resultService.Rounds(c.Request.Context(), c.Param("sid"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"rounds_data": rounds})
	}
}
