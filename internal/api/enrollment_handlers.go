// internal/api/enrollment_handlers.go
// Tournament roster HTTP handlers: enroll, unenroll, admin batch-enroll.

package api

import (
	"net/http"

	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// enrollRequest lets an admin enroll on behalf of another user; a plain
// participant enrolling themselves omits user_id and the token's subject
// is used instead.
type enrollRequest struct {
	UserID string `json:"user_id,omitempty"`
}

// HandleEnroll creates or reactivates a pending enrollment request
func HandleEnroll(enrollmentService *services.EnrollmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req enrollRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		userID, _ := currentUser(c)
		if req.UserID != "" {
			userID = req.UserID
		}

		enrollment, err := enrollmentService.Enroll(c.Request.Context(), c.Param("id"), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"enrollment": enrollment})
	}
}

// HandleUnenroll cancels a user's enrollment
func HandleUnenroll(enrollmentService *services.EnrollmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req enrollRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		userID, _ := currentUser(c)
		if req.UserID != "" {
			userID = req.UserID
		}

		if err := enrollmentService.Unenroll(c.Request.Context(), c.Param("id"), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// HandleListRoster returns the full enrollment list for a tournament
func HandleListRoster(enrollmentService *services.EnrollmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		roster, err := enrollmentService.ListRoster(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"roster": roster})
	}
}

// HandleBatchEnroll admits a batch of users directly into approved/active
// status (admin operation, bypasses the pending step)
func HandleBatchEnroll(enrollmentService *services.EnrollmentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req services.BatchEnrollRequest
		if err := bindStrict(c, &req); err != nil {
			respondError(c, err)
			return
		}

		result, err := enrollmentService.BatchEnroll(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
