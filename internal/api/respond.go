// internal/api/respond.go
// Shared request/response plumbing: strict-schema JSON binding and the
// AppError -> HTTP translation (§7).

package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/academy-platform/tournament-engine/internal/services"

	"github.com/gin-gonic/gin"
)

// bindStrict decodes the request body into dst, rejecting unknown fields
// with InvalidSchema rather than silently ignoring them.
func bindStrict(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil && err != io.EOF {
		return services.NewAppError(services.KindInvalidSchema, "request body does not match expected schema: "+err.Error(), nil)
	}
	return nil
}

// respondError writes the correct status code and structured body for any
// error the service layer returns. Repository-layer "not found" errors
// never pass through an AppError boundary, so they are detected here by
// message rather than threading a sentinel through every repository.
func respondError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	if strings.Contains(err.Error(), "not found") {
		appErr := services.NewAppError(services.KindNotFound, err.Error(), nil)
		c.JSON(http.StatusNotFound, gin.H{"error": appErr.Kind, "message": appErr.Message})
		return
	}

	var appErr *services.AppError
	if !errors.As(err, &appErr) {
		appErr = services.AsAppError(err)
	}
	status := services.KindToHTTPStatus(appErr.Kind)
	body := gin.H{"error": appErr.Kind, "message": appErr.Message}
	if appErr.Detail != nil {
		body["detail"] = appErr.Detail
	}
	c.JSON(status, body)
}

// currentUser pulls the authenticated user id and role set by RequireAuth.
func currentUser(c *gin.Context) (userID, role string) {
	if v, ok := c.Get("user_id"); ok {
		userID, _ = v.(string)
	}
	if v, ok := c.Get("user_role"); ok {
		role, _ = v.(string)
	}
	return
}
