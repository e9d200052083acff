package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/academy-platform/tournament-engine/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type strictPayload struct {
	Name string `json:"name"`
}

func newTestContext(method, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindStrict_RejectsUnknownField(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, `{"name":"alice","unexpected_field":1}`)

	var dst strictPayload
	err := bindStrict(c, &dst)

	assert.Error(t, err)
	appErr, ok := err.(*services.AppError)
	assert.True(t, ok)
	assert.Equal(t, services.KindInvalidSchema, appErr.Kind)
}

func TestBindStrict_AcceptsKnownFields(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, `{"name":"alice"}`)

	var dst strictPayload
	err := bindStrict(c, &dst)

	assert.NoError(t, err)
	assert.Equal(t, "alice", dst.Name)
}

func TestBindStrict_EmptyBodyIsNotAnError(t *testing.T) {
	c, _ := newTestContext(http.MethodPost, "")

	var dst strictPayload
	err := bindStrict(c, &dst)
	assert.NoError(t, err)
}

func TestRespondError_AppErrorMapsToItsStatus(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")

	respondError(c, services.NewAppError(services.KindConflict, "already enrolled", map[string]interface{}{"user_id": "u1"}))

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already enrolled")
	assert.Contains(t, w.Body.String(), "u1")
}

func TestRespondError_PlainNotFoundBridgesTo404(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")

	respondError(c, fmt.Errorf("tournament not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NotFound")
}

func TestRespondError_UnrecognizedErrorIsInternal(t *testing.T) {
	c, w := newTestContext(http.MethodGet, "")

	respondError(c, errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCurrentUser_ReadsContextValuesSetByAuthMiddleware(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "")
	c.Set("user_id", "u-123")
	c.Set("user_role", "instructor")

	userID, role := currentUser(c)
	assert.Equal(t, "u-123", userID)
	assert.Equal(t, "instructor", role)
}

func TestCurrentUser_EmptyWhenUnset(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "")
	userID, role := currentUser(c)
	assert.Empty(t, userID)
	assert.Empty(t, role)
}
