package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func runWithRole(t *testing.T, handler gin.HandlerFunc, role string, roleSet bool) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if roleSet {
		c.Set("user_role", role)
	}
	handler(c)
	return w
}

func TestRequireAnyRole_AllowsMatchingRole(t *testing.T) {
	w := runWithRole(t, RequireAnyRole("admin", "instructor"), "instructor", true)
	assert.NotEqual(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyRole_RejectsNonMatchingRole(t *testing.T) {
	w := runWithRole(t, RequireAnyRole("admin"), "participant", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAnyRole_RejectsWhenRoleUnset(t *testing.T) {
	w := runWithRole(t, RequireAnyRole("admin"), "", false)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminOrInstructor_AllowsAdmin(t *testing.T) {
	w := runWithRole(t, RequireAdminOrInstructor(), "admin", true)
	assert.NotEqual(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminOrInstructor_RejectsParticipant(t *testing.T) {
	w := runWithRole(t, RequireAdminOrInstructor(), "participant", true)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
