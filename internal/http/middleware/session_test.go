package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"trailporter/internal/domain"
)

func roleRouter(role domain.Role, authenticated bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if authenticated {
		r.Use(func(c *gin.Context) {
			c.Set(ctxUserIDKey, "u1")
			c.Set(ctxUsernameKey, "user@example.com")
			c.Set(ctxRoleKey, role)
			c.Next()
		})
	}
	r.GET("/guarded", RequireRoles(domain.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func getGuarded(r *gin.Engine) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	return w.Code
}

func TestRequireRolesAnonymous(t *testing.T) {
	if code := getGuarded(roleRouter("", false)); code != http.StatusUnauthorized {
		t.Fatalf("anonymous should get 401, got %d", code)
	}
}

func TestRequireRolesWrongRole(t *testing.T) {
	if code := getGuarded(roleRouter(domain.RoleCustomer, true)); code != http.StatusForbidden {
		t.Fatalf("customer should get 403 on admin route, got %d", code)
	}
}

func TestRequireRolesMatchingRole(t *testing.T) {
	if code := getGuarded(roleRouter(domain.RoleAdmin, true)); code != http.StatusOK {
		t.Fatalf("admin should pass, got %d", code)
	}
}

func TestCurrentUserAbsent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if _, ok := CurrentUser(c); ok {
		t.Fatal("no session data should mean no user")
	}
}
