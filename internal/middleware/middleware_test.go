package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"campushub/internal/config"
	"campushub/internal/models"
	"campushub/internal/service"
)

func testAuthService() *service.AuthService {
	return service.NewAuthService(nil, config.AuthConfig{
		JWTSecret:   "test-secret",
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	})
}

func testRouter(auth *service.AuthService, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{RequireAuth(auth)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetInt64("user_id"),
			"role":    c.GetString("user_role"),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func issueTestToken(t *testing.T, auth *service.AuthService, userID int64, role string) string {
	t.Helper()
	token, err := auth.TokenForUser(&models.User{ID: userID, Role: role})
	require.NoError(t, err)
	return token
}

func TestRequireAuth(t *testing.T) {
	auth := testAuthService()

	t.Run("missing header rejected", func(t *testing.T) {
		r := testRouter(auth)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header rejected", func(t *testing.T) {
		r := testRouter(auth)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		r := testRouter(auth)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token passes identity through", func(t *testing.T) {
		r := testRouter(auth)
		token := issueTestToken(t, auth, 42, models.RoleOrganizer)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"user_id":42`)
		require.Contains(t, w.Body.String(), `"role":"organizer"`)
	})
}

func TestRequireRole(t *testing.T) {
	auth := testAuthService()

	t.Run("role allowed", func(t *testing.T) {
		r := testRouter(auth, RequireRole(models.RoleOrganizer))
		token := issueTestToken(t, auth, 1, models.RoleOrganizer)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("student blocked from organizer route", func(t *testing.T) {
		r := testRouter(auth, RequireRole(models.RoleOrganizer))
		token := issueTestToken(t, auth, 1, models.RoleStudent)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes any role gate", func(t *testing.T) {
		r := testRouter(auth, RequireRole(models.RoleOrganizer))
		token := issueTestToken(t, auth, 1, models.RoleAdmin)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})
}

func TestContextHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := testAuthService()
	token := issueTestToken(t, auth, 7, models.RoleStudent)

	r := gin.New()
	r.GET("/ctx", RequireAuth(auth), func(c *gin.Context) {
		id, ok := UserIDFromContext(c.Request.Context())
		require.True(t, ok)
		role, ok := RoleFromContext(c.Request.Context())
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ctx", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":7`)
}
