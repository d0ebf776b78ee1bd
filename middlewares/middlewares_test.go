package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var tokens = utils.NewTokenManager("test-secret", time.Hour)

func tokenFor(t *testing.T, id uint, role models.Role) string {
	t.Helper()
	token, err := tokens.Issue(&models.User{ID: id, Email: "kim@example.com", Name: "Kim", Role: role})
	require.NoError(t, err)
	return token
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := append(handlers, func(ctx *gin.Context) {
		session, _ := CurrentSession(ctx)
		ctx.JSON(http.StatusOK, gin.H{"user_id": session.UserID, "admin": session.IsAdmin()})
	})
	router.GET("/users/:userId", chain...)
	return router
}

func do(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	router := newRouter(RequireAuth(tokens))

	rec := do(router, "/users/1", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgMissingToken)

	rec = do(router, "/users/1", "garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), msgInvalidToken)

	other := utils.NewTokenManager("other-secret", time.Hour)
	forged, err := other.Issue(&models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)
	rec = do(router, "/users/1", forged)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(router, "/users/1", tokenFor(t, 7, models.RoleCustomer))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":7,"admin":false}`, rec.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	router := newRouter(OptionalAuth(tokens))

	rec := do(router, "/users/1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"user_id":0,"admin":false}`, rec.Body.String())

	rec = do(router, "/users/1", "garbage")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, "/users/1", tokenFor(t, 2, models.RoleAdmin))
	assert.JSONEq(t, `{"user_id":2,"admin":true}`, rec.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	router := newRouter(RequireAuth(tokens), RequireAdmin())

	assert.Equal(t, http.StatusForbidden, do(router, "/users/1", tokenFor(t, 1, models.RoleCustomer)).Code)
	assert.Equal(t, http.StatusOK, do(router, "/users/1", tokenFor(t, 1, models.RoleAdmin)).Code)

	bare := newRouter(RequireAdmin())
	assert.Equal(t, http.StatusUnauthorized, do(bare, "/users/1", "").Code)
}

func TestAuthorizeUserParam(t *testing.T) {
	router := newRouter(RequireAuth(tokens), AuthorizeUserParam("userId"))

	assert.Equal(t, http.StatusOK, do(router, "/users/3", tokenFor(t, 3, models.RoleCustomer)).Code)
	assert.Equal(t, http.StatusForbidden, do(router, "/users/4", tokenFor(t, 3, models.RoleCustomer)).Code)
	assert.Equal(t, http.StatusForbidden, do(router, "/users/4", tokenFor(t, 3, models.RoleAdmin)).Code)
	assert.Equal(t, http.StatusForbidden, do(router, "/users/abc", tokenFor(t, 3, models.RoleCustomer)).Code)
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	router := newRouter(RequestLogger())

	rec := do(router, "/users/1", "")
	assert.Len(t, rec.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/users/1", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}
