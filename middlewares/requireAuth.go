package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/utils"
)

const sessionKey = "session"

const (
	msgMissingToken = "authentication token is missing"
	msgInvalidToken = "invalid or expired token"
)

func bearerToken(ctx *gin.Context) string {
	header := ctx.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func sessionFromToken(tokens *utils.TokenManager, token string) (models.Session, error) {
	claims, err := tokens.Parse(token)
	if err != nil {
		return models.Session{}, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return models.Session{}, err
	}
	return models.Session{UserID: userID, Email: claims.Email, Name: claims.Name, Role: claims.Role}, nil
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's Session in the context.
func RequireAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := bearerToken(ctx)
		if token == "" {
			utils.SendErrorMessage(ctx, http.StatusUnauthorized, msgMissingToken)
			return
		}

		session, err := sessionFromToken(tokens, token)
		if err != nil {
			utils.SendErrorMessage(ctx, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx.Set(sessionKey, session)
		ctx.Next()
	}
}

// OptionalAuth stores a Session when a valid token is present and lets
// anonymous requests through.
func OptionalAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if token := bearerToken(ctx); token != "" {
			if session, err := sessionFromToken(tokens, token); err == nil {
				ctx.Set(sessionKey, session)
			}
		}
		ctx.Next()
	}
}

func CurrentSession(ctx *gin.Context) (models.Session, bool) {
	value, exists := ctx.Get(sessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := value.(models.Session)
	return session, ok
}
