package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/utils"
)

// RequireAdmin must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, exists := CurrentSession(ctx)
		if !exists {
			utils.SendErrorMessage(ctx, http.StatusUnauthorized, "authentication required")
			return
		}

		if !session.IsAdmin() {
			utils.SendErrorMessage(ctx, http.StatusForbidden, "admin access required")
			return
		}

		ctx.Next()
	}
}
