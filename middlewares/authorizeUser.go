package middlewares

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/utils"
)

// AuthorizeUserParam lets a request through only when the user id in the
// named path parameter is the caller's own. Admins get no exception: carts
// and checkout belong to their owner.
func AuthorizeUserParam(param string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		session, exists := CurrentSession(ctx)
		if !exists {
			utils.SendErrorMessage(ctx, http.StatusUnauthorized, msgMissingToken)
			return
		}

		id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
		if err != nil || uint(id) != session.UserID {
			utils.SendErrorMessage(ctx, http.StatusForbidden, "you do not have access to this user's resources")
			return
		}

		ctx.Next()
	}
}
