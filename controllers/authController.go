package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
)

const (
	msgLoginSuccess          = "login successful"
	msgFailedToGenerateToken = "failed to generate token"
)

type AuthController struct {
	users  *services.UserService
	tokens *utils.TokenManager
}

func NewAuthController(users *services.UserService, tokens *utils.TokenManager) *AuthController {
	return &AuthController{users: users, tokens: tokens}
}

func (c *AuthController) Login(ctx *gin.Context) {
	var input models.LoginData
	if !bindJSON(ctx, &input) {
		return
	}

	user, err := c.users.Authenticate(ctx.Request.Context(), input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}

	token, err := c.tokens.Issue(user)
	if err != nil {
		utils.SendError(ctx, apperrors.Internal(msgFailedToGenerateToken, err))
		return
	}

	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": msgLoginSuccess,
		"token":   token,
		"data":    user,
	})
}

// Me returns the account behind the bearer token.
func (c *AuthController) Me(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}

	user, err := c.users.Get(ctx.Request.Context(), s.UserID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"data": user})
}
