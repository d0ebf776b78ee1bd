package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/middlewares"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
)

const (
	msgUserCreated = "user created successfully"
	msgUserUpdated = "user updated successfully"
	msgUserDeleted = "user deleted successfully"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Signup is public. A caller holding an admin token may pick the new
// account's user_type.
func (c *UserController) Signup(ctx *gin.Context) {
	var input models.SignupData
	if !bindJSON(ctx, &input) {
		return
	}

	caller, authenticated := middlewares.CurrentSession(ctx)
	user, err := c.users.Create(ctx.Request.Context(), input, authenticated && caller.IsAdmin())
	if err != nil {
		utils.SendError(ctx, err)
		return
	}

	utils.SendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgUserCreated, "data": user})
}

func (c *UserController) List(ctx *gin.Context) {
	users, err := c.users.List(ctx.Request.Context())
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"count": len(users), "data": users})
}

func (c *UserController) GetByEmail(ctx *gin.Context) {
	user, err := c.users.GetByEmail(ctx.Request.Context(), ctx.Param("email"))
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"data": user})
}

func (c *UserController) Get(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if !s.CanAccessUser(id) {
		utils.SendError(ctx, apperrors.Forbidden("you may only view your own account"))
		return
	}

	user, err := c.users.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"data": user})
}

func (c *UserController) Update(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var input models.UserUpdate
	if !bindJSON(ctx, &input) {
		return
	}

	user, err := c.users.Update(ctx.Request.Context(), s, id, input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgUserUpdated, "data": user})
}

func (c *UserController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.users.Delete(ctx.Request.Context(), id); err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgUserDeleted, "data": gin.H{}})
}
