package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/apperrors"
	"github.com/shopping-mall/mall-api/middlewares"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/utils"
)

const msgInvalidInput = "invalid input"

// parseID reads a numeric path parameter, answering 400 when it is not one.
func parseID(ctx *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		utils.SendError(ctx, apperrors.Validation("invalid "+param))
		return 0, false
	}
	return uint(id), true
}

func bindJSON(ctx *gin.Context, obj any) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		utils.SendError(ctx, apperrors.Wrap(apperrors.KindValidation, msgInvalidInput, err))
		return false
	}
	return true
}

func session(ctx *gin.Context) (models.Session, bool) {
	s, ok := middlewares.CurrentSession(ctx)
	if !ok {
		utils.SendError(ctx, apperrors.Unauthorized("authentication required"))
	}
	return s, ok
}
