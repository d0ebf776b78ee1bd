package utils

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/apperrors"
)

func SendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	if _, ok := data["success"]; !ok {
		data["success"] = status < 400
	}
	ctx.JSON(status, data)
}

func SendErrorMessage(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// SendError writes err as a JSON error response. Unclassified errors become
// 500s. Causes of internal, unavailable and payment verification errors stay
// in the log; they can hold upstream responses.
func SendError(ctx *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		appErr = apperrors.Internal("internal server error", err)
	}

	status := appErr.Kind.HTTPStatus()
	body := gin.H{"success": false, "message": appErr.Message}
	if appErr.Data != nil {
		body["data"] = appErr.Data
	}

	switch appErr.Kind {
	case apperrors.KindInternal, apperrors.KindUnavailable:
		slog.Error(appErr.Message, "error", err, "path", ctx.FullPath(), "status", status)
	case apperrors.KindVerificationFailed:
		slog.Warn(appErr.Message, "error", err, "path", ctx.FullPath())
	default:
		if appErr.Err != nil {
			body["error"] = appErr.Err.Error()
		}
		slog.Debug(appErr.Message, "kind", appErr.Kind.String(), "path", ctx.FullPath())
	}

	ctx.AbortWithStatusJSON(status, body)
}
