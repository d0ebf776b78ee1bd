package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type DefaultController struct {
	db Pinger
}

func NewDefaultController(db Pinger) *DefaultController {
	return &DefaultController{db: db}
}

func (c *DefaultController) GetHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Shopping Mall API Server",
		"status":  "running",
	})
}

// Health reports whether the database answers within two seconds.
func (c *DefaultController) Health(ctx *gin.Context) {
	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	status, database := http.StatusOK, gin.H{"status": "connected"}
	if err := c.db.Ping(pingCtx); err != nil {
		status = http.StatusServiceUnavailable
		database = gin.H{"status": "disconnected", "error": err.Error()}
	}

	utils.SendJSONResponse(ctx, status, gin.H{
		"server":    "running",
		"database":  database,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
