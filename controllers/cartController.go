package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
)

const (
	msgCartItemAdded   = "item added to cart"
	msgCartItemUpdated = "cart item updated"
	msgCartItemRemoved = "cart item removed"
	msgCartCleared     = "cart cleared"
)

// CartController serves /carts/:userId. Access to the path user is checked
// by middleware before any handler runs.
type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func (c *CartController) Get(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}

	cart, err := c.carts.Get(ctx.Request.Context(), userID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"data": cart})
}

func (c *CartController) AddItem(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}
	var input models.CartItemInput
	if !bindJSON(ctx, &input) {
		return
	}

	cart, err := c.carts.AddItem(ctx.Request.Context(), userID, input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartItemAdded, "data": cart})
}

func (c *CartController) UpdateItem(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}
	itemID, ok := parseID(ctx, "itemId")
	if !ok {
		return
	}
	var input models.CartItemUpdate
	if !bindJSON(ctx, &input) {
		return
	}

	cart, err := c.carts.UpdateItem(ctx.Request.Context(), userID, itemID, input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartItemUpdated, "data": cart})
}

func (c *CartController) RemoveItem(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}
	itemID, ok := parseID(ctx, "itemId")
	if !ok {
		return
	}

	cart, err := c.carts.RemoveItem(ctx.Request.Context(), userID, itemID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartItemRemoved, "data": cart})
}

func (c *CartController) Clear(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}

	cart, err := c.carts.Clear(ctx.Request.Context(), userID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgCartCleared, "data": cart})
}
