package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopping-mall/mall-api/models"
	"github.com/shopping-mall/mall-api/services"
	"github.com/shopping-mall/mall-api/utils"
)

const (
	msgOrderCreated       = "order created successfully"
	msgOrderStatusUpdated = "order status updated"
	msgOrderDeleted       = "order deleted successfully"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (c *OrderController) Create(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}
	var input models.OrderRequest
	if !bindJSON(ctx, &input) {
		return
	}

	order, err := c.orders.PlaceOrder(ctx.Request.Context(), userID, input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgOrderCreated, "data": order})
}

func (c *OrderController) ListForUser(ctx *gin.Context) {
	userID, ok := parseID(ctx, "userId")
	if !ok {
		return
	}

	orders, err := c.orders.ListForUser(ctx.Request.Context(), userID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"count": len(orders), "data": orders})
}

func (c *OrderController) ListAll(ctx *gin.Context) {
	page := utils.NewPagination(ctx.Query("page"), ctx.Query("limit"), services.DefaultOrderPageSize)

	result, err := c.orders.ListAll(ctx.Request.Context(), ctx.Query("status"), page)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}

	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{
		"count":      len(result.Orders),
		"total":      result.Total,
		"page":       page.Page,
		"limit":      page.Limit,
		"totalPages": page.TotalPages(result.Total),
		"hasNext":    page.HasNext(result.Total),
		"hasPrev":    page.HasPrev(),
		"data":       result.Orders,
	})
}

// Export downloads the orders as a spreadsheet.
func (c *OrderController) Export(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.orders.Export(ctx.Request.Context(), &buf, ctx.Query("status")); err != nil {
		utils.SendError(ctx, err)
		return
	}

	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Header("Content-Transfer-Encoding", "binary")
	ctx.Header("Expires", "0")
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (c *OrderController) Get(ctx *gin.Context) {
	s, ok := session(ctx)
	if !ok {
		return
	}
	orderID, ok := parseID(ctx, "orderId")
	if !ok {
		return
	}

	order, err := c.orders.Get(ctx.Request.Context(), s, orderID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"data": order})
}

func (c *OrderController) UpdateStatus(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "orderId")
	if !ok {
		return
	}
	var input models.OrderStatusUpdate
	if !bindJSON(ctx, &input) {
		return
	}

	order, err := c.orders.UpdateStatus(ctx.Request.Context(), orderID, input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgOrderStatusUpdated, "data": order})
}

func (c *OrderController) Delete(ctx *gin.Context) {
	orderID, ok := parseID(ctx, "orderId")
	if !ok {
		return
	}

	order, err := c.orders.Delete(ctx.Request.Context(), orderID)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgOrderDeleted, "data": order})
}
