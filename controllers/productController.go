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
	msgProductCreated = "product created successfully"
	msgProductUpdated = "product updated successfully"
	msgProductDeleted = "product deleted successfully"
	msgImageUploaded  = "image uploaded successfully"

	maxImageSize = 10 << 20
)

type ProductController struct {
	products *services.ProductService
}

func NewProductController(products *services.ProductService) *ProductController {
	return &ProductController{products: products}
}

func (c *ProductController) Create(ctx *gin.Context) {
	var input models.ProductInput
	if !bindJSON(ctx, &input) {
		return
	}

	product, err := c.products.Create(ctx.Request.Context(), input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusCreated, gin.H{"message": msgProductCreated, "data": product})
}

func (c *ProductController) List(ctx *gin.Context) {
	page := utils.NewPagination(ctx.Query("page"), ctx.Query("limit"), services.DefaultProductPageSize)

	result, err := c.products.List(ctx.Request.Context(), page)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}

	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{
		"page":       page.Page,
		"limit":      page.Limit,
		"total":      result.Total,
		"totalPages": page.TotalPages(result.Total),
		"hasPrev":    page.HasPrev(),
		"hasNext":    page.HasNext(result.Total),
		"data":       result.Products,
	})
}

func (c *ProductController) Get(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	product, err := c.products.Get(ctx.Request.Context(), id)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"data": product})
}

func (c *ProductController) Update(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var input models.ProductUpdate
	if !bindJSON(ctx, &input) {
		return
	}

	product, err := c.products.Update(ctx.Request.Context(), id, input)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProductUpdated, "data": product})
}

func (c *ProductController) Delete(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.products.Delete(ctx.Request.Context(), id); err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgProductDeleted, "data": gin.H{}})
}

// UploadImage takes a multipart "image" field, stores a resized copy and
// makes it the product's image.
func (c *ProductController) UploadImage(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		utils.SendError(ctx, apperrors.Wrap(apperrors.KindValidation, "no image uploaded", err))
		return
	}
	if file.Size > maxImageSize {
		utils.SendError(ctx, apperrors.Validation("image is larger than 10MB"))
		return
	}

	f, err := file.Open()
	if err != nil {
		utils.SendError(ctx, apperrors.Wrap(apperrors.KindValidation, "failed to read image", err))
		return
	}
	defer f.Close()

	product, err := c.products.AttachImage(ctx.Request.Context(), id, f)
	if err != nil {
		utils.SendError(ctx, err)
		return
	}
	utils.SendJSONResponse(ctx, http.StatusOK, gin.H{"message": msgImageUploaded, "data": product})
}
