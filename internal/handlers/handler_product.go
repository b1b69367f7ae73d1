package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/dto"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/pkg/config"
)

// productHandler handles HTTP requests for the catalog.
type productHandler struct {
	productSvc portssvc.ProductSvcFacade
	cfg        *config.Config
}

func newProductHandler(productSvc portssvc.ProductSvcFacade, cfg *config.Config) *productHandler {
	return &productHandler{productSvc: productSvc, cfg: cfg}
}

func registerProductRoutes(rg *gin.RouterGroup, productSvc portssvc.ProductSvcFacade, cfg *config.Config) {
	h := newProductHandler(productSvc, cfg)
	products := rg.Group("/products")
	{
		products.POST("", h.createProduct)
		products.GET("", h.listProducts)
		products.GET("/:productID", h.getProduct)
		products.PUT("/:productID", h.updateProduct)
		products.DELETE("/:productID", h.deactivateProduct)
	}
}

func (h *productHandler) createProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	product, err := h.productSvc.CreateProduct(c.Request.Context(), req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProductResponse(product))
}

func (h *productHandler) listProducts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	params.Normalize(h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	resp, err := h.productSvc.ListProducts(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *productHandler) getProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	product, err := h.productSvc.GetProductByID(c.Request.Context(), productID)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) updateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(c.Request.Context(), productID, req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductResponse(product))
}

func (h *productHandler) deactivateProduct(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	productID := c.Param("productID")

	if err := h.productSvc.DeactivateProduct(c.Request.Context(), productID, requestUserID(c)); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	logger.Info("Product deactivated via API", slog.String("product_id", productID))
	c.Status(http.StatusNoContent)
}
