package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/dto"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/pkg/config"
)

// stockHandler handles HTTP requests for the stock ledger.
type stockHandler struct {
	stockSvc portssvc.StockLedgerSvcFacade
	cfg      *config.Config
}

func newStockHandler(stockSvc portssvc.StockLedgerSvcFacade, cfg *config.Config) *stockHandler {
	return &stockHandler{stockSvc: stockSvc, cfg: cfg}
}

func registerStockRoutes(rg *gin.RouterGroup, stockSvc portssvc.StockLedgerSvcFacade, cfg *config.Config) {
	h := newStockHandler(stockSvc, cfg)
	stock := rg.Group("/stock")
	{
		stock.GET("", h.listStock)
		stock.GET("/low", h.listLowStock)
		stock.GET("/:productID", h.getStockEntry)
		stock.GET("/:productID/movements", h.listMovements)
		stock.POST("/:productID/adjust", h.adjustStock)
	}
}

func (h *stockHandler) listStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	params.Normalize(h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	resp, err := h.stockSvc.ListStock(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *stockHandler) listLowStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entries, err := h.stockSvc.ListLowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": dto.ToStockEntryResponses(entries)})
}

func (h *stockHandler) getStockEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	entry, err := h.stockSvc.GetStockEntry(c.Request.Context(), c.Param("productID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStockEntryResponse(entry))
}

func (h *stockHandler) listMovements(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	movements, err := h.stockSvc.ListMovements(c.Request.Context(), c.Param("productID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"movements": dto.ToStockMovementResponses(movements)})
}

func (h *stockHandler) adjustStock(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	entry, err := h.stockSvc.Adjust(c.Request.Context(), c.Param("productID"), req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStockEntryResponse(entry))
}
