package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/internal/dto"
	"github.com/retailcore/backoffice/internal/middleware"
	"github.com/retailcore/backoffice/pkg/config"
)

// documentHandler handles HTTP requests for commerce documents.
type documentHandler struct {
	documentSvc portssvc.DocumentSvcFacade
	cfg         *config.Config
}

func newDocumentHandler(documentSvc portssvc.DocumentSvcFacade, cfg *config.Config) *documentHandler {
	return &documentHandler{documentSvc: documentSvc, cfg: cfg}
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentSvc portssvc.DocumentSvcFacade, cfg *config.Config) {
	h := newDocumentHandler(documentSvc, cfg)
	documents := rg.Group("/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentID", h.getDocument)
		documents.DELETE("/:documentID", h.deleteDocument)
		documents.POST("/:documentID/items", h.addItem)
		documents.DELETE("/:documentID/items/:lineItemID", h.removeItem)
		documents.PUT("/:documentID/discount", h.setDiscount)
		documents.PUT("/:documentID/tax", h.setTax)
		documents.POST("/:documentID/commit", h.commitDocument)
		documents.POST("/:documentID/pay", h.markPaid)
	}
}

func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	document, err := h.documentSvc.CreateDocument(c.Request.Context(), req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToDocumentResponse(document))
}

func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, err)
		return
	}
	params.Normalize(h.cfg.DefaultPageSize, h.cfg.MaxPageSize)

	resp, err := h.documentSvc.ListDocuments(c.Request.Context(), params)
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *documentHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	document, err := h.documentSvc.GetDocumentByID(c.Request.Context(), c.Param("documentID"))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) addItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	document, err := h.documentSvc.AddItem(c.Request.Context(), c.Param("documentID"), req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) removeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	document, err := h.documentSvc.RemoveItem(c.Request.Context(), c.Param("documentID"), c.Param("lineItemID"), requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) setDiscount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetPercentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	document, err := h.documentSvc.SetDiscount(c.Request.Context(), c.Param("documentID"), req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) setTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SetPercentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	document, err := h.documentSvc.SetTax(c.Request.Context(), c.Param("documentID"), req, requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) commitDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	document, err := h.documentSvc.Commit(c.Request.Context(), c.Param("documentID"), requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) markPaid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	document, err := h.documentSvc.MarkPaid(c.Request.Context(), c.Param("documentID"), requestUserID(c))
	if err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDocumentResponse(document))
}

func (h *documentHandler) deleteDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if err := h.documentSvc.Delete(c.Request.Context(), c.Param("documentID"), requestUserID(c)); err != nil {
		respondServiceError(c, logger, err)
		return
	}

	c.Status(http.StatusNoContent)
}
