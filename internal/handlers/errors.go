package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/retailcore/backoffice/internal/apperrors"
)

// respondServiceError maps service-layer errors to HTTP responses. Validation
// problems are client errors; stock and transition conflicts are 409s so the
// caller can distinguish "fix your input" from "the state moved under you".
func respondServiceError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		logger.Warn("Insufficient stock", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvalidTransition):
		logger.Warn("Invalid transition", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.Error("Internal error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// respondBindError turns a request binding failure into a readable 400,
// flattening validator field errors when present.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		details := make([]string, len(fieldErrors))
		for i, fe := range fieldErrors {
			details[i] = fmt.Sprintf("field %s failed on %q", fe.Field(), fe.Tag())
		}
		logger.Warn("Request binding failed", slog.String("details", strings.Join(details, "; ")))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": details})
		return
	}
	logger.Warn("Request binding failed", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
}
