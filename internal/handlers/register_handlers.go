package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/retailcore/backoffice/internal/core/ports/services"
	"github.com/retailcore/backoffice/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	v1 := r.Group("/api/v1")

	registerProductRoutes(v1, services.Product, cfg)
	registerDocumentRoutes(v1, services.Document, cfg)
	registerStockRoutes(v1, services.Stock, cfg)
}

// requestUserID identifies the acting user for audit fields. Authentication
// is handled by the surrounding deployment; when the header is absent the
// caller is recorded as "system".
func requestUserID(c *gin.Context) string {
	if userID := c.GetHeader("X-User-ID"); userID != "" {
		return userID
	}
	return "system"
}
