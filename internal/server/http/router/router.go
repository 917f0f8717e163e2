package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/evalhub/assessment-orders/internal/server/http/dto"
	"github.com/evalhub/assessment-orders/internal/server/http/handlers"
	"github.com/evalhub/assessment-orders/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.OrderFacade, health handlers.HealthChecker, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	healthHandler := handlers.NewHealthHandler(health)

	orders := engine.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/summary", orderHandler.Summary)
	orders.GET("/:id", orderHandler.GetByID)

	engine.GET("/health", healthHandler.Status)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Not found"})
	})

	return engine
}
