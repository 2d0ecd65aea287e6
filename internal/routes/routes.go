package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lms_backend/internal/handlers"
	"lms_backend/internal/logger"
	"lms_backend/ws"
)

// RegisterRoutes wires every HTTP and WebSocket route.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.CourseHandler.RegisterRoutes(api)
		appHandlers.ContentHandler.RegisterRoutes(api)
		appHandlers.ChatHandler.RegisterRoutes(api)
		appHandlers.NotificationHandler.RegisterRoutes(api)
	}

	// Token auth happens inside ServeWS (browsers cannot send headers
	// on websocket dials), so no middleware on this group.
	wsGroup := ginRouter.Group("/ws")
	{
		wsGroup.GET("/chat", wsHandler.ServeWS)
	}

	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	logger.Info("Routes registered")
}
