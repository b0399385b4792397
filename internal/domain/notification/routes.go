package notification

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts notification routes on an authenticated group.
func RegisterRoutes(protected *gin.RouterGroup, h *Handler) {
	notifications := protected.Group("/notifications")
	{
		notifications.GET("", h.List)
		notifications.POST("", h.Create)
		notifications.POST("/mark-all-read", h.MarkAllAsRead)
		notifications.PATCH("/:id/read", h.MarkAsRead)
		notifications.DELETE("/:id", h.Delete)
		notifications.DELETE("", h.Clear)
	}
}

// RegisterWSRoutes mounts the socket endpoint. It authenticates from the query string.
func RegisterWSRoutes(v1 *gin.RouterGroup, ws *WSHandler) {
	v1.GET("/ws/notifications", ws.HandleWebSocket)
}
