package notification

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"medappointment/internal/pkg/jwt"
	"medappointment/internal/pkg/response"
)

// WSHandler upgrades authenticated clients onto the Hub
type WSHandler struct {
	hub        *Hub
	jwtService *jwt.Service
}

func NewWSHandler(hub *Hub, jwtService *jwt.Service) *WSHandler {
	return &WSHandler{hub: hub, jwtService: jwtService}
}

// HandleWebSocket handles GET /api/v1/ws/notifications?token=JWT
//
// Browsers cannot set headers on a WebSocket handshake, so the token travels
// in the query string.
func (h *WSHandler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.CustomError(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token is required. Use ?token=YOUR_JWT_TOKEN")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%s error=%q", claims.UserID, err.Error())
		return
	}

	h.hub.ServeWS(conn, claims.UserID)
}
