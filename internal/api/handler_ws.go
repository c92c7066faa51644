package api

import (
	"github.com/gin-gonic/gin"
)

// NotificationsWebsocket upgrades the request into a websocket subscribed to
// the notification hub. Missed events are not replayed to late joiners.
func (h *Handler) NotificationsWebsocket(c *gin.Context) {
	h.hub.HandleConnection(c.Writer, c.Request)
}
