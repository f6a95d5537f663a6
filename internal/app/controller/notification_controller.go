package controller

import (
	"net/http"

	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	ws "github.com/amorpet/amorpet-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type NotificationController struct {
	hub            *ws.Hub
	allowedOrigins map[string]bool
}

func NewNotificationController(hub *ws.Hub, allowedOrigins []string) *NotificationController {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origins[origin] = true
	}
	return &NotificationController{
		hub:            hub,
		allowedOrigins: origins,
	}
}

func (ctrl *NotificationController) upgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return ctrl.allowedOrigins[r.Header.Get("Origin")]
		},
	}
}

// Stream upgrades to WebSocket and pushes back-office notifications. The
// token arrives as a query parameter and is validated by the auth middleware.
// GET /api/v1/admin/notifications/ws
func (ctrl *NotificationController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	upgrader := ctrl.upgrader()
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade to WebSocket", err, map[string]interface{}{
			"user_id": userID,
		})
		return
	}

	client := &ws.Client{
		Hub:    ctrl.hub,
		Conn:   &ws.Conn{Conn: conn},
		UserID: userID,
		Send:   make(chan []byte, 256),
	}

	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
