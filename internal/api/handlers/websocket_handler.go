// internal/api/handlers/websocket_handler.go
package handlers

import (
	"net/http"
	"time"

	"contingent-booking-api-server/internal/api/middleware"
	"contingent-booking-api-server/internal/api/response"
	"contingent-booking-api-server/internal/socket"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Maximum time between two messages (or pings) from the client.
const pongWait = 30 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	Hub    *socket.Hub
	Tokens middleware.TokenParser
	// Roles allowed to subscribe, the same ones allowed to mutate bookings.
	Roles []string
}

func (h *WebSocketHandler) allowed(role string) bool {
	for _, r := range h.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ServeWs upgrades GET /ws?token= and streams booking events until the client leaves.
func (h *WebSocketHandler) ServeWs(c *gin.Context) {
	tokenString := c.Query("token")
	if tokenString == "" {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Token is required")
		return
	}

	claims, err := h.Tokens.Parse(tokenString)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "Invalid or expired token")
		return
	}
	if !h.allowed(claims.Role) {
		response.Error(c, http.StatusForbidden, response.CodeForbidden, "You do not have permission to access this resource")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("failed to upgrade websocket connection")
		return
	}

	connID := claims.UserID + ":" + uuid.NewString()[:8]
	h.Hub.Register(connID, conn)

	defer func() {
		h.Hub.Unregister(connID)
		conn.Close()
	}()

	// Client pings extend the read deadline. Writes stay with the hub.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPingHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("conn_id", connID).Msg("unexpected websocket close")
			}
			break
		}
	}
}
