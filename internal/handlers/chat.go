package handlers

import (
	"log"
	"net/http"

	"edusphere/internal/chat"
	"edusphere/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type ChatHandler struct {
	hub      *chat.Hub
	upgrader websocket.Upgrader
}

// NewChatHandler builds the websocket entry point. Only the configured
// frontend origin may open a connection; same-origin requests carry no
// Origin header and are allowed through.
func NewChatHandler(hub *chat.Hub, allowedOrigin string) *ChatHandler {
	return &ChatHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origin == allowedOrigin
			},
		},
	}
}

// Serve upgrades the connection and registers it with the hub. Identity
// comes from the verified session cookie, never from the client: a
// handshake without a logged-in session is rejected before the upgrade.
func (h *ChatHandler) Serve(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		Error(c, http.StatusUnauthorized, "Access denied. Not logged in.")
		return
	}

	room := c.Query("room")

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Println("chat: websocket upgrade:", err)
		return
	}

	client := chat.NewClient(h.hub, conn, user.ID, user.Username, room)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
