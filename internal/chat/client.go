package chat

import (
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 256
)

// Client is the server-side state of one live connection: identity,
// current room and the outbound queue. The room field is owned by the
// hub goroutine; the pumps never touch it.
type Client struct {
	ID       string
	UserID   uint
	Username string

	hub         *Hub
	conn        *websocket.Conn
	send        chan []byte
	room        string
	initialRoom string
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uint, username, initialRoom string) *Client {
	if initialRoom == "" {
		initialRoom = DefaultRoom
	}
	return &Client{
		ID:          uuid.NewString(),
		UserID:      userID,
		Username:    username,
		hub:         hub,
		conn:        conn,
		send:        make(chan []byte, sendBuffer),
		initialRoom: initialRoom,
	}
}

func (c *Client) participant() Participant {
	return Participant{SessionID: c.ID, UserID: c.UserID, Username: c.Username}
}

// ReadPump reads envelopes off the socket and hands them to the hub.
// It exits on any read error, which doubles as the disconnect signal.
func (c *Client) ReadPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("chat: read error for %s: %v", c.Username, err)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			log.Printf("chat: bad envelope from %s: %v", c.Username, err)
			continue
		}

		switch env.Event {
		case EventJoinRoom:
			var p joinRoomPayload
			if err := json.Unmarshal(env.Data, &p); err != nil || p.Room == "" {
				log.Printf("chat: bad joinRoom payload from %s", c.Username)
				continue
			}
			c.hub.join <- joinRequest{client: c, room: p.Room}
		case EventSendMessage:
			var p sendMessagePayload
			if err := json.Unmarshal(env.Data, &p); err != nil {
				log.Printf("chat: bad sendMessage payload from %s", c.Username)
				continue
			}
			c.hub.inbound <- inboundMessage{client: c, text: p.Text}
		default:
			log.Printf("chat: unknown event %q from %s", env.Event, c.Username)
		}
	}
}

// WritePump drains the send queue onto the socket and keeps the
// connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case raw, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, raw); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
