package chat

import (
	"log"
	"time"
)

type joinRequest struct {
	client *Client
	room   string
}

type inboundMessage struct {
	client *Client
	text   string
}

// Hub serializes every connection event onto one goroutine: connects,
// room switches, sends and disconnects all run to completion in arrival
// order, so messages within a room get a total order and the registry
// is never mutated concurrently from here.
type Hub struct {
	registry *Registry
	sessions map[string]*Client // session id -> client

	register   chan *Client
	unregister chan *Client
	join       chan joinRequest
	inbound    chan inboundMessage
}

func NewHub(registry *Registry) *Hub {
	return &Hub{
		registry:   registry,
		sessions:   make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		join:       make(chan joinRequest),
		inbound:    make(chan inboundMessage),
	}
}

// Register hands a freshly-accepted connection to the hub.
func (h *Hub) Register(c *Client) {
	h.register <- c
}

// Run is the hub's event loop. Call it once from the composition root.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case req := <-h.join:
			h.handleJoin(req.client, req.room)
		case msg := <-h.inbound:
			h.handleMessage(msg.client, msg.text)
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.sessions[c.ID] = c
	log.Printf("chat: %s (%d) connected, session %s", c.Username, c.UserID, c.ID)

	h.queue(c, EventConnectConfirm, connectConfirmPayload{SessionID: c.ID})

	// Join the handshake room right away
	h.handleJoin(c, c.initialRoom)
}

func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.sessions[c.ID]; !ok {
		return // already gone, e.g. duplicate disconnect signal
	}
	if c.room != "" {
		h.leaveRoom(c)
	}
	delete(h.sessions, c.ID)
	close(c.send)
	log.Printf("chat: %s (%d) disconnected, session %s", c.Username, c.UserID, c.ID)
}

// handleJoin implements the leave-then-join room switch. Joining the
// room the client is already in is a no-op.
func (h *Hub) handleJoin(c *Client, room string) {
	if c.room == room {
		return
	}
	if c.room != "" {
		h.leaveRoom(c)
	}

	snapshot := h.registry.Add(room, c.participant())
	c.room = room
	log.Printf("chat: %s joined room %s (%d online)", c.Username, room, len(snapshot))

	h.broadcastMembership(room, snapshot)
}

func (h *Hub) leaveRoom(c *Client) {
	room := c.room
	snapshot, ok := h.registry.Remove(room, c.ID)
	c.room = ""

	if !ok {
		// Room was pruned with this departure, nobody left to notify
		log.Printf("chat: room %s removed (empty)", room)
		return
	}
	log.Printf("chat: %s left room %s (%d online)", c.Username, room, len(snapshot))

	h.broadcastMembership(room, snapshot)
}

// handleMessage fans a chat message out to everyone in the sender's
// current room, sender included so client and server views agree.
// A send from a session that is in no room is dropped.
func (h *Hub) handleMessage(c *Client, text string) {
	if c.room == "" {
		log.Printf("chat: dropping message from %s: not in any room", c.Username)
		return
	}

	msg := Message{
		SenderID:       c.UserID,
		SenderUsername: c.Username,
		Text:           text,
		Timestamp:      time.Now().UnixMilli(),
		Room:           c.room,
	}

	snapshot, ok := h.registry.Snapshot(c.room)
	if !ok {
		return
	}
	for _, p := range snapshot {
		if target, ok := h.sessions[p.SessionID]; ok {
			h.queue(target, EventMessage, msg)
		}
	}
}

func (h *Hub) broadcastMembership(room string, snapshot []Participant) {
	for _, p := range snapshot {
		if target, ok := h.sessions[p.SessionID]; ok {
			h.queue(target, EventOnlineUsers, snapshot)
		}
	}
}

// queue is fire-and-forget: a client whose send buffer is full just
// misses the event rather than stalling the loop.
func (h *Hub) queue(c *Client, event string, data interface{}) {
	raw, err := marshalEvent(event, data)
	if err != nil {
		log.Printf("chat: marshal %s: %v", event, err)
		return
	}
	select {
	case c.send <- raw:
	default:
		log.Printf("chat: send buffer full for %s, dropping %s", c.Username, event)
	}
}
