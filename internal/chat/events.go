package chat

import (
	"encoding/json"
)

// Wire event names. Inbound: joinRoom, sendMessage. Outbound:
// connect_confirm, message, onlineUsers. The vocabulary matches what
// the frontend's socket layer speaks.
const (
	EventJoinRoom       = "joinRoom"
	EventSendMessage    = "sendMessage"
	EventConnectConfirm = "connect_confirm"
	EventMessage        = "message"
	EventOnlineUsers    = "onlineUsers"
)

// Envelope frames every message on the socket in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type joinRoomPayload struct {
	Room string `json:"room"`
}

type sendMessagePayload struct {
	Text string `json:"text"`
	// A room field in the payload is accepted but ignored: a message
	// always targets the sender's current room.
	Room string `json:"room,omitempty"`
}

type connectConfirmPayload struct {
	SessionID string `json:"sessionId"`
}

// Message is a chat message during its broadcast fan-out. It is never
// persisted; late joiners get no history.
type Message struct {
	SenderID       uint   `json:"senderId"`
	SenderUsername string `json:"senderUsername"`
	Text           string `json:"text"`
	Timestamp      int64  `json:"timestamp"`
	Room           string `json:"room"`
}

func marshalEvent(event string, data interface{}) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: event, Data: raw})
}
