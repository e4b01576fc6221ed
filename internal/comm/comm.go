package comm

import (
	"encoding/json"
	"time"
)

// WSMessage is the envelope used on NATS subjects and websocket frames.
type WSMessage struct {
	Type     string          `json:"type"` // e.g. "registration-created", "subscribe"
	Data     json.RawMessage `json:"data"`
	SocketId string          `json:"socketid,omitempty"`
}

type ServiceHeartbeat struct {
	ID        string    `json:"id"` // service instance id
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

type ServiceShutdown struct {
	ID string `json:"id"` // service instance id
}

type NoticeType string

const (
	NoticeRegistrationCreated NoticeType = "registration-created"
	NoticeEventCreated        NoticeType = "event-created"
	NoticeEventUpdated        NoticeType = "event-updated"
	NoticeEventApproved       NoticeType = "event-approved"
	NoticeDonationRecorded    NoticeType = "donation-recorded"
)

// Notice describes a committed change. EventID scopes it to one sports
// event so websocket clients can follow a single event.
type Notice struct {
	Type    NoticeType  `json:"type"`
	EventID string      `json:"event_id,omitempty"`
	UserID  string      `json:"user_id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

// Message wraps the notice in the wire envelope.
func (n Notice) Message() (*WSMessage, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, err
	}
	return &WSMessage{Type: string(n.Type), Data: data}, nil
}

// Subscription is the data of a websocket "subscribe" message. An empty
// EventID follows every event.
type Subscription struct {
	EventID string `json:"event_id"`
}
