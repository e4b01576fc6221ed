// Package ws streams notices about committed changes to websocket clients.
// Clients follow every sports event until they subscribe to a single one.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/avvvet/sportshub-services/internal/comm"
)

const (
	writeWait = 10 * time.Second
	// sendBuffer is how many messages a client may fall behind before it is dropped.
	sendBuffer = 64
)

type client struct {
	conn *websocket.Conn
	send chan *comm.WSMessage
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan *comm.WSMessage, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue never blocks. It reports false when the client is closed or its
// buffer is full.
func (c *client) enqueue(msg *comm.WSMessage) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

// writePump is the only writer on the connection.
func (c *client) writePump(socketId string) {
	defer c.close()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Warnf("write to socket %s: %v", socketId, err)
				return
			}
		}
	}
}

type Ws struct {
	connMap  sync.Map // socketId -> *client
	roomMap  sync.Map // socketId -> followed event id, "" for all
	upgrader websocket.Upgrader
}

func NewWs() *Ws {
	return &Ws{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket upgrades the request and serves the connection until the
// client goes away.
func (s *Ws) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		log.Errorf("Failed to upgrade to WebSocket: %v", err)
		return
	}

	socketId := uuid.New().String()
	s.StoreConnection(socketId, conn)
	log.Infof("New WebSocket connection established: %s", socketId)

	go s.handleConnection(conn, socketId)
}

func (s *Ws) handleConnection(conn *websocket.Conn, socketId string) {
	defer s.HandleDisconnect(socketId)

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warnf("WebSocket unexpected close for socket %s: %v", socketId, err)
			}
			return
		}

		message := &comm.WSMessage{}
		if err := json.Unmarshal(raw, message); err != nil {
			s.sendError(socketId, "Invalid message format")
			continue
		}
		s.SocketMessage(socketId, message)
	}
}

// SocketMessage handles a message from a web client.
func (s *Ws) SocketMessage(socketId string, message *comm.WSMessage) {
	switch message.Type {
	case "subscribe":
		var sub comm.Subscription
		if len(message.Data) > 0 {
			if err := json.Unmarshal(message.Data, &sub); err != nil {
				s.sendError(socketId, "Invalid subscribe data")
				return
			}
		}
		s.roomMap.Store(socketId, sub.EventID)
		s.send(socketId, &comm.WSMessage{Type: "subscribed", Data: mustJSON(sub)})
	case "ping":
		s.send(socketId, &comm.WSMessage{Type: "pong"})
	default:
		s.sendError(socketId, "Unknown message type "+message.Type)
	}
}

func (s *Ws) StoreConnection(socketId string, conn *websocket.Conn) {
	c := newClient(conn)
	s.addClient(socketId, c)
	go c.writePump(socketId)
}

func (s *Ws) addClient(socketId string, c *client) {
	s.connMap.Store(socketId, c)
	s.roomMap.Store(socketId, "")
}

// HandleDisconnect forgets the socket and closes it. Calling it again is a no-op.
func (s *Ws) HandleDisconnect(socketId string) {
	s.roomMap.Delete(socketId)
	v, ok := s.connMap.LoadAndDelete(socketId)
	if !ok {
		return
	}
	v.(*client).close()
	log.Infof("WebSocket connection closed: %s", socketId)
}

// Count reports the open connections.
func (s *Ws) Count() int {
	n := 0
	s.connMap.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Notify delivers a notice from this instance.
func (s *Ws) Notify(_ context.Context, n comm.Notice) {
	msg, err := n.Message()
	if err != nil {
		log.Errorf("notice %s: unable to marshal: %s", n.Type, err)
		return
	}
	s.Broadcast(n.EventID, msg)
}

// Broadcast queues msg for every client following eventID or all events.
// Clients whose queue is full are disconnected.
func (s *Ws) Broadcast(eventID string, msg *comm.WSMessage) {
	s.roomMap.Range(func(key, value any) bool {
		followed := value.(string)
		if followed == "" || followed == eventID {
			s.send(key.(string), msg)
		}
		return true
	})
}

func (s *Ws) send(socketId string, msg *comm.WSMessage) {
	v, ok := s.connMap.Load(socketId)
	if !ok {
		return
	}
	if !v.(*client).enqueue(msg) {
		log.Warnf("socket %s is not keeping up, dropping it", socketId)
		s.HandleDisconnect(socketId)
	}
}

func (s *Ws) sendError(socketId, errorMsg string) {
	s.send(socketId, &comm.WSMessage{Type: "error", Data: mustJSON(map[string]string{"error": errorMsg})})
}

func mustJSON(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return data
}
