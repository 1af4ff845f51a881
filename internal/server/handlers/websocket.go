// internal/server/handlers/websocket.go

package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cadence/internal/domain/events"
	"cadence/internal/platform/logger"
)

// StreamSubjects are forwarded to every event stream client
var StreamSubjects = []string{events.SubjectPlanGenerated, "trend.>"}

// WebSocketConfig contains configuration for WebSocket connections
type WebSocketConfig struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration

	// Time allowed to read the next pong message from the peer
	PongWait time.Duration

	// Send pings to peer with this period
	PingPeriod time.Duration

	// Maximum message size allowed from peer
	MaxMessageSize int64

	// Messages buffered per client before new events are dropped
	SendBuffer int
}

// DefaultWebSocketConfig returns the default WebSocket configuration
func DefaultWebSocketConfig() WebSocketConfig {
	return WebSocketConfig{
		WriteWait:      10 * time.Second,
		PongWait:       60 * time.Second,
		PingPeriod:     (60 * time.Second * 9) / 10,
		MaxMessageSize: 4096,
		SendBuffer:     256,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// streamClient is one connected websocket consumer of bus events
type streamClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
	unsubs    []func() error
	config    WebSocketConfig
	log       *logger.Logger
}

// EventStreamHandler streams plan and trend bus events to websocket clients
func EventStreamHandler(sub events.Subscriber, config WebSocketConfig, log *logger.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	if config.PingPeriod <= 0 || config.SendBuffer < 1 {
		config = DefaultWebSocketConfig()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		client := &streamClient{
			send:   make(chan []byte, config.SendBuffer),
			done:   make(chan struct{}),
			config: config,
			log:    log,
		}

		// Subscribe before upgrading so no event published after the handshake is missed
		for _, subject := range StreamSubjects {
			unsub, err := sub.Subscribe(subject, client.deliver)
			if err != nil {
				client.unsubscribe()
				respondWithError(w, log, http.StatusServiceUnavailable, "Event stream unavailable", err)
				return
			}
			client.unsubs = append(client.unsubs, unsub)
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			client.unsubscribe()
			log.Warn("failed to upgrade to WebSocket", "error", err)
			return
		}
		client.conn = conn

		welcome, _ := json.Marshal(map[string]interface{}{
			"type":     "welcome",
			"subjects": StreamSubjects,
			"time":     time.Now().UTC(),
		})
		client.deliver("welcome", welcome)

		log.Info("event stream client connected", "remote", r.RemoteAddr)

		go client.writePump()
		go client.readPump()
	}
}

// deliver queues a bus message, dropping it when the client is slow or gone
func (c *streamClient) deliver(subject string, data []byte) {
	select {
	case <-c.done:
	case c.send <- data:
	default:
		c.log.Warn("event stream client is slow, dropping event", "subject", subject)
	}
}

// readPump discards client messages and notices disconnects
func (c *streamClient) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.log.Warn("websocket error", "error", err)
			}
			return
		}
	}
}

// writePump sends queued events and keepalive pings
func (c *streamClient) writePump() {
	ticker := time.NewTicker(c.config.PingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.done:
			return

		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *streamClient) unsubscribe() {
	for _, unsub := range c.unsubs {
		if err := unsub(); err != nil {
			c.log.Warn("error unsubscribing event stream", "error", err)
		}
	}
}

// close releases the subscriptions and the connection once
func (c *streamClient) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.unsubscribe()
		c.conn.Close()
		c.log.Info("event stream client disconnected")
	})
}
