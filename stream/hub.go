// Package stream mirrors the face to websocket clients and accepts their tilt samples
package stream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/tiwe/face"
	"github.com/lixenwraith/tiwe/sensor"
)

const (
	sendBuffer      = 8
	writeWait       = 5 * time.Second
	maxMessageBytes = 1024
)

type frameMessage struct {
	Type  string     `json:"type"`
	Frame face.Frame `json:"frame"`
}

// clientMessage accepts {"type":"tilt","y":-500} or the short form {"tilt":-500}
type clientMessage struct {
	Type string `json:"type"`
	Y    *int   `json:"y"`
	Tilt *int   `json:"tilt"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub broadcasts frames to every connected client.
// A client that falls behind skips frames rather than stalling the draw loop.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	last     []byte
	closed   bool
	skipped  uint64
	tilt     *sensor.Latest
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewHub creates a hub storing received samples into tilt, which may be nil
func NewHub(tilt *sensor.Latest, log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[*client]struct{}),
		tilt:    tilt,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		log: log.With().Str("component", "stream").Logger(),
	}
}

// Draw implements the host sink, queueing the frame for every client
func (h *Hub) Draw(fr face.Frame) error {
	data, err := json.Marshal(frameMessage{Type: "frame", Frame: fr})
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = data
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.skipped++
		}
	}
	return nil
}

// ServeHTTP upgrades the request and runs the client session until it disconnects
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	if h.last != nil {
		c.send <- h.last
	}
	count := len(h.clients)
	h.mu.Unlock()

	h.log.Debug().Str("remote", r.RemoteAddr).Int("clients", count).Msg("client connected")

	go h.writeLoop(c)
	h.readLoop(c)
}

func (h *Hub) writeLoop(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.drop(c)
			return
		}
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func (h *Hub) readLoop(c *client) {
	c.conn.SetReadLimit(maxMessageBytes)

	for {
		_, payload, err := c.conn.ReadMessage()
		if err != nil {
			h.drop(c)
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.log.Debug().Err(err).Msg("discarding malformed message")
			continue
		}

		sample, ok := msg.sample()
		if !ok {
			h.log.Debug().Str("type", msg.Type).Msg("discarding unknown message")
			continue
		}
		if h.tilt != nil {
			h.tilt.Store(sample)
		}
	}
}

func (m clientMessage) sample() (int, bool) {
	if m.Tilt != nil {
		return *m.Tilt, true
	}
	if m.Type == "tilt" && m.Y != nil {
		return *m.Y, true
	}
	return 0, false
}

// drop removes c once, which ends its write loop
func (h *Hub) drop(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
	h.log.Debug().Int("clients", len(h.clients)).Msg("client disconnected")
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Skipped returns how many per-client frames were skipped for slow readers
func (h *Hub) Skipped() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.skipped
}

// Close disconnects every client and rejects new ones
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
	return nil
}
