// Package spectate streams live game events to websocket spectators.
package spectate

import (
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// WebSocketPath is where spectators connect.
	WebSocketPath = "/ws"

	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	// Spectating is read-only; any origin may watch.
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
}

// client is one connected spectator.
type client struct {
	id   string
	ws   *websocket.Conn
	send chan []byte
}

// Hub fans envelopes out to every connected spectator. A spectator that
// cannot keep up loses messages instead of slowing the games down.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     *log.Logger
	dropped uint64
}

// NewHub creates an empty hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		clients: make(map[string]*client),
		log:     logger,
	}
}

// Handler returns a mux serving the websocket endpoint and a plain status page.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(WebSocketPath, h)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck // client went away
		json.NewEncoder(w).Encode(map[string]int{"spectators": h.Count()})
	})
	return mux
}

// ServeHTTP upgrades the request and keeps the spectator until it leaves.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	c := &client{
		id:   uuid.New().String(),
		ws:   ws,
		send: make(chan []byte, sendBuffer),
	}
	h.add(c)
	h.log.Info("spectator connected", "id", c.id, "remote", r.RemoteAddr)

	go h.writeLoop(c)
	h.enqueue(c, Welcome(c.id))
	h.readLoop(c)
}

// readLoop drains incoming frames so close and ping frames are handled.
// Spectators have nothing to say; payloads are ignored.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.remove(c)
		h.log.Info("spectator disconnected", "id", c.id)
	}()

	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("spectator read error", "id", c.id, "err", err)
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	defer c.ws.Close()

	for data := range c.send {
		//nolint:errcheck // a failed deadline surfaces on the write
		c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("spectator write error", "id", c.id, "err", err)
			return
		}
	}
	//nolint:errcheck // best-effort goodbye
	c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(writeTimeout))
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
}

// remove unregisters c and stops its writer. Safe to call twice.
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
}

func (h *Hub) enqueue(c *client, env Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("cannot encode envelope", "type", env.Type, "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c.id]; ok {
		h.offer(c, data)
	}
}

// offer must be called with h.mu held so send is not closed underneath it.
func (h *Hub) offer(c *client, data []byte) {
	select {
	case c.send <- data:
	default:
		h.dropped++
	}
}

// Broadcast sends env to every spectator without blocking.
func (h *Hub) Broadcast(env Envelope) {
	if env.Time.IsZero() {
		env.Time = time.Now()
	}
	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("cannot encode envelope", "type", env.Type, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		h.offer(c, data)
	}
}

// Count returns the number of connected spectators.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns how many messages were discarded for slow spectators.
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Close disconnects every spectator.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
}
