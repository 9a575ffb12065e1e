package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abrezinsky/judgedesk/internal/logger"
	"github.com/abrezinsky/judgedesk/internal/metrics"
	"github.com/abrezinsky/judgedesk/internal/models"
	"github.com/abrezinsky/judgedesk/internal/services"
)

// Message types pushed to clients
const (
	MsgJudgingProgress = "judging_progress"
	MsgRegistrants     = "registrants"
)

// msgRefresh is sent by clients to request a progress refresh
const msgRefresh = "refresh"

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub maintains the set of active clients and broadcasts messages to the clients
type Hub struct {
	log         logger.Logger
	clients     map[*Client]bool
	broadcast   chan models.WSMessage
	register    chan *Client
	unregister  chan *Client
	mutex       sync.RWMutex
	judging     services.JudgingServicer
	registrants services.RegistrantServicer
	metrics     *metrics.Metrics
}

// Client is a middleman between the websocket connection and the hub
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan models.WSMessage
}

// New creates a new Hub instance with injected dependencies
func New(log logger.Logger, judging services.JudgingServicer, registrants services.RegistrantServicer, m *metrics.Metrics) *Hub {
	return &Hub{
		log:         log,
		clients:     make(map[*Client]bool),
		broadcast:   make(chan models.WSMessage, 16),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		judging:     judging,
		registrants: registrants,
		metrics:     m,
	}
}

// Start begins the hub's main loop in a goroutine
func (h *Hub) Start() {
	go h.run()
}

// run handles client registration/unregistration and message broadcasting
func (h *Hub) run() {
	for {
		select {
		case client := <-h.register:
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			h.metrics.SetWSClients(total)
			h.log.Debug("Client connected", "total_clients", total)

		case client := <-h.unregister:
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			h.metrics.SetWSClients(total)
			h.log.Debug("Client disconnected", "total_clients", total)

		case message := <-h.broadcast:
			h.mutex.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client's send channel is full, unregister
					go func(c *Client) {
						h.unregister <- c
					}(client)
				}
			}
			h.mutex.RUnlock()
		}
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// BroadcastMessage sends a message to all connected clients
func (h *Hub) BroadcastMessage(msgType string, payload interface{}) {
	h.broadcast <- models.WSMessage{
		Type:    msgType,
		Payload: payload,
	}
}

// BroadcastProgress implements services.Broadcaster
func (h *Hub) BroadcastProgress(d *services.Dashboard) {
	h.BroadcastMessage(MsgJudgingProgress, d)
}

// BroadcastRegistrants implements services.Broadcaster
func (h *Hub) BroadcastRegistrants(list *services.RegistrantList) {
	h.BroadcastMessage(MsgRegistrants, list)
}

// snapshot returns the messages a newly connected client starts from
func (h *Hub) snapshot(ctx context.Context) []models.WSMessage {
	var msgs []models.WSMessage
	if h.judging != nil {
		if d, err := h.judging.Dashboard(ctx); err == nil {
			msgs = append(msgs, models.WSMessage{Type: MsgJudgingProgress, Payload: d})
		}
	}
	if h.registrants != nil {
		if list := h.registrants.Current(); list.Loaded {
			msgs = append(msgs, models.WSMessage{Type: MsgRegistrants, Payload: list})
		}
	}
	return msgs
}

// readPump pumps messages from the websocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("WebSocket error", "error", err)
			}
			break
		}

		var msg models.WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			continue
		}
		c.hub.log.Debug("Received message", "type", msg.Type)
		if msg.Type == msgRefresh && c.hub.judging != nil {
			go c.hub.judging.Refresh(context.Background())
		}
	}
}

// writePump pumps messages from the hub to the websocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(54 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				// Hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			msgBytes, err := json.Marshal(message)
			if err != nil {
				c.hub.log.Error("Dropping unencodable websocket message", "type", message.Type, "error", err)
				continue
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(msgBytes)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ServeWs handles websocket requests from clients
func (h *Hub) ServeWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("WebSocket upgrade error", "error", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan models.WSMessage, 256),
	}
	// Queue the current state before the client can receive broadcasts
	for _, msg := range h.snapshot(r.Context()) {
		client.send <- msg
	}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// StartAutoRefresh refreshes the selected program's progress every interval
// until ctx is cancelled. Commits reach clients through BroadcastProgress.
func (h *Hub) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 || h.judging == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.log.Info("Auto refresh stopped")
			return
		case <-ticker.C:
			if h.judging.SelectedProgram() == 0 {
				continue
			}
			if _, err := h.judging.Refresh(ctx); err != nil {
				h.log.Warn("Auto refresh failed", "error", err)
			}
		}
	}
}

// Ensure Hub implements services.Broadcaster
var _ services.Broadcaster = (*Hub)(nil)
