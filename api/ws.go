package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const clientSendBuffer = 8

// Hub pushes topPoolCoins and price updates to connected websocket
// clients. Messages are `{"type": ..., "data": ...}` JSON frames; a client
// that cannot keep up has frames dropped, not queued without bound.
type Hub struct {
	poolsService  PoolsService
	pricesService PricesService
	upgrader      websocket.Upgrader

	mu      sync.Mutex
	clients map[*wsClient]struct{}
	stopped bool
	cancel  context.CancelFunc
}

type wsClient struct {
	conn *websocket.Conn
	send chan []byte
}

type wsMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// NewHub creates a websocket hub over the pools and prices services
func NewHub(poolsService PoolsService, pricesService PricesService) *Hub {
	return &Hub{
		poolsService:  poolsService,
		pricesService: pricesService,
		upgrader: websocket.Upgrader{
			// Browsers send the frontend origin; CORS policy is already
			// enforced by the HTTP middleware for the rest of the API
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*wsClient]struct{}),
	}
}

// Run forwards service update notifications to connected clients until the
// context is cancelled
func (h *Hub) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	h.mu.Lock()
	h.cancel = cancel
	h.mu.Unlock()

	poolUpdates := h.poolsService.SubscribeOnUpdate()
	priceUpdates := h.pricesService.SubscribeOnUpdate()
	defer h.poolsService.Unsubscribe(poolUpdates)
	defer h.pricesService.Unsubscribe(priceUpdates)

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-poolUpdates:
			if !ok {
				return
			}
			h.broadcast("topPoolCoins", h.poolsService.TopPoolCoins())
		case _, ok := <-priceUpdates:
			if !ok {
				return
			}
			h.broadcast("prices", h.pricesService.LatestPrices())
		}
	}
}

// Stop disconnects all clients and halts the hub
func (h *Hub) Stop() {
	h.mu.Lock()
	h.stopped = true
	if h.cancel != nil {
		h.cancel()
	}
	clients := make([]*wsClient, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.clients = make(map[*wsClient]struct{})
	h.mu.Unlock()

	for _, client := range clients {
		close(client.send)
	}
}

// HandleConnection upgrades an HTTP request to a websocket subscription
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WS: upgrade failed: %v", err)
		return
	}

	client := &wsClient{
		conn: conn,
		send: make(chan []byte, clientSendBuffer),
	}

	h.mu.Lock()
	if h.stopped {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[client] = struct{}{}
	h.mu.Unlock()

	go h.writePump(client)
	go h.readPump(client)
}

// broadcast sends one typed frame to every connected client
func (h *Hub) broadcast(messageType string, data interface{}) {
	frame, err := json.Marshal(wsMessage{Type: messageType, Data: data})
	if err != nil {
		log.Printf("WS: failed to marshal %s frame: %v", messageType, err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- frame:
		default:
			// Slow consumer; drop the frame
		}
	}
}

// writePump drains the client's send channel onto the connection
func (h *Hub) writePump(client *wsClient) {
	defer client.conn.Close()
	for frame := range client.send {
		client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.drop(client)
			return
		}
	}
	client.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
}

// readPump discards inbound frames and detects disconnects
func (h *Hub) readPump(client *wsClient) {
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			h.drop(client)
			return
		}
	}
}

// drop removes a client and closes its send channel once
func (h *Hub) drop(client *wsClient) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
	}
	h.mu.Unlock()

	if ok {
		close(client.send)
	}
}
