package websocket

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ozank/partygames/game/service"
	"github.com/ozank/partygames/pkg/metrics"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Intent is the inbound message envelope. Field presence depends on the
// intent name; unknown intents are dropped.
type Intent struct {
	Intent     string          `json:"intent"`
	RoomID     string          `json:"roomId"`
	PlayerID   string          `json:"playerId,omitempty"`
	PlayerName string          `json:"playerName,omitempty"`
	Variant    string          `json:"variant,omitempty"`
	PieceIndex int             `json:"pieceIndex"`
	HoleIndex  int             `json:"holeIndex"`
	Message    string          `json:"message,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Message is the outbound event envelope broadcast to room members.
type Message struct {
	RoomID string      `json:"roomId"`
	Event  string      `json:"event"`
	Data   interface{} `json:"data,omitempty"`
}

// inbound pairs a decoded intent with the connection it came from.
type inbound struct {
	client *Client
	intent Intent
}

// Hub maintains the set of active clients and routes intents to the game
// service. All intents from all connections are dispatched by the single
// Run goroutine, so room events are fanned out in exactly the order the
// corresponding intents were processed. The hub's maps are touched only
// from that goroutine.
type Hub struct {
	// Registered clients by connection id.
	clients map[string]*Client

	// Broadcast groups by room id.
	rooms map[string]map[*Client]bool

	// Inbound intents from clients.
	intents chan inbound

	// Register requests from clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	service service.GameService
}

// NewHub creates a new WebSocket hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[*Client]bool),
		intents:    make(chan inbound),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// SetService wires the game service the hub dispatches intents to. Must be
// called before Run.
func (h *Hub) SetService(svc service.GameService) {
	h.service = svc
}

// Run starts the hub's event loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case in := <-h.intents:
			h.dispatch(in.client, in.intent)
		}
	}
}

// ServeWS handles WebSocket requests from clients.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	client := newClient(h, conn)
	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// dispatch routes one decoded intent to the service. Malformed or unknown
// intents are dropped without a reply.
func (h *Hub) dispatch(client *Client, in Intent) {
	if h.service == nil {
		return
	}
	ctx := context.Background()

	switch in.Intent {
	case "joinRoom":
		h.service.JoinRoom(ctx, in.RoomID, in.PlayerName, in.Variant, client.id)
	case "rollDice":
		h.service.RollDice(ctx, in.RoomID, in.PlayerID)
	case "movePiece":
		h.service.MovePiece(ctx, in.RoomID, in.PlayerID, in.PieceIndex)
	case "chooseHole":
		h.service.ChooseHole(ctx, in.RoomID, in.PlayerID, in.HoleIndex)
	case "chatMessage":
		h.service.ChatMessage(ctx, in.RoomID, in.PlayerName, in.Message)
	case "webrtc":
		h.service.Signal(ctx, in.RoomID, client.id, in.Data)
	default:
		log.Printf("Dropping unknown intent %q from %s", in.Intent, client.id)
	}
}

// Subscribe adds a connection to a room's broadcast group. Part of the
// service.Broadcaster contract; only called during intent dispatch, on the
// hub goroutine.
func (h *Hub) Subscribe(connID, roomID string) {
	client, ok := h.clients[connID]
	if !ok {
		return
	}
	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]bool)
	}
	h.rooms[roomID][client] = true
}

// Broadcast sends an event to every connection in a room.
func (h *Hub) Broadcast(roomID, event string, data interface{}) {
	h.fanOut(roomID, nil, event, data)
}

// Relay sends an event to every connection in a room except one.
func (h *Hub) Relay(roomID, excludeConnID, event string, data interface{}) {
	h.fanOut(roomID, h.clients[excludeConnID], event, data)
}

// fanOut marshals one event and queues it to every subscribed client. A
// client whose send buffer is full is evicted rather than allowed to block
// the room.
func (h *Hub) fanOut(roomID string, exclude *Client, event string, data interface{}) {
	payload, err := json.Marshal(Message{RoomID: roomID, Event: event, Data: data})
	if err != nil {
		log.Printf("Failed to marshal %s event for room %s: %v", event, roomID, err)
		return
	}

	for client := range h.rooms[roomID] {
		if client == exclude {
			continue
		}
		select {
		case client.send <- payload:
		default:
			// Client's send channel is full, close it
			h.unregisterClient(client)
		}
	}
}

// registerClient tracks a freshly upgraded connection.
func (h *Hub) registerClient(client *Client) {
	h.clients[client.id] = client
	metrics.ConnectedClients.Set(float64(len(h.clients)))
	log.Printf("Client %s connected (total clients: %d)", client.id, len(h.clients))
}

// unregisterClient removes a connection from every group and tells the
// service the player behind it is gone.
func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client.id]; !ok {
		return
	}
	delete(h.clients, client.id)
	for roomID, members := range h.rooms {
		if members[client] {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	close(client.send)
	metrics.ConnectedClients.Set(float64(len(h.clients)))
	log.Printf("Client %s disconnected (remaining clients: %d)", client.id, len(h.clients))

	if h.service != nil {
		h.service.Disconnect(context.Background(), client.id)
	}
}
