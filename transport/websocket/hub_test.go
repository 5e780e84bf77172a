package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ozank/partygames/game/room"
	"github.com/ozank/partygames/game/service"
)

// stubService records every dispatched intent.
type stubService struct {
	mu    sync.Mutex
	calls []string
}

func (s *stubService) record(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf(format, args...))
}

func (s *stubService) snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

func (s *stubService) JoinRoom(ctx context.Context, roomID, playerName, variant, connID string) {
	s.record("joinRoom:%s:%s:%s", roomID, playerName, variant)
}

func (s *stubService) RollDice(ctx context.Context, roomID, playerID string) {
	s.record("rollDice:%s:%s", roomID, playerID)
}

func (s *stubService) MovePiece(ctx context.Context, roomID, playerID string, pieceIndex int) {
	s.record("movePiece:%s:%s:%d", roomID, playerID, pieceIndex)
}

func (s *stubService) ChooseHole(ctx context.Context, roomID, playerID string, holeIndex int) {
	s.record("chooseHole:%s:%s:%d", roomID, playerID, holeIndex)
}

func (s *stubService) ChatMessage(ctx context.Context, roomID, playerName, message string) {
	s.record("chatMessage:%s:%s", roomID, message)
}

func (s *stubService) Signal(ctx context.Context, roomID, senderConnID string, data json.RawMessage) {
	s.record("webrtc:%s", roomID)
}

func (s *stubService) Disconnect(ctx context.Context, connID string) {
	s.record("disconnect:%s", connID)
}

func (s *stubService) ListRooms(ctx context.Context) []*service.RoomSummary { return nil }

func (s *stubService) GetRoom(ctx context.Context, roomID string) (*room.Snapshot, error) {
	return nil, room.ErrRoomNotFound
}

func testClient(h *Hub, id string) *Client {
	return &Client{
		hub:  h,
		send: make(chan []byte, sendBufferSize),
		id:   id,
	}
}

func TestNewHub(t *testing.T) {
	hub := NewHub()

	if hub == nil {
		t.Fatal("NewHub() returned nil")
	}
	if hub.clients == nil {
		t.Error("Hub clients map is nil")
	}
	if hub.rooms == nil {
		t.Error("Hub rooms map is nil")
	}
	if hub.intents == nil {
		t.Error("Hub intents channel is nil")
	}
	if hub.register == nil {
		t.Error("Hub register channel is nil")
	}
	if hub.unregister == nil {
		t.Error("Hub unregister channel is nil")
	}
}

func TestHubRegisterAndSubscribe(t *testing.T) {
	hub := NewHub()
	client := testClient(hub, "conn-1")

	hub.registerClient(client)
	if hub.clients["conn-1"] != client {
		t.Fatal("Client was not registered")
	}

	hub.Subscribe("conn-1", "lobby")
	if !hub.rooms["lobby"][client] {
		t.Error("Client was not subscribed to room")
	}

	// Subscribing an unknown connection is a no-op.
	hub.Subscribe("conn-ghost", "lobby")
	if len(hub.rooms["lobby"]) != 1 {
		t.Errorf("Expected 1 member in room, got %d", len(hub.rooms["lobby"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	svc := &stubService{}
	hub.SetService(svc)

	client := testClient(hub, "conn-1")
	hub.registerClient(client)
	hub.Subscribe("conn-1", "lobby")

	hub.unregisterClient(client)

	if _, exists := hub.clients["conn-1"]; exists {
		t.Error("Client still registered after unregister")
	}
	if _, exists := hub.rooms["lobby"]; exists {
		t.Error("Empty room group not cleaned up")
	}
	calls := svc.snapshot()
	if len(calls) != 1 || calls[0] != "disconnect:conn-1" {
		t.Errorf("Expected disconnect dispatch, got %v", calls)
	}

	// Double unregister must not panic or re-dispatch.
	hub.unregisterClient(client)
	if len(svc.snapshot()) != 1 {
		t.Error("Unregister dispatched disconnect twice")
	}
}

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	c1 := testClient(hub, "conn-1")
	c2 := testClient(hub, "conn-2")
	hub.registerClient(c1)
	hub.registerClient(c2)
	hub.Subscribe("conn-1", "lobby")
	hub.Subscribe("conn-2", "lobby")

	hub.Broadcast("lobby", "turn", map[string]int{"turn": 2})

	for _, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.send:
			var msg Message
			if err := json.Unmarshal(raw, &msg); err != nil {
				t.Fatalf("Invalid broadcast payload: %v", err)
			}
			if msg.Event != "turn" || msg.RoomID != "lobby" {
				t.Errorf("Unexpected message: %+v", msg)
			}
		default:
			t.Fatalf("Client %s received nothing", c.id)
		}
	}
}

func TestHubRelayExcludesSender(t *testing.T) {
	hub := NewHub()
	sender := testClient(hub, "conn-1")
	peer := testClient(hub, "conn-2")
	hub.registerClient(sender)
	hub.registerClient(peer)
	hub.Subscribe("conn-1", "lobby")
	hub.Subscribe("conn-2", "lobby")

	hub.Relay("lobby", "conn-1", "webrtc", json.RawMessage(`{"sdp":"x"}`))

	select {
	case <-sender.send:
		t.Error("Sender must not receive its own relayed payload")
	default:
	}
	select {
	case <-peer.send:
	default:
		t.Error("Peer received nothing")
	}
}

func TestHubEvictsSlowClient(t *testing.T) {
	hub := NewHub()
	svc := &stubService{}
	hub.SetService(svc)

	slow := &Client{hub: hub, send: make(chan []byte), id: "conn-slow"}
	hub.registerClient(slow)
	hub.Subscribe("conn-slow", "lobby")

	// Nobody drains the unbuffered channel, so the fan-out must evict.
	hub.Broadcast("lobby", "turn", nil)

	if _, exists := hub.clients["conn-slow"]; exists {
		t.Error("Slow client was not evicted")
	}
}

func TestHubDispatch(t *testing.T) {
	hub := NewHub()
	svc := &stubService{}
	hub.SetService(svc)
	client := testClient(hub, "conn-1")

	hub.dispatch(client, Intent{Intent: "joinRoom", RoomID: "lobby", PlayerName: "Ayşe", Variant: "race"})
	hub.dispatch(client, Intent{Intent: "rollDice", RoomID: "lobby", PlayerID: "p1"})
	hub.dispatch(client, Intent{Intent: "movePiece", RoomID: "lobby", PlayerID: "p1", PieceIndex: 2})
	hub.dispatch(client, Intent{Intent: "chooseHole", RoomID: "pit", PlayerID: "p2", HoleIndex: 1})
	hub.dispatch(client, Intent{Intent: "chatMessage", RoomID: "lobby", PlayerName: "Ayşe", Message: "hi"})
	hub.dispatch(client, Intent{Intent: "webrtc", RoomID: "lobby", Data: json.RawMessage(`{}`)})
	hub.dispatch(client, Intent{Intent: "nonsense"})

	want := []string{
		"joinRoom:lobby:Ayşe:race",
		"rollDice:lobby:p1",
		"movePiece:lobby:p1:2",
		"chooseHole:pit:p2:1",
		"chatMessage:lobby:hi",
		"webrtc:lobby",
	}
	got := svc.snapshot()
	if len(got) != len(want) {
		t.Fatalf("Expected %d dispatches, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Dispatch %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestServeWSEndToEnd(t *testing.T) {
	hub := NewHub()
	svc := &stubService{}
	hub.SetService(svc)
	go hub.Run()

	server := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	payload := `{"intent":"joinRoom","roomId":"lobby","playerName":"Ayşe","variant":"race"}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		for _, call := range svc.snapshot() {
			if call == "joinRoom:lobby:Ayşe:race" {
				return
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Intent never dispatched; calls: %v", svc.snapshot())
}
