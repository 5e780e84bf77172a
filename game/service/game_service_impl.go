package service

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ozank/partygames/game/engine"
	"github.com/ozank/partygames/game/room"
	"github.com/ozank/partygames/pkg/metrics"
	"github.com/ozank/partygames/validate"
)

// gameService implements GameService on top of the room registry and a
// transport broadcaster.
type gameService struct {
	registry *room.Registry
	bcast    Broadcaster
}

// NewGameService creates a new game service.
func NewGameService(registry *room.Registry, bcast Broadcaster) GameService {
	return &gameService{
		registry: registry,
		bcast:    bcast,
	}
}

// JoinRoom seats a player, creating the room on first use. Full rooms and
// already-started games drop the join silently.
func (s *gameService) JoinRoom(ctx context.Context, roomID, playerName, variant, connID string) {
	metrics.IntentsProcessed.WithLabelValues("joinRoom").Inc()

	if !validate.RoomID(roomID) || !validate.PlayerName(playerName) {
		return
	}
	v := engine.Variant(variant)
	if variant == "" {
		v = DefaultVariant
	}

	rm, err := s.registry.GetOrCreate(roomID, v)
	if err != nil {
		return
	}
	metrics.ActiveRooms.Set(float64(s.registry.Count()))

	p := &engine.Player{
		ID:     uuid.NewString(),
		Name:   strings.TrimSpace(playerName),
		ConnID: connID,
	}

	roster, started, ok := rm.Join(p)
	if !ok {
		return
	}

	s.bcast.Subscribe(connID, roomID)
	log.Printf("Player %s (%s) joined room %s as %s (%d/%d)",
		p.Name, p.ID, roomID, p.Color, len(roster), engine.MaxPlayers)

	s.bcast.Broadcast(roomID, engine.EventUpdatePlayers, roster)
	if started != nil {
		log.Printf("Room %s started a %s game", roomID, rm.Variant())
		s.publish(rm, started)
	}
}

// RollDice handles the race-variant roll intent.
func (s *gameService) RollDice(ctx context.Context, roomID, playerID string) {
	metrics.IntentsProcessed.WithLabelValues("rollDice").Inc()
	s.act(roomID, engine.Action{Type: engine.ActionRoll, ActorID: playerID})
}

// MovePiece handles the race-variant move intent.
func (s *gameService) MovePiece(ctx context.Context, roomID, playerID string, pieceIndex int) {
	metrics.IntentsProcessed.WithLabelValues("movePiece").Inc()
	s.act(roomID, engine.Action{Type: engine.ActionMove, ActorID: playerID, Index: pieceIndex})
}

// ChooseHole handles the elimination-variant decision intent.
func (s *gameService) ChooseHole(ctx context.Context, roomID, playerID string, holeIndex int) {
	metrics.IntentsProcessed.WithLabelValues("chooseHole").Inc()
	s.act(roomID, engine.Action{Type: engine.ActionChoose, ActorID: playerID, Index: holeIndex})
}

// act applies one in-game action to a known room and fans out the
// resulting events. Unknown rooms and rejected actions are silent.
func (s *gameService) act(roomID string, action engine.Action) {
	rm, err := s.registry.Get(roomID)
	if err != nil {
		return
	}
	s.publish(rm, rm.Act(action))
}

// publish broadcasts events in order; a gameEnd additionally tears the
// room down.
func (s *gameService) publish(rm *room.Room, events []engine.Event) {
	for _, ev := range events {
		s.bcast.Broadcast(rm.ID(), ev.Name, ev.Data)
		if ev.Name == engine.EventGameEnd {
			s.registry.Remove(rm.ID())
			metrics.ActiveRooms.Set(float64(s.registry.Count()))
			metrics.GamesFinished.WithLabelValues(string(rm.Variant())).Inc()
			log.Printf("Room %s finished, removed from registry", rm.ID())
		}
	}
}

// ChatMessage appends to the room chat and broadcasts the trailing window.
// The player name is not authenticated against the roster.
func (s *gameService) ChatMessage(ctx context.Context, roomID, playerName, message string) {
	metrics.IntentsProcessed.WithLabelValues("chatMessage").Inc()

	if !validate.PlayerName(playerName) || !validate.ChatMessage(message) {
		return
	}
	rm, err := s.registry.Get(roomID)
	if err != nil {
		return
	}

	window := rm.AppendChat(engine.ChatMessage{
		PlayerName: strings.TrimSpace(playerName),
		Message:    message,
		Time:       time.Now(),
	})
	s.bcast.Broadcast(roomID, engine.EventChatUpdate, window)
}

// Signal forwards a signaling payload verbatim to everyone in the room
// except the sender. The payload is never inspected.
func (s *gameService) Signal(ctx context.Context, roomID, senderConnID string, data json.RawMessage) {
	metrics.IntentsProcessed.WithLabelValues("webrtc").Inc()

	if _, err := s.registry.Get(roomID); err != nil {
		return
	}
	s.bcast.Relay(roomID, senderConnID, engine.EventWebRTC, data)
}

// Disconnect removes the departing connection's player from every room
// holding it and deletes rooms that empty out. An active game is neither
// paused nor re-pointed when the turn-holder leaves.
func (s *gameService) Disconnect(ctx context.Context, connID string) {
	metrics.IntentsProcessed.WithLabelValues("disconnect").Inc()

	for _, rm := range s.registry.List() {
		removed, roster, ok := rm.RemoveByConn(connID)
		if !ok {
			continue
		}
		log.Printf("Player %s (%s) left room %s", removed.Name, removed.ID, rm.ID())
		s.bcast.Broadcast(rm.ID(), engine.EventUpdatePlayers, roster)
		if len(roster) == 0 {
			s.registry.Remove(rm.ID())
			metrics.ActiveRooms.Set(float64(s.registry.Count()))
			log.Printf("Room %s emptied, removed from registry", rm.ID())
		}
	}
}

// ListRooms returns summaries of all live rooms, oldest first.
func (s *gameService) ListRooms(ctx context.Context) []*RoomSummary {
	rooms := s.registry.List()
	out := make([]*RoomSummary, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, &RoomSummary{
			ID:          rm.ID(),
			Variant:     rm.Variant(),
			Phase:       rm.Phase(),
			PlayerCount: rm.PlayerCount(),
			CreatedAt:   rm.CreatedAt(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// GetRoom returns the full snapshot of one room.
func (s *gameService) GetRoom(ctx context.Context, roomID string) (*room.Snapshot, error) {
	rm, err := s.registry.Get(roomID)
	if err != nil {
		return nil, err
	}
	snap := rm.Snapshot()
	return &snap, nil
}
