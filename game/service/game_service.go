package service

import (
	"context"
	"encoding/json"

	"github.com/ozank/partygames/game/room"
)

// GameService defines all room and game operations. Intent methods
// deliberately return nothing: invalid or unauthorized intents are dropped
// with no state change and no broadcast, so the absence of an event is the
// only signal a client gets.
type GameService interface {
	// Intents (client -> server)
	JoinRoom(ctx context.Context, roomID, playerName, variant, connID string)
	RollDice(ctx context.Context, roomID, playerID string)
	MovePiece(ctx context.Context, roomID, playerID string, pieceIndex int)
	ChooseHole(ctx context.Context, roomID, playerID string, holeIndex int)
	ChatMessage(ctx context.Context, roomID, playerName, message string)
	Signal(ctx context.Context, roomID, senderConnID string, data json.RawMessage)
	Disconnect(ctx context.Context, connID string)

	// Inspection (REST / MCP)
	ListRooms(ctx context.Context) []*RoomSummary
	GetRoom(ctx context.Context, roomID string) (*room.Snapshot, error)
}

// Broadcaster is the transport-side fan-out the service publishes through.
// Implementations must deliver events for one room in the order they are
// published.
type Broadcaster interface {
	// Subscribe adds a connection to a room's broadcast group.
	Subscribe(connID, roomID string)

	// Broadcast delivers an event to every connection in a room.
	Broadcast(roomID, event string, data interface{})

	// Relay delivers an event to every connection in a room except one;
	// used for the signaling pass-through.
	Relay(roomID, excludeConnID, event string, data interface{})
}
