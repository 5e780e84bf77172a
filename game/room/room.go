package room

import (
	"sync"
	"time"

	"github.com/ozank/partygames/game/engine"
)

// Room is one isolated game: its roster, chat log, lifecycle phase, and
// (once full) the running rule-set session. All mutation happens through
// methods that hold mu, giving each room the per-room mutual exclusion the
// engine relies on.
type Room struct {
	mu sync.Mutex

	id        string
	variant   engine.Variant
	phase     engine.Phase
	players   []*engine.Player
	chat      []engine.ChatMessage
	rules     engine.RuleSet
	createdAt time.Time
}

func newRoom(id string, variant engine.Variant) *Room {
	return &Room{
		id:        id,
		variant:   variant,
		phase:     engine.PhaseLobby,
		createdAt: time.Now(),
	}
}

// ID returns the room's identifier.
func (r *Room) ID() string { return r.id }

// Variant returns the rule-set variant this room plays.
func (r *Room) Variant() engine.Variant { return r.variant }

// CreatedAt returns when the room was created.
func (r *Room) CreatedAt() time.Time { return r.createdAt }

// Phase returns the current lifecycle phase.
func (r *Room) Phase() engine.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// PlayerCount returns the roster size.
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Players returns a snapshot copy of the roster in seat order. The
// returned players are shared pointers; callers must not mutate them.
func (r *Room) Players() []*engine.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*engine.Player(nil), r.players...)
}

// Join seats a player, assigning the next seat color. It returns the
// seated player, the full roster snapshot, and any session-opening events
// when the fourth seat fills. ok is false when the join is dropped: roster
// full or game already started.
func (r *Room) Join(p *engine.Player) (roster []*engine.Player, started []engine.Event, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != engine.PhaseLobby || len(r.players) >= engine.MaxPlayers {
		return nil, nil, false
	}

	p.Color = engine.SeatColors[len(r.players)]
	r.ensureRules()
	r.rules.OnJoin(p)
	r.players = append(r.players, p)

	roster = append([]*engine.Player(nil), r.players...)

	if len(r.players) == engine.MaxPlayers {
		r.phase = engine.PhaseActive
		started = r.rules.Start(r.players)
	}
	return roster, started, true
}

// ensureRules lazily builds the rule-set. NewRuleSet only fails on an
// unknown variant, which the registry never stores.
func (r *Room) ensureRules() {
	if r.rules != nil {
		return
	}
	rules, err := engine.NewRuleSet(r.variant)
	if err != nil {
		panic(err)
	}
	r.rules = rules
}

// Act applies one in-game intent to the running session. Nil events mean
// the action was dropped (not started, unauthorized, or invalid).
func (r *Room) Act(act engine.Action) []engine.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != engine.PhaseActive || r.rules == nil {
		return nil
	}
	events := r.rules.OnAction(r.players, act)
	if r.rules.Finished() {
		r.phase = engine.PhaseFinished
	}
	return events
}

// RemoveByConn removes the player whose connection handle matches and
// returns the removed player plus the remaining roster snapshot. The turn
// pointer of an active race game is deliberately left alone.
func (r *Room) RemoveByConn(connID string) (*engine.Player, []*engine.Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.players {
		if p.ConnID == connID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			roster := append([]*engine.Player(nil), r.players...)
			return p, roster, true
		}
	}
	return nil, nil, false
}

// AppendChat appends a message to the unbounded chat log and returns the
// trailing window broadcast to members, oldest first.
func (r *Room) AppendChat(msg engine.ChatMessage) []engine.ChatMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.chat = append(r.chat, msg)
	start := len(r.chat) - engine.ChatWindow
	if start < 0 {
		start = 0
	}
	return append([]engine.ChatMessage(nil), r.chat[start:]...)
}

// ChatLen returns the total number of stored chat messages.
func (r *Room) ChatLen() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chat)
}

// Snapshot captures the room state for inspection surfaces (REST, MCP).
func (r *Room) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := Snapshot{
		ID:        r.id,
		Variant:   r.variant,
		Phase:     r.phase,
		Players:   make([]engine.Player, 0, len(r.players)),
		ChatLen:   len(r.chat),
		CreatedAt: r.createdAt,
	}
	for _, p := range r.players {
		snap.Players = append(snap.Players, *p)
	}
	if race, isRace := r.rules.(*engine.RaceGame); isRace && r.phase != engine.PhaseLobby {
		snap.Board = race.Board()
		turn := race.TurnIndex()
		snap.Turn = &turn
	}
	return snap
}

// Snapshot is a read-only view of a room.
type Snapshot struct {
	ID        string          `json:"id"`
	Variant   engine.Variant  `json:"variant"`
	Phase     engine.Phase    `json:"phase"`
	Players   []engine.Player `json:"players"`
	Board     [][]int         `json:"board,omitempty"`
	Turn      *int            `json:"turn,omitempty"`
	ChatLen   int             `json:"chat_len"`
	CreatedAt time.Time       `json:"created_at"`
}
