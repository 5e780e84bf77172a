package engine

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
)

// RuleSet is the contract one game variant implements. The room core owns
// the roster and lifecycle; a RuleSet only decides what joins initialize,
// what actions do, and when the game is over. All methods are called with
// the room lock held, so implementations need no locking of their own.
type RuleSet interface {
	// Variant identifies the rule-set.
	Variant() Variant

	// OnJoin initializes variant-specific fields on a freshly seated
	// player. Called once per player, before the game starts.
	OnJoin(p *Player)

	// Start activates the session once the roster is full and returns
	// the opening events (gameStarted, initial turn, ...).
	Start(players []*Player) []Event

	// OnAction applies one in-game intent. Unauthorized or invalid
	// actions return nil: no state change, no events. A win is signaled
	// by including an EventGameEnd in the returned events.
	OnAction(players []*Player, act Action) []Event

	// Finished reports whether a win condition has been reached.
	Finished() bool
}

// NewRuleSet builds the rule-set for a variant. The returned engine owns a
// dice source seeded from crypto/rand so outcomes are not predictable from
// process start time.
func NewRuleSet(v Variant) (RuleSet, error) {
	rng := mrand.New(mrand.NewSource(cryptoSeed()))
	switch v {
	case VariantRace:
		return NewRaceGame(rng), nil
	case VariantFloors:
		return NewFloorsGame(rng), nil
	default:
		return nil, fmt.Errorf("unknown game variant %q", v)
	}
}

// cryptoSeed returns a seed drawn from the OS entropy source.
func cryptoSeed() int64 {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failing is unrecoverable for fairness; panic loudly
		// rather than degrade to a fixed seed.
		panic(fmt.Sprintf("engine: crypto/rand unavailable: %v", err))
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// findPlayer returns the player with the given id, or nil.
func findPlayer(players []*Player, id string) *Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// endEvent builds the terminal gameEnd event for a winner.
func endEvent(winner *Player) Event {
	return Event{Name: EventGameEnd, Data: EndPayload{Winner: winner}}
}
