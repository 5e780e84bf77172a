// Package room holds the room registry and per-room state for the party
// game server.
//
// The room package implements:
//   - Registry: the process-wide room map, keyed by client-chosen ids
//   - Room: roster, chat log, lifecycle phase, and the running rule-set
//   - Join/leave lifecycle and the Lobby -> Active -> Finished transitions
//
// Lifecycle:
//
// A room is created on the first join for an unknown id and destroyed when
// its roster empties or its game reaches a terminal state. The fourth join
// freezes the roster, activates the rule-set, and returns the opening
// events for broadcast.
//
// Concurrency:
//
// The Registry guards its map with an RWMutex; every Room serializes its
// own mutations behind a per-room mutex, so concurrent intents for
// different rooms never contend and intents for the same room are applied
// one at a time in arrival order.
package room
