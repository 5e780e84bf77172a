// Package engine provides the core game rules for the party game server.
//
// The engine package implements:
//   - The RuleSet interface shared by all game variants
//   - The four-token race variant (turn-based, dice-driven)
//   - The elimination "floors" variant (independent 50/50 decisions)
//   - Player, event, and payload types for the broadcast protocol
//
// Core Types:
//
// RuleSet is the contract a variant implements: OnJoin seeds a player's
// variant-specific fields, Start opens the session once the roster fills,
// and OnAction applies one in-game intent and returns the events to fan
// out. Player carries both the shared identity fields and the per-variant
// progress (race tokens, or floor and alive flag).
//
// Usage:
//
//	rules, err := engine.NewRuleSet(engine.VariantRace)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	rules.OnJoin(player)
//	events := rules.Start(players)
//	events = rules.OnAction(players, engine.Action{
//		Type:    engine.ActionRoll,
//		ActorID: player.ID,
//	})
//
// Authorization:
//
// The engine authorizes by player ID, never by connection handle. Invalid
// or unauthorized actions return nil events and change no state; the
// absence of a broadcast is the only signal the caller gets.
//
// Concurrency:
//
// Rule-sets are not safe for concurrent use. The room layer serializes
// every call under the owning room's lock.
package engine
