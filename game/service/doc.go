// Package service provides the business logic layer for the party game
// server.
//
// The service package implements:
//   - All client intents (join, roll, move, choose, chat, signaling)
//   - Disconnect handling and room teardown
//   - Room inspection for REST and MCP surfaces
//
// Architecture:
//
// The service layer sits between the transports (WebSocket/HTTP/MCP) and
// the room registry. Transports decode wire messages into typed calls; the
// service validates boundary input, applies the intent to the owning room,
// and fans the resulting events out through a Broadcaster. All event
// payload shapes are defined in the engine package.
//
// Error policy:
//
// Invalid intents are dropped silently: unauthorized actors, invalid moves,
// unknown rooms, and full rooms all result in no state change and no
// broadcast. Nothing is reported back to the offending client.
//
// Usage:
//
//	registry := room.NewRegistry()
//	svc := service.NewGameService(registry, hub)
//
//	svc.JoinRoom(ctx, "lobby-1", "Ayşe", "race", connID)
//	svc.RollDice(ctx, "lobby-1", playerID)
package service
