// Package websocket provides the real-time transport for the party game
// server.
//
// The websocket package implements:
//   - The connection gateway: upgrade, connection handles, lifecycle
//   - Intent routing from clients to the game service
//   - Room-scoped event broadcasting and the signaling relay
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each connection is handled by a read and a write
// goroutine; decoded intents funnel into the Hub's single Run goroutine,
// which dispatches them to the game service one at a time. That single
// dispatcher is what gives rooms their ordering guarantee: events reach
// every member in the order the corresponding intents were processed.
//
// Message Protocol:
//
// Messages are JSON-encoded:
//   - Incoming: {"intent": "rollDice", "roomId": "lobby", "playerId": "..."}
//   - Outgoing: {"roomId": "lobby", "event": "diceRolled", "data": {...}}
//
// Connection Lifecycle:
//
// 1. Client connects to /ws and receives a server-side connection handle
// 2. A joinRoom intent subscribes the connection to a room's broadcasts
// 3. Game intents mutate room state; events fan out to the whole room
// 4. Disconnection removes the player from its room and may delete it
//
// Slow clients:
//
// Each client has a bounded send buffer. A client that cannot keep up is
// evicted instead of being allowed to stall the room's fan-out.
package websocket
