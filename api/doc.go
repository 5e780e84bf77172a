// Package api provides the HTTP surface of the party game server.
//
// The api package implements:
//   - Read-only REST endpoints for room inspection (/api/rooms)
//   - A health check endpoint (/api/health)
//   - The WebSocket upgrade endpoint (/ws)
//   - Prometheus metrics (/metrics) and static client assets (/)
//
// Game state is never mutated over REST; all intents travel over the
// WebSocket channel. The REST surface exists for dashboards, the MCP
// proxy, and debugging.
package api
