// Package mcp exposes a read-only MCP tool surface over the REST API.
//
// The client proxies every tool call to the HTTP server rather than
// touching game state directly, so the MCP surface can never bypass
// the websocket dispatch path that serializes room mutations.
package mcp
