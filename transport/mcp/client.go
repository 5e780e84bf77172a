package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ozank/partygames/game/room"
	"github.com/ozank/partygames/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Party Games Server",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Party Games Server - MCP Interface

This is a thin client that proxies all requests to the REST API server.

The server hosts multiplayer party game rooms for 2-4 players. Gameplay
happens over websockets; this interface is read-only observation.

AVAILABLE TOOLS:
- list_rooms: List all active rooms with their variant and player count
- get_room: Inspect a single room (players, board, whose turn it is)
- game_instructions: Get the rules for both game variants`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_rooms",
		Description: "List all active game rooms",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRooms)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_room",
		Description: "Get details of a specific room",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"room_id": map[string]interface{}{
					"type":        "string",
					"description": "Room ID to inspect",
				},
			},
			Required: []string{"room_id"},
		},
	}, c.handleGetRoom)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules for the available game variants",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server for HTTP transport
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// Tool handlers

func (c *Client) handleListRooms(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Rooms []*service.RoomSummary `json:"rooms"`
		Count int                    `json:"count"`
	}

	err := c.apiCall("GET", "/api/rooms", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if response.Count == 0 {
		return mcp.NewToolResultText("No active rooms."), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Active rooms: %d\n\n", response.Count))
	for _, r := range response.Rooms {
		sb.WriteString(fmt.Sprintf("- %s: variant=%s phase=%s players=%d\n",
			r.ID, r.Variant, r.Phase, r.PlayerCount))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGetRoom(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	roomID, _ := args["room_id"].(string)
	if roomID == "" {
		return mcp.NewToolResultError("room_id is required"), nil
	}

	var snap room.Snapshot
	err := c.apiCall("GET", "/api/rooms/"+roomID, nil, &snap)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Room: %s\nVariant: %s\nPhase: %s\n", snap.ID, snap.Variant, snap.Phase))
	sb.WriteString(fmt.Sprintf("Players: %d\n", len(snap.Players)))
	for _, p := range snap.Players {
		sb.WriteString(fmt.Sprintf("- %s (%s)", p.Name, p.Color))
		if p.Floor > 0 {
			sb.WriteString(fmt.Sprintf(" floor=%d alive=%t", p.Floor, p.Alive))
		}
		if len(p.Pieces) > 0 {
			sb.WriteString(fmt.Sprintf(" pieces=%v", p.Pieces))
		}
		sb.WriteString("\n")
	}
	if snap.Turn != nil {
		sb.WriteString(fmt.Sprintf("Turn: seat %d\n", *snap.Turn))
	}
	sb.WriteString(fmt.Sprintf("Chat messages: %d\n", snap.ChatLen))

	return mcp.NewToolResultText(sb.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := `PARTY GAMES SERVER - RULES

Rooms hold 2-4 players. Each player gets a color by join order:
red, green, yellow, blue. The game starts automatically when the
fourth player joins.

VARIANT: race
- Each player has 4 pieces that travel from home to square 58.
- On your turn, roll the dice (1-6), then move one piece.
- A piece still at home needs a 6 to enter the track (it enters on
  square 1). Pieces on the track advance by the dice value; moves
  past 58 are clamped to 58.
- Rolling a 6 keeps your turn. Anything else passes it clockwise.
- First player to bring all 4 pieces to square 58 wins.

VARIANT: floors
- Everyone starts on floor 4 and wants to reach floor 1.
- Each floor has 2 holes. Pick one: one of them is safe and takes
  you down a floor, the other eliminates you. 50/50 odds.
- You win by reaching floor 1, or by being the last player alive.

All gameplay happens over the websocket endpoint /ws. This MCP
interface is observation only.`

	return mcp.NewToolResultText(instructions), nil
}
