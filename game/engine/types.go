package engine

import "time"

// Variant identifies a rule-set.
type Variant string

const (
	// VariantRace is the four-token race game.
	VariantRace Variant = "race"
	// VariantFloors is the elimination game ("choose the safe passage").
	VariantFloors Variant = "floors"
)

// Phase is the lifecycle state of a room's game.
type Phase string

const (
	PhaseLobby    Phase = "lobby"
	PhaseActive   Phase = "active"
	PhaseFinished Phase = "finished"
)

// Color is a player's seat color, assigned in join order.
type Color string

const (
	ColorRed    Color = "red"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlue   Color = "blue"
)

// SeatColors lists the colors handed out by join order.
var SeatColors = [MaxPlayers]Color{ColorRed, ColorGreen, ColorYellow, ColorBlue}

// Rule constants shared by the variants.
const (
	// MaxPlayers is the hard roster cap per room.
	MaxPlayers = 4

	// PieceCount is the number of tokens each race player owns.
	PieceCount = 4
	// TrackEnd is the terminal track position for a race token.
	TrackEnd = 58
	// EnterRoll is the dice value that lets a home token enter play.
	EnterRoll = 6
	// DiceSides is the number of faces on the dice.
	DiceSides = 6

	// StartFloor is where every elimination player begins.
	StartFloor = 4
	// BottomFloor is the floor a player must reach to win by descent.
	BottomFloor = 1
	// HoleCount is the number of passages offered per decision.
	HoleCount = 2
)

// Player is one seat in a room. Join order determines Color and, for the
// race variant, turn order. Variant-specific progress lives directly on the
// player: race players use Pieces, elimination players use Floor and Alive.
type Player struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color Color  `json:"color"`

	// ConnID locates the player on disconnect. It is never the
	// authorization key for game actions; actions authorize by ID.
	ConnID string `json:"-"`

	// Race: 0 = home, 1..57 = in transit, 58 = finished.
	Pieces []int `json:"pieces,omitempty"`

	// Floors.
	Floor int  `json:"floor,omitempty"`
	Alive bool `json:"alive"`
}

// ActionType names an in-game intent handled by a rule-set.
type ActionType string

const (
	ActionRoll   ActionType = "rollDice"
	ActionMove   ActionType = "movePiece"
	ActionChoose ActionType = "chooseHole"
)

// Action is a decoded in-game intent. Index is the piece index for
// ActionMove and the hole index for ActionChoose; it is unused for
// ActionRoll.
type Action struct {
	Type    ActionType
	ActorID string
	Index   int
}

// Event is a state-change notification fanned out to every connection in a
// room. Name is one of the Event* constants.
type Event struct {
	Name string      `json:"event"`
	Data interface{} `json:"data,omitempty"`
}

// Broadcast event names.
const (
	EventUpdatePlayers = "updatePlayers"
	EventGameStarted   = "gameStarted"
	EventTurn          = "turn"
	EventDiceRolled    = "diceRolled"
	EventBoardUpdated  = "boardUpdated"
	EventPlayerResult  = "playerResult"
	EventGameEnd       = "gameEnd"
	EventChatUpdate    = "chatUpdate"
	EventWebRTC        = "webrtc"
)

// TurnPayload announces the current turn-holder.
type TurnPayload struct {
	Turn  int   `json:"turn"`
	Color Color `json:"color"`
}

// DicePayload carries a fresh roll.
type DicePayload struct {
	Dice int `json:"dice"`
	Turn int `json:"turn"`
}

// BoardPayload is the denormalized race board snapshot, one row of piece
// positions per player in seat order.
type BoardPayload struct {
	Board [][]int `json:"board"`
}

// Outcome of a single elimination decision.
type Outcome string

const (
	OutcomeDescended  Outcome = "descended"
	OutcomeEliminated Outcome = "eliminated"
)

// ResultPayload reports one elimination decision.
type ResultPayload struct {
	PlayerID string  `json:"playerId"`
	Outcome  Outcome `json:"outcome"`
	Floor    int     `json:"floor"`
}

// EndPayload names the winner.
type EndPayload struct {
	Winner *Player `json:"winner"`
}

// ChatMessage is one chat log entry. Storage is unbounded; broadcasts carry
// only the most recent ChatWindow entries.
type ChatMessage struct {
	PlayerName string    `json:"playerName"`
	Message    string    `json:"message"`
	Time       time.Time `json:"time"`
}

// ChatWindow is how many trailing chat messages a chatUpdate carries.
const ChatWindow = 20
