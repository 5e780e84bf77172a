package engine

import mrand "math/rand"

// RaceGame is the four-token race variant. Turn order is join order; the
// turn-holder rolls, then moves one token. A roll of 6 lets a home token
// enter play and keeps the turn; any consumed non-6 roll rotates the turn.
// First player with all four tokens at TrackEnd wins.
type RaceGame struct {
	turnIndex int
	pending   int // last rolled value, 0 = none live
	board     [][]int
	rng       *mrand.Rand
	finished  bool
}

// NewRaceGame creates a race rule-set using the given dice source.
func NewRaceGame(rng *mrand.Rand) *RaceGame {
	return &RaceGame{rng: rng}
}

func (g *RaceGame) Variant() Variant { return VariantRace }

// OnJoin hands a new player their four home tokens.
func (g *RaceGame) OnJoin(p *Player) {
	p.Pieces = make([]int, PieceCount)
	p.Alive = true
}

// Start snapshots the board and opens the first turn.
func (g *RaceGame) Start(players []*Player) []Event {
	g.turnIndex = 0
	g.pending = 0
	g.board = make([][]int, len(players))
	for i, p := range players {
		g.board[i] = append([]int(nil), p.Pieces...)
	}
	return []Event{
		{Name: EventGameStarted},
		g.turnEvent(players),
	}
}

func (g *RaceGame) Finished() bool { return g.finished }

// TurnIndex exposes the current turn pointer for room inspection.
func (g *RaceGame) TurnIndex() int { return g.turnIndex }

// Board returns a copy of the denormalized board snapshot.
func (g *RaceGame) Board() [][]int {
	out := make([][]int, len(g.board))
	for i, row := range g.board {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// OnAction routes roll and move intents. Anything else is dropped.
func (g *RaceGame) OnAction(players []*Player, act Action) []Event {
	if g.finished || len(players) == 0 {
		return nil
	}
	switch act.Type {
	case ActionRoll:
		return g.roll(players, act.ActorID)
	case ActionMove:
		return g.move(players, act.ActorID, act.Index)
	default:
		return nil
	}
}

// roll produces a uniform value in [1,6] for the turn-holder. Rolling again
// before moving overwrites the pending value; the reference behavior does
// not reject double rolls and we keep that.
func (g *RaceGame) roll(players []*Player, actorID string) []Event {
	holder := g.turnHolder(players)
	if holder.ID != actorID {
		return nil
	}
	g.pending = g.rng.Intn(DiceSides) + 1
	return []Event{{
		Name: EventDiceRolled,
		Data: DicePayload{Dice: g.pending, Turn: g.turnIndex},
	}}
}

// move consumes the pending roll on one of the turn-holder's tokens.
func (g *RaceGame) move(players []*Player, actorID string, pieceIndex int) []Event {
	holder := g.turnHolder(players)
	if holder.ID != actorID {
		return nil
	}
	if g.pending == 0 {
		return nil
	}
	if pieceIndex < 0 || pieceIndex >= len(holder.Pieces) {
		return nil
	}

	dice := g.pending
	pos := holder.Pieces[pieceIndex]
	switch {
	case pos == 0 && dice == EnterRoll:
		holder.Pieces[pieceIndex] = 1
	case pos > 0 && pos < TrackEnd:
		pos += dice
		if pos > TrackEnd {
			pos = TrackEnd
		}
		holder.Pieces[pieceIndex] = pos
	default:
		// Home token without a 6, or a token already finished.
		return nil
	}

	seat := g.turnIndex % len(players)
	g.board[seat] = append([]int(nil), holder.Pieces...)
	g.pending = 0

	events := []Event{{Name: EventBoardUpdated, Data: BoardPayload{Board: g.Board()}}}

	if dice != EnterRoll {
		g.turnIndex = (g.turnIndex + 1) % len(players)
	}
	events = append(events, g.turnEvent(players))

	if allFinished(holder.Pieces) {
		g.finished = true
		events = append(events, endEvent(holder))
	}
	return events
}

// turnHolder returns the player the turn pointer references. The index is
// clamped so a roster that shrank mid-game cannot panic the server; the
// turn itself is deliberately not reassigned on disconnect.
func (g *RaceGame) turnHolder(players []*Player) *Player {
	return players[g.turnIndex%len(players)]
}

func (g *RaceGame) turnEvent(players []*Player) Event {
	holder := g.turnHolder(players)
	return Event{
		Name: EventTurn,
		Data: TurnPayload{Turn: g.turnIndex, Color: holder.Color},
	}
}

func allFinished(pieces []int) bool {
	for _, pos := range pieces {
		if pos != TrackEnd {
			return false
		}
	}
	return len(pieces) > 0
}
