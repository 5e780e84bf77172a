package engine

import (
	mrand "math/rand"
	"testing"
)

// scriptedSource feeds predetermined values to math/rand so dice and hole
// outcomes are exact in tests. Values are shifted into the high bits so
// Int31-based derivation sees them unchanged: Intn(6) yields v%6+1 and
// Intn(2) yields v&1 for small scripted v.
type scriptedSource struct {
	vals []int64
	i    int
}

func (s *scriptedSource) Int63() int64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v << 32
}

func (s *scriptedSource) Seed(int64) {}

// scriptedRand returns a rand whose Intn(6) results are (v%6)+1 and whose
// Intn(2) results are v&1, for each scripted v in order.
func scriptedRand(vals ...int64) *mrand.Rand {
	return mrand.New(&scriptedSource{vals: vals})
}

func seatedPlayers(rules RuleSet, n int) []*Player {
	players := make([]*Player, 0, n)
	for i := 0; i < n; i++ {
		p := &Player{
			ID:     string(rune('a' + i)),
			Name:   "Player" + string(rune('1'+i)),
			Color:  SeatColors[i],
			ConnID: "conn-" + string(rune('1'+i)),
		}
		rules.OnJoin(p)
		players = append(players, p)
	}
	return players
}

func TestRaceStart(t *testing.T) {
	g := NewRaceGame(scriptedRand(0))
	players := seatedPlayers(g, 4)

	events := g.Start(players)
	if len(events) != 2 {
		t.Fatalf("Expected 2 start events, got %d", len(events))
	}
	if events[0].Name != EventGameStarted {
		t.Errorf("Expected %s first, got %s", EventGameStarted, events[0].Name)
	}
	turn, ok := events[1].Data.(TurnPayload)
	if !ok || events[1].Name != EventTurn {
		t.Fatalf("Expected turn payload, got %+v", events[1])
	}
	if turn.Turn != 0 || turn.Color != ColorRed {
		t.Errorf("Expected turn 0/red, got %d/%s", turn.Turn, turn.Color)
	}
}

func TestRaceOnJoin(t *testing.T) {
	g := NewRaceGame(scriptedRand(0))
	p := &Player{ID: "x"}
	g.OnJoin(p)

	if len(p.Pieces) != PieceCount {
		t.Fatalf("Expected %d pieces, got %d", PieceCount, len(p.Pieces))
	}
	for i, pos := range p.Pieces {
		if pos != 0 {
			t.Errorf("Piece %d should start at home, got %d", i, pos)
		}
	}
}

func TestRaceRollOnlyTurnHolder(t *testing.T) {
	g := NewRaceGame(scriptedRand(5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	// Not player b's turn.
	events := g.OnAction(players, Action{Type: ActionRoll, ActorID: players[1].ID})
	if events != nil {
		t.Fatalf("Expected no events for off-turn roll, got %+v", events)
	}
	if g.pending != 0 {
		t.Errorf("Off-turn roll must not set a pending value, got %d", g.pending)
	}

	events = g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	if len(events) != 1 || events[0].Name != EventDiceRolled {
		t.Fatalf("Expected diceRolled, got %+v", events)
	}
	dice := events[0].Data.(DicePayload)
	if dice.Dice != 6 || dice.Turn != 0 {
		t.Errorf("Expected dice 6 on turn 0, got %d on %d", dice.Dice, dice.Turn)
	}
}

func TestRaceMoveRequiresPendingRoll(t *testing.T) {
	g := NewRaceGame(scriptedRand(5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})
	if events != nil {
		t.Errorf("Expected move without roll to be dropped, got %+v", events)
	}
}

func TestRaceHomeExitRequiresSix(t *testing.T) {
	// First roll scripted to 3, second to 6.
	g := NewRaceGame(scriptedRand(2, 5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})
	if events != nil {
		t.Fatalf("Home token must not exit on a 3, got %+v", events)
	}
	if players[0].Pieces[0] != 0 {
		t.Errorf("Piece moved on invalid exit: %d", players[0].Pieces[0])
	}

	// The rejected move did not consume the roll; roll again (overwrite)
	// and exit on the 6.
	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events = g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})
	if len(events) != 2 {
		t.Fatalf("Expected boardUpdated+turn, got %+v", events)
	}
	if players[0].Pieces[0] != 1 {
		t.Errorf("Expected piece at 1 after exit, got %d", players[0].Pieces[0])
	}
}

func TestRaceSixKeepsTurn(t *testing.T) {
	g := NewRaceGame(scriptedRand(5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})

	turn := events[1].Data.(TurnPayload)
	if turn.Turn != 0 {
		t.Errorf("A consumed 6 must keep the turn, got turn %d", turn.Turn)
	}
}

func TestRaceNonSixRotatesTurn(t *testing.T) {
	// 6 to exit, then 3 to advance and rotate.
	g := NewRaceGame(scriptedRand(5, 2))
	players := seatedPlayers(g, 4)
	g.Start(players)

	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})

	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})

	if players[0].Pieces[0] != 4 {
		t.Errorf("Expected piece at 4 (1+3), got %d", players[0].Pieces[0])
	}
	turn := events[1].Data.(TurnPayload)
	if turn.Turn != 1 || turn.Color != ColorGreen {
		t.Errorf("Expected turn to rotate to 1/green, got %d/%s", turn.Turn, turn.Color)
	}
}

func TestRaceDoubleRollOverwrites(t *testing.T) {
	// Reference behavior: a second roll before moving replaces the
	// pending value instead of being rejected.
	g := NewRaceGame(scriptedRand(2, 5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	if g.pending != 3 {
		t.Fatalf("Expected pending 3, got %d", g.pending)
	}
	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	if g.pending != 6 {
		t.Fatalf("Expected second roll to overwrite pending with 6, got %d", g.pending)
	}
}

func TestRaceClampAtTrackEnd(t *testing.T) {
	g := NewRaceGame(scriptedRand(5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	players[0].Pieces[0] = 55
	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})

	if players[0].Pieces[0] != TrackEnd {
		t.Errorf("Expected clamp to %d, got %d", TrackEnd, players[0].Pieces[0])
	}
}

func TestRaceFinishedPieceImmovable(t *testing.T) {
	g := NewRaceGame(scriptedRand(2))
	players := seatedPlayers(g, 4)
	g.Start(players)

	players[0].Pieces[0] = TrackEnd
	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 0})

	if events != nil {
		t.Errorf("Finished piece move should be a no-op, got %+v", events)
	}
	if players[0].Pieces[0] != TrackEnd {
		t.Errorf("Finished piece must stay at %d, got %d", TrackEnd, players[0].Pieces[0])
	}
}

func TestRaceWin(t *testing.T) {
	g := NewRaceGame(scriptedRand(0)) // dice = 1
	players := seatedPlayers(g, 4)
	g.Start(players)

	players[0].Pieces = []int{TrackEnd, TrackEnd, TrackEnd, 57}
	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 3})

	if len(events) != 3 {
		t.Fatalf("Expected boardUpdated+turn+gameEnd, got %d events", len(events))
	}
	end := events[2]
	if end.Name != EventGameEnd {
		t.Fatalf("Expected gameEnd, got %s", end.Name)
	}
	winner := end.Data.(EndPayload).Winner
	if winner == nil || winner.ID != players[0].ID {
		t.Errorf("Expected winner %s, got %+v", players[0].ID, winner)
	}
	if !g.Finished() {
		t.Error("Expected game to be finished after win")
	}

	// Terminal: further actions are dropped.
	if ev := g.OnAction(players, Action{Type: ActionRoll, ActorID: players[1].ID}); ev != nil {
		t.Errorf("Finished game must ignore actions, got %+v", ev)
	}
}

func TestRaceTurnHolderClampAfterLeave(t *testing.T) {
	g := NewRaceGame(scriptedRand(2))
	players := seatedPlayers(g, 4)
	g.Start(players)
	g.turnIndex = 3

	// Fourth player leaves mid-game; the clamp keeps reads in range
	// without reassigning the turn.
	players = players[:3]
	holder := g.turnHolder(players)
	if holder != players[0] {
		t.Errorf("Expected clamped holder to be seat 0, got %+v", holder)
	}
}

func TestRaceBoardSnapshot(t *testing.T) {
	g := NewRaceGame(scriptedRand(5))
	players := seatedPlayers(g, 4)
	g.Start(players)

	g.OnAction(players, Action{Type: ActionRoll, ActorID: players[0].ID})
	events := g.OnAction(players, Action{Type: ActionMove, ActorID: players[0].ID, Index: 2})

	board := events[0].Data.(BoardPayload).Board
	if len(board) != 4 {
		t.Fatalf("Expected 4 board rows, got %d", len(board))
	}
	if board[0][2] != 1 {
		t.Errorf("Expected board[0][2] == 1, got %d", board[0][2])
	}

	// The broadcast snapshot is a copy, not an alias of engine state.
	board[0][2] = 99
	if g.board[0][2] == 99 {
		t.Error("Board payload must not alias internal state")
	}
}
