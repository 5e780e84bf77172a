package engine

import mrand "math/rand"

// FloorsGame is the elimination variant. There is no turn pointer: every
// living player descends independently by picking one of two passages per
// floor. Each pick is an independent 50/50; a wrong pick eliminates the
// player, a right one moves them down a floor. A living player reaching
// BottomFloor wins outright; failing that, the last living player wins by
// survival. If the final living players are all eliminated with nobody at
// BottomFloor, no winner is declared and the room simply persists, which
// mirrors the reference behavior rather than inventing a tiebreak.
type FloorsGame struct {
	rng      *mrand.Rand
	finished bool
}

// NewFloorsGame creates an elimination rule-set using the given source of
// randomness.
func NewFloorsGame(rng *mrand.Rand) *FloorsGame {
	return &FloorsGame{rng: rng}
}

func (g *FloorsGame) Variant() Variant { return VariantFloors }

// OnJoin places a new player at the top floor, alive.
func (g *FloorsGame) OnJoin(p *Player) {
	p.Floor = StartFloor
	p.Alive = true
}

// Start opens the game; everyone may act immediately.
func (g *FloorsGame) Start(players []*Player) []Event {
	return []Event{{Name: EventGameStarted}}
}

func (g *FloorsGame) Finished() bool { return g.finished }

// OnAction handles chooseHole. Unknown, dead, or bottom-floor actors are
// dropped silently, as is any out-of-range hole index.
func (g *FloorsGame) OnAction(players []*Player, act Action) []Event {
	if g.finished || act.Type != ActionChoose {
		return nil
	}
	if act.Index < 0 || act.Index >= HoleCount {
		return nil
	}
	p := findPlayer(players, act.ActorID)
	if p == nil || !p.Alive || p.Floor <= BottomFloor {
		return nil
	}

	outcome := OutcomeEliminated
	if act.Index == g.rng.Intn(HoleCount) {
		p.Floor--
		outcome = OutcomeDescended
	} else {
		p.Alive = false
	}

	events := []Event{{
		Name: EventPlayerResult,
		Data: ResultPayload{PlayerID: p.ID, Outcome: outcome, Floor: p.Floor},
	}}

	if winner := g.checkWin(players, p); winner != nil {
		g.finished = true
		events = append(events, endEvent(winner))
	}
	return events
}

// checkWin is evaluated after every decision: descent to the bottom floor
// wins outright, otherwise a sole survivor wins.
func (g *FloorsGame) checkWin(players []*Player, actor *Player) *Player {
	if actor.Alive && actor.Floor == BottomFloor {
		return actor
	}
	var survivor *Player
	alive := 0
	for _, p := range players {
		if p.Alive {
			alive++
			survivor = p
		}
	}
	if alive == 1 {
		return survivor
	}
	return nil
}
