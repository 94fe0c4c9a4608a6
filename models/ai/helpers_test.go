package ai

import (
	"math/rand"
	"testing"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

const (
	testAIId    = "ai"
	testHumanId = "human"
)

type placedShip struct {
	shipType   mb.ShipType
	x, y       int
	horizontal bool
}

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(11))
}

func placeShips(t *testing.T, rules mb.Rules, p *mb.Player, fleet []placedShip) {
	t.Helper()
	for _, s := range fleet {
		sc, prs := mb.FindShipConfig(rules.ShipCatalog(), s.shipType)
		if !prs {
			t.Fatalf("unknown ship type: %s", s.shipType)
		}
		grid, ship, err := mb.PlaceShip(p.Grid, sc.NewShip(), s.x, s.y, s.horizontal)
		if err != nil {
			t.Fatalf("failed to place %s: %s", s.shipType, err)
		}
		p.Grid = grid
		p.Ships = append(p.Ships, ship)
	}
}

// newAITurn seats the AI and a human with the given fleets, AI on turn.
func newAITurn(t *testing.T, mode mb.GameMode, aiFleet, humanFleet []placedShip) *mb.GameState {
	t.Helper()

	state, grid, err := mb.NewGameState("AITEST", mode, mb.MapTypeStandard, mb.OpponentAI, 0, newTestRand())
	if err != nil {
		t.Fatalf("failed to create game: %s", err)
	}
	rules := mb.RulesFor(mode)

	human := rules.InitializePlayer(testHumanId, "Human", false, grid)
	placeShips(t, rules, &human, humanFleet)
	human.IsReady = true

	aiPlayer := rules.InitializePlayer(testAIId, "Admiral", true, grid)
	placeShips(t, rules, &aiPlayer, aiFleet)
	aiPlayer.IsReady = true

	state.Players = []mb.Player{human, aiPlayer}
	mb.StartPlay(rules, state, testAIId)
	return state
}

func alwaysRoll(v float64) func() float64 {
	return func() float64 { return v }
}

func newTestStrategist(chance float64) *Strategist {
	return NewStrategist(WithRand(newTestRand()), WithChance(alwaysRoll(chance)), WithActionDelay(0))
}

var scoutFleet = []placedShip{
	{mb.ShipMothership, 0, 0, true},
	{mb.ShipScoutship, 0, 2, true},
}

var mothershipOnly = []placedShip{
	{mb.ShipMothership, 0, 0, true},
}
