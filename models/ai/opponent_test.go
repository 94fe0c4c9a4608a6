package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

// newAIDraft seats a human and the AI, both without a fleet yet.
func newAIDraft(t *testing.T) *mb.GameState {
	t.Helper()

	state, grid, err := mb.NewGameState("AITEST", mb.GameModeTactical, mb.MapTypeAsteroidField, mb.OpponentAI, 6, newTestRand())
	require.NoError(t, err)
	rules := mb.TacticalRules{}

	state.Players = []mb.Player{
		rules.InitializePlayer(testHumanId, "Human", false, grid),
		rules.InitializePlayer(testAIId, "Admiral", true, grid),
	}
	state.Phase = mb.PhaseFleetSelection
	state.CurrentPlayerId = testHumanId
	return state
}

func TestHandleFleetReadyDraftsAIFleet(t *testing.T) {
	state := newAIDraft(t)
	opponent := NewAIOpponent(newTestStrategist(0))

	next, err := opponent.HandleFleetReady(mb.TacticalRules{}, state, testHumanId)
	require.NoError(t, err)
	require.Equal(t, mb.PhaseAIFleetSelection, next.Phase)
	require.Equal(t, testHumanId, next.CurrentPlayerId)

	ships := next.Player(testAIId).Ships
	require.NotEmpty(t, ships)
	require.Equal(t, mb.ShipMothership, ships[0].Type)
	require.Empty(t, state.Player(testAIId).Ships, "input state was mutated")
}

func TestHandleFleetReadyWithoutAISeat(t *testing.T) {
	state := newAIDraft(t)
	state.Players = state.Players[:1]

	next, err := NewAIOpponent(nil).HandleFleetReady(mb.TacticalRules{}, state, testHumanId)
	require.Error(t, err)
	require.Same(t, state, next)
}

func TestHandleSetupReady(t *testing.T) {
	rules := mb.TacticalRules{}
	opponent := NewAIOpponent(newTestStrategist(0))

	state, err := opponent.HandleFleetReady(rules, newAIDraft(t), testHumanId)
	require.NoError(t, err)
	state.Phase = mb.PhaseSetup

	// nothing happens until the human placed their fleet
	waiting, err := opponent.HandleSetupReady(rules, state, testHumanId)
	require.NoError(t, err)
	require.Same(t, state, waiting)

	state.Player(testHumanId).IsReady = true

	next, err := opponent.HandleSetupReady(rules, state, testHumanId)
	require.NoError(t, err)
	require.Equal(t, mb.PhasePlaying, next.Phase)
	require.Equal(t, testHumanId, next.CurrentPlayerId)
	require.Equal(t, mb.TacticalBaseAP, next.Player(testHumanId).ActionPoints)

	aiPlayer := next.Player(testAIId)
	require.True(t, aiPlayer.IsReady)
	require.Len(t, aiPlayer.Ships, len(state.Player(testAIId).Ships))
	for _, ship := range aiPlayer.Ships {
		require.Len(t, ship.Positions, ship.Length, "%s not placed", ship.Name)
	}
}

func TestAIOpponentExecuteTurnPassesTurn(t *testing.T) {
	state := newAITurn(t, mb.GameModeTactical, scoutFleet, mothershipOnly)

	var snapshots []*mb.GameState
	next, err := NewAIOpponent(newTestStrategist(0)).ExecuteTurn(context.Background(), mb.TacticalRules{}, state, func(gs *mb.GameState) {
		snapshots = append(snapshots, gs)
	})
	require.NoError(t, err)
	require.Equal(t, testHumanId, next.CurrentPlayerId)
	require.Equal(t, mb.PhasePlaying, next.Phase)
	require.Len(t, snapshots, mb.TacticalBaseAP+1)
	require.Same(t, next, snapshots[len(snapshots)-1])
}
