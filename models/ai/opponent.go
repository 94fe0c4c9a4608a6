package ai

import (
	"context"
	"math/rand"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
	"github.com/saeidalz13/battleship-tactics/internal/logging"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

// AIOpponent drafts, places and plays the computer's fleet.
type AIOpponent struct {
	strategist *Strategist
}

var _ mb.AIController = (*AIOpponent)(nil)

func NewAIOpponent(strategist *Strategist) *AIOpponent {
	if strategist == nil {
		strategist = NewStrategist()
	}
	return &AIOpponent{strategist: strategist}
}

// HandleFleetReady drafts the AI fleet as soon as the human has drafted
// theirs, and shows it before setup starts.
func (ao *AIOpponent) HandleFleetReady(rules mb.Rules, state *mb.GameState, playerId string) (*mb.GameState, error) {
	next := state.Clone()
	aiPlayer := next.AIPlayer()
	if aiPlayer == nil {
		return state, cerr.ErrPlayerNotExist("ai")
	}

	var personality Personality
	ao.strategist.lockedRand(func(rng *rand.Rand) {
		aiPlayer.Ships, personality = SelectFleet(rules.ShipCatalog(), rules.FleetBudget(), rng)
	})
	logging.Info("ai fleet drafted", logging.Fields{
		"gameId":      next.GameId,
		"personality": personality,
		"ships":       len(aiPlayer.Ships),
	})

	next.Phase = mb.PhaseAIFleetSelection
	next.CurrentPlayerId = playerId
	return next, nil
}

// HandleSetupReady places the AI fleet once the human is ready and hands
// the first turn to the human.
func (ao *AIOpponent) HandleSetupReady(rules mb.Rules, state *mb.GameState, playerId string) (*mb.GameState, error) {
	human := state.Player(playerId)
	if human == nil || !human.IsReady {
		return state, nil
	}

	next := state.Clone()
	aiPlayer := next.AIPlayer()
	if aiPlayer == nil {
		return state, cerr.ErrPlayerNotExist("ai")
	}

	ao.strategist.lockedRand(func(rng *rand.Rand) {
		aiPlayer.Grid, aiPlayer.Ships = PlaceFleet(mb.StartingGrid(aiPlayer.Grid), aiPlayer.Ships, next.GridDimensions, rng)
	})
	aiPlayer.IsReady = true

	mb.StartPlay(rules, next, playerId)
	return next, nil
}

// ExecuteTurn plays the AI's moves and then passes the turn back, unless
// the game ended on the way.
func (ao *AIOpponent) ExecuteTurn(ctx context.Context, rules mb.Rules, state *mb.GameState, onAction func(*mb.GameState)) (*mb.GameState, error) {
	final, err := ao.strategist.ExecuteTurn(ctx, rules, state, onAction)
	if err != nil {
		return final, err
	}
	if final.Phase != mb.PhasePlaying {
		return final, nil
	}

	next, err := rules.AdvanceTurn(final)
	if err != nil {
		return final, err
	}
	if onAction != nil {
		onAction(next)
	}
	return next, nil
}
