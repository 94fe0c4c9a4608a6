package battleship

import (
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

// Opponent decides how the game moves on once a player has drafted or
// placed their fleet. It is picked once, when the game is created.
type Opponent interface {
	HandleFleetReady(rules Rules, state *GameState, playerId string) (*GameState, error)
	HandleSetupReady(rules Rules, state *GameState, playerId string) (*GameState, error)
}

// HumanOpponent waits for every human before moving to the next phase.
// Control passes to whoever still has work to do.
type HumanOpponent struct{}

var _ Opponent = HumanOpponent{}

func (HumanOpponent) HandleFleetReady(rules Rules, state *GameState, playerId string) (*GameState, error) {
	next := state.Clone()
	if allPlayers(next, hasFleet) {
		next.Phase = PhaseSetup
		next.CurrentPlayerId = next.Players[0].Id
	} else if waiting := firstPlayer(next, func(p *Player) bool { return !hasFleet(p) }); waiting != nil {
		next.CurrentPlayerId = waiting.Id
	}
	next.touch()
	return next, nil
}

func (HumanOpponent) HandleSetupReady(rules Rules, state *GameState, playerId string) (*GameState, error) {
	next := state.Clone()
	if !allPlayers(next, isReady) {
		if waiting := firstPlayer(next, func(p *Player) bool { return !isReady(p) }); waiting != nil {
			next.CurrentPlayerId = waiting.Id
		}
		next.touch()
		return next, nil
	}

	StartPlay(rules, next, next.Players[0].Id)
	if next.humanCount() > 1 {
		next.Phase = PhaseTurnTransition
	}
	return next, nil
}

// StartPlay hands the first turn to the given player. The state is
// modified in place; callers pass their own clone.
func StartPlay(rules Rules, state *GameState, firstPlayerId string) {
	for i := range state.Players {
		state.Players[i].ActionPoints = rules.BaseActionPoints()
		state.Players[i].BonusAP = 0
	}
	state.Phase = PhasePlaying
	state.CurrentPlayerId = firstPlayerId
	state.Turn = 1
	state.touch()
}

// AcknowledgeAIFleet closes the screen showing the fleet the AI drafted.
func AcknowledgeAIFleet(state *GameState, playerId string) (*GameState, error) {
	if err := state.requirePhase(PhaseAIFleetSelection); err != nil {
		return state, err
	}
	p := state.Player(playerId)
	if p == nil {
		return state, cerr.ErrPlayerNotExist(playerId)
	}
	if p.IsAI {
		return state, cerr.ErrNotPlayersTurn(playerId)
	}

	next := state.Clone()
	next.Phase = PhaseSetup
	next.CurrentPlayerId = playerId
	next.touch()
	return next, nil
}
