package battleship

import (
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

func (TacticalRules) AdvanceTurn(state *GameState) (*GameState, error) {
	return advanceTurn(state, TacticalBaseAP, true)
}

// advanceTurn ends the current player's turn. Status effects owned by the
// mover decay first, then control rotates to the next player who is
// handed the base allotment plus whatever they banked.
func advanceTurn(state *GameState, baseAP int, decayEffects bool) (*GameState, error) {
	if err := state.requirePhase(PhasePlaying); err != nil {
		return state, err
	}
	currentIdx := state.PlayerIndex(state.CurrentPlayerId)
	if currentIdx == -1 {
		return state, cerr.ErrPlayerNotExist(state.CurrentPlayerId)
	}

	next := state.Clone()
	mover := &next.Players[currentIdx]

	if decayEffects {
		for shipType, turns := range mover.SkillCooldowns {
			if turns > 0 {
				mover.SkillCooldowns[shipType] = turns - 1
			}
		}

		// The mover is the player who was jammed: the jam lasts for
		// exactly one of their turns.
		if mover.JamTurnsRemaining > 0 {
			mover.JamTurnsRemaining--
			if mover.JamTurnsRemaining == 0 {
				mover.JammedPositions = []Coordinates{}
				if next.JammedArea != nil && next.JammedArea.PlayerId == mover.Id {
					next.JammedArea = nil
				}
			}
		}

		for opponentId, lock := range mover.TargetLocks {
			if lock.TurnsRemaining > 0 {
				lock.TurnsRemaining--
				if lock.TurnsRemaining == 0 {
					delete(mover.TargetLocks, opponentId)
					continue
				}
				mover.TargetLocks[opponentId] = lock
			}
		}
	}

	nextIdx := (currentIdx + 1) % len(next.Players)
	for next.Players[nextIdx].IsEliminated && nextIdx != currentIdx {
		nextIdx = (nextIdx + 1) % len(next.Players)
	}

	nextPlayer := &next.Players[nextIdx]
	nextPlayer.ActionPoints = baseAP + nextPlayer.BonusAP
	nextPlayer.BonusAP = 0

	if !nextPlayer.IsAI && nextPlayer.Id != mover.Id && !mover.IsAI && next.humanCount() > 1 {
		next.Phase = PhaseTurnTransition
	}

	next.Turn++
	next.CurrentPlayerId = nextPlayer.Id
	next.ActiveAction = nil
	next.RadarScanResult = nil
	next.touch()
	return next, nil
}

// ContinueTurn leaves the hand-over screen shown between two humans.
func ContinueTurn(state *GameState, playerId string) (*GameState, error) {
	if err := state.requirePhase(PhaseTurnTransition); err != nil {
		return state, err
	}
	if state.CurrentPlayerId != playerId {
		return state, cerr.ErrNotPlayersTurn(playerId)
	}

	next := state.Clone()
	next.Phase = PhasePlaying
	next.touch()
	return next, nil
}

// EndTurn is the player-facing turn advance: only the current player may
// hand over control.
func EndTurn(rules Rules, state *GameState, playerId string) (*GameState, error) {
	if _, err := state.requireCurrentPlayer(playerId); err != nil {
		return state, err
	}
	return rules.AdvanceTurn(state)
}
