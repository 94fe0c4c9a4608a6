package ai

import (
	"context"
	"math/rand"
	"time"

	"github.com/saeidalz13/battleship-tactics/internal/logging"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

// decide picks the next move under the game's rule set.
func (s *Strategist) decide(rules mb.Rules, self, opponent *mb.Player, state *mb.GameState) Decision {
	if rules.Mode() == mb.GameModeClassic {
		var c mb.Coordinates
		s.lockedRand(func(rng *rand.Rand) {
			c = HuntTarget(shotsAt(self, opponent.Id, state.GridDimensions), state.GridDimensions, rng)
		})
		return attack(c)
	}
	return s.Decide(self, opponent, state)
}

// ExecuteTurn plays moves for the AI until it runs out of AP, cannot
// afford what it wants, a move is rejected, or the game ends. Every
// accepted move goes through rules and is handed to onAction. The turn
// itself is not ended.
func (s *Strategist) ExecuteTurn(ctx context.Context, rules mb.Rules, state *mb.GameState, onAction func(*mb.GameState)) (*mb.GameState, error) {
	current := state

aiTurnLoop:
	for {
		if current.Phase != mb.PhasePlaying {
			break
		}
		self := current.CurrentPlayer()
		if self == nil || !self.IsAI || self.ActionPoints <= 0 {
			break
		}
		opponent := current.Opponent(self.Id)
		if opponent == nil {
			break
		}

		decision := s.decide(rules, self, opponent, current)
		if self.ActionPoints < decision.Cost() {
			break
		}

		var next *mb.GameState
		var err error
		switch decision.Action {
		case mb.ActionAttack:
			next, err = rules.ProcessShot(current, opponent.Id, decision.Target.X, decision.Target.Y)
		case mb.ActionSkill:
			next, err = rules.ApplySkill(current, self.Id, decision.ShipType, decision.Options)
		default:
			break aiTurnLoop
		}

		if err != nil {
			logging.Error("ai move rejected", err, logging.Fields{
				"gameId":   current.GameId,
				"action":   decision.Action,
				"shipType": decision.ShipType,
				"x":        decision.Target.X,
				"y":        decision.Target.Y,
			})
			break
		}
		if next == current {
			logging.Warn("ai shot at an already resolved cell", logging.Fields{
				"gameId": current.GameId,
				"x":      decision.Target.X,
				"y":      decision.Target.Y,
			})
			break
		}

		current = next
		if onAction != nil {
			onAction(current)
		}
		if current.Phase == mb.PhaseGameOver {
			break
		}

		if s.delay > 0 {
			timer := time.NewTimer(s.delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return current, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return current, err
		}
	}

	return current, nil
}

// StreamTurn runs ExecuteTurn in its own goroutine and delivers every
// snapshot on the returned channel, which is closed once the turn is
// over. Every move costs at least one AP, so the channel is buffered for
// the whole turn and the goroutine finishes even if nobody reads.
func (s *Strategist) StreamTurn(ctx context.Context, rules mb.Rules, state *mb.GameState) <-chan *mb.GameState {
	buffer := 1
	if self := state.CurrentPlayer(); self != nil && self.ActionPoints > buffer {
		buffer = self.ActionPoints
	}
	snapshots := make(chan *mb.GameState, buffer)

	go func() {
		defer close(snapshots)
		_, err := s.ExecuteTurn(ctx, rules, state, func(snapshot *mb.GameState) {
			select {
			case snapshots <- snapshot:
			case <-ctx.Done():
			}
		})
		if err != nil {
			logging.Warn("ai turn stream stopped", logging.Fields{"gameId": state.GameId, "error": err.Error()})
		}
	}()

	return snapshots
}
