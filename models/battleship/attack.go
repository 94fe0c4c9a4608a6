package battleship

import "fmt"

const decoyShipName = "decoy"

func (TacticalRules) Mode() GameMode                 { return GameModeTactical }
func (TacticalRules) GridDimensions() GridDimensions { return defaultGridDimensions }
func (TacticalRules) ShipCatalog() []ShipConfig      { return TacticalShipPool }
func (TacticalRules) FleetBudget() int               { return TacticalFleetBudget }
func (TacticalRules) BaseActionPoints() int          { return TacticalBaseAP }

func isReshootable(cell Cell) bool {
	return cell == CellEmpty || cell == CellRadarContact || cell == CellShieldHit
}

// ProcessShot fires the current player's shot at the target. Firing at a
// cell that is already resolved on the attacker's shots grid is a no-op:
// the input snapshot comes back with a nil error and the AP untouched,
// even when no AP is left.
func (TacticalRules) ProcessShot(state *GameState, targetPlayerId string, x, y int) (*GameState, error) {
	next, attacker, target, err := beginShot(state, targetPlayerId, x, y, isReshootable)
	if err != nil || next == nil {
		return state, err
	}

	shots := attacker.ShotsAt(target.Id, next.GridDimensions)
	attacker.ActionPoints -= AttackCost

	c := NewCoordinates(x, y)
	next.LastShot = &LastShot{Coords: c, AttackerId: attacker.Id, TargetId: target.Id}
	resolveTacticalShot(next, attacker, target, shots, c)
	next.touch()
	return next, nil
}

// resolveTacticalShot applies the precedence shield > asteroid >
// camouflage > decoy > ship/water to an accepted shot.
func resolveTacticalShot(state *GameState, attacker, target *Player, shots Grid, c Coordinates) {
	entry := shotLogEntry(state, attacker, target, c)
	concealed := target.CamoArea.Covers(c) && !attacker.HasLockOn(target.Id, c)

	if target.IsShielded(c) {
		target.ShieldedPositions = removeCoordinates(target.ShieldedPositions, c)
		if concealed {
			shots[c.Y][c.X] = CellCamoHit
			entry.Result = LogCamoHit
			state.prependLog(entry)
			return
		}

		shots[c.Y][c.X] = CellShieldHit
		entry.Result = LogShieldBroken
		underlying := target.Grid[c.Y][c.X]
		if underlying == CellEmpty || underlying == CellMiss {
			entry.Message = fmt.Sprintf("%s's shot at %s broke a bluff shield!", attacker.Name, c.Label())
		} else {
			entry.Message = fmt.Sprintf("%s's shot at %s was absorbed by an energy shield!", attacker.Name, c.Label())
		}
		state.prependLog(entry)
		return
	}

	if target.Grid[c.Y][c.X] == CellAsteroid {
		target.Grid[c.Y][c.X] = CellEmpty
		shots[c.Y][c.X] = CellAsteroidDestroyed
		entry.Result = LogAsteroidDestroyed
		state.prependLog(entry)
		return
	}

	// Under camouflage the attacker only learns CAMO_HIT while the real
	// outcome below still applies.
	if concealed {
		shots[c.Y][c.X] = CellCamoHit
		entry.Result = LogCamoHit
		state.prependLog(entry)
	}
	reveal := func(cell Cell) {
		if !concealed {
			shots[c.Y][c.X] = cell
		}
	}

	if target.HasDecoyAt(c) {
		target.DecoyPositions = removeCoordinates(target.DecoyPositions, c)
		reveal(CellHit)
		if !concealed {
			entry.Result = LogHit
			entry.HitShipName = decoyShipName
			state.prependLog(entry)
		}
		return
	}

	switch target.Grid[c.Y][c.X] {
	case CellShip:
		hitShip(state, attacker, target, shots, c, entry, concealed)

	case CellHit, CellSunk:
		reveal(target.Grid[c.Y][c.X])
		if !concealed {
			entry.Result = LogHit
			if ship := target.ShipAt(c); ship != nil {
				entry.HitShipName = ship.Name
			}
			state.prependLog(entry)
		}

	default:
		target.Grid[c.Y][c.X] = CellMiss
		reveal(CellMiss)
		if !concealed {
			entry.Result = LogMiss
			state.prependLog(entry)
		}
	}
}

func hitShip(state *GameState, attacker, target *Player, shots Grid, c Coordinates, entry LogEntry, concealed bool) {
	ship := target.ShipAt(c)
	target.Grid[c.Y][c.X] = CellHit
	if !concealed {
		shots[c.Y][c.X] = CellHit
	}
	if ship == nil {
		// grid and roster disagree, count it as a hit on nothing
		return
	}

	ship.IsDamaged = true
	state.recordHit(target.Id, c)

	if ship.Type == ShipSupportship {
		target.BonusAP++
		if !concealed {
			state.prependLog(LogEntry{
				Turn:       state.Turn,
				PlayerId:   target.Id,
				PlayerName: target.Name,
				Result:     LogSkillUsed,
				Message:    fmt.Sprintf("%s will gain +1 AP next turn from a passive ability!", target.Name),
			})
		}
	}

	// A Mothership hit ends the attacker's turn; unspent AP is banked.
	if ship.Type == ShipMothership {
		target.EscapeSkillUnlocked = true
		attacker.BonusAP += attacker.ActionPoints
		attacker.ActionPoints = 0
	}

	if !ship.IsDestroyedOn(target.Grid) {
		if !concealed {
			entry.Result = LogHit
			entry.HitShipName = ship.Name
			state.prependLog(entry)
		}
		return
	}

	ship.IsSunk = true
	attacker.BonusAP++
	attacker.Score++
	for _, pos := range ship.Positions {
		target.Grid[pos.Y][pos.X] = CellSunk
		if !concealed {
			shots[pos.Y][pos.X] = CellSunk
		}
	}

	gameOver := ship.Type == ShipMothership
	if gameOver {
		target.IsEliminated = true
		state.Phase = PhaseGameOver
		state.Winner = attacker.Id
	}

	if !concealed || gameOver {
		entry.Result = LogSunkShip
		entry.HitShipName = ""
		entry.SunkShipName = ship.Name
		entry.Message = fmt.Sprintf("%s will receive +1 AP next turn.", attacker.Name)
		state.prependLog(entry)
	}
}
