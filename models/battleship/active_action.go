package battleship

import (
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

type ActionType string

const (
	ActionAttack ActionType = "ATTACK"
	ActionSkill  ActionType = "SKILL"
)

type ActionStage string

const (
	StageSelectAttackTarget ActionStage = "SELECT_ATTACK_TARGET"
	StageSelectShip         ActionStage = "SELECT_SHIP"
	StagePlaceShip          ActionStage = "PLACE_SHIP"
	StagePlaceDecoy         ActionStage = "PLACE_DECOY"
	StageSelectJamTargets   ActionStage = "SELECT_JAM_TARGETS"
	StageSelectTargetLock   ActionStage = "SELECT_TARGET_LOCK"
	StageSelectRadarTargets ActionStage = "SELECT_RADAR_TARGETS"
	StagePlaceCamo          ActionStage = "PLACE_CAMO"
	StageSelectShieldTarget ActionStage = "SELECT_SHIELD_TARGET"
	StageSelectRepairTarget ActionStage = "SELECT_REPAIR_TARGET"
)

// First stage of each skill once the action is opened.
var skillEntryStage = map[ShipType]ActionStage{
	ShipCommandship: StageSelectShip,
	ShipMothership:  StagePlaceShip,
	ShipDecoyship:   StagePlaceDecoy,
	ShipJamship:     StageSelectJamTargets,
	ShipScoutship:   StageSelectTargetLock,
	ShipRadarship:   StageSelectRadarTargets,
	ShipCamoship:    StagePlaceCamo,
	ShipShieldship:  StageSelectShieldTarget,
	ShipRepairship:  StageSelectRepairTarget,
}

var multiTargetStages = map[ActionStage]bool{
	StageSelectJamTargets:   true,
	StageSelectTargetLock:   true,
	StageSelectRadarTargets: true,
}

// ActiveAction is a move being assembled by the current player, one
// selection at a time. It commits through the rules once complete.
type ActiveAction struct {
	PlayerId     string        `json:"playerId"`
	Type         ActionType    `json:"type"`
	ShipType     ShipType      `json:"shipType,omitempty"`
	Stage        ActionStage   `json:"stage"`
	Targets      []Coordinates `json:"targets"`
	ShipToMove   string        `json:"shipToMove,omitempty"`
	IsHorizontal bool          `json:"isHorizontal"`
}

func (a ActiveAction) clone() ActiveAction {
	out := a
	out.Targets = append([]Coordinates(nil), a.Targets...)
	return out
}

func (gs *GameState) requireActiveAction(playerId string) (*ActiveAction, error) {
	if _, err := gs.requireCurrentPlayer(playerId); err != nil {
		return nil, err
	}
	if gs.ActiveAction == nil || gs.ActiveAction.PlayerId != playerId {
		return nil, cerr.ErrNoActiveAction()
	}
	return gs.ActiveAction, nil
}

// BeginAction opens an attack or a skill for the current player. Opening
// the action already in progress closes it instead.
func BeginAction(rules Rules, state *GameState, playerId string, actionType ActionType, shipType ShipType) (*GameState, error) {
	p, err := state.requireCurrentPlayer(playerId)
	if err != nil {
		return state, err
	}

	if a := state.ActiveAction; a != nil && a.PlayerId == playerId && a.Type == actionType && a.ShipType == shipType {
		return CancelAction(state, playerId)
	}

	action := ActiveAction{PlayerId: playerId, Type: actionType, Targets: []Coordinates{}, IsHorizontal: true}
	switch actionType {
	case ActionAttack:
		if p.ActionPoints < AttackCost {
			return state, cerr.ErrNotEnoughActionPoints(p.ActionPoints, AttackCost)
		}
		action.Stage = StageSelectAttackTarget

	case ActionSkill:
		if rules.Mode() != GameModeTactical {
			return state, cerr.ErrSkillUnavailableInMode(string(rules.Mode()))
		}
		if err := CheckSkill(p, shipType); err != nil {
			return state, err
		}
		stage, prs := skillEntryStage[shipType]
		if !prs {
			return state, cerr.ErrUnknownSkill(string(shipType))
		}
		action.ShipType = shipType
		action.Stage = stage
		if shipType == ShipMothership {
			action.ShipToMove = p.ShipByType(ShipMothership).Name
		}

	default:
		return state, cerr.ErrInvalidActionStage("", string(actionType))
	}

	next := state.Clone()
	next.ActiveAction = &action
	next.touch()
	return next, nil
}

// SelectShipToMove picks the ship a Commandship relocation will move.
func SelectShipToMove(state *GameState, playerId, shipName string) (*GameState, error) {
	a, err := state.requireActiveAction(playerId)
	if err != nil {
		return state, err
	}
	if a.Stage != StageSelectShip {
		return state, cerr.ErrInvalidActionStage(string(a.Stage), "select a ship")
	}

	ship := state.Player(playerId).ShipByName(shipName)
	if ship == nil {
		return state, cerr.ErrShipNotInFleet(shipName)
	}
	if ship.IsSunk {
		return state, cerr.ErrShipSunk(ship.Name)
	}
	if ship.IsDamaged {
		return state, cerr.ErrShipDamaged(ship.Name)
	}
	if ship.HasBeenRelocated {
		return state, cerr.ErrShipAlreadyRelocated(ship.Name)
	}

	next := state.Clone()
	next.ActiveAction.ShipToMove = ship.Name
	next.ActiveAction.Stage = StagePlaceShip
	next.touch()
	return next, nil
}

// RotateAction flips the orientation of a pending ship placement.
func RotateAction(state *GameState, playerId string) (*GameState, error) {
	a, err := state.requireActiveAction(playerId)
	if err != nil {
		return state, err
	}
	if a.Stage != StagePlaceShip {
		return state, cerr.ErrInvalidActionStage(string(a.Stage), "rotate")
	}

	next := state.Clone()
	next.ActiveAction.IsHorizontal = !next.ActiveAction.IsHorizontal
	next.touch()
	return next, nil
}

// SelectActionTarget feeds a cell to the action in progress. Four target
// stages toggle the cell and commit on the fourth; every other stage
// commits right away. Attacks stay open after a shot while the player can
// still afford one.
func SelectActionTarget(rules Rules, state *GameState, playerId, targetPlayerId string, x, y int) (*GameState, error) {
	a, err := state.requireActiveAction(playerId)
	if err != nil {
		return state, err
	}
	c := NewCoordinates(x, y)

	switch {
	case a.Stage == StageSelectAttackTarget:
		next, err := rules.ProcessShot(state, targetPlayerId, x, y)
		if err != nil || next == state {
			return next, err
		}
		if p := next.Player(playerId); next.Phase != PhasePlaying || p == nil || p.ActionPoints < AttackCost {
			next.ActiveAction = nil
		}
		return next, nil

	case a.Stage == StageSelectShip:
		return state, cerr.ErrInvalidActionStage(string(a.Stage), "select a target")

	case multiTargetStages[a.Stage]:
		if !state.GridDimensions.InBounds(x, y) {
			return state, cerr.ErrXorYOutOfGridBound(x, y)
		}
		targets := append([]Coordinates(nil), a.Targets...)
		if containsCoordinates(targets, c) {
			targets = removeCoordinates(targets, c)
		} else {
			targets = append(targets, c)
		}

		if len(targets) < multiTargetCount {
			next := state.Clone()
			next.ActiveAction.Targets = targets
			next.touch()
			return next, nil
		}
		return commitAction(rules, state, playerId, a, SkillOptions{Targets: targets})

	default:
		return commitAction(rules, state, playerId, a, SkillOptions{
			X:            x,
			Y:            y,
			ShipToMove:   a.ShipToMove,
			IsHorizontal: a.IsHorizontal,
		})
	}
}

func commitAction(rules Rules, state *GameState, playerId string, a *ActiveAction, opts SkillOptions) (*GameState, error) {
	next, err := rules.ApplySkill(state, playerId, a.ShipType, opts)
	if err != nil {
		return state, err
	}
	next.ActiveAction = nil
	return next, nil
}

func CancelAction(state *GameState, playerId string) (*GameState, error) {
	if _, err := state.requireActiveAction(playerId); err != nil {
		return state, err
	}
	next := state.Clone()
	next.ActiveAction = nil
	next.touch()
	return next, nil
}
