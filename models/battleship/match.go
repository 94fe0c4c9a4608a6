package battleship

import (
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

type MoveType string

const (
	MoveFleetReady         MoveType = "fleetReady"
	MoveSetupReady         MoveType = "setupReady"
	MoveFireShot           MoveType = "fireShot"
	MoveUseSkill           MoveType = "useSkill"
	MoveEndTurn            MoveType = "endTurn"
	MoveTransitionContinue MoveType = "transitionContinue"
	MoveBeginAction        MoveType = "beginAction"
	MoveSelectTarget       MoveType = "selectTarget"
	MoveSelectShip         MoveType = "selectShip"
	MoveRotateAction       MoveType = "rotateAction"
	MoveCancelAction       MoveType = "cancelAction"
	MoveAIFleetAck         MoveType = "aiFleetAck"
)

// Move is a player intent as it arrives from a client. Only the fields
// of its type are read.
type Move struct {
	Type           MoveType        `json:"type"`
	ShipTypes      []ShipType      `json:"shipTypes,omitempty"`
	Placements     []ShipPlacement `json:"placements,omitempty"`
	TargetPlayerId string          `json:"targetPlayerId,omitempty"`
	X              int             `json:"x"`
	Y              int             `json:"y"`
	SkillType      ShipType        `json:"skillType,omitempty"`
	Options        SkillOptions    `json:"options"`
	ActionType     ActionType      `json:"actionType,omitempty"`
	ShipName       string          `json:"shipName,omitempty"`
}

// Match binds a game to the rule set and opponent logic picked when it
// was created.
type Match struct {
	Rules    Rules
	Opponent Opponent
}

// NewMatch picks the rule set for the mode. ai serves games against the
// computer; every other game gets HumanOpponent.
func NewMatch(mode GameMode, opponentType OpponentType, ai Opponent) Match {
	m := Match{Rules: RulesFor(mode), Opponent: HumanOpponent{}}
	if opponentType == OpponentAI && ai != nil {
		m.Opponent = ai
	}
	return m
}

func (m Match) SubmitFleet(state *GameState, playerId string, shipTypes []ShipType) (*GameState, error) {
	next, err := SubmitFleet(m.Rules, state, playerId, shipTypes)
	if err != nil {
		return state, err
	}
	return m.Opponent.HandleFleetReady(m.Rules, next, playerId)
}

func (m Match) SubmitPlacement(state *GameState, playerId string, placements []ShipPlacement) (*GameState, error) {
	next, err := SubmitPlacement(state, playerId, placements)
	if err != nil {
		return state, err
	}
	return m.Opponent.HandleSetupReady(m.Rules, next, playerId)
}

func (m Match) FireShot(state *GameState, playerId, targetPlayerId string, x, y int) (*GameState, error) {
	if _, err := state.requireCurrentPlayer(playerId); err != nil {
		return state, err
	}
	return m.Rules.ProcessShot(state, targetPlayerId, x, y)
}

func (m Match) UseSkill(state *GameState, playerId string, shipType ShipType, opts SkillOptions) (*GameState, error) {
	return m.Rules.ApplySkill(state, playerId, shipType, opts)
}

func (m Match) EndTurn(state *GameState, playerId string) (*GameState, error) {
	return EndTurn(m.Rules, state, playerId)
}

// Apply dispatches a client move. It is the single entry point shared by
// every transport.
func (m Match) Apply(state *GameState, playerId string, move Move) (*GameState, error) {
	switch move.Type {
	case MoveFleetReady:
		return m.SubmitFleet(state, playerId, move.ShipTypes)
	case MoveSetupReady:
		return m.SubmitPlacement(state, playerId, move.Placements)
	case MoveFireShot:
		return m.FireShot(state, playerId, move.TargetPlayerId, move.X, move.Y)
	case MoveUseSkill:
		return m.UseSkill(state, playerId, move.SkillType, move.Options)
	case MoveEndTurn:
		return m.EndTurn(state, playerId)
	case MoveTransitionContinue:
		return ContinueTurn(state, playerId)
	case MoveBeginAction:
		return BeginAction(m.Rules, state, playerId, move.ActionType, move.SkillType)
	case MoveSelectTarget:
		return SelectActionTarget(m.Rules, state, playerId, move.TargetPlayerId, move.X, move.Y)
	case MoveSelectShip:
		return SelectShipToMove(state, playerId, move.ShipName)
	case MoveRotateAction:
		return RotateAction(state, playerId)
	case MoveCancelAction:
		return CancelAction(state, playerId)
	case MoveAIFleetAck:
		return AcknowledgeAIFleet(state, playerId)
	default:
		return state, cerr.ErrInvalidMove(string(move.Type))
	}
}
