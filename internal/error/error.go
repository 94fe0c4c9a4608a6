package error

import (
	"errors"
	"fmt"
)

const (
	ConstErrAttackFailed = "attack operation failed"
	ConstErrSkillFailed  = "skill operation failed"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrVersionConflict = errors.New("game state version conflict")
	ErrUnauthorized    = errors.New("unauthorized")
)

// IllegalMoveError is a rejected player intent. The state it was
// checked against is left untouched and the message is safe to show
// to the player.
type IllegalMoveError struct {
	msg string
}

func (e *IllegalMoveError) Error() string {
	return e.msg
}

func illegal(format string, a ...any) error {
	return &IllegalMoveError{msg: fmt.Sprintf(format, a...)}
}

func IsIllegalMove(err error) bool {
	var target *IllegalMoveError
	return errors.As(err, &target)
}

func ErrGameNotExists(gameUuid string) error {
	return fmt.Errorf("game with this uuid does not exist, uuid: %s: %w", gameUuid, ErrNotFound)
}

func ErrPlayerNotExist(playerUuid string) error {
	return fmt.Errorf("player with this uuid does not exist, uuid: %s: %w", playerUuid, ErrNotFound)
}

func ErrSessionNotFound(sessionId string) error {
	return fmt.Errorf("session with this id does not exist, id: %s: %w", sessionId, ErrNotFound)
}

func ErrSessionIsNil(sessionId string) error {
	return fmt.Errorf("session is nil, id: %s", sessionId)
}

func ErrStaleGameVersion(gameUuid string, expected, got int64) error {
	return fmt.Errorf("game %s expected version %d\tgot: %d: %w", gameUuid, expected, got, ErrVersionConflict)
}

func ErrUnauthorizedPlayer(playerUuid string) error {
	return fmt.Errorf("session token does not match player, uuid: %s: %w", playerUuid, ErrUnauthorized)
}

func ErrGameFull(gameUuid string) error {
	return illegal("game is already full, uuid: %s", gameUuid)
}

func ErrInvalidGameMode(mode string) error {
	return illegal("invalid game mode: %s", mode)
}

func ErrInvalidMapType(mapType string) error {
	return illegal("invalid map type: %s", mapType)
}

func ErrInvalidOpponentType(opponentType string) error {
	return illegal("invalid opponent type: %s", opponentType)
}

func ErrWrongPhase(expected, got string) error {
	return illegal("action not allowed in this phase\texpected: %s\tgot: %s", expected, got)
}

func ErrNotPlayersTurn(playerUuid string) error {
	return illegal("it is not this player's turn, uuid: %s", playerUuid)
}

func ErrXorYOutOfGridBound(x, y int) error {
	return illegal("incoming x or y is out of game grid bound\tx: %d\ty: %d", x, y)
}

func ErrAttackOwnGrid() error {
	return illegal("a player cannot attack their own grid")
}

func ErrNotEnoughActionPoints(have, need int) error {
	return illegal("not enough action points\thave: %d\tneed: %d", have, need)
}

func ErrShipNotInFleet(shipType string) error {
	return illegal("ship is not in the fleet: %s", shipType)
}

func ErrShipSunk(shipName string) error {
	return illegal("%s has been sunk", shipName)
}

func ErrShipDamaged(shipName string) error {
	return illegal("%s is damaged and cannot use its skill", shipName)
}

func ErrShipJammed(shipName string) error {
	return illegal("%s is jammed", shipName)
}

func ErrSkillOnCooldown(shipType string, turns int) error {
	return illegal("%s skill is on cooldown for %d more turn(s)", shipType, turns)
}

func ErrSkillNoUsesLeft(shipType string) error {
	return illegal("%s skill has no uses left", shipType)
}

func ErrSkillPassive(shipType string) error {
	return illegal("%s has no active skill", shipType)
}

func ErrSkillUnavailableInMode(mode string) error {
	return illegal("skills are not available in %s mode", mode)
}

func ErrUnknownSkill(shipType string) error {
	return illegal("unknown skill type: %s", shipType)
}

func ErrInvalidTargetCount(expected, got int) error {
	return illegal("invalid number of targets\texpected: %d\tgot: %d", expected, got)
}

func ErrDuplicateTarget(x, y int) error {
	return illegal("target selected more than once\tx: %d\ty: %d", x, y)
}

func ErrRepairTargetNotHit(x, y int) error {
	return illegal("you can only repair damaged ship parts\tx: %d\ty: %d", x, y)
}

func ErrShipAlreadyRepaired(shipName string) error {
	return illegal("%s has already been repaired once", shipName)
}

func ErrNoShipAtPosition(x, y int) error {
	return illegal("no ship found at the selected location\tx: %d\ty: %d", x, y)
}

func ErrDecoyNotOnEmptyWater(x, y int) error {
	return illegal("decoys can only be placed in empty water\tx: %d\ty: %d", x, y)
}

func ErrCamoAlreadyDeployed() error {
	return illegal("camouflage field has already been deployed")
}

func ErrCamoOutOfBounds(x, y int) error {
	return illegal("camouflage field does not fit on the grid\tx: %d\ty: %d", x, y)
}

func ErrShieldOnAsteroid(x, y int) error {
	return illegal("cannot place a shield on an asteroid\tx: %d\ty: %d", x, y)
}

func ErrAlreadyShielded(x, y int) error {
	return illegal("this location is already shielded\tx: %d\ty: %d", x, y)
}

func ErrShieldInvalidCell(x, y int) error {
	return illegal("shields can only be placed on healthy ship parts or empty water\tx: %d\ty: %d", x, y)
}

func ErrShipAlreadyShielded(shipName string) error {
	return illegal("%s already has a shield", shipName)
}

func ErrNoShipSelected() error {
	return illegal("no ship selected for relocation")
}

func ErrShipAlreadyRelocated(shipName string) error {
	return illegal("%s has already been relocated once", shipName)
}

func ErrEscapeLocked() error {
	return illegal("mothership escape has not been unlocked")
}

func ErrMothershipNotDamaged() error {
	return illegal("mothership escape requires a damaged mothership")
}

func ErrCannotPlaceShip(shipName string, x, y int) error {
	return illegal("cannot place %s there\tx: %d\ty: %d", shipName, x, y)
}

func ErrFleetOverBudget(cost, budget int) error {
	return illegal("fleet cost exceeds budget\tcost: %d\tbudget: %d", cost, budget)
}

func ErrDuplicateShip(shipType string) error {
	return illegal("ship selected more than once: %s", shipType)
}

func ErrUnknownShip(shipType string) error {
	return illegal("ship is not in the catalog: %s", shipType)
}

func ErrShipNotPlaced(shipName string) error {
	return illegal("ship has not been placed: %s", shipName)
}

func ErrNoActiveAction() error {
	return illegal("there is no action in progress")
}

func ErrInvalidActionStage(stage, op string) error {
	return illegal("cannot %s while action is at stage %s", op, stage)
}

func ErrInvalidMove(moveType string) error {
	return illegal("invalid move type: %s", moveType)
}
