package battleship

import (
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

const (
	ClassicBaseAP  = 1
	TacticalBaseAP = 2

	AttackCost = 1
	SkillCost  = 2

	TacticalFleetBudget = 30
)

var defaultGridDimensions = GridDimensions{Rows: 12, Cols: 12}

// SkillOptions carries the targeting of a skill. Single target skills
// read X and Y, four target skills read Targets and relocation reads
// ShipToMove and IsHorizontal as well.
type SkillOptions struct {
	X            int           `json:"x"`
	Y            int           `json:"y"`
	Targets      []Coordinates `json:"targets,omitempty"`
	ShipToMove   string        `json:"shipToMove,omitempty"`
	IsHorizontal bool          `json:"isHorizontal,omitempty"`
}

func (o SkillOptions) Target() Coordinates {
	return Coordinates{X: o.X, Y: o.Y}
}

// Rules is the rule set a game is played under. It is picked once when
// the game is created. Every method takes a full snapshot and returns a
// new one; the input is never modified. A rejected move returns the
// input snapshot.
type Rules interface {
	Mode() GameMode
	GridDimensions() GridDimensions
	ShipCatalog() []ShipConfig
	FleetBudget() int
	BaseActionPoints() int

	InitializePlayer(id, name string, isAI bool, grid Grid) Player
	ProcessShot(state *GameState, targetPlayerId string, x, y int) (*GameState, error)
	ApplySkill(state *GameState, playerId string, shipType ShipType, opts SkillOptions) (*GameState, error)
	AdvanceTurn(state *GameState) (*GameState, error)
}

type ClassicRules struct{}
type TacticalRules struct{}

var (
	_ Rules = ClassicRules{}
	_ Rules = TacticalRules{}
)

func RulesFor(mode GameMode) Rules {
	if mode == GameModeClassic {
		return ClassicRules{}
	}
	return TacticalRules{}
}

func aiName(name string, isAI bool) string {
	if isAI {
		return name + " (AI)"
	}
	return name
}

func newPlayer(id, name string, isAI bool, grid Grid, ap int) Player {
	return Player{
		Id:                id,
		Name:              aiName(name, isAI),
		IsAI:              isAI,
		Grid:              grid.Clone(),
		Ships:             []Ship{},
		Shots:             map[string]Grid{},
		SkillCooldowns:    map[ShipType]int{},
		SkillUses:         map[ShipType]int{},
		DecoyPositions:    []Coordinates{},
		ShieldedPositions: []Coordinates{},
		JammedPositions:   []Coordinates{},
		TargetLocks:       map[string]TargetLock{},
		ActionPoints:      ap,
	}
}

// beginShot validates a shot by the current player and returns a clone
// of the state to resolve it on. A shot at a cell the attacker already
// resolved returns a nil state and a nil error, whatever the AP left.
func beginShot(state *GameState, targetPlayerId string, x, y int, reshootable func(Cell) bool) (*GameState, *Player, *Player, error) {
	if err := state.requirePhase(PhasePlaying); err != nil {
		return nil, nil, nil, err
	}
	if state.CurrentPlayer() == nil {
		return nil, nil, nil, cerr.ErrPlayerNotExist(state.CurrentPlayerId)
	}
	if targetPlayerId == state.CurrentPlayerId {
		return nil, nil, nil, cerr.ErrAttackOwnGrid()
	}
	if state.Player(targetPlayerId) == nil {
		return nil, nil, nil, cerr.ErrPlayerNotExist(targetPlayerId)
	}
	if !state.GridDimensions.InBounds(x, y) {
		return nil, nil, nil, cerr.ErrXorYOutOfGridBound(x, y)
	}
	if shots, prs := state.CurrentPlayer().Shots[targetPlayerId]; prs && !reshootable(shots[y][x]) {
		return nil, nil, nil, nil
	}
	if ap := state.CurrentPlayer().ActionPoints; ap < AttackCost {
		return nil, nil, nil, cerr.ErrNotEnoughActionPoints(ap, AttackCost)
	}

	next := state.Clone()
	return next, next.CurrentPlayer(), next.Player(targetPlayerId), nil
}

func shotLogEntry(state *GameState, attacker, target *Player, c Coordinates) LogEntry {
	coords := c
	return LogEntry{
		Turn:       state.Turn,
		PlayerId:   attacker.Id,
		PlayerName: attacker.Name,
		TargetId:   target.Id,
		TargetName: target.Name,
		Coords:     &coords,
	}
}

func (ClassicRules) Mode() GameMode                 { return GameModeClassic }
func (ClassicRules) GridDimensions() GridDimensions { return defaultGridDimensions }
func (ClassicRules) ShipCatalog() []ShipConfig      { return ClassicShips }
func (ClassicRules) FleetBudget() int               { return 0 }
func (ClassicRules) BaseActionPoints() int          { return ClassicBaseAP }

func (ClassicRules) InitializePlayer(id, name string, isAI bool, grid Grid) Player {
	return newPlayer(id, name, isAI, grid, ClassicBaseAP)
}

func isClassicReshootable(cell Cell) bool {
	return cell == CellEmpty
}

// ProcessShot resolves a plain hit or miss. Classic mode has no shields,
// camouflage or decoys.
func (ClassicRules) ProcessShot(state *GameState, targetPlayerId string, x, y int) (*GameState, error) {
	next, attacker, target, err := beginShot(state, targetPlayerId, x, y, isClassicReshootable)
	if err != nil || next == nil {
		return state, err
	}

	shots := attacker.ShotsAt(target.Id, next.GridDimensions)
	attacker.ActionPoints -= AttackCost

	c := NewCoordinates(x, y)
	entry := shotLogEntry(next, attacker, target, c)
	entry.Result = LogMiss

	switch target.Grid[y][x] {
	case CellShip, CellHit, CellSunk:
		shots[y][x] = CellHit
		target.Grid[y][x] = CellHit
		entry.Result = LogHit

		if ship := target.ShipAt(c); ship != nil {
			ship.IsDamaged = true
			next.recordHit(target.Id, c)
			entry.HitShipName = ship.Name

			if ship.IsDestroyedOn(target.Grid) {
				ship.IsSunk = true
				attacker.Score++
				entry.Result = LogSunkShip
				entry.SunkShipName = ship.Name
				for _, pos := range ship.Positions {
					target.Grid[pos.Y][pos.X] = CellSunk
					shots[pos.Y][pos.X] = CellSunk
				}
			}
		}

	default:
		shots[y][x] = CellMiss
		if target.Grid[y][x] != CellAsteroid {
			target.Grid[y][x] = CellMiss
		}
	}

	if target.AllShipsSunk() {
		target.IsEliminated = true
	}

	var remaining []string
	for _, p := range next.Players {
		if !p.IsEliminated {
			remaining = append(remaining, p.Id)
		}
	}
	if len(remaining) <= 1 {
		next.Phase = PhaseGameOver
		next.Winner = ""
		if len(remaining) == 1 {
			next.Winner = remaining[0]
		}
	}

	next.prependLog(entry)
	next.LastShot = &LastShot{Coords: c, AttackerId: attacker.Id, TargetId: target.Id}
	next.touch()
	return next, nil
}

func (ClassicRules) ApplySkill(state *GameState, playerId string, shipType ShipType, opts SkillOptions) (*GameState, error) {
	return state, cerr.ErrSkillUnavailableInMode(string(GameModeClassic))
}

func (ClassicRules) AdvanceTurn(state *GameState) (*GameState, error) {
	return advanceTurn(state, ClassicBaseAP, false)
}
