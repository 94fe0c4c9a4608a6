package battleship

import (
	"fmt"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

const (
	multiTargetCount    = 4
	jamDurationTurns    = 1
	targetLockTurns     = 3
	maxDecoyUses        = 2
	maxCamoUses         = 1
	maxMothershipEscape = 1
)

// Turns a skill is unavailable after use, counted on the owner's turns.
var SkillCooldowns = map[ShipType]int{
	ShipRepairship:  3,
	ShipRadarship:   3,
	ShipJamship:     4,
	ShipScoutship:   4,
	ShipShieldship:  5,
	ShipCommandship: 4,
}

// Skills with a limited number of uses per game.
var SkillUses = map[ShipType]int{
	ShipDecoyship:  maxDecoyUses,
	ShipCamoship:   maxCamoUses,
	ShipMothership: maxMothershipEscape,
}

// Skills that need their own ship to be undamaged.
var requiresIntactShip = map[ShipType]bool{
	ShipCamoship:    true,
	ShipShieldship:  true,
	ShipCommandship: true,
}

func (TacticalRules) InitializePlayer(id, name string, isAI bool, grid Grid) Player {
	p := newPlayer(id, name, isAI, grid, TacticalBaseAP)
	for shipType := range SkillCooldowns {
		p.SkillCooldowns[shipType] = 0
	}
	for shipType, uses := range SkillUses {
		p.SkillUses[shipType] = uses
	}
	return p
}

// CheckSkill reports whether the player could use the skill of the given
// ship right now, without looking at the skill's targets.
func CheckSkill(p *Player, shipType ShipType) error {
	if p.ActionPoints < SkillCost {
		return cerr.ErrNotEnoughActionPoints(p.ActionPoints, SkillCost)
	}
	if shipType == ShipSupportship {
		return cerr.ErrSkillPassive(string(shipType))
	}
	_, hasCooldown := SkillCooldowns[shipType]
	_, hasUses := SkillUses[shipType]
	if !hasCooldown && !hasUses {
		return cerr.ErrUnknownSkill(string(shipType))
	}

	ship := p.ShipByType(shipType)
	if ship == nil {
		return cerr.ErrShipNotInFleet(string(shipType))
	}
	if ship.IsSunk {
		return cerr.ErrShipSunk(ship.Name)
	}
	if requiresIntactShip[shipType] && ship.IsDamaged {
		return cerr.ErrShipDamaged(ship.Name)
	}
	if p.IsShipJammed(ship) {
		return cerr.ErrShipJammed(ship.Name)
	}
	if hasCooldown && p.SkillCooldowns[shipType] > 0 {
		return cerr.ErrSkillOnCooldown(string(shipType), p.SkillCooldowns[shipType])
	}
	if hasUses && p.SkillUses[shipType] <= 0 {
		return cerr.ErrSkillNoUsesLeft(string(shipType))
	}

	if shipType == ShipMothership {
		if !ship.IsDamaged {
			return cerr.ErrMothershipNotDamaged()
		}
		if !p.EscapeSkillUnlocked {
			return cerr.ErrEscapeLocked()
		}
	}
	return nil
}

func spendSkill(p *Player, shipType ShipType) {
	p.ActionPoints -= SkillCost
	if cooldown, prs := SkillCooldowns[shipType]; prs {
		p.SkillCooldowns[shipType] = cooldown
	}
	if _, prs := SkillUses[shipType]; prs {
		p.SkillUses[shipType]--
	}
}

func skillLog(state *GameState, p *Player, msg string) LogEntry {
	return LogEntry{
		Turn:       state.Turn,
		PlayerId:   p.Id,
		PlayerName: p.Name,
		Result:     LogSkillUsed,
		Message:    msg,
	}
}

// ApplySkill uses the skill of one of the current player's ships. Every
// accepted skill costs SkillCost AP, starts its cooldown or spends a use,
// and adds exactly one log entry.
func (TacticalRules) ApplySkill(state *GameState, playerId string, shipType ShipType, opts SkillOptions) (*GameState, error) {
	if _, err := state.requireCurrentPlayer(playerId); err != nil {
		return state, err
	}

	next := state.Clone()
	p := next.Player(playerId)
	if err := CheckSkill(p, shipType); err != nil {
		return state, err
	}

	var err error
	switch shipType {
	case ShipRepairship:
		err = applyRepair(next, p, opts)
	case ShipRadarship:
		err = applyRadar(next, p, opts)
	case ShipJamship:
		err = applyJam(next, p, opts)
	case ShipDecoyship:
		err = applyDecoy(next, p, opts)
	case ShipCamoship:
		err = applyCamo(next, p, opts)
	case ShipScoutship:
		err = applyTargetLock(next, p, opts)
	case ShipShieldship:
		err = applyShield(next, p, opts)
	case ShipCommandship:
		err = applyRelocation(next, p, opts)
	case ShipMothership:
		err = applyEscape(next, p, opts)
	default:
		err = cerr.ErrUnknownSkill(string(shipType))
	}
	if err != nil {
		return state, err
	}

	next.touch()
	return next, nil
}

func validateTargets(targets []Coordinates, dims GridDimensions) error {
	if len(targets) != multiTargetCount {
		return cerr.ErrInvalidTargetCount(multiTargetCount, len(targets))
	}
	seen := make(map[Coordinates]bool, len(targets))
	for _, t := range targets {
		if !dims.InBounds(t.X, t.Y) {
			return cerr.ErrXorYOutOfGridBound(t.X, t.Y)
		}
		if seen[t] {
			return cerr.ErrDuplicateTarget(t.X, t.Y)
		}
		seen[t] = true
	}
	return nil
}

func validateTarget(c Coordinates, dims GridDimensions) error {
	if !dims.InBounds(c.X, c.Y) {
		return cerr.ErrXorYOutOfGridBound(c.X, c.Y)
	}
	return nil
}

// resetOpponentKnowledge sets the cells back to EMPTY on every other
// player's shots grid against p.
func resetOpponentKnowledge(state *GameState, p *Player, cells ...Coordinates) {
	for i := range state.Players {
		opponent := &state.Players[i]
		if opponent.Id == p.Id {
			continue
		}
		shots, prs := opponent.Shots[p.Id]
		if !prs {
			continue
		}
		for _, c := range cells {
			if state.GridDimensions.InBounds(c.X, c.Y) {
				shots[c.Y][c.X] = CellEmpty
			}
		}
	}
}

func applyRepair(state *GameState, p *Player, opts SkillOptions) error {
	c := opts.Target()
	if err := validateTarget(c, state.GridDimensions); err != nil {
		return err
	}
	if p.Grid[c.Y][c.X] != CellHit {
		return cerr.ErrRepairTargetNotHit(c.X, c.Y)
	}
	ship := p.ShipAt(c)
	if ship == nil {
		return cerr.ErrNoShipAtPosition(c.X, c.Y)
	}
	if ship.IsSunk {
		return cerr.ErrShipSunk(ship.Name)
	}
	if ship.HasBeenRepaired {
		return cerr.ErrShipAlreadyRepaired(ship.Name)
	}

	spendSkill(p, ShipRepairship)
	p.Grid[c.Y][c.X] = CellShip
	p.ShieldedPositions = removeCoordinates(p.ShieldedPositions, c)
	state.forgetHit(p.Id, c)
	resetOpponentKnowledge(state, p, c)
	ship.HasBeenRepaired = true

	stillDamaged := false
	for _, pos := range ship.Positions {
		if p.Grid[pos.Y][pos.X] == CellHit {
			stillDamaged = true
			break
		}
	}
	if !stillDamaged {
		// fully healed ships go dark for the opponent
		ship.IsDamaged = false
		resetOpponentKnowledge(state, p, ship.Positions...)
	}

	state.prependLog(skillLog(state, p, fmt.Sprintf("%s repaired their %s.", p.Name, ship.Name)))
	return nil
}

func applyRadar(state *GameState, p *Player, opts SkillOptions) error {
	if err := validateTargets(opts.Targets, state.GridDimensions); err != nil {
		return err
	}
	opponent := state.Opponent(p.Id)
	if opponent == nil {
		return cerr.ErrPlayerNotExist("")
	}

	spendSkill(p, ShipRadarship)
	shots := p.ShotsAt(opponent.Id, state.GridDimensions)
	results := make([]RadarContact, 0, len(opts.Targets))
	for _, t := range opts.Targets {
		var reading Cell
		switch opponent.Grid[t.Y][t.X] {
		case CellShip, CellHit, CellSunk:
			reading = CellRadarContact
			if shots[t.Y][t.X] == CellEmpty {
				shots[t.Y][t.X] = CellRadarContact
			}
		case CellAsteroid:
			reading = CellAsteroid
		default:
			reading = CellEmpty
		}
		results = append(results, RadarContact{X: t.X, Y: t.Y, State: reading})
	}

	state.RadarScanResult = &RadarScanResult{PlayerId: p.Id, Results: results}
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s scanned the enemy grid.", p.Name)))
	return nil
}

func applyJam(state *GameState, p *Player, opts SkillOptions) error {
	if err := validateTargets(opts.Targets, state.GridDimensions); err != nil {
		return err
	}
	opponent := state.Opponent(p.Id)
	if opponent == nil {
		return cerr.ErrPlayerNotExist("")
	}

	spendSkill(p, ShipJamship)
	opponent.JammedPositions = append([]Coordinates(nil), opts.Targets...)
	opponent.JamTurnsRemaining = jamDurationTurns
	state.JammedArea = &JammedArea{PlayerId: opponent.Id, Coords: append([]Coordinates(nil), opts.Targets...)}
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s jammed a section of the enemy grid.", p.Name)))
	return nil
}

func applyDecoy(state *GameState, p *Player, opts SkillOptions) error {
	c := opts.Target()
	if err := validateTarget(c, state.GridDimensions); err != nil {
		return err
	}
	if p.Grid[c.Y][c.X] != CellEmpty || p.HasDecoyAt(c) {
		return cerr.ErrDecoyNotOnEmptyWater(c.X, c.Y)
	}

	spendSkill(p, ShipDecoyship)
	p.DecoyPositions = append(p.DecoyPositions, c)
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s placed a decoy at %s.", p.Name, c.Label())))
	return nil
}

func applyCamo(state *GameState, p *Player, opts SkillOptions) error {
	if p.CamoArea != nil {
		return cerr.ErrCamoAlreadyDeployed()
	}
	c := opts.Target()
	dims := state.GridDimensions
	if !dims.InBounds(c.X, c.Y) || !dims.InBounds(c.X+CamoSize-1, c.Y+CamoSize-1) {
		return cerr.ErrCamoOutOfBounds(c.X, c.Y)
	}

	spendSkill(p, ShipCamoship)
	p.CamoArea = &CamoArea{X: c.X, Y: c.Y, Width: CamoSize, Height: CamoSize}
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s deployed a camouflage field.", p.Name)))
	return nil
}

func applyTargetLock(state *GameState, p *Player, opts SkillOptions) error {
	if err := validateTargets(opts.Targets, state.GridDimensions); err != nil {
		return err
	}
	opponent := state.Opponent(p.Id)
	if opponent == nil {
		return cerr.ErrPlayerNotExist("")
	}

	spendSkill(p, ShipScoutship)
	if p.TargetLocks == nil {
		p.TargetLocks = map[string]TargetLock{}
	}
	p.TargetLocks[opponent.Id] = TargetLock{
		Cells:          append([]Coordinates(nil), opts.Targets...),
		TurnsRemaining: targetLockTurns,
	}
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s locked onto enemy coordinates.", p.Name)))
	return nil
}

func applyShield(state *GameState, p *Player, opts SkillOptions) error {
	c := opts.Target()
	if err := validateTarget(c, state.GridDimensions); err != nil {
		return err
	}

	cell := p.Grid[c.Y][c.X]
	if cell == CellAsteroid {
		return cerr.ErrShieldOnAsteroid(c.X, c.Y)
	}
	if p.IsShielded(c) {
		return cerr.ErrAlreadyShielded(c.X, c.Y)
	}
	if cell != CellShip && cell != CellEmpty {
		return cerr.ErrShieldInvalidCell(c.X, c.Y)
	}
	if cell == CellShip {
		if ship := p.ShipAt(c); ship != nil && p.ShipHasShield(ship) {
			return cerr.ErrShipAlreadyShielded(ship.Name)
		}
	}

	spendSkill(p, ShipShieldship)
	p.ShieldedPositions = append(p.ShieldedPositions, c)
	entry := skillLog(state, p, fmt.Sprintf("%s deployed a shield at %s.", p.Name, c.Label()))
	entry.Coords = &c
	state.prependLog(entry)
	return nil
}

func applyRelocation(state *GameState, p *Player, opts SkillOptions) error {
	if opts.ShipToMove == "" {
		return cerr.ErrNoShipSelected()
	}
	ship := p.ShipByName(opts.ShipToMove)
	if ship == nil {
		return cerr.ErrShipNotInFleet(opts.ShipToMove)
	}
	if ship.IsSunk {
		return cerr.ErrShipSunk(ship.Name)
	}
	if ship.IsDamaged {
		return cerr.ErrShipDamaged(ship.Name)
	}
	if ship.HasBeenRelocated {
		return cerr.ErrShipAlreadyRelocated(ship.Name)
	}
	if p.IsShipJammed(ship) {
		return cerr.ErrShipJammed(ship.Name)
	}

	if err := relocateShip(state, p, ship, opts.Target(), opts.IsHorizontal); err != nil {
		return err
	}
	spendSkill(p, ShipCommandship)
	ship.HasBeenRelocated = true
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s relocated their %s.", p.Name, ship.Name)))
	return nil
}

func applyEscape(state *GameState, p *Player, opts SkillOptions) error {
	ship := p.ShipByType(ShipMothership)
	for _, pos := range ship.Positions {
		if p.Grid[pos.Y][pos.X] == CellHit {
			p.Grid[pos.Y][pos.X] = CellShip
		}
		state.forgetHit(p.Id, pos)
	}

	if err := relocateShip(state, p, ship, opts.Target(), opts.IsHorizontal); err != nil {
		return err
	}
	spendSkill(p, ShipMothership)
	ship.IsDamaged = false
	state.prependLog(skillLog(state, p, fmt.Sprintf("%s executed an emergency escape maneuver!", p.Name)))
	return nil
}

// RelocationGrid marks what a relocated ship may not land on: the other
// ships of the fleet, sunk or not, and the player's decoys. Misses and
// asteroids do not block a relocation.
func RelocationGrid(p *Player, ship *Ship) Grid {
	rows := len(p.Grid)
	cols := 0
	if rows > 0 {
		cols = len(p.Grid[0])
	}
	grid := NewGrid(rows, cols)
	for i := range p.Ships {
		if p.Ships[i].Name == ship.Name {
			continue
		}
		for _, pos := range p.Ships[i].Positions {
			grid[pos.Y][pos.X] = CellShip
		}
	}
	for _, d := range p.DecoyPositions {
		if grid.At(d.X, d.Y) == CellEmpty {
			grid[d.Y][d.X] = CellDecoy
		}
	}
	return grid
}

// relocateShip moves the ship in place on p. Any shield on the ship moves
// with it to the same part of the hull. Opponents lose what they knew
// about the old position.
func relocateShip(state *GameState, p *Player, ship *Ship, to Coordinates, horizontal bool) error {
	if !CanPlaceShip(RelocationGrid(p, ship), ship.Length, to.X, to.Y, horizontal, state.GridDimensions) {
		return cerr.ErrCannotPlaceShip(ship.Name, to.X, to.Y)
	}

	oldPositions := append([]Coordinates(nil), ship.Positions...)
	var shieldedParts []int
	for i, pos := range oldPositions {
		if p.IsShielded(pos) {
			shieldedParts = append(shieldedParts, i)
			p.ShieldedPositions = removeCoordinates(p.ShieldedPositions, pos)
		}
	}

	grid := p.Grid.Clone()
	for _, pos := range oldPositions {
		grid[pos.Y][pos.X] = CellEmpty
	}
	moved := ship.Clone()
	moved.Positions = ShipRun(ship.Length, to.X, to.Y, horizontal)
	for _, pos := range moved.Positions {
		grid[pos.Y][pos.X] = CellShip
	}

	p.Grid = grid
	*ship = moved
	for _, i := range shieldedParts {
		p.ShieldedPositions = append(p.ShieldedPositions, moved.Positions[i])
	}
	resetOpponentKnowledge(state, p, oldPositions...)
	return nil
}
