package ai

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

const (
	DefaultActionDelay = 1200 * time.Millisecond

	confidentAttackScore = 10

	shieldSkipChance    = 0.10
	jamSkipChance       = 0.15
	commandSkipChance   = 0.20
	intelSkipChance     = 0.15
	decoySkipChance     = 0.15
	bluffPreferChance   = 0.75
	bluffCandidateCount = 5
	bluffWindow         = 3

	relocationThreatPerCell = 2
	neverHit                = 999
)

// Ships worth saving with a Commandship, most valuable first.
var relocationPriority = []mb.ShipType{
	mb.ShipMothership,
	mb.ShipRepairship,
	mb.ShipJamship,
	mb.ShipRadarship,
	mb.ShipDecoyship,
	mb.ShipCommandship,
}

// Decision is one discrete move of the AI.
type Decision struct {
	Action   mb.ActionType   `json:"action"`
	ShipType mb.ShipType     `json:"shipType,omitempty"`
	Target   mb.Coordinates  `json:"target"`
	Options  mb.SkillOptions `json:"options"`
}

func (d Decision) Cost() int {
	if d.Action == mb.ActionSkill {
		return mb.SkillCost
	}
	return mb.AttackCost
}

func attack(c mb.Coordinates) Decision {
	return Decision{Action: mb.ActionAttack, Target: c}
}

func skill(shipType mb.ShipType, opts mb.SkillOptions) Decision {
	return Decision{Action: mb.ActionSkill, ShipType: shipType, Target: opts.Target(), Options: opts}
}

// Strategist is the computer player. It is safe for concurrent use by
// several games.
type Strategist struct {
	rng   *rand.Rand
	rngMu sync.Mutex

	// chance returns a value in [0, 1) for the skill dice rolls.
	chance func() float64
	delay  time.Duration
}

type StrategistOption func(*Strategist)

func WithRand(rng *rand.Rand) StrategistOption {
	return func(s *Strategist) {
		s.rng = rng
	}
}

func WithChance(chance func() float64) StrategistOption {
	return func(s *Strategist) {
		s.chance = chance
	}
}

func WithActionDelay(delay time.Duration) StrategistOption {
	return func(s *Strategist) {
		s.delay = delay
	}
}

func NewStrategist(optFuncs ...StrategistOption) *Strategist {
	s := &Strategist{
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		delay: DefaultActionDelay,
	}
	for _, optFunc := range optFuncs {
		optFunc(s)
	}
	if s.chance == nil {
		s.chance = func() float64 {
			s.rngMu.Lock()
			defer s.rngMu.Unlock()
			return s.rng.Float64()
		}
	}
	return s
}

func (s *Strategist) intn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func (s *Strategist) pick(cells []mb.Coordinates) mb.Coordinates {
	return cells[s.intn(len(cells))]
}

// lockedRand runs fn with exclusive use of the strategist's source.
func (s *Strategist) lockedRand(fn func(rng *rand.Rand)) {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	fn(s.rng)
}

func canUse(self *mb.Player, shipType mb.ShipType) bool {
	return mb.CheckSkill(self, shipType) == nil
}

func shotsAt(p *mb.Player, opponentId string, dims mb.GridDimensions) mb.Grid {
	if shots, prs := p.Shots[opponentId]; prs {
		return shots
	}
	return mb.NewGrid(dims.Rows, dims.Cols)
}

// repairableCell finds a damaged cell of the ship that was hit before the
// current turn.
func repairableCell(state *mb.GameState, self *mb.Player, ship *mb.Ship) (mb.Coordinates, bool) {
	for _, pos := range ship.Positions {
		if self.Grid.At(pos.X, pos.Y) != mb.CellHit {
			continue
		}
		turn, prs := state.HitTurn(self.Id, pos)
		if !prs {
			turn = neverHit
		}
		if turn < state.Turn {
			return pos, true
		}
	}
	return mb.Coordinates{}, false
}

// Decide picks the AI's next move in a Tactical game. The list is walked
// top down and the first applicable entry wins.
func (s *Strategist) Decide(self, opponent *mb.Player, state *mb.GameState) Decision {
	dims := state.GridDimensions
	shots := shotsAt(self, opponent.Id, dims)
	heat := BuildProbabilityMap(opponent, shots, dims)
	threat := BuildProbabilityMap(self, shotsAt(opponent, self.Id, dims), dims)

	mothership := self.ShipByType(mb.ShipMothership)

	// survive
	if mothership != nil && canUse(self, mb.ShipMothership) {
		if spot, ok := BestRelocationSpot(self, mothership, threat, dims); ok {
			spot.ShipToMove = mothership.Name
			return skill(mb.ShipMothership, spot)
		}
	}
	if mothership != nil && mothership.IsDamaged && !mothership.HasBeenRepaired && canUse(self, mb.ShipRepairship) {
		if c, ok := repairableCell(state, self, mothership); ok {
			return skill(mb.ShipRepairship, mb.SkillOptions{X: c.X, Y: c.Y})
		}
	}

	// win
	if target := opponent.ShipByType(mb.ShipMothership); target != nil && target.IsDamaged && !target.IsSunk {
		hits := 0
		for _, pos := range target.Positions {
			if shots.At(pos.X, pos.Y) == mb.CellHit {
				hits++
			}
		}
		if hits == target.Length-1 {
			for _, pos := range target.Positions {
				if isTargetable(shots.At(pos.X, pos.Y)) {
					return attack(pos)
				}
			}
		}
	}

	if self.CamoArea == nil && canUse(self, mb.ShipCamoship) {
		if spot, ok := BestCamoSpot(self, dims); ok {
			return skill(mb.ShipCamoship, mb.SkillOptions{X: spot.X, Y: spot.Y})
		}
	}

	if canUse(self, mb.ShipShieldship) && s.chance() > shieldSkipChance {
		if c, ok := s.bestShieldTarget(self, threat, dims); ok {
			return skill(mb.ShipShieldship, mb.SkillOptions{X: c.X, Y: c.Y})
		}
	}

	var best *mb.Coordinates
	if targets := BestTargets(heat, shots, dims); len(targets) > 0 {
		c := s.pick(targets)
		best = &c
		if heat.At(c) > confidentAttackScore {
			return attack(c)
		}
	}

	if canUse(self, mb.ShipJamship) && s.chance() > jamSkipChance && opponentCanRepair(opponent) {
		if targets, ok := jamTargets(shots, dims); ok {
			return skill(mb.ShipJamship, mb.SkillOptions{Targets: targets})
		}
	}

	if canUse(self, mb.ShipCommandship) && s.chance() > commandSkipChance {
		if ship := ShipToRelocate(self, threat); ship != nil && !self.IsShipJammed(ship) {
			if spot, ok := BestRelocationSpot(self, ship, threat, dims); ok {
				spot.ShipToMove = ship.Name
				return skill(mb.ShipCommandship, spot)
			}
		}
	}

	if canUse(self, mb.ShipRepairship) {
		damaged := make([]*mb.Ship, 0)
		for i := range self.Ships {
			ship := &self.Ships[i]
			if ship.IsDamaged && !ship.IsSunk && !ship.HasBeenRepaired && ship.Type != mb.ShipMothership {
				damaged = append(damaged, ship)
			}
		}
		if len(damaged) > 0 {
			sort.SliceStable(damaged, func(i, j int) bool { return damaged[i].Length > damaged[j].Length })
			if c, ok := repairableCell(state, self, damaged[0]); ok {
				return skill(mb.ShipRepairship, mb.SkillOptions{X: c.X, Y: c.Y})
			}
		}
	}

	if canUse(self, mb.ShipScoutship) && s.chance() > intelSkipChance {
		if targets := BestScanTargets(heat, shots, dims); len(targets) == scanTargetCount {
			return skill(mb.ShipScoutship, mb.SkillOptions{Targets: targets})
		}
	}

	if canUse(self, mb.ShipRadarship) && s.chance() > intelSkipChance {
		if targets := BestScanTargets(heat, shots, dims); len(targets) == scanTargetCount {
			return skill(mb.ShipRadarship, mb.SkillOptions{Targets: targets})
		}
	}

	if canUse(self, mb.ShipDecoyship) && s.chance() > decoySkipChance {
		var spot mb.Coordinates
		var ok bool
		s.lockedRand(func(rng *rand.Rand) { spot, ok = BestDecoySpot(self, threat, dims, rng) })
		if ok {
			return skill(mb.ShipDecoyship, mb.SkillOptions{X: spot.X, Y: spot.Y})
		}
	}

	if best != nil {
		return attack(*best)
	}

	empty := make([]mb.Coordinates, 0)
	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			if shots.At(x, y) == mb.CellEmpty {
				empty = append(empty, mb.NewCoordinates(x, y))
			}
		}
	}
	if len(empty) == 0 {
		return attack(mb.Coordinates{})
	}
	return attack(s.pick(empty))
}

func opponentCanRepair(opponent *mb.Player) bool {
	damaged := false
	for _, ship := range opponent.Ships {
		if ship.IsDamaged && !ship.IsSunk {
			damaged = true
			break
		}
	}
	repairship := opponent.ShipByType(mb.ShipRepairship)
	return damaged && repairship != nil && !repairship.IsSunk && opponent.SkillCooldowns[mb.ShipRepairship] == 0
}

// jamTargets centres four jammers on the mean of the known hits.
func jamTargets(shots mb.Grid, dims mb.GridDimensions) ([]mb.Coordinates, bool) {
	sumX, sumY, hits := 0, 0, 0
	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			if shots[y][x] == mb.CellHit {
				sumX += x
				sumY += y
				hits++
			}
		}
	}
	if hits == 0 {
		return nil, false
	}

	center := mb.NewCoordinates(
		clamp(roundDiv(sumX, hits), 0, dims.Cols-1),
		clamp(roundDiv(sumY, hits), 0, dims.Rows-1),
	)
	targets := []mb.Coordinates{center}
	candidates := []mb.Coordinates{
		{X: center.X - 1, Y: center.Y}, {X: center.X + 1, Y: center.Y},
		{X: center.X, Y: center.Y - 1}, {X: center.X, Y: center.Y + 1},
		{X: center.X - 1, Y: center.Y - 1}, {X: center.X + 1, Y: center.Y - 1},
		{X: center.X - 1, Y: center.Y + 1}, {X: center.X + 1, Y: center.Y + 1},
	}
	for _, c := range candidates {
		if len(targets) == scanTargetCount {
			break
		}
		if dims.InBounds(c.X, c.Y) {
			targets = append(targets, c)
		}
	}
	return targets, len(targets) == scanTargetCount
}

func roundDiv(sum, n int) int {
	return (2*sum + n) / (2 * n)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// BestCamoSpot returns the top left corner of the 4x4 field covering the
// most own ship cells, Mothership cells counting extra.
func BestCamoSpot(self *mb.Player, dims mb.GridDimensions) (mb.Coordinates, bool) {
	mothership := self.ShipByType(mb.ShipMothership)
	best, bestScore := mb.Coordinates{}, -1

	for y := 0; y <= dims.Rows-mb.CamoSize; y++ {
		for x := 0; x <= dims.Cols-mb.CamoSize; x++ {
			score := 0
			for j := 0; j < mb.CamoSize; j++ {
				for i := 0; i < mb.CamoSize; i++ {
					cell := self.Grid.At(x+i, y+j)
					if cell != mb.CellShip && cell != mb.CellHit {
						continue
					}
					score++
					if mothership != nil && mothership.Occupies(mb.NewCoordinates(x+i, y+j)) {
						score += 3
					}
				}
			}
			if score > bestScore {
				bestScore = score
				best = mb.NewCoordinates(x, y)
			}
		}
	}
	return best, bestScore >= 0
}

// ShipToRelocate returns the most valuable healthy ship sitting where the
// opponent is likely to shoot.
func ShipToRelocate(self *mb.Player, threat Heatmap) *mb.Ship {
	for _, shipType := range relocationPriority {
		for i := range self.Ships {
			ship := &self.Ships[i]
			if ship.Type != shipType || ship.IsDamaged || ship.IsSunk || ship.HasBeenRelocated {
				continue
			}
			total := 0.0
			for _, pos := range ship.Positions {
				total += threat.At(pos)
			}
			if total > float64(ship.Length*relocationThreatPerCell) {
				return ship
			}
		}
	}
	return nil
}

// BestRelocationSpot finds the least threatened legal position for the
// ship once it is lifted off the grid.
func BestRelocationSpot(self *mb.Player, ship *mb.Ship, threat Heatmap, dims mb.GridDimensions) (mb.SkillOptions, bool) {
	grid := mb.RelocationGrid(self, ship)
	var best mb.SkillOptions
	found := false
	minThreat := 0.0

	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			for _, horizontal := range []bool{true, false} {
				if !mb.CanPlaceShip(grid, ship.Length, x, y, horizontal, dims) {
					continue
				}
				total := 0.0
				for _, c := range mb.ShipRun(ship.Length, x, y, horizontal) {
					total += threat.At(c)
				}
				if !found || total < minThreat {
					found = true
					minThreat = total
					best = mb.SkillOptions{X: x, Y: y, IsHorizontal: horizontal}
				}
			}
		}
	}
	return best, found
}

type shieldCandidate struct {
	c     mb.Coordinates
	score float64
	bluff bool
}

// bestShieldTarget weighs shielding a threatened part of a valuable ship
// against a bluff shield on threatened empty water.
func (s *Strategist) bestShieldTarget(self *mb.Player, threat Heatmap, dims mb.GridDimensions) (mb.Coordinates, bool) {
	candidates := make([]shieldCandidate, 0)

	for i := range self.Ships {
		ship := &self.Ships[i]
		if ship.IsSunk || self.ShipHasShield(ship) {
			continue
		}
		for _, pos := range ship.Positions {
			if self.Grid.At(pos.X, pos.Y) != mb.CellShip {
				continue
			}
			score := threat.At(pos)
			if score == 0 {
				score = 1
			}
			score *= 5
			switch ship.Type {
			case mb.ShipMothership:
				score *= 4
			case mb.ShipRepairship, mb.ShipJamship, mb.ShipShieldship:
				score *= 2
			}
			if self.CamoArea.Covers(pos) {
				score *= 3
			}
			candidates = append(candidates, shieldCandidate{c: pos, score: score})
		}
	}

	empty := make([]shieldCandidate, 0)
	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			c := mb.NewCoordinates(x, y)
			if self.Grid.At(x, y) == mb.CellEmpty && !self.IsShielded(c) {
				empty = append(empty, shieldCandidate{c: c, score: threat.At(c)})
			}
		}
	}
	sort.SliceStable(empty, func(i, j int) bool { return empty[i].score > empty[j].score })
	if len(empty) > bluffCandidateCount {
		empty = empty[:bluffCandidateCount]
	}
	for _, e := range empty {
		candidates = append(candidates, shieldCandidate{c: e.c, score: e.score * 1.5, bluff: true})
	}

	if len(candidates) == 0 {
		return mb.Coordinates{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].score > candidates[j].score })

	if s.chance() > bluffPreferChance {
		window := candidates
		if len(window) > bluffWindow {
			window = window[:bluffWindow]
		}
		for _, c := range window {
			if c.bluff {
				return c.c, true
			}
		}
	}
	return candidates[0].c, true
}
