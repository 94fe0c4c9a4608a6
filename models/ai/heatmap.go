package ai

import (
	"math/rand"
	"sort"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

const (
	hitNeighbourWeight    = 5
	shieldNeighbourWeight = 3
	scanTargetCount       = 4
)

// Threat multipliers for enemy ships the AI has already found.
var TargetPriority = map[mb.ShipType]float64{
	mb.ShipRepairship:  1.5,
	mb.ShipJamship:     1.4,
	mb.ShipScoutship:   1.4,
	mb.ShipShieldship:  1.3,
	mb.ShipSupportship: 1.2,
	mb.ShipCamoship:    1.2,
	mb.ShipCommandship: 1.1,
}

// Heatmap holds, per cell, how many placements of the unsunk enemy
// ships are still consistent with what the shooter knows. Indexed [y][x].
type Heatmap [][]float64

func newHeatmap(dims mb.GridDimensions) Heatmap {
	h := make(Heatmap, dims.Rows)
	for y := range h {
		h[y] = make([]float64, dims.Cols)
	}
	return h
}

func (h Heatmap) At(c mb.Coordinates) float64 {
	if c.Y < 0 || c.Y >= len(h) || c.X < 0 || c.X >= len(h[c.Y]) {
		return 0
	}
	return h[c.Y][c.X]
}

// Max returns the highest score on the map.
func (h Heatmap) Max() float64 {
	max := 0.0
	for y := range h {
		for x := range h[y] {
			if h[y][x] > max {
				max = h[y][x]
			}
		}
	}
	return max
}

// blocksPlacement reports whether no unsunk ship can lie across the cell.
func blocksPlacement(cell mb.Cell) bool {
	return cell == mb.CellMiss || cell == mb.CellSunk || cell == mb.CellAsteroidDestroyed
}

// isTargetable is the set of shot grid cells worth firing at.
func isTargetable(cell mb.Cell) bool {
	return cell == mb.CellEmpty || cell == mb.CellRadarContact || cell == mb.CellShieldHit
}

// isIdentified reports whether the shooter already hit the ship.
func isIdentified(ship mb.Ship, shots mb.Grid) bool {
	for _, pos := range ship.Positions {
		if shots.At(pos.X, pos.Y) == mb.CellHit {
			return true
		}
	}
	return false
}

// BuildProbabilityMap scores every cell of the target's grid from the
// shooter's shot grid. A placement counts only when its run covers every
// known HIT that falls inside the run's span.
func BuildProbabilityMap(target *mb.Player, shots mb.Grid, dims mb.GridDimensions) Heatmap {
	h := newHeatmap(dims)
	if shots == nil {
		shots = mb.NewGrid(dims.Rows, dims.Cols)
	}

	for _, ship := range target.Ships {
		if ship.IsSunk {
			continue
		}
		weight := 1.0
		if isIdentified(ship, shots) {
			if priority, prs := TargetPriority[ship.Type]; prs {
				weight = priority
			}
		}

		for y := 0; y < dims.Rows; y++ {
			for x := 0; x < dims.Cols; x++ {
				for _, horizontal := range []bool{true, false} {
					if !placementFits(shots, ship.Length, x, y, horizontal, dims) {
						continue
					}
					for _, c := range mb.ShipRun(ship.Length, x, y, horizontal) {
						h[c.Y][c.X] += weight
					}
				}
			}
		}
	}

	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			if shots[y][x] != mb.CellHit {
				continue
			}
			for _, n := range mb.NewCoordinates(x, y).Neighbours() {
				if dims.InBounds(n.X, n.Y) && shots[n.Y][n.X] == mb.CellEmpty {
					h[n.Y][n.X] *= hitNeighbourWeight
				}
			}
		}
	}

	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			if shots[y][x] != mb.CellShieldHit {
				continue
			}
			c := mb.NewCoordinates(x, y)
			for _, n := range append(c.Neighbours(), c) {
				if dims.InBounds(n.X, n.Y) {
					h[n.Y][n.X] *= shieldNeighbourWeight
				}
			}
		}
	}
	return h
}

// placementFits checks a candidate run against the shot grid: in bounds
// and no cell a ship cannot occupy. Known hits inside the span are
// covered by the run itself.
func placementFits(shots mb.Grid, length, x, y int, horizontal bool, dims mb.GridDimensions) bool {
	run := mb.ShipRun(length, x, y, horizontal)
	last := run[len(run)-1]
	if !dims.InBounds(x, y) || !dims.InBounds(last.X, last.Y) {
		return false
	}
	for _, c := range run {
		if blocksPlacement(shots[c.Y][c.X]) {
			return false
		}
	}
	return true
}

type scoredCell struct {
	c     mb.Coordinates
	score float64
}

func targetableCells(h Heatmap, shots mb.Grid, dims mb.GridDimensions) []scoredCell {
	cells := make([]scoredCell, 0, dims.Rows*dims.Cols)
	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			if isTargetable(shots.At(x, y)) {
				c := mb.NewCoordinates(x, y)
				cells = append(cells, scoredCell{c: c, score: h.At(c)})
			}
		}
	}
	return cells
}

// BestTargets returns every targetable cell sharing the top score.
func BestTargets(h Heatmap, shots mb.Grid, dims mb.GridDimensions) []mb.Coordinates {
	best := -1.0
	var targets []mb.Coordinates
	for _, sc := range targetableCells(h, shots, dims) {
		switch {
		case sc.score > best:
			best = sc.score
			targets = []mb.Coordinates{sc.c}
		case sc.score == best:
			targets = append(targets, sc.c)
		}
	}
	return targets
}

// BestScanTargets picks four high scoring cells for radar or target
// lock, spread out so no two touch when possible.
func BestScanTargets(h Heatmap, shots mb.Grid, dims mb.GridDimensions) []mb.Coordinates {
	cells := targetableCells(h, shots, dims)
	sort.SliceStable(cells, func(i, j int) bool { return cells[i].score > cells[j].score })

	targets := make([]mb.Coordinates, 0, scanTargetCount)
	touches := func(c mb.Coordinates) bool {
		for _, t := range targets {
			if abs(t.X-c.X) <= 1 && abs(t.Y-c.Y) <= 1 {
				return true
			}
		}
		return false
	}

	for _, sc := range cells {
		if len(targets) == scanTargetCount {
			return targets
		}
		if !touches(sc.c) {
			targets = append(targets, sc.c)
		}
	}

fill:
	for _, sc := range cells {
		if len(targets) == scanTargetCount {
			break
		}
		for _, t := range targets {
			if t == sc.c {
				continue fill
			}
		}
		targets = append(targets, sc.c)
	}
	return targets
}

// BestDecoySpot picks, among own empty water, the anchor of the 2x2
// block the opponent is least likely to search.
func BestDecoySpot(self *mb.Player, threat Heatmap, dims mb.GridDimensions, rng *rand.Rand) (mb.Coordinates, bool) {
	min := -1.0
	var spots []mb.Coordinates
	for y := 0; y < dims.Rows-1; y++ {
		for x := 0; x < dims.Cols-1; x++ {
			c := mb.NewCoordinates(x, y)
			if self.Grid.At(x, y) != mb.CellEmpty || self.HasDecoyAt(c) {
				continue
			}
			density := threat.At(c) + threat.At(mb.NewCoordinates(x+1, y)) +
				threat.At(mb.NewCoordinates(x, y+1)) + threat.At(mb.NewCoordinates(x+1, y+1))
			switch {
			case min < 0 || density < min:
				min = density
				spots = []mb.Coordinates{c}
			case density == min:
				spots = append(spots, c)
			}
		}
	}
	if len(spots) == 0 {
		return mb.Coordinates{}, false
	}
	return spots[rng.Intn(len(spots))], true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
