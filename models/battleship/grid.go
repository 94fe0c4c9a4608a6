package battleship

import (
	"fmt"
	"math/rand"

	"github.com/saeidalz13/battleship-tactics/internal/logging"
)

type Cell string

const (
	CellEmpty             Cell = "EMPTY"
	CellShip              Cell = "SHIP"
	CellHit               Cell = "HIT"
	CellMiss              Cell = "MISS"
	CellSunk              Cell = "SUNK"
	CellDecoy             Cell = "DECOY"
	CellRadarContact      Cell = "RADAR_CONTACT"
	CellAsteroid          Cell = "ASTEROID"
	CellAsteroidDestroyed Cell = "ASTEROID_DESTROYED"
	CellCamoHit           Cell = "CAMO_HIT"
	CellShieldHit         Cell = "SHIELD_HIT"
)

const maxAsteroidAttempts = 100

type Coordinates struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewCoordinates(x, y int) Coordinates {
	return Coordinates{X: x, Y: y}
}

// Key is the "x,y" form used by the hit log.
func (c Coordinates) Key() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Label renders the coordinate the way players read it, e.g. C4.
func (c Coordinates) Label() string {
	return fmt.Sprintf("%c%d", rune('A'+c.X), c.Y+1)
}

// Neighbours returns the 4-neighbourhood, including out of bound cells.
func (c Coordinates) Neighbours() []Coordinates {
	return []Coordinates{
		{X: c.X, Y: c.Y - 1},
		{X: c.X, Y: c.Y + 1},
		{X: c.X - 1, Y: c.Y},
		{X: c.X + 1, Y: c.Y},
	}
}

func containsCoordinates(list []Coordinates, c Coordinates) bool {
	for _, item := range list {
		if item == c {
			return true
		}
	}
	return false
}

func removeCoordinates(list []Coordinates, c Coordinates) []Coordinates {
	out := make([]Coordinates, 0, len(list))
	for _, item := range list {
		if item != c {
			out = append(out, item)
		}
	}
	return out
}

type GridDimensions struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

func (d GridDimensions) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < d.Cols && y < d.Rows
}

// Grid is indexed [y][x].
type Grid [][]Cell

// Creates a new grid with every cell EMPTY
func NewGrid(rows, cols int) Grid {
	grid := make(Grid, rows)
	for y := 0; y < rows; y++ {
		grid[y] = make([]Cell, cols)
		for x := range grid[y] {
			grid[y][x] = CellEmpty
		}
	}
	return grid
}

func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for y := range g {
		out[y] = make([]Cell, len(g[y]))
		copy(out[y], g[y])
	}
	return out
}

// At returns EMPTY for cells outside the grid.
func (g Grid) At(x, y int) Cell {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return CellEmpty
	}
	return g[y][x]
}

func (g Grid) Count(cell Cell) int {
	n := 0
	for y := range g {
		for x := range g[y] {
			if g[y][x] == cell {
				n++
			}
		}
	}
	return n
}

// ScatterAsteroids places up to count asteroids on distinct empty cells.
// Placement is best effort: after maxAsteroidAttempts it gives up and
// returns the grid with fewer asteroids.
func ScatterAsteroids(grid Grid, count int, rng *rand.Rand) Grid {
	out := grid.Clone()
	if len(out) == 0 || count <= 0 {
		return out
	}

	rows, cols := len(out), len(out[0])
	placed := 0
	for attempts := 0; placed < count && attempts < maxAsteroidAttempts; attempts++ {
		x, y := rng.Intn(cols), rng.Intn(rows)
		if out[y][x] == CellEmpty {
			out[y][x] = CellAsteroid
			placed++
		}
	}

	if placed < count {
		logging.Warn("asteroid field placed fewer asteroids than requested", logging.Fields{
			"requested": count,
			"placed":    placed,
		})
	}
	return out
}

// ShipRun lists the cells a ship of the given length would occupy.
func ShipRun(length, x, y int, horizontal bool) []Coordinates {
	run := make([]Coordinates, length)
	for i := 0; i < length; i++ {
		if horizontal {
			run[i] = Coordinates{X: x + i, Y: y}
		} else {
			run[i] = Coordinates{X: x, Y: y + i}
		}
	}
	return run
}

// CanPlaceShip reports whether every cell of the run is in bounds and EMPTY.
func CanPlaceShip(grid Grid, length, x, y int, horizontal bool, dims GridDimensions) bool {
	if length <= 0 {
		return false
	}
	for _, c := range ShipRun(length, x, y, horizontal) {
		if !dims.InBounds(c.X, c.Y) {
			return false
		}
		if grid.At(c.X, c.Y) != CellEmpty {
			return false
		}
	}
	return true
}

// PlaceShip returns a new grid with the run marked SHIP and a copy of the
// ship holding its positions. The input grid and ship are not modified.
func PlaceShip(grid Grid, ship Ship, x, y int, horizontal bool) (Grid, Ship, error) {
	dims := GridDimensions{Rows: len(grid)}
	if len(grid) > 0 {
		dims.Cols = len(grid[0])
	}
	if !CanPlaceShip(grid, ship.Length, x, y, horizontal, dims) {
		return grid, ship, fmt.Errorf("cannot place %s at x: %d\ty: %d", ship.Name, x, y)
	}

	out := grid.Clone()
	placed := ship.Clone()
	placed.Positions = ShipRun(ship.Length, x, y, horizontal)
	for _, c := range placed.Positions {
		out[c.Y][c.X] = CellShip
	}
	return out, placed, nil
}
