package battleship

import "testing"

func TestCanPlaceShip(t *testing.T) {
	dims := defaultGridDimensions
	grid := NewGrid(dims.Rows, dims.Cols)
	grid[5][5] = CellAsteroid
	grid, _, err := PlaceShip(grid, Ship{Name: "Jamship", Length: 3}, 0, 0, true)
	if err != nil {
		t.Fatalf("failed to place ship: %s", err)
	}

	tests := []struct {
		name       string
		length     int
		x, y       int
		horizontal bool
		want       bool
	}{
		{"open water", 3, 0, 2, true, true},
		{"last column", 3, 11, 9, false, true},
		{"past right edge", 3, 10, 2, true, false},
		{"past bottom edge", 3, 0, 10, false, false},
		{"negative", 2, -1, 0, true, false},
		{"overlap", 2, 2, 0, false, false},
		{"asteroid", 3, 3, 5, true, false},
		{"zero length", 0, 0, 2, true, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CanPlaceShip(grid, test.length, test.x, test.y, test.horizontal, dims); got != test.want {
				t.Fatalf("expected: %v\tgot: %v", test.want, got)
			}
		})
	}
}

func TestPlaceShipKeepsInput(t *testing.T) {
	grid := NewGrid(12, 12)
	ship := Ship{Name: "Scoutship", Length: 3, Positions: []Coordinates{}}

	out, placed, err := PlaceShip(grid, ship, 4, 4, false)
	if err != nil {
		t.Fatalf("failed to place ship: %s", err)
	}
	if grid[4][4] != CellEmpty || len(ship.Positions) != 0 {
		t.Fatal("input grid or ship was mutated")
	}
	if out[6][4] != CellShip || !placed.IsPlaced() {
		t.Fatalf("expected a vertical run from D5\tgot: %v", placed.Positions)
	}

	if _, _, err := PlaceShip(out, ship, 4, 5, true); err == nil {
		t.Fatal("expected overlapping placement to fail")
	}
}

func TestScatterAsteroidsAndStartingGrid(t *testing.T) {
	grid := NewGrid(12, 12)
	field := ScatterAsteroids(grid, 10, newTestRand())

	if n := field.Count(CellAsteroid); n != 10 {
		t.Fatalf("expected 10 asteroids\tgot: %d", n)
	}
	if grid.Count(CellAsteroid) != 0 {
		t.Fatal("input grid was mutated")
	}

	field[0][0] = CellShip
	field[1][1] = CellHit
	start := StartingGrid(field)
	if start[0][0] != CellEmpty || start[1][1] != CellEmpty {
		t.Fatal("expected only asteroids to survive")
	}
	if start.Count(CellAsteroid) != field.Count(CellAsteroid) {
		t.Fatal("expected asteroids to survive")
	}
}

func TestCoordinatesLabel(t *testing.T) {
	if got := NewCoordinates(2, 3).Label(); got != "C4" {
		t.Fatalf("expected: C4\tgot: %s", got)
	}
	if got := NewCoordinates(2, 3).Key(); got != "2,3" {
		t.Fatalf("expected: 2,3\tgot: %s", got)
	}
}
