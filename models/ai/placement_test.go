package ai

import (
	"testing"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

func TestPlaceFleet(t *testing.T) {
	_, grid, err := mb.NewGameState("AITEST", mb.GameModeTactical, mb.MapTypeAsteroidField, mb.OpponentAI, 6, newTestRand())
	if err != nil {
		t.Fatalf("failed to create game: %s", err)
	}
	dims := mb.GridDimensions{Rows: len(grid), Cols: len(grid[0])}
	ships := DraftForPersonality(mb.TacticalShipPool, mb.TacticalFleetBudget, CounterIntel)
	before := grid.Clone()

	placedGrid, fleet := PlaceFleet(grid, ships, dims, newTestRand())

	if len(fleet) != len(ships) {
		t.Fatalf("expected %d ships placed\tgot: %d", len(ships), len(fleet))
	}

	wantCells := 0
	for i, ship := range fleet {
		if ship.Name != ships[i].Name {
			t.Fatalf("expected fleet order kept at %d: %s\tgot: %s", i, ships[i].Name, ship.Name)
		}
		if len(ship.Positions) != ship.Length {
			t.Fatalf("expected %s to cover %d cells\tgot: %d", ship.Name, ship.Length, len(ship.Positions))
		}
		if len(ships[i].Positions) != 0 {
			t.Fatalf("input ship %s was modified", ships[i].Name)
		}
		wantCells += ship.Length
	}

	shipCells, asteroids := 0, 0
	for y := range placedGrid {
		for x := range placedGrid[y] {
			switch placedGrid[y][x] {
			case mb.CellShip:
				shipCells++
			case mb.CellAsteroid:
				asteroids++
			}
			if before[y][x] != grid[y][x] {
				t.Fatalf("input grid was modified at %d,%d", x, y)
			}
		}
	}
	if shipCells != wantCells {
		t.Fatalf("expected %d ship cells\tgot: %d", wantCells, shipCells)
	}
	if asteroids != 6 {
		t.Fatalf("expected asteroids kept: 6\tgot: %d", asteroids)
	}
}

func TestPlaceFleetSkipsShipsThatDoNotFit(t *testing.T) {
	dims := mb.GridDimensions{Rows: 2, Cols: 3}
	grid := mb.NewGrid(dims.Rows, dims.Cols)
	ships := []mb.Ship{
		{Name: "Mothership", Type: mb.ShipMothership, Length: 2},
		{Name: "Commandship", Type: mb.ShipCommandship, Length: 5},
	}

	_, fleet := PlaceFleet(grid, ships, dims, newTestRand())
	if len(fleet) != 1 || fleet[0].Type != mb.ShipMothership {
		t.Fatalf("expected only the Mothership placed\tgot: %v", fleet)
	}
}
