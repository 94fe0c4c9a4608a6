package ai

import (
	"testing"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

var classicDims = mb.GridDimensions{Rows: 12, Cols: 12}

func TestHuntTargetFollowsHits(t *testing.T) {
	shots := mb.NewGrid(classicDims.Rows, classicDims.Cols)
	shots[0][0] = mb.CellHit
	shots[1][0] = mb.CellMiss

	for i := 0; i < 20; i++ {
		c := HuntTarget(shots, classicDims, newTestRand())
		if c != mb.NewCoordinates(1, 0) {
			t.Fatalf("expected the only open neighbour B1\tgot: %s", c.Label())
		}
	}
}

func TestHuntTargetCheckerboard(t *testing.T) {
	shots := mb.NewGrid(classicDims.Rows, classicDims.Cols)
	rng := newTestRand()

	for i := 0; i < 50; i++ {
		c := HuntTarget(shots, classicDims, rng)
		if (c.X+c.Y)%2 != 0 {
			t.Fatalf("expected a checkerboard cell\tgot: %s", c.Label())
		}
		shots[c.Y][c.X] = mb.CellMiss
	}
}

func TestHuntTargetFallsBackToAnyEmptyCell(t *testing.T) {
	shots := mb.NewGrid(classicDims.Rows, classicDims.Cols)
	for y := range shots {
		for x := range shots[y] {
			shots[y][x] = mb.CellMiss
		}
	}
	shots[3][4] = mb.CellEmpty

	if c := HuntTarget(shots, classicDims, newTestRand()); c != mb.NewCoordinates(4, 3) {
		t.Fatalf("expected E4\tgot: %s", c.Label())
	}

	// a sunk ship leaves nothing to follow up on
	shots[3][4] = mb.CellSunk
	if c := HuntTarget(shots, classicDims, newTestRand()); c != (mb.Coordinates{}) {
		t.Fatalf("expected the origin on a full board\tgot: %s", c.Label())
	}
}
