package ai

import (
	"math/rand"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

// HuntTarget is the Classic mode policy. With open hits it fires next to
// one of them; otherwise it hunts on a checkerboard, and falls back to
// any unexplored cell once the checkerboard is used up.
func HuntTarget(shots mb.Grid, dims mb.GridDimensions, rng *rand.Rand) mb.Coordinates {
	var hits, empty, hunt []mb.Coordinates
	for y := 0; y < dims.Rows; y++ {
		for x := 0; x < dims.Cols; x++ {
			c := mb.NewCoordinates(x, y)
			switch shots.At(x, y) {
			case mb.CellHit:
				hits = append(hits, c)
			case mb.CellEmpty:
				empty = append(empty, c)
				if (x+y)%2 == 0 {
					hunt = append(hunt, c)
				}
			}
		}
	}

	if len(hits) > 0 {
		seen := make(map[mb.Coordinates]bool)
		var targets []mb.Coordinates
		for _, hit := range hits {
			for _, n := range hit.Neighbours() {
				if !dims.InBounds(n.X, n.Y) || shots.At(n.X, n.Y) != mb.CellEmpty || seen[n] {
					continue
				}
				seen[n] = true
				targets = append(targets, n)
			}
		}
		if len(targets) > 0 {
			return targets[rng.Intn(len(targets))]
		}
	}

	if len(hunt) > 0 {
		return hunt[rng.Intn(len(hunt))]
	}
	if len(empty) > 0 {
		return empty[rng.Intn(len(empty))]
	}
	return mb.Coordinates{}
}
