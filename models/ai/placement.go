package ai

import (
	"math/rand"
	"sort"

	"github.com/saeidalz13/battleship-tactics/internal/logging"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

const asteroidCoverBonus = 15

type placementCandidate struct {
	x, y       int
	horizontal bool
}

// PlaceFleet positions the fleet on the grid: Mothership first, then the
// longest ships. Edges are avoided and asteroid cover is sought, with a
// random jitter so no two games look alike. A ship that fits nowhere is
// left out of the returned fleet.
func PlaceFleet(grid mb.Grid, ships []mb.Ship, dims mb.GridDimensions, rng *rand.Rand) (mb.Grid, []mb.Ship) {
	order := make([]mb.Ship, len(ships))
	copy(order, ships)
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Type == mb.ShipMothership {
			return order[j].Type != mb.ShipMothership
		}
		if order[j].Type == mb.ShipMothership {
			return false
		}
		return order[i].Length > order[j].Length
	})

	out := grid.Clone()
	placed := make(map[string]mb.Ship, len(ships))
	for _, ship := range order {
		best := -1e9
		var candidates []placementCandidate

		for y := 0; y < dims.Rows; y++ {
			for x := 0; x < dims.Cols; x++ {
				for _, horizontal := range []bool{true, false} {
					if !mb.CanPlaceShip(out, ship.Length, x, y, horizontal, dims) {
						continue
					}
					score := placementScore(grid, ship.Length, x, y, horizontal, dims) + rng.Float64()
					switch {
					case score > best:
						best = score
						candidates = []placementCandidate{{x, y, horizontal}}
					case score == best:
						candidates = append(candidates, placementCandidate{x, y, horizontal})
					}
				}
			}
		}

		var choice placementCandidate
		if len(candidates) > 0 {
			choice = candidates[rng.Intn(len(candidates))]
		} else {
			x, y, horizontal, ok := mb.FindRandomValidPlacement(out, ship.Length, dims, rng)
			if !ok {
				logging.Warn("failed to place ship", logging.Fields{"ship": ship.Name})
				continue
			}
			choice = placementCandidate{x, y, horizontal}
		}

		var moved mb.Ship
		out, moved, _ = mb.PlaceShip(out, ship, choice.x, choice.y, choice.horizontal)
		placed[ship.Name] = moved
	}

	fleet := make([]mb.Ship, 0, len(placed))
	for _, ship := range ships {
		if moved, prs := placed[ship.Name]; prs {
			fleet = append(fleet, moved)
		}
	}
	return out, fleet
}

func placementScore(grid mb.Grid, length, x, y int, horizontal bool, dims mb.GridDimensions) float64 {
	score := 0.0
	coveredByAsteroid := false
	for _, c := range mb.ShipRun(length, x, y, horizontal) {
		if c.X == 0 || c.X == dims.Cols-1 || c.Y == 0 || c.Y == dims.Rows-1 {
			score -= float64(5 - length)
		}
		for _, n := range c.Neighbours() {
			if grid.At(n.X, n.Y) == mb.CellAsteroid && dims.InBounds(n.X, n.Y) {
				coveredByAsteroid = true
			}
		}
	}
	if coveredByAsteroid {
		score += asteroidCoverBonus
	}
	return score
}
