package battleship

import (
	"math/rand"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

const maxRandomPlacementAttempts = 200

type ShipPlacement struct {
	ShipName     string `json:"shipName"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	IsHorizontal bool   `json:"isHorizontal"`
}

// DraftFleet turns a selection of ship types into an unplaced fleet. The
// Mothership is always part of a tactical fleet, selected or not.
func DraftFleet(rules Rules, shipTypes []ShipType) ([]Ship, error) {
	catalog := rules.ShipCatalog()
	seen := make(map[ShipType]bool, len(shipTypes))
	ships := make([]Ship, 0, len(shipTypes)+1)

	if rules.Mode() == GameModeTactical {
		mothership, _ := FindShipConfig(catalog, ShipMothership)
		ships = append(ships, mothership.NewShip())
		seen[ShipMothership] = true
	}

	cost := 0
	for _, shipType := range shipTypes {
		if shipType == ShipMothership && rules.Mode() == GameModeTactical {
			continue
		}
		if seen[shipType] {
			return nil, cerr.ErrDuplicateShip(string(shipType))
		}
		config, prs := FindShipConfig(catalog, shipType)
		if !prs {
			return nil, cerr.ErrUnknownShip(string(shipType))
		}
		seen[shipType] = true
		cost += config.PointCost
		ships = append(ships, config.NewShip())
	}

	if budget := rules.FleetBudget(); budget > 0 && cost > budget {
		return nil, cerr.ErrFleetOverBudget(cost, budget)
	}
	return ships, nil
}

// CatalogFleet is the fixed fleet of modes without a draft.
func CatalogFleet(rules Rules) []Ship {
	catalog := rules.ShipCatalog()
	ships := make([]Ship, 0, len(catalog))
	for _, config := range catalog {
		ships = append(ships, config.NewShip())
	}
	return ships
}

// SubmitFleet stores the player's drafted fleet. Moving the game on is
// up to the opponent logic.
func SubmitFleet(rules Rules, state *GameState, playerId string, shipTypes []ShipType) (*GameState, error) {
	if err := state.requirePhase(PhaseFleetSelection); err != nil {
		return state, err
	}
	if state.Player(playerId) == nil {
		return state, cerr.ErrPlayerNotExist(playerId)
	}
	ships, err := DraftFleet(rules, shipTypes)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	next.Player(playerId).Ships = ships
	next.touch()
	return next, nil
}

// StartingGrid is the grid a player places ships on: the map's asteroids
// and nothing else.
func StartingGrid(grid Grid) Grid {
	out := grid.Clone()
	for y := range out {
		for x := range out[y] {
			if out[y][x] != CellAsteroid {
				out[y][x] = CellEmpty
			}
		}
	}
	return out
}

// SubmitPlacement positions the whole fleet at once and marks the player
// ready. Every ship of the fleet must be placed exactly once.
func SubmitPlacement(state *GameState, playerId string, placements []ShipPlacement) (*GameState, error) {
	if err := state.requirePhase(PhaseSetup); err != nil {
		return state, err
	}
	p := state.Player(playerId)
	if p == nil {
		return state, cerr.ErrPlayerNotExist(playerId)
	}

	byName := make(map[string]ShipPlacement, len(placements))
	for _, placement := range placements {
		if _, prs := byName[placement.ShipName]; prs {
			return state, cerr.ErrDuplicateShip(placement.ShipName)
		}
		if p.ShipByName(placement.ShipName) == nil {
			return state, cerr.ErrShipNotInFleet(placement.ShipName)
		}
		byName[placement.ShipName] = placement
	}

	grid := StartingGrid(p.Grid)
	ships := make([]Ship, 0, len(p.Ships))
	for _, ship := range p.Ships {
		placement, prs := byName[ship.Name]
		if !prs {
			return state, cerr.ErrShipNotPlaced(ship.Name)
		}
		if !CanPlaceShip(grid, ship.Length, placement.X, placement.Y, placement.IsHorizontal, state.GridDimensions) {
			return state, cerr.ErrCannotPlaceShip(ship.Name, placement.X, placement.Y)
		}
		var placed Ship
		var err error
		grid, placed, err = PlaceShip(grid, ship, placement.X, placement.Y, placement.IsHorizontal)
		if err != nil {
			return state, cerr.ErrCannotPlaceShip(ship.Name, placement.X, placement.Y)
		}
		ships = append(ships, placed)
	}

	next := state.Clone()
	np := next.Player(playerId)
	np.Grid = grid
	np.Ships = ships
	np.IsReady = true
	next.touch()
	return next, nil
}

// FindRandomValidPlacement tries random anchors and orientations until a
// ship of the given length fits. ok is false when every attempt failed.
func FindRandomValidPlacement(grid Grid, length int, dims GridDimensions, rng *rand.Rand) (x, y int, horizontal, ok bool) {
	for attempt := 0; attempt < maxRandomPlacementAttempts; attempt++ {
		horizontal = rng.Intn(2) == 0
		x, y = rng.Intn(dims.Cols), rng.Intn(dims.Rows)
		if CanPlaceShip(grid, length, x, y, horizontal, dims) {
			return x, y, horizontal, true
		}
	}
	return 0, 0, false, false
}

// PlaceFleetRandomly is the fallback placement for a fleet that nobody
// positioned by hand. Ships that cannot fit stay unplaced.
func PlaceFleetRandomly(grid Grid, ships []Ship, dims GridDimensions, rng *rand.Rand) (Grid, []Ship) {
	out := grid.Clone()
	placed := make([]Ship, 0, len(ships))
	for _, ship := range ships {
		x, y, horizontal, ok := FindRandomValidPlacement(out, ship.Length, dims, rng)
		if !ok {
			placed = append(placed, ship.Clone())
			continue
		}
		var moved Ship
		out, moved, _ = PlaceShip(out, ship, x, y, horizontal)
		placed = append(placed, moved)
	}
	return out, placed
}

func allPlayers(state *GameState, pred func(p *Player) bool) bool {
	if len(state.Players) < state.MaxPlayers {
		return false
	}
	for i := range state.Players {
		if !pred(&state.Players[i]) {
			return false
		}
	}
	return true
}

func firstPlayer(state *GameState, pred func(p *Player) bool) *Player {
	for i := range state.Players {
		if pred(&state.Players[i]) {
			return &state.Players[i]
		}
	}
	return nil
}

func hasFleet(p *Player) bool { return len(p.Ships) > 0 }
func isReady(p *Player) bool  { return p.IsReady }
