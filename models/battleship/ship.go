package battleship

type ShipType string

const (
	ShipMothership  ShipType = "Mothership"
	ShipCamoship    ShipType = "Camoship"
	ShipCommandship ShipType = "Commandship"
	ShipScoutship   ShipType = "Scoutship"
	ShipRadarship   ShipType = "Radarship"
	ShipShieldship  ShipType = "Shieldship"
	ShipRepairship  ShipType = "Repairship"
	ShipJamship     ShipType = "Jamship"
	ShipDecoyship   ShipType = "Decoyship"
	ShipSupportship ShipType = "Supportship"

	// Classic fleet, the type is the ship name
	ShipCarrier    ShipType = "Carrier"
	ShipBattleship ShipType = "Battleship"
	ShipCruiser    ShipType = "Cruiser"
	ShipSubmarine  ShipType = "Submarine"
	ShipDestroyer  ShipType = "Destroyer"
)

// ShipConfig is a catalog entry: what a ship is before it is drafted.
type ShipConfig struct {
	Name      string   `json:"name"`
	Type      ShipType `json:"type"`
	Length    int      `json:"length"`
	PointCost int      `json:"pointCost"`
}

func (sc ShipConfig) NewShip() Ship {
	return Ship{
		Name:      sc.Name,
		Type:      sc.Type,
		Length:    sc.Length,
		PointCost: sc.PointCost,
		Positions: []Coordinates{},
	}
}

var TacticalShipPool = []ShipConfig{
	{Name: "Mothership", Type: ShipMothership, Length: 2, PointCost: 0},
	{Name: "Camoship", Type: ShipCamoship, Length: 4, PointCost: 7},
	{Name: "Commandship", Type: ShipCommandship, Length: 5, PointCost: 7},
	{Name: "Scoutship", Type: ShipScoutship, Length: 3, PointCost: 6},
	{Name: "Radarship", Type: ShipRadarship, Length: 3, PointCost: 4},
	{Name: "Shieldship", Type: ShipShieldship, Length: 3, PointCost: 5},
	{Name: "Repairship", Type: ShipRepairship, Length: 3, PointCost: 4},
	{Name: "Jamship", Type: ShipJamship, Length: 3, PointCost: 4},
	{Name: "Decoyship", Type: ShipDecoyship, Length: 4, PointCost: 3},
	{Name: "Supportship", Type: ShipSupportship, Length: 3, PointCost: 3},
}

var ClassicShips = []ShipConfig{
	{Name: "Carrier", Type: ShipCarrier, Length: 5},
	{Name: "Battleship", Type: ShipBattleship, Length: 4},
	{Name: "Cruiser", Type: ShipCruiser, Length: 3},
	{Name: "Submarine", Type: ShipSubmarine, Length: 3},
	{Name: "Destroyer", Type: ShipDestroyer, Length: 2},
}

func FindShipConfig(catalog []ShipConfig, shipType ShipType) (ShipConfig, bool) {
	for _, sc := range catalog {
		if sc.Type == shipType {
			return sc, true
		}
	}
	return ShipConfig{}, false
}

type Ship struct {
	Name             string        `json:"name"`
	Type             ShipType      `json:"type"`
	Length           int           `json:"length"`
	Positions        []Coordinates `json:"positions"`
	IsSunk           bool          `json:"isSunk"`
	IsDamaged        bool          `json:"isDamaged"`
	HasBeenRepaired  bool          `json:"hasBeenRepaired"`
	HasBeenRelocated bool          `json:"hasBeenRelocated"`
	PointCost        int           `json:"pointCost"`
}

func (s Ship) Clone() Ship {
	out := s
	out.Positions = append([]Coordinates(nil), s.Positions...)
	return out
}

func (s Ship) IsPlaced() bool {
	return len(s.Positions) == s.Length
}

func (s Ship) Occupies(c Coordinates) bool {
	return containsCoordinates(s.Positions, c)
}

// IsDestroyedOn reports whether every occupied cell of the ship reads HIT
// (or already SUNK) on the owner's grid.
func (s Ship) IsDestroyedOn(grid Grid) bool {
	if len(s.Positions) == 0 {
		return false
	}
	for _, p := range s.Positions {
		cell := grid.At(p.X, p.Y)
		if cell != CellHit && cell != CellSunk {
			return false
		}
	}
	return true
}
