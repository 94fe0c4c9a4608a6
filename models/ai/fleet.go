package ai

import (
	"math/rand"
	"sort"

	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

type Personality string

const (
	StealthAggro     Personality = "STEALTH_AGGRO"
	CounterIntel     Personality = "COUNTER_INTEL"
	BalancedUtility  Personality = "BALANCED_UTILITY"
	DefensiveWall    Personality = "DEFENSIVE_WALL"
	MaxPressureSwarm Personality = "MAX_PRESSURE_SWARM"
)

var Personalities = []Personality{StealthAggro, CounterIntel, BalancedUtility, DefensiveWall, MaxPressureSwarm}

// Ships each personality drafts before filling the rest of the budget.
var personalityCore = map[Personality][]mb.ShipType{
	StealthAggro:     {mb.ShipCamoship, mb.ShipJamship},
	CounterIntel:     {mb.ShipScoutship, mb.ShipRadarship},
	BalancedUtility:  {mb.ShipCommandship, mb.ShipRepairship},
	DefensiveWall:    {mb.ShipShieldship, mb.ShipRepairship, mb.ShipSupportship, mb.ShipDecoyship},
	MaxPressureSwarm: {mb.ShipSupportship, mb.ShipDecoyship},
}

// SelectFleet drafts a fleet for a random personality.
func SelectFleet(pool []mb.ShipConfig, budget int, rng *rand.Rand) ([]mb.Ship, Personality) {
	personality := Personalities[rng.Intn(len(Personalities))]
	return DraftForPersonality(pool, budget, personality), personality
}

// DraftForPersonality always starts with the free Mothership, adds the
// personality's core ships, then fills the budget. The swarm buys the
// cheapest ships first, everyone else the most expensive.
func DraftForPersonality(pool []mb.ShipConfig, budget int, personality Personality) []mb.Ship {
	mothership, prs := mb.FindShipConfig(pool, mb.ShipMothership)
	if !prs {
		return []mb.Ship{}
	}
	fleet := []mb.Ship{mothership.NewShip()}
	cost := mothership.PointCost

	available := make([]mb.ShipConfig, 0, len(pool))
	for _, config := range pool {
		if config.Type != mb.ShipMothership {
			available = append(available, config)
		}
	}

	take := func(idx int) {
		fleet = append(fleet, available[idx].NewShip())
		cost += available[idx].PointCost
		available = append(available[:idx], available[idx+1:]...)
	}

	for _, shipType := range personalityCore[personality] {
		for i, config := range available {
			if config.Type == shipType && cost+config.PointCost <= budget {
				take(i)
				break
			}
		}
	}

	if personality == MaxPressureSwarm {
		sort.SliceStable(available, func(i, j int) bool { return available[i].PointCost < available[j].PointCost })
	} else {
		sort.SliceStable(available, func(i, j int) bool { return available[i].PointCost > available[j].PointCost })
	}

	rest := append([]mb.ShipConfig(nil), available...)
	for _, config := range rest {
		if cost+config.PointCost <= budget {
			fleet = append(fleet, config.NewShip())
			cost += config.PointCost
		}
	}
	return fleet
}
