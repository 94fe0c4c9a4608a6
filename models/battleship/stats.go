package battleship

import "github.com/dariubs/percent"

type PlayerStats struct {
	PlayerId  string  `json:"playerId"`
	Name      string  `json:"name"`
	Shots     int     `json:"shots"`
	Hits      int     `json:"hits"`
	Accuracy  float64 `json:"accuracy"`
	ShipsSunk int     `json:"shipsSunk"`
	ShipsLost int     `json:"shipsLost"`
}

// Summarize tallies each player's shots from the game log. Outcomes the
// shooter never saw, like a camouflaged hit, count as shots only.
func Summarize(state *GameState) []PlayerStats {
	stats := make([]PlayerStats, len(state.Players))
	byId := make(map[string]*PlayerStats, len(state.Players))
	for i, p := range state.Players {
		stats[i] = PlayerStats{PlayerId: p.Id, Name: p.Name}
		for _, s := range p.Ships {
			if s.IsSunk {
				stats[i].ShipsLost++
			}
		}
		byId[p.Id] = &stats[i]
	}

	for i := 0; i < len(state.Log); i++ {
		entry := state.Log[i]
		s, prs := byId[entry.PlayerId]
		if !prs {
			continue
		}
		switch entry.Result {
		case LogHit:
			s.Shots++
			s.Hits++
		case LogSunkShip:
			// a camouflaged sink also logged the CAMO_HIT just before it
			if i+1 < len(state.Log) && sameShot(entry, state.Log[i+1]) && state.Log[i+1].Result == LogCamoHit {
				i++
			}
			s.Shots++
			s.Hits++
			s.ShipsSunk++
		case LogMiss, LogCamoHit, LogShieldBroken, LogAsteroidDestroyed:
			s.Shots++
		}
	}

	for i := range stats {
		if stats[i].Shots > 0 {
			stats[i].Accuracy = percent.PercentOf(stats[i].Hits, stats[i].Shots)
		}
	}
	return stats
}

func sameShot(a, b LogEntry) bool {
	return a.Turn == b.Turn && a.PlayerId == b.PlayerId && a.Coords != nil && b.Coords != nil && *a.Coords == *b.Coords
}
