package connection

import (
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

type ReqCreateGame struct {
	GameMode     mb.GameMode     `json:"gameMode"`
	MapType      mb.MapType      `json:"mapType"`
	OpponentType mb.OpponentType `json:"opponentType"`
	PlayerName   string          `json:"playerName"`
}

func (r ReqCreateGame) Settings() mb.GameSettings {
	return mb.GameSettings{
		Mode:         r.GameMode,
		MapType:      r.MapType,
		OpponentType: r.OpponentType,
		HostName:     r.PlayerName,
	}
}

type ReqJoinGame struct {
	GameId     string `json:"gameId"`
	PlayerName string `json:"playerName"`
}

// ReqMove carries one player intent. Hot seat games move both seats
// from the same session, so the player is named on every move.
type ReqMove struct {
	GameId       string  `json:"gameId"`
	PlayerId     string  `json:"playerId"`
	SessionToken string  `json:"sessionToken"`
	Move         mb.Move `json:"move"`
}

type ReqSyncState struct {
	GameId string `json:"gameId"`
}
