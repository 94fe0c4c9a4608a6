package connection

import (
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

// RespSeat is what a player gets back when they take a seat. The token
// is only ever sent to its owner.
type RespSeat struct {
	GameId       string        `json:"gameId"`
	PlayerId     string        `json:"playerId"`
	SessionToken string        `json:"sessionToken"`
	State        *mb.GameState `json:"gameState"`
}

func NewRespSeat(state *mb.GameState, player *mb.Player) RespSeat {
	return RespSeat{
		GameId:       state.GameId,
		PlayerId:     player.Id,
		SessionToken: player.SessionToken,
		State:        state.Redacted(),
	}
}

type RespGameState struct {
	State *mb.GameState `json:"gameState"`
}

func NewRespGameState(state *mb.GameState) RespGameState {
	return RespGameState{State: state.Redacted()}
}

type RespSessionId struct {
	SessionID string `json:"session_id"`
}

type RespEndGame struct {
	Winner string           `json:"winner"`
	Stats  []mb.PlayerStats `json:"stats"`
}

func NewRespEndGame(state *mb.GameState) RespEndGame {
	return RespEndGame{Winner: state.Winner, Stats: mb.Summarize(state)}
}

type RespErr struct {
	ErrorDetails string `json:"error_details,omitempty"`
	Message      string `json:"message,omitempty"`
}

func NewRespErr(errorDetails, message string) *RespErr {
	return &RespErr{
		ErrorDetails: errorDetails,
		Message:      message,
	}
}
