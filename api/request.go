package api

import (
	"context"
	"encoding/json"
	"log"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
	mc "github.com/saeidalz13/battleship-tactics/models/connection"
)

const (
	ConstErrCreateGame = "failed to create game"
	ConstErrJoinGame   = "failed to join game"
	ConstErrMove       = "move rejected"
	ConstErrSyncState  = "failed to fetch game state"
	ConstErrBadPayload = "invalid request payload"
)

// Every incoming request carries the raw frame; the handlers decode the
// payload they expect and answer with a ready to send message.
type Request struct {
	payload []byte
}

func NewRequest(payload ...[]byte) Request {
	if len(payload) > 1 {
		log.Println("cannot accept more than one payload")
		return Request{}
	}

	var r Request
	if len(payload) != 0 {
		r.payload = payload[0]
	}
	return r
}

func decodePayload[T any](payload []byte) (T, error) {
	var msg mc.Message[T]
	err := json.Unmarshal(payload, &msg)
	return msg.Payload, err
}

func (r Request) HandleCreateGame(ctx context.Context, gm mb.GameManager) (*mb.GameState, *mb.Player, mc.Message[mc.RespSeat]) {
	resp := mc.NewMessage[mc.RespSeat](mc.CodeCreateGame)

	req, err := decodePayload[mc.ReqCreateGame](r.payload)
	if err != nil {
		resp.AddError(err.Error(), ConstErrBadPayload)
		return nil, nil, resp
	}

	state, host, err := gm.CreateGame(ctx, req.Settings())
	if err != nil {
		resp.Reject(err, ConstErrCreateGame)
		return nil, nil, resp
	}

	resp.AddPayload(mc.NewRespSeat(state, host))
	return state, host, resp
}

func (r Request) HandleJoinGame(ctx context.Context, gm mb.GameManager) (*mb.GameState, *mb.Player, mc.Message[mc.RespSeat]) {
	resp := mc.NewMessage[mc.RespSeat](mc.CodeJoinGame)

	req, err := decodePayload[mc.ReqJoinGame](r.payload)
	if err != nil {
		resp.AddError(err.Error(), ConstErrBadPayload)
		return nil, nil, resp
	}

	state, player, err := gm.JoinGame(ctx, req.GameId, req.PlayerName)
	if err != nil {
		resp.Reject(err, ConstErrJoinGame)
		return nil, nil, resp
	}

	resp.AddPayload(mc.NewRespSeat(state, player))
	return state, player, resp
}

// HandleMove applies one move. The game must be the one the session is
// seated at.
func (r Request) HandleMove(ctx context.Context, gm mb.GameManager, sessionGameId string) (*mb.GameState, mc.Message[mc.RespGameState]) {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeMove)

	req, err := decodePayload[mc.ReqMove](r.payload)
	if err != nil {
		resp.AddError(err.Error(), ConstErrBadPayload)
		return nil, resp
	}
	if sessionGameId == "" || req.GameId != sessionGameId {
		resp.AddError(cerr.ErrGameNotExists(req.GameId).Error(), ConstErrMove)
		return nil, resp
	}

	state, err := gm.ApplyMove(ctx, req.GameId, req.PlayerId, req.SessionToken, req.Move)
	if err != nil {
		resp.Reject(err, ConstErrMove)
		return nil, resp
	}

	resp.AddPayload(mc.NewRespGameState(state))
	return state, resp
}

func (r Request) HandleSyncState(ctx context.Context, gm mb.GameManager, sessionGameId string) mc.Message[mc.RespGameState] {
	resp := mc.NewMessage[mc.RespGameState](mc.CodeSyncState)

	gameId := sessionGameId
	if req, err := decodePayload[mc.ReqSyncState](r.payload); err == nil && req.GameId != "" {
		gameId = req.GameId
	}

	state, err := gm.GetGame(ctx, gameId)
	if err != nil {
		resp.Reject(err, ConstErrSyncState)
		return resp
	}

	resp.AddPayload(mc.NewRespGameState(state))
	return resp
}
