package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
	mc "github.com/saeidalz13/battleship-tactics/models/connection"
)

const maxRequestBodyBytes = 1 << 16

// HTTPHandler serves clients that poll instead of holding a websocket.
// Both transports share the game manager, so a state change made here is
// also pushed to websocket sessions through onChange.
type HTTPHandler struct {
	gameManager mb.GameManager
	onChange    func(*mb.GameState)
}

func NewHTTPHandler(gameManager mb.GameManager, onChange func(*mb.GameState)) HTTPHandler {
	return HTTPHandler{gameManager: gameManager, onChange: onChange}
}

func (h HTTPHandler) Register(r *mux.Router) {
	r.HandleFunc("/games", h.handleCreateGame).Methods(http.MethodPost)
	r.HandleFunc("/games/{gameId}", h.handleGetGame).Methods(http.MethodGet)
	r.HandleFunc("/games/{gameId}/join", h.handleJoinGame).Methods(http.MethodPost)
	r.HandleFunc("/games/{gameId}/moves", h.handleMove).Methods(http.MethodPost)
	r.HandleFunc("/games/{gameId}/stats", h.handleStats).Methods(http.MethodGet)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Println("failed to write response:", err)
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, cerr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, cerr.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, cerr.ErrVersionConflict):
		return http.StatusConflict
	case cerr.IsIllegalMove(err):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error, message string) {
	writeJSON(w, statusFor(err), mc.NewRespErr(mc.ErrorDetails(err), message))
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, mc.NewRespErr(err.Error(), ConstErrBadPayload))
		return false
	}
	return true
}

func (h HTTPHandler) changed(state *mb.GameState) {
	if h.onChange != nil {
		h.onChange(state)
	}
}

func (h HTTPHandler) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req mc.ReqCreateGame
	if !decodeBody(w, r, &req) {
		return
	}

	state, host, err := h.gameManager.CreateGame(r.Context(), req.Settings())
	if err != nil {
		writeError(w, err, ConstErrCreateGame)
		return
	}
	writeJSON(w, http.StatusCreated, mc.NewRespSeat(state, host))
}

func (h HTTPHandler) handleGetGame(w http.ResponseWriter, r *http.Request) {
	gameId := mux.Vars(r)["gameId"]
	h.gameManager.NotePoll(gameId)

	state, err := h.gameManager.GetGame(r.Context(), gameId)
	if err != nil {
		writeError(w, err, ConstErrSyncState)
		return
	}
	writeJSON(w, http.StatusOK, mc.NewRespGameState(state))
}

func (h HTTPHandler) handleJoinGame(w http.ResponseWriter, r *http.Request) {
	var req mc.ReqJoinGame
	if !decodeBody(w, r, &req) {
		return
	}

	gameId := mux.Vars(r)["gameId"]
	h.gameManager.NotePoll(gameId)

	state, player, err := h.gameManager.JoinGame(r.Context(), gameId, req.PlayerName)
	if err != nil {
		writeError(w, err, ConstErrJoinGame)
		return
	}
	h.changed(state)
	writeJSON(w, http.StatusOK, mc.NewRespSeat(state, player))
}

func (h HTTPHandler) handleMove(w http.ResponseWriter, r *http.Request) {
	var req mc.ReqMove
	if !decodeBody(w, r, &req) {
		return
	}

	gameId := mux.Vars(r)["gameId"]
	h.gameManager.NotePoll(gameId)

	state, err := h.gameManager.ApplyMove(r.Context(), gameId, req.PlayerId, req.SessionToken, req.Move)
	if err != nil {
		writeError(w, err, ConstErrMove)
		return
	}
	h.changed(state)
	writeJSON(w, http.StatusOK, mc.NewRespGameState(state))
}

func (h HTTPHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	gameId := mux.Vars(r)["gameId"]
	h.gameManager.NotePoll(gameId)

	state, err := h.gameManager.GetGame(r.Context(), gameId)
	if err != nil {
		writeError(w, err, ConstErrSyncState)
		return
	}
	writeJSON(w, http.StatusOK, mc.NewRespEndGame(state))
}
