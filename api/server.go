package api

import (
	"fmt"
	"net"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/saeidalz13/battleship-tactics/db/sqlc"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
	mc "github.com/saeidalz13/battleship-tactics/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const defaultPort = 8000

type Server struct {
	port    int
	stage   string
	querier sqlc.Querier

	GameManager    *mb.BattleshipGameManager
	SessionManager *mc.BattleshipSessionManager
	processor      RequestProcessor
}

type Option func(*Server) error

func NewServer(sessionManager *mc.BattleshipSessionManager, gameManager *mb.BattleshipGameManager, optFuncs ...Option) *Server {
	server := Server{
		port:           defaultPort,
		stage:          StageDev,
		GameManager:    gameManager,
		SessionManager: sessionManager,
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}

	server.processor = NewRequestProcessor(sessionManager, gameManager, server.querier)
	return &server
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithQuerier(q sqlc.Querier) Option {
	return func(s *Server) error {
		s.querier = q
		return nil
	}
}

func (s *Server) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", s.port)
}

func (s *Server) ServerIpNet() net.IPNet {
	return s.processor.GetIpNet()
}

// NotifyState pushes a snapshot changed outside of a websocket session,
// e.g. by the idle turn sweeper, to the sessions of its game.
func (s *Server) NotifyState(state *mb.GameState) {
	s.processor.afterChange(state)
}

// Router serves the websocket transport on /battleship and the polling
// transport under /games.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()
	r.Handle("/battleship", s.processor).Methods(http.MethodGet)
	NewHTTPHandler(s.GameManager, s.processor.afterChange).Register(r)
	return r
}
