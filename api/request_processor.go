package api

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-tactics/db/sqlc"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
	mc "github.com/saeidalz13/battleship-tactics/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"

	// Upper bound for one whole computer turn, delays included
	aiTurnTimeout = time.Minute * 2
)

var (
	upgrader = websocket.Upgrader{
		// good average time since this is not a high-latency operation such as video streaming
		HandshakeTimeout: time.Second * 5,

		// probably more that enough but this is a good average size
		ReadBufferSize:  2048,
		WriteBufferSize: 2048,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
)

// RequestProcessor is the realtime transport. Every websocket client
// gets a session, and every state change is pushed to all sessions
// seated at the game.
type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	q sqlc.Querier,
) RequestProcessor {
	rp := RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		ipnet:          serverIpNet(),
	}
	if q != nil {
		rp.analytics = sqlc.NewAnalyticsManager(q)
	}
	return rp
}

// serverIpNet finds the first non loopback IPv4 of this host. The
// analytics rows are keyed by it.
func serverIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Println("failed to list network interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			if ipnet, ok := addr.(*net.IPNet); ok && ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) inet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		http.Error(w, "could not open websocket connection", http.StatusBadRequest)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	switch sessionIdQuery {
	case "":
		log.Println("a new connection established\tRemote Addr: ", conn.RemoteAddr().String())
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))

	default:
		if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
			// This either means an expired session or invalid session ID
			_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
			conn.Close()
		}
	}
}

// NotifyState pushes a snapshot to everyone at the table, followed by the
// end game summary once there is a winner.
func (rp RequestProcessor) NotifyState(state *mb.GameState) {
	msg := mc.NewMessage[mc.RespGameState](mc.CodeGameState)
	msg.AddPayload(mc.NewRespGameState(state))
	rp.sessionManager.Broadcast(state.GameId, msg)

	if state.Phase == mb.PhaseGameOver {
		rp.notifyEndGame(state)
	}
}

func (rp RequestProcessor) notifyEndGame(state *mb.GameState) {
	if rp.analytics != nil {
		if err := rp.analytics.IncrementGamesFinishedCount(context.Background(), rp.inet()); err != nil {
			// for now not killing the game for it
			log.Println(err)
		}
	}

	msg := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	msg.AddPayload(mc.NewRespEndGame(state))
	rp.sessionManager.Broadcast(state.GameId, msg)
}

// afterChange fans a stored snapshot out and, when control passed to the
// computer, plays its turn in the background.
func (rp RequestProcessor) afterChange(state *mb.GameState) {
	rp.NotifyState(state)
	if mb.IsAITurn(state) {
		go rp.playAITurn(state.GameId)
	}
}

func (rp RequestProcessor) playAITurn(gameId string) {
	ctx, cancel := context.WithTimeout(context.Background(), aiTurnTimeout)
	defer cancel()

	final, err := rp.gameManager.PlayAITurn(ctx, gameId, func(snapshot *mb.GameState) {
		msg := mc.NewMessage[mc.RespGameState](mc.CodeAIAction)
		msg.AddPayload(mc.NewRespGameState(snapshot))
		rp.sessionManager.Broadcast(gameId, msg)
	})
	if err != nil {
		log.Printf("ai turn failed for game %s: %s\n", gameId, err)
		return
	}
	rp.NotifyState(final)
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		gameId := session.GameId()
		rp.sessionManager.TerminateSession(sessionId)
		if gameId != "" && len(rp.sessionManager.GameSessions(gameId)) == 0 {
			rp.gameManager.QueueTermination(gameId)
		}
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			// Retries were exhausted or the client left for good
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)

		switch signal.Code {
		// The creator of a game takes its first seat. AI and hot seat
		// games are full right away.
		case mc.CodeCreateGame:
			state, host, respMsg := NewRequest(payload).HandleCreateGame(ctx, rp.gameManager)
			if respMsg.Error == nil {
				session.Bind(state.GameId, host.Id)
				if rp.analytics != nil {
					if err := rp.analytics.IncrementGamesCreatedCount(ctx, rp.inet()); err != nil {
						log.Println(err)
					}
				}
			}
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				cancel()
				break sessionLoop
			}

		// The second player of an online game takes the free seat and
		// the host learns about it through the broadcast.
		case mc.CodeJoinGame:
			state, player, respMsg := NewRequest(payload).HandleJoinGame(ctx, rp.gameManager)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				cancel()
				break sessionLoop
			}
			if respMsg.Error != nil {
				cancel()
				continue sessionLoop
			}
			session.Bind(state.GameId, player.Id)
			rp.NotifyState(state)

		case mc.CodeMove:
			state, respMsg := NewRequest(payload).HandleMove(ctx, rp.gameManager, session.GameId())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				cancel()
				break sessionLoop
			}
			if respMsg.Error == nil {
				rp.afterChange(state)
			}

		case mc.CodeSyncState:
			respMsg := NewRequest(payload).HandleSyncState(ctx, rp.gameManager, session.GameId())
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				cancel()
				break sessionLoop
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				cancel()
				break sessionLoop
			}
		}
		cancel()
	}
}
