package connection

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-tactics/internal"
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(sessionId string)
	ReconnectSession(sessionId string, conn *websocket.Conn) error
	HandleAbnormalClosureSession(session *Session) error

	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Communicate(receiverSessionId string, msg interface{}, msgType uint8) error

	GameSessions(gameId string) []*Session
	Broadcast(gameId string, msg interface{})
}

type BattleshipSessionManager struct {
	cleanupInterval time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

var _ SessionManager = (*BattleshipSessionManager)(nil)

func NewBattleshipSessionManager() *BattleshipSessionManager {
	initMapSize := 10

	return &BattleshipSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 20,
	}
}

func (bsm *BattleshipSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	session := NewSession(internal.NewSessionToken(), conn)

	bsm.mu.Lock()
	bsm.sessions[session.id] = session
	bsm.mu.Unlock()

	return session
}

func (bsm *BattleshipSessionManager) FindSession(sessionId string) (*Session, error) {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	session, prs := bsm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (bsm *BattleshipSessionManager) TerminateSession(sessionId string) {
	bsm.mu.Lock()
	defer bsm.mu.Unlock()
	delete(bsm.sessions, sessionId)
}

func (bsm *BattleshipSessionManager) ReconnectSession(sessionId string, conn *websocket.Conn) error {
	session, err := bsm.FindSession(sessionId)
	if err != nil {
		return err
	}
	session.reconnectionAfterAbnormalClosure(conn)
	return nil
}

// GameSessions returns every live session bound to the game.
func (bsm *BattleshipSessionManager) GameSessions(gameId string) []*Session {
	bsm.mu.RLock()
	defer bsm.mu.RUnlock()

	sessions := make([]*Session, 0, 2)
	for _, session := range bsm.sessions {
		if session.GameId() == gameId {
			sessions = append(sessions, session)
		}
	}
	return sessions
}

// Broadcast writes msg to every session of the game. A failing session
// does not stop the others, its own read loop will tear it down.
func (bsm *BattleshipSessionManager) Broadcast(gameId string, msg interface{}) {
	for _, session := range bsm.GameSessions(gameId) {
		if err := bsm.WriteToSessionConn(session, msg, MessageTypeJSON); err != nil {
			log.Printf("broadcast to session %s failed: %s\n", session.id, err)
		}
	}
}

// This method sends the msg from one session to another
func (bsm *BattleshipSessionManager) Communicate(receiverSessionId string, msg interface{}, msgType uint8) error {
	receiverSession, err := bsm.FindSession(receiverSessionId)
	if err != nil {
		return err
	}
	return bsm.WriteToSessionConn(receiverSession, msg, msgType)
}

// Sessions older than the cleanup interval are considered dangling and
// are dropped.
func (bsm *BattleshipSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(bsm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		bsm.mu.Lock()
		for id, session := range bsm.sessions {
			if time.Since(session.createdAt) > bsm.cleanupInterval {
				delete(bsm.sessions, id)
				log.Printf("removed stale session: %s\n", id)
			}
		}
		bsm.mu.Unlock()
	}
}

// HandleAbnormalClosureSession holds a dropped session open for the
// grace period. Everyone else at the table is told to wait, and then
// whether the player came back.
func (bsm *BattleshipSessionManager) HandleAbnormalClosureSession(s *Session) error {
	gameId := s.GameId()
	if gameId == "" {
		return NewConnErr(ConnLoopBreak).ForSession(s.id).AddDesc("session has no game")
	}

	others := make([]*Session, 0, 1)
	for _, session := range bsm.GameSessions(gameId) {
		if session.id != s.id {
			others = append(others, session)
		}
	}

	notify := func(code uint8) {
		for _, other := range others {
			if err := other.writeToConnWithRetry(NewMessage[NoPayload](code), MessageTypeJSON); err != nil {
				log.Printf("failed to notify session %s: %s\n", other.id, err)
			}
		}
	}

	notify(CodeOtherPlayerGracePeriod)

	timer := time.NewTimer(gracePeriod)
	defer timer.Stop()

	select {
	case <-timer.C:
		notify(CodeOtherPlayerDisconnected)
		log.Printf("session terminated: %s\n", s.id)
		return NewConnErr(ConnLoopBreak).ForSession(s.id).AddDesc("grace period is over")

	case <-s.reconnectionSignal():
		notify(CodeOtherPlayerReconnected)
		log.Printf("player reconnected, session: %s\n", s.id)
		return nil
	}
}

func (bsm *BattleshipSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	err := session.writeToConnWithRetry(msg, msgType)
	if err == nil {
		return nil
	}

	var connErr ConnErr
	if !errors.As(err, &connErr) {
		return err
	}

	if connErr.Code() == ConnLoopAbnormalClosureRetry {
		if err := bsm.HandleAbnormalClosureSession(session); err != nil {
			return connErr
		}
		return session.writeToConnWithRetry(msg, msgType)
	}
	return connErr
}

func (bsm *BattleshipSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.Conn().ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		case ConnLoopAbnormalClosureRetry:
			if err := bsm.HandleAbnormalClosureSession(session); err != nil {
				return -1, []byte{}, err
			}

		default:
			return -1, []byte{}, err
		}
	}
}

func FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
