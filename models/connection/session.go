package connection

import (
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	gracePeriod       time.Duration = time.Minute * 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn)
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one websocket client. Once the client creates or joins a
// game the session is bound to that game and seat.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	reconnectionSignalChan chan bool
	createdAt              time.Time

	// The AI turn streams from its own goroutine, gorilla allows a
	// single concurrent writer.
	writeMu sync.Mutex
	mu      sync.RWMutex

	gameId   string
	playerId string
}

var _ ConnectionHandler = (*Session)(nil)

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan bool),
		createdAt:              time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.conn
}

func (s *Session) Bind(gameId, playerId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gameId = gameId
	s.playerId = playerId
}

func (s *Session) GameId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gameId
}

func (s *Session) PlayerId() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.playerId
}

func (s *Session) reconnectionSignal() chan bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.reconnectionSignalChan
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Mobile clients going to background end up here
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		log.Println("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	// Most likely not our client. Not worth retrying invalid payloads.
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. Timeouts are retried with a
// backoff, an abnormal closure is reported to the caller so it can wait
// for the client to come back.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var retries uint8

writeLoop:
	for {
		conn := s.Conn()
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				log.Printf("writing to ws [%s] failed; retrying... (retry no. %d)\n", conn.RemoteAddr().String(), retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeLoop
			}
			log.Printf("max retries reached for writing to ws [%s]: %s\n", conn.RemoteAddr().String(), err)
			return NewConnErr(ConnLoopBreak).ForSession(s.id).Wrap(err)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry).ForSession(s.id).Wrap(err)

		default:
			return NewConnErr(ConnLoopBreak).ForSession(s.id).AddDesc("breaking write loop").Wrap(err)
		}
	}
}

// Handles the errors that occur when reading from the ws connection.
// ConnLoopContinue asks the caller to read again.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries >= maxWriteWsRetries {
			return ConnLoopBreak
		}
		log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.Conn().RemoteAddr().String(), retries)
		time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
		return ConnLoopContinue

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.Conn().RemoteAddr().String(), err)
		return ConnLoopBreak
	}
}

func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	close(s.reconnectionSignalChan)
	s.conn = conn
	s.reconnectionSignalChan = make(chan bool)
}
