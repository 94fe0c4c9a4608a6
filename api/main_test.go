package api_test

import (
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/websocket"

	"github.com/saeidalz13/battleship-tactics/api"
	"github.com/saeidalz13/battleship-tactics/db/sqlc"
	"github.com/saeidalz13/battleship-tactics/models/ai"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
	mc "github.com/saeidalz13/battleship-tactics/models/connection"
)

var (
	testServer      *api.Server
	testHTTP        *httptest.Server
	testWsUrl       string
	testMock        sqlmock.Sqlmock
	testGameManager *mb.BattleshipGameManager
	dialer          = websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
)

func TestMain(m *testing.M) {
	db, mock, err := sqlmock.New()
	if err != nil {
		panic(err)
	}
	testMock = mock

	testGameManager = mb.NewBattleshipGameManager(
		mb.WithAI(ai.NewAIOpponent(ai.NewStrategist(ai.WithActionDelay(0)))),
	)
	testServer = api.NewServer(
		mc.NewBattleshipSessionManager(),
		testGameManager,
		api.WithStage(api.StageDev),
		api.WithQuerier(sqlc.New(db)),
	)

	testHTTP = httptest.NewServer(testServer.Router())
	testWsUrl = "ws" + strings.TrimPrefix(testHTTP.URL, "http") + "/battleship"
	log.Println("test server:", testHTTP.URL)

	code := m.Run()
	testHTTP.Close()
	db.Close()
	os.Exit(code)
}

// dialSession opens a websocket and reads the session id the server
// greets every new connection with.
func dialSession(t *testing.T) (*websocket.Conn, string) {
	t.Helper()

	conn, _, err := dialer.Dial(testWsUrl, nil)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		conn.Close()
	})

	var resp mc.Message[mc.RespSessionId]
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Code != mc.CodeSessionID {
		t.Fatalf("expected code: %d\tgot: %d", mc.CodeSessionID, resp.Code)
	}
	return conn, resp.Payload.SessionID
}
