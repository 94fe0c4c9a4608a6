package connection

const (
	CodeSessionID uint8 = iota
	CodeReceivedInvalidSessionID
	CodeCreateGame
	CodeJoinGame

	// Any game move: fleet, placement, shots, skills and the
	// action protocol. The move type lives inside the payload.
	CodeMove

	// Pushed to every session of a game after the state changed
	CodeGameState

	// Pushed once for every step of the computer's turn
	CodeAIAction
	CodeEndGame
	CodeInvalidSignal

	// if the req msg does not contain "code" field
	CodeSignalAbsent

	CodeOtherPlayerDisconnected
	CodeOtherPlayerReconnected
	CodeOtherPlayerGracePeriod

	// Clients ask for the latest snapshot, e.g. after a reconnect
	CodeSyncState
)

type Signal struct {
	Code uint8 `json:"code"`
}

func NewSignal(code uint8) Signal {
	return Signal{Code: code}
}
