package connection

import (
	"errors"
	"log"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

type NoPayload bool

// Message is the envelope of every frame sent to a client. Error is set
// instead of Payload when the request was rejected.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

// Reject answers with err, hiding the details of internal faults.
func (m *Message[T]) Reject(err error, message string) {
	m.AddError(ErrorDetails(err), message)
}

// ErrorDetails is what a client may see of err. Illegal moves and lookup
// failures are written for players; anything else is logged and blanked.
func ErrorDetails(err error) string {
	switch {
	case err == nil:
		return ""
	case cerr.IsIllegalMove(err),
		errors.Is(err, cerr.ErrNotFound),
		errors.Is(err, cerr.ErrUnauthorized),
		errors.Is(err, cerr.ErrVersionConflict):
		return err.Error()
	}
	log.Println(err)
	return ""
}
