package connection

import "fmt"

// Loop control codes returned by the connection error handlers
const (
	ConnLoopBreak uint8 = iota
	ConnLoopRetry
	ConnLoopAbnormalClosureRetry
	ConnLoopContinue
	ConnInvalidMsgType
)

// ConnErr tells the read/write loops of a session what to do next. The
// websocket error that caused it, if any, is kept for errors.Is.
type ConnErr struct {
	code      uint8
	sessionId string
	desc      string
	cause     error
}

func NewConnErr(code uint8) ConnErr {
	return ConnErr{code: code}
}

func (c ConnErr) AddDesc(desc string) ConnErr {
	c.desc = desc
	return c
}

func (c ConnErr) ForSession(sessionId string) ConnErr {
	c.sessionId = sessionId
	return c
}

func (c ConnErr) Wrap(cause error) ConnErr {
	c.cause = cause
	return c
}

func (c ConnErr) Error() string {
	msg := fmt.Sprintf("connection error - code: %d", c.code)
	if c.sessionId != "" {
		msg += "\tsession: " + c.sessionId
	}
	if c.desc != "" {
		msg += "\tdesc: " + c.desc
	}
	if c.cause != nil {
		msg += "\tcause: " + c.cause.Error()
	}
	return msg
}

func (c ConnErr) Unwrap() error {
	return c.cause
}

func (c ConnErr) Code() uint8 {
	return c.code
}
