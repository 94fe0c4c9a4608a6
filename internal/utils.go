package internal

import (
	"encoding/base64"
	"strings"

	"github.com/google/uuid"
)

// NewGameCode returns the short, shareable code players type to join a game.
func NewGameCode() string {
	return strings.ToUpper(uuid.NewString()[:6])
}

func NewPlayerId() string {
	return uuid.NewString()[:10]
}

// NewSessionToken returns the secret a player presents with every move.
func NewSessionToken() string {
	return base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString()))
}
