package battleship

import (
	"math/rand"

	"github.com/saeidalz13/battleship-tactics/internal"
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

const (
	aiPlayerName     = "Admiral"
	secondSeatName   = "Player 2"
	DefaultAsteroids = 10
)

type GameSettings struct {
	Mode         GameMode     `json:"gameMode"`
	MapType      MapType      `json:"mapType"`
	OpponentType OpponentType `json:"opponentType"`
	HostName     string       `json:"playerName"`
	Asteroids    int          `json:"-"`
}

// CreateGame opens a game with the host seated. AI and hot seat games
// fill the second seat right away and skip the lobby; online games wait
// for JoinGame.
func CreateGame(settings GameSettings, rng *rand.Rand) (*GameState, *Player, error) {
	if settings.Asteroids <= 0 {
		settings.Asteroids = DefaultAsteroids
	}
	state, grid, err := NewGameState(internal.NewGameCode(), settings.Mode, settings.MapType, settings.OpponentType, settings.Asteroids, rng)
	if err != nil {
		return nil, nil, err
	}
	rules := RulesFor(settings.Mode)

	host := rules.InitializePlayer(internal.NewPlayerId(), settings.HostName, false, grid)
	host.SessionToken = internal.NewSessionToken()
	state.Players = append(state.Players, host)
	state.CurrentPlayerId = host.Id

	switch settings.OpponentType {
	case OpponentAI:
		state.Players = append(state.Players, rules.InitializePlayer(internal.NewPlayerId(), aiPlayerName, true, grid))
		openFleetSelection(rules, state)
	case OpponentHuman:
		// Both seats share one device, so they share the session token.
		second := rules.InitializePlayer(internal.NewPlayerId(), secondSeatName, false, grid)
		second.SessionToken = host.SessionToken
		state.Players = append(state.Players, second)
		openFleetSelection(rules, state)
	}

	hostCopy := state.Players[0].Clone()
	return state, &hostCopy, nil
}

// JoinGame seats the second player of an online game.
func JoinGame(state *GameState, name string) (*GameState, *Player, error) {
	if err := state.requirePhase(PhaseLobby); err != nil {
		return state, nil, err
	}
	if len(state.Players) >= state.MaxPlayers || len(state.Players) == 0 {
		return state, nil, cerr.ErrGameFull(state.GameId)
	}

	rules := RulesFor(state.GameMode)
	next := state.Clone()
	player := rules.InitializePlayer(internal.NewPlayerId(), name, false, StartingGrid(next.Players[0].Grid))
	player.SessionToken = internal.NewSessionToken()
	next.Players = append(next.Players, player)
	openFleetSelection(rules, next)
	next.touch()

	joined := player.Clone()
	return next, &joined, nil
}

// openFleetSelection moves a full table out of the lobby. Modes without a
// draft hand out the catalog fleet and go straight to setup.
func openFleetSelection(rules Rules, state *GameState) {
	state.CurrentPlayerId = state.Players[0].Id
	if rules.Mode() == GameModeTactical {
		state.Phase = PhaseFleetSelection
		return
	}
	for i := range state.Players {
		state.Players[i].Ships = CatalogFleet(rules)
	}
	state.Phase = PhaseSetup
}
