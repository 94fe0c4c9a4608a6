package battleship

import (
	"math/rand"
	"time"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

type Phase string

const (
	PhaseLobby            Phase = "LOBBY"
	PhaseFleetSelection   Phase = "FLEET_SELECTION"
	PhaseAIFleetSelection Phase = "AI_FLEET_SELECTION"
	PhaseSetup            Phase = "SETUP"
	PhasePlaying          Phase = "PLAYING"
	PhaseTurnTransition   Phase = "TURN_TRANSITION"
	PhaseGameOver         Phase = "GAME_OVER"
)

type GameMode string

const (
	GameModeClassic  GameMode = "CLASSIC"
	GameModeTactical GameMode = "TACTICAL"
)

type MapType string

const (
	MapTypeStandard      MapType = "STANDARD"
	MapTypeAsteroidField MapType = "ASTEROID_FIELD"
)

type OpponentType string

const (
	OpponentAI     OpponentType = "AI"
	OpponentHuman  OpponentType = "Human"
	OpponentOnline OpponentType = "ONLINE"
)

const MaxPlayers = 2

type LogResult string

const (
	LogHit               LogResult = "HIT"
	LogMiss              LogResult = "MISS"
	LogSunkShip          LogResult = "SUNK_SHIP"
	LogShotFired         LogResult = "SHOT_FIRED"
	LogSkillUsed         LogResult = "SKILL_USED"
	LogCamoHit           LogResult = "CAMO_HIT"
	LogAsteroidDestroyed LogResult = "ASTEROID_DESTROYED"
	LogShieldBroken      LogResult = "SHIELD_BROKEN"
)

type LogEntry struct {
	Turn         int          `json:"turn"`
	PlayerId     string       `json:"playerId"`
	PlayerName   string       `json:"playerName"`
	TargetId     string       `json:"targetId,omitempty"`
	TargetName   string       `json:"targetName,omitempty"`
	Coords       *Coordinates `json:"coords,omitempty"`
	Result       LogResult    `json:"result"`
	SunkShipName string       `json:"sunkShipName,omitempty"`
	HitShipName  string       `json:"hitShipName,omitempty"`
	Message      string       `json:"message,omitempty"`
}

type LastShot struct {
	Coords     Coordinates `json:"coords"`
	AttackerId string      `json:"attackerId"`
	TargetId   string      `json:"targetId"`
}

type RadarContact struct {
	X     int  `json:"x"`
	Y     int  `json:"y"`
	State Cell `json:"state"`
}

type RadarScanResult struct {
	PlayerId string         `json:"playerId"`
	Results  []RadarContact `json:"results"`
}

type JammedArea struct {
	PlayerId string        `json:"playerId"`
	Coords   []Coordinates `json:"coords"`
}

type GameState struct {
	GameId          string         `json:"gameId"`
	Phase           Phase          `json:"phase"`
	Players         []Player       `json:"players"`
	CurrentPlayerId string         `json:"currentPlayerId"`
	Winner          string         `json:"winner"`
	MaxPlayers      int            `json:"maxPlayers"`
	Turn            int            `json:"turn"`
	GridDimensions  GridDimensions `json:"gridDimensions"`
	ShipsConfig     []ShipConfig   `json:"shipsConfig"`
	GameMode        GameMode       `json:"gameMode"`
	MapType         MapType        `json:"mapType"`
	OpponentType    OpponentType   `json:"opponentType"`
	FleetBudget     int            `json:"fleetBudget"`
	Log             []LogEntry     `json:"log"`

	ActiveAction    *ActiveAction    `json:"activeAction,omitempty"`
	RadarScanResult *RadarScanResult `json:"radarScanResult,omitempty"`
	JammedArea      *JammedArea      `json:"jammedArea,omitempty"`
	LastShot        *LastShot        `json:"lastShot,omitempty"`

	// defender id -> "x,y" -> turn the cell was hit
	HitLog map[string]map[string]int `json:"hitLog"`

	LastUpdated int64 `json:"lastUpdated"`
	Version     int64 `json:"version"`
}

// NewGameState sets up an empty two seat game. The shared starting grid
// is scattered with asteroids on asteroid field maps.
func NewGameState(gameId string, mode GameMode, mapType MapType, opponentType OpponentType, asteroids int, rng *rand.Rand) (*GameState, Grid, error) {
	switch mode {
	case GameModeClassic, GameModeTactical:
	default:
		return nil, nil, cerr.ErrInvalidGameMode(string(mode))
	}
	switch mapType {
	case MapTypeStandard, MapTypeAsteroidField:
	default:
		return nil, nil, cerr.ErrInvalidMapType(string(mapType))
	}
	switch opponentType {
	case OpponentAI, OpponentHuman, OpponentOnline:
	default:
		return nil, nil, cerr.ErrInvalidOpponentType(string(opponentType))
	}

	rules := RulesFor(mode)
	dims := rules.GridDimensions()

	grid := NewGrid(dims.Rows, dims.Cols)
	if mapType == MapTypeAsteroidField {
		grid = ScatterAsteroids(grid, asteroids, rng)
	}

	state := &GameState{
		GameId:         gameId,
		Phase:          PhaseLobby,
		Players:        []Player{},
		MaxPlayers:     MaxPlayers,
		Turn:           1,
		GridDimensions: dims,
		ShipsConfig:    append([]ShipConfig(nil), rules.ShipCatalog()...),
		GameMode:       mode,
		MapType:        mapType,
		OpponentType:   opponentType,
		FleetBudget:    rules.FleetBudget(),
		Log:            []LogEntry{},
		HitLog:         map[string]map[string]int{},
		LastUpdated:    time.Now().UnixMilli(),
	}
	return state, grid, nil
}

// Clone deep copies the state. Every transition works on a clone so the
// input snapshot is never mutated.
func (gs *GameState) Clone() *GameState {
	out := *gs

	out.Players = make([]Player, len(gs.Players))
	for i := range gs.Players {
		out.Players[i] = gs.Players[i].Clone()
	}
	out.ShipsConfig = append([]ShipConfig(nil), gs.ShipsConfig...)

	out.Log = make([]LogEntry, len(gs.Log))
	for i, entry := range gs.Log {
		if entry.Coords != nil {
			c := *entry.Coords
			entry.Coords = &c
		}
		out.Log[i] = entry
	}

	if gs.ActiveAction != nil {
		action := gs.ActiveAction.clone()
		out.ActiveAction = &action
	}
	if gs.RadarScanResult != nil {
		out.RadarScanResult = &RadarScanResult{
			PlayerId: gs.RadarScanResult.PlayerId,
			Results:  append([]RadarContact(nil), gs.RadarScanResult.Results...),
		}
	}
	if gs.JammedArea != nil {
		out.JammedArea = &JammedArea{
			PlayerId: gs.JammedArea.PlayerId,
			Coords:   append([]Coordinates(nil), gs.JammedArea.Coords...),
		}
	}
	if gs.LastShot != nil {
		shot := *gs.LastShot
		out.LastShot = &shot
	}
	if gs.HitLog != nil {
		out.HitLog = make(map[string]map[string]int, len(gs.HitLog))
		for pid, cells := range gs.HitLog {
			inner := make(map[string]int, len(cells))
			for k, v := range cells {
				inner[k] = v
			}
			out.HitLog[pid] = inner
		}
	}
	return &out
}

// Redacted is the copy sent over the wire: no player's session token
// leaves the server.
func (gs *GameState) Redacted() *GameState {
	out := gs.Clone()
	for i := range out.Players {
		out.Players[i].SessionToken = ""
	}
	return out
}

func (gs *GameState) PlayerIndex(playerId string) int {
	for i := range gs.Players {
		if gs.Players[i].Id == playerId {
			return i
		}
	}
	return -1
}

func (gs *GameState) Player(playerId string) *Player {
	idx := gs.PlayerIndex(playerId)
	if idx == -1 {
		return nil
	}
	return &gs.Players[idx]
}

func (gs *GameState) CurrentPlayer() *Player {
	return gs.Player(gs.CurrentPlayerId)
}

// Opponent returns the other seat in a two player game.
func (gs *GameState) Opponent(playerId string) *Player {
	for i := range gs.Players {
		if gs.Players[i].Id != playerId {
			return &gs.Players[i]
		}
	}
	return nil
}

func (gs *GameState) AIPlayer() *Player {
	for i := range gs.Players {
		if gs.Players[i].IsAI {
			return &gs.Players[i]
		}
	}
	return nil
}

func (gs *GameState) humanCount() int {
	n := 0
	for _, p := range gs.Players {
		if !p.IsAI {
			n++
		}
	}
	return n
}

// prependLog keeps the log newest first.
func (gs *GameState) prependLog(entry LogEntry) {
	gs.Log = append([]LogEntry{entry}, gs.Log...)
}

func (gs *GameState) recordHit(defenderId string, c Coordinates) {
	if gs.HitLog == nil {
		gs.HitLog = map[string]map[string]int{}
	}
	if gs.HitLog[defenderId] == nil {
		gs.HitLog[defenderId] = map[string]int{}
	}
	gs.HitLog[defenderId][c.Key()] = gs.Turn
}

func (gs *GameState) forgetHit(defenderId string, c Coordinates) {
	if cells, prs := gs.HitLog[defenderId]; prs {
		delete(cells, c.Key())
	}
}

// HitTurn returns the turn a cell of the defender was hit and whether
// the hit is on record.
func (gs *GameState) HitTurn(defenderId string, c Coordinates) (int, bool) {
	turn, prs := gs.HitLog[defenderId][c.Key()]
	return turn, prs
}

func (gs *GameState) touch() {
	gs.LastUpdated = time.Now().UnixMilli()
}

func (gs *GameState) requirePhase(phase Phase) error {
	if gs.Phase != phase {
		return cerr.ErrWrongPhase(string(phase), string(gs.Phase))
	}
	return nil
}

// requireCurrentPlayer checks the game is in play and it is this player's turn.
func (gs *GameState) requireCurrentPlayer(playerId string) (*Player, error) {
	if err := gs.requirePhase(PhasePlaying); err != nil {
		return nil, err
	}
	if gs.CurrentPlayerId != playerId {
		return nil, cerr.ErrNotPlayersTurn(playerId)
	}
	player := gs.Player(playerId)
	if player == nil {
		return nil, cerr.ErrPlayerNotExist(playerId)
	}
	return player, nil
}
