package battleship

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
	"github.com/saeidalz13/battleship-tactics/internal/logging"
)

// AIController is the computer side of an AI game: it reacts to the
// human's fleet and setup, and plays its own turns.
type AIController interface {
	Opponent
	ExecuteTurn(ctx context.Context, rules Rules, state *GameState, onAction func(*GameState)) (*GameState, error)
}

type GameManager interface {
	CreateGame(ctx context.Context, settings GameSettings) (*GameState, *Player, error)
	JoinGame(ctx context.Context, gameId, playerName string) (*GameState, *Player, error)
	GetGame(ctx context.Context, gameId string) (*GameState, error)
	ApplyMove(ctx context.Context, gameId, playerId, sessionToken string, move Move) (*GameState, error)
	PlayAITurn(ctx context.Context, gameId string, onAction func(*GameState)) (*GameState, error)
	TerminateGame(ctx context.Context, gameId string)
	QueueTermination(gameId string)
	NotePoll(gameId string)
}

type BattleshipGameManager struct {
	store     GameStore
	ai        AIController
	asteroids int

	rng   *rand.Rand
	rngMu sync.Mutex

	// one lock per game serializes read-modify-write cycles
	locks map[string]*sync.Mutex
	mu    sync.Mutex

	// last HTTP access per game; a polled game outlives its sockets
	polledAt  map[string]time.Time
	pollGrace time.Duration

	EndGameChan chan string
}

var _ GameManager = (*BattleshipGameManager)(nil)

type GameManagerOption func(*BattleshipGameManager)

func WithStore(store GameStore) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.store = store
	}
}

func WithAI(ai AIController) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.ai = ai
	}
}

func WithAsteroidCount(count int) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.asteroids = count
	}
}

// DefaultPollGrace is how long an HTTP access keeps a game alive.
const DefaultPollGrace = 2 * time.Minute

// WithPollGrace sets how long after its last HTTP access a game is kept
// once no websocket session is left.
func WithPollGrace(grace time.Duration) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.pollGrace = grace
	}
}

func WithRand(rng *rand.Rand) GameManagerOption {
	return func(bgm *BattleshipGameManager) {
		bgm.rng = rng
	}
}

func NewBattleshipGameManager(optFuncs ...GameManagerOption) *BattleshipGameManager {
	bgm := &BattleshipGameManager{
		store:       NewMemoryStore(),
		asteroids:   DefaultAsteroids,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		locks:       make(map[string]*sync.Mutex, 10),
		polledAt:    make(map[string]time.Time, 10),
		pollGrace:   DefaultPollGrace,
		EndGameChan: make(chan string),
	}
	for _, optFunc := range optFuncs {
		optFunc(bgm)
	}
	return bgm
}

func (bgm *BattleshipGameManager) lockFor(gameId string) *sync.Mutex {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	l, prs := bgm.locks[gameId]
	if !prs {
		l = &sync.Mutex{}
		bgm.locks[gameId] = l
	}
	return l
}

// MatchFor rebuilds the rule set and opponent logic of a stored game.
func (bgm *BattleshipGameManager) MatchFor(state *GameState) Match {
	var ai Opponent
	if bgm.ai != nil {
		ai = bgm.ai
	}
	return NewMatch(state.GameMode, state.OpponentType, ai)
}

func (bgm *BattleshipGameManager) CreateGame(ctx context.Context, settings GameSettings) (*GameState, *Player, error) {
	if settings.Asteroids <= 0 {
		settings.Asteroids = bgm.asteroids
	}

	bgm.rngMu.Lock()
	state, host, err := CreateGame(settings, bgm.rng)
	bgm.rngMu.Unlock()
	if err != nil {
		return nil, nil, err
	}

	saved, err := bgm.store.Put(ctx, state)
	if err != nil {
		return nil, nil, err
	}
	logging.Info("game created", logging.Fields{
		"gameId":   saved.GameId,
		"mode":     saved.GameMode,
		"map":      saved.MapType,
		"opponent": saved.OpponentType,
	})
	return saved, host, nil
}

func (bgm *BattleshipGameManager) JoinGame(ctx context.Context, gameId, playerName string) (*GameState, *Player, error) {
	var joined *Player
	saved, err := bgm.Mutate(ctx, gameId, func(state *GameState, _ Match) (*GameState, error) {
		next, player, err := JoinGame(state, playerName)
		joined = player
		return next, err
	})
	if err != nil {
		return nil, nil, err
	}
	return saved, joined, nil
}

func (bgm *BattleshipGameManager) GetGame(ctx context.Context, gameId string) (*GameState, error) {
	return bgm.store.Get(ctx, gameId)
}

// Mutate runs fn on the latest snapshot of the game while holding the
// game's lock, then stores what fn returned. A rejected move stores
// nothing.
func (bgm *BattleshipGameManager) Mutate(ctx context.Context, gameId string, fn func(state *GameState, match Match) (*GameState, error)) (*GameState, error) {
	l := bgm.lockFor(gameId)
	l.Lock()
	defer l.Unlock()

	state, err := bgm.store.Get(ctx, gameId)
	if err != nil {
		return nil, err
	}

	next, err := fn(state, bgm.MatchFor(state))
	if err != nil {
		return state, err
	}
	if next == state {
		return state, nil
	}
	return bgm.store.Put(ctx, next)
}

// Authorize checks the session token a player presented. Hot seat
// players share one token.
func Authorize(state *GameState, playerId, sessionToken string) error {
	p := state.Player(playerId)
	if p == nil {
		return cerr.ErrPlayerNotExist(playerId)
	}
	if p.IsAI || p.SessionToken == "" || p.SessionToken != sessionToken {
		return cerr.ErrUnauthorizedPlayer(playerId)
	}
	return nil
}

func (bgm *BattleshipGameManager) ApplyMove(ctx context.Context, gameId, playerId, sessionToken string, move Move) (*GameState, error) {
	saved, err := bgm.Mutate(ctx, gameId, func(state *GameState, match Match) (*GameState, error) {
		if err := Authorize(state, playerId, sessionToken); err != nil {
			return state, err
		}
		return match.Apply(state, playerId, move)
	})
	if err != nil {
		return saved, err
	}

	if saved.Phase == PhaseGameOver {
		logging.Info("game over", logging.Fields{"gameId": gameId, "winner": saved.Winner, "turn": saved.Turn})
	}
	return saved, nil
}

// IsAITurn reports whether the computer has to move next.
func IsAITurn(state *GameState) bool {
	if state.Phase != PhasePlaying {
		return false
	}
	p := state.CurrentPlayer()
	return p != nil && p.IsAI
}

// PlayAITurn plays the computer's whole turn. Every intermediate snapshot
// is stored before it is handed to onAction.
func (bgm *BattleshipGameManager) PlayAITurn(ctx context.Context, gameId string, onAction func(*GameState)) (*GameState, error) {
	if bgm.ai == nil {
		return nil, errors.New("no ai controller configured")
	}

	l := bgm.lockFor(gameId)
	l.Lock()
	defer l.Unlock()

	state, err := bgm.store.Get(ctx, gameId)
	if err != nil {
		return nil, err
	}
	if !IsAITurn(state) {
		return state, nil
	}

	version := state.Version
	var saveErr error
	final, err := bgm.ai.ExecuteTurn(ctx, bgm.MatchFor(state).Rules, state, func(snapshot *GameState) {
		if saveErr != nil {
			return
		}
		toSave := *snapshot
		toSave.Version = version
		saved, err := bgm.store.Put(ctx, &toSave)
		if err != nil {
			saveErr = err
			return
		}
		version = saved.Version
		if onAction != nil {
			onAction(saved)
		}
	})
	if err != nil {
		return nil, err
	}
	if saveErr != nil {
		return nil, saveErr
	}

	final.Version = version
	return final, nil
}

// TerminateGame removes the game and its lock.
func (bgm *BattleshipGameManager) TerminateGame(ctx context.Context, gameId string) {
	if err := bgm.store.Delete(ctx, gameId); err != nil {
		logging.Error("failed to delete game", err, logging.Fields{"gameId": gameId})
	}
	bgm.mu.Lock()
	delete(bgm.locks, gameId)
	delete(bgm.polledAt, gameId)
	bgm.mu.Unlock()
}

// NotePoll records an HTTP access to the game.
func (bgm *BattleshipGameManager) NotePoll(gameId string) {
	bgm.mu.Lock()
	bgm.polledAt[gameId] = time.Now()
	bgm.mu.Unlock()
}

// pollWait is how much longer the game has to be kept for its HTTP
// clients. Zero means it can go.
func (bgm *BattleshipGameManager) pollWait(gameId string, now time.Time) time.Duration {
	bgm.mu.Lock()
	defer bgm.mu.Unlock()

	last, prs := bgm.polledAt[gameId]
	if !prs {
		return 0
	}
	if wait := last.Add(bgm.pollGrace).Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// QueueTermination hands the game over to ManageGameTermination without
// blocking the caller.
func (bgm *BattleshipGameManager) QueueTermination(gameId string) {
	go func() {
		bgm.EndGameChan <- gameId
	}()
}

// ManageGameTermination deletes every game whose id arrives on
// EndGameChan. It blocks, run it in its own goroutine.
func (bgm *BattleshipGameManager) ManageGameTermination(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case gameId := <-bgm.EndGameChan:
			if wait := bgm.pollWait(gameId, time.Now()); wait > 0 {
				logging.Info("game still polled, termination postponed", logging.Fields{"gameId": gameId, "wait": wait.String()})
				time.AfterFunc(wait, func() { bgm.QueueTermination(gameId) })
				continue
			}
			bgm.TerminateGame(ctx, gameId)
			logging.Info("game terminated", logging.Fields{"gameId": gameId})
		}
	}
}

// AdvanceIdleTurns ends the turn of every human who has not moved for
// longer than idle. It returns the snapshots it advanced.
func (bgm *BattleshipGameManager) AdvanceIdleTurns(ctx context.Context, now time.Time, idle time.Duration) ([]*GameState, error) {
	ids, err := bgm.store.GameIds(ctx)
	if err != nil {
		return nil, err
	}

	advanced := make([]*GameState, 0)
	for _, gameId := range ids {
		moved := false
		saved, err := bgm.Mutate(ctx, gameId, func(state *GameState, match Match) (*GameState, error) {
			if state.Phase != PhasePlaying || IsAITurn(state) {
				return state, nil
			}
			if now.Sub(time.UnixMilli(state.LastUpdated)) < idle {
				return state, nil
			}
			moved = true
			return match.Rules.AdvanceTurn(state)
		})
		if err != nil {
			if errors.Is(err, cerr.ErrNotFound) {
				continue
			}
			logging.Error("idle turn advance failed", err, logging.Fields{"gameId": gameId})
			continue
		}

		if moved {
			advanced = append(advanced, saved)
		}
	}
	return advanced, nil
}

// ManageIdleTurns sweeps for idle turns every interval until ctx is done.
// A zero idle timeout disables the sweep.
func (bgm *BattleshipGameManager) ManageIdleTurns(ctx context.Context, every, idle time.Duration, notify func(*GameState)) {
	if idle <= 0 || every <= 0 {
		return
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			advanced, err := bgm.AdvanceIdleTurns(ctx, now, idle)
			if err != nil {
				logging.Error("idle sweep failed", err, nil)
				continue
			}
			for _, state := range advanced {
				logging.Info("turn advanced for idle player", logging.Fields{"gameId": state.GameId, "turn": state.Turn})
				if notify != nil {
					notify(state)
				}
			}
		}
	}
}
