package battleship

import (
	"bytes"
	"context"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
)

// GameStore persists game snapshots. Put is optimistic: the snapshot's
// Version must match the stored one and the saved copy comes back with
// the version bumped.
type GameStore interface {
	Get(ctx context.Context, gameId string) (*GameState, error)
	Put(ctx context.Context, state *GameState) (*GameState, error)
	Delete(ctx context.Context, gameId string) error
	GameIds(ctx context.Context) ([]string, error)
}

// MemoryStore keeps encoded snapshots so that no caller can reach into
// another caller's copy.
type MemoryStore struct {
	snapshots map[string][]byte
	versions  map[string]int64
	mu        sync.RWMutex
}

var _ GameStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		snapshots: make(map[string][]byte, 10),
		versions:  make(map[string]int64, 10),
	}
}

func EncodeSnapshot(state *GameState) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(state); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSnapshot(b []byte) (*GameState, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	dec.SetCustomStructTag("json")

	var state GameState
	if err := dec.Decode(&state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (ms *MemoryStore) Get(ctx context.Context, gameId string) (*GameState, error) {
	ms.mu.RLock()
	b, prs := ms.snapshots[gameId]
	ms.mu.RUnlock()
	if !prs {
		return nil, cerr.ErrGameNotExists(gameId)
	}
	return DecodeSnapshot(b)
}

func (ms *MemoryStore) Put(ctx context.Context, state *GameState) (*GameState, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	if stored, prs := ms.versions[state.GameId]; prs && stored != state.Version {
		return nil, cerr.ErrStaleGameVersion(state.GameId, stored, state.Version)
	}

	saved := *state
	saved.Version = state.Version + 1
	b, err := EncodeSnapshot(&saved)
	if err != nil {
		return nil, err
	}
	ms.snapshots[state.GameId] = b
	ms.versions[state.GameId] = saved.Version

	return DecodeSnapshot(b)
}

func (ms *MemoryStore) Delete(ctx context.Context, gameId string) error {
	ms.mu.Lock()
	delete(ms.snapshots, gameId)
	delete(ms.versions, gameId)
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) GameIds(ctx context.Context) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	ids := make([]string, 0, len(ms.snapshots))
	for id := range ms.snapshots {
		ids = append(ids, id)
	}
	return ids, nil
}
