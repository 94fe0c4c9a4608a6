package sqlc

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/sqlc-dev/pqtype"

	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

// SnapshotStore keeps every game as one jsonb document. Writes are
// guarded by the version column.
type SnapshotStore struct {
	queries Querier
}

var _ mb.GameStore = (*SnapshotStore)(nil)

func NewSnapshotStore(queries Querier) *SnapshotStore {
	return &SnapshotStore{queries: queries}
}

func (ss *SnapshotStore) Get(ctx context.Context, gameId string) (*mb.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	row, err := ss.queries.GetGameSnapshot(ctx, gameId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, cerr.ErrGameNotExists(gameId)
		}
		return nil, err
	}
	if !row.State.Valid {
		return nil, cerr.ErrGameNotExists(gameId)
	}

	var state mb.GameState
	if err := json.Unmarshal(row.State.RawMessage, &state); err != nil {
		return nil, err
	}
	state.Version = row.Version
	return &state, nil
}

func (ss *SnapshotStore) Put(ctx context.Context, state *mb.GameState) (*mb.GameState, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	saved := *state
	saved.Version = state.Version + 1
	b, err := json.Marshal(&saved)
	if err != nil {
		return nil, err
	}

	rows, err := ss.queries.UpsertGameSnapshot(ctx, UpsertGameSnapshotParams{
		GameID:      state.GameId,
		Version:     saved.Version,
		State:       pqtype.NullRawMessage{RawMessage: b, Valid: true},
		PrevVersion: state.Version,
	})
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		stored, err := ss.queries.GetGameSnapshot(ctx, state.GameId)
		if err != nil {
			return nil, err
		}
		return nil, cerr.ErrStaleGameVersion(state.GameId, stored.Version, state.Version)
	}

	var out mb.GameState
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (ss *SnapshotStore) Delete(ctx context.Context, gameId string) error {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()
	return ss.queries.DeleteGameSnapshot(ctx, gameId)
}

func (ss *SnapshotStore) GameIds(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, QuerierCtxTimeout)
	defer cancel()

	ids, err := ss.queries.ListGameIds(ctx)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
