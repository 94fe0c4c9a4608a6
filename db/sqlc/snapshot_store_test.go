package sqlc_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/saeidalz13/battleship-tactics/db/sqlc"
	cerr "github.com/saeidalz13/battleship-tactics/internal/error"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
)

var (
	getSnapshotQuery    = regexp.QuoteMeta("SELECT game_id, version, state, updated_at FROM game_snapshots")
	upsertSnapshotQuery = regexp.QuoteMeta("INSERT INTO game_snapshots (game_id, version, state)")
	snapshotColumns     = []string{"game_id", "version", "state", "updated_at"}
)

func newSnapshotStore(t *testing.T) (*sqlc.SnapshotStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		db.Close()
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %s", err)
		}
	})
	return sqlc.NewSnapshotStore(sqlc.New(db)), mock
}

func newStoredState(t *testing.T, version int64) *mb.GameState {
	t.Helper()
	state, _, err := mb.NewGameState("GAME01", mb.GameModeTactical, mb.MapTypeStandard, mb.OpponentOnline, 0, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}
	state.Version = version
	return state
}

func TestSnapshotStoreGet(t *testing.T) {
	store, mock := newSnapshotStore(t)

	b, err := json.Marshal(newStoredState(t, 0))
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectQuery(getSnapshotQuery).
		WithArgs("GAME01").
		WillReturnRows(sqlmock.NewRows(snapshotColumns).AddRow("GAME01", int64(3), b, time.Now()))

	state, err := store.Get(context.Background(), "GAME01")
	if err != nil {
		t.Fatal(err)
	}
	if state.GameId != "GAME01" {
		t.Fatalf("expected game id: GAME01\tgot: %s", state.GameId)
	}
	if state.Version != 3 {
		t.Fatalf("expected version from the row: 3\tgot: %d", state.Version)
	}
}

func TestSnapshotStoreGetMissing(t *testing.T) {
	store, mock := newSnapshotStore(t)
	mock.ExpectQuery(getSnapshotQuery).WithArgs("NOPE01").WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "NOPE01")
	if !errors.Is(err, cerr.ErrNotFound) {
		t.Fatalf("expected not found\tgot: %v", err)
	}
}

func TestSnapshotStorePut(t *testing.T) {
	store, mock := newSnapshotStore(t)
	mock.ExpectExec(upsertSnapshotQuery).
		WithArgs("GAME01", int64(4), sqlmock.AnyArg(), int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	saved, err := store.Put(context.Background(), newStoredState(t, 3))
	if err != nil {
		t.Fatal(err)
	}
	if saved.Version != 4 {
		t.Fatalf("expected version: 4\tgot: %d", saved.Version)
	}
}

func TestSnapshotStorePutStale(t *testing.T) {
	store, mock := newSnapshotStore(t)
	mock.ExpectExec(upsertSnapshotQuery).
		WithArgs("GAME01", int64(2), sqlmock.AnyArg(), int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(getSnapshotQuery).
		WithArgs("GAME01").
		WillReturnRows(sqlmock.NewRows(snapshotColumns).AddRow("GAME01", int64(5), []byte("{}"), time.Now()))

	_, err := store.Put(context.Background(), newStoredState(t, 1))
	if !errors.Is(err, cerr.ErrVersionConflict) {
		t.Fatalf("expected a version conflict\tgot: %v", err)
	}
	if err.Error() != cerr.ErrStaleGameVersion("GAME01", 5, 1).Error() {
		t.Fatalf("expected: %s\tgot: %s", cerr.ErrStaleGameVersion("GAME01", 5, 1), err)
	}
}

func TestSnapshotStoreGameIds(t *testing.T) {
	store, mock := newSnapshotStore(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT game_id FROM game_snapshots")).
		WillReturnRows(sqlmock.NewRows([]string{"game_id"}))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM game_snapshots")).
		WithArgs("GAME01").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ids, err := store.GameIds(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if ids == nil || len(ids) != 0 {
		t.Fatalf("expected an empty list\tgot: %v", ids)
	}
	if err := store.Delete(context.Background(), "GAME01"); err != nil {
		t.Fatal(err)
	}
}
