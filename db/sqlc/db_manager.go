package sqlc

import "time"

const (
	QuerierCtxTimeout = time.Second * 10
)

// DbManager groups everything the server keeps in postgres: the
// analytics counters and the game snapshots.
type DbManager struct {
	Queries   Querier
	Analytics *AnalyticsManager
	Snapshots *SnapshotStore
}

func NewDbManager(db DBTX) DbManager {
	queries := New(db)
	return DbManager{
		Queries:   queries,
		Analytics: NewAnalyticsManager(queries),
		Snapshots: NewSnapshotStore(queries),
	}
}
