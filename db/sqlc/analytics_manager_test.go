package sqlc_test

import (
	"context"
	"net"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-tactics/db/sqlc"
)

func TestAnalyticsManager(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	analytics := sqlc.NewDbManager(db).Analytics
	serverIp := pqtype.Inet{
		IPNet: net.IPNet{IP: net.ParseIP("127.0.0.1"), Mask: net.CIDRMask(32, 32)},
		Valid: true,
	}
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics (server_ip, games_created_count)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics (server_ip, games_finished_count)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT games_created_count FROM analytics")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"games_created_count"}).AddRow(int64(7)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT games_finished_count FROM analytics")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"games_finished_count"}).AddRow(int64(5)))

	if err := analytics.IncrementGamesCreatedCount(ctx, serverIp); err != nil {
		t.Fatal(err)
	}
	if err := analytics.IncrementGamesFinishedCount(ctx, serverIp); err != nil {
		t.Fatal(err)
	}

	created, err := analytics.GetGamesCreatedCount(ctx, serverIp)
	if err != nil {
		t.Fatal(err)
	}
	if created != 7 {
		t.Fatalf("expected games created: 7\tgot: %d", created)
	}

	finished, err := analytics.GetGamesFinishedCount(ctx, serverIp)
	if err != nil {
		t.Fatal(err)
	}
	if finished != 5 {
		t.Fatalf("expected games finished: 5\tgot: %d", finished)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %s", err)
	}
}
