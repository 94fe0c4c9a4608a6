package main

import (
	"context"
	"log"
	"net/http"

	"github.com/saeidalz13/battleship-tactics/api"
	"github.com/saeidalz13/battleship-tactics/db"
	"github.com/saeidalz13/battleship-tactics/db/sqlc"
	"github.com/saeidalz13/battleship-tactics/internal/config"
	"github.com/saeidalz13/battleship-tactics/models/ai"
	mb "github.com/saeidalz13/battleship-tactics/models/battleship"
	mc "github.com/saeidalz13/battleship-tactics/models/connection"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	strategist := ai.NewStrategist(ai.WithActionDelay(cfg.AIActionDelay))
	gmOpts := []mb.GameManagerOption{
		mb.WithAI(ai.NewAIOpponent(strategist)),
		mb.WithAsteroidCount(cfg.AsteroidCount),
	}
	serverOpts := []api.Option{api.WithPort(cfg.Port), api.WithStage(cfg.Stage)}

	// Without a database the games live in memory
	if cfg.DatabaseURL != "" {
		conn := db.MustConnectToDb(cfg.DatabaseURL, cfg.MigrationDir)
		defer conn.Close()

		dbManager := sqlc.NewDbManager(conn)
		gmOpts = append(gmOpts, mb.WithStore(dbManager.Snapshots))
		serverOpts = append(serverOpts, api.WithQuerier(dbManager.Queries))
	}

	server := api.NewServer(mc.NewBattleshipSessionManager(), mb.NewBattleshipGameManager(gmOpts...), serverOpts...)

	ctx := context.Background()
	go server.GameManager.ManageGameTermination(ctx)
	go server.GameManager.ManageIdleTurns(ctx, cfg.IdleSweepEvery, cfg.TurnIdleTimeout, server.NotifyState)
	go server.SessionManager.CleanupPeriodically(ctx)

	log.Printf("Listening to port %d\n", cfg.Port)
	log.Fatalln(http.ListenAndServe(server.Addr(), server.Router()))
}
