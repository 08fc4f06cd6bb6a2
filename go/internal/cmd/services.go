package main

import (
	"database/sql"

	"github.com/jonboulle/clockwork"
	"github.com/waxgig/crateplay/go/internal/game/call"
	calldb "github.com/waxgig/crateplay/go/internal/game/call/db"
	"github.com/waxgig/crateplay/go/internal/game/gateway"
	"github.com/waxgig/crateplay/go/internal/game/scoring"
	scoringdb "github.com/waxgig/crateplay/go/internal/game/scoring/db"
	"github.com/waxgig/crateplay/go/internal/game/session"
	sessiondb "github.com/waxgig/crateplay/go/internal/game/session/db"
	"github.com/waxgig/crateplay/go/internal/models"
	"github.com/waxgig/crateplay/go/internal/sessioncode"
)

type Services struct {
	Sessions  *session.App
	Sequencer *call.App
	Scoring   *scoring.App
	Snapshots *gateway.Provider
}

func setupServices(database *sql.DB, config *Config) *Services {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Gateway
	clock := clockwork.NewRealClock()

	sessionQueries := sessiondb.New(database)
	sessionRepo := session.NewRepository(sessionQueries)

	callQueries := calldb.New(database)
	callRepo := call.NewRepository(callQueries)

	scoringQueries := scoringdb.New(database)
	scoringRepo := scoring.NewRepository(scoringQueries, database)

	defaultPacing := models.PacingSettings{
		ResleeveSec: config.Engine.DefaultPacing.ResleeveSec,
		LocateSec:   config.Engine.DefaultPacing.LocateSec,
		CueSec:      config.Engine.DefaultPacing.CueSec,
		BufferSec:   config.Engine.DefaultPacing.BufferSec,
	}
	sessionApp := session.NewApp(sessionRepo, callRepo, sessioncode.NewGenerator(), clock, defaultPacing)
	sequencerApp := call.NewApp(callRepo, sessionRepo, scoringRepo, clock)
	scoringApp := scoring.NewApp(scoringRepo, sessionRepo, callRepo)
	snapshots := gateway.NewProvider(sessionRepo, callRepo, scoringRepo, clock)

	return &Services{
		Sessions:  sessionApp,
		Sequencer: sequencerApp,
		Scoring:   scoringApp,
		Snapshots: snapshots,
	}
}
