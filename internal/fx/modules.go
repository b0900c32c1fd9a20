package fx

import (
	"database/sql"

	"league-tracker/internal/config"
	"league-tracker/internal/database"
	"league-tracker/internal/db"
	"league-tracker/internal/logger"
	"league-tracker/internal/metrics"
	"league-tracker/internal/repository"
	"league-tracker/internal/riot"
	"league-tracker/internal/server"
	"league-tracker/internal/service"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

// The service and server constructors take narrow interfaces so tests
// can swap in fakes; these providers bind the concrete implementations.

func ProvideSyncService(
	cfg *config.Config,
	client *riot.Client,
	players *repository.PlayerRepository,
	history *repository.HistoryRepository,
	matches *repository.MatchRepository,
	milestones *repository.MilestoneRepository,
	m *metrics.Metrics,
	log zerolog.Logger,
) *service.SyncService {
	return service.NewSyncService(cfg, client, players, history, matches, milestones, m, log)
}

func ProvideSnapshotService(
	cfg *config.Config,
	players *repository.PlayerRepository,
	history *repository.HistoryRepository,
	matches *repository.MatchRepository,
	milestones *repository.MilestoneRepository,
	log zerolog.Logger,
) *service.SnapshotService {
	return service.NewSnapshotService(cfg, players, history, matches, milestones, log)
}

func ProvideServer(
	syncSvc *service.SyncService,
	snapshotSvc *service.SnapshotService,
	sqlDB *sql.DB,
	m *metrics.Metrics,
	log zerolog.Logger,
) *server.Server {
	return server.New(syncSvc, snapshotSvc, sqlDB, m, log)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	metrics.Module,
	riot.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewHistoryRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewMilestoneRepository),
	// svc
	fx.Provide(ProvideSyncService),
	fx.Provide(ProvideSnapshotService),
	// server
	fx.Provide(ProvideServer),
)
