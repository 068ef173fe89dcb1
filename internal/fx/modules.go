package fx

import (
	"github.com/rs/zerolog"
	"go.uber.org/fx"
	"splinter-planner/internal/api"
	"splinter-planner/internal/config"
	"splinter-planner/internal/database"
	"splinter-planner/internal/logger"
	"splinter-planner/internal/poller"
	"splinter-planner/internal/repository"
	"splinter-planner/internal/server"
	"splinter-planner/internal/service"
)

func provideResultsService(repo *repository.BattleRepository, client *api.SplinterlandsClient, log zerolog.Logger) *service.ResultsService {
	return service.NewResultsService(repo, client, log)
}

func providePlayerService(client *api.SplinterlandsClient, log zerolog.Logger) *service.PlayerService {
	return service.NewPlayerService(client, client, log)
}

func provideMarketService(game *api.SplinterlandsClient, rates *api.CoingeckoClient, log zerolog.Logger) *service.MarketService {
	return service.NewMarketService(game, rates, log)
}

func provideBattlePoller(client *api.SplinterlandsClient, repo *repository.BattleRepository, cfg *config.Config, log zerolog.Logger) *poller.BattlePoller {
	return poller.NewBattlePoller(client, repo, cfg.PollInterval, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewBattleRepository),
	// api clients
	fx.Provide(api.NewSplinterlandsClient),
	fx.Provide(api.NewCoingeckoClient),
	// svc
	fx.Provide(provideResultsService),
	fx.Provide(providePlayerService),
	fx.Provide(provideMarketService),
	fx.Provide(service.NewPlannerService),
	fx.Provide(service.NewDecksService),
	// ingestion
	fx.Provide(provideBattlePoller),
	// server
	fx.Provide(server.NewPlannerServer),
)
