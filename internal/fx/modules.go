package fx

import (
	"github.com/Aricg/PuckDraft/internal/config"
	"github.com/Aricg/PuckDraft/internal/filestore"
	"github.com/Aricg/PuckDraft/internal/logger"
	"github.com/Aricg/PuckDraft/internal/repository"
	"github.com/Aricg/PuckDraft/internal/server"
	"github.com/Aricg/PuckDraft/internal/telemetry"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideFileStore(cfg *config.Config, log zerolog.Logger) (*filestore.Store, error) {
	return filestore.New(cfg.DataDir, log)
}

func ProvideImageIndex(cfg *config.Config, log zerolog.Logger) *repository.ImageIndexRepository {
	return repository.NewImageIndexRepository(cfg.UploadDir, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(ProvideFileStore),
	// repos
	fx.Provide(repository.NewPlayersRepository),
	fx.Provide(repository.NewGameStatusRepository),
	fx.Provide(repository.NewTeamFileRepository),
	fx.Provide(ProvideImageIndex),
	fx.Provide(repository.NewHitCounterRepository),
	// telemetry
	fx.Provide(telemetry.NewClient),
	// server
	fx.Provide(server.New),
)
