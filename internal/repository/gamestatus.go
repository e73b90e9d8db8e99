package repository

import (
	"fmt"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/filestore"
	"github.com/rs/zerolog"
)

const gameStatusDocument = "gamestatus.json"

// GameStatusRepository holds the singleton status record for the next game.
// The document always exists once the repository has been constructed.
type GameStatusRepository struct {
	store  *filestore.Store
	logger zerolog.Logger
}

func NewGameStatusRepository(store *filestore.Store, logger zerolog.Logger) (*GameStatusRepository, error) {
	if err := store.Ensure(gameStatusDocument, domain.DefaultGameStatus()); err != nil {
		return nil, fmt.Errorf("failed to initialize game status document: %w", err)
	}
	return &GameStatusRepository{store: store, logger: logger}, nil
}

func (r *GameStatusRepository) Get() (domain.GameStatus, error) {
	var status domain.GameStatus
	if err := r.store.Read(gameStatusDocument, &status); err != nil {
		r.logger.Error().Err(err).Msg("failed to read game status")
		return domain.GameStatus{}, err
	}
	return status, nil
}

// Replace overwrites the stored status with the incoming one wholesale.
func (r *GameStatusRepository) Replace(status domain.GameStatus) error {
	if err := r.store.Write(gameStatusDocument, status); err != nil {
		r.logger.Error().Err(err).Msg("failed to write game status")
		return err
	}
	r.logger.Info().
		Bool("bbq_on", status.BBQOn).
		Bool("teams_locked", status.TeamsLocked).
		Msg("game status saved")
	return nil
}
