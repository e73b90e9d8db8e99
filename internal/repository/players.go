package repository

import (
	"fmt"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/filestore"
	"github.com/rs/zerolog"
)

const playersDocument = "players.json"

// PlayersRepository stores the full roster of registered skaters as one
// document. Saves replace the whole list; there is no per-player update.
type PlayersRepository struct {
	store  *filestore.Store
	logger zerolog.Logger
}

func NewPlayersRepository(store *filestore.Store, logger zerolog.Logger) (*PlayersRepository, error) {
	if err := store.Ensure(playersDocument, []domain.Player{}); err != nil {
		return nil, fmt.Errorf("failed to initialize players document: %w", err)
	}
	return &PlayersRepository{store: store, logger: logger}, nil
}

func (r *PlayersRepository) Get() ([]domain.Player, error) {
	var players []domain.Player
	if err := r.store.Read(playersDocument, &players); err != nil {
		r.logger.Error().Err(err).Msg("failed to read players")
		return nil, err
	}
	if players == nil {
		players = []domain.Player{}
	}
	return players, nil
}

func (r *PlayersRepository) ReplaceAll(players []domain.Player) error {
	if players == nil {
		players = []domain.Player{}
	}
	if err := r.store.Write(playersDocument, players); err != nil {
		r.logger.Error().Err(err).Msg("failed to write players")
		return err
	}
	r.logger.Info().Int("count", len(players)).Msg("players saved")
	return nil
}
