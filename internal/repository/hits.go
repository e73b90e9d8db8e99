package repository

import (
	"errors"
	"sync/atomic"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/filestore"
	"github.com/rs/zerolog"
)

const hitsDocument = "hits.json"

type hitsRecord struct {
	Hits int64 `json:"hits"`
}

// HitCounterRepository counts every inbound request in memory and persists
// the total on a timer plus once more at shutdown. The on-disk value may
// trail the live one by up to the flush interval; within a process lifetime
// the counter never goes backwards.
type HitCounterRepository struct {
	store  *filestore.Store
	logger zerolog.Logger
	count  atomic.Int64
}

func NewHitCounterRepository(store *filestore.Store, logger zerolog.Logger) (*HitCounterRepository, error) {
	r := &HitCounterRepository{store: store, logger: logger}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *HitCounterRepository) load() error {
	var rec hitsRecord
	err := r.store.Read(hitsDocument, &rec)
	if errors.Is(err, domain.ErrNotFound) {
		r.logger.Info().Msg("no hit counter document, starting from zero")
		return nil
	}
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to load hit counter")
		return err
	}
	r.count.Store(rec.Hits)
	r.logger.Info().Int64("hits", rec.Hits).Msg("hit counter loaded")
	return nil
}

func (r *HitCounterRepository) Increment() int64 {
	return r.count.Add(1)
}

func (r *HitCounterRepository) Current() int64 {
	return r.count.Load()
}

// Flush persists the current total. Called from the flush timer and the
// shutdown hook, never from the request path.
func (r *HitCounterRepository) Flush() error {
	hits := r.count.Load()
	if err := r.store.Write(hitsDocument, hitsRecord{Hits: hits}); err != nil {
		r.logger.Error().Err(err).Msg("failed to flush hit counter")
		return err
	}
	r.logger.Debug().Int64("hits", hits).Msg("hit counter flushed")
	return nil
}
