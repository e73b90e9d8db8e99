package repository

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/filestore"
	"github.com/rs/zerolog"
)

// Archive files are named <unix-millis>.teams.json; anything else in the
// data directory is invisible to the archive listing.
var teamFilePattern = regexp.MustCompile(`^\d+\.teams\.json$`)

// TeamFileRepository manages the per-game archive files. Score and vote
// updates are read-modify-write cycles on the same file, serialized per
// filename by the store so concurrent votes on one game cannot drop an
// increment. Votes on different games stay independent.
type TeamFileRepository struct {
	store  *filestore.Store
	logger zerolog.Logger
}

func NewTeamFileRepository(store *filestore.Store, logger zerolog.Logger) *TeamFileRepository {
	return &TeamFileRepository{store: store, logger: logger}
}

// ValidFilename reports whether name matches the archival naming pattern.
func ValidFilename(name string) bool {
	return teamFilePattern.MatchString(name)
}

func (r *TeamFileRepository) Get(filename string) (domain.TeamFile, error) {
	if !ValidFilename(filename) {
		return domain.TeamFile{}, fmt.Errorf("bad team filename %q: %w", filename, domain.ErrValidation)
	}
	var tf domain.TeamFile
	if err := r.store.Read(filename, &tf); err != nil {
		return domain.TeamFile{}, err
	}
	return tf, nil
}

// Create writes a fresh archive file holding rosters only. Scores and votes
// arrive later through ApplyScore and ApplyVote.
func (r *TeamFileRepository) Create(filename string, teams domain.Rosters) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("bad team filename %q: %w", filename, domain.ErrValidation)
	}
	if err := r.store.Write(filename, domain.TeamFile{Teams: teams}); err != nil {
		r.logger.Error().Err(err).Str("filename", filename).Msg("failed to create team file")
		return err
	}
	r.logger.Info().
		Str("filename", filename).
		Int("light", len(teams.Light)).
		Int("dark", len(teams.Dark)).
		Msg("team file created")
	return nil
}

// ApplyScore overwrites only the sides a value was supplied for, leaving the
// rosters and votes untouched.
func (r *TeamFileRepository) ApplyScore(filename string, update domain.ScoreUpdate) error {
	if !ValidFilename(filename) {
		return fmt.Errorf("bad team filename %q: %w", filename, domain.ErrValidation)
	}
	return r.store.Update(filename, func() error {
		var tf domain.TeamFile
		if err := r.store.Read(filename, &tf); err != nil {
			return err
		}
		if update.Light != nil {
			tf.ScoreLight = update.Light
		}
		if update.Dark != nil {
			tf.ScoreDark = update.Dark
		}
		if err := r.store.Write(filename, tf); err != nil {
			r.logger.Error().Err(err).Str("filename", filename).Msg("failed to write score")
			return err
		}
		r.logger.Info().Str("filename", filename).Msg("score updated")
		return nil
	})
}

// ApplyVote increments one side's fan-vote counter, treating a missing
// counter as zero, and returns both updated counts.
func (r *TeamFileRepository) ApplyVote(filename string, side domain.VoteSide) (light, dark int, err error) {
	if !ValidFilename(filename) {
		return 0, 0, fmt.Errorf("bad team filename %q: %w", filename, domain.ErrValidation)
	}
	err = r.store.Update(filename, func() error {
		var tf domain.TeamFile
		if err := r.store.Read(filename, &tf); err != nil {
			return err
		}
		// Only the incremented side is written back; a counter the file
		// never held stays absent rather than materializing as 0.
		switch side {
		case domain.VoteLight:
			n := 0
			if tf.VotesLight != nil {
				n = *tf.VotesLight
			}
			n++
			tf.VotesLight = &n
		case domain.VoteDark:
			n := 0
			if tf.VotesDark != nil {
				n = *tf.VotesDark
			}
			n++
			tf.VotesDark = &n
		default:
			return fmt.Errorf("bad vote side %q: %w", side, domain.ErrValidation)
		}
		votesLight, votesDark := 0, 0
		if tf.VotesLight != nil {
			votesLight = *tf.VotesLight
		}
		if tf.VotesDark != nil {
			votesDark = *tf.VotesDark
		}
		if err := r.store.Write(filename, tf); err != nil {
			r.logger.Error().Err(err).Str("filename", filename).Msg("failed to write vote")
			return err
		}
		light, dark = votesLight, votesDark
		r.logger.Info().
			Str("filename", filename).
			Str("side", string(side)).
			Int("votes_light", light).
			Int("votes_dark", dark).
			Msg("vote recorded")
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return light, dark, nil
}

// ListArchive returns the archive filenames in ascending lexical order,
// which for the fixed-width millisecond names is oldest first.
func (r *TeamFileRepository) ListArchive() ([]string, error) {
	names, err := r.store.List("*.teams.json")
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list archive")
		return nil, err
	}
	filtered := make([]string, 0, len(names))
	for _, name := range names {
		if ValidFilename(name) {
			filtered = append(filtered, name)
		}
	}
	sort.Strings(filtered)
	return filtered, nil
}
