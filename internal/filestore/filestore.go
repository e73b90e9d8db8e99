package filestore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/rs/zerolog"
)

// Store reads and writes named JSON documents under a single data directory.
// Writes replace the whole document; there is no partial update and no
// cross-process locking, so the last writer wins. Within the process, Update
// serializes read-modify-write cycles per document so two concurrent vote
// submissions cannot drop an increment. Documents in different files never
// block each other.
type Store struct {
	root   string
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(root string, logger zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	logger.Info().Str("root", root).Msg("file store ready")
	return &Store{
		root:   root,
		logger: logger,
		locks:  map[string]*sync.Mutex{},
	}, nil
}

// Root returns the data directory path.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *Store) lockFor(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

// Ensure writes def to name only if the document does not exist yet.
// Calling it again is a no-op, so startup can seed defaults unconditionally.
func (s *Store) Ensure(name string, def any) error {
	path := s.path(name)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	s.logger.Info().Str("document", name).Msg("seeding document with defaults")
	return s.Write(name, def)
}

// Read unmarshals the document into out. Returns domain.ErrNotFound when the
// file does not exist; callers decide whether that is an error or a default.
func (s *Store) Read(name string, out any) error {
	data, err := os.ReadFile(s.path(name))
	if os.IsNotExist(err) {
		return fmt.Errorf("document %s: %w", name, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Write replaces the full document content.
func (s *Store) Write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	path := s.path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create parent directory for %s: %w", name, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	s.logger.Debug().Str("document", name).Int("bytes", len(data)).Msg("document written")
	return nil
}

// Update runs fn while holding the per-document lock, serializing
// read-modify-write cycles against the same document within this process.
func (s *Store) Update(name string, fn func() error) error {
	l := s.lockFor(name)
	l.Lock()
	defer l.Unlock()
	return fn()
}

// List returns the base names of documents in the data directory matching
// the glob pattern, sorted by filepath.Glob's lexical order.
func (s *Store) List(pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(s.root, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", pattern, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names, nil
}
