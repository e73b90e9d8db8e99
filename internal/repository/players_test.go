package repository

import (
	"testing"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/filestore"
	"github.com/rs/zerolog"
)

func newStore(t *testing.T) *filestore.Store {
	t.Helper()
	store, err := filestore.New(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestPlayersDefaultEmpty(t *testing.T) {
	repo, err := NewPlayersRepository(newStore(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	players, err := repo.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if players == nil || len(players) != 0 {
		t.Fatalf("want empty list, got %v", players)
	}
}

func TestPlayersReplaceAll(t *testing.T) {
	repo, err := NewPlayersRepository(newStore(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	in := []domain.Player{
		{"name": "Gord", "position": "D", "skill": float64(4)},
		{"name": "Wayne"},
	}
	if err := repo.ReplaceAll(in); err != nil {
		t.Fatalf("replace: %v", err)
	}

	out, err := repo.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("want 2 players, got %d", len(out))
	}
	// Attributes the backend knows nothing about must survive.
	if out[0]["position"] != "D" || out[0]["skill"] != float64(4) {
		t.Fatalf("opaque attributes lost: %v", out[0])
	}

	// A later save replaces the whole list.
	if err := repo.ReplaceAll([]domain.Player{{"name": "Mario"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	out, _ = repo.Get()
	if len(out) != 1 || out[0]["name"] != "Mario" {
		t.Fatalf("replace was not wholesale: %v", out)
	}
}

func TestGameStatusDefaults(t *testing.T) {
	repo, err := NewGameStatusRepository(newStore(t), zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	status, err := repo.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if status.CancelledFor != nil || status.BBQOn || status.Message != "" || status.TeamsLocked {
		t.Fatalf("want zero defaults, got %+v", status)
	}

	// Reading twice without a write returns identical content.
	again, err := repo.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again != status {
		t.Fatalf("get not idempotent: %+v vs %+v", status, again)
	}
}

func TestGameStatusReplace(t *testing.T) {
	store := newStore(t)
	repo, err := NewGameStatusRepository(store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	cause := "flooded rink"
	in := domain.GameStatus{
		CancelledFor: &cause,
		BBQOn:        true,
		Message:      "see you next week",
		TeamsLocked:  true,
	}
	if err := repo.Replace(in); err != nil {
		t.Fatalf("replace: %v", err)
	}

	out, err := repo.Get()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.CancelledFor == nil || *out.CancelledFor != cause || !out.BBQOn || !out.TeamsLocked {
		t.Fatalf("round trip mismatch: %+v", out)
	}

	// A repository built over existing data must not reseed defaults.
	repo2, err := NewGameStatusRepository(store, zerolog.Nop())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	out, _ = repo2.Get()
	if out.Message != "see you next week" {
		t.Fatalf("ensure clobbered existing status: %+v", out)
	}
}
