package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/engine"
)

func (s *Server) handleGetPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.Get()
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, players)
}

func (s *Server) handlePostPlayers(w http.ResponseWriter, r *http.Request) {
	var players []domain.Player
	if err := json.NewDecoder(r.Body).Decode(&players); err != nil {
		writeError(w, s.logger, fmt.Errorf("malformed players body: %w", domain.ErrValidation))
		return
	}
	if err := s.players.ReplaceAll(players); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Players saved successfully")
}

func (s *Server) handleGetGameStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.status.Get()
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handlePostGameStatus(w http.ResponseWriter, r *http.Request) {
	var status domain.GameStatus
	if err := json.NewDecoder(r.Body).Decode(&status); err != nil {
		writeError(w, s.logger, fmt.Errorf("malformed game status body: %w", domain.ErrValidation))
		return
	}
	if err := s.status.Replace(status); err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "Game status saved successfully")
}

func (s *Server) handlePreviousGames(w http.ResponseWriter, r *http.Request) {
	names, err := s.teams.ListArchive()
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) handleGetTeams(w http.ResponseWriter, r *http.Request) {
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeError(w, s.logger, fmt.Errorf("filename query parameter is required: %w", domain.ErrValidation))
		return
	}
	tf, err := s.teams.Get(filename)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, tf)
}

type teamsRequest struct {
	Filename string              `json:"filename"`
	Teams    *domain.Rosters     `json:"teams"`
	Score    *domain.ScoreUpdate `json:"score"`
	Vote     string              `json:"vote"`
}

type voteResponse struct {
	VotesLight int `json:"votesLight"`
	VotesDark  int `json:"votesDark"`
}

// handlePostTeams multiplexes the three team-file mutations: a full roster
// create/replace, a partial score update, or a single vote increment.
func (s *Server) handlePostTeams(w http.ResponseWriter, r *http.Request) {
	var req teamsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, s.logger, fmt.Errorf("malformed teams body: %w", domain.ErrValidation))
		return
	}
	if req.Filename == "" {
		writeError(w, s.logger, fmt.Errorf("filename is required: %w", domain.ErrValidation))
		return
	}

	switch {
	case req.Teams != nil:
		if err := s.teams.Create(req.Filename, *req.Teams); err != nil {
			writeError(w, s.logger, err)
			return
		}
		writeMessage(w, http.StatusOK, "Teams saved successfully")

	case req.Score != nil:
		if err := s.teams.ApplyScore(req.Filename, *req.Score); err != nil {
			writeError(w, s.logger, err)
			return
		}
		writeMessage(w, http.StatusOK, "Score saved successfully")

	case req.Vote != "":
		light, dark, err := s.teams.ApplyVote(req.Filename, domain.VoteSide(req.Vote))
		if err != nil {
			writeError(w, s.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, voteResponse{VotesLight: light, VotesDark: dark})

	default:
		writeError(w, s.logger, fmt.Errorf("one of teams, score or vote is required: %w", domain.ErrValidation))
	}
}

// handlePickOrder exposes the draft ordering so devices without the bundled
// frontend can follow along. The same computation runs client-side; both
// must agree, which is why the engine is pure.
func (s *Server) handlePickOrder(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	numPicks, err := strconv.Atoi(q.Get("numPicks"))
	if err != nil {
		writeError(w, s.logger, fmt.Errorf("numPicks must be an integer: %w", domain.ErrValidation))
		return
	}

	first := engine.Team(q.Get("firstPicker"))
	if first != engine.TeamLight && first != engine.TeamDark {
		writeError(w, s.logger, fmt.Errorf("firstPicker must be Light or Dark: %w", domain.ErrValidation))
		return
	}

	mode := engine.Mode(q.Get("mode"))
	order, err := engine.PickOrder(numPicks, first, mode)
	if err != nil {
		writeError(w, s.logger, fmt.Errorf("%s: %w", err, domain.ErrValidation))
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleCamImages(w http.ResponseWriter, r *http.Request) {
	index, err := s.images.List(r.Context())
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, index)
}
