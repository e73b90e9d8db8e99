package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Aricg/PuckDraft/internal/config"
	"github.com/Aricg/PuckDraft/internal/middleware"
	"github.com/Aricg/PuckDraft/internal/repository"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Server owns the HTTP surface: the JSON API, the camera upload endpoint,
// the uploads file server and the SPA fallback. All persistence goes
// through the repositories; the server itself holds no state beyond them.
type Server struct {
	cfg     *config.Config
	logger  zerolog.Logger
	players *repository.PlayersRepository
	status  *repository.GameStatusRepository
	teams   *repository.TeamFileRepository
	images  *repository.ImageIndexRepository
	hits    *repository.HitCounterRepository
}

func New(
	cfg *config.Config,
	logger zerolog.Logger,
	players *repository.PlayersRepository,
	status *repository.GameStatusRepository,
	teams *repository.TeamFileRepository,
	images *repository.ImageIndexRepository,
	hits *repository.HitCounterRepository,
) *Server {
	return &Server{
		cfg:     cfg,
		logger:  logger,
		players: players,
		status:  status,
		teams:   teams,
		images:  images,
		hits:    hits,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	r.Use(middleware.RequestID(s.logger))
	r.Use(c.Handler)
	r.Use(middleware.HitCount(s.hits))

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeMessage(w, http.StatusNotFound, "not found")
		})
		r.Get("/players", s.handleGetPlayers)
		r.Post("/players", s.handlePostPlayers)
		r.Get("/gamestatus", s.handleGetGameStatus)
		r.Post("/gamestatus", s.handlePostGameStatus)
		r.Get("/previous-games", s.handlePreviousGames)
		r.Get("/teams", s.handleGetTeams)
		r.Post("/teams", s.handlePostTeams)
		r.Get("/pick-order", s.handlePickOrder)
		r.Get("/cam/images", s.handleCamImages)
	})

	r.Post("/cam", s.handleCamUpload)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(s.images.Root()))))

	r.NotFound(s.handleSPAFallback)

	return r
}

// handleSPAFallback serves the built frontend: a real file if the path names
// one, index.html for every other non-API route so client-side routing
// works after a hard refresh.
func (s *Server) handleSPAFallback(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api") {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusNotFound, "not found")
		return
	}

	path := filepath.Join(s.cfg.StaticDir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.cfg.StaticDir, "index.html"))
}
