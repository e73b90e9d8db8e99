package server

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Aricg/PuckDraft/internal/constants"
	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/Aricg/PuckDraft/internal/repository"
)

// Some headroom over the file limit so the multipart framing and form
// fields do not push a maximum-size image over the request cap.
const maxCamRequestBytes = constants.MaxUploadBytes + 64*1024

// handleCamUpload receives ESP32 camera frames. Every rejection happens
// before anything touches disk: a failed key check or a bad file must leave
// the upload tree exactly as it was.
func (s *Server) handleCamUpload(w http.ResponseWriter, r *http.Request) {
	if s.cfg.APIKey == "" {
		s.logger.Error().Msg("camera upload rejected, API_KEY not configured")
		http.Error(w, "Server Misconfiguration: API_KEY missing", http.StatusInternalServerError)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCamRequestBytes)
	if err := r.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		writeError(w, s.logger, fmt.Errorf("invalid multipart body: %w", domain.ErrValidation))
		return
	}

	key := r.FormValue("api_key")
	if key == "" {
		key = r.Header.Get("x-api-key")
	}
	if key != s.cfg.APIKey {
		s.logger.Warn().Str("remote_addr", r.RemoteAddr).Msg("camera upload with bad API key")
		http.Error(w, "Forbidden: Invalid API Key", http.StatusForbidden)
		return
	}

	file, header, err := r.FormFile("imageFile")
	if err != nil {
		http.Error(w, "No file uploaded.", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Size > constants.MaxUploadBytes {
		writeError(w, s.logger, fmt.Errorf("file exceeds %d bytes: %w", int64(constants.MaxUploadBytes), domain.ErrValidation))
		return
	}
	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		writeError(w, s.logger, fmt.Errorf("only image files are allowed: %w", domain.ErrValidation))
		return
	}

	ext := filepath.Ext(header.Filename)
	if ext == "" {
		ext = ".jpg"
	}

	device := r.FormValue("name")
	if device == "" {
		device = "unknown"
	}

	stored, err := s.images.SaveUpload(device, ext, file)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	s.logger.Info().
		Str("device", repository.SanitizeDevice(device)).
		Str("file", stored).
		Int64("bytes", header.Size).
		Msg("camera image received")
	fmt.Fprint(w, "Upload successful")
}
