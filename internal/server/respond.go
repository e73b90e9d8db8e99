package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Aricg/PuckDraft/internal/domain"
	"github.com/rs/zerolog"
)

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, messageResponse{Message: message})
}

// writeError maps the error taxonomy onto HTTP statuses. Anything outside
// the taxonomy is a storage or programming fault: logged server-side,
// answered with a generic 500 so internal paths never reach the client.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrValidation):
		writeMessage(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, domain.ErrUnconfigured):
		writeMessage(w, http.StatusInternalServerError, "server misconfiguration")
	default:
		logger.Error().Err(err).Msg("request failed")
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
