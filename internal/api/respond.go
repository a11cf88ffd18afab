package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwislek/termino/internal/availability"
	"github.com/mwislek/termino/internal/storage"
)

type errorBody struct {
	Message string `json:"message"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("encode response")
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Message: msg})
}

// writeEngineError maps the engine's error taxonomy onto HTTP statuses:
// malformed input is the caller's fault, an unsupported frequency is a
// feature gap, and an integrity violation means the stored rows disagree
// with the roster.
func (h *Handlers) writeEngineError(w http.ResponseWriter, err error) {
	var formatErr *availability.FormatError
	var unsupported *availability.UnsupportedRuleError
	var integrity *availability.IntegrityError

	switch {
	case errors.As(err, &formatErr):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &unsupported):
		h.writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &integrity):
		h.logger.Error().Err(err).Msg("data integrity violation")
		h.writeError(w, http.StatusInternalServerError, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		h.writeError(w, http.StatusNotFound, "not found")
	default:
		h.logger.Error().Err(err).Msg("request failed")
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handlers) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.HTTP.MaxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		h.writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}
