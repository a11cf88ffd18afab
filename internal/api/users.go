package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mwislek/termino/internal/storage"
)

type addUserRequest struct {
	Username string `json:"username"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (h *Handlers) HandleAddUser(w http.ResponseWriter, r *http.Request) {
	ev, err := h.getEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	var req addUserRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || len(username) > 64 {
		h.writeError(w, http.StatusBadRequest, "username must be 1-64 characters")
		return
	}

	if _, err := h.store.GetUserByName(r.Context(), ev.ID, username); err == nil {
		h.writeError(w, http.StatusConflict, "username already taken")
		return
	} else if !errors.Is(err, storage.ErrNotFound) {
		h.writeEngineError(w, err)
		return
	}

	u, err := h.store.AddUser(r.Context(), ev.ID, username)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Username: u.Username})
}
