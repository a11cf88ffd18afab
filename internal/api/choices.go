package api

import (
	"fmt"
	"net/http"

	"github.com/mwislek/termino/internal/availability"
	"github.com/mwislek/termino/internal/storage"
)

type choiceEntry struct {
	Day    int    `json:"day"`
	Choice string `json:"choice"`
}

type putChoicesRequest struct {
	Username string        `json:"username"`
	Date     string        `json:"date"`
	Choices  []choiceEntry `json:"choices"`
}

// HandlePutChoices replaces a user's manual day choices for one month. The
// month row is created on demand.
func (h *Handlers) HandlePutChoices(w http.ResponseWriter, r *http.Request) {
	ev, err := h.getEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	var req putChoicesRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	monthStart, err := availability.ParseMonth(req.Date)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	entries := make([]storage.ChoiceEntry, 0, len(req.Choices))
	maxDay := monthStart.DaysInMonth()
	for _, c := range req.Choices {
		if c.Day < 1 || c.Day > maxDay {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("day %d outside month %s", c.Day, req.Date))
			return
		}
		if !availability.ValidChoice(availability.Choice(c.Choice)) {
			h.writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown choice %q", c.Choice))
			return
		}
		entries = append(entries, storage.ChoiceEntry{Day: c.Day, Choice: c.Choice})
	}

	user, err := h.store.GetUserByName(r.Context(), ev.ID, req.Username)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	month, err := h.store.EnsureMonth(r.Context(), ev.ID, monthStart.Month, monthStart.Year)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if err := h.store.ReplaceChoices(r.Context(), month.ID, user.ID, entries); err != nil {
		h.writeEngineError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
