package api

import (
	"net/http"

	"github.com/mwislek/termino/internal/availability"
	"github.com/mwislek/termino/pkg/ics"
)

// HandleExportICS renders one user's resolved availability for the
// requested month as an iCalendar document.
func (h *Handlers) HandleExportICS(w http.ResponseWriter, r *http.Request) {
	ev, monthStart, ok := h.eventAndMonth(w, r)
	if !ok {
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		h.writeError(w, http.StatusBadRequest, "missing username parameter")
		return
	}

	users, choices, rules, err := h.loadResolutionRows(r, ev.ID, monthStart)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	resp, err := availability.Resolve(ev.Name, monthStart, users, choices, rules)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	resolved, ok := resp.GroupedChoices[username]
	if !ok {
		h.writeError(w, http.StatusNotFound, "unknown user")
		return
	}

	data, err := ics.Build(ev.Name, username, monthStart, resolved, rules)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="availability.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error().Err(err).Msg("write ics response")
	}
}
