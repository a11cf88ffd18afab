package api

import (
	"net/http"
	"strings"

	"github.com/mwislek/termino/internal/availability"
)

type createEventRequest struct {
	Name string `json:"name"`
}

type eventResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func (h *Handlers) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if !h.decodeBody(w, r, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > 80 {
		h.writeError(w, http.StatusBadRequest, "event name must be 1-80 characters")
		return
	}

	ev, err := h.store.CreateEvent(r.Context(), name)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, eventResponse{ID: ev.ID, Name: ev.Name})
}

func (h *Handlers) HandleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteEvent(r.Context(), id); err != nil {
		h.writeEngineError(w, err)
		return
	}
	h.events.Delete(id)
	w.WriteHeader(http.StatusNoContent)
}

type monthViewResponse struct {
	EventName string                             `json:"eventName"`
	Time      string                             `json:"time"`
	Users     map[string]availability.DayChoices `json:"users"`
}

// HandleMonthView returns the manual choices for one month, without any
// rule-derived days.
func (h *Handlers) HandleMonthView(w http.ResponseWriter, r *http.Request) {
	ev, monthStart, ok := h.eventAndMonth(w, r)
	if !ok {
		return
	}

	users, err := h.store.ListUsers(r.Context(), ev.ID)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	rows, err := h.store.ListMonthChoices(r.Context(), ev.ID, monthStart.Month, monthStart.Year)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	usernames := make([]string, 0, len(users))
	for _, u := range users {
		usernames = append(usernames, u.Username)
	}
	choices := make([]availability.ChoiceRow, 0, len(rows))
	for _, row := range rows {
		choices = append(choices, availability.ChoiceRow{
			Username: row.Username,
			Day:      row.Day,
			Choice:   availability.Choice(row.Choice),
		})
	}

	grouped, err := availability.Aggregate(usernames, choices)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, monthViewResponse{
		EventName: ev.Name,
		Time:      availability.FormatMonth(monthStart),
		Users:     grouped,
	})
}
