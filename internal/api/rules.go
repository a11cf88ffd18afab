package api

import (
	"net/http"
	"time"

	"github.com/mwislek/termino/internal/availability"
	"github.com/mwislek/termino/internal/storage"
)

type createRuleRequest struct {
	Username  string `json:"username"`
	Rule      string `json:"rule"`
	Choice    string `json:"choice"`
	StartDate string `json:"startDate"` // YYYY-MM-DD
}

type ruleResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Rule      string `json:"rule"`
	Choice    string `json:"choice"`
	StartDate string `json:"startDate"`
}

// HandleCreateRule stores a recurrence rule after pushing it through the
// engine parser, so unparseable or unsupported rules never reach the
// database.
func (h *Handlers) HandleCreateRule(w http.ResponseWriter, r *http.Request) {
	ev, err := h.getEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	var req createRuleRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	parsed, err := availability.ParseRule(req.Rule)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if parsed.Freq != availability.FreqWeekly {
		h.writeEngineError(w, &availability.UnsupportedRuleError{Freq: string(parsed.Freq)})
		return
	}
	if !availability.ValidChoice(availability.Choice(req.Choice)) {
		h.writeError(w, http.StatusBadRequest, "unknown choice")
		return
	}
	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
		return
	}

	created, err := h.store.CreateRule(r.Context(), &storage.AvailabilityRule{
		EventID:   ev.ID,
		Username:  req.Username,
		Choice:    req.Choice,
		Rule:      req.Rule,
		StartDate: startDate.UTC(),
	})
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, ruleResponse{
		ID:        created.ID,
		Username:  created.Username,
		Rule:      created.Rule,
		Choice:    created.Choice,
		StartDate: created.StartDate.Format("2006-01-02"),
	})
}
