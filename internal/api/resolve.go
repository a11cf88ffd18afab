package api

import (
	"net/http"
	"time"

	"github.com/mwislek/termino/internal/availability"
	"github.com/mwislek/termino/internal/storage"
)

// eventAndMonth loads the addressed event and parses the optional date
// query parameter, defaulting to the current month.
func (h *Handlers) eventAndMonth(w http.ResponseWriter, r *http.Request) (*storage.Event, availability.Date, bool) {
	ev, err := h.getEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeEngineError(w, err)
		return nil, availability.Date{}, false
	}

	selector := r.URL.Query().Get("date")
	if selector == "" {
		now := availability.DateOf(time.Now())
		return ev, availability.Date{Year: now.Year, Month: now.Month, Day: 1}, true
	}

	monthStart, err := availability.ParseMonth(selector)
	if err != nil {
		h.writeEngineError(w, err)
		return nil, availability.Date{}, false
	}
	return ev, monthStart, true
}

// HandleResolve is the core read path: it fetches the event's roster, manual
// choices and recurrence rules and hands them to the engine for the
// requested month.
func (h *Handlers) HandleResolve(w http.ResponseWriter, r *http.Request) {
	ev, monthStart, ok := h.eventAndMonth(w, r)
	if !ok {
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
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) loadResolutionRows(r *http.Request, eventID string, monthStart availability.Date) ([]string, []availability.ChoiceRow, []availability.Rule, error) {
	ctx := r.Context()

	userRows, err := h.store.ListUsers(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}
	choiceRows, err := h.store.ListMonthChoices(ctx, eventID, monthStart.Month, monthStart.Year)
	if err != nil {
		return nil, nil, nil, err
	}
	ruleRows, err := h.store.ListRules(ctx, eventID)
	if err != nil {
		return nil, nil, nil, err
	}

	users := make([]string, 0, len(userRows))
	for _, u := range userRows {
		users = append(users, u.Username)
	}
	choices := make([]availability.ChoiceRow, 0, len(choiceRows))
	for _, row := range choiceRows {
		choices = append(choices, availability.ChoiceRow{
			Username: row.Username,
			Day:      row.Day,
			Choice:   availability.Choice(row.Choice),
		})
	}
	rules := make([]availability.Rule, 0, len(ruleRows))
	for _, row := range ruleRows {
		rules = append(rules, availability.Rule{
			ID:        row.ID,
			Choice:    availability.Choice(row.Choice),
			Raw:       row.Rule,
			StartDate: availability.DateOf(row.StartDate),
			Username:  row.Username,
		})
	}
	return users, choices, rules, nil
}
