package router

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mwislek/termino/internal/api"
	"github.com/mwislek/termino/internal/config"
)

// New wires the API routes under the configured base path.
func New(cfg *config.Config, h *api.Handlers, logger zerolog.Logger) http.Handler {
	base := basePath(cfg)
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", handleHealth)

	mux.HandleFunc("POST "+base+"/events", h.HandleCreateEvent)
	mux.HandleFunc("GET "+base+"/events/{id}", h.HandleResolve)
	mux.HandleFunc("DELETE "+base+"/events/{id}", h.HandleDeleteEvent)
	mux.HandleFunc("GET "+base+"/events/{id}/month", h.HandleMonthView)
	mux.HandleFunc("POST "+base+"/events/{id}/users", h.HandleAddUser)
	mux.HandleFunc("PUT "+base+"/events/{id}/choices", h.HandlePutChoices)
	mux.HandleFunc("POST "+base+"/events/{id}/rules", h.HandleCreateRule)
	mux.HandleFunc("GET "+base+"/events/{id}/ics", h.HandleExportICS)

	return withRequestLog(logger, mux)
}

func basePath(cfg *config.Config) string {
	base := cfg.HTTP.BasePath
	if base == "" || base[0] != '/' {
		base = "/api"
	}
	return strings.TrimSuffix(base, "/")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
