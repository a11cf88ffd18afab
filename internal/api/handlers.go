// Package api implements the JSON HTTP surface over the availability engine
// and the event store.
package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/mwislek/termino/internal/cache"
	"github.com/mwislek/termino/internal/config"
	"github.com/mwislek/termino/internal/storage"
)

type Handlers struct {
	cfg    *config.Config
	store  storage.Store
	logger zerolog.Logger
	events *cache.Cache[string, *storage.Event]
}

func NewHandlers(cfg *config.Config, store storage.Store, logger zerolog.Logger) *Handlers {
	return &Handlers{
		cfg:    cfg,
		store:  store,
		logger: logger,
		events: cache.New[string, *storage.Event](cfg.EventCacheTTL),
	}
}

// getEvent serves event metadata through the TTL cache. Only metadata is
// cached; resolved availability is always recomputed.
func (h *Handlers) getEvent(ctx context.Context, id string) (*storage.Event, error) {
	if ev, ok := h.events.Get(id); ok {
		return ev, nil
	}
	ev, err := h.store.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	h.events.Set(id, ev)
	return ev, nil
}
