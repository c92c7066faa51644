package api

import (
	"rectiflex-backend/config"
	"rectiflex-backend/internal/notify"
	"rectiflex-backend/internal/store"
	"rectiflex-backend/internal/workorder"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store   store.Store
	factory *workorder.Factory
	hub     *notify.Hub
	pushers *notify.WorkerPool
	cfg     *config.Config
}

// NewHandler creates a new API handler. The push worker pool may be nil when
// web push is disabled.
func NewHandler(s store.Store, factory *workorder.Factory, hub *notify.Hub, pushers *notify.WorkerPool, cfg *config.Config) *Handler {
	return &Handler{
		store:   s,
		factory: factory,
		hub:     hub,
		pushers: pushers,
		cfg:     cfg,
	}
}
