package views

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// SetupRoutes registers the views feature routes.
func SetupRoutes(router chi.Router, store core.Store) {
	handlers := NewHandlers(store)

	router.Route("/views", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/", handlers.Create)
		r.Get("/{view_id}", handlers.Get)
		r.Put("/{view_id}", handlers.Update)
		r.Delete("/{view_id}", handlers.Delete)
	})
}
