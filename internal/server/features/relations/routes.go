package relations

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// SetupRoutes registers the relations feature routes.
func SetupRoutes(router chi.Router, store core.Store) {
	handlers := NewHandlers(store)

	router.Route("/relations", func(r chi.Router) {
		r.Get("/", handlers.List)
		r.Post("/", handlers.Create)
		r.Get("/{id}", handlers.Get)
		r.Put("/{id}", handlers.Update)
		r.Delete("/{id}", handlers.Delete)
	})
}
