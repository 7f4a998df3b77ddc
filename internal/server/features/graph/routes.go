package graph

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// SetupRoutes registers the graph feature routes.
func SetupRoutes(router chi.Router, store core.Store) {
	handlers := NewHandlers(store)

	router.Get("/graph-data", handlers.Data)
	router.Delete("/clear-all", handlers.ClearAll)
	router.Get("/stats", handlers.Stats)
}
