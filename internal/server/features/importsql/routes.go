package importsql

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/internal/importer"
)

// SetupRoutes registers the import feature routes.
func SetupRoutes(router chi.Router, imp *importer.Importer) {
	handlers := NewHandlers(imp)

	router.Post("/import-sql", handlers.Import)
}
