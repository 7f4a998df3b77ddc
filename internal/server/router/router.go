// Package router sets up HTTP routes for the API server.
package router

import (
	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/internal/importer"
	graphFeature "github.com/leapstack-labs/viewgraph/internal/server/features/graph"
	importsqlFeature "github.com/leapstack-labs/viewgraph/internal/server/features/importsql"
	relationsFeature "github.com/leapstack-labs/viewgraph/internal/server/features/relations"
	viewsFeature "github.com/leapstack-labs/viewgraph/internal/server/features/views"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// SetupRoutes configures all routes for the API server under /api.
func SetupRoutes(router chi.Router, store core.Store, imp *importer.Importer) {
	router.Route("/api", func(r chi.Router) {
		viewsFeature.SetupRoutes(r, store)
		relationsFeature.SetupRoutes(r, store)
		importsqlFeature.SetupRoutes(r, imp)
		graphFeature.SetupRoutes(r, store)
	})
}
