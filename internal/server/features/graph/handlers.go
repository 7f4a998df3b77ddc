// Package graph provides the graph export, stats and maintenance handlers.
package graph

import (
	"net/http"

	"github.com/leapstack-labs/viewgraph/internal/server/features/common"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// Handlers provides HTTP handlers for the graph feature.
type Handlers struct {
	store core.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store) *Handlers {
	return &Handlers{store: store}
}

// Data exports the whole graph in the shape the visualization front-end
// consumes.
func (h *Handlers) Data(w http.ResponseWriter, r *http.Request) {
	graph, err := h.store.GraphData(r.Context())
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, graph)
}

// ClearAll unconditionally empties both collections.
func (h *Handlers) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ClearAll(r.Context()); err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"message": "All data cleared"})
}

// Stats returns the current collection counts.
func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, stats)
}
