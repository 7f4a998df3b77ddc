// Package relations provides the relation CRUD handlers.
package relations

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/internal/server/features/common"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// Handlers provides HTTP handlers for the relations feature.
type Handlers struct {
	store core.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store) *Handlers {
	return &Handlers{store: store}
}

// List returns all relations, optionally filtered by endpoint view_id and a
// search over the relation clause.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	viewID, err := common.IntQuery(r, "view_id")
	if err != nil {
		common.Error(w, http.StatusBadRequest, "view_id must be an integer")
		return
	}

	relations, err := h.store.ListRelations(r.Context(), core.ListRelationsOptions{
		ViewID: viewID,
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, relations)
}

// Get returns a single relation by its system id.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	rel, err := h.store.GetRelation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, rel)
}

// Create creates a new relation. Both endpoint views must already exist;
// unlike import, direct creation never auto-creates placeholders.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var body core.RelationCreate
	if err := common.Decode(r, &body); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Relation == "" {
		common.Error(w, http.StatusBadRequest, "relation is required")
		return
	}

	rel := core.NewRelation(body)
	if err := h.store.CreateRelation(r.Context(), rel); err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, rel)
}

// Update applies a partial update to a relation.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	var patch core.RelationUpdate
	if err := common.Decode(r, &patch); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rel, err := h.store.UpdateRelation(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, rel)
}

// Delete removes a relation.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRelation(r.Context(), chi.URLParam(r, "id")); err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"message": "Relation deleted"})
}
