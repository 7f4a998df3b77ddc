// Package views provides the view CRUD handlers.
package views

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/viewgraph/internal/server/features/common"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// Handlers provides HTTP handlers for the views feature.
type Handlers struct {
	store core.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(store core.Store) *Handlers {
	return &Handlers{store: store}
}

// List returns all views, optionally filtered by search and view_id.
func (h *Handlers) List(w http.ResponseWriter, r *http.Request) {
	viewID, err := common.IntQuery(r, "view_id")
	if err != nil {
		common.Error(w, http.StatusBadRequest, "view_id must be an integer")
		return
	}

	views, err := h.store.ListViews(r.Context(), core.ListViewsOptions{
		Search: r.URL.Query().Get("search"),
		ViewID: viewID,
	})
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, views)
}

// Get returns a single view by its business key.
func (h *Handlers) Get(w http.ResponseWriter, r *http.Request) {
	viewID, ok := viewIDParam(w, r)
	if !ok {
		return
	}

	view, err := h.store.GetView(r.Context(), viewID)
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, view)
}

// Create creates a new view. The view_id is caller-supplied and must be
// unique.
func (h *Handlers) Create(w http.ResponseWriter, r *http.Request) {
	var body core.ViewCreate
	if err := common.Decode(r, &body); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		common.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	view := core.NewView(body)
	if err := h.store.CreateView(r.Context(), view); err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, view)
}

// Update applies a partial update to a view.
func (h *Handlers) Update(w http.ResponseWriter, r *http.Request) {
	viewID, ok := viewIDParam(w, r)
	if !ok {
		return
	}

	var patch core.ViewUpdate
	if err := common.Decode(r, &patch); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.store.UpdateView(r.Context(), viewID, patch)
	if err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, view)
}

// Delete removes a view and cascades to every relation referencing it.
func (h *Handlers) Delete(w http.ResponseWriter, r *http.Request) {
	viewID, ok := viewIDParam(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteView(r.Context(), viewID); err != nil {
		common.StoreError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]string{"message": "View and related relations deleted"})
}

func viewIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	viewID, err := strconv.Atoi(chi.URLParam(r, "view_id"))
	if err != nil {
		common.Error(w, http.StatusBadRequest, "view_id must be an integer")
		return 0, false
	}
	return viewID, true
}
