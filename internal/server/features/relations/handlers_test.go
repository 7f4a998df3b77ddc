package relations_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/viewgraph/internal/server/features/relations"
	"github.com/leapstack-labs/viewgraph/internal/state"
	"github.com/leapstack-labs/viewgraph/pkg/core"
)

func newTestRouter(t *testing.T) (*chi.Mux, *state.MemoryStore) {
	t.Helper()
	store := state.NewMemoryStore()
	r := chi.NewRouter()
	relations.SetupRoutes(r, store)
	return r, store
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func seedGraph(t *testing.T, store *state.MemoryStore) *core.ViewRelation {
	t.Helper()
	ctx := context.Background()
	for id, name := range map[int]string{1: "A", 2: "B"} {
		require.NoError(t, store.CreateView(ctx, core.NewView(core.ViewCreate{ViewID: id, Name: name})))
	}
	rel := core.NewRelation(core.RelationCreate{IDView1: 1, IDView2: 2, Relation: "INNER JOIN b ON b.a_id = a.id"})
	require.NoError(t, store.CreateRelation(ctx, rel))
	return rel
}

func TestCreateRelation(t *testing.T) {
	router, store := newTestRouter(t)
	ctx := context.Background()
	require.NoError(t, store.CreateView(ctx, core.NewView(core.ViewCreate{ViewID: 1, Name: "A"})))
	require.NoError(t, store.CreateView(ctx, core.NewView(core.ViewCreate{ViewID: 2, Name: "B"})))

	rec := doJSON(t, router, http.MethodPost, "/relations", map[string]any{
		"id_view1": 1,
		"id_view2": 2,
		"relation": "JOIN",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var created core.ViewRelation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)
	require.NotNil(t, created.EdgeWeight)
	assert.Equal(t, core.DefaultEdgeWeight, *created.EdgeWeight)
}

func TestCreateRelation_MissingEndpointIs400(t *testing.T) {
	router, store := newTestRouter(t)
	require.NoError(t, store.CreateView(context.Background(), core.NewView(core.ViewCreate{ViewID: 1, Name: "A"})))

	rec := doJSON(t, router, http.MethodPost, "/relations", map[string]any{
		"id_view1": 1,
		"id_view2": 2,
		"relation": "JOIN",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRelation(t *testing.T) {
	router, store := newTestRouter(t)
	rel := seedGraph(t, store)

	rec := doJSON(t, router, http.MethodGet, "/relations/"+rel.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got core.ViewRelation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, rel.ID, got.ID)

	rec = doJSON(t, router, http.MethodGet, "/relations/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListRelations_Filters(t *testing.T) {
	router, store := newTestRouter(t)
	seedGraph(t, store)

	rec := doJSON(t, router, http.MethodGet, "/relations?view_id=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []core.ViewRelation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = doJSON(t, router, http.MethodGet, "/relations?search=inner", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Len(t, listed, 1)

	rec = doJSON(t, router, http.MethodGet, "/relations?search=outer", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestUpdateRelation(t *testing.T) {
	router, store := newTestRouter(t)
	rel := seedGraph(t, store)

	rec := doJSON(t, router, http.MethodPut, "/relations/"+rel.ID, map[string]any{"edge_weight": 3})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated core.ViewRelation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	require.NotNil(t, updated.EdgeWeight)
	assert.Equal(t, 3, *updated.EdgeWeight)

	rec = doJSON(t, router, http.MethodPut, "/relations/"+rel.ID, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPut, "/relations/missing", map[string]any{"edge_weight": 1})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteRelation(t *testing.T) {
	router, store := newTestRouter(t)
	rel := seedGraph(t, store)

	rec := doJSON(t, router, http.MethodDelete, "/relations/"+rel.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodDelete, "/relations/"+rel.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
