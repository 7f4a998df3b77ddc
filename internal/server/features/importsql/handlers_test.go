package importsql_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/viewgraph/internal/importer"
	"github.com/leapstack-labs/viewgraph/internal/server/features/importsql"
	"github.com/leapstack-labs/viewgraph/internal/state"
)

func newTestRouter(t *testing.T) (*chi.Mux, *state.MemoryStore) {
	t.Helper()
	store := state.NewMemoryStore()
	imp := importer.New(store, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	importsql.SetupRoutes(r, imp)
	return r, store
}

func postSQL(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/import-sql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestImportSQL(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"sql": "INSERT INTO Report_ViewRelation (IdView1, IdView2, Relation, EdgeWeight) VALUES(100, 200, 'INNER JOIN Users ON Users.id = Orders.user_id', 5);"}`

	rec := postSQL(t, router, body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"views_created": 2, "relations_created": 1, "errors": []}`, rec.Body.String())
}

func TestImportSQL_GarbageStillReturns200(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postSQL(t, router, `{"sql": "this is not sql at all; neither is this;"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"views_created": 0, "relations_created": 0, "errors": []}`, rec.Body.String())
}

func TestImportSQL_InvalidBodyIs400(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := postSQL(t, router, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
