// Package importsql provides the SQL dump import endpoint.
package importsql

import (
	"net/http"

	"github.com/leapstack-labs/viewgraph/internal/importer"
	"github.com/leapstack-labs/viewgraph/internal/server/features/common"
)

// Handlers provides HTTP handlers for the import feature.
type Handlers struct {
	importer *importer.Importer
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(imp *importer.Importer) *Handlers {
	return &Handlers{importer: imp}
}

// ImportRequest is the import-sql request body.
type ImportRequest struct {
	SQL string `json:"sql"`
}

// Import ingests a pasted SQL INSERT dump. The response is always 200:
// per-row failures are reported in-band in the errors list, never as a
// request failure, so callers can re-submit the same dump to retry.
func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	var body ImportRequest
	if err := common.Decode(r, &body); err != nil {
		common.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.importer.Run(r.Context(), body.SQL)
	common.JSON(w, http.StatusOK, result)
}
