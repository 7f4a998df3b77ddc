// Package common provides shared helpers for API features.
package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/leapstack-labs/viewgraph/pkg/core"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes an error body in the shape the front-end expects:
// {"detail": "<message>"}.
func Error(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, map[string]string{"detail": detail})
}

// StoreError maps a store error to the appropriate HTTP status: absent
// targets are 404, constraint violations and empty patches are 400,
// anything else is 500.
func StoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, core.ErrDuplicateKey),
		errors.Is(err, core.ErrInvalidReference),
		errors.Is(err, core.ErrNoFields):
		Error(w, http.StatusBadRequest, err.Error())
	default:
		Error(w, http.StatusInternalServerError, err.Error())
	}
}

// Decode reads a JSON request body into dst.
func Decode(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// IntQuery parses an optional integer query parameter. Returns nil when the
// parameter is absent and an error when it is present but not an integer.
func IntQuery(r *http.Request, name string) (*int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
