package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/neverlost-dev/neverlost-api/internal/common"
	"github.com/neverlost-dev/neverlost-api/internal/server/store"
	"github.com/neverlost-dev/neverlost-api/internal/server/validation"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeBody reads the request body, validates it against the schema, and
// unmarshals it into dst. A false return means the response has already been
// written.
func decodeBody(w http.ResponseWriter, r *http.Request, schema validation.Schema, dst any) bool {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Unable to read request body.")
		return false
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		errorJSON(w, http.StatusBadRequest, "Request body must be a JSON object.")
		return false
	}

	if ferr := schema.Validate(body); ferr != nil {
		errorJSON(w, http.StatusBadRequest, ferr.Error())
		return false
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid data provided.")
		return false
	}
	return true
}

// writeError maps the closed error set to HTTP statuses. Anything outside
// the set is logged with detail and surfaced as a generic 500; no upstream
// error text crosses the boundary.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrEmailTaken),
		errors.Is(err, common.ErrUsernameTaken),
		errors.Is(err, common.ErrInvalidCredentials):
		errorJSON(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrNotFound):
		errorJSON(w, http.StatusNotFound, "Layout not found or access denied.")
	case errors.Is(err, store.ErrPermission):
		s.logger.Error(r.Context(), "store permission failure", "error", err.Error())
		errorJSON(w, http.StatusForbidden, "Insufficient permissions. The content-store token needs write access.")
	case errors.Is(err, store.ErrBadRequest):
		s.logger.Error(r.Context(), "store rejected request", "error", err.Error())
		errorJSON(w, http.StatusBadRequest, "Invalid data provided.")
	default:
		s.logger.Error(r.Context(), "request failed", "error", err.Error())
		errorJSON(w, http.StatusInternalServerError, "Server error. Please try again later.")
	}
}
