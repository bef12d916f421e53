package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/neverlost-dev/neverlost-api/internal/server/models"
	"github.com/neverlost-dev/neverlost-api/internal/server/validation"
)

type createLayoutRequest struct {
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Objects     []models.SceneObject `json:"objects"`
}

type updateLayoutRequest struct {
	// A nil pointer means the field was absent; an empty slice replaces the
	// stored sequence with an empty one.
	Objects *[]models.SceneObject `json:"objects"`
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication failed.")
		return
	}

	var req createLayoutRequest
	if !decodeBody(w, r, validation.CreateLayout, &req) {
		return
	}

	layoutID, err := s.layouts.Create(r.Context(), identity.UserID, req.Name, req.Description, req.Objects)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"layoutId": layoutID})
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication failed.")
		return
	}

	list, err := s.layouts.ListForOwner(r.Context(), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Layout{}
	}

	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication failed.")
		return
	}

	layout, err := s.layouts.Get(r.Context(), chi.URLParam(r, "layoutID"), identity.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleUpdateLayout(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication failed.")
		return
	}

	var req updateLayoutRequest
	if !decodeBody(w, r, validation.UpdateLayout, &req) {
		return
	}

	layout, err := s.layouts.Update(r.Context(), chi.URLParam(r, "layoutID"), identity.UserID, req.Objects)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, layout)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	identity, ok := identityFromContext(r.Context())
	if !ok {
		errorJSON(w, http.StatusUnauthorized, "Authentication failed.")
		return
	}

	if err := s.layouts.Delete(r.Context(), chi.URLParam(r, "layoutID"), identity.UserID); err != nil {
		s.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
