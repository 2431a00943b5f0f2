package http

import (
	"net/http"

	"spendwise/internal/core"
	"spendwise/internal/log"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type categoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func categoryToResponse(c core.Category) categoryResponse {
	return categoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.store.ListCategories(r.Context())
	if err != nil {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "List categories failed", log.FieldError, err)
		respondStoreError(w, err)
		return
	}

	out := make([]categoryResponse, len(categories))
	for i, c := range categories {
		out[i] = categoryToResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := s.store.CreateCategory(r.Context(), core.Category{
		Name:        sanitizeInput(req.Name),
		Description: sanitizeInput(req.Description),
	})
	if err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, categoryToResponse(created))
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	category := core.Category{
		ID:          r.PathValue("id"),
		Name:        sanitizeInput(req.Name),
		Description: sanitizeInput(req.Description),
	}
	if err := s.store.UpdateCategory(r.Context(), category); err != nil {
		respondStoreError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, categoryToResponse(category))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteCategory(r.Context(), r.PathValue("id")); err != nil {
		respondStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
