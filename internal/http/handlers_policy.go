package http

import (
	"net/http"

	"spendwise/internal/core"
)

type policyRequest struct {
	CategoryID  string  `json:"category_id"`
	Percentage  float64 `json:"percentage"`
	MaxCashback string  `json:"max_cashback"`
}

type policyResponse struct {
	ID               string  `json:"id"`
	CardID           string  `json:"card_id"`
	CategoryID       string  `json:"category_id"`
	Percentage       float64 `json:"percentage"`
	MaxCashbackCents *int64  `json:"max_cashback_cents"`
}

func policyToResponse(p core.CashbackPolicy) policyResponse {
	resp := policyResponse{
		ID:         p.ID,
		CardID:     p.CardID,
		CategoryID: p.CategoryID,
		Percentage: p.Percentage,
	}
	if p.MaxCashback != nil {
		cents := p.MaxCashback.Cents
		resp.MaxCashbackCents = &cents
	}
	return resp
}

func policyFromRequest(req policyRequest, id, cardID string) (core.CashbackPolicy, error) {
	maxCashback, err := parseOptionalMoney(req.MaxCashback)
	if err != nil {
		return core.CashbackPolicy{}, err
	}

	return core.CashbackPolicy{
		ID:          id,
		CardID:      cardID,
		CategoryID:  req.CategoryID,
		Percentage:  req.Percentage,
		MaxCashback: maxCashback,
	}, nil
}

func (s *Server) handleListPolicies(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if _, err := s.store.GetCard(r.Context(), cardID); err != nil {
		respondStoreError(w, err)
		return
	}

	policies, err := s.store.ListPoliciesByCard(r.Context(), cardID)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]policyResponse, len(policies))
	for i, p := range policies {
		out[i] = policyToResponse(p)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreatePolicy(w http.ResponseWriter, r *http.Request) {
	cardID := r.PathValue("id")
	if _, err := s.store.GetCard(r.Context(), cardID); err != nil {
		respondStoreError(w, err)
		return
	}

	var req policyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy, err := policyFromRequest(req, "", cardID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreatePolicy(r.Context(), policy)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	s.summaries.Invalidate(cardID)
	s.overview.Invalidate()
	respondJSON(w, http.StatusCreated, policyToResponse(created))
}

func (s *Server) handleUpdatePolicy(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := s.store.GetPolicy(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	var req policyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	policy, err := policyFromRequest(req, id, existing.CardID)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpdatePolicy(r.Context(), policy); err != nil {
		respondStoreError(w, err)
		return
	}

	s.summaries.Invalidate(existing.CardID)
	s.overview.Invalidate()
	respondJSON(w, http.StatusOK, policyToResponse(policy))
}

func (s *Server) handleDeletePolicy(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	existing, err := s.store.GetPolicy(r.Context(), id)
	if err != nil {
		respondStoreError(w, err)
		return
	}

	if err := s.store.DeletePolicy(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}

	s.summaries.Invalidate(existing.CardID)
	s.overview.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
