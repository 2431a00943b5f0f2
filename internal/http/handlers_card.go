package http

import (
	"net/http"

	"spendwise/internal/core"
)

type cardRequest struct {
	CardName            string `json:"card_name"`
	BankName            string `json:"bank_name"`
	CardType            string `json:"card_type"`
	CardNumberLast4     string `json:"card_number_last4"`
	CardColor           string `json:"card_color"`
	CreditLimit         string `json:"credit_limit"`
	StatementClosingDay int    `json:"statement_closing_day"`
	PaymentDueDay       int    `json:"payment_due_day"`
}

type cardResponse struct {
	ID                  string `json:"id"`
	CardName            string `json:"card_name"`
	BankName            string `json:"bank_name"`
	CardType            string `json:"card_type"`
	CardNumberLast4     string `json:"card_number_last4"`
	CardColor           string `json:"card_color"`
	CreditLimitCents    *int64 `json:"credit_limit_cents"`
	StatementClosingDay int    `json:"statement_closing_day,omitempty"`
	PaymentDueDay       int    `json:"payment_due_day,omitempty"`
}

func cardToResponse(c core.BankCard) cardResponse {
	resp := cardResponse{
		ID:                  c.ID,
		CardName:            c.CardName,
		BankName:            c.BankName,
		CardType:            c.CardType,
		CardNumberLast4:     c.CardNumberLast4,
		CardColor:           c.CardColor,
		StatementClosingDay: c.StatementClosingDay,
		PaymentDueDay:       c.PaymentDueDay,
	}
	if c.CreditLimit != nil {
		cents := c.CreditLimit.Cents
		resp.CreditLimitCents = &cents
	}
	return resp
}

func cardFromRequest(req cardRequest, id string) (core.BankCard, error) {
	limit, err := parseOptionalMoney(req.CreditLimit)
	if err != nil {
		return core.BankCard{}, err
	}

	cardType := req.CardType
	if cardType == "" {
		cardType = "credit"
	}

	return core.BankCard{
		ID:                  id,
		CardName:            sanitizeInput(req.CardName),
		BankName:            sanitizeInput(req.BankName),
		CardType:            cardType,
		CardNumberLast4:     sanitizeInput(req.CardNumberLast4),
		CardColor:           sanitizeInput(req.CardColor),
		CreditLimit:         limit,
		StatementClosingDay: req.StatementClosingDay,
		PaymentDueDay:       req.PaymentDueDay,
	}, nil
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.store.ListCards(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = cardToResponse(c)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	card, err := s.store.GetCard(r.Context(), r.PathValue("id"))
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cardToResponse(card))
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := cardFromRequest(req, "")
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	created, err := s.store.CreateCard(r.Context(), card)
	if err != nil {
		respondStoreError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cardToResponse(created))
}

func (s *Server) handleUpdateCard(w http.ResponseWriter, r *http.Request) {
	var req cardRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	card, err := cardFromRequest(req, r.PathValue("id"))
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	if err := s.store.UpdateCard(r.Context(), card); err != nil {
		respondStoreError(w, err)
		return
	}

	s.summaries.Invalidate(card.ID)
	s.overview.Invalidate()
	respondJSON(w, http.StatusOK, cardToResponse(card))
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.store.DeleteCard(r.Context(), id); err != nil {
		respondStoreError(w, err)
		return
	}
	s.summaries.Invalidate(id)
	s.overview.Invalidate()
	w.WriteHeader(http.StatusNoContent)
}
